// Package logger provides the verbose/debug logger used by envlock
// commands.
package logger
