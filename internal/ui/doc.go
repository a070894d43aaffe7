// Package ui provides semantic text formatting for envlock's CLI
// output. Formatters degrade to plain-text decorations when color is
// disabled (NO_COLOR, dumb terminals, piped output).
package ui
