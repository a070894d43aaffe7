// Package workflows implements envlock's operations: store
// initialization, secret set/get/list, and the team mutations that
// drive the re-encryption protocol.
//
// Every workflow takes an Options struct carrying the store path and
// the caller's identity bundle explicitly; nothing reads ambient
// process state. Team mutations share one shape: acquire the store
// lock, authorize the caller as admin, check the mutation's
// self-protection gates, apply it to the in-memory team, re-encrypt
// every secret to the post-mutation recipient set, and persist the
// whole snapshot in a single atomic write. Any failure before that
// write leaves the store byte-for-byte unchanged.
package workflows
