// Package audit appends a best-effort JSONL trail of envlock
// operations next to the store file. Audit failures never fail the
// operation being audited.
package audit
