// Package errors defines sentinel errors for the envlock engine.
//
// Errors are grouped by category: validation, authorization, state
// conflict, and cryptographic failures. Workflows wrap these with
// fmt.Errorf("%w: ...") to add context while keeping errors.Is checks
// working.
package errors
