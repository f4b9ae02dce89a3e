// Package assist runs selection-scoped rewrite commands against a buffer.
//
// A command moves through Begin (validate, capture, mark in flight), Execute
// (the external call, safe off the UI goroutine) and Finish (apply or
// surface the failure). Only Finish touches the buffer, and it applies the
// replacement with buffer.ApplyAtRevision so text that moved since capture
// is never overwritten.
package assist
