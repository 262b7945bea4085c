// Package fencex implements monotonic request-token fencing.
//
// A token is minted per logical request; an asynchronous result is applied
// only if its token is still the latest minted one at completion time.
// Superseded results are discarded silently. This replaces cancellation for
// external calls that cannot be aborted once started.
package fencex

import "sync/atomic"

// Token identifies one logical request within a Counter's sequence.
type Token uint64

// Counter mints monotonically increasing tokens. The zero value is ready to
// use and safe for concurrent callers.
type Counter struct {
	n atomic.Uint64
}

// Next mints a new token, superseding all previously minted ones.
func (c *Counter) Next() Token {
	return Token(c.n.Add(1))
}

// Latest reports whether t is still the most recently minted token.
func (c *Counter) Latest(t Token) bool {
	return Token(c.n.Load()) == t
}
