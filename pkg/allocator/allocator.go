// Package allocator provides the explicit, caller-supplied buffer source
// codec.Reader uses for BYTES destinations it allocates itself (when the
// caller passes no destination slice). Array reads allocate their result
// slices with make and do not draw on the Allocator.
//
// There is deliberately no package-level default: every reader session
// must be given an Allocator at construction. The original library's
// sz_allocator_t had the same explicit-only contract (no implicit global
// malloc fallback baked into the context), and a Go rewrite that reached
// for a package-level singleton would let one session's buffer reuse leak
// into another's.
package allocator

import "github.com/nilium/snowball/pkg/bufpool"

// Allocator hands out and reclaims byte buffers for codec.Reader's
// BYTES destination slices.
type Allocator interface {
	// Allocate returns a buffer of at least size bytes with length size,
	// or nil if the allocation cannot be satisfied.
	Allocate(size int) []byte
	// Free returns a buffer previously obtained from Allocate. Buffers
	// not obtained from this Allocator must not be passed to Free.
	Free(buf []byte)
}

// pooled is the default Allocator, backed by a tiered pkg/bufpool.Pool.
type pooled struct {
	pool *bufpool.Pool
}

// NewDefault returns a fresh pooled Allocator. Each call returns an
// independent instance with its own pool — callers that want to share
// pooled buffers across sessions should share one Allocator explicitly,
// not rely on package state.
func NewDefault() Allocator {
	return &pooled{pool: bufpool.NewPool(nil)}
}

func (p *pooled) Allocate(size int) []byte {
	if size < 0 {
		return nil
	}
	return p.pool.Get(size)
}

func (p *pooled) Free(buf []byte) {
	p.pool.Put(buf)
}
