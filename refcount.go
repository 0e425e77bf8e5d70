package vkload

import "sync/atomic"

// refCount is the shared ownership count of a tier. It starts at one for
// the creator; teardown runs on the 1 -> 0 transition only.
type refCount struct {
	n atomic.Int32
}

func (r *refCount) init() { r.n.Store(1) }

func (r *refCount) retain() {
	if r.n.Add(1) <= 1 {
		panic("vkload: retain of released handle")
	}
}

// release reports whether the caller dropped the last reference.
func (r *refCount) release() bool {
	n := r.n.Add(-1)
	if n < 0 {
		panic("vkload: handle released more times than retained")
	}
	return n == 0
}

func (r *refCount) count() int32 { return r.n.Load() }
