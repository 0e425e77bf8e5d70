package vkload

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestRefCountLastReleaseOnce(t *testing.T) {
	var r refCount
	r.init()
	const holders = 64
	for range holders {
		r.retain()
	}

	var last atomic.Int32
	var wg sync.WaitGroup
	for range holders + 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.release() {
				last.Add(1)
			}
		}()
	}
	wg.Wait()

	if n := last.Load(); n != 1 {
		t.Errorf("last release observed %d times, want 1", n)
	}
}

func TestRefCountMisuse(t *testing.T) {
	t.Run("retain after release", func(t *testing.T) {
		var r refCount
		r.init()
		r.release()
		defer func() {
			if recover() == nil {
				t.Error("retain after release should panic")
			}
		}()
		r.retain()
	})

	t.Run("over release", func(t *testing.T) {
		var r refCount
		r.init()
		r.release()
		defer func() {
			if recover() == nil {
				t.Error("over release should panic")
			}
		}()
		r.release()
	})
}
