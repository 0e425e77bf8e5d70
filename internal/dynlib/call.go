//go:build darwin || freebsd || linux || windows

package dynlib

import "github.com/ebitengine/purego"

// Call invokes the native function at fn with pointer sized arguments and
// returns its first result register. Arguments that point into Go memory
// must be kept alive by the caller until Call returns.
func Call(fn uintptr, args ...uintptr) uintptr {
	r1, _, _ := purego.SyscallN(fn, args...)
	return r1
}
