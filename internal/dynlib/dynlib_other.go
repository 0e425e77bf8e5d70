//go:build !(darwin || freebsd || linux || windows)

package dynlib

import (
	"errors"
	"runtime"
)

// ErrUnsupported is returned by Open on platforms without a dynamic loader.
var ErrUnsupported = errors.New("dynlib: dynamic loading not supported on " + runtime.GOOS)

// Open always fails with ErrUnsupported.
func Open(string) (Module, error) { return nil, ErrUnsupported }

// Call returns 0 on platforms without a native call trampoline.
func Call(uintptr, ...uintptr) uintptr { return 0 }
