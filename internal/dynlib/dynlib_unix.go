//go:build darwin || freebsd || linux

package dynlib

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// Open loads the library with RTLD_NOW|RTLD_LOCAL.
func Open(name string) (Module, error) {
	h, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("dlopen %s: %w", name, err)
	}
	return &sharedLibrary{name: name, handle: h}, nil
}

type sharedLibrary struct {
	name   string
	handle uintptr
}

func (so *sharedLibrary) Lookup(name string) (uintptr, error) {
	addr, err := purego.Dlsym(so.handle, name)
	if err != nil {
		return 0, fmt.Errorf("dlsym %s in %s: %w", name, so.name, err)
	}
	if addr == 0 {
		return 0, fmt.Errorf("dlsym %s in %s: %w", name, so.name, ErrNilSymbol)
	}
	return addr, nil
}

func (so *sharedLibrary) Close() error {
	if so.handle == 0 {
		return nil
	}
	err := purego.Dlclose(so.handle)
	so.handle = 0
	return err
}
