//go:build windows

package dynlib

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// Open loads the named DLL.
func Open(name string) (Module, error) {
	h, err := windows.LoadLibrary(name)
	if err != nil {
		return nil, fmt.Errorf("LoadLibrary %s: %w", name, err)
	}
	return &sharedLibrary{name: name, handle: h}, nil
}

type sharedLibrary struct {
	name   string
	handle windows.Handle
}

func (so *sharedLibrary) Lookup(name string) (uintptr, error) {
	addr, err := windows.GetProcAddress(so.handle, name)
	if err != nil {
		return 0, fmt.Errorf("GetProcAddress %s in %s: %w", name, so.name, err)
	}
	if addr == 0 {
		return 0, fmt.Errorf("GetProcAddress %s in %s: %w", name, so.name, ErrNilSymbol)
	}
	return addr, nil
}

func (so *sharedLibrary) Close() error {
	if so.handle == 0 {
		return nil
	}
	err := windows.FreeLibrary(so.handle)
	so.handle = 0
	return err
}
