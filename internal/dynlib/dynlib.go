// Package dynlib opens native shared libraries and calls into them without
// cgo.
//
// Unix platforms go through purego's dlopen family, Windows through
// LoadLibrary/GetProcAddress from golang.org/x/sys/windows. Everything above
// this package only sees Open and the Module interface, so the loader tiers
// stay platform neutral and can be driven by fakes in tests.
package dynlib

import "errors"

// ErrNilSymbol is returned by Lookup when the loader reports success but the
// symbol address is zero.
var ErrNilSymbol = errors.New("dynlib: symbol resolved to nil")

// Module is an open shared library.
type Module interface {
	// Lookup returns the address of an exported symbol.
	Lookup(name string) (uintptr, error)

	// Close releases the library. The module must not be used afterwards.
	Close() error
}
