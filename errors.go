package vkload

import "errors"

var (
	// ErrModuleNotFound is reported when no candidate module could be opened
	// or none of them exported vkGetInstanceProcAddr.
	ErrModuleNotFound = errors.New("vkload: vkGetInstanceProcAddr not found")

	// ErrSymbolNotFound is returned by helpers that need an entry point the
	// driver did not provide.
	ErrSymbolNotFound = errors.New("vkload: entry point not found")

	// ErrInvalidLibrary is returned when a Library without a resolver is
	// asked to create native objects.
	ErrInvalidLibrary = errors.New("vkload: library not loaded")
)
