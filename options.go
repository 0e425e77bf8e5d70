package vkload

import "github.com/gogpu/vkload/internal/dynlib"

// Option configures a Library during creation.
//
// Example:
//
//	// System loader, default candidates for GOOS
//	lib := vkload.New()
//
//	// Try a bundled SwiftShader first
//	lib := vkload.New(vkload.WithCandidates(
//		append([]string{"./libvk_swiftshader.so"}, vkload.DefaultCandidates()...)...))
type Option func(*options)

// options holds optional configuration for Library creation.
type options struct {
	candidates []string
	opener     Opener
	caller     Caller
}

// defaultOptions returns the default library options.
func defaultOptions() options {
	return options{
		candidates: DefaultCandidates(),
		opener:     systemOpener{},
		caller:     nativeCaller{},
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithCandidates replaces the module names New tries, in priority order.
// The first module that opens and exports vkGetInstanceProcAddr wins.
func WithCandidates(names ...string) Option {
	return func(o *options) {
		o.candidates = append([]string(nil), names...)
	}
}

// WithOpener replaces the operating system module loader.
// A nil opener keeps the default.
func WithOpener(op Opener) Option {
	return func(o *options) {
		if op != nil {
			o.opener = op
		}
	}
}

// WithCaller replaces the trampoline used to call resolved entry points.
// A nil caller keeps the default.
func WithCaller(c Caller) Option {
	return func(o *options) {
		if c != nil {
			o.caller = c
		}
	}
}

// Module is an open native module.
type Module interface {
	// Lookup returns the address of an exported symbol.
	Lookup(name string) (uintptr, error)

	// Close releases the module.
	Close() error
}

// Opener opens native modules by name.
type Opener interface {
	Open(name string) (Module, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(name string) (Module, error)

// Open calls f(name).
func (f OpenerFunc) Open(name string) (Module, error) { return f(name) }

// systemOpener opens modules with the host loader.
type systemOpener struct{}

func (systemOpener) Open(name string) (Module, error) {
	m, err := dynlib.Open(name)
	if err != nil {
		return nil, err
	}
	return m, nil
}
