package vkload

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

const getInstanceProcAddrName = "vkGetInstanceProcAddr"

// Library holds the Vulkan loader module and its vkGetInstanceProcAddr.
//
// A Library is either Bound (Valid reports true) or Unbound after a failed
// load. It is reference counted: NewInstance retains it and the module is
// unloaded on the final Release.
type Library struct {
	module              Module // nil for external resolvers and failed loads
	moduleName          string
	getInstanceProcAddr ProcAddr
	caller              Caller
	err                 error
	refs                refCount
}

// New opens the first candidate module that exports vkGetInstanceProcAddr.
//
// New never fails hard. When no candidate works the returned Library is
// Unbound: Valid reports false and Err describes every rejected candidate.
func New(opts ...Option) *Library {
	o := newOptions(opts)
	lib := &Library{caller: o.caller}
	lib.refs.init()

	m, name, gipa, err := load(&o)
	if err != nil {
		lib.err = err
		return lib
	}
	lib.module = m
	lib.moduleName = name
	lib.getInstanceProcAddr = gipa
	return lib
}

// FromResolver wraps a vkGetInstanceProcAddr obtained elsewhere, for example
// from a host that already loaded Vulkan. The Library owns no module and
// never opens or closes one. Only WithCaller is honored among opts.
func FromResolver(getInstanceProcAddr ProcAddr, opts ...Option) *Library {
	o := newOptions(opts)
	lib := &Library{getInstanceProcAddr: getInstanceProcAddr, caller: o.caller}
	lib.refs.init()
	if getInstanceProcAddr == 0 {
		lib.err = fmt.Errorf("%w: nil external resolver", ErrModuleNotFound)
	}
	return lib
}

// load walks the candidate list in order and returns the first module that
// opens and exports vkGetInstanceProcAddr. Modules that open but lack the
// symbol are closed before moving on.
func load(o *options) (Module, string, ProcAddr, error) {
	log := Logger()
	var errs []error

	for _, name := range o.candidates {
		m, err := o.opener.Open(name)
		if err != nil {
			log.Debug("vkload: cannot open module", "module", name, "err", err)
			errs = append(errs, err)
			continue
		}

		addr, err := m.Lookup(getInstanceProcAddrName)
		if err == nil && addr == 0 {
			err = fmt.Errorf("%s in %s: %w", getInstanceProcAddrName, name, ErrSymbolNotFound)
		}
		if err != nil {
			log.Debug("vkload: module has no resolver", "module", name, "err", err)
			errs = append(errs, err)
			if cerr := m.Close(); cerr != nil {
				log.Warn("vkload: module release failed", "module", name, "err", cerr)
			}
			continue
		}

		log.Info("vkload: found "+getInstanceProcAddrName,
			"module", name,
			"addr", ProcAddr(addr).String(),
			"backend", gputypes.BackendVulkan)
		return m, name, ProcAddr(addr), nil
	}

	log.Error("vkload: "+getInstanceProcAddrName+" not found", "candidates", o.candidates)
	if len(errs) == 0 {
		return nil, "", 0, ErrModuleNotFound
	}
	return nil, "", 0, fmt.Errorf("%w: %w", ErrModuleNotFound, errors.Join(errs...))
}

// Valid reports whether the library has a resolver.
func (l *Library) Valid() bool {
	return l.getInstanceProcAddr != 0
}

// Err returns why the library is not valid, or nil.
func (l *Library) Err() error {
	return l.err
}

// ModuleName returns the candidate that was loaded, or "" when the library
// owns no module.
func (l *Library) ModuleName() string {
	return l.moduleName
}

// GetInstanceProcAddr returns the global resolver address.
func (l *Library) GetInstanceProcAddr() ProcAddr {
	return l.getInstanceProcAddr
}

// Resolve calls vkGetInstanceProcAddr(scope, name). Scope is a VkInstance or
// zero for global commands. The result is returned as is; zero means the
// entry point is unavailable.
func (l *Library) Resolve(scope Handle, name string) ProcAddr {
	return resolveWith(l.caller, l.getInstanceProcAddr, scope, name)
}

// ResolveGlobal resolves an entry point that needs no instance, such as
// vkCreateInstance or vkEnumerateInstanceVersion.
func (l *Library) ResolveGlobal(name string) ProcAddr {
	return l.Resolve(0, name)
}

// Call invokes fn with the library's caller.
func (l *Library) Call(fn ProcAddr, args ...uintptr) uintptr {
	return l.caller.Call(fn, args...)
}

// Retain adds a reference and returns l.
func (l *Library) Retain() *Library {
	l.refs.retain()
	return l
}

// Release drops a reference. The module, if owned, is unloaded when the last
// reference goes away. Releasing an Unbound library is harmless.
func (l *Library) Release() {
	if !l.refs.release() {
		return
	}
	if l.module == nil {
		return
	}
	if err := l.module.Close(); err != nil {
		Logger().Warn("vkload: module release failed", "module", l.moduleName, "err", err)
	} else {
		Logger().Debug("vkload: module released", "module", l.moduleName)
	}
	l.module = nil
}
