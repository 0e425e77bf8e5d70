package vkload

// Instance resolves entry points scoped to one VkInstance through the
// library's vkGetInstanceProcAddr.
//
// Instance performs no caching; use InstanceFuncs for repeated lookups.
type Instance struct {
	lib    *Library
	handle Handle
	owned  bool
	refs   refCount
}

// NewInstance wraps a VkInstance created elsewhere. It retains lib until
// the instance is released. When owned is true the instance is destroyed
// with vkDestroyInstance on the final Release.
func NewInstance(lib *Library, owned bool, handle Handle) *Instance {
	inst := &Instance{
		lib:    lib.Retain(),
		handle: handle,
		owned:  owned,
	}
	inst.refs.init()
	return inst
}

// Resolve calls vkGetInstanceProcAddr(instance, name).
func (i *Instance) Resolve(name string) ProcAddr {
	return i.lib.Resolve(i.handle, name)
}

// Handle returns the wrapped VkInstance.
func (i *Instance) Handle() Handle { return i.handle }

// Owned reports whether the final Release destroys the VkInstance.
func (i *Instance) Owned() bool { return i.owned }

// Library returns the library the instance resolves through.
func (i *Instance) Library() *Library { return i.lib }

// Retain adds a reference and returns i.
func (i *Instance) Retain() *Instance {
	i.refs.retain()
	return i
}

// Release drops a reference. On the last one an owned VkInstance is
// destroyed, then the library reference is released.
func (i *Instance) Release() {
	if !i.refs.release() {
		return
	}
	if i.owned {
		i.destroyNative()
	}
	i.lib.Release()
}

func (i *Instance) destroyNative() {
	fn := i.Resolve("vkDestroyInstance")
	if fn == 0 {
		Logger().Warn("vkload: vkDestroyInstance unavailable, instance leaked", "instance", i.handle)
		return
	}
	// vkDestroyInstance(instance, pAllocator)
	i.lib.Call(fn, uintptr(i.handle), 0)
	Logger().Debug("vkload: instance destroyed", "instance", i.handle)
}
