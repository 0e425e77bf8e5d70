package vkload

const getDeviceProcAddrName = "vkGetDeviceProcAddr"

// Device resolves entry points scoped to one VkDevice.
//
// vkGetDeviceProcAddr is looked up once, when the Device is created, and
// every Resolve goes straight through it. Device level pointers skip the
// loader's instance dispatch.
type Device struct {
	inst              *Instance
	getDeviceProcAddr ProcAddr
	handle            Handle
	owned             bool
	refs              refCount
}

// NewDevice wraps a VkDevice created from inst. It retains inst until the
// device is released. When owned is true the device is destroyed with
// vkDestroyDevice on the final Release.
func NewDevice(inst *Instance, owned bool, handle Handle) *Device {
	d := &Device{
		inst:              inst.Retain(),
		getDeviceProcAddr: inst.Resolve(getDeviceProcAddrName),
		handle:            handle,
		owned:             owned,
	}
	d.refs.init()
	return d
}

// Resolve calls the cached vkGetDeviceProcAddr(device, name).
// It returns zero if the instance had no vkGetDeviceProcAddr.
func (d *Device) Resolve(name string) ProcAddr {
	return resolveWith(d.inst.lib.caller, d.getDeviceProcAddr, d.handle, name)
}

// Handle returns the wrapped VkDevice.
func (d *Device) Handle() Handle { return d.handle }

// Owned reports whether the final Release destroys the VkDevice.
func (d *Device) Owned() bool { return d.owned }

// Instance returns the instance the device was created from.
func (d *Device) Instance() *Instance { return d.inst }

// GetDeviceProcAddr returns the cached device resolver.
func (d *Device) GetDeviceProcAddr() ProcAddr { return d.getDeviceProcAddr }

// Retain adds a reference and returns d.
func (d *Device) Retain() *Device {
	d.refs.retain()
	return d
}

// Release drops a reference. On the last one an owned VkDevice is
// destroyed, then the instance reference is released.
func (d *Device) Release() {
	if !d.refs.release() {
		return
	}
	if d.owned {
		d.destroyNative()
	}
	d.inst.Release()
}

func (d *Device) destroyNative() {
	fn := d.Resolve("vkDestroyDevice")
	if fn == 0 {
		Logger().Warn("vkload: vkDestroyDevice unavailable, device leaked", "device", d.handle)
		return
	}
	// vkDestroyDevice(device, pAllocator)
	d.inst.lib.Call(fn, uintptr(d.handle), 0)
	Logger().Debug("vkload: device destroyed", "device", d.handle)
}
