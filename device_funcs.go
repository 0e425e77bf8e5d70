package vkload

import (
	"fmt"
	"runtime"
)

// DeviceFuncs is the owning function table of a VkDevice.
//
// Entry points are resolved through the device's cached vkGetDeviceProcAddr
// and kept after the first lookup. Destroy drops the table's reference; an
// owned VkDevice is destroyed on the final release.
type DeviceFuncs struct {
	*Device
	procs procCache
}

// NewDeviceFuncs wraps a VkDevice created from inst in an owning function
// table.
func NewDeviceFuncs(inst *Instance, owned bool, handle Handle) *DeviceFuncs {
	f := &DeviceFuncs{Device: NewDevice(inst, owned, handle)}
	f.procs.resolve = f.Device.Resolve
	return f
}

// Proc returns the device level entry point name, resolving it on first use.
func (f *DeviceFuncs) Proc(name string) ProcAddr {
	return f.procs.get(name)
}

// Destroy releases the table's reference to the device.
// The table must not be used afterwards.
func (f *DeviceFuncs) Destroy() {
	f.Device.Release()
}

// WaitIdle calls vkDeviceWaitIdle.
func (f *DeviceFuncs) WaitIdle() error {
	fn := f.Proc("vkDeviceWaitIdle")
	if fn == 0 {
		return fmt.Errorf("%w: vkDeviceWaitIdle", ErrSymbolNotFound)
	}
	if err := resultOf(f.inst.lib.Call(fn, uintptr(f.handle))).Err(); err != nil {
		return fmt.Errorf("vkload: vkDeviceWaitIdle: %w", err)
	}
	return nil
}

// Queue returns the VkQueue at index in queue family, or zero when
// vkGetDeviceQueue is unavailable.
func (f *DeviceFuncs) Queue(family, index uint32) Handle {
	fn := f.Proc("vkGetDeviceQueue")
	if fn == 0 {
		return 0
	}
	var q Handle
	f.inst.lib.Call(fn, uintptr(f.handle), uintptr(family), uintptr(index), ptr(&q))
	runtime.KeepAlive(&q)
	return q
}
