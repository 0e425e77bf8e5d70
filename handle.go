package vkload

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/gogpu/vkload/internal/dynlib"
)

// Handle is a dispatchable Vulkan handle (VkInstance, VkPhysicalDevice,
// VkDevice, VkQueue). Zero is VK_NULL_HANDLE.
type Handle uintptr

// String formats the handle as a hex address.
func (h Handle) String() string { return fmt.Sprintf("%#x", uintptr(h)) }

// ProcAddr is a native function pointer (PFN_vkVoidFunction).
// Zero means the entry point is unavailable.
type ProcAddr uintptr

// String formats the address in hex.
func (p ProcAddr) String() string { return fmt.Sprintf("%#x", uintptr(p)) }

// Caller invokes native function pointers.
//
// The default implementation calls through purego. Tests and hosts with
// their own trampolines can supply another one with WithCaller.
type Caller interface {
	Call(fn ProcAddr, args ...uintptr) uintptr
}

// CallerFunc adapts a function to the Caller interface.
type CallerFunc func(fn ProcAddr, args ...uintptr) uintptr

// Call calls f(fn, args...).
func (f CallerFunc) Call(fn ProcAddr, args ...uintptr) uintptr { return f(fn, args...) }

type nativeCaller struct{}

func (nativeCaller) Call(fn ProcAddr, args ...uintptr) uintptr {
	return dynlib.Call(uintptr(fn), args...)
}

// resolveWith calls a vkGet*ProcAddr style resolver with scope and a NUL
// terminated copy of name. A zero resolver resolves nothing.
func resolveWith(c Caller, resolver ProcAddr, scope Handle, name string) ProcAddr {
	if resolver == 0 {
		return 0
	}
	cname := dynlib.CString(name)
	r := c.Call(resolver, uintptr(scope), uintptr(unsafe.Pointer(cname)))
	runtime.KeepAlive(cname)
	return ProcAddr(r)
}

// ptr converts a pinned or kept-alive Go pointer to a call argument.
func ptr[T any](p *T) uintptr { return uintptr(unsafe.Pointer(p)) }
