package vkload

import (
	"fmt"
	"runtime"
)

// InstanceVersion reports the instance level API version supported by the
// loader. Vulkan 1.0 loaders lack vkEnumerateInstanceVersion and report
// APIVersion1_0.
func (l *Library) InstanceVersion() (Version, error) {
	if !l.Valid() {
		return 0, ErrInvalidLibrary
	}
	fn := l.ResolveGlobal("vkEnumerateInstanceVersion")
	if fn == 0 {
		return APIVersion1_0, nil
	}
	var v uint32
	res := resultOf(l.Call(fn, ptr(&v)))
	runtime.KeepAlive(&v)
	if err := res.Err(); err != nil {
		return 0, fmt.Errorf("vkload: vkEnumerateInstanceVersion: %w", err)
	}
	return Version(v), nil
}
