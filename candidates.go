package vkload

import "runtime"

// DefaultCandidates returns the Vulkan module names tried by New on the
// current platform, highest priority first.
func DefaultCandidates() []string {
	return candidatesFor(runtime.GOOS)
}

func candidatesFor(goos string) []string {
	switch goos {
	case "windows":
		// Wine's builtin ICD bridge must win over a native vulkan-1.dll.
		return []string{"winevulkan.dll", "vulkan-1.dll"}
	case "android":
		return []string{"libvulkan.so"}
	case "darwin", "ios":
		return []string{"libvulkan.1.dylib", "libvulkan.dylib", "libMoltenVK.dylib"}
	default:
		return []string{"libvulkan.so.1", "libvulkan.so"}
	}
}
