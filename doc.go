// Package vkload resolves Vulkan entry points at runtime without cgo.
//
// # Overview
//
// vkload opens the Vulkan loader (or a driver that exports the loader
// interface) and exposes the proc address chain as three tiers:
//
//   - Library: the loaded module and its vkGetInstanceProcAddr
//   - Instance: resolves entry points scoped to a VkInstance
//   - Device: resolves entry points through a cached vkGetDeviceProcAddr
//
// Each tier can own the native object it wraps. Owned instances and devices
// are destroyed with vkDestroyInstance / vkDestroyDevice when the last
// reference to them is released.
//
// # Quick Start
//
//	lib := vkload.New()
//	if !lib.Valid() {
//		log.Fatal(lib.Err())
//	}
//	defer lib.Release()
//
//	inst, err := lib.CreateInstance(&vkload.InstanceCreateInfo{
//		ApplicationName: "demo",
//		APIVersion:      vkload.APIVersion1_1,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer inst.Destroy()
//
//	gpus, err := inst.EnumeratePhysicalDevices()
//
// # External loaders
//
// When a host has already loaded Vulkan, wrap its vkGetInstanceProcAddr with
// FromResolver. The resulting Library never opens or closes a module.
//
// # Missing entry points
//
// Resolution never fails loudly. A zero ProcAddr means the entry point is not
// available in the queried scope, whether the driver lacks it or it was never
// loaded. Treat it as unsupported.
//
// # Ownership
//
// Library and Instance are reference counted. NewInstance retains the
// library, NewDevice retains the instance, and the native destroy call runs
// on the final Release. A lower tier therefore never outlives the tier it was
// built from.
//
// # Concurrency
//
// Resolve on every tier is safe for concurrent use. Construction and the
// final Release must not race with other uses of the same object.
package vkload
