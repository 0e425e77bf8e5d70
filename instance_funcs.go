package vkload

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/vkload/internal/dynlib"
)

// procCache resolves each distinct entry point once. Zero results are cached
// too: an entry point the driver lacks stays unsupported.
type procCache struct {
	m       sync.Map // string -> ProcAddr
	resolve func(string) ProcAddr
}

func (c *procCache) get(name string) ProcAddr {
	if v, ok := c.m.Load(name); ok {
		return v.(ProcAddr)
	}
	v, _ := c.m.LoadOrStore(name, c.resolve(name))
	return v.(ProcAddr)
}

// InstanceFuncs is the owning function table of a VkInstance.
//
// It embeds the Instance it owns a reference to and caches every entry
// point it resolves. Destroy drops that reference; an owned VkInstance is
// destroyed once no device built from it remains.
type InstanceFuncs struct {
	*Instance
	procs procCache
}

// NewInstanceFuncs wraps a VkInstance in an owning function table.
func NewInstanceFuncs(lib *Library, owned bool, handle Handle) *InstanceFuncs {
	f := &InstanceFuncs{Instance: NewInstance(lib, owned, handle)}
	f.procs.resolve = f.Instance.Resolve
	return f
}

// Proc returns the instance level entry point name, resolving it on first
// use.
func (f *InstanceFuncs) Proc(name string) ProcAddr {
	return f.procs.get(name)
}

// Destroy releases the table's reference to the instance.
// The table must not be used afterwards.
func (f *InstanceFuncs) Destroy() {
	f.Instance.Release()
}

func (f *InstanceFuncs) mustProc(name string) (ProcAddr, error) {
	fn := f.Proc(name)
	if fn == 0 {
		return 0, fmt.Errorf("%w: %s", ErrSymbolNotFound, name)
	}
	return fn, nil
}

// EnumeratePhysicalDevices returns the VkPhysicalDevice handles of the
// instance.
func (f *InstanceFuncs) EnumeratePhysicalDevices() ([]Handle, error) {
	fn, err := f.mustProc("vkEnumeratePhysicalDevices")
	if err != nil {
		return nil, err
	}

	for {
		var count uint32
		res := resultOf(f.lib.Call(fn, uintptr(f.handle), ptr(&count), 0))
		runtime.KeepAlive(&count)
		if err := res.Err(); err != nil {
			return nil, fmt.Errorf("vkload: vkEnumeratePhysicalDevices: %w", err)
		}
		if count == 0 {
			return nil, nil
		}

		devices := make([]Handle, count)
		res = resultOf(f.lib.Call(fn, uintptr(f.handle), ptr(&count), ptr(&devices[0])))
		runtime.KeepAlive(&count)
		runtime.KeepAlive(devices)
		switch {
		case res == Incomplete:
			// Device list grew between the two calls.
			continue
		case res.Err() != nil:
			return nil, fmt.Errorf("vkload: vkEnumeratePhysicalDevices: %w", res)
		}
		return devices[:count], nil
	}
}

// PhysicalDeviceProperties is the identifying part of
// VkPhysicalDeviceProperties. The adapter description uses the shared
// gputypes vocabulary with Backend set to Vulkan.
type PhysicalDeviceProperties struct {
	gputypes.AdapterInfo
	APIVersion    Version
	DriverVersion uint32
}

// deviceTypeOf maps a VkPhysicalDeviceType. The Vulkan enum and
// gputypes.DeviceType share their order; unknown values become Other.
func deviceTypeOf(v uint32) gputypes.DeviceType {
	if v > uint32(gputypes.DeviceTypeCPU) {
		return gputypes.DeviceTypeOther
	}
	return gputypes.DeviceType(v)
}

// vendorName returns the vendor for well known PCI and Khronos vendor IDs.
func vendorName(id uint32) string {
	switch id {
	case 0x1002:
		return "AMD"
	case 0x10DE:
		return "NVIDIA"
	case 0x8086:
		return "Intel"
	case 0x13B5:
		return "ARM"
	case 0x5143:
		return "Qualcomm"
	case 0x106B:
		return "Apple"
	case 0x1010:
		return "ImgTec"
	case 0x10005:
		return "Mesa"
	default:
		return ""
	}
}

// vkPhysicalDevicePropertiesHead mirrors the leading fields of
// VkPhysicalDeviceProperties.
type vkPhysicalDevicePropertiesHead struct {
	apiVersion        uint32
	driverVersion     uint32
	vendorID          uint32
	deviceID          uint32
	deviceType        uint32
	deviceName        [256]byte
	pipelineCacheUUID [16]byte
}

// physicalDevicePropertiesWords covers sizeof(VkPhysicalDeviceProperties)
// (824 bytes on every ABI) with room to spare, 8-byte aligned for the
// VkDeviceSize members of limits.
const physicalDevicePropertiesWords = 128

// GetPhysicalDeviceProperties queries the identifying properties of a
// physical device.
func (f *InstanceFuncs) GetPhysicalDeviceProperties(physicalDevice Handle) (PhysicalDeviceProperties, error) {
	fn, err := f.mustProc("vkGetPhysicalDeviceProperties")
	if err != nil {
		return PhysicalDeviceProperties{}, err
	}

	raw := new([physicalDevicePropertiesWords]uint64)
	f.lib.Call(fn, uintptr(physicalDevice), ptr(raw))
	runtime.KeepAlive(raw)

	head := (*vkPhysicalDevicePropertiesHead)(unsafe.Pointer(raw))
	return PhysicalDeviceProperties{
		AdapterInfo: gputypes.AdapterInfo{
			Name:       dynlib.GoStringN(head.deviceName[:]),
			Vendor:     vendorName(head.vendorID),
			VendorID:   head.vendorID,
			DeviceID:   head.deviceID,
			DeviceType: deviceTypeOf(head.deviceType),
			Backend:    gputypes.BackendVulkan,
		},
		APIVersion:    Version(head.apiVersion),
		DriverVersion: head.driverVersion,
	}, nil
}
