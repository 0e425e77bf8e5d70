package vkload

import (
	"fmt"
	"runtime"
)

// VkStructureType values used by the create helpers.
const (
	structureTypeApplicationInfo       = 0
	structureTypeInstanceCreateInfo    = 1
	structureTypeDeviceQueueCreateInfo = 2
	structureTypeDeviceCreateInfo      = 3
)

// InstanceCreateInfo describes a VkInstance to create.
type InstanceCreateInfo struct {
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
	// APIVersion defaults to APIVersion1_0.
	APIVersion Version
	Layers     []string
	Extensions []string
}

type vkApplicationInfo struct {
	sType              uint32
	pNext              uintptr
	pApplicationName   *byte
	applicationVersion uint32
	pEngineName        *byte
	engineVersion      uint32
	apiVersion         uint32
}

type vkInstanceCreateInfo struct {
	sType                   uint32
	pNext                   uintptr
	flags                   uint32
	pApplicationInfo        *vkApplicationInfo
	enabledLayerCount       uint32
	ppEnabledLayerNames     **byte
	enabledExtensionCount   uint32
	ppEnabledExtensionNames **byte
}

// DeviceQueueCreateInfo requests queues from one queue family.
type DeviceQueueCreateInfo struct {
	QueueFamilyIndex uint32
	// Priorities holds one entry per queue. Empty means a single queue at
	// priority 1.
	Priorities []float32
}

// DeviceCreateInfo describes a VkDevice to create.
type DeviceCreateInfo struct {
	// Queues defaults to one queue from family 0.
	Queues     []DeviceQueueCreateInfo
	Extensions []string
}

type vkDeviceQueueCreateInfo struct {
	sType            uint32
	pNext            uintptr
	flags            uint32
	queueFamilyIndex uint32
	queueCount       uint32
	pQueuePriorities *float32
}

type vkDeviceCreateInfo struct {
	sType                   uint32
	pNext                   uintptr
	flags                   uint32
	queueCreateInfoCount    uint32
	pQueueCreateInfos       *vkDeviceQueueCreateInfo
	enabledLayerCount       uint32
	ppEnabledLayerNames     **byte
	enabledExtensionCount   uint32
	ppEnabledExtensionNames **byte
	pEnabledFeatures        uintptr
}

// cstr returns a pinned NUL terminated copy of s.
func cstr(p *runtime.Pinner, s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	p.Pin(&b[0])
	return &b[0]
}

// cstrArray returns a pinned char** for names, or nil when names is empty.
func cstrArray(p *runtime.Pinner, names []string) **byte {
	if len(names) == 0 {
		return nil
	}
	arr := make([]*byte, len(names))
	for i, n := range names {
		arr[i] = cstr(p, n)
	}
	p.Pin(&arr[0])
	return &arr[0]
}

// CreateInstance calls vkCreateInstance and wraps the result in an owned
// function table. The table retains l.
func (l *Library) CreateInstance(info *InstanceCreateInfo) (*InstanceFuncs, error) {
	if !l.Valid() {
		return nil, ErrInvalidLibrary
	}
	fn := l.ResolveGlobal("vkCreateInstance")
	if fn == 0 {
		return nil, fmt.Errorf("%w: vkCreateInstance", ErrSymbolNotFound)
	}
	if info == nil {
		info = &InstanceCreateInfo{}
	}
	apiVersion := info.APIVersion
	if apiVersion == 0 {
		apiVersion = APIVersion1_0
	}

	var pin runtime.Pinner
	defer pin.Unpin()

	app := &vkApplicationInfo{
		sType:              structureTypeApplicationInfo,
		pApplicationName:   cstr(&pin, info.ApplicationName),
		applicationVersion: info.ApplicationVersion,
		pEngineName:        cstr(&pin, info.EngineName),
		engineVersion:      info.EngineVersion,
		apiVersion:         uint32(apiVersion),
	}
	pin.Pin(app)

	ci := &vkInstanceCreateInfo{
		sType:                   structureTypeInstanceCreateInfo,
		pApplicationInfo:        app,
		enabledLayerCount:       uint32(len(info.Layers)), //nolint:gosec // layer lists are tiny
		ppEnabledLayerNames:     cstrArray(&pin, info.Layers),
		enabledExtensionCount:   uint32(len(info.Extensions)), //nolint:gosec // extension lists are tiny
		ppEnabledExtensionNames: cstrArray(&pin, info.Extensions),
	}
	pin.Pin(ci)

	handle := new(Handle)
	pin.Pin(handle)

	// vkCreateInstance(pCreateInfo, pAllocator, pInstance)
	res := resultOf(l.Call(fn, ptr(ci), 0, ptr(handle)))
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("vkload: vkCreateInstance: %w", err)
	}
	Logger().Debug("vkload: instance created", "instance", *handle, "api", apiVersion)
	return NewInstanceFuncs(l, true, *handle), nil
}

// CreateDevice calls vkCreateDevice on a physical device of this instance
// and wraps the result in an owned function table. The table retains the
// instance.
func (f *InstanceFuncs) CreateDevice(physicalDevice Handle, info *DeviceCreateInfo) (*DeviceFuncs, error) {
	fn, err := f.mustProc("vkCreateDevice")
	if err != nil {
		return nil, err
	}
	if info == nil {
		info = &DeviceCreateInfo{}
	}
	queues := info.Queues
	if len(queues) == 0 {
		queues = []DeviceQueueCreateInfo{{QueueFamilyIndex: 0}}
	}

	var pin runtime.Pinner
	defer pin.Unpin()

	qcis := make([]vkDeviceQueueCreateInfo, len(queues))
	for i, q := range queues {
		prio := q.Priorities
		if len(prio) == 0 {
			prio = []float32{1}
		}
		pin.Pin(&prio[0])
		qcis[i] = vkDeviceQueueCreateInfo{
			sType:            structureTypeDeviceQueueCreateInfo,
			queueFamilyIndex: q.QueueFamilyIndex,
			queueCount:       uint32(len(prio)), //nolint:gosec // queue counts are tiny
			pQueuePriorities: &prio[0],
		}
	}
	pin.Pin(&qcis[0])

	ci := &vkDeviceCreateInfo{
		sType:                   structureTypeDeviceCreateInfo,
		queueCreateInfoCount:    uint32(len(qcis)), //nolint:gosec // queue family counts are tiny
		pQueueCreateInfos:       &qcis[0],
		enabledExtensionCount:   uint32(len(info.Extensions)), //nolint:gosec // extension lists are tiny
		ppEnabledExtensionNames: cstrArray(&pin, info.Extensions),
	}
	pin.Pin(ci)

	handle := new(Handle)
	pin.Pin(handle)

	// vkCreateDevice(physicalDevice, pCreateInfo, pAllocator, pDevice)
	res := resultOf(f.lib.Call(fn, uintptr(physicalDevice), ptr(ci), 0, ptr(handle)))
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("vkload: vkCreateDevice: %w", err)
	}
	Logger().Debug("vkload: device created", "device", *handle, "physical_device", physicalDevice)
	return NewDeviceFuncs(f.Instance, true, *handle), nil
}
