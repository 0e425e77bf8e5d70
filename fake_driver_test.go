package vkload

import (
	"fmt"
	"sync"
	"unsafe"
)

// fakeModule is an opened module with a fixed symbol table.
type fakeModule struct {
	name   string
	syms   map[string]uintptr
	closed int
}

func (m *fakeModule) Lookup(name string) (uintptr, error) {
	if addr, ok := m.syms[name]; ok {
		return addr, nil
	}
	return 0, fmt.Errorf("%s: undefined symbol: %s", m.name, name)
}

func (m *fakeModule) Close() error {
	m.closed++
	return nil
}

// fakeOpener opens modules from a map and records every attempt.
type fakeOpener struct {
	modules map[string]*fakeModule
	opened  []string
}

func newFakeOpener(mods ...*fakeModule) *fakeOpener {
	o := &fakeOpener{modules: make(map[string]*fakeModule)}
	for _, m := range mods {
		o.modules[m.name] = m
	}
	return o
}

func (o *fakeOpener) Open(name string) (Module, error) {
	o.opened = append(o.opened, name)
	m, ok := o.modules[name]
	if !ok {
		return nil, fmt.Errorf("%s: cannot open shared object file", name)
	}
	return m, nil
}

// fakeDriver is an in-process Vulkan driver. Entry points are Go functions
// registered at synthetic addresses; Call dispatches on the address.
type fakeDriver struct {
	mu     sync.Mutex
	next   ProcAddr
	funcs  map[ProcAddr]fakeFunc
	addrs  map[string]ProcAddr
	hidden map[string]bool

	instanceLookups map[string]int    // vkGetInstanceProcAddr, by name
	deviceLookups   map[string]int    // vkGetDeviceProcAddr, by name
	lookupScopes    map[string]Handle // last scope per name
	calls           map[string]int
	callArgs        map[string][]uintptr
	callOrder       []string

	createResult   Result
	appName        string
	apiVersion     uint32
	layers         []string
	extensions     []string
	queueFamilies  []uint32
	queuePriority  float32
	physicalDevice Handle
}

type fakeFunc struct {
	name string
	fn   func(args []uintptr) uintptr
}

const (
	fakeInstance = Handle(0x1000)
	fakeDevice   = Handle(0x3000)
)

var fakePhysicalDevices = []Handle{0x2001, 0x2002}

func newFakeDriver() *fakeDriver {
	d := &fakeDriver{
		next:            0x10000,
		funcs:           make(map[ProcAddr]fakeFunc),
		addrs:           make(map[string]ProcAddr),
		hidden:          make(map[string]bool),
		instanceLookups: make(map[string]int),
		deviceLookups:   make(map[string]int),
		lookupScopes:    make(map[string]Handle),
		calls:           make(map[string]int),
		callArgs:        make(map[string][]uintptr),
	}

	d.register(getInstanceProcAddrName, func(a []uintptr) uintptr {
		return uintptr(d.lookup(d.instanceLookups, Handle(a[0]), cString(argPtr(a, 1))))
	})
	d.register(getDeviceProcAddrName, func(a []uintptr) uintptr {
		return uintptr(d.lookup(d.deviceLookups, Handle(a[0]), cString(argPtr(a, 1))))
	})
	d.register("vkDestroyInstance", func([]uintptr) uintptr { return 0 })
	d.register("vkDestroyDevice", func([]uintptr) uintptr { return 0 })
	d.register("vkCreateInstance", d.createInstance)
	d.register("vkEnumeratePhysicalDevices", func(a []uintptr) uintptr {
		count := (*uint32)(argPtr(a, 1))
		if a[2] == 0 {
			*count = uint32(len(fakePhysicalDevices))
			return 0
		}
		out := unsafe.Slice((*Handle)(argPtr(a, 2)), *count)
		n := copy(out, fakePhysicalDevices)
		*count = uint32(n)
		return 0
	})
	d.register("vkGetPhysicalDeviceProperties", func(a []uintptr) uintptr {
		head := (*vkPhysicalDevicePropertiesHead)(argPtr(a, 1))
		head.apiVersion = uint32(APIVersion1_3)
		head.driverVersion = 42
		head.vendorID = 0x10DE
		head.deviceID = uint32(a[0])
		head.deviceType = 2 // VK_PHYSICAL_DEVICE_TYPE_DISCRETE_GPU
		copy(head.deviceName[:], "Fake GPU\x00")
		return 0
	})
	d.register("vkCreateDevice", d.createDevice)
	d.register("vkDeviceWaitIdle", func([]uintptr) uintptr { return 0 })
	d.register("vkGetDeviceQueue", func(a []uintptr) uintptr {
		*(*Handle)(argPtr(a, 3)) = Handle(0x4000 + a[1]*16 + a[2])
		return 0
	})
	return d
}

func (d *fakeDriver) register(name string, fn func([]uintptr) uintptr) ProcAddr {
	d.mu.Lock()
	defer d.mu.Unlock()
	addr := d.next
	d.next += 0x10
	d.funcs[addr] = fakeFunc{name: name, fn: fn}
	d.addrs[name] = addr
	return addr
}

// hide makes resolvers report name as unavailable.
func (d *fakeDriver) hide(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hidden[name] = true
}

func (d *fakeDriver) addr(name string) ProcAddr {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.addrs[name]
}

func (d *fakeDriver) lookup(counter map[string]int, scope Handle, name string) ProcAddr {
	d.mu.Lock()
	defer d.mu.Unlock()
	counter[name]++
	d.lookupScopes[name] = scope
	if d.hidden[name] {
		return 0
	}
	return d.addrs[name]
}

func (d *fakeDriver) Call(fn ProcAddr, args ...uintptr) uintptr {
	d.mu.Lock()
	f, ok := d.funcs[fn]
	if !ok {
		d.mu.Unlock()
		panic(fmt.Sprintf("fake driver: call to unknown address %v", fn))
	}
	d.calls[f.name]++
	d.callArgs[f.name] = append([]uintptr(nil), args...)
	d.callOrder = append(d.callOrder, f.name)
	d.mu.Unlock()
	return f.fn(args)
}

func (d *fakeDriver) callCount(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[name]
}

func (d *fakeDriver) instanceLookupCount(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.instanceLookups[name]
}

func (d *fakeDriver) deviceLookupCount(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deviceLookups[name]
}

func (d *fakeDriver) createInstance(a []uintptr) uintptr {
	ci := (*vkInstanceCreateInfo)(argPtr(a, 0))
	d.mu.Lock()
	defer d.mu.Unlock()
	if ci.sType != structureTypeInstanceCreateInfo || ci.pApplicationInfo.sType != structureTypeApplicationInfo {
		return resultReg(ErrorInitializationFailed)
	}
	d.appName = cString(unsafe.Pointer(ci.pApplicationInfo.pApplicationName))
	d.apiVersion = ci.pApplicationInfo.apiVersion
	d.layers = goStrings(ci.ppEnabledLayerNames, ci.enabledLayerCount)
	d.extensions = goStrings(ci.ppEnabledExtensionNames, ci.enabledExtensionCount)
	if d.createResult != Success {
		return resultReg(d.createResult)
	}
	*(*Handle)(argPtr(a, 2)) = fakeInstance
	return 0
}

func (d *fakeDriver) createDevice(a []uintptr) uintptr {
	ci := (*vkDeviceCreateInfo)(argPtr(a, 1))
	d.mu.Lock()
	defer d.mu.Unlock()
	if ci.sType != structureTypeDeviceCreateInfo {
		return resultReg(ErrorInitializationFailed)
	}
	d.physicalDevice = Handle(a[0])
	d.queueFamilies = nil
	for _, q := range unsafe.Slice(ci.pQueueCreateInfos, ci.queueCreateInfoCount) {
		d.queueFamilies = append(d.queueFamilies, q.queueFamilyIndex)
		d.queuePriority = *q.pQueuePriorities
	}
	d.extensions = goStrings(ci.ppEnabledExtensionNames, ci.enabledExtensionCount)
	if d.createResult != Success {
		return resultReg(d.createResult)
	}
	*(*Handle)(argPtr(a, 3)) = fakeDevice
	return 0
}

func goStrings(pp **byte, n uint32) []string {
	if pp == nil || n == 0 {
		return nil
	}
	out := make([]string, 0, n)
	for _, p := range unsafe.Slice(pp, n) {
		out = append(out, cString(unsafe.Pointer(p)))
	}
	return out
}

// newFakeLibrary returns a Library bound to d through FromResolver.
func newFakeLibrary(d *fakeDriver) *Library {
	return FromResolver(d.addr(getInstanceProcAddrName), WithCaller(d))
}

// argPtr returns call argument i as the pointer it was converted from.
// Reloading the slot keeps checkptr from treating it as pointer arithmetic.
func argPtr(a []uintptr, i int) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&a[i]))
}

// cString copies the NUL terminated string at p.
func cString(p unsafe.Pointer) string {
	if p == nil {
		return ""
	}
	var n int
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(p), n))
}

// resultReg encodes r the way a native VkResult return register holds it.
func resultReg(r Result) uintptr {
	return uintptr(uint32(r))
}
