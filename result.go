package vkload

import "strconv"

// Result is a VkResult. Negative values are errors, positive values are
// non-error status codes.
//
// Result implements error so failed calls can be wrapped with %w and
// matched with errors.Is.
type Result int32

// VkResult codes.
const (
	Success                          Result = 0
	NotReady                         Result = 1
	Timeout                          Result = 2
	EventSet                         Result = 3
	EventReset                       Result = 4
	Incomplete                       Result = 5
	ErrorOutOfHostMemory             Result = -1
	ErrorOutOfDeviceMemory           Result = -2
	ErrorInitializationFailed        Result = -3
	ErrorDeviceLost                  Result = -4
	ErrorMemoryMapFailed             Result = -5
	ErrorLayerNotPresent             Result = -6
	ErrorExtensionNotPresent         Result = -7
	ErrorFeatureNotPresent           Result = -8
	ErrorIncompatibleDriver          Result = -9
	ErrorTooManyObjects              Result = -10
	ErrorFormatNotSupported          Result = -11
	ErrorFragmentedPool              Result = -12
	ErrorUnknown                     Result = -13
	ErrorSurfaceLostKHR              Result = -1000000000
	ErrorNativeWindowInUseKHR        Result = -1000000001
	SuboptimalKHR                    Result = 1000001003
	ErrorOutOfDateKHR                Result = -1000001004
	ErrorIncompatibleDisplayKHR      Result = -1000003001
	ErrorValidationFailedEXT         Result = -1000011001
	ErrorInvalidShaderNV             Result = -1000012000
	ErrorOutOfPoolMemory             Result = -1000069000
	ErrorInvalidExternalHandle       Result = -1000072003
	ErrorFragmentation               Result = -1000161000
	ErrorInvalidOpaqueCaptureAddress Result = -1000257000
)

var resultNames = map[Result]string{
	Success:                          "VK_SUCCESS",
	NotReady:                         "VK_NOT_READY",
	Timeout:                          "VK_TIMEOUT",
	EventSet:                         "VK_EVENT_SET",
	EventReset:                       "VK_EVENT_RESET",
	Incomplete:                       "VK_INCOMPLETE",
	ErrorOutOfHostMemory:             "VK_ERROR_OUT_OF_HOST_MEMORY",
	ErrorOutOfDeviceMemory:           "VK_ERROR_OUT_OF_DEVICE_MEMORY",
	ErrorInitializationFailed:        "VK_ERROR_INITIALIZATION_FAILED",
	ErrorDeviceLost:                  "VK_ERROR_DEVICE_LOST",
	ErrorMemoryMapFailed:             "VK_ERROR_MEMORY_MAP_FAILED",
	ErrorLayerNotPresent:             "VK_ERROR_LAYER_NOT_PRESENT",
	ErrorExtensionNotPresent:         "VK_ERROR_EXTENSION_NOT_PRESENT",
	ErrorFeatureNotPresent:           "VK_ERROR_FEATURE_NOT_PRESENT",
	ErrorIncompatibleDriver:          "VK_ERROR_INCOMPATIBLE_DRIVER",
	ErrorTooManyObjects:              "VK_ERROR_TOO_MANY_OBJECTS",
	ErrorFormatNotSupported:          "VK_ERROR_FORMAT_NOT_SUPPORTED",
	ErrorFragmentedPool:              "VK_ERROR_FRAGMENTED_POOL",
	ErrorUnknown:                     "VK_ERROR_UNKNOWN",
	ErrorSurfaceLostKHR:              "VK_ERROR_SURFACE_LOST_KHR",
	ErrorNativeWindowInUseKHR:        "VK_ERROR_NATIVE_WINDOW_IN_USE_KHR",
	SuboptimalKHR:                    "VK_SUBOPTIMAL_KHR",
	ErrorOutOfDateKHR:                "VK_ERROR_OUT_OF_DATE_KHR",
	ErrorIncompatibleDisplayKHR:      "VK_ERROR_INCOMPATIBLE_DISPLAY_KHR",
	ErrorValidationFailedEXT:         "VK_ERROR_VALIDATION_FAILED_EXT",
	ErrorInvalidShaderNV:             "VK_ERROR_INVALID_SHADER_NV",
	ErrorOutOfPoolMemory:             "VK_ERROR_OUT_OF_POOL_MEMORY",
	ErrorInvalidExternalHandle:       "VK_ERROR_INVALID_EXTERNAL_HANDLE",
	ErrorFragmentation:               "VK_ERROR_FRAGMENTATION",
	ErrorInvalidOpaqueCaptureAddress: "VK_ERROR_INVALID_OPAQUE_CAPTURE_ADDRESS",
}

// String returns the VK_* name, or VkResult(n) for unknown codes.
func (r Result) String() string {
	if s, ok := resultNames[r]; ok {
		return s
	}
	return "VkResult(" + strconv.Itoa(int(r)) + ")"
}

// Error implements error.
func (r Result) Error() string { return "vulkan: " + r.String() }

// Err returns r as an error for negative codes and nil otherwise.
func (r Result) Err() error {
	if r < 0 {
		return r
	}
	return nil
}

// resultOf extracts a VkResult from a return register. Only the low 32 bits
// are defined.
func resultOf(r uintptr) Result {
	return Result(int32(uint32(r))) //nolint:gosec // VkResult is a 32-bit enum
}
