package vkload

import "fmt"

// Version is a packed Vulkan API version (VK_MAKE_API_VERSION).
type Version uint32

// Well known API versions.
const (
	APIVersion1_0 = Version(1 << 22)
	APIVersion1_1 = Version(1<<22 | 1<<12)
	APIVersion1_2 = Version(1<<22 | 2<<12)
	APIVersion1_3 = Version(1<<22 | 3<<12)
)

// MakeVersion packs a variant 0 version.
func MakeVersion(major, minor, patch uint32) Version {
	return Version(major<<22 | minor<<12 | patch)
}

// Major returns the major version.
func (v Version) Major() uint32 { return uint32(v) >> 22 & 0x7F }

// Minor returns the minor version.
func (v Version) Minor() uint32 { return uint32(v) >> 12 & 0x3FF }

// Patch returns the patch version.
func (v Version) Patch() uint32 { return uint32(v) & 0xFFF }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}
