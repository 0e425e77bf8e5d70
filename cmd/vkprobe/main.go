// Command vkprobe reports which Vulkan loader the process picks up and what
// it exposes.
package main

import (
	"os"

	"github.com/gogpu/vkload/cmd/vkprobe/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
