package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gogpu/vkload"
)

var createDevices bool

// devicesCmd represents the devices command
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List physical devices",
	Long: `Create a Vulkan instance through the loader, enumerate its physical devices
and, with --create-device, create and destroy a logical device on each.`,
	RunE: runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	devicesCmd.Flags().BoolVar(&createDevices, "create-device", false, "create and destroy a logical device on each physical device")
}

type deviceRow struct {
	Index      int    `yaml:"index"`
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Vendor     string `yaml:"vendor,omitempty"`
	VendorID   string `yaml:"vendor_id"`
	DeviceID   string `yaml:"device_id"`
	APIVersion string `yaml:"api_version"`
	Device     string `yaml:"device,omitempty"`
}

func runDevices(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(outputFormat); err != nil {
		return err
	}
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Release()

	rows, err := probeDevices(lib, createDevices)
	if err != nil {
		return err
	}
	return writeDevices(cmd.OutOrStdout(), outputFormat, rows)
}

// probeDevices creates a throwaway instance and describes every physical
// device it reports.
func probeDevices(lib *vkload.Library, create bool) ([]deviceRow, error) {
	version, err := lib.InstanceVersion()
	if err != nil {
		return nil, err
	}
	inst, err := lib.CreateInstance(&vkload.InstanceCreateInfo{
		ApplicationName: "vkprobe",
		EngineName:      "vkload",
		APIVersion:      version,
	})
	if err != nil {
		return nil, err
	}
	defer inst.Destroy()

	gpus, err := inst.EnumeratePhysicalDevices()
	if err != nil {
		return nil, err
	}

	rows := make([]deviceRow, 0, len(gpus))
	for i, pd := range gpus {
		props, err := inst.GetPhysicalDeviceProperties(pd)
		if err != nil {
			return nil, err
		}
		row := deviceRow{
			Index:      i,
			Name:       props.Name,
			Type:       props.DeviceType.String(),
			Vendor:     props.Vendor,
			VendorID:   fmt.Sprintf("%#04x", props.VendorID),
			DeviceID:   fmt.Sprintf("%#04x", props.DeviceID),
			APIVersion: props.APIVersion.String(),
		}
		if create {
			row.Device = tryCreateDevice(inst, pd)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func tryCreateDevice(inst *vkload.InstanceFuncs, pd vkload.Handle) string {
	dev, err := inst.CreateDevice(pd, nil)
	if err != nil {
		return err.Error()
	}
	defer dev.Destroy()
	if err := dev.WaitIdle(); err != nil {
		return err.Error()
	}
	return "ok, queue " + dev.Queue(0, 0).String()
}

func writeDevices(w io.Writer, format string, rows []deviceRow) error {
	if format == "yaml" {
		return writeYAML(w, map[string]any{"devices": rows})
	}

	header := []string{"#", "Name", "Type", "Vendor", "Vendor ID", "Device ID", "API"}
	withDevice := len(rows) > 0 && rows[0].Device != ""
	if withDevice {
		header = append(header, "Logical device")
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{fmt.Sprint(r.Index), r.Name, r.Type, r.Vendor, r.VendorID, r.DeviceID, r.APIVersion}
		if withDevice {
			row = append(row, r.Device)
		}
		out = append(out, row)
	}
	return writeTable(w, header, out)
}
