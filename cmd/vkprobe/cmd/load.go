package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/gogpu/vkload"
)

var globalSymbols []string

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Show the loaded Vulkan module and its global entry points",
	Long:  `Open the Vulkan loader, report the module and vkGetInstanceProcAddr it found, and resolve global entry points through it.`,
	RunE:  runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().StringSliceVar(&globalSymbols, "symbol", []string{
		"vkCreateInstance",
		"vkEnumerateInstanceVersion",
		"vkEnumerateInstanceExtensionProperties",
		"vkEnumerateInstanceLayerProperties",
	}, "global entry point to resolve (repeatable)")
}

type loadReport struct {
	Module          string      `yaml:"module"`
	Resolver        string      `yaml:"resolver"`
	Valid           bool        `yaml:"valid"`
	InstanceVersion string      `yaml:"instance_version,omitempty"`
	Error           string      `yaml:"error,omitempty"`
	Candidates      []string    `yaml:"candidates"`
	Symbols         []symbolRow `yaml:"symbols,omitempty"`
}

type symbolRow struct {
	Name      string `yaml:"name"`
	Address   string `yaml:"address"`
	Supported bool   `yaml:"supported"`
}

func runLoad(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(outputFormat); err != nil {
		return err
	}
	lib := vkload.New(vkload.WithCandidates(candidates()...))
	defer lib.Release()

	return writeLoadReport(cmd.OutOrStdout(), outputFormat, buildLoadReport(lib, candidates(), globalSymbols))
}

func buildLoadReport(lib *vkload.Library, cands, symbols []string) loadReport {
	rep := loadReport{
		Module:     lib.ModuleName(),
		Resolver:   lib.GetInstanceProcAddr().String(),
		Valid:      lib.Valid(),
		Candidates: cands,
	}
	if !lib.Valid() {
		rep.Error = lib.Err().Error()
		return rep
	}
	if v, err := lib.InstanceVersion(); err == nil {
		rep.InstanceVersion = v.String()
	} else {
		rep.Error = err.Error()
	}
	for _, name := range symbols {
		p := lib.ResolveGlobal(name)
		rep.Symbols = append(rep.Symbols, symbolRow{Name: name, Address: p.String(), Supported: p != 0})
	}
	return rep
}

func writeLoadReport(w io.Writer, format string, rep loadReport) error {
	if format == "yaml" {
		return writeYAML(w, rep)
	}

	summary := [][]string{
		{"Module", rep.Module},
		{"vkGetInstanceProcAddr", rep.Resolver},
		{"Valid", yesNo(rep.Valid)},
	}
	if rep.InstanceVersion != "" {
		summary = append(summary, []string{"Instance version", rep.InstanceVersion})
	}
	if rep.Error != "" {
		summary = append(summary, []string{"Error", rep.Error})
	}
	if err := writeTable(w, []string{"Property", "Value"}, summary); err != nil {
		return err
	}
	if len(rep.Symbols) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(rep.Symbols))
	for _, s := range rep.Symbols {
		rows = append(rows, []string{s.Name, s.Address, yesNo(s.Supported)})
	}
	return writeTable(w, []string{"Entry point", "Address", "Supported"}, rows)
}
