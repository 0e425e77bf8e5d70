package cmd

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// writeYAML encodes v with two space indentation.
func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// writeTable renders rows under header.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	cols := make([]any, len(header))
	for i, h := range header {
		cols[i] = h
	}
	table.Header(cols...)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func checkFormat(format string) error {
	switch format {
	case "table", "yaml":
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want table or yaml)", format)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
