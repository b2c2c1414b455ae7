package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// table is one titled table of the "table" output format.
type table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// print writes data in the selected output format. text renders the "text"
// format; tables the "table" one.
func (a *app) print(data interface{}, text func(w io.Writer) error, tables ...table) error {
	switch a.opts.Output {
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)

	case "yaml":
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()

	case "table":
		for i, t := range tables {
			if i > 0 {
				fmt.Fprintln(a.out)
			}
			if t.Title != "" {
				fmt.Fprintf(a.out, "=== %s ===\n", t.Title)
			}
			w := tablewriter.NewWriter(a.out)
			w.SetHeader(t.Header)
			w.SetAutoFormatHeaders(false)
			w.AppendBulk(t.Rows)
			w.Render()
		}
		return nil

	default:
		return text(a.out)
	}
}
