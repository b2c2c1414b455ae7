package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tikz/dock/efficiency"
	"github.com/tikz/dock/obprop"
)

func newEfficiencyCommand(a *app) *cobra.Command {
	var energy float64
	var ki, ligandPath, descriptor string

	cmd := &cobra.Command{
		Use:   "efficiency",
		Short: "Potency and ligand efficiency metrics of a pose",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := efficiency.Input{Ki: ki}
			if cmd.Flags().Changed("energy") {
				in.Energy = &energy
			}
			if in.Energy == nil && in.Ki == "" {
				return fmt.Errorf("one of --energy and --ki is required")
			}
			if ligandPath != "" {
				raw, err := os.ReadFile(ligandPath)
				if err != nil {
					return fmt.Errorf("read ligand: %w", err)
				}
				in.Record = string(raw)
			}

			desc, err := a.descriptor(descriptor)
			if err != nil {
				return err
			}

			m, err := efficiency.Assess(cmd.Context(), desc, in)
			if err != nil {
				return err
			}
			return a.print(m, metricsText(m), metricsTable(m))
		},
	}
	cmd.Flags().Float64VarP(&energy, "energy", "e", 0, "binding energy in kcal/mol")
	cmd.Flags().StringVar(&ki, "ki", "", `inhibition constant, e.g. "10 nM"`)
	cmd.Flags().StringVarP(&ligandPath, "ligand", "l", "", "ligand PDB record for the structure dependent metrics")
	cmd.Flags().StringVar(&descriptor, "descriptor", "obprop", "descriptor source (obprop, structure)")
	return cmd
}

func (a *app) descriptor(name string) (efficiency.Descriptor, error) {
	switch name {
	case "obprop":
		return obprop.NewDescriptor(a.cfg.Tools.Obprop, a.cfg.Analysis.WorkDir), nil
	case "structure":
		return efficiency.StructureDescriptor{}, nil
	default:
		return nil, fmt.Errorf("invalid descriptor %q (must be obprop|structure)", name)
	}
}

func optional(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func metricsText(m efficiency.Metrics) func(w io.Writer) error {
	return func(w io.Writer) error {
		fmt.Fprintf(w, "Ki     %s\n", m.Ki)
		fmt.Fprintf(w, "logKi  %s\n", strconv.FormatFloat(m.LogKi, 'f', -1, 64))
		if m.HeavyAtoms > 0 {
			fmt.Fprintf(w, "HA     %d\n", m.HeavyAtoms)
			fmt.Fprintf(w, "MW     %s\n", strconv.FormatFloat(m.Weight, 'f', 3, 64))
			fmt.Fprintf(w, "logP   %s\n", optional(m.LogP))
			fmt.Fprintf(w, "LE     %s\n", optional(m.LE))
			fmt.Fprintf(w, "SILE   %s\n", optional(m.SILE))
			fmt.Fprintf(w, "FQ     %s\n", optional(m.FQ))
			fmt.Fprintf(w, "LLE    %s\n", optional(m.LLE))
			fmt.Fprintf(w, "LELP   %s\n", optional(m.LELP))
		}
		for _, name := range m.Missing {
			fmt.Fprintf(w, "missing descriptor: %s\n", name)
		}
		return nil
	}
}

func metricsTable(m efficiency.Metrics) table {
	return table{
		Header: []string{"Ki", "logKi", "HA", "logP", "LE", "SILE", "FQ", "LLE", "LELP"},
		Rows:   [][]string{metricsRow(m)},
	}
}

func metricsRow(m efficiency.Metrics) []string {
	return []string{
		m.Ki,
		strconv.FormatFloat(m.LogKi, 'f', -1, 64),
		strconv.Itoa(m.HeavyAtoms),
		optional(m.LogP),
		optional(m.LE),
		optional(m.SILE),
		optional(m.FQ),
		optional(m.LLE),
		optional(m.LELP),
	}
}
