package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tikz/dock/complex"
)

type complexView struct {
	Complex string `json:"complex" yaml:"complex"`
}

func newComplexCommand(a *app) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "complex RECEPTOR LIGAND",
		Short: "Merge a receptor and a docked ligand pose into one complex record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			receptor, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read receptor: %w", err)
			}
			ligand, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read ligand: %w", err)
			}

			merged, err := complex.Merge(string(receptor), string(ligand))
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(merged+"\n"), 0644); err != nil {
					return fmt.Errorf("write complex: %w", err)
				}
				a.log.Info("complex written")
				return nil
			}

			v := complexView{Complex: merged}
			return a.print(v, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, merged)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "write", "w", "", "write the complex to a file instead of stdout")
	return cmd
}
