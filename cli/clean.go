package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tikz/dock/errors"
	"github.com/tikz/dock/pdb"
)

func newCleanCommand(a *app) *cobra.Command {
	var outPath, extract string
	var listHets bool

	cmd := &cobra.Command{
		Use:   "clean FILE",
		Short: "Keep the protein residues of a structure, list or extract its ligands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pdb.NewPDBFromFile(args[0])
			if err != nil {
				return errors.Wrap(err, errors.CodeRecordFormat, "load structure")
			}

			if listHets {
				hets := p.HetLigands()
				return a.print(map[string][]string{"hets": hets}, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, strings.Join(hets, "\n"))
					return err
				}, hetsTable(hets))
			}

			var out []byte
			if extract != "" {
				resName, chain, err := pdb.ParseLigandSelector(extract)
				if err != nil {
					return errors.Wrap(err, errors.CodeInvalidParam, "invalid ligand selector")
				}
				out, err = p.ExtractLigand(resName, chain)
				if err != nil {
					return errors.Wrap(err, errors.CodeNotFound, "extract ligand")
				}
			} else {
				out = pdb.CleanProtein(p.RawPDB)
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, out, 0644); err != nil {
					return fmt.Errorf("write structure: %w", err)
				}
				return nil
			}
			_, err = a.out.Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&outPath, "write", "w", "", "write the result to a file instead of stdout")
	cmd.Flags().StringVar(&extract, "extract", "", "extract a ligand given as RESNAME_CHAIN instead")
	cmd.Flags().BoolVar(&listHets, "hets", false, "list the ligands (RESNAME_CHAIN) and exit")
	return cmd
}

func hetsTable(hets []string) table {
	t := table{Header: []string{"ligand"}}
	for _, h := range hets {
		t.Rows = append(t.Rows, []string{h})
	}
	return t
}
