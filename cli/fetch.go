package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tikz/dock/pdb"
)

type fetchView struct {
	ID     string   `json:"id" yaml:"id"`
	Path   string   `json:"path" yaml:"path"`
	Chains []string `json:"chains" yaml:"chains"`
	Hets   []string `json:"hets" yaml:"hets"`
}

func newFetchCommand(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "fetch PDBID",
		Short: "Download a structure from RCSB unless already in the output directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pdb.Load(cmd.Context(), dir, args[0])
			if err != nil {
				return err
			}
			path := p.LocalPath
			a.log.Debug("structure ready", zap.String("id", p.ID), zap.String("path", path))

			v := fetchView{ID: p.ID, Path: path, Hets: p.HetLigands()}
			for chain := range p.Chains {
				v.Chains = append(v.Chains, chain)
			}
			sort.Strings(v.Chains)

			return a.print(v, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s -> %s\nchains %s\nhets   %s\n",
					v.ID, v.Path, strings.Join(v.Chains, " "), strings.Join(v.Hets, " "))
				return err
			}, table{
				Header: []string{"id", "path", "chains", "hets"},
				Rows:   [][]string{{v.ID, v.Path, strings.Join(v.Chains, " "), strings.Join(v.Hets, " ")}},
			})
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	return cmd
}
