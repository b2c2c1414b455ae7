package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tikz/dock/errors"
	"github.com/tikz/dock/fpocket"
	"github.com/tikz/dock/gridbox"
	"github.com/tikz/dock/pdb"
)

type boundsView struct {
	Min pdb.Point `json:"min" yaml:"min"`
	Max pdb.Point `json:"max" yaml:"max"`
}

type boxView struct {
	gridbox.Box `yaml:",inline"`
	Min         pdb.Point       `json:"min" yaml:"min"`
	Max         pdb.Point       `json:"max" yaml:"max"`
	Sphere      *gridbox.Sphere `json:"sphere,omitempty" yaml:"sphere,omitempty"`
	Pocket      *pocketView     `json:"pocket,omitempty" yaml:"pocket,omitempty"`
	AtomTypes   []string        `json:"atomTypes,omitempty" yaml:"atomTypes,omitempty"`
}

type pocketView struct {
	Number    int     `json:"number" yaml:"number"`
	DrugScore float64 `json:"drugScore" yaml:"drugScore"`
}

func newBoxCommand(a *app) *cobra.Command {
	var spacing float64

	cmd := &cobra.Command{
		Use:   "box",
		Short: "Convert and derive docking search boxes",
	}
	cmd.PersistentFlags().Float64Var(&spacing, "spacing", 0, "grid spacing in angstroms (default from config)")

	gridSpacing := func() float64 {
		if spacing > 0 {
			return spacing
		}
		return a.cfg.Grid.Spacing
	}

	var center []float64
	dimsCmd := &cobra.Command{
		Use:   "dims X Y Z",
		Short: "Box corners from grid-point counts and a center",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := counts(args)
			if err != nil {
				return err
			}
			c, err := point("center", center)
			if err != nil {
				return err
			}

			min, max := gridbox.DimensionsToBounds(n[0], n[1], n[2], c, gridSpacing())
			v := boundsView{Min: min, Max: max}
			return a.print(v, v.text, v.table())
		},
	}
	dimsCmd.Flags().Float64SliceVar(&center, "center", nil, "box center x,y,z")
	dimsCmd.MarkFlagRequired("center")

	var minFlag, maxFlag []float64
	boundsCmd := &cobra.Command{
		Use:   "bounds",
		Short: "Grid-point counts and center from box corners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			min, err := point("min", minFlag)
			if err != nil {
				return err
			}
			max, err := point("max", maxFlag)
			if err != nil {
				return err
			}

			box, err := gridbox.BoundsToDimensions(min, max, gridSpacing())
			if err != nil {
				return err
			}
			return a.printBox(newBoxView(box))
		},
	}
	boundsCmd.Flags().Float64SliceVar(&minFlag, "min", nil, "minimum corner x,y,z")
	boundsCmd.Flags().Float64SliceVar(&maxFlag, "max", nil, "maximum corner x,y,z")
	boundsCmd.MarkFlagRequired("min")
	boundsCmd.MarkFlagRequired("max")

	structureCmd := &cobra.Command{
		Use:   "structure FILE",
		Short: "Box enclosing every atom of a structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pdb.NewPDBFromFile(args[0])
			if err != nil {
				return errors.Wrap(err, errors.CodeRecordFormat, "load structure")
			}
			box, err := gridbox.FromStructure(p, gridSpacing())
			if err != nil {
				return err
			}
			return a.printBox(newBoxView(box))
		},
	}

	var selector string
	var buffer float64
	ligandCmd := &cobra.Command{
		Use:   "ligand FILE",
		Short: "Box around a co-crystallized ligand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pdb.NewPDBFromFile(args[0])
			if err != nil {
				return errors.Wrap(err, errors.CodeRecordFormat, "load structure")
			}
			box, sphere, err := gridbox.FromLigand(p, selector, buffer, gridSpacing())
			if err != nil {
				return err
			}
			v := newBoxView(box)
			v.Sphere = &sphere
			return a.printBox(v)
		},
	}
	ligandCmd.Flags().StringVarP(&selector, "ligand", "l", "", "ligand as RESNAME_CHAIN, e.g. ATP_A")
	ligandCmd.Flags().Float64Var(&buffer, "buffer", 5, "angstroms added to the ligand radius")
	ligandCmd.MarkFlagRequired("ligand")

	var number int
	var padding float64
	pocketCmd := &cobra.Command{
		Use:   "pocket FILE",
		Short: "Box around a pocket detected by fpocket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pdb.NewPDBFromFile(args[0])
			if err != nil {
				return errors.Wrap(err, errors.CodeRecordFormat, "load structure")
			}
			results, err := fpocket.Run(cmd.Context(), a.cfg.Tools.Fpocket, a.cfg.Analysis.WorkDir, p)
			if err != nil {
				return err
			}
			pocket, ok := results.Pocket(number)
			if !ok {
				return errors.New(errors.CodeNotFound, "pocket not found").WithDetailf("pocket=%d pockets=%d", number, len(results.Pockets))
			}
			box, err := gridbox.FromPocket(pocket, padding, gridSpacing())
			if err != nil {
				return err
			}
			v := newBoxView(box)
			v.Pocket = &pocketView{Number: pocket.Number, DrugScore: pocket.DrugScore}
			return a.printBox(v)
		},
	}
	pocketCmd.Flags().IntVarP(&number, "pocket", "p", 1, "pocket number, fpocket ranks best first")
	pocketCmd.Flags().Float64Var(&padding, "padding", 2, "angstroms added on every side")

	pdbqtCmd := &cobra.Command{
		Use:   "pdbqt FILE X Y Z",
		Short: "Box of X*Y*Z grid points centered on a prepared PDBQT ligand",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := counts(args[1:])
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, errors.CodeNotFound, "read ligand")
			}
			c, err := pdb.PDBQTCenter(raw)
			if err != nil {
				return errors.Wrap(err, errors.CodeRecordFormat, "ligand center").WithDetail(args[0])
			}

			v := newBoxView(gridbox.Box{X: n[0], Y: n[1], Z: n[2], Spacing: gridSpacing(), Center: c})
			v.AtomTypes = pdb.PDBQTAtomTypes(raw)
			return a.printBox(v)
		},
	}

	cmd.AddCommand(dimsCmd, boundsCmd, structureCmd, ligandCmd, pocketCmd, pdbqtCmd)
	return cmd
}

// counts parses X Y Z grid-point counts.
func counts(args []string) ([3]int, error) {
	var n [3]int
	for i, s := range args {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return n, fmt.Errorf("invalid grid-point count %q", s)
		}
		n[i] = v
	}
	return n, nil
}

func newBoxView(box gridbox.Box) boxView {
	min, max := box.Bounds()
	return boxView{Box: box, Min: min, Max: max}
}

func (a *app) printBox(v boxView) error {
	return a.print(v, v.text, v.table())
}

func (v boundsView) text(w io.Writer) error {
	_, err := fmt.Fprintf(w, "min %s\nmax %s\n", formatPoint(v.Min), formatPoint(v.Max))
	return err
}

func (v boundsView) table() table {
	return table{
		Header: []string{"corner", "x", "y", "z"},
		Rows: [][]string{
			pointRow("min", v.Min),
			pointRow("max", v.Max),
		},
	}
}

func (v boxView) text(w io.Writer) error {
	fmt.Fprintf(w, "center  %s\n", formatPoint(v.Center))
	fmt.Fprintf(w, "points  %d %d %d\n", v.X, v.Y, v.Z)
	fmt.Fprintf(w, "spacing %g\n", v.Spacing)
	fmt.Fprintf(w, "min     %s\n", formatPoint(v.Min))
	fmt.Fprintf(w, "max     %s\n", formatPoint(v.Max))
	if v.Sphere != nil {
		fmt.Fprintf(w, "radius  %.3f\n", v.Sphere.Radius)
	}
	if v.Pocket != nil {
		fmt.Fprintf(w, "pocket  %d (drug score %.4f)\n", v.Pocket.Number, v.Pocket.DrugScore)
	}
	if len(v.AtomTypes) > 0 {
		fmt.Fprintf(w, "types   %s\n", strings.Join(v.AtomTypes, " "))
	}
	return nil
}

func (v boxView) table() table {
	return table{
		Header: []string{"", "x", "y", "z"},
		Rows: [][]string{
			pointRow("center", v.Center),
			{"points", strconv.Itoa(v.X), strconv.Itoa(v.Y), strconv.Itoa(v.Z)},
			pointRow("min", v.Min),
			pointRow("max", v.Max),
		},
	}
}

func pointRow(name string, p pdb.Point) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }
	return []string{name, f(p.X), f(p.Y), f(p.Z)}
}
