package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tikz/dock/analysis"
	"github.com/tikz/dock/errors"
	"github.com/tikz/dock/interaction"
	"github.com/tikz/dock/metrics"
	"github.com/tikz/dock/pdb"
	"github.com/tikz/dock/plip"
)

type interactionsOptions struct {
	Energies   []float64
	Ki         string
	ActiveSite string
	SiteRecord string
	NearLigand string
	Cutoff     float64
	Descriptor string
	Workers    int
}

func newInteractionsCommand(a *app) *cobra.Command {
	opts := &interactionsOptions{}

	cmd := &cobra.Command{
		Use:   "interactions RECEPTOR POSES...",
		Short: "Profile the interactions and ligand efficiency of docked poses",
		Long: "Each pose file may hold several MODEL blocks; poses are numbered from 1 in\n" +
			"file and model order. Pose energies come from --energy or from the\n" +
			"REMARK VINA RESULT line of each pose.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractions(cmd.Context(), opts, args[0], args[1:])
		},
	}

	f := cmd.Flags()
	f.Float64SliceVarP(&opts.Energies, "energy", "e", nil, "binding energies in kcal/mol, one per pose")
	f.StringVar(&opts.Ki, "ki", "", `inhibition constant applied to every pose, e.g. "10 nM"`)
	f.StringVar(&opts.ActiveSite, "active-site", "", "active-site residues, e.g. A:HIS:41,A:CYS:145")
	f.StringVar(&opts.SiteRecord, "site", "", "take the active site from a receptor SITE record, e.g. AC1")
	f.StringVar(&opts.NearLigand, "near", "", "take the active site from residues near a ligand RESNAME_CHAIN")
	f.Float64Var(&opts.Cutoff, "cutoff", 0, "distance cutoff for --near in angstroms (default from config)")
	f.StringVar(&opts.Descriptor, "descriptor", "obprop", "descriptor source (obprop, structure)")
	f.IntVar(&opts.Workers, "workers", 0, "parallel poses (default from config)")
	return cmd
}

func (a *app) runInteractions(ctx context.Context, opts *interactionsOptions, receptorPath string, posePaths []string) error {
	receptor, err := pdb.NewPDBFromFile(receptorPath)
	if err != nil {
		return errors.Wrap(err, errors.CodeRecordFormat, "load receptor")
	}

	active, err := a.activeSite(receptor, opts)
	if err != nil {
		return err
	}

	poses, err := readPoses(posePaths, opts.Energies, opts.Ki)
	if err != nil {
		return err
	}

	desc, err := a.descriptor(opts.Descriptor)
	if err != nil {
		return err
	}

	workers := a.cfg.Analysis.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}

	var m *metrics.Collector
	if a.cfg.Metrics.Textfile != "" {
		m = metrics.New()
	}

	runner := &analysis.Runner{
		Detector:    plip.NewDetector(a.cfg.Tools.PLIP, a.cfg.Analysis.WorkDir),
		Descriptor:  desc,
		Metrics:     m,
		Workers:     workers,
		PoseTimeout: a.cfg.Analysis.PoseTimeout,
	}

	report, err := runner.Run(ctx, string(receptor.RawPDB), poses, active)
	if err != nil {
		return err
	}

	if m != nil {
		if err := m.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
			a.log.Warn("metrics export failed", zap.Error(err))
		}
	}

	return a.print(report, reportText(report), reportTables(report)...)
}

func (a *app) activeSite(receptor *pdb.PDB, opts *interactionsOptions) (interaction.ActiveSite, error) {
	switch {
	case opts.ActiveSite != "":
		return interaction.ParseActiveSite(opts.ActiveSite)
	case opts.SiteRecord != "":
		return interaction.ActiveSiteFromSITE(receptor, opts.SiteRecord)
	case opts.NearLigand != "":
		cutoff := a.cfg.ActiveSite.Cutoff
		if opts.Cutoff > 0 {
			cutoff = opts.Cutoff
		}
		return interaction.ActiveSiteNearLigand(receptor, opts.NearLigand, cutoff)
	}
	return interaction.NewActiveSite(), nil
}

// readPoses splits every file into its models. energies, when given, must
// hold one value per pose.
func readPoses(paths []string, energies []float64, ki string) ([]analysis.Pose, error) {
	var poses []analysis.Pose
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read pose: %w", err)
		}
		for _, record := range pdb.SplitModels(raw) {
			p := analysis.Pose{Index: len(poses) + 1, Ki: ki, Record: record}
			if e, ok := pdb.VinaEnergy(record); ok {
				p.Energy = &e
			}
			poses = append(poses, p)
		}
	}

	if len(energies) > 0 {
		if len(energies) != len(poses) {
			return nil, errors.New(errors.CodeInvalidParam, "energy count does not match pose count").
				WithDetailf("energies=%d poses=%d", len(energies), len(poses))
		}
		for i := range poses {
			e := energies[i]
			poses[i].Energy = &e
		}
	}
	return poses, nil
}

func reportText(r *analysis.Report) func(w io.Writer) error {
	return func(w io.Writer) error {
		fmt.Fprintf(w, "run %s: %d poses, %d failed\n", r.RunID, len(r.Poses), r.Failed)
		for _, p := range r.Poses {
			if p.Err != nil {
				fmt.Fprintf(w, "pose %d: error: %v\n", p.Index, p.Err)
				continue
			}
			line := fmt.Sprintf("pose %d: %d sites", p.Index, len(p.Sites))
			if p.Efficiency != nil {
				line += fmt.Sprintf(", Ki %s, LE %s", p.Efficiency.Ki, optional(p.Efficiency.LE))
			}
			if p.EfficiencyErr != nil {
				line += ", efficiency " + errors.GetCode(p.EfficiencyErr).String()
			}
			if tags := r.Interactions.Tags[p.Index]; tags != "" {
				line += ", active site: " + string(tags)
			}
			fmt.Fprintln(w, line)
		}
		return nil
	}
}

func reportTables(r *analysis.Report) []table {
	poses := table{
		Title:  "poses",
		Header: []string{"pose", "status", "Ki", "LE", "LLE", "tags"},
	}
	for _, p := range r.Poses {
		status := "ok"
		if p.Err != nil {
			status = errors.GetCode(p.Err).String()
		}
		row := []string{strconv.Itoa(p.Index), status, "", "", "", string(r.Interactions.Tags[p.Index])}
		if p.Efficiency != nil {
			row[2], row[3], row[4] = p.Efficiency.Ki, optional(p.Efficiency.LE), optional(p.Efficiency.LLE)
		}
		poses.Rows = append(poses.Rows, row)
	}

	tables := []table{poses}
	for _, c := range interaction.Categories {
		rows := r.Interactions.Rows(c)
		if len(rows) == 0 {
			continue
		}
		t := table{Title: string(c), Header: rows[0].Columns()}
		for _, row := range rows {
			t.Rows = append(t.Rows, row.Values())
		}
		tables = append(tables, t)
	}
	return tables
}
