// Package analysis runs the per-pose pipeline over a docking batch: complex
// assembly, ligand efficiency and interaction profiling.
package analysis

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tikz/dock/complex"
	"github.com/tikz/dock/efficiency"
	"github.com/tikz/dock/errors"
	"github.com/tikz/dock/interaction"
	"github.com/tikz/dock/logging"
	"github.com/tikz/dock/metrics"
)

// Pipeline stages, used as metric labels.
const (
	StageMerge      = "merge"
	StageEfficiency = "efficiency"
	StageDetect     = "detect"
)

// MissingDescriptors marks metrics skipped because the descriptor source failed.
const MissingDescriptors = "descriptors"

// Pose is one docked ligand conformation.
type Pose struct {
	Index  int
	Energy *float64 // kcal/mol, nil when unknown
	Ki     string
	Record string // ligand PDB record
}

// PoseResult is the outcome of one pose. Err is set when the merge or the
// detection failed; the fields of the stages that completed are kept.
// Efficiency failures never fail the pose and are kept in EfficiencyErr.
type PoseResult struct {
	Index           int                 `json:"pose" yaml:"pose"`
	Complex         string              `json:"-" yaml:"-"`
	Efficiency      *efficiency.Metrics `json:"efficiency,omitempty" yaml:"efficiency,omitempty"`
	Sites           []interaction.Site  `json:"sites,omitempty" yaml:"sites,omitempty"`
	Duration        time.Duration       `json:"duration" yaml:"duration"`
	Err             error               `json:"-" yaml:"-"`
	Error           string              `json:"error,omitempty" yaml:"error,omitempty"`
	EfficiencyErr   error               `json:"-" yaml:"-"`
	EfficiencyError string              `json:"efficiencyError,omitempty" yaml:"efficiencyError,omitempty"`
}

// Report is the outcome of a batch.
type Report struct {
	RunID        string              `json:"runId" yaml:"runId"`
	Poses        []PoseResult        `json:"poses" yaml:"poses"`
	Interactions *interaction.Result `json:"interactions" yaml:"interactions"`
	Failed       int                 `json:"failed" yaml:"failed"`
}

// Runner processes batches. Detector may be nil to skip interaction
// profiling; Descriptor defaults to efficiency.StructureDescriptor.
type Runner struct {
	Detector    interaction.Detector
	Descriptor  efficiency.Descriptor
	Metrics     *metrics.Collector
	Workers     int
	PoseTimeout time.Duration
}

// Run processes every pose against the receptor record. Pose failures are
// reported on their PoseResult and never abort the batch. Results and
// aggregated interactions follow pose index order.
func (r *Runner) Run(ctx context.Context, receptor string, poses []Pose, active interaction.ActiveSite) (*Report, error) {
	report := &Report{RunID: uuid.New().String()}
	log := logging.FromContext(ctx).With(zap.String("run_id", report.RunID))
	start := time.Now()

	workers := r.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	results := make([]PoseResult, len(poses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range poses {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.runPose(logging.WithContext(gctx, log), receptor, p)
			return nil
		})
	}

	// only a cancelled parent context ends the batch early
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, errors.CodeTimeout, "batch interrupted")
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Index < results[j].Index })

	// failed poses still get an (empty) tag entry
	sites := make([]interaction.PoseSites, 0, len(results))
	for _, res := range results {
		ps := interaction.PoseSites{Pose: res.Index}
		if res.Err != nil {
			report.Failed++
		} else {
			ps.Sites = res.Sites
		}
		sites = append(sites, ps)
	}
	report.Poses = results
	report.Interactions = interaction.Aggregate(sites, active)

	for _, c := range interaction.Categories {
		r.Metrics.AddInteractions(string(c), len(report.Interactions.Rows(c)))
	}
	r.Metrics.ObserveBatch()

	log.Info("batch done",
		zap.Int("poses", len(poses)),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", time.Since(start)))
	return report, nil
}

// runPose bounds a pose by the pose timeout, also when a stage ignores its
// context.
func (r *Runner) runPose(ctx context.Context, receptor string, p Pose) PoseResult {
	log := logging.FromContext(ctx).With(zap.Int("pose", p.Index))
	start := time.Now()

	if r.PoseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.PoseTimeout)
		defer cancel()
	}

	log.Debug("pose started")

	done := make(chan PoseResult, 1)
	go func() { done <- r.process(ctx, receptor, p) }()

	var res PoseResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res = PoseResult{Index: p.Index, Err: errors.Wrap(ctx.Err(), errors.CodeTimeout, fmt.Sprintf("pose %d timed out", p.Index))}
	}
	if res.Err != nil && ctx.Err() != nil && !errors.IsCode(res.Err, errors.CodeTimeout) {
		res.Err = errors.Wrap(res.Err, errors.CodeTimeout, fmt.Sprintf("pose %d timed out", p.Index))
	}
	res.Duration = time.Since(start)

	r.Metrics.ObservePose(res.Err)
	if res.Err != nil {
		res.Error = res.Err.Error()
		log.Warn("pose failed", zap.Duration("duration", res.Duration), zap.Error(res.Err))
	} else {
		log.Debug("pose finished", zap.Duration("duration", res.Duration))
	}
	return res
}

func (r *Runner) process(ctx context.Context, receptor string, p Pose) PoseResult {
	res := PoseResult{Index: p.Index}

	err := r.stage(StageMerge, func() (err error) {
		res.Complex, err = complex.Merge(receptor, p.Record)
		return err
	})
	if err != nil {
		res.Err = err
		return res
	}

	if p.Energy != nil || p.Ki != "" {
		desc := r.Descriptor
		if desc == nil {
			desc = efficiency.StructureDescriptor{}
		}
		_ = r.stage(StageEfficiency, func() error {
			res.Efficiency, res.EfficiencyErr = assess(ctx, desc, p)
			return res.EfficiencyErr
		})
		if res.EfficiencyErr != nil {
			res.EfficiencyError = res.EfficiencyErr.Error()
			logging.FromContext(ctx).Warn("efficiency incomplete",
				zap.Int("pose", p.Index), zap.Error(res.EfficiencyErr))
		}
	}

	if r.Detector != nil {
		err = r.stage(StageDetect, func() (err error) {
			res.Sites, err = r.Detector.Analyze(ctx, res.Complex)
			return err
		})
		if err != nil {
			res.Err = err
			return res
		}
	}

	return res
}

// assess computes the pose metrics. When the descriptor cannot describe the
// ligand, the potency metrics are still returned with the structure dependent
// ones marked missing.
func assess(ctx context.Context, desc efficiency.Descriptor, p Pose) (*efficiency.Metrics, error) {
	m, err := efficiency.Assess(ctx, desc, efficiency.Input{Energy: p.Energy, Ki: p.Ki, Record: p.Record})
	if err == nil {
		return &m, nil
	}
	if !errors.IsCode(err, errors.CodeDescriptorUnavailable) {
		return nil, err
	}

	potency, perr := efficiency.Assess(ctx, nil, efficiency.Input{Energy: p.Energy, Ki: p.Ki})
	if perr != nil {
		return nil, err
	}
	potency.Missing = append(potency.Missing, MissingDescriptors)
	return &potency, err
}

func (r *Runner) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	r.Metrics.ObserveStage(name, time.Since(start))
	return err
}
