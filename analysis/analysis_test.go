package analysis

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tikz/dock/efficiency"
	"github.com/tikz/dock/errors"
	"github.com/tikz/dock/interaction"
	"github.com/tikz/dock/logging"
	"github.com/tikz/dock/metrics"
)

type fakeDetector func(ctx context.Context, record string) ([]interaction.Site, error)

func (f fakeDetector) Analyze(ctx context.Context, record string) ([]interaction.Site, error) {
	return f(ctx, record)
}

func hbondSite(ctx context.Context, record string) ([]interaction.Site, error) {
	return []interaction.Site{{
		ID: "UNL:Z:1",
		HydrogenBonds: []interaction.HydrogenBond{{
			Residue:    interaction.Residue{Chain: "A", Number: 15, Type: "ALA"},
			DistanceHA: 2.1,
			DistanceDA: 3.0,
			Angle:      150,
		}},
	}}, nil
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func energy(v float64) *float64 { return &v }

func TestRun(t *testing.T) {
	receptor := readFixture(t, "receptor.pdb")
	pose := readFixture(t, "pose.pdb")

	r := &Runner{Detector: fakeDetector(hbondSite), Workers: 2, PoseTimeout: time.Minute}
	poses := []Pose{
		{Index: 3, Energy: energy(-7.0), Record: pose},
		{Index: 1, Energy: energy(-9.5), Record: pose},
		{Index: 2, Ki: "10 nM", Record: pose},
	}

	report, err := r.Run(context.Background(), receptor, poses, interaction.NewActiveSite("A:ALA:15"))
	require.NoError(t, err)

	_, err = uuid.Parse(report.RunID)
	require.NoError(t, err)
	assert.Zero(t, report.Failed)

	require.Len(t, report.Poses, 3)
	for i, res := range report.Poses {
		assert.Equal(t, i+1, res.Index)
		assert.NoError(t, res.Err)
		assert.Contains(t, res.Complex, "HETATM   18  C1  UNL")
		require.NotNil(t, res.Efficiency)
	}

	first := report.Poses[0].Efficiency
	assert.Equal(t, "108.74 nM", first.Ki)
	require.NotNil(t, first.LE)
	assert.Equal(t, 3.167, *first.LE)
	assert.Equal(t, []string{"logP"}, first.Missing)
	assert.Equal(t, "10 nM", report.Poses[1].Efficiency.Ki)

	in := report.Interactions
	require.Len(t, in.BindingSites, 3)
	for i, bs := range in.BindingSites {
		assert.Equal(t, i+1, bs.Pose)
	}
	require.Len(t, in.HydrogenBonds, 3)
	for pose := 1; pose <= 3; pose++ {
		assert.Equal(t, interaction.Tags("hydrogen_bond:A:ALA:15"), in.Tags[pose])
	}
}

func TestRunPoseFailureDoesNotAbort(t *testing.T) {
	receptor := readFixture(t, "receptor.pdb")
	pose := readFixture(t, "pose.pdb")
	broken := strings.Replace(pose, "CONECT   12   11", "CONECT   12   99", 1)

	r := &Runner{Detector: fakeDetector(hbondSite)}
	report, err := r.Run(context.Background(), receptor, []Pose{
		{Index: 1, Record: pose},
		{Index: 2, Record: broken},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.NoError(t, report.Poses[0].Err)
	assert.Nil(t, report.Poses[0].Efficiency)
	assert.True(t, errors.IsCode(report.Poses[1].Err, errors.CodeConnectivityIntegrity))

	require.Len(t, report.Interactions.BindingSites, 1)
	assert.Equal(t, 1, report.Interactions.BindingSites[0].Pose)
	require.Contains(t, report.Interactions.Tags, 2)
	assert.Equal(t, interaction.Tags(""), report.Interactions.Tags[2])
}

type fakeDescriptor struct {
	d   efficiency.Descriptors
	err error
}

func (f fakeDescriptor) Describe(ctx context.Context, record string) (efficiency.Descriptors, error) {
	return f.d, f.err
}

func TestRunDescriptorUnavailable(t *testing.T) {
	calls := 0
	det := fakeDetector(func(ctx context.Context, record string) ([]interaction.Site, error) {
		calls++
		return hbondSite(ctx, record)
	})
	desc := fakeDescriptor{err: errors.New(errors.CodeDescriptorUnavailable, "obprop failed")}

	r := &Runner{Detector: det, Descriptor: desc, Workers: 1}
	report, err := r.Run(context.Background(), readFixture(t, "receptor.pdb"), []Pose{
		{Index: 1, Energy: energy(-9.5), Record: readFixture(t, "pose.pdb")},
	}, interaction.NewActiveSite("A:ALA:15"))
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Zero(t, report.Failed)

	res := report.Poses[0]
	assert.NoError(t, res.Err)
	assert.True(t, errors.IsCode(res.EfficiencyErr, errors.CodeDescriptorUnavailable))
	assert.NotEmpty(t, res.EfficiencyError)
	require.NotNil(t, res.Efficiency)
	assert.Equal(t, "108.74 nM", res.Efficiency.Ki)
	assert.Nil(t, res.Efficiency.LE)
	assert.Contains(t, res.Efficiency.Missing, MissingDescriptors)

	require.Len(t, report.Interactions.HydrogenBonds, 1)
	assert.Equal(t, interaction.Tags("hydrogen_bond:A:ALA:15"), report.Interactions.Tags[1])
}

func TestRunEfficiencyErrorKeepsInteractions(t *testing.T) {
	desc := fakeDescriptor{d: efficiency.Descriptors{HeavyAtoms: 0}}

	r := &Runner{Detector: fakeDetector(hbondSite), Descriptor: desc}
	report, err := r.Run(context.Background(), readFixture(t, "receptor.pdb"), []Pose{
		{Index: 1, Energy: energy(-7.0), Record: readFixture(t, "pose.pdb")},
	}, nil)
	require.NoError(t, err)

	res := report.Poses[0]
	assert.NoError(t, res.Err)
	assert.True(t, errors.IsCode(res.EfficiencyErr, errors.CodeEfficiency))
	assert.Nil(t, res.Efficiency)
	assert.Len(t, report.Interactions.HydrogenBonds, 1)
}

func TestRunDetectorError(t *testing.T) {
	pose := readFixture(t, "pose.pdb")
	det := fakeDetector(func(ctx context.Context, record string) ([]interaction.Site, error) {
		return nil, errors.New(errors.CodeInteractionDetection, "no binding site")
	})

	report, err := (&Runner{Detector: det}).Run(context.Background(), readFixture(t, "receptor.pdb"), []Pose{{Index: 1, Record: pose}}, nil)
	require.NoError(t, err)
	assert.True(t, errors.IsCode(report.Poses[0].Err, errors.CodeInteractionDetection))
	assert.NotEmpty(t, report.Poses[0].Complex)
}

func TestRunPoseTimeout(t *testing.T) {
	receptor := readFixture(t, "receptor.pdb")
	pose := readFixture(t, "pose.pdb")
	stuck := strings.ReplaceAll(pose, "UNL", "BLK")

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	det := fakeDetector(func(ctx context.Context, record string) ([]interaction.Site, error) {
		if strings.Contains(record, "BLK") {
			<-release
		}
		return hbondSite(ctx, record)
	})

	r := &Runner{Detector: det, Workers: 2, PoseTimeout: 50 * time.Millisecond}
	report, err := r.Run(context.Background(), receptor, []Pose{
		{Index: 1, Record: stuck},
		{Index: 2, Record: pose},
	}, nil)
	require.NoError(t, err)

	assert.True(t, errors.IsCode(report.Poses[0].Err, errors.CodeTimeout))
	assert.NoError(t, report.Poses[1].Err)
	assert.Equal(t, 1, report.Failed)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{Detector: fakeDetector(hbondSite)}
	_, err := r.Run(ctx, readFixture(t, "receptor.pdb"), []Pose{{Index: 1, Record: readFixture(t, "pose.pdb")}}, nil)
	assert.True(t, errors.IsCode(err, errors.CodeTimeout))
}

func TestRunObservability(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logging.WithContext(context.Background(), zap.New(core))
	m := metrics.New()

	pose := readFixture(t, "pose.pdb")
	r := &Runner{Detector: fakeDetector(hbondSite), Metrics: m}
	report, err := r.Run(ctx, readFixture(t, "receptor.pdb"), []Pose{
		{Index: 1, Record: pose},
		{Index: 2, Record: "CONECT    1    2\n"},
	}, nil)
	require.NoError(t, err)

	done := logs.FilterMessage("batch done").All()
	require.Len(t, done, 1)
	assert.Equal(t, report.RunID, done[0].ContextMap()["run_id"])
	assert.Equal(t, int64(1), done[0].ContextMap()["failed"])
	assert.Equal(t, 1, logs.FilterMessage("pose failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("pose finished").Len())

	n, err := testutil.GatherAndCount(m.Registry, "dock_poses_total", "dock_interactions_total", "dock_batches_total")
	require.NoError(t, err)
	assert.Equal(t, 4, n) // ok, failed, hydrogen_bond, batches
}
