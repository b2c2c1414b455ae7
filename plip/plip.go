// Package plip runs the Protein-Ligand Interaction Profiler on a complex and
// reads its XML report.
package plip

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/tikz/dock/errors"
	"github.com/tikz/dock/interaction"
)

// Detector runs the plip executable. It implements interaction.Detector.
type Detector struct {
	Bin     string // plip executable
	WorkDir string // parent of the per-call job directories
}

// NewDetector returns a Detector for the given executable and work dir.
func NewDetector(bin, workDir string) *Detector {
	return &Detector{Bin: bin, WorkDir: workDir}
}

// Analyze writes the complex to a job directory, runs plip with XML output and
// parses the report.
func (d *Detector) Analyze(ctx context.Context, record string) ([]interaction.Site, error) {
	dir, err := os.MkdirTemp(d.WorkDir, "plip-")
	if err != nil {
		return nil, fmt.Errorf("create job dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "complex.pdb")
	if err := os.WriteFile(path, []byte(record), 0644); err != nil {
		return nil, fmt.Errorf("write complex: %w", err)
	}

	cmd := exec.CommandContext(ctx, d.Bin, "-f", path, "-o", dir, "-x")
	out, err := cmd.CombinedOutput()
	if ctx.Err() != nil {
		return nil, errors.Wrap(ctx.Err(), errors.CodeTimeout, "plip interrupted")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInteractionDetection, "plip failed").WithDetail(string(out))
	}

	report, err := os.ReadFile(filepath.Join(dir, "report.xml"))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInteractionDetection, "plip report not found")
	}

	sites, err := ParseReport(report)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInteractionDetection, "parse plip report")
	}

	return sites, nil
}
