// Package obprop reads molecular descriptors from Open Babel's obprop.
package obprop

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/tikz/dock/efficiency"
	"github.com/tikz/dock/errors"
	"github.com/tikz/dock/pdb"
)

// Descriptor runs obprop on a ligand record. It implements efficiency.Descriptor.
type Descriptor struct {
	Bin     string
	WorkDir string
}

// NewDescriptor returns a Descriptor for the given executable and work dir.
func NewDescriptor(bin, workDir string) *Descriptor {
	return &Descriptor{Bin: bin, WorkDir: workDir}
}

// Describe writes the record to a temp file and parses the obprop table for it.
// Heavy atoms are counted from the record itself.
func (d *Descriptor) Describe(ctx context.Context, record string) (efficiency.Descriptors, error) {
	var desc efficiency.Descriptors

	p, err := pdb.NewPDBFromRaw([]byte(record))
	if err != nil {
		return desc, errors.Wrap(err, errors.CodeRecordFormat, "parse ligand")
	}

	f, err := os.CreateTemp(d.WorkDir, "ligand-*.pdb")
	if err != nil {
		return desc, fmt.Errorf("create ligand file: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(record); err != nil {
		f.Close()
		return desc, fmt.Errorf("write ligand file: %w", err)
	}
	f.Close()

	cmd := exec.CommandContext(ctx, d.Bin, f.Name())
	out, err := cmd.Output()
	if ctx.Err() != nil {
		return desc, errors.Wrap(ctx.Err(), errors.CodeTimeout, "obprop interrupted")
	}
	if err != nil {
		return desc, errors.Wrap(err, errors.CodeDescriptorUnavailable, "obprop failed")
	}

	props := Parse(string(out))
	if len(props) == 0 {
		return desc, errors.New(errors.CodeDescriptorUnavailable, "obprop returned no properties")
	}

	desc = props.Descriptors()
	desc.HeavyAtoms = p.Describe().HeavyAtoms
	return desc, nil
}

// Properties is the key/value table of the first molecule in obprop output.
type Properties map[string]string

// Parse reads "key value" lines up to the first "$$$$" separator.
func Parse(out string) Properties {
	props := make(Properties)
	s := bufio.NewScanner(strings.NewReader(out))
	for s.Scan() {
		l := strings.TrimSpace(s.Text())
		if l == "$$$$" {
			break
		}
		fields := strings.Fields(l)
		if len(fields) < 2 {
			continue
		}
		props[fields[0]] = strings.Join(fields[1:], " ")
	}
	return props
}

func (p Properties) intValue(key string) int {
	v, _ := strconv.Atoi(p[key])
	return v
}

func (p Properties) floatValue(key string) (float64, bool) {
	v, err := strconv.ParseFloat(p[key], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Descriptors maps the table to efficiency descriptors. LogP stays nil when
// obprop could not predict it.
func (p Properties) Descriptors() efficiency.Descriptors {
	d := efficiency.Descriptors{
		Atoms:    p.intValue("num_atoms"),
		Bonds:    p.intValue("num_bonds"),
		Residues: p.intValue("num_residues"),
		Rotors:   p.intValue("num_rotors"),
		Formula:  p["formula"],
	}
	d.Weight, _ = p.floatValue("mol_weight")
	if logP, ok := p.floatValue("logP"); ok {
		d.LogP = &logP
	}
	return d
}
