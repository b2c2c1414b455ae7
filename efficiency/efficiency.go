// Package efficiency derives potency and ligand efficiency metrics from a
// docking energy or an inhibition constant.
package efficiency

import (
	"context"
	"math"
	"strings"

	"github.com/tikz/dock/errors"
	"github.com/tikz/dock/numeric"
)

// Descriptors are the molecular properties reported by a descriptor oracle.
// LogP is nil when the oracle cannot predict it.
type Descriptors struct {
	Atoms      int      `json:"atoms" yaml:"atoms"`
	HeavyAtoms int      `json:"heavyAtoms" yaml:"heavyAtoms"`
	Bonds      int      `json:"bonds" yaml:"bonds"`
	Residues   int      `json:"residues" yaml:"residues"`
	Rotors     int      `json:"rotors" yaml:"rotors"`
	Formula    string   `json:"formula" yaml:"formula"`
	Weight     float64  `json:"weight" yaml:"weight"`
	LogP       *float64 `json:"logP,omitempty" yaml:"logP,omitempty"`
}

// Descriptor computes Descriptors for a ligand PDB record.
type Descriptor interface {
	Describe(ctx context.Context, record string) (Descriptors, error)
}

// Input is the potency of a pose and, optionally, its ligand structure.
// At least one of Energy and Ki must be set.
type Input struct {
	Energy *float64 // kcal/mol
	Ki     string   // e.g. "10 nM"
	Record string   // ligand PDB record
}

// Metrics are the efficiency values of a pose. Structure dependent values are
// nil when no record was given, and the logP dependent ones are nil when logP
// is unavailable.
type Metrics struct {
	Ki         string   `json:"ki" yaml:"ki"`
	LogKi      float64  `json:"logKi" yaml:"logKi"`
	HeavyAtoms int      `json:"heavyAtoms,omitempty" yaml:"heavyAtoms,omitempty"`
	Weight     float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
	LogP       *float64 `json:"logP,omitempty" yaml:"logP,omitempty"`
	LE         *float64 `json:"le,omitempty" yaml:"le,omitempty"`
	SILE       *float64 `json:"sile,omitempty" yaml:"sile,omitempty"`
	FQ         *float64 `json:"fq,omitempty" yaml:"fq,omitempty"`
	LLE        *float64 `json:"lle,omitempty" yaml:"lle,omitempty"`
	LELP       *float64 `json:"lelp,omitempty" yaml:"lelp,omitempty"`
	Missing    []string `json:"missing,omitempty" yaml:"missing,omitempty"` // unavailable descriptors
}

// Assess computes the metrics of a pose. desc may be nil when in.Record is empty.
func Assess(ctx context.Context, desc Descriptor, in Input) (Metrics, error) {
	var m Metrics
	var energy float64

	switch {
	case in.Ki != "":
		ki, err := ParseKi(in.Ki)
		if err != nil {
			return m, err
		}
		m.Ki = strings.Join(strings.Fields(in.Ki), " ")
		m.LogKi = ki.Log()
		if in.Energy != nil {
			energy = *in.Energy
		} else {
			energy = KiToEnergy(ki.Molar())
		}

	case in.Energy != nil:
		energy = *in.Energy
		ki := EnergyToKi(energy)
		m.Ki = FormatKi(ki)
		m.LogKi = numeric.Round(math.Log10(ki), 3)

	default:
		return m, errors.New(errors.CodeEfficiency, "binding energy or Ki is required")
	}

	if in.Record == "" {
		return m, nil
	}
	if desc == nil {
		return m, errors.New(errors.CodeInternal, "no descriptor configured")
	}

	d, err := desc.Describe(ctx, in.Record)
	if err != nil {
		return m, err
	}

	m.HeavyAtoms = d.HeavyAtoms
	m.Weight = d.Weight
	m.LogP = d.LogP

	return m, m.fromDescriptors(energy, d)
}

func (m *Metrics) fromDescriptors(energy float64, d Descriptors) error {
	if d.HeavyAtoms <= 0 {
		return errors.New(errors.CodeEfficiency, "heavy atom count must be positive").
			WithDetailf("heavy atoms=%d", d.HeavyAtoms)
	}
	ha := float64(d.HeavyAtoms)

	le := LigandEfficiency(energy, d.HeavyAtoms)
	sile := numeric.Round(energy/math.Pow(ha, 0.3)*-1, 3)
	m.LE, m.SILE = &le, &sile

	scale := LEScale(d.HeavyAtoms)
	if scale == 0 {
		return errors.New(errors.CodeEfficiency, "fit quality baseline is zero").
			WithDetailf("heavy atoms=%d", d.HeavyAtoms)
	}
	fq := numeric.Round(le/scale, 3)
	m.FQ = &fq

	if d.LogP == nil {
		m.Missing = append(m.Missing, "logP")
		return nil
	}
	logP := *d.LogP

	lle := numeric.Round(-1*m.LogKi-logP, 3)
	m.LLE = &lle

	if le == 0 {
		return errors.New(errors.CodeEfficiency, "ligand efficiency is zero").
			WithDetail("LELP is undefined")
	}
	lelp := numeric.Round(logP/le, 3)
	m.LELP = &lelp

	return nil
}

// LigandEfficiency returns -energy/HA rounded to 3 decimals.
func LigandEfficiency(energy float64, heavyAtoms int) float64 {
	return numeric.Round(energy/float64(heavyAtoms)*-1, 3)
}

// LEScale is the empirical ligand efficiency baseline for a heavy atom count,
// used as the fit quality denominator.
func LEScale(heavyAtoms int) float64 {
	ha := float64(heavyAtoms)
	return 0.0715 + 7.5328/ha + 25.7079/math.Pow(ha, 2) - 361.4722/math.Pow(ha, 3)
}
