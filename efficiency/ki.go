package efficiency

import (
	"math"
	"strconv"
	"strings"

	"github.com/tikz/dock/errors"
	"github.com/tikz/dock/numeric"
)

const (
	// R is the gas constant in cal/(mol*K).
	R = 1.9871917
	// T is the temperature in K.
	T = 298.15
)

type unitScale struct {
	unit  string
	scale int
}

// kiUnits are ordered from the largest unit down.
var kiUnits = []unitScale{
	{"M", 0}, {"mM", 3}, {"uM", 6}, {"nM", 9}, {"pM", 12},
	{"fM", 15}, {"aM", 18}, {"zM", 21}, {"yM", 24},
}

// kiAliases maps alternative spellings to the unit names above.
var kiAliases = map[string]string{
	"µM": "uM", // micro sign
	"μM": "uM", // greek mu
}

// Ki is an inhibition constant as written with its unit, e.g. "10 nM".
type Ki struct {
	Value float64
	Unit  string
}

// ParseKi parses "<value> <unit>" with unit in M, mM, uM (or µM), nM, pM, fM, aM, zM, yM.
func ParseKi(s string) (Ki, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Ki{}, errors.New(errors.CodeInvalidParam, "Ki must be a value followed by a unit").
			WithDetailf("Ki=%q", s)
	}

	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || !(v > 0) {
		return Ki{}, errors.New(errors.CodeInvalidParam, "Ki value must be a positive number").
			WithDetailf("Ki=%q", s)
	}

	unit := fields[1]
	if alias, ok := kiAliases[unit]; ok {
		unit = alias
	}
	if _, ok := unitExponent(unit); !ok {
		return Ki{}, errors.New(errors.CodeInvalidParam, "unknown Ki unit").
			WithDetailf("unit=%q", fields[1])
	}

	return Ki{Value: v, Unit: unit}, nil
}

func unitExponent(unit string) (int, bool) {
	for _, u := range kiUnits {
		if u.unit == unit {
			return u.scale, true
		}
	}
	return 0, false
}

// Molar returns the constant in mol/L.
func (k Ki) Molar() float64 {
	scale, _ := unitExponent(k.Unit)
	return k.Value / math.Pow(10, float64(scale))
}

// Log returns log10 of the molar constant, rounded to 3 decimals.
func (k Ki) Log() float64 {
	return numeric.Round(math.Log10(k.Molar()), 3)
}

func (k Ki) String() string {
	return numeric.FormatFloat(k.Value) + " " + k.Unit
}

// EnergyToKi converts a binding free energy in kcal/mol to a molar Ki.
func EnergyToKi(energy float64) float64 {
	return math.Exp((energy * 1000) / (R * T))
}

// KiToEnergy converts a molar Ki to a binding free energy in kcal/mol.
func KiToEnergy(ki float64) float64 {
	return R * T * math.Log(ki) / 1000
}

// FormatKi writes a molar Ki in the largest unit where the value is at least 1,
// rounded to 2 decimals, e.g. "3.75 uM". Values below 1 yM give "".
func FormatKi(ki float64) string {
	for _, u := range kiUnits {
		ck := ki * math.Pow(10, float64(u.scale))
		if ck >= 1 {
			return numeric.FormatFloat(numeric.Round(ck, 2)) + " " + u.unit
		}
	}
	return ""
}
