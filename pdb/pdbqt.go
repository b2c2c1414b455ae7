package pdb

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tikz/dock/numeric"
)

// PDBQTAtomTypes returns the sorted set of AutoDock atom types, the last
// whitespace separated field of each ATOM/HETATM line.
func PDBQTAtomTypes(raw []byte) []string {
	seen := make(map[string]bool)
	var types []string
	for _, line := range Lines(string(raw)) {
		kind := Kind(line)
		if kind != KindAtom && kind != KindHetatm {
			continue
		}
		cols := strings.Fields(line)
		if len(cols) == 0 {
			continue
		}
		t := cols[len(cols)-1]
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	sort.Strings(types)
	return types
}

// PDBQTCenter returns the mean ATOM/HETATM coordinate of a PDBQT file, rounded
// to 3 decimals. Coordinates are read from the fixed PDB columns 31-54, which
// PDBQT keeps whether or not the chain identifier is blank.
func PDBQTCenter(raw []byte) (Point, error) {
	var c Point
	n := 0
	for i, line := range Lines(string(raw)) {
		kind := Kind(line)
		if kind != KindAtom && kind != KindHetatm {
			continue
		}

		var xyz [3]float64
		for j := range xyz {
			v, err := parseCoord(line, 30+8*j, 38+8*j)
			if err != nil {
				return Point{}, fmt.Errorf("line %d: %w", i+1, err)
			}
			xyz[j] = v
		}
		c.X += xyz[0]
		c.Y += xyz[1]
		c.Z += xyz[2]
		n++
	}

	if n == 0 {
		return Point{}, errors.New("no atoms found")
	}

	return Point{
		X: numeric.Round(c.X/float64(n), 3),
		Y: numeric.Round(c.Y/float64(n), 3),
		Z: numeric.Round(c.Z/float64(n), 3),
	}, nil
}
