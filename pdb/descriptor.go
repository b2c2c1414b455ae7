package pdb

import (
	"sort"
	"strconv"
	"strings"
)

// elementMass holds standard atomic weights for the elements found in
// receptors and drug-like ligands.
var elementMass = map[string]float64{
	"H":  1.008,
	"D":  2.014,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"Na": 22.990,
	"Mg": 24.305,
	"Si": 28.085,
	"P":  30.974,
	"S":  32.06,
	"Cl": 35.45,
	"K":  39.098,
	"Ca": 40.078,
	"Mn": 54.938,
	"Fe": 55.845,
	"Co": 58.933,
	"Ni": 58.693,
	"Cu": 63.546,
	"Zn": 65.38,
	"Se": 78.971,
	"Br": 79.904,
	"Cd": 112.414,
	"I":  126.904,
}

// Composition summarises the atoms of a structure.
type Composition struct {
	Atoms      int     `json:"atoms"`
	HeavyAtoms int     `json:"heavyAtoms"`
	Bonds      int     `json:"bonds"`
	Residues   int     `json:"residues"`
	Formula    string  `json:"formula"`
	Weight     float64 `json:"weight"`
}

// Describe counts atoms, heavy atoms, CONECT bonds and residues, and derives the
// Hill formula and molecular weight from the explicit atoms.
// Elements without a known mass contribute to counts but not to the weight.
func (pdb *PDB) Describe() Composition {
	atoms := pdb.AllAtoms()
	comp := Composition{Atoms: len(atoms), Residues: int(pdb.TotalLength) + len(pdb.HetResidues)}

	counts := make(map[string]int)
	for _, a := range atoms {
		if !a.IsHydrogen() {
			comp.HeavyAtoms++
		}
		counts[a.Element]++
		comp.Weight += elementMass[a.Element]
	}

	comp.Formula = hillFormula(counts)
	comp.Bonds = pdb.countBonds()

	return comp
}

// countBonds counts distinct atom pairs referenced by CONECT records.
func (pdb *PDB) countBonds() int {
	type pair struct{ a, b int }
	bonds := make(map[pair]bool)

	for _, line := range Lines(string(pdb.RawPDB)) {
		if Kind(line) != KindConect {
			continue
		}
		from, err := Serial(line)
		if err != nil {
			continue
		}
		for start := SerialEnd; ; start += SerialWidth {
			field := strings.TrimSpace(column(line, start, start+SerialWidth))
			if field == "" {
				break
			}
			to, err := strconv.Atoi(field)
			if err != nil {
				break
			}
			p := pair{from, to}
			if to < from {
				p = pair{to, from}
			}
			bonds[p] = true
		}
	}

	return len(bonds)
}

// hillFormula writes C and H first when carbon is present, then the rest alphabetically.
func hillFormula(counts map[string]int) string {
	var elements []string
	for e := range counts {
		if e != "" {
			elements = append(elements, e)
		}
	}

	_, hasC := counts["C"]
	sort.Slice(elements, func(i, j int) bool {
		if hasC {
			ri, rj := hillRank(elements[i]), hillRank(elements[j])
			if ri != rj {
				return ri < rj
			}
		}
		return elements[i] < elements[j]
	})

	var b strings.Builder
	for _, e := range elements {
		b.WriteString(e)
		if counts[e] > 1 {
			b.WriteString(strconv.Itoa(counts[e]))
		}
	}
	return b.String()
}

func hillRank(e string) int {
	switch e {
	case "C":
		return 0
	case "H":
		return 1
	}
	return 2
}
