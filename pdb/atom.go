package pdb

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Atom represents a single atom in the structure.
// It contains all the columns from an ATOM or HETATM record in a PDB file.
type Atom struct {
	// PDB columns for the ATOM tag
	Het           bool
	Number        int64
	Name          string
	Residue       string
	Chain         string
	ResidueNumber int64
	X             float64
	Y             float64
	Z             float64
	Occupancy     float64
	BFactor       float64
	Element       string
	Charge        string
}

// IsHydrogen reports whether the atom is a hydrogen (or deuterium).
func (a *Atom) IsHydrogen() bool {
	return a.Element == "H" || a.Element == "D"
}

// column returns line[start:end] clipped to the line length.
func column(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return line[start:end]
}

// ParseAtom parses a single ATOM or HETATM line.
// https://www.wwpdb.org/documentation/file-format-content/format33/sect9.html#ATOM
func ParseAtom(line string) (*Atom, error) {
	kind := Kind(line)
	if kind != KindAtom && kind != KindHetatm {
		return nil, fmt.Errorf("not an atom record: %q", column(line, 0, 6))
	}

	var atom Atom
	var err error
	atom.Het = kind == KindHetatm

	atom.Number, err = strconv.ParseInt(strings.TrimSpace(column(line, 6, 11)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("atom serial: %w", err)
	}
	atom.Name = strings.TrimSpace(column(line, 12, 16))
	atom.Residue = strings.TrimSpace(column(line, 17, 20))
	atom.Chain = strings.TrimSpace(column(line, 21, 22))
	atom.ResidueNumber, _ = strconv.ParseInt(strings.TrimSpace(column(line, 22, 26)), 10, 64)

	if atom.X, err = parseCoord(line, 30, 38); err != nil {
		return nil, err
	}
	if atom.Y, err = parseCoord(line, 38, 46); err != nil {
		return nil, err
	}
	if atom.Z, err = parseCoord(line, 46, 54); err != nil {
		return nil, err
	}

	atom.Occupancy, _ = strconv.ParseFloat(strings.TrimSpace(column(line, 54, 60)), 64)
	atom.BFactor, _ = strconv.ParseFloat(strings.TrimSpace(column(line, 60, 66)), 64)
	atom.Element = normalizeElement(strings.TrimSpace(column(line, 76, 78)))
	atom.Charge = strings.TrimSpace(column(line, 78, 80))

	if atom.Element == "" {
		atom.Element = elementFromName(column(line, 12, 16))
	}

	return &atom, nil
}

func parseCoord(line string, start, end int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(column(line, start, end)), 64)
	if err != nil {
		return 0, fmt.Errorf("coordinate columns %d-%d: %w", start+1, end, err)
	}
	return v, nil
}

// elementFromName guesses the element from the 4 character atom name field,
// used when columns 77-78 are blank as in many docking outputs.
// Two-letter elements start in column 13 (" CA " is carbon, "CA  " is calcium).
func elementFromName(name string) string {
	if len(name) >= 2 && unicode.IsLetter(rune(name[0])) && unicode.IsLetter(rune(name[1])) {
		if e := normalizeElement(name[0:2]); twoLetterElements[e] {
			return e
		}
	}

	for _, r := range name {
		if unicode.IsLetter(r) {
			return strings.ToUpper(string(r))
		}
	}
	return ""
}

var twoLetterElements = map[string]bool{
	"Cl": true, "Br": true, "Fe": true, "Zn": true, "Mg": true, "Mn": true, "Cu": true,
	"Co": true, "Ni": true, "Se": true, "Si": true, "Na": true, "Ca": true, "Cd": true,
}

func normalizeElement(e string) string {
	e = strings.TrimSpace(e)
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return strings.ToUpper(e)
	}
	return strings.ToUpper(e[:1]) + strings.ToLower(e[1:])
}

// extractPDBATMRecords extracts either ATOM or HETATM records.
func (pdb *PDB) extractPDBATMRecords(kind RecordKind) ([]*Atom, error) {
	var atoms []*Atom

	var lastRes string
	for _, line := range Lines(string(pdb.RawPDB)) {
		if Kind(line) != kind {
			continue
		}

		atom, err := ParseAtom(line)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, atom)

		if kind == KindHetatm && atom.Residue != lastRes {
			lastRes = atom.Residue
			exists := false
			for _, het := range pdb.HetGroups {
				if het == lastRes {
					exists = true
				}
			}
			if !exists {
				pdb.HetGroups = append(pdb.HetGroups, lastRes)
			}
		}
	}

	return atoms, nil
}
