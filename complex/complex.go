// Package complex merges a receptor structure and a docked ligand pose into a
// single PDB record with unique atom serials and remapped CONECT records.
package complex

import (
	"strconv"
	"strings"

	"github.com/tikz/dock/errors"
	"github.com/tikz/dock/pdb"
)

// initialLigandMin is the starting value of the ligand minimum serial scan.
const initialLigandMin = 100000

// RenumberMap maps a pose-local atom serial to its serial in the merged complex.
type RenumberMap map[int]int

// Resolve returns the merged serial for a pose serial.
func (m RenumberMap) Resolve(serial int) (int, error) {
	n, ok := m[serial]
	if !ok {
		return 0, errors.New(errors.CodeConnectivityIntegrity, "CONECT references an atom not declared in the ligand").
			WithDetailf("serial %d", serial)
	}
	return n, nil
}

// Merge builds a complex from receptor and ligand PDB text.
//
// Receptor ATOM, HETATM and CRYST1 lines are copied verbatim, followed by the
// receptor terminator line or, if it has none, pdb.TerminatorMarker. Ligand
// atoms follow as HETATM records numbered from the largest receptor serial
// plus one, keeping their relative order, and ligand CONECT records are
// rewritten to the new serials. The result ends with END.
func Merge(receptor, ligand string) (string, error) {
	var lines []string

	atomMax, err := copyReceptor(receptor, &lines)
	if err != nil {
		return "", err
	}

	ligLines := pdb.Lines(ligand)
	renumber, err := Renumber(ligLines, atomMax)
	if err != nil {
		return "", err
	}

	for _, line := range ligLines {
		switch pdb.Kind(line) {
		case pdb.KindAtom, pdb.KindHetatm:
			serial, _ := pdb.Serial(line)
			line = pdb.ReplaceColumns(line, 0, 6, "HETATM")
			line, err = pdb.SetSerial(line, renumber[serial])
			if err != nil {
				return "", errors.Wrap(err, errors.CodeSerialOverflow, "merged serial does not fit the serial columns")
			}
			lines = append(lines, line)

		case pdb.KindConect:
			line, err = remapConect(line, renumber)
			if err != nil {
				return "", err
			}
			lines = append(lines, line)
		}
	}

	if len(lines) > 0 {
		lines = append(lines, "END")
	}

	return strings.Join(lines, "\n"), nil
}

// copyReceptor appends the receptor lines kept in the complex and returns the
// largest receptor atom serial.
func copyReceptor(receptor string, lines *[]string) (int, error) {
	atomMax := 0
	terminated := false

	for i, line := range pdb.Lines(receptor) {
		switch pdb.Kind(line) {
		case pdb.KindAtom, pdb.KindHetatm:
			serial, err := pdb.Serial(line)
			if err != nil {
				return 0, errors.Wrap(err, errors.CodeRecordFormat, "invalid receptor atom serial").
					WithDetailf("line %d", i+1)
			}
			if serial > atomMax {
				atomMax = serial
			}
			*lines = append(*lines, line)

		case pdb.KindCryst1:
			*lines = append(*lines, line)

		case pdb.KindTerminator:
			*lines = append(*lines, line)
			terminated = true
		}
	}

	if !terminated {
		*lines = append(*lines, pdb.TerminatorMarker)
	}

	return atomMax, nil
}

// Renumber maps every ligand atom serial to atomMax + serial - ligMin + 1,
// where ligMin is the smallest ligand serial.
func Renumber(ligLines []string, atomMax int) (RenumberMap, error) {
	var serials []int
	ligMin := initialLigandMin

	for i, line := range ligLines {
		kind := pdb.Kind(line)
		if kind != pdb.KindAtom && kind != pdb.KindHetatm {
			continue
		}
		serial, err := pdb.Serial(line)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeRecordFormat, "invalid ligand atom serial").
				WithDetailf("line %d", i+1)
		}
		if serial < ligMin {
			ligMin = serial
		}
		serials = append(serials, serial)
	}

	renumber := make(RenumberMap, len(serials))
	for _, serial := range serials {
		if _, dup := renumber[serial]; dup {
			return nil, errors.New(errors.CodeRecordFormat, "duplicate ligand atom serial").
				WithDetailf("serial %d", serial)
		}
		n := atomMax + serial - ligMin + 1
		if n > pdb.MaxSerial {
			return nil, errors.New(errors.CodeSerialOverflow, "merged serial does not fit the serial columns").
				WithDetailf("serial %d renumbered to %d", serial, n)
		}
		renumber[serial] = n
	}

	return renumber, nil
}

// remapConect rewrites every 5-column serial field of a CONECT line, stopping at
// the first blank field.
func remapConect(line string, renumber RenumberMap) (string, error) {
	for start := pdb.SerialStart; start < len(line); start += pdb.SerialWidth {
		end := start + pdb.SerialWidth
		field := line[start:min(end, len(line))]
		if strings.TrimSpace(field) == "" {
			break
		}

		serial, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return "", errors.Wrap(err, errors.CodeRecordFormat, "invalid CONECT serial").
				WithDetailf("field %q", field)
		}
		n, err := renumber.Resolve(serial)
		if err != nil {
			return "", err
		}

		s, err := pdb.FormatSerial(n, pdb.SerialWidth)
		if err != nil {
			return "", errors.Wrap(err, errors.CodeSerialOverflow, "merged serial does not fit the serial columns")
		}
		line = pdb.ReplaceColumns(line, start, end, s)
	}

	return line, nil
}
