package pdb

import (
	"fmt"
	"strconv"
	"strings"
)

// RecordKind is the record name in columns 1-6 of a PDB line.
type RecordKind int

const (
	KindOther RecordKind = iota
	KindAtom
	KindHetatm
	KindConect
	KindTerminator
	KindEnd
	KindCryst1
)

// Serial number field, columns 7-11.
const (
	SerialStart = 6
	SerialEnd   = 11
	SerialWidth = SerialEnd - SerialStart

	// MaxSerial is the largest serial that fits the fixed-width field.
	MaxSerial = 99999
)

// TerminatorMarker is the chain terminator line written into merged complexes.
// It is "TRE" rather than the standard "TER" keyword; downstream readers of
// merged complexes expect this exact text.
const TerminatorMarker = "TRE   "

func (k RecordKind) String() string {
	switch k {
	case KindAtom:
		return "ATOM"
	case KindHetatm:
		return "HETATM"
	case KindConect:
		return "CONECT"
	case KindTerminator:
		return "TRE"
	case KindEnd:
		return "END"
	case KindCryst1:
		return "CRYST1"
	default:
		return "OTHER"
	}
}

// Kind classifies a line by its record name prefix.
func Kind(line string) RecordKind {
	switch {
	case strings.HasPrefix(line, "ATOM"):
		return KindAtom
	case strings.HasPrefix(line, "HETATM"):
		return KindHetatm
	case strings.HasPrefix(line, "CONECT"):
		return KindConect
	case strings.HasPrefix(line, "TRE"):
		return KindTerminator
	case strings.HasPrefix(line, "CRYST1"):
		return KindCryst1
	case strings.HasPrefix(line, "END"):
		return KindEnd
	}
	return KindOther
}

// Lines splits a record block on newlines, keeping lines verbatim.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

// Serial reads the atom serial number from columns 7-11.
func Serial(line string) (int, error) {
	field := strings.TrimSpace(column(line, SerialStart, SerialEnd))
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("serial field %q: %w", field, err)
	}
	return n, nil
}

// FormatSerial right-justifies n in a field of the given width.
func FormatSerial(n, width int) (string, error) {
	s := strconv.Itoa(n)
	if len(s) > width {
		return "", fmt.Errorf("serial %d does not fit %d columns", n, width)
	}
	return strings.Repeat(" ", width-len(s)) + s, nil
}

// ReplaceColumns overwrites line[start:end] with field, padding short lines with spaces.
func ReplaceColumns(line string, start, end int, field string) string {
	if len(line) < end {
		line += strings.Repeat(" ", end-len(line))
	}
	return line[:start] + field + line[end:]
}

// SetSerial returns line with its serial field replaced by n.
func SetSerial(line string, n int) (string, error) {
	field, err := FormatSerial(n, SerialWidth)
	if err != nil {
		return "", err
	}
	return ReplaceColumns(line, SerialStart, SerialEnd, field), nil
}
