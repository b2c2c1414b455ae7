package complex

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikz/dock/errors"
	"github.com/tikz/dock/pdb"
)

func atomLine(kind string, serial int, name string) string {
	return fmt.Sprintf("%-6s%5d %-4s UNL A   1       1.000   2.000   3.000  1.00  0.00           C", kind, serial, name)
}

func receptorBlock(atomMax int, terminator string) string {
	lines := []string{
		"HEADER    RECEPTOR",
		"CRYST1   50.000   50.000   50.000  90.00  90.00  90.00 P 1           1",
	}
	for i := 1; i <= atomMax; i++ {
		lines = append(lines, atomLine("ATOM", i, "CA"))
	}
	if terminator != "" {
		lines = append(lines, terminator)
	}
	lines = append(lines, "END")
	return strings.Join(lines, "\n")
}

func ligandBlock() string {
	return strings.Join([]string{
		"REMARK VINA RESULT:      -7.4      0.000      0.000",
		atomLine("ATOM", 10, "C1"),
		atomLine("HETATM", 11, "N1"),
		atomLine("ATOM", 12, "O1"),
		"CONECT   10   11",
		"CONECT   11   10   12",
		"TER",
		"ENDMDL",
	}, "\n")
}

func mergedLines(t *testing.T, receptor, ligand string) []string {
	t.Helper()
	merged, err := Merge(receptor, ligand)
	require.NoError(t, err)
	return strings.Split(merged, "\n")
}

func TestMergeRenumbers(t *testing.T) {
	lines := mergedLines(t, receptorBlock(50, ""), ligandBlock())

	// CRYST1, 50 atoms, terminator, 3 ligand atoms, 2 CONECT, END
	require.Len(t, lines, 1+50+1+3+2+1)

	lig := lines[52:55]
	var serials []int
	for _, l := range lig {
		assert.True(t, strings.HasPrefix(l, "HETATM"), l)
		n, err := pdb.Serial(l)
		require.NoError(t, err)
		serials = append(serials, n)
	}
	assert.Equal(t, []int{51, 52, 53}, serials)

	assert.Equal(t, "CONECT   51   52", lines[55])
	assert.Equal(t, "CONECT   52   51   53", lines[56])
	assert.Equal(t, "END", lines[57])
}

func TestMergeKeepsAtomColumns(t *testing.T) {
	lines := mergedLines(t, receptorBlock(50, ""), ligandBlock())

	orig := atomLine("ATOM", 10, "C1")
	got := lines[52]
	assert.Equal(t, len(orig), len(got))
	assert.Equal(t, orig[11:], got[11:])
	assert.Equal(t, "HETATM   51", got[:11])
}

func TestMergeTerminator(t *testing.T) {
	lines := mergedLines(t, receptorBlock(3, ""), ligandBlock())

	count := 0
	for i, l := range lines {
		if l == pdb.TerminatorMarker {
			count++
			assert.Equal(t, 4, i, "marker follows receptor atoms")
		}
	}
	assert.Equal(t, 1, count)

	// an existing terminator is copied and no marker is added
	lines = mergedLines(t, receptorBlock(3, "TRE      4"), ligandBlock())
	assert.Contains(t, lines, "TRE      4")
	assert.NotContains(t, lines, pdb.TerminatorMarker)

	// a standard TER line is not a terminator
	lines = mergedLines(t, receptorBlock(3, "TER       4      UNL A   1"), ligandBlock())
	assert.NotContains(t, lines, "TER       4      UNL A   1")
	assert.Contains(t, lines, pdb.TerminatorMarker)
}

func TestMergeUnresolvedConect(t *testing.T) {
	ligand := strings.Join([]string{
		atomLine("ATOM", 10, "C1"),
		atomLine("ATOM", 11, "N1"),
		"CONECT   10   11",
		"CONECT   11   99",
	}, "\n")

	_, err := Merge(receptorBlock(5, ""), ligand)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeConnectivityIntegrity))
	assert.Contains(t, err.Error(), "99")
}

func TestMergeUnsortedLigand(t *testing.T) {
	ligand := strings.Join([]string{
		atomLine("HETATM", 7, "C2"),
		atomLine("HETATM", 5, "C1"),
		"CONECT    5    7",
	}, "\n")

	lines := mergedLines(t, receptorBlock(2, ""), ligand)
	n, _ := pdb.Serial(lines[4])
	assert.Equal(t, 5, n)
	n, _ = pdb.Serial(lines[5])
	assert.Equal(t, 3, n)
	assert.Equal(t, "CONECT    3    5", lines[6])
}

func TestMergeSerialOverflow(t *testing.T) {
	receptor := atomLine("ATOM", 99998, "CA")
	_, err := Merge(receptor, ligandBlock())
	assert.True(t, errors.IsCode(err, errors.CodeSerialOverflow))
}

func TestMergeRecordFormat(t *testing.T) {
	_, err := Merge("ATOM  abcde  CA", ligandBlock())
	assert.True(t, errors.IsCode(err, errors.CodeRecordFormat))

	ligand := atomLine("ATOM", 1, "C1") + "\n" + atomLine("ATOM", 1, "C2")
	_, err = Merge(receptorBlock(1, ""), ligand)
	assert.True(t, errors.IsCode(err, errors.CodeRecordFormat))

	_, err = Merge(receptorBlock(1, ""), atomLine("ATOM", 1, "C1")+"\nCONECT    1   x2")
	assert.True(t, errors.IsCode(err, errors.CodeRecordFormat))
}

func TestMergeEmptyLigand(t *testing.T) {
	lines := mergedLines(t, receptorBlock(2, ""), "")
	assert.Equal(t, []string{
		"CRYST1   50.000   50.000   50.000  90.00  90.00  90.00 P 1           1",
		atomLine("ATOM", 1, "CA"),
		atomLine("ATOM", 2, "CA"),
		pdb.TerminatorMarker,
		"END",
	}, lines)
}

func TestMergeParsesBack(t *testing.T) {
	merged, err := Merge(receptorBlock(50, ""), ligandBlock())
	require.NoError(t, err)

	p, err := pdb.NewPDBFromRaw([]byte(merged))
	require.NoError(t, err)
	assert.Len(t, p.Atoms, 50)
	assert.Len(t, p.HetAtoms, 3)

	seen := make(map[int64]bool)
	var last int64
	for _, a := range p.AllAtoms() {
		assert.False(t, seen[a.Number], "duplicate serial %d", a.Number)
		assert.Greater(t, a.Number, last)
		seen[a.Number] = true
		last = a.Number
	}
}
