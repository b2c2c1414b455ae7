package pdb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadReceptor(t *testing.T) *PDB {
	t.Helper()
	p, err := NewPDBFromFile("testdata/receptor.pdb")
	require.NoError(t, err)
	return p
}

func TestChains(t *testing.T) {
	p := loadReceptor(t)

	assert.Equal(t, "receptor", p.ID)
	assert.Len(t, p.Atoms, 12)
	assert.Len(t, p.HetAtoms, 4)
	assert.Equal(t, int64(3), p.TotalLength)

	res := p.Chains["A"][15]
	require.NotNil(t, res)
	assert.Equal(t, "Alanine", res.Name)
	assert.Equal(t, "A:ALA:15", res.Key())
	assert.Len(t, res.Atoms, 5)

	res = p.Chains["B"][40]
	require.NotNil(t, res)
	assert.Equal(t, "S", res.Name1)
}

func TestHetResidues(t *testing.T) {
	p := loadReceptor(t)

	assert.Equal(t, []string{"LIG", "HOH"}, p.HetGroups)
	require.Len(t, p.HetResidues, 2)
	assert.Equal(t, "A:LIG:101", p.HetResidues[0].Key())
	assert.True(t, p.HetResidues[0].Het)
	assert.Len(t, p.HetResidues[0].Atoms, 3)
	assert.Equal(t, []string{"LIG_A"}, p.HetLigands())

	cl := p.HetResidues[0].Atoms[2]
	assert.Equal(t, "CL1", cl.Name)
	assert.Equal(t, "Cl", cl.Element)
}

func TestSites(t *testing.T) {
	p := loadReceptor(t)

	assert.Equal(t, []string{"A:ALA:15", "A:GLY:16", "A:LIG:101"}, p.SiteResidueKeys("AC1"))
	assert.Equal(t, "BINDING SITE FOR RESIDUE LIG A 101", p.BindingSiteDesc["AC1"])
	assert.Empty(t, p.SiteResidueKeys("AC2"))
}

func TestResiduesNear(t *testing.T) {
	p := loadReceptor(t)
	lig, ok := p.HetResidue("lig", "A")
	require.True(t, ok)

	var keys []string
	for _, res := range p.ResiduesNear(lig.Atoms, 2.5) {
		keys = append(keys, res.Key())
	}
	assert.Equal(t, []string{"A:ALA:15", "A:GLY:16"}, keys)
	assert.Empty(t, p.ResiduesNear(lig.Atoms, 0.5))
}

func TestLigandOnly(t *testing.T) {
	p, err := NewPDBFromFile("testdata/pose.pdb")
	require.NoError(t, err)

	assert.Len(t, p.Atoms, 4)
	assert.Empty(t, p.HetAtoms)

	comp := p.Describe()
	assert.Equal(t, 4, comp.Atoms)
	assert.Equal(t, 3, comp.HeavyAtoms)
	assert.Equal(t, 3, comp.Bonds)
	assert.Equal(t, 1, comp.Residues)
	assert.Equal(t, "CHNO", comp.Formula)
	assert.InDelta(t, 43.025, comp.Weight, 1e-9)

	min, max, ok := Bounds(p.AllAtoms())
	require.True(t, ok)
	assert.Equal(t, Point{1, 1, 1}, min)
	assert.Equal(t, Point{3, 2, 1}, max)
}

func TestNoAtoms(t *testing.T) {
	_, err := NewPDBFromRaw([]byte("HEADER    EMPTY\nEND\n"))
	assert.Error(t, err)
}

func TestParseAtom(t *testing.T) {
	atom, err := ParseAtom("HETATM    1 FE   HEM A   1      10.000  11.500 -12.250")
	require.NoError(t, err)
	assert.True(t, atom.Het)
	assert.Equal(t, int64(1), atom.Number)
	assert.Equal(t, "Fe", atom.Element)
	assert.Equal(t, -12.25, atom.Z)

	atom, err = ParseAtom("ATOM      2  CA  GLY A   1       1.000   1.000   1.000")
	require.NoError(t, err)
	assert.Equal(t, "C", atom.Element)

	_, err = ParseAtom("ATOM      x  CA  GLY A   1       1.000   1.000   1.000")
	assert.Error(t, err)

	_, err = ParseAtom("ATOM      3  CA  GLY A   1       1.000   abc     1.000")
	assert.Error(t, err)
}

func TestCleanProtein(t *testing.T) {
	p := loadReceptor(t)

	clean := string(CleanProtein(p.RawPDB))
	lines := strings.Split(strings.TrimSuffix(clean, "\n"), "\n")
	assert.Len(t, lines, 12)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "ATOM"))
	}
}

func TestExtractLigand(t *testing.T) {
	p := loadReceptor(t)

	raw, err := p.ExtractLigand("LIG", "A")
	require.NoError(t, err)
	lig, err := NewPDBFromRaw(raw)
	require.NoError(t, err)
	assert.Len(t, lig.HetAtoms, 3)
	assert.True(t, strings.HasSuffix(string(raw), "END\n"))

	_, err = p.ExtractLigand("LIG", "B")
	assert.Error(t, err)

	res, _ := p.HetResidue("LIG", "A")
	apo, err := NewPDBFromRaw(p.WithoutResidue(res))
	require.NoError(t, err)
	assert.Len(t, apo.HetAtoms, 1)
	assert.Len(t, apo.Atoms, 12)
}

func TestPDBQT(t *testing.T) {
	raw := []byte(`REMARK  Name = ligand
ROOT
ATOM      1  C1  UNL     1       1.000   2.000   3.000  0.00  0.00    +0.000 C 
ATOM      2  N1  UNL     1       2.000   4.000   6.000  0.00  0.00    +0.000 NA
ATOM      3  O1  UNL     1       3.000   0.000   0.001  0.00  0.00    +0.000 OA
ENDROOT
TORSDOF 0
`)

	assert.Equal(t, []string{"C", "NA", "OA"}, PDBQTAtomTypes(raw))

	c, err := PDBQTCenter(raw)
	require.NoError(t, err)
	assert.Equal(t, Point{2, 2, 3}, c)

	_, err = PDBQTCenter([]byte("REMARK nothing\n"))
	assert.Error(t, err)

	_, err = PDBQTCenter([]byte("ATOM      1  C1  UNL     1       1.000\n"))
	assert.Error(t, err)
}

func TestPDBQTCenterWithChain(t *testing.T) {
	raw := []byte(`ATOM      1  C1  UNL A   1      -1.500  10.250   0.000  0.00  0.00    +0.000 C 
HETATM    2  O1  UNL A   1       1.500  10.750   2.000  0.00  0.00    -0.250 OA
`)

	c, err := PDBQTCenter(raw)
	require.NoError(t, err)
	assert.Equal(t, Point{0, 10.5, 1}, c)
	assert.Equal(t, []string{"C", "OA"}, PDBQTAtomTypes(raw))
}

func TestRecordColumns(t *testing.T) {
	assert.Equal(t, KindHetatm, Kind("HETATM   14  C1"))
	assert.Equal(t, KindConect, Kind("CONECT   14   15"))
	assert.Equal(t, KindTerminator, Kind(TerminatorMarker))
	assert.Equal(t, KindOther, Kind("TER      13"))

	n, err := Serial("ATOM     42  CA  GLY A   1")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	line, err := SetSerial("ATOM     42  CA  GLY A   1", 7)
	require.NoError(t, err)
	assert.Equal(t, "ATOM      7  CA  GLY A   1", line)

	_, err = FormatSerial(100000, SerialWidth)
	assert.Error(t, err)

	assert.Equal(t, "CONECT   51   52", ReplaceColumns("CONECT   51   1", 11, 16, "   52"))
}
