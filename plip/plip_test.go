package plip

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikz/dock/errors"
	"github.com/tikz/dock/interaction"
)

func loadReport(t *testing.T) []interaction.Site {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "report.xml"))
	require.NoError(t, err)
	sites, err := ParseReport(data)
	require.NoError(t, err)
	return sites
}

func TestParseReportSites(t *testing.T) {
	sites := loadReport(t)
	require.Len(t, sites, 2)
	assert.Equal(t, "UNL:Z:1", sites[0].ID)
	assert.Equal(t, "SO4:A:301", sites[1].ID)
	assert.Empty(t, sites[1].HydrogenBonds)
	assert.Empty(t, sites[1].MetalComplexes)
}

func TestParseReportInteractions(t *testing.T) {
	s := loadReport(t)[0]

	require.Len(t, s.HydrogenBonds, 1)
	hb := s.HydrogenBonds[0]
	assert.Equal(t, "A:ALA:15", hb.Key())
	assert.Equal(t, 2.13, hb.DistanceHA)
	assert.Equal(t, 3.05, hb.DistanceDA)
	assert.True(t, hb.ProtIsDon)
	assert.False(t, hb.SideChain)
	assert.Equal(t, "4 [Nam]", hb.Donor.String())
	assert.Equal(t, "3300 [O3]", hb.Acceptor.String())

	require.Len(t, s.HydrophobicContacts, 1)
	assert.Equal(t, 3302, s.HydrophobicContacts[0].LigandAtom)
	assert.Equal(t, 612, s.HydrophobicContacts[0].ProteinAtom)

	assert.Empty(t, s.WaterBridges)

	require.Len(t, s.SaltBridges, 1)
	sb := s.SaltBridges[0]
	assert.True(t, sb.ProtIsPos)
	assert.Equal(t, interaction.Group{FGroup: "Carboxylate", Atoms: []int{3310, 3311}}, sb.Ligand())
	assert.Empty(t, sb.Positive.Atoms)

	require.Len(t, s.PiStacks, 1)
	assert.Equal(t, "P", s.PiStacks[0].Type)
	assert.Equal(t, []int{3320, 3321, 3322, 3323, 3324, 3325}, s.PiStacks[0].LigandRing)

	require.Len(t, s.PiCations, 2)
	group, atoms := s.PiCations[0].Ligand()
	assert.Equal(t, "Aromatic", group)
	assert.Equal(t, []int{3320, 3321}, atoms)
	group, atoms = s.PiCations[1].Ligand()
	assert.Equal(t, "Tertamine", group)
	assert.Equal(t, []int{3330}, atoms)

	require.Len(t, s.HalogenBonds, 1)
	assert.Equal(t, "3340 [Cl]", s.HalogenBonds[0].Donor.String())
	assert.Equal(t, 110.2, s.HalogenBonds[0].AcceptorAngle)

	require.Len(t, s.MetalComplexes, 1)
	mc := s.MetalComplexes[0]
	assert.Equal(t, "5001 [Zn]", mc.Metal.String())
	assert.Equal(t, "ligand", mc.Location)
	assert.Equal(t, 2.05, mc.Distance)
}

func TestParseReportAggregates(t *testing.T) {
	sites := loadReport(t)
	res := interaction.Aggregate([]interaction.PoseSites{{Pose: 1, Sites: sites}}, nil)
	assert.Len(t, res.BindingSites, 2)
	assert.Len(t, res.PiCations, 2)
	assert.Equal(t, "UNL:Z:1", res.BindingSites[0].Site)
}

func TestParseReportMalformed(t *testing.T) {
	_, err := ParseReport([]byte("<report><bindingsite>"))
	assert.Error(t, err)
}

func TestAnalyzeMissingBinary(t *testing.T) {
	d := NewDetector(filepath.Join(t.TempDir(), "no-plip"), t.TempDir())
	_, err := d.Analyze(context.Background(), "END\n")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInteractionDetection))
}
