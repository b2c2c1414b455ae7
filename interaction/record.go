package interaction

import (
	"math"
	"strconv"

	"github.com/tikz/dock/numeric"
)

// Category names an interaction table.
type Category string

const (
	BindingSiteCategory  Category = "binding_site"
	HydrogenBondCategory Category = "hydrogen_bond"
	HydrophobicCategory  Category = "hydrophobic_interaction"
	WaterBridgeCategory  Category = "water_bridge"
	SaltBridgeCategory   Category = "salt_bridge"
	PiStackingCategory   Category = "pi_stacking"
	PiCationCategory     Category = "pi_cation"
	HalogenBondCategory  Category = "halogen_bond"
	MetalComplexCategory Category = "metal_complex"
)

// Categories lists the tables in output order.
var Categories = []Category{
	BindingSiteCategory,
	HydrogenBondCategory,
	HydrophobicCategory,
	WaterBridgeCategory,
	SaltBridgeCategory,
	PiStackingCategory,
	PiCationCategory,
	HalogenBondCategory,
	MetalComplexCategory,
}

// Measure is a distance or angle shown with 2 significant figures.
type Measure float64

func (m Measure) String() string {
	return numeric.Significant(float64(m), 2)
}

func (m Measure) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(m)) || math.IsInf(float64(m), 0) {
		return []byte("null"), nil
	}
	return []byte(m.String()), nil
}

func (m Measure) MarshalYAML() (interface{}, error) {
	return strconv.ParseFloat(m.String(), 64)
}

// Row is a single line of an interaction table.
type Row interface {
	Columns() []string
	Values() []string
}

// Header holds the columns shared by every interaction record.
type Header struct {
	Pose       int    `json:"pose" yaml:"pose"`
	Site       string `json:"site" yaml:"site"` // "pose:siteID"
	Chain      string `json:"chain" yaml:"chain"`
	ResNum     int64  `json:"resnum" yaml:"resnum"`
	ResType    string `json:"restype" yaml:"restype"`
	ActiveSite bool   `json:"activeSite" yaml:"activeSite"`
}

var headerColumns = []string{"site", "chain", "resnum", "restype"}

func (h Header) values(fields ...string) []string {
	v := append([]string{h.Site, h.Chain, strconv.FormatInt(h.ResNum, 10), h.ResType}, fields...)
	return append(v, activeFlag(h.ActiveSite))
}

func columns(fields ...string) []string {
	c := append(append([]string{}, headerColumns...), fields...)
	return append(c, "active_site")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func activeFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// BindingSiteRecord marks a detector binding site of a pose.
type BindingSiteRecord struct {
	Pose int    `json:"pose" yaml:"pose"`
	Site string `json:"site" yaml:"site"` // detector site ID
}

func (r BindingSiteRecord) Columns() []string { return []string{"pose", "site"} }
func (r BindingSiteRecord) Values() []string  { return []string{strconv.Itoa(r.Pose), r.Site} }

type HydrogenBondRecord struct {
	Header `yaml:",inline"`
	DistanceHA Measure `json:"distanceHA" yaml:"distanceHA"`
	DistanceDA Measure `json:"distanceDA" yaml:"distanceDA"`
	Angle      Measure `json:"angle" yaml:"angle"`
	ProtIsDon  bool    `json:"protIsDon" yaml:"protIsDon"`
	SideChain  bool    `json:"sideChain" yaml:"sideChain"`
	Donor      string  `json:"donor" yaml:"donor"`
	Acceptor   string  `json:"acceptor" yaml:"acceptor"`
}

func (r HydrogenBondRecord) Columns() []string {
	return columns("dist_h-a", "dist_d-a", "angle", "protisdon", "sidechain", "donor", "acceptor")
}

func (r HydrogenBondRecord) Values() []string {
	return r.values(r.DistanceHA.String(), r.DistanceDA.String(), r.Angle.String(),
		yesNo(r.ProtIsDon), yesNo(r.SideChain), r.Donor, r.Acceptor)
}

type HydrophobicRecord struct {
	Header `yaml:",inline"`
	Distance    Measure `json:"distance" yaml:"distance"`
	LigandAtom  int     `json:"ligandAtom" yaml:"ligandAtom"`
	ProteinAtom int     `json:"proteinAtom" yaml:"proteinAtom"`
}

func (r HydrophobicRecord) Columns() []string {
	return columns("distance", "ligatom", "bsatom")
}

func (r HydrophobicRecord) Values() []string {
	return r.values(r.Distance.String(), strconv.Itoa(r.LigandAtom), strconv.Itoa(r.ProteinAtom))
}

type WaterBridgeRecord struct {
	Header `yaml:",inline"`
	DistanceAW Measure `json:"distanceAW" yaml:"distanceAW"`
	DistanceDW Measure `json:"distanceDW" yaml:"distanceDW"`
	DonorAngle Measure `json:"donorAngle" yaml:"donorAngle"`
	WaterAngle Measure `json:"waterAngle" yaml:"waterAngle"`
	ProtIsDon  bool    `json:"protIsDon" yaml:"protIsDon"`
	Donor      string  `json:"donor" yaml:"donor"`
	Acceptor   string  `json:"acceptor" yaml:"acceptor"`
	Water      int     `json:"water" yaml:"water"`
}

func (r WaterBridgeRecord) Columns() []string {
	return columns("dist_a-w", "dist_d-w", "d_angle", "w_angle", "protisdon", "donor", "acceptor", "water")
}

func (r WaterBridgeRecord) Values() []string {
	return r.values(r.DistanceAW.String(), r.DistanceDW.String(), r.DonorAngle.String(), r.WaterAngle.String(),
		yesNo(r.ProtIsDon), r.Donor, r.Acceptor, strconv.Itoa(r.Water))
}

type SaltBridgeRecord struct {
	Header `yaml:",inline"`
	Distance    Measure `json:"distance" yaml:"distance"`
	ProtIsPos   bool    `json:"protIsPos" yaml:"protIsPos"`
	Group       string  `json:"group" yaml:"group"`
	LigandAtoms string  `json:"ligandAtoms" yaml:"ligandAtoms"`
}

func (r SaltBridgeRecord) Columns() []string {
	return columns("distance", "protispos", "group", "ligand_atoms")
}

func (r SaltBridgeRecord) Values() []string {
	return r.values(r.Distance.String(), yesNo(r.ProtIsPos), r.Group, r.LigandAtoms)
}

type PiStackRecord struct {
	Header `yaml:",inline"`
	Distance    Measure `json:"distance" yaml:"distance"`
	Angle       Measure `json:"angle" yaml:"angle"`
	Offset      Measure `json:"offset" yaml:"offset"`
	Type        string  `json:"type" yaml:"type"`
	LigandAtoms string  `json:"ligandAtoms" yaml:"ligandAtoms"`
}

func (r PiStackRecord) Columns() []string {
	return columns("distance", "angle", "offset", "type", "ligand_atoms")
}

func (r PiStackRecord) Values() []string {
	return r.values(r.Distance.String(), r.Angle.String(), r.Offset.String(), r.Type, r.LigandAtoms)
}

type PiCationRecord struct {
	Header `yaml:",inline"`
	Distance    Measure `json:"distance" yaml:"distance"`
	Offset      Measure `json:"offset" yaml:"offset"`
	ProtCharged bool    `json:"protCharged" yaml:"protCharged"`
	Group       string  `json:"group" yaml:"group"`
	LigandAtoms string  `json:"ligandAtoms" yaml:"ligandAtoms"`
}

func (r PiCationRecord) Columns() []string {
	return columns("distance", "offset", "protcharged", "group", "ligand_atoms")
}

func (r PiCationRecord) Values() []string {
	return r.values(r.Distance.String(), r.Offset.String(), yesNo(r.ProtCharged), r.Group, r.LigandAtoms)
}

type HalogenBondRecord struct {
	Header `yaml:",inline"`
	Distance      Measure `json:"distance" yaml:"distance"`
	DonorAngle    Measure `json:"donorAngle" yaml:"donorAngle"`
	AcceptorAngle Measure `json:"acceptorAngle" yaml:"acceptorAngle"`
	Donor         string  `json:"donor" yaml:"donor"`
	Acceptor      string  `json:"acceptor" yaml:"acceptor"`
}

func (r HalogenBondRecord) Columns() []string {
	return columns("distance", "don_angle", "acc_angle", "donor", "acceptor")
}

func (r HalogenBondRecord) Values() []string {
	return r.values(r.Distance.String(), r.DonorAngle.String(), r.AcceptorAngle.String(), r.Donor, r.Acceptor)
}

type MetalComplexRecord struct {
	Header `yaml:",inline"`
	Metal    string  `json:"metal" yaml:"metal"`
	Target   string  `json:"target" yaml:"target"`
	Distance Measure `json:"distance" yaml:"distance"`
	Location string  `json:"location" yaml:"location"`
}

func (r MetalComplexRecord) Columns() []string {
	return columns("metal", "target", "distance", "location")
}

func (r MetalComplexRecord) Values() []string {
	return r.values(r.Metal, r.Target, r.Distance.String(), r.Location)
}
