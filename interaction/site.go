package interaction

import (
	"context"
	"strconv"
	"strings"
)

// Detector finds the binding sites of a complex and their interactions.
type Detector interface {
	Analyze(ctx context.Context, record string) ([]Site, error)
}

// Site is one ligand binding site reported by a detector, with its
// interactions in detection order.
type Site struct {
	ID string `json:"id"` // e.g. "UNL:Z:1"

	HydrogenBonds       []HydrogenBond       `json:"hydrogenBonds,omitempty"`
	HydrophobicContacts []HydrophobicContact `json:"hydrophobicContacts,omitempty"`
	WaterBridges        []WaterBridge        `json:"waterBridges,omitempty"`
	SaltBridges         []SaltBridge         `json:"saltBridges,omitempty"`
	PiStacks            []PiStack            `json:"piStacks,omitempty"`
	PiCations           []PiCation           `json:"piCations,omitempty"`
	HalogenBonds        []HalogenBond        `json:"halogenBonds,omitempty"`
	MetalComplexes      []MetalComplex       `json:"metalComplexes,omitempty"`
}

// Residue identifies the receptor residue taking part in an interaction.
type Residue struct {
	Chain  string `json:"chain"`
	Number int64  `json:"number"`
	Type   string `json:"type"` // three letter residue name
}

// Key returns "chain:restype:resnum".
func (r Residue) Key() string {
	return r.Chain + ":" + r.Type + ":" + strconv.FormatInt(r.Number, 10)
}

// AtomRef is an atom of the original structure with its detector atom type.
type AtomRef struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
}

func (a AtomRef) String() string {
	return strconv.Itoa(a.Index) + " [" + a.Type + "]"
}

// Group is a charged or aromatic group of atoms.
type Group struct {
	FGroup string `json:"fgroup"` // functional group name, e.g. "carboxylate"
	Atoms  []int  `json:"atoms"`
}

type HydrogenBond struct {
	Residue
	DistanceHA float64 `json:"distanceHA"`
	DistanceDA float64 `json:"distanceDA"`
	Angle      float64 `json:"angle"`
	ProtIsDon  bool    `json:"protIsDon"`
	SideChain  bool    `json:"sideChain"`
	Donor      AtomRef `json:"donor"`
	Acceptor   AtomRef `json:"acceptor"`
}

type HydrophobicContact struct {
	Residue
	Distance    float64 `json:"distance"`
	LigandAtom  int     `json:"ligandAtom"`
	ProteinAtom int     `json:"proteinAtom"`
}

type WaterBridge struct {
	Residue
	DistanceAW float64 `json:"distanceAW"`
	DistanceDW float64 `json:"distanceDW"`
	DonorAngle float64 `json:"donorAngle"`
	WaterAngle float64 `json:"waterAngle"`
	ProtIsDon  bool    `json:"protIsDon"`
	Donor      AtomRef `json:"donor"`
	Acceptor   AtomRef `json:"acceptor"`
	Water      int     `json:"water"`
}

type SaltBridge struct {
	Residue
	Distance  float64 `json:"distance"`
	ProtIsPos bool    `json:"protIsPos"`
	Positive  Group   `json:"positive"`
	Negative  Group   `json:"negative"`
}

// Ligand returns the ligand side of the bridge.
func (s SaltBridge) Ligand() Group {
	if s.ProtIsPos {
		return s.Negative
	}
	return s.Positive
}

type PiStack struct {
	Residue
	Distance   float64 `json:"distance"`
	Angle      float64 `json:"angle"`
	Offset     float64 `json:"offset"`
	Type       string  `json:"type"` // P (parallel) or T
	LigandRing []int   `json:"ligandRing"`
}

type PiCation struct {
	Residue
	Distance    float64 `json:"distance"`
	Offset      float64 `json:"offset"`
	ProtCharged bool    `json:"protCharged"`
	Ring        Group   `json:"ring"`
	Charge      Group   `json:"charge"`
}

// Ligand returns the ligand atoms and group name: the ring when the protein
// carries the charge, the charged group otherwise.
func (p PiCation) Ligand() (group string, atoms []int) {
	if p.ProtCharged {
		return "Aromatic", p.Ring.Atoms
	}
	return p.Charge.FGroup, p.Charge.Atoms
}

type HalogenBond struct {
	Residue
	Distance      float64 `json:"distance"`
	DonorAngle    float64 `json:"donorAngle"`
	AcceptorAngle float64 `json:"acceptorAngle"`
	Donor         AtomRef `json:"donor"`
	Acceptor      AtomRef `json:"acceptor"`
}

type MetalComplex struct {
	Residue
	Metal    AtomRef `json:"metal"`
	Target   AtomRef `json:"target"`
	Distance float64 `json:"distance"`
	Location string  `json:"location"`
}

func joinInts(ids []int) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = strconv.Itoa(id)
	}
	return strings.Join(s, ",")
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
