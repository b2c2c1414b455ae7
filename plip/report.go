package plip

import (
	"encoding/xml"
	"strings"

	"github.com/tikz/dock/interaction"
)

type report struct {
	XMLName      xml.Name      `xml:"report"`
	Version      string        `xml:"plipversion"`
	BindingSites []bindingSite `xml:"bindingsite"`
}

type bindingSite struct {
	ID          string `xml:"id,attr"`
	Identifiers struct {
		HetID    string `xml:"hetid"`
		Chain    string `xml:"chain"`
		Position string `xml:"position"`
	} `xml:"identifiers"`
	Interactions struct {
		Hydrophobic []hydrophobic `xml:"hydrophobic_interactions>hydrophobic_interaction"`
		HBonds      []hbond       `xml:"hydrogen_bonds>hydrogen_bond"`
		Water       []waterBridge `xml:"water_bridges>water_bridge"`
		Salt        []saltBridge  `xml:"salt_bridges>salt_bridge"`
		PiStacks    []piStack     `xml:"pi_stacks>pi_stack"`
		PiCations   []piCation    `xml:"pi_cation_interactions>pi_cation_interaction"`
		Halogen     []halogen     `xml:"halogen_bonds>halogen_bond"`
		Metal       []metal       `xml:"metal_complexes>metal_complex"`
	} `xml:"interactions"`
}

type residue struct {
	ResNr    int64  `xml:"resnr"`
	ResType  string `xml:"restype"`
	ResChain string `xml:"reschain"`
}

func (r residue) ref() interaction.Residue {
	return interaction.Residue{Chain: r.ResChain, Number: r.ResNr, Type: r.ResType}
}

// flag is a Python style "True"/"False" element.
type flag string

func (f flag) bool() bool {
	return strings.EqualFold(strings.TrimSpace(string(f)), "true")
}

type idxList struct {
	Idx []int `xml:"idx"`
}

type hydrophobic struct {
	residue
	Dist          float64 `xml:"dist"`
	LigCarbonIdx  int     `xml:"ligcarbonidx"`
	ProtCarbonIdx int     `xml:"protcarbonidx"`
}

type hbond struct {
	residue
	SideChain    flag    `xml:"sidechain"`
	DistHA       float64 `xml:"dist_h-a"`
	DistDA       float64 `xml:"dist_d-a"`
	DonAngle     float64 `xml:"don_angle"`
	ProtIsDon    flag    `xml:"protisdon"`
	DonorIdx     int     `xml:"donoridx"`
	DonorType    string  `xml:"donortype"`
	AcceptorIdx  int     `xml:"acceptoridx"`
	AcceptorType string  `xml:"acceptortype"`
}

type waterBridge struct {
	residue
	DistAW       float64 `xml:"dist_a-w"`
	DistDW       float64 `xml:"dist_d-w"`
	DonAngle     float64 `xml:"don_angle"`
	WaterAngle   float64 `xml:"water_angle"`
	ProtIsDon    flag    `xml:"protisdon"`
	DonorIdx     int     `xml:"donor_idx"`
	DonorType    string  `xml:"donortype"`
	AcceptorIdx  int     `xml:"acceptor_idx"`
	AcceptorType string  `xml:"acceptortype"`
	WaterIdx     int     `xml:"water_idx"`
}

type saltBridge struct {
	residue
	Dist      float64 `xml:"dist"`
	ProtIsPos flag    `xml:"protispos"`
	LigGroup  string  `xml:"lig_group"`
	LigIdx    idxList `xml:"lig_idx_list"`
}

type piStack struct {
	residue
	CentDist float64 `xml:"centdist"`
	Angle    float64 `xml:"angle"`
	Offset   float64 `xml:"offset"`
	Type     string  `xml:"type"`
	LigIdx   idxList `xml:"lig_idx_list"`
}

type piCation struct {
	residue
	Dist        float64 `xml:"dist"`
	Offset      float64 `xml:"offset"`
	ProtCharged flag    `xml:"protcharged"`
	LigGroup    string  `xml:"lig_group"`
	LigIdx      idxList `xml:"lig_idx_list"`
}

type halogen struct {
	residue
	Dist         float64 `xml:"dist"`
	DonAngle     float64 `xml:"don_angle"`
	AccAngle     float64 `xml:"acc_angle"`
	DonIdx       int     `xml:"don_idx"`
	DonorType    string  `xml:"donortype"`
	AccIdx       int     `xml:"acc_idx"`
	AcceptorType string  `xml:"acceptortype"`
}

type metal struct {
	residue
	MetalIdx   int     `xml:"metal_idx"`
	MetalType  string  `xml:"metal_type"`
	TargetIdx  int     `xml:"target_idx"`
	TargetType string  `xml:"target_type"`
	Dist       float64 `xml:"dist"`
	Location   string  `xml:"location"`
}

// ParseReport reads a PLIP XML report into binding sites, in report order.
// Site IDs are "HETID:CHAIN:POSITION".
func ParseReport(data []byte) ([]interaction.Site, error) {
	var r report
	if err := xml.Unmarshal(data, &r); err != nil {
		return nil, err
	}

	sites := make([]interaction.Site, 0, len(r.BindingSites))
	for _, bs := range r.BindingSites {
		sites = append(sites, bs.site())
	}
	return sites, nil
}

func (bs bindingSite) site() interaction.Site {
	id := bs.Identifiers
	s := interaction.Site{ID: id.HetID + ":" + id.Chain + ":" + id.Position}
	in := bs.Interactions

	for _, hb := range in.HBonds {
		s.HydrogenBonds = append(s.HydrogenBonds, interaction.HydrogenBond{
			Residue:    hb.ref(),
			DistanceHA: hb.DistHA,
			DistanceDA: hb.DistDA,
			Angle:      hb.DonAngle,
			ProtIsDon:  hb.ProtIsDon.bool(),
			SideChain:  hb.SideChain.bool(),
			Donor:      interaction.AtomRef{Index: hb.DonorIdx, Type: hb.DonorType},
			Acceptor:   interaction.AtomRef{Index: hb.AcceptorIdx, Type: hb.AcceptorType},
		})
	}

	for _, hc := range in.Hydrophobic {
		s.HydrophobicContacts = append(s.HydrophobicContacts, interaction.HydrophobicContact{
			Residue:     hc.ref(),
			Distance:    hc.Dist,
			LigandAtom:  hc.LigCarbonIdx,
			ProteinAtom: hc.ProtCarbonIdx,
		})
	}

	for _, wb := range in.Water {
		s.WaterBridges = append(s.WaterBridges, interaction.WaterBridge{
			Residue:    wb.ref(),
			DistanceAW: wb.DistAW,
			DistanceDW: wb.DistDW,
			DonorAngle: wb.DonAngle,
			WaterAngle: wb.WaterAngle,
			ProtIsDon:  wb.ProtIsDon.bool(),
			Donor:      interaction.AtomRef{Index: wb.DonorIdx, Type: wb.DonorType},
			Acceptor:   interaction.AtomRef{Index: wb.AcceptorIdx, Type: wb.AcceptorType},
			Water:      wb.WaterIdx,
		})
	}

	// the report only carries the ligand side of charged groups
	for _, sb := range in.Salt {
		b := interaction.SaltBridge{
			Residue:   sb.ref(),
			Distance:  sb.Dist,
			ProtIsPos: sb.ProtIsPos.bool(),
		}
		lig := interaction.Group{FGroup: sb.LigGroup, Atoms: sb.LigIdx.Idx}
		if b.ProtIsPos {
			b.Negative = lig
		} else {
			b.Positive = lig
		}
		s.SaltBridges = append(s.SaltBridges, b)
	}

	for _, ps := range in.PiStacks {
		s.PiStacks = append(s.PiStacks, interaction.PiStack{
			Residue:    ps.ref(),
			Distance:   ps.CentDist,
			Angle:      ps.Angle,
			Offset:     ps.Offset,
			Type:       ps.Type,
			LigandRing: ps.LigIdx.Idx,
		})
	}

	for _, pc := range in.PiCations {
		c := interaction.PiCation{
			Residue:     pc.ref(),
			Distance:    pc.Dist,
			Offset:      pc.Offset,
			ProtCharged: pc.ProtCharged.bool(),
		}
		lig := interaction.Group{FGroup: pc.LigGroup, Atoms: pc.LigIdx.Idx}
		if c.ProtCharged {
			c.Ring = lig
		} else {
			c.Charge = lig
		}
		s.PiCations = append(s.PiCations, c)
	}

	for _, h := range in.Halogen {
		s.HalogenBonds = append(s.HalogenBonds, interaction.HalogenBond{
			Residue:       h.ref(),
			Distance:      h.Dist,
			DonorAngle:    h.DonAngle,
			AcceptorAngle: h.AccAngle,
			Donor:         interaction.AtomRef{Index: h.DonIdx, Type: h.DonorType},
			Acceptor:      interaction.AtomRef{Index: h.AccIdx, Type: h.AcceptorType},
		})
	}

	for _, m := range in.Metal {
		s.MetalComplexes = append(s.MetalComplexes, interaction.MetalComplex{
			Residue:  m.ref(),
			Metal:    interaction.AtomRef{Index: m.MetalIdx, Type: m.MetalType},
			Target:   interaction.AtomRef{Index: m.TargetIdx, Type: m.TargetType},
			Distance: m.Dist,
			Location: m.Location,
		})
	}

	return s
}
