// Package interaction classifies protein-ligand interactions found by a
// detector against an active site and collects them into per-category tables.
package interaction

import (
	"strconv"
	"strings"
)

// Tags is the ';' separated list of "category:chain:restype:resnum" labels of
// the active-site interactions of a pose.
type Tags string

// Add appends label unless the list already contains it as a substring.
func (t *Tags) Add(label string) {
	switch {
	case *t == "":
		*t = Tags(label)
	case !strings.Contains(string(*t), label):
		*t = *t + ";" + Tags(label)
	}
}

// Labels splits the list.
func (t Tags) Labels() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), ";")
}

// PoseSites is the detector output for one pose. Sites is nil for poses that
// were not analyzed.
type PoseSites struct {
	Pose  int
	Sites []Site
}

// Result holds the interaction tables of a set of poses, ordered by pose and
// then by detection order, and the tags of every pose.
type Result struct {
	BindingSites        []BindingSiteRecord  `json:"binding_site" yaml:"binding_site"`
	HydrogenBonds       []HydrogenBondRecord `json:"hydrogen_bond" yaml:"hydrogen_bond"`
	HydrophobicContacts []HydrophobicRecord  `json:"hydrophobic_interaction" yaml:"hydrophobic_interaction"`
	WaterBridges        []WaterBridgeRecord  `json:"water_bridge" yaml:"water_bridge"`
	SaltBridges         []SaltBridgeRecord   `json:"salt_bridge" yaml:"salt_bridge"`
	PiStacks            []PiStackRecord      `json:"pi_stacking" yaml:"pi_stacking"`
	PiCations           []PiCationRecord     `json:"pi_cation" yaml:"pi_cation"`
	HalogenBonds        []HalogenBondRecord  `json:"halogen_bond" yaml:"halogen_bond"`
	MetalComplexes      []MetalComplexRecord `json:"metal_complex" yaml:"metal_complex"`

	Tags map[int]Tags `json:"tags" yaml:"tags"` // pose index to active-site tags
}

// Aggregate classifies the interactions of every pose against the active site.
// Every pose gets a tag entry, empty when it has no active-site interaction.
func Aggregate(poses []PoseSites, active ActiveSite) *Result {
	r := &Result{Tags: make(map[int]Tags, len(poses))}
	for _, p := range poses {
		r.Add(p, active)
	}
	return r
}

// Add appends the interactions of one pose.
func (r *Result) Add(p PoseSites, active ActiveSite) {
	if r.Tags == nil {
		r.Tags = make(map[int]Tags)
	}
	tags := r.Tags[p.Pose]

	for _, s := range p.Sites {
		r.BindingSites = append(r.BindingSites, BindingSiteRecord{Pose: p.Pose, Site: s.ID})
		c := classifier{pose: p.Pose, site: siteKey(p.Pose, s.ID), active: active, tags: &tags}

		for _, hb := range s.HydrogenBonds {
			r.HydrogenBonds = append(r.HydrogenBonds, HydrogenBondRecord{
				Header:     c.header(HydrogenBondCategory, hb.Residue),
				DistanceHA: Measure(hb.DistanceHA),
				DistanceDA: Measure(hb.DistanceDA),
				Angle:      Measure(hb.Angle),
				ProtIsDon:  hb.ProtIsDon,
				SideChain:  hb.SideChain,
				Donor:      hb.Donor.String(),
				Acceptor:   hb.Acceptor.String(),
			})
		}

		for _, hc := range s.HydrophobicContacts {
			r.HydrophobicContacts = append(r.HydrophobicContacts, HydrophobicRecord{
				Header:      c.header(HydrophobicCategory, hc.Residue),
				Distance:    Measure(hc.Distance),
				LigandAtom:  hc.LigandAtom,
				ProteinAtom: hc.ProteinAtom,
			})
		}

		for _, wb := range s.WaterBridges {
			r.WaterBridges = append(r.WaterBridges, WaterBridgeRecord{
				Header:     c.header(WaterBridgeCategory, wb.Residue),
				DistanceAW: Measure(wb.DistanceAW),
				DistanceDW: Measure(wb.DistanceDW),
				DonorAngle: Measure(wb.DonorAngle),
				WaterAngle: Measure(wb.WaterAngle),
				ProtIsDon:  wb.ProtIsDon,
				Donor:      wb.Donor.String(),
				Acceptor:   wb.Acceptor.String(),
				Water:      wb.Water,
			})
		}

		for _, sb := range s.SaltBridges {
			lig := sb.Ligand()
			r.SaltBridges = append(r.SaltBridges, SaltBridgeRecord{
				Header:      c.header(SaltBridgeCategory, sb.Residue),
				Distance:    Measure(sb.Distance),
				ProtIsPos:   sb.ProtIsPos,
				Group:       capitalize(lig.FGroup),
				LigandAtoms: joinInts(lig.Atoms),
			})
		}

		for _, ps := range s.PiStacks {
			r.PiStacks = append(r.PiStacks, PiStackRecord{
				Header:      c.header(PiStackingCategory, ps.Residue),
				Distance:    Measure(ps.Distance),
				Angle:       Measure(ps.Angle),
				Offset:      Measure(ps.Offset),
				Type:        ps.Type,
				LigandAtoms: joinInts(ps.LigandRing),
			})
		}

		for _, pc := range s.PiCations {
			group, atoms := pc.Ligand()
			r.PiCations = append(r.PiCations, PiCationRecord{
				Header:      c.header(PiCationCategory, pc.Residue),
				Distance:    Measure(pc.Distance),
				Offset:      Measure(pc.Offset),
				ProtCharged: pc.ProtCharged,
				Group:       capitalize(group),
				LigandAtoms: joinInts(atoms),
			})
		}

		for _, hal := range s.HalogenBonds {
			r.HalogenBonds = append(r.HalogenBonds, HalogenBondRecord{
				Header:        c.header(HalogenBondCategory, hal.Residue),
				Distance:      Measure(hal.Distance),
				DonorAngle:    Measure(hal.DonorAngle),
				AcceptorAngle: Measure(hal.AcceptorAngle),
				Donor:         hal.Donor.String(),
				Acceptor:      hal.Acceptor.String(),
			})
		}

		for _, mc := range s.MetalComplexes {
			r.MetalComplexes = append(r.MetalComplexes, MetalComplexRecord{
				Header:   c.header(MetalComplexCategory, mc.Residue),
				Metal:    mc.Metal.String(),
				Target:   mc.Target.String(),
				Distance: Measure(mc.Distance),
				Location: mc.Location,
			})
		}
	}

	r.Tags[p.Pose] = tags
}

// Rows returns the records of a category as table rows.
func (r *Result) Rows(c Category) []Row {
	var rows []Row
	switch c {
	case BindingSiteCategory:
		for _, v := range r.BindingSites {
			rows = append(rows, v)
		}
	case HydrogenBondCategory:
		for _, v := range r.HydrogenBonds {
			rows = append(rows, v)
		}
	case HydrophobicCategory:
		for _, v := range r.HydrophobicContacts {
			rows = append(rows, v)
		}
	case WaterBridgeCategory:
		for _, v := range r.WaterBridges {
			rows = append(rows, v)
		}
	case SaltBridgeCategory:
		for _, v := range r.SaltBridges {
			rows = append(rows, v)
		}
	case PiStackingCategory:
		for _, v := range r.PiStacks {
			rows = append(rows, v)
		}
	case PiCationCategory:
		for _, v := range r.PiCations {
			rows = append(rows, v)
		}
	case HalogenBondCategory:
		for _, v := range r.HalogenBonds {
			rows = append(rows, v)
		}
	case MetalComplexCategory:
		for _, v := range r.MetalComplexes {
			rows = append(rows, v)
		}
	}
	return rows
}

// classifier builds record headers for one binding site and tags active-site
// residues on the pose.
type classifier struct {
	pose   int
	site   string
	active ActiveSite
	tags   *Tags
}

func (c classifier) header(cat Category, res Residue) Header {
	key := res.Key()
	isActive := c.active.Contains(key)
	if isActive {
		c.tags.Add(string(cat) + ":" + key)
	}

	return Header{
		Pose:       c.pose,
		Site:       c.site,
		Chain:      res.Chain,
		ResNum:     res.Number,
		ResType:    res.Type,
		ActiveSite: isActive,
	}
}

func siteKey(pose int, id string) string {
	return strconv.Itoa(pose) + ":" + id
}
