// Package gridbox converts docking search boxes between grid-point dimensions
// around a center and min/max bounding coordinates.
package gridbox

import (
	"math"

	"github.com/tikz/dock/errors"
	"github.com/tikz/dock/fpocket"
	"github.com/tikz/dock/numeric"
	"github.com/tikz/dock/pdb"
)

// MaxPoints is the largest grid-point count per axis accepted by the docking engine.
const MaxPoints = 126

// DefaultSpacing is the AutoDock default grid spacing in angstroms.
const DefaultSpacing = 0.375

// Box is a docking search box: grid-point counts per axis, spacing and center.
type Box struct {
	X       int       `json:"x" yaml:"x"`
	Y       int       `json:"y" yaml:"y"`
	Z       int       `json:"z" yaml:"z"`
	Spacing float64   `json:"spacing" yaml:"spacing"`
	Center  pdb.Point `json:"center" yaml:"center"`
}

// Bounds returns the box corners.
func (b Box) Bounds() (min, max pdb.Point) {
	return DimensionsToBounds(b.X, b.Y, b.Z, b.Center, b.Spacing)
}

// Size returns the box edge lengths in angstroms.
func (b Box) Size() pdb.Point {
	return pdb.Point{
		X: float64(b.X) * b.Spacing,
		Y: float64(b.Y) * b.Spacing,
		Z: float64(b.Z) * b.Spacing,
	}
}

// DimensionsToBounds returns the corners of a box of x*y*z grid points
// spaced by spacing around center.
func DimensionsToBounds(x, y, z int, center pdb.Point, spacing float64) (min, max pdb.Point) {
	half := pdb.Point{
		X: float64(x) * spacing / 2,
		Y: float64(y) * spacing / 2,
		Z: float64(z) * spacing / 2,
	}

	min = pdb.Point{X: center.X - half.X, Y: center.Y - half.Y, Z: center.Z - half.Z}
	max = pdb.Point{X: center.X + half.X, Y: center.Y + half.Y, Z: center.Z + half.Z}
	return min, max
}

// BoundsToDimensions converts box corners to grid-point counts and a center.
// Counts are truncated, then made even by dropping one point, then clamped to
// MaxPoints. The center is rounded to 3 decimals. The conversion is lossy and
// is not the inverse of DimensionsToBounds for arbitrary inputs.
func BoundsToDimensions(min, max pdb.Point, spacing float64) (Box, error) {
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return Box{}, errors.New(errors.CodeGeometry, "grid spacing must be positive").
			WithDetailf("spacing=%v", spacing)
	}

	size := pdb.Point{X: max.X - min.X, Y: max.Y - min.Y, Z: max.Z - min.Z}
	if !finite(min) || !finite(max) || !finite(size) {
		return Box{}, errors.New(errors.CodeGeometry, "box bounds must be finite").
			WithDetailf("min=%v max=%v", min, max)
	}
	if size.X < 0 || size.Y < 0 || size.Z < 0 {
		return Box{}, errors.New(errors.CodeGeometry, "inverted box bounds").
			WithDetailf("min=%v max=%v", min, max)
	}

	return Box{
		X:       points(size.X, spacing),
		Y:       points(size.Y, spacing),
		Z:       points(size.Z, spacing),
		Spacing: spacing,
		Center: pdb.Point{
			X: numeric.Round(min.X+size.X/2, 3),
			Y: numeric.Round(min.Y+size.Y/2, 3),
			Z: numeric.Round(min.Z+size.Z/2, 3),
		},
	}, nil
}

// points clamps in float space so oversized quotients never reach the int
// conversion.
func points(size, spacing float64) int {
	q := size / spacing
	if q >= MaxPoints+1 {
		return MaxPoints
	}
	n := int(q)
	if n%2 != 0 {
		n--
	}
	return n
}

func finite(p pdb.Point) bool {
	for _, v := range []float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FromAtoms returns the box enclosing all given atoms.
func FromAtoms(atoms []*pdb.Atom, spacing float64) (Box, error) {
	min, max, ok := pdb.Bounds(atoms)
	if !ok {
		return Box{}, errors.New(errors.CodeGeometry, "no atoms to enclose")
	}
	return BoundsToDimensions(min, max, spacing)
}

// FromStructure returns the box enclosing every ATOM and HETATM of a structure.
func FromStructure(p *pdb.PDB, spacing float64) (Box, error) {
	return FromAtoms(p.AllAtoms(), spacing)
}

// Sphere is a spherical binding site.
type Sphere struct {
	Center pdb.Point `json:"center" yaml:"center"`
	Radius float64   `json:"radius" yaml:"radius"`
}

// Cube returns the sphere's bounding cube corners.
func (s Sphere) Cube() (min, max pdb.Point) {
	r := s.Radius
	return pdb.Point{X: s.Center.X - r, Y: s.Center.Y - r, Z: s.Center.Z - r},
		pdb.Point{X: s.Center.X + r, Y: s.Center.Y + r, Z: s.Center.Z + r}
}

// FromLigand centers a box on a co-crystallized ligand given as "RESNAME_CHAIN".
// The sphere radius is the largest centroid to atom distance plus buffer and the
// box is the sphere's bounding cube.
func FromLigand(p *pdb.PDB, selector string, buffer, spacing float64) (Box, Sphere, error) {
	resName, chain, err := pdb.ParseLigandSelector(selector)
	if err != nil {
		return Box{}, Sphere{}, errors.Wrap(err, errors.CodeInvalidParam, "invalid ligand selector")
	}

	res, ok := p.HetResidue(resName, chain)
	if !ok || len(res.Atoms) == 0 {
		return Box{}, Sphere{}, errors.New(errors.CodeNotFound, "ligand not found").
			WithDetailf("ligand %s in chain %s", resName, chain)
	}

	center, _ := pdb.Centroid(res.Atoms)
	sphere := Sphere{Center: center, Radius: pdb.Radius(center, res.Atoms) + buffer}

	min, max := sphere.Cube()
	box, err := BoundsToDimensions(min, max, spacing)
	if err != nil {
		return Box{}, Sphere{}, err
	}

	return box, sphere, nil
}

// FromPocket returns the box enclosing the atoms lining a pocket, grown by
// padding angstroms on every side.
func FromPocket(pocket fpocket.Pocket, padding, spacing float64) (Box, error) {
	min, max, ok := pdb.Bounds(pocket.Atoms)
	if !ok {
		return Box{}, errors.New(errors.CodeGeometry, "pocket has no atoms").
			WithDetailf("pocket=%d", pocket.Number)
	}

	min = pdb.Point{X: min.X - padding, Y: min.Y - padding, Z: min.Z - padding}
	max = pdb.Point{X: max.X + padding, Y: max.Y + padding, Z: max.Z + padding}
	return BoundsToDimensions(min, max, spacing)
}
