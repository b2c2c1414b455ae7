package pdb

import (
	"math"
)

// Distance returns the distance between a pair of atoms
func Distance(atom1 *Atom, atom2 *Atom) float64 {
	return math.Sqrt(math.Pow(atom1.X-atom2.X, 2) + math.Pow(atom1.Y-atom2.Y, 2) + math.Pow(atom1.Z-atom2.Z, 2))
}

// ResiduesDistance returns the distance between residues, of the closest pair of atoms.
func ResiduesDistance(res1 *Residue, res2 *Residue) float64 {
	minDist := Distance(res1.Atoms[0], res2.Atoms[0])
	for _, a1 := range res1.Atoms {
		for _, a2 := range res2.Atoms {
			dist := Distance(a1, a2)
			if dist < minDist {
				minDist = dist
			}
		}
	}

	return minDist
}

// Point is a cartesian coordinate triple.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Position returns the atom coordinates as a Point.
func (a *Atom) Position() Point {
	return Point{a.X, a.Y, a.Z}
}

// Bounds returns the minimum and maximum coordinates over the given atoms.
// ok is false for an empty slice.
func Bounds(atoms []*Atom) (min, max Point, ok bool) {
	if len(atoms) == 0 {
		return
	}

	min, max = atoms[0].Position(), atoms[0].Position()
	for _, a := range atoms[1:] {
		min.X, max.X = math.Min(min.X, a.X), math.Max(max.X, a.X)
		min.Y, max.Y = math.Min(min.Y, a.Y), math.Max(max.Y, a.Y)
		min.Z, max.Z = math.Min(min.Z, a.Z), math.Max(max.Z, a.Z)
	}

	return min, max, true
}

// Centroid returns the mean position of the given atoms.
func Centroid(atoms []*Atom) (c Point, ok bool) {
	if len(atoms) == 0 {
		return
	}

	for _, a := range atoms {
		c.X += a.X
		c.Y += a.Y
		c.Z += a.Z
	}
	n := float64(len(atoms))
	return Point{c.X / n, c.Y / n, c.Z / n}, true
}

// Radius returns the largest distance from center to any of the atoms.
func Radius(center Point, atoms []*Atom) float64 {
	var r float64
	for _, a := range atoms {
		d := math.Sqrt(math.Pow(a.X-center.X, 2) + math.Pow(a.Y-center.Y, 2) + math.Pow(a.Z-center.Z, 2))
		if d > r {
			r = d
		}
	}
	return r
}
