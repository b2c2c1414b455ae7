package cli

import (
	"fmt"

	"github.com/tikz/dock/pdb"
)

func point(name string, v []float64) (pdb.Point, error) {
	if len(v) != 3 {
		return pdb.Point{}, fmt.Errorf("--%s needs three comma separated values, got %d", name, len(v))
	}
	return pdb.Point{X: v[0], Y: v[1], Z: v[2]}, nil
}

func formatPoint(p pdb.Point) string {
	return fmt.Sprintf("%.3f %.3f %.3f", p.X, p.Y, p.Z)
}
