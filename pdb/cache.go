package pdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load returns the structure cached as dir/ID.pdb, downloading and caching it
// first when missing.
func Load(ctx context.Context, dir, pdbID string) (*PDB, error) {
	id := strings.ToUpper(pdbID)
	path := filepath.Join(dir, id+".pdb")

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}

		p, err := Fetch(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := p.WriteFile(path); err != nil {
			return nil, err
		}
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat cached PDB: %w", err)
	}

	p, err := NewPDBFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load cached PDB: %w", err)
	}
	p.ID = id
	return p, nil
}
