package pdb

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tikz/dock/http"
)

// PDB represents a single parsed structure, either a receptor or a ligand pose.
type PDB struct {
	ID string `json:"id"` // PDB ID or file base name

	Atoms     []*Atom  `json:"-"`         // ATOM records in the structure
	HetAtoms  []*Atom  `json:"-"`         // HETATM records in the structure
	HetGroups []string `json:"hetGroups"` // HET groups in the structure, in file order

	Chains      map[string]map[int64]*Residue `json:"chains"`      // ATOM chain ID and position to residue
	HetResidues []*Residue                    `json:"-"`           // HETATM residues in file order
	TotalLength int64                         `json:"totalLength"` // sum of residues of all chains

	// SITE records
	BindingSite map[string][]*Residue `json:"bindingSite"` // binding site identifier to residues compromising it

	// REMARK 800 site descriptions
	BindingSiteDesc map[string]string `json:"bindingSiteDesc"` // binding site identifier to description

	RawPDB []byte `json:"-"` // PDB file raw data

	LocalPath string `json:"-"` // local path for the PDB file
}

// NewPDBFromRaw constructs a new instance from raw bytes.
// Structures without ATOM records (a lone ligand pose) are accepted as long as
// they carry HETATM records.
func NewPDBFromRaw(raw []byte) (*PDB, error) {
	pdb := PDB{RawPDB: raw}

	err := pdb.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	return &pdb, nil
}

// NewPDBFromFile reads and parses a PDB file.
func NewPDBFromFile(path string) (*PDB, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read PDB file: %w", err)
	}

	p, err := NewPDBFromRaw(raw)
	if err != nil {
		return nil, err
	}
	p.LocalPath = path
	p.ID = strings.TrimSuffix(baseName(path), ".pdb")

	return p, nil
}

// Fetch downloads a structure from RCSB and parses it.
func Fetch(ctx context.Context, pdbID string) (*PDB, error) {
	url := "https://files.rcsb.org/download/" + strings.ToUpper(pdbID) + ".pdb"
	raw, err := http.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("download PDB file: %w", err)
	}

	p, err := NewPDBFromRaw(raw)
	if err != nil {
		return nil, err
	}
	p.ID = strings.ToUpper(pdbID)

	return p, nil
}

// Parse parses the raw PDB text.
func (pdb *PDB) Parse() error {
	err := pdb.ExtractResidues()
	if err != nil {
		return fmt.Errorf("extract residues: %w", err)
	}

	pdb.extractSites()
	return nil
}

// WriteFile writes the raw PDB contents to a file.
func (pdb *PDB) WriteFile(path string) error {
	err := os.WriteFile(path, pdb.RawPDB, 0644)
	if err != nil {
		return fmt.Errorf("write PDB file: %w", err)
	}

	pdb.LocalPath = path
	return nil
}

// AllAtoms returns ATOM and HETATM records together.
func (pdb *PDB) AllAtoms() []*Atom {
	atoms := make([]*Atom, 0, len(pdb.Atoms)+len(pdb.HetAtoms))
	atoms = append(atoms, pdb.Atoms...)
	return append(atoms, pdb.HetAtoms...)
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
