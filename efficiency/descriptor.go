package efficiency

import (
	"context"

	"github.com/tikz/dock/errors"
	"github.com/tikz/dock/pdb"
)

// StructureDescriptor describes a ligand from its explicit PDB atoms.
// It cannot predict logP.
type StructureDescriptor struct{}

// Describe implements Descriptor.
func (StructureDescriptor) Describe(ctx context.Context, record string) (Descriptors, error) {
	p, err := pdb.NewPDBFromRaw([]byte(record))
	if err != nil {
		return Descriptors{}, errors.Wrap(err, errors.CodeRecordFormat, "parse ligand")
	}

	comp := p.Describe()
	return Descriptors{
		Atoms:      comp.Atoms,
		HeavyAtoms: comp.HeavyAtoms,
		Bonds:      comp.Bonds,
		Residues:   comp.Residues,
		Formula:    comp.Formula,
		Weight:     comp.Weight,
	}, nil
}
