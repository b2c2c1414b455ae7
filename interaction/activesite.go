package interaction

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tikz/dock/errors"
	"github.com/tikz/dock/pdb"
)

// ActiveSite is a set of "chain:restype:resnum" residue keys.
type ActiveSite map[string]struct{}

// NewActiveSite builds a set from residue keys.
func NewActiveSite(keys ...string) ActiveSite {
	a := make(ActiveSite, len(keys))
	for _, k := range keys {
		a[k] = struct{}{}
	}
	return a
}

// Contains reports whether the residue key is in the set. A nil set contains nothing.
func (a ActiveSite) Contains(key string) bool {
	_, ok := a[key]
	return ok
}

// Keys returns the residue keys sorted.
func (a ActiveSite) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseActiveSite parses residue keys separated by commas, semicolons or
// whitespace. Residue names are upper-cased.
func ParseActiveSite(s string) (ActiveSite, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})

	a := make(ActiveSite, len(fields))
	for _, f := range fields {
		parts := strings.Split(f, ":")
		if len(parts) != 3 || parts[1] == "" {
			return nil, errors.New(errors.CodeInvalidParam, "active site residue must be chain:restype:resnum").
				WithDetailf("residue=%q", f)
		}
		n, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return nil, errors.New(errors.CodeInvalidParam, "active site residue number must be an integer").
				WithDetailf("residue=%q", f)
		}
		a[pdb.ResidueKey(parts[0], parts[1], n)] = struct{}{}
	}

	return a, nil
}

// ActiveSiteFromSITE returns the residues of a SITE record of the receptor.
func ActiveSiteFromSITE(p *pdb.PDB, siteName string) (ActiveSite, error) {
	keys := p.SiteResidueKeys(siteName)
	if len(keys) == 0 {
		return nil, errors.New(errors.CodeNotFound, "SITE record not found").
			WithDetailf("site=%q", siteName)
	}
	return NewActiveSite(keys...), nil
}

// ActiveSiteNearLigand returns the receptor residues with an atom within
// cutoff angstroms of the het ligand selected by "RESNAME_CHAIN".
func ActiveSiteNearLigand(p *pdb.PDB, selector string, cutoff float64) (ActiveSite, error) {
	resName, chain, err := pdb.ParseLigandSelector(selector)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidParam, "invalid ligand selector")
	}

	lig, ok := p.HetResidue(resName, chain)
	if !ok {
		return nil, errors.New(errors.CodeNotFound, "ligand not found").
			WithDetailf("ligand %s in chain %s", resName, chain)
	}

	a := make(ActiveSite)
	for _, res := range p.ResiduesNear(lig.Atoms, cutoff) {
		a[res.Key()] = struct{}{}
	}
	return a, nil
}
