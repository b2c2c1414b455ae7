package pdb

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var residueNames = [...][3]string{
	{"Alanine", "Ala", "A"},
	{"Arginine", "Arg", "R"},
	{"Asparagine", "Asn", "N"},
	{"Aspartic acid", "Asp", "D"},
	{"Cysteine", "Cys", "C"},
	{"Glutamic acid", "Glu", "E"},
	{"Glutamine", "Gln", "Q"},
	{"Glycine", "Gly", "G"},
	{"Histidine", "His", "H"},
	{"Isoleucine", "Ile", "I"},
	{"Leucine", "Leu", "L"},
	{"Lysine", "Lys", "K"},
	{"Methionine", "Met", "M"},
	{"Phenylalanine", "Phe", "F"},
	{"Proline", "Pro", "P"},
	{"Serine", "Ser", "S"},
	{"Threonine", "Thr", "T"},
	{"Tryptophan", "Trp", "W"},
	{"Tyrosine", "Tyr", "Y"},
	{"Valine", "Val", "V"},
}

// Residue represents a single residue from the PDB structure.
type Residue struct {
	Chain          string  `json:"chain"`
	StructPosition int64   `json:"structPosition"`
	ResName        string  `json:"resName"` // residue name as written in columns 18-20
	Name           string  `json:"-"`
	Name1          string  `json:"name1"`
	Name3          string  `json:"-"`
	Het            bool    `json:"het"`
	Atoms          []*Atom `json:"-"`
}

// Key returns the residue identifier used by active-site sets, "chain:RESNAME:number".
func (r *Residue) Key() string {
	return ResidueKey(r.Chain, r.ResName, r.StructPosition)
}

// ResidueKey formats a residue identifier as "chain:RESNAME:number".
func ResidueKey(chain, resName string, number int64) string {
	return chain + ":" + strings.ToUpper(resName) + ":" + strconv.FormatInt(number, 10)
}

// IsAminoacid returns true if the given letter is an aminoacid, false otherwise.
func IsAminoacid(letter string) bool {
	for _, res := range residueNames {
		if res[2] == letter {
			return true
		}
	}
	return false
}

// AminoacidNames receives a name and returns all the possible representations as a string.
func AminoacidNames(input string) (string, string, string) {
	s := strings.ToLower(input)
	for _, res := range residueNames {
		for _, n := range res {
			if strings.ToLower(n) == s {
				return res[0], res[1], res[2]
			}
		}
	}

	return input, "Unk", "X"
}

// NewResidue constructs a new residue given a chain, position and aminoacid name.
// The name is case-insensitive and can be either a full aminoacid name, one or three letter abbreviation.
func NewResidue(chain string, pos int64, input string) *Residue {
	name, abbrv3, abbrv1 := AminoacidNames(input)

	res := &Residue{
		Chain:          chain,
		StructPosition: pos,
		ResName:        strings.ToUpper(input),
		Name:           name,
		Name1:          abbrv1,
		Name3:          abbrv3,
	}

	return res
}

// ExtractResidues extracts data from the ATOM and HETATM records and parses them.
func (pdb *PDB) ExtractResidues() error {
	atoms, err := pdb.extractPDBATMRecords(KindAtom)
	if err != nil {
		return fmt.Errorf("extract ATOM records: %w", err)
	}

	hetatms, err := pdb.extractPDBATMRecords(KindHetatm)
	if err != nil {
		return fmt.Errorf("extract HETATM records: %w", err)
	}

	if len(atoms) == 0 && len(hetatms) == 0 {
		return errors.New("atoms not found")
	}

	pdb.Atoms = atoms
	pdb.HetAtoms = hetatms

	pdb.ExtractPDBChains()
	pdb.extractHetResidues()

	return nil
}

// ExtractPDBChains groups ATOM records into residues by chain and position.
func (pdb *PDB) ExtractPDBChains() {
	chains := make(map[string]map[int64]*Residue)

	for _, atom := range pdb.Atoms {
		chain, chainOk := chains[atom.Chain]
		if !chainOk {
			chain = make(map[int64]*Residue)
			chains[atom.Chain] = chain
		}

		res, posOk := chain[atom.ResidueNumber]
		if !posOk {
			res = NewResidue(atom.Chain, atom.ResidueNumber, atom.Residue)
			chain[atom.ResidueNumber] = res
		}
		res.Atoms = append(res.Atoms, atom)
	}

	pdb.Chains = chains
	pdb.TotalLength = 0
	for _, chain := range pdb.Chains {
		pdb.TotalLength += int64(len(chain))
	}
}

// extractHetResidues groups consecutive HETATM records of the same residue.
func (pdb *PDB) extractHetResidues() {
	pdb.HetResidues = nil

	var res *Residue
	for _, atom := range pdb.HetAtoms {
		if res == nil || res.Chain != atom.Chain || res.StructPosition != atom.ResidueNumber ||
			res.ResName != strings.ToUpper(atom.Residue) {
			res = NewResidue(atom.Chain, atom.ResidueNumber, atom.Residue)
			res.Het = true
			pdb.HetResidues = append(pdb.HetResidues, res)
		}
		res.Atoms = append(res.Atoms, atom)
	}
}

// Residue looks up a residue by its "chain:RESNAME:number" key, ATOM residues first.
func (pdb *PDB) Residue(key string) (*Residue, bool) {
	for _, chain := range pdb.Chains {
		for _, res := range chain {
			if res.Key() == key {
				return res, true
			}
		}
	}
	for _, res := range pdb.HetResidues {
		if res.Key() == key {
			return res, true
		}
	}
	return nil, false
}

// HetResidue returns the first het residue with the given name in the given chain.
func (pdb *PDB) HetResidue(resName, chain string) (*Residue, bool) {
	for _, res := range pdb.HetResidues {
		if res.ResName == strings.ToUpper(resName) && res.Chain == chain {
			return res, true
		}
	}
	return nil, false
}

func sortedKeys(chains map[string]map[int64]*Residue) []string {
	keys := make([]string, 0, len(chains))
	for k := range chains {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedPositions(residues map[int64]*Residue) []int64 {
	pos := make([]int64, 0, len(residues))
	for p := range residues {
		pos = append(pos, p)
	}
	sort.Slice(pos, func(i, j int) bool { return pos[i] < pos[j] })
	return pos
}

// ParseLigandSelector splits a "RESNAME_CHAIN" het residue selector.
func ParseLigandSelector(selector string) (resName, chain string, err error) {
	i := strings.LastIndexByte(selector, '_')
	if i <= 0 || i == len(selector)-1 {
		return "", "", fmt.Errorf("ligand selector %q must be RESNAME_CHAIN", selector)
	}
	return strings.ToUpper(selector[:i]), selector[i+1:], nil
}
