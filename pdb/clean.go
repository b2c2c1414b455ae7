package pdb

import (
	"fmt"
	"strings"
)

// standardResidues are the amino acid names kept by CleanProtein, including
// the protonation and disulfide variants written by preparation tools.
var standardResidues = map[string]bool{
	"CYS": true, "ILE": true, "SER": true, "VAL": true, "GLN": true, "LYS": true, "ASN": true,
	"PRO": true, "THR": true, "PHE": true, "ALA": true, "HIS": true, "GLY": true, "ASP": true,
	"LEU": true, "ARG": true, "TRP": true, "GLU": true, "TYR": true, "MET": true,
	"HID": true, "HSP": true, "HIE": true, "HIP": true, "CYX": true, "CSS": true,
}

// CleanProtein keeps only the ATOM lines of standard residues, dropping
// waters, ligands, ions and every non-coordinate record.
func CleanProtein(raw []byte) []byte {
	var b strings.Builder
	for _, line := range Lines(string(raw)) {
		if Kind(line) == KindAtom && standardResidues[column(line, 17, 20)] {
			b.WriteString(strings.TrimRight(line, "\r"))
			b.WriteByte('\n')
		}
	}
	return []byte(b.String())
}

// ExtractLigand returns the HETATM lines of the first het residue named resName
// in the given chain, terminated by END.
func (pdb *PDB) ExtractLigand(resName, chain string) ([]byte, error) {
	res, ok := pdb.HetResidue(resName, chain)
	if !ok {
		return nil, fmt.Errorf("ligand %s in chain %s not found", strings.ToUpper(resName), chain)
	}

	var b strings.Builder
	for _, line := range Lines(string(pdb.RawPDB)) {
		if Kind(line) != KindHetatm {
			continue
		}
		if strings.TrimSpace(column(line, 21, 22)) != res.Chain ||
			strings.ToUpper(strings.TrimSpace(column(line, 17, 20))) != res.ResName ||
			strings.TrimSpace(column(line, 22, 26)) != fmt.Sprint(res.StructPosition) {
			continue
		}
		b.WriteString(strings.TrimRight(line, "\r"))
		b.WriteByte('\n')
	}
	b.WriteString("END\n")

	return []byte(b.String()), nil
}

// WithoutResidue returns the raw structure with all ATOM/HETATM lines of res removed.
func (pdb *PDB) WithoutResidue(res *Residue) []byte {
	var lines []string
	for _, line := range Lines(string(pdb.RawPDB)) {
		kind := Kind(line)
		if (kind == KindAtom || kind == KindHetatm) &&
			strings.TrimSpace(column(line, 21, 22)) == res.Chain &&
			strings.ToUpper(strings.TrimSpace(column(line, 17, 20))) == res.ResName &&
			strings.TrimSpace(column(line, 22, 26)) == fmt.Sprint(res.StructPosition) {
			continue
		}
		lines = append(lines, line)
	}
	return []byte(strings.Join(lines, "\n"))
}

// HetLigands lists the het residues as "RESNAME_CHAIN" selectors, skipping waters.
func (pdb *PDB) HetLigands() []string {
	var ligands []string
	seen := make(map[string]bool)
	for _, res := range pdb.HetResidues {
		if res.ResName == "HOH" || res.ResName == "WAT" {
			continue
		}
		sel := res.ResName + "_" + res.Chain
		if !seen[sel] {
			seen[sel] = true
			ligands = append(ligands, sel)
		}
	}
	return ligands
}
