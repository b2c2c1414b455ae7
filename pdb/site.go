package pdb

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	siteRecordRe = regexp.MustCompile("(?m)^SITE.*$")
	siteRemarkRe = regexp.MustCompile("(?m)REMARK 800 (.*?): (.*?)$")
)

// extractSites reads SITE records into BindingSite.
// https://www.wwpdb.org/documentation/file-format-content/format33/sect7.html#SITE
func (pdb *PDB) extractSites() {
	sites := make(map[string][]*Residue)
	siteRecords := siteRecordRe.FindAllString(string(pdb.RawPDB), -1)

	for _, s := range siteRecords {
		siteName := strings.TrimSpace(column(s, 11, 14))
		for i := 18; i < 62; i += 11 {
			residueName := strings.TrimSpace(column(s, i, i+3))
			if residueName == "" {
				continue
			}
			chain := strings.TrimSpace(column(s, i+4, i+5))
			pos, err := strconv.ParseInt(strings.TrimSpace(column(s, i+5, i+9)), 10, 64)
			if err != nil {
				continue
			}
			if res, ok := pdb.Residue(ResidueKey(chain, residueName, pos)); ok {
				sites[siteName] = append(sites[siteName], res)
			}
		}
	}

	pdb.BindingSite = sites

	pdb.extractSitesRemarks()
}

func (pdb *PDB) extractSitesRemarks() {
	remarks := siteRemarkRe.FindAllStringSubmatch(string(pdb.RawPDB), -1)

	siteDescs := make(map[string]string)
	var identifier string
	for _, r := range remarks {
		if r[1] == "SITE_IDENTIFIER" {
			identifier = strings.TrimSpace(r[2])
		}
		if r[1] == "SITE_DESCRIPTION" {
			siteDescs[identifier] = strings.TrimSpace(r[2])
		}
	}

	pdb.BindingSiteDesc = siteDescs
}

// SiteResidueKeys returns the residue keys of a SITE record, in file order.
func (pdb *PDB) SiteResidueKeys(siteName string) []string {
	var keys []string
	for _, res := range pdb.BindingSite[siteName] {
		keys = append(keys, res.Key())
	}
	return keys
}

// ResiduesNear returns the ATOM residues with any atom within cutoff angstroms
// of any of the given atoms, in chain and position order.
func (pdb *PDB) ResiduesNear(atoms []*Atom, cutoff float64) []*Residue {
	var near []*Residue
	for _, chain := range sortedKeys(pdb.Chains) {
		residues := pdb.Chains[chain]
		for _, pos := range sortedPositions(residues) {
			res := residues[pos]
			if residueNear(res, atoms, cutoff) {
				near = append(near, res)
			}
		}
	}
	return near
}

func residueNear(res *Residue, atoms []*Atom, cutoff float64) bool {
	for _, a := range res.Atoms {
		for _, b := range atoms {
			if Distance(a, b) <= cutoff {
				return true
			}
		}
	}
	return false
}
