package fpocket

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tikz/dock/errors"
	"github.com/tikz/dock/pdb"
)

var (
	regexDrugScore  = regexp.MustCompile(`Drug Score.*: ([0-9.]*)`)
	regexPocketFile = regexp.MustCompile(`pocket([0-9]+)_atm\.pdb$`)
)

// Results represents the results of a Fpocket job.
type Results struct {
	Pockets []Pocket
	Dir     string
}

// Pocket represents a single pocket from a pocketN_atm.pdb file.
type Pocket struct {
	Number    int
	Path      string
	DrugScore float64
	Atoms     []*pdb.Atom    // receptor atoms lining the pocket
	Residues  []*pdb.Residue // receptor residues lining the pocket
}

// Run runs Fpocket on a PDB and parses the results.
// bin is the fpocket executable; the job directory is created under outPath
// and reused if it already exists.
func Run(ctx context.Context, bin, outPath string, p *pdb.PDB) (results Results, err error) {
	outPath = filepath.Clean(outPath)
	outJobPath := filepath.Join(outPath, p.ID+"_out")

	_, err = os.Stat(outJobPath)
	if os.IsNotExist(err) {
		// fpocket always creates the results dir next to its input
		tempPDBPath := filepath.Join(outPath, p.ID+".pdb")
		if err = os.WriteFile(tempPDBPath, p.RawPDB, 0644); err != nil {
			return results, fmt.Errorf("write fpocket input: %w", err)
		}
		defer os.Remove(tempPDBPath)

		cmd := exec.CommandContext(ctx, bin, "-f", tempPDBPath)

		out, err := cmd.CombinedOutput()
		if err != nil || strings.Contains(string(out), "failed") {
			return results, errors.Wrap(fmt.Errorf("%v %s", err, string(out)), errors.CodeExternalTool, "fpocket failed")
		}
	}

	pockets, err := ReadPockets(p, filepath.Join(outJobPath, "pockets"))
	if err != nil {
		return
	}

	return Results{
		Pockets: pockets,
		Dir:     outJobPath,
	}, nil
}

// Pocket returns the pocket with the given number.
func (r *Results) Pocket(n int) (Pocket, bool) {
	for _, pocket := range r.Pockets {
		if pocket.Number == n {
			return pocket, true
		}
	}
	return Pocket{}, false
}

// ResidueInPocket returns if the given residue is in a pocket, and the pocket's drug score.
func (r *Results) ResidueInPocket(res *pdb.Residue) (inPocket bool, drugScore float64) {
	for _, pocket := range r.Pockets {
		for _, pRes := range pocket.Residues {
			if pRes == res {
				inPocket, drugScore = true, pocket.DrugScore
				return
			}
		}
	}
	return
}

// ReadPockets parses every pocketN_atm.pdb file in dir, ordered by pocket number.
// Pocket residues are resolved against the receptor p.
func ReadPockets(p *pdb.PDB, dir string) (pockets []Pocket, err error) {
	err = filepath.Walk(dir, func(file string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		m := regexPocketFile.FindStringSubmatch(file)
		if m == nil {
			return nil
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}

		pocket, err := parsePocket(p, data)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		pocket.Number, _ = strconv.Atoi(m[1])
		pocket.Path = file

		pockets = append(pockets, pocket)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(pockets, func(i, j int) bool { return pockets[i].Number < pockets[j].Number })
	return pockets, nil
}

func parsePocket(p *pdb.PDB, data []byte) (Pocket, error) {
	var pocket Pocket

	m := regexDrugScore.FindStringSubmatch(string(data))
	if m == nil {
		return pocket, fmt.Errorf("drug score not found")
	}
	drugScore, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return pocket, err
	}
	pocket.DrugScore = drugScore

	pocketPDB, err := pdb.NewPDBFromRaw(data)
	if err != nil {
		return pocket, err
	}
	pocket.Atoms = pocketPDB.Atoms

	for _, atom := range pocketPDB.Atoms {
		res := p.Chains[atom.Chain][atom.ResidueNumber]
		if res == nil {
			continue
		}
		seen := false
		for _, r := range pocket.Residues {
			if r == res {
				seen = true
				break
			}
		}
		if !seen {
			pocket.Residues = append(pocket.Residues, res)
		}
	}

	return pocket, nil
}
