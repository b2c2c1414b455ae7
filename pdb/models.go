package pdb

import (
	"strconv"
	"strings"
)

// SplitModels splits a multi-model record at MODEL/ENDMDL lines. Lines outside
// any model are dropped. A record without MODEL lines is returned whole.
func SplitModels(raw []byte) []string {
	text := string(raw)
	if !strings.Contains(text, "\nMODEL") && !strings.HasPrefix(text, "MODEL") {
		return []string{text}
	}

	var models []string
	var cur []string
	in := false
	for _, line := range Lines(text) {
		switch {
		case strings.HasPrefix(line, "MODEL"):
			in, cur = true, nil
		case strings.HasPrefix(line, "ENDMDL"):
			if in {
				models = append(models, strings.Join(cur, "\n")+"\n")
			}
			in = false
		case in:
			cur = append(cur, line)
		}
	}
	return models
}

// VinaEnergy reads the affinity from a "REMARK VINA RESULT:" line.
func VinaEnergy(record string) (float64, bool) {
	for _, line := range Lines(record) {
		if !strings.HasPrefix(line, "REMARK VINA RESULT:") {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, "REMARK VINA RESULT:"))
		if len(fields) == 0 {
			return 0, false
		}
		e, err := strconv.ParseFloat(fields[0], 64)
		return e, err == nil
	}
	return 0, false
}
