package categorizer

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// closestAccount returns the candidate with the smallest case-insensitive edit
// distance to target. Ties go to the earlier candidate.
func closestAccount(target string, candidates []string) (string, bool) {
	best, bestDist := "", -1
	upper := strings.ToUpper(target)
	for _, candidate := range candidates {
		dist := levenshtein.ComputeDistance(upper, strings.ToUpper(candidate))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best, bestDist >= 0
}
