package service

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/ordens/internal/orders"
)

// SuggestStatus returns the status choice closest to input, or "" when nothing
// is close enough to be a likely typo.
func SuggestStatus(input string) orders.Status {
	in := strings.ToUpper(strings.TrimSpace(input))
	if in == "" {
		return ""
	}
	best := orders.Status("")
	bestDist := -1
	for _, st := range orders.Statuses {
		dist := levenshtein.ComputeDistance(in, string(st))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = st, dist
		}
	}
	if float64(bestDist)/float64(max(len(in), len(best))) >= 0.5 {
		return ""
	}
	return best
}

// UnknownStatusError describes a status value no alias maps to, with a
// suggestion when one is close.
func UnknownStatusError(input string) error {
	if s := SuggestStatus(input); s != "" {
		return fmt.Errorf("%w %q (did you mean %s?)", orders.ErrUnknownStatus, input, s)
	}
	return fmt.Errorf("%w %q", orders.ErrUnknownStatus, input)
}
