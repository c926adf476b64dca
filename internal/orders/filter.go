package orders

import (
	"strings"

	"github.com/jask/ordens/internal/database/repository"
)

// FilterState is the list screen's filter input. The zero value shows every record.
type FilterState struct {
	Status Status
	Search string
}

// Predicate keeps a record when it returns true.
type Predicate func(w repository.WorkOrder) bool

// Pipeline returns the active stages in application order: status, then search.
// Unset stages are left out.
func (f FilterState) Pipeline() []Predicate {
	var stages []Predicate
	if f.Status != StatusAll {
		status := f.Status
		stages = append(stages, func(w repository.WorkOrder) bool {
			return status.Matches(w.Status)
		})
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		stages = append(stages, func(w repository.WorkOrder) bool {
			// number and title only
			return strings.Contains(strings.ToLower(w.Number), term) ||
				strings.Contains(strings.ToLower(w.Title), term)
		})
	}
	return stages
}

// Apply runs the pipeline over records and returns the survivors in their
// original order. The input slice is not modified.
func (f FilterState) Apply(records []repository.WorkOrder) []repository.WorkOrder {
	stages := f.Pipeline()
	out := make([]repository.WorkOrder, 0, len(records))
next:
	for _, w := range records {
		for _, keep := range stages {
			if !keep(w) {
				continue next
			}
		}
		out = append(out, w)
	}
	return out
}
