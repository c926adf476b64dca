package orders

import "strings"

// Status is a work-order status code as stored. StatusAll is only meaningful
// as a filter value and is the zero value so an empty FilterState shows everything.
type Status string

const (
	StatusAll        Status = ""
	StatusOpen       Status = "ABERTA"
	StatusInProgress Status = "EM_ANDAMENTO"
	StatusDone       Status = "CONCLUIDA"
	StatusCancelled  Status = "CANCELADA"
	StatusUnknown    Status = "UNKNOWN"
)

// Statuses lists the record statuses in workflow order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusDone, StatusCancelled}

// StatusChoices is the status filter menu, "all" first.
var StatusChoices = []Status{StatusAll, StatusOpen, StatusInProgress, StatusDone, StatusCancelled}

var statusAliases = map[string]Status{
	"":             StatusAll,
	"TODOS":        StatusAll,
	"ALL":          StatusAll,
	"ABERTA":       StatusOpen,
	"OPEN":         StatusOpen,
	"EM_ANDAMENTO": StatusInProgress,
	"IN_PROGRESS":  StatusInProgress,
	"CONCLUIDA":    StatusDone,
	"DONE":         StatusDone,
	"CANCELADA":    StatusCancelled,
	"CANCELLED":    StatusCancelled,
}

// ParseStatus maps a filter or stored value to a Status. Unrecognised text
// yields StatusUnknown instead of an error.
func ParseStatus(s string) Status {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if st, ok := statusAliases[key]; ok {
		return st
	}
	return StatusUnknown
}

// Label is the text shown in the status selector.
func (s Status) Label() string {
	if s == StatusAll {
		return "Todos"
	}
	return string(s)
}

func (s Status) String() string { return s.Label() }

// Valid reports whether s can be used as a filter value.
func (s Status) Valid() bool {
	for _, c := range StatusChoices {
		if c == s {
			return true
		}
	}
	return false
}

// Matches reports whether a stored status passes this filter value.
func (s Status) Matches(stored string) bool {
	return s == StatusAll || strings.EqualFold(string(s), stored)
}

// NextChoice returns the filter value after s in StatusChoices, wrapping around.
func NextChoice(s Status) Status {
	for i, c := range StatusChoices {
		if c == s {
			return StatusChoices[(i+1)%len(StatusChoices)]
		}
	}
	return StatusAll
}
