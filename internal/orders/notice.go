package orders

// Severity classifies a user-facing notice.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a short message for the user.
type Notice struct {
	Severity Severity
	Message  string
}

// Notifier shows notices to the user.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// MsgSelectionRequired is shown when edit is asked for with nothing selected.
const MsgSelectionRequired = "select a work order before editing"

func warn(n Notifier, msg string) {
	if n != nil {
		n.Notify(Notice{Severity: SeverityWarning, Message: msg})
	}
}

func fail(n Notifier, msg string) {
	if n != nil {
		n.Notify(Notice{Severity: SeverityError, Message: msg})
	}
}
