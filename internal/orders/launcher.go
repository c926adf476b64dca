package orders

import (
	"errors"
	"fmt"

	"github.com/jask/ordens/internal/auth"
	"github.com/jask/ordens/internal/database/repository"
)

// LaunchState is a step in one editor launch.
type LaunchState int

const (
	LaunchIdle LaunchState = iota
	LaunchLaunching
	LaunchOpen
	LaunchClosed
)

func (s LaunchState) String() string {
	switch s {
	case LaunchLaunching:
		return "launching"
	case LaunchOpen:
		return "open"
	case LaunchClosed:
		return "closed"
	default:
		return "idle"
	}
}

// EditorRequest is what an editor is built from. A nil Record means create mode.
type EditorRequest struct {
	Session *auth.Session
	Record  *repository.WorkOrder
	OnSaved func()
}

// Creating reports whether the editor starts empty.
func (r EditorRequest) Creating() bool { return r.Record == nil }

// Title is the editor window title.
func (r EditorRequest) Title() string {
	if r.Creating() {
		return "New work order"
	}
	return "Edit work order - " + r.Record.Number
}

// Surface is a constructed editor.
type Surface interface {
	Title() string
}

// EditorFactory builds the editor surface for a request.
type EditorFactory func(req EditorRequest) (Surface, error)

var errNoEditor = errors.New("no editor configured")

// Launcher opens editors one at a time. While a launch is open it holds the
// modal token and refuses to open another; once that launch closes a new one
// may start.
type Launcher struct {
	factory  EditorFactory
	notifier Notifier
	state    LaunchState
	active   *Launch
}

func NewLauncher(factory EditorFactory, notifier Notifier) *Launcher {
	return &Launcher{factory: factory, notifier: notifier}
}

// State is LaunchOpen while an editor holds the modal token.
func (l *Launcher) State() LaunchState { return l.state }

// Active returns the open launch, or nil.
func (l *Launcher) Active() *Launch { return l.active }

// OpenForEdit opens the editor on a copy of record.
func (l *Launcher) OpenForEdit(record repository.WorkOrder, session *auth.Session, onSaved func()) (*Launch, error) {
	return l.open(EditorRequest{Session: session, Record: &record, OnSaved: onSaved})
}

// OpenForCreate opens the editor with no record.
func (l *Launcher) OpenForCreate(session *auth.Session, onSaved func()) (*Launch, error) {
	return l.open(EditorRequest{Session: session, OnSaved: onSaved})
}

func (l *Launcher) open(req EditorRequest) (*Launch, error) {
	if l.active != nil {
		return nil, ErrEditorOpen
	}
	l.state = LaunchLaunching

	// The surface gets a callback that closes this launch, so a save from
	// inside the editor still fires the caller's callback at most once.
	var ln *Launch
	surfaceReq := req
	surfaceReq.OnSaved = func() {
		if ln != nil {
			ln.Save()
		}
	}
	surface, err := l.build(surfaceReq)
	if err != nil {
		l.state = LaunchIdle
		fail(l.notifier, fmt.Sprintf("could not open %q: %v", req.Title(), err))
		return nil, &LaunchError{Err: err}
	}
	ln = &Launch{launcher: l, req: req, surface: surface, state: LaunchOpen}
	l.active = ln
	l.state = LaunchOpen
	return ln, nil
}

func (l *Launcher) build(req EditorRequest) (Surface, error) {
	if l.factory == nil {
		return nil, errNoEditor
	}
	surface, err := l.factory(req)
	if err != nil {
		return nil, err
	}
	if surface == nil {
		return nil, errNoEditor
	}
	return surface, nil
}

func (l *Launcher) release(ln *Launch) {
	if l.active == ln {
		l.active = nil
		l.state = LaunchIdle
	}
}

// Launch is one open editor.
type Launch struct {
	launcher *Launcher
	req      EditorRequest
	surface  Surface
	state    LaunchState
}

func (ln *Launch) State() LaunchState { return ln.state }

func (ln *Launch) Surface() Surface { return ln.surface }

func (ln *Launch) Request() EditorRequest { return ln.req }

// Save closes the launch and runs the save callback before returning.
// It reports false if the launch was not open; the callback never runs twice.
func (ln *Launch) Save() bool {
	if !ln.close() {
		return false
	}
	if ln.req.OnSaved != nil {
		ln.req.OnSaved()
	}
	return true
}

// Cancel closes the launch without running the save callback.
func (ln *Launch) Cancel() bool {
	return ln.close()
}

func (ln *Launch) close() bool {
	if ln.state != LaunchOpen {
		return false
	}
	ln.state = LaunchClosed
	ln.launcher.release(ln)
	return true
}
