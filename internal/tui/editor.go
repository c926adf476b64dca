package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jask/ordens/internal/database/repository"
	"github.com/jask/ordens/internal/orders"
)

type editorAction int

const (
	editorNone editorAction = iota
	editorCancel
	editorSubmit
)

// EditorScreen edits one work order, or a new one when the request has no
// record. It owns all keyboard input while its launch is open.
type EditorScreen struct {
	req        orders.EditorRequest
	fields     []FormField
	inputs     []textinput.Model
	focus      int
	dateFormat string
	err        string
	saving     bool
}

func NewEditorScreen(form Form, req orders.EditorRequest, dateFormat string) *EditorScreen {
	s := &EditorScreen{req: req, fields: form.Fields, dateFormat: dateFormat}
	for i, f := range form.Fields {
		inp := textinput.New()
		inp.Prompt = fmt.Sprintf("%-10s ", f.Label+":")
		inp.Placeholder = f.Placeholder
		inp.CharLimit = 120
		inp.Cursor.SetMode(cursor.CursorStatic)
		inp.SetValue(initialValue(req.Record, f.Key, dateFormat))
		if i == 0 {
			inp.Focus()
		}
		s.inputs = append(s.inputs, inp)
	}
	return s
}

func initialValue(w *repository.WorkOrder, key, dateFormat string) string {
	if w == nil {
		if key == "status" {
			return string(orders.StatusOpen)
		}
		return ""
	}
	switch key {
	case "number":
		return w.Number
	case "title":
		return w.Title
	case "requester":
		return deref(w.Requester)
	case "assignee":
		return deref(w.Assignee)
	case "category":
		return w.Category
	case "priority":
		return w.Priority
	case "status":
		return w.Status
	case "deadline":
		if w.Deadline != nil {
			return w.Deadline.Format(dateFormat)
		}
	}
	return ""
}

func (s *EditorScreen) Title() string { return s.req.Title() }

// Request is what the launcher built this screen from.
func (s *EditorScreen) Request() orders.EditorRequest { return s.req }

// Update handles a key. While a save is in flight keys are ignored.
func (s *EditorScreen) Update(msg tea.KeyMsg) (tea.Cmd, editorAction) {
	if s.saving {
		return nil, editorNone
	}
	switch action := keys.Action(msg, scopeEditor); action {
	case actCancel:
		return nil, editorCancel
	case actNext, actPrev:
		dir := 1
		if action == actPrev {
			dir = -1
		}
		s.inputs[s.focus].Blur()
		s.focus = (s.focus + dir + len(s.inputs)) % len(s.inputs)
		return s.inputs[s.focus].Focus(), editorNone
	case actSave:
		return nil, editorSubmit
	}
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return cmd, editorNone
}

// WorkOrder builds the record to store from the current input values.
func (s *EditorScreen) WorkOrder() (repository.WorkOrder, error) {
	var w repository.WorkOrder
	if s.req.Record != nil {
		w = *s.req.Record
	} else {
		w = repository.WorkOrder{ID: uuid.NewString(), Status: string(orders.StatusOpen)}
	}
	for i, f := range s.fields {
		v := strings.TrimSpace(s.inputs[i].Value())
		if f.Required && v == "" {
			return repository.WorkOrder{}, fmt.Errorf("%s is required", strings.ToLower(f.Label))
		}
		switch f.Key {
		case "number":
			w.Number = v
		case "title":
			w.Title = v
		case "requester":
			w.Requester = optional(v)
		case "assignee":
			w.Assignee = optional(v)
		case "category":
			w.Category = v
		case "priority":
			w.Priority = strings.ToUpper(v)
		case "status":
			st := orders.ParseStatus(v)
			if st == orders.StatusAll || st == orders.StatusUnknown {
				return repository.WorkOrder{}, fmt.Errorf("unknown status %q", v)
			}
			w.Status = string(st)
		case "deadline":
			if v == "" {
				w.Deadline = nil
				continue
			}
			d, err := time.ParseInLocation(s.dateFormat, v, time.UTC)
			if err != nil {
				return repository.WorkOrder{}, fmt.Errorf("deadline %q: expected %s", v, s.dateFormat)
			}
			w.Deadline = &d
		}
	}
	if w.Number == "" {
		return repository.WorkOrder{}, errors.New("number is required")
	}
	return w, nil
}

// beginSave locks the form while the store write runs.
func (s *EditorScreen) beginSave() {
	s.saving = true
	s.err = ""
}

// fail shows err inside the editor and unlocks the form.
func (s *EditorScreen) fail(err error) {
	s.saving = false
	s.err = err.Error()
}

// saved tells the launcher the save went through.
func (s *EditorScreen) saved() {
	s.saving = false
	if s.req.OnSaved != nil {
		s.req.OnSaved()
	}
}

func (s *EditorScreen) View() string {
	lines := []string{headerStyle.Render(s.Title())}
	if s.req.Session != nil {
		lines = append(lines, mutedStyle.Render("as "+s.req.Session.Name+" ("+s.req.Session.Role.String()+")"))
	}
	lines = append(lines, "")
	for _, in := range s.inputs {
		lines = append(lines, in.View())
	}
	lines = append(lines, "")
	switch {
	case s.saving:
		lines = append(lines, mutedStyle.Render("saving..."))
	case s.err != "":
		lines = append(lines, noticeStyles[orders.SeverityError].Render(s.err))
	}
	lines = append(lines, helpFor(scopeEditor, nil))
	return strings.Join(lines, "\n")
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
