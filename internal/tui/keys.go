package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	scopeList   = "list"
	scopeSearch = "search"
	scopeEditor = "editor"
)

const (
	actQuit   = "quit"
	actUp     = "up"
	actDown   = "down"
	actStatus = "status"
	actSearch = "search"
	actOpen   = "open"
	actEdit   = "edit"
	actNew    = "new"
	actReload = "reload"
	actCancel = "cancel"
	actApply  = "apply"
	actNext   = "next"
	actPrev   = "prev"
	actSave   = "save"
)

// KeyBinding maps keys to an action in some scopes. An empty Scopes list or
// "*" matches every scope. Bindings without a Description stay out of the help line.
type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

// Action returns the action bound to msg in scope, or "".
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) string {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return b.Action
			}
		}
	}
	return ""
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}

var keys = NewKeyRegistry([]KeyBinding{
	{Keys: []string{"ctrl+c"}, Action: actQuit, Scopes: []string{"*"}},
	{Keys: []string{"enter"}, Action: actOpen, Description: "Open", Scopes: []string{scopeList}},
	{Keys: []string{"e"}, Action: actEdit, Description: "Edit", Scopes: []string{scopeList}},
	{Keys: []string{"n"}, Action: actNew, Description: "New", Scopes: []string{scopeList}},
	{Keys: []string{"s"}, Action: actStatus, Description: "Status", Scopes: []string{scopeList}},
	{Keys: []string{"/"}, Action: actSearch, Description: "Search", Scopes: []string{scopeList}},
	{Keys: []string{"r"}, Action: actReload, Description: "Reload", Scopes: []string{scopeList}},
	{Keys: []string{"q"}, Action: actQuit, Description: "Quit", Scopes: []string{scopeList}},
	{Keys: []string{"up", "k"}, Action: actUp, Scopes: []string{scopeList}},
	{Keys: []string{"down", "j"}, Action: actDown, Scopes: []string{scopeList}},

	{Keys: []string{"enter"}, Action: actApply, Description: "apply", Scopes: []string{scopeSearch}},
	{Keys: []string{"esc"}, Action: actCancel, Description: "cancel", Scopes: []string{scopeSearch}},

	{Keys: []string{"enter", "ctrl+s"}, Action: actSave, Description: "save", Scopes: []string{scopeEditor}},
	{Keys: []string{"esc"}, Action: actCancel, Description: "cancel", Scopes: []string{scopeEditor}},
	{Keys: []string{"tab", "down"}, Action: actNext, Description: "next field", Scopes: []string{scopeEditor}},
	{Keys: []string{"shift+tab", "up"}, Action: actPrev, Scopes: []string{scopeEditor}},
})

// helpFor renders the help line of scope. disabled actions are shown struck out.
func helpFor(scope string, disabled map[string]bool) string {
	var parts []string
	for _, b := range keys.BindingsForScope(scope) {
		if b.Description == "" || len(b.Keys) == 0 || slices.Contains(b.Scopes, "*") {
			continue
		}
		label := "[" + b.Keys[0] + "]"
		if disabled[b.Action] {
			parts = append(parts, disabledStyle.Render(label+" "+b.Description))
			continue
		}
		parts = append(parts, keyStyle.Render(label)+" "+b.Description)
	}
	return strings.Join(parts, "  ")
}
