package tui

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed form.yaml
var defaultForm []byte

// FormField is one input of the work-order editor.
type FormField struct {
	Key         string `yaml:"key"`
	Label       string `yaml:"label"`
	Placeholder string `yaml:"placeholder"`
	Required    bool   `yaml:"required"`
}

// Form is the editor layout.
type Form struct {
	Fields []FormField `yaml:"fields"`
}

var formKeys = map[string]bool{
	"number": true, "title": true, "requester": true, "assignee": true,
	"category": true, "priority": true, "status": true, "deadline": true,
}

// LoadForm reads the editor layout from path, or the built-in one when path is empty.
func LoadForm(path string) (Form, error) {
	data := defaultForm
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Form{}, fmt.Errorf("editor template: %w", err)
		}
		data = b
	}
	return parseForm(data)
}

func parseForm(data []byte) (Form, error) {
	var f Form
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Form{}, fmt.Errorf("editor template: %w", err)
	}
	if len(f.Fields) == 0 {
		return Form{}, errors.New("editor template has no fields")
	}
	seen := map[string]bool{}
	for i := range f.Fields {
		fld := &f.Fields[i]
		fld.Key = strings.ToLower(strings.TrimSpace(fld.Key))
		if !formKeys[fld.Key] {
			return Form{}, fmt.Errorf("editor template: unknown field %q", fld.Key)
		}
		if seen[fld.Key] {
			return Form{}, fmt.Errorf("editor template: duplicate field %q", fld.Key)
		}
		seen[fld.Key] = true
		if fld.Label == "" {
			fld.Label = fld.Key
		}
	}
	return f, nil
}
