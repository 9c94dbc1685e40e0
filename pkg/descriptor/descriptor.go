package descriptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/rules"
)

var (
	// ErrFormNotFound is returned when a store has no form with the id.
	ErrFormNotFound = errors.New("descriptor: form not found")
	// ErrInvalidDocument is returned for payloads that are neither JSON nor YAML.
	ErrInvalidDocument = errors.New("descriptor: invalid JSON or YAML")
)

// Form is one form definition.
type Form struct {
	ID       string            `json:"id"`
	Source   string            `json:"source,omitempty"`
	Title    string            `json:"title,omitempty"`
	Action   string            `json:"action,omitempty"`
	Method   string            `json:"method,omitempty"`
	Submit   string            `json:"submit,omitempty"`
	Fields   []field.Config    `json:"fields"`
	Defaults map[string]string `json:"defaults,omitempty"`
}

// Store indexes forms by id.
type Store struct {
	forms map[string]Form
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Title    string            `json:"title" yaml:"title"`
	Action   string            `json:"action" yaml:"action"`
	Method   string            `json:"method" yaml:"method"`
	Submit   string            `json:"submit" yaml:"submit"`
	Fields   []field.Config    `json:"fields" yaml:"fields"`
	Defaults map[string]string `json:"defaults" yaml:"defaults"`
}

// Parse decodes one document. source names the payload in errors.
func Parse(data []byte, source string) (*Store, error) {
	store := &Store{forms: make(map[string]Form)}
	if err := store.add(data, source); err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFS parses every .json, .yaml and .yml file in fsys. Form ids must be
// unique across files.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Form)}
	if fsys == nil {
		return store, nil
	}
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDescriptorFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("descriptor: read %s: %w", path, err)
		}
		return store.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Form returns the definition for id.
func (s *Store) Form(id string) (Form, error) {
	if s != nil {
		if form, ok := s.forms[strings.TrimSpace(id)]; ok {
			return form, nil
		}
	}
	return Form{}, fmt.Errorf("%w: %q", ErrFormNotFound, id)
}

// IDs lists the form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len reports the number of forms.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.forms)
}

func (s *Store) add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for rawID, raw := range doc.Forms {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("descriptor: %s defines an empty form id", source)
		}
		if _, exists := s.forms[id]; exists {
			return fmt.Errorf("descriptor: duplicate form %q (file %s)", id, source)
		}
		form, err := normaliseForm(raw, id, source)
		if err != nil {
			return err
		}
		s.forms[id] = form
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return doc, fmt.Errorf("descriptor: %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, source, err)
	}
	return doc, nil
}

func normaliseForm(raw formFile, id, source string) (Form, error) {
	form := Form{
		ID:     id,
		Source: source,
		Title:  strings.TrimSpace(raw.Title),
		Action: strings.TrimSpace(raw.Action),
		Method: strings.ToUpper(strings.TrimSpace(raw.Method)),
		Submit: strings.TrimSpace(raw.Submit),
		Fields: make([]field.Config, 0, len(raw.Fields)),
	}
	switch form.Method {
	case "", "GET", "POST":
	default:
		return Form{}, fmt.Errorf("descriptor: form %q (file %s) has unsupported method %q", id, source, raw.Method)
	}

	seen := make(map[string]bool, len(raw.Fields))
	for idx, cfg := range raw.Fields {
		cfg.Name = strings.TrimSpace(cfg.Name)
		if cfg.Name == "" {
			return Form{}, fmt.Errorf("descriptor: form %q (file %s) field %d: %w", id, source, idx, field.ErrNameRequired)
		}
		if seen[cfg.Name] {
			return Form{}, fmt.Errorf("descriptor: form %q (file %s) defines duplicate field %q", id, source, cfg.Name)
		}
		seen[cfg.Name] = true

		names := make([]string, len(cfg.Rules))
		for i, n := range cfg.Rules {
			names[i] = string(n)
		}
		parsed, err := rules.ParseNames(names)
		if err != nil {
			return Form{}, fmt.Errorf("descriptor: form %q (file %s) field %q: %w", id, source, cfg.Name, err)
		}
		cfg.Rules = parsed
		form.Fields = append(form.Fields, cfg)
	}

	if len(raw.Defaults) > 0 {
		form.Defaults = make(map[string]string, len(raw.Defaults))
		for name, value := range raw.Defaults {
			if !seen[name] {
				return Form{}, fmt.Errorf("descriptor: form %q (file %s) has a default for unknown field %q", id, source, name)
			}
			form.Defaults[name] = value
		}
	}
	return form, nil
}

func isDescriptorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
