// internal/form/definition.go
//
// Forms subsystem: YAML definition loader.
//
// Context
//   Each HTML form in Atrium is declared in a YAML file.  The file
//   defines the form's identifier, title, fields, and per-field
//   validation metadata.  At application start we parse every “*.yaml”
//   under each “components/<comp>/forms/” directory and store the
//   resulting FormDef in an in-memory registry.  The validator and the
//   page templates both fetch definitions from this registry by ID,
//   guaranteeing a single source of truth: the rules the server
//   enforces are the rules the markup hints at.
//
// Workflow
//   •  LoadFormDef parses a single YAML file and validates structure.
//   •  RegisterForms walks a base directory, discovers YAMLs, and adds
//      them to the registry.
//   •  GetFormDef offers safe, read-only access to a parsed form by ID.
//
//------------------------------------------------------------------------------

package form

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------
// Data structures
// -----------------------------------------------------------------------------

// FormDef represents one form definition loaded from YAML.  The form is
// uniquely identified by ID, namespaced by component, e.g. “auth/login”.
type FormDef struct {
	ID     string     `yaml:"id"`     // Component-scoped identifier.
	Title  string     `yaml:"title"`  // Display title, optional.
	Submit string     `yaml:"submit"` // Submit button label, optional.
	Fields []FieldDef `yaml:"fields"` // Ordered input list.
}

// FieldDef describes a single input control.  Validation metadata lives
// inline so the server enforces the same rules the client hints at.
type FieldDef struct {
	Name         string `yaml:"name"`         // Submission key.  Required.
	Label        string `yaml:"label"`        // Human-readable label.  Required.
	Type         string `yaml:"type"`         // text, email, password, checkbox.
	Placeholder  string `yaml:"placeholder"`  // Optional placeholder text.
	Autocomplete string `yaml:"autocomplete"` // Browser autocomplete hint.
	Required     bool   `yaml:"required"`     // True if input is mandatory.
	MinLength    int    `yaml:"minlength"`    // ≥ 0, 0 means unset.
	MaxLength    int    `yaml:"maxlength"`    // ≥ 0, 0 means unset.
	Match        string `yaml:"match"`        // Field whose value must equal this one.
	ErrorMsg     string `yaml:"error"`        // Custom error message, optional.
}

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

// registry maps compositeID (“comp/form”) → *FormDef.  Guarded by mutex.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]*FormDef)
)

// GetFormDef returns a parsed FormDef by composite ID (“component/form”).
// The boolean is false when the ID is unknown.
func GetFormDef(id string) (*FormDef, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fd, ok := registry[id]
	return fd, ok
}

// -----------------------------------------------------------------------------
// Loader API
// -----------------------------------------------------------------------------

// LoadFormDef parses one YAML file, validates its structure, and
// returns a populated FormDef.  It NEVER mutates the global registry.
func LoadFormDef(path string) (*FormDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", path, err)
	}

	var fd FormDef
	if err := yaml.Unmarshal(raw, &fd); err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", path, err)
	}

	if err := validateFormDef(&fd, path); err != nil {
		return nil, err
	}
	return &fd, nil
}

// RegisterForms walks root and loads every “*.yaml” under
// “components/*/forms/”.  Call once at boot.
func RegisterForms(root string) error {
	formsRoot := filepath.Join(root, "components")
	err := filepath.WalkDir(formsRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".yaml") {
			return nil
		}
		if filepath.Base(filepath.Dir(path)) != "forms" {
			return nil
		}

		fd, err := LoadFormDef(path)
		if err != nil {
			return err // fail fast so issues surface loudly.
		}
		register(fd)
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// register inserts or overrides the form in the global registry.
// Caller must ensure the FormDef passed validation.
func register(fd *FormDef) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[fd.ID] = fd
}

// -----------------------------------------------------------------------------
// Validation helpers
// -----------------------------------------------------------------------------

// validateFormDef enforces structural rules that cannot be expressed
// via YAML tags alone.
func validateFormDef(fd *FormDef, path string) error {
	if fd.ID == "" {
		return fmt.Errorf("form definition %s: missing required 'id'", path)
	}
	if len(fd.Fields) == 0 {
		return fmt.Errorf("form definition %s: must have 'fields'", path)
	}

	names := make(map[string]struct{}, len(fd.Fields))
	for i := range fd.Fields {
		f := &fd.Fields[i]
		if err := validateField(f, path); err != nil {
			return err
		}
		if _, dup := names[f.Name]; dup {
			return fmt.Errorf("form %s: duplicate field name '%s'", path, f.Name)
		}
		names[f.Name] = struct{}{}
	}

	// Match targets must reference a declared field.
	for i := range fd.Fields {
		if m := fd.Fields[i].Match; m != "" {
			if _, ok := names[m]; !ok {
				return fmt.Errorf("form %s: field '%s' matches unknown field '%s'",
					path, fd.Fields[i].Name, m)
			}
		}
	}
	return nil
}

// validateField confirms that essential attributes are present and sane.
func validateField(f *FieldDef, path string) error {
	if f.Name == "" {
		return fmt.Errorf("form %s: field missing 'name'", path)
	}
	if f.Label == "" {
		return fmt.Errorf("form %s: field '%s' missing 'label'", path, f.Name)
	}
	switch f.Type {
	case "text", "email", "password", "checkbox":
	case "":
		return fmt.Errorf("form %s: field '%s' missing 'type'", path, f.Name)
	default:
		return fmt.Errorf("form %s: field '%s' has unsupported type %q", path, f.Name, f.Type)
	}

	if f.MinLength < 0 || f.MaxLength < 0 {
		return fmt.Errorf("form %s: field '%s' minlength/maxlength cannot be negative", path, f.Name)
	}
	if f.MaxLength > 0 && f.MinLength > f.MaxLength {
		return fmt.Errorf("form %s: field '%s' minlength greater than maxlength", path, f.Name)
	}
	return nil
}
