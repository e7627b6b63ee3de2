package form

import (
	"os"
	"path/filepath"
	"testing"
)

func writeYAML(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFormDef(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "login.yaml", `
id: auth/login
title: Sign In
fields:
  - name: email
    label: Email
    type: email
    required: true
  - name: password
    label: Password
    type: password
    required: true
`)

	fd, err := LoadFormDef(path)
	if err != nil {
		t.Fatal(err)
	}
	if fd.ID != "auth/login" || len(fd.Fields) != 2 {
		t.Fatalf("parsed form = %+v", fd)
	}
	if fd.Fields[0].Type != "email" || !fd.Fields[0].Required {
		t.Errorf("first field = %+v", fd.Fields[0])
	}
}

func TestLoadFormDefRejectsBadDefinitions(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing id", "fields:\n  - name: a\n    label: A\n    type: text\n"},
		{"no fields", "id: x/y\n"},
		{"duplicate field", `
id: x/y
fields:
  - name: a
    label: A
    type: text
  - name: a
    label: Again
    type: text
`},
		{"unknown type", `
id: x/y
fields:
  - name: a
    label: A
    type: telepathy
`},
		{"match references unknown field", `
id: x/y
fields:
  - name: a
    label: A
    type: password
    match: ghost
`},
	}

	dir := t.TempDir()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeYAML(t, dir, "bad.yaml", tc.body)
			if _, err := LoadFormDef(path); err == nil {
				t.Fatal("expected a load error")
			}
		})
	}
}

func TestRegisterFormsWalk(t *testing.T) {
	root := t.TempDir()
	formsDir := filepath.Join(root, "components", "demo", "forms")
	if err := os.MkdirAll(formsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeYAML(t, formsDir, "contact.yaml", `
id: demo/contact
fields:
  - name: message
    label: Message
    type: text
    required: true
`)

	if err := RegisterForms(root); err != nil {
		t.Fatal(err)
	}
	if _, ok := GetFormDef("demo/contact"); !ok {
		t.Fatal("walked form not registered")
	}
}
