// Package handoff covers what happens after an escalation fires: who can be
// contacted, the outbound message, and notifying downstream workflows.
package handoff

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Contact is a person an employee can reach out to after a hand-off.
type Contact struct {
	Name  string `yaml:"name" json:"name"`
	Email string `yaml:"email" json:"email"`
	Role  string `yaml:"role" json:"role"`
}

// FirstName returns the first word of the contact's name, skipping titles
// such as "Dr.".
func (c Contact) FirstName() string {
	fields := strings.Fields(c.Name)
	for _, f := range fields {
		if !strings.HasSuffix(f, ".") {
			return f
		}
	}
	if len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// Label is the name shown in selection lists, e.g. "Priya Sharma (HR)".
func (c Contact) Label() string {
	if c.Role == "" {
		return c.Name
	}
	return c.Name + " (" + c.Role + ")"
}

// Directory is an ordered list of contacts.
type Directory []Contact

// DefaultDirectory is used when no contacts file is configured.
func DefaultDirectory() Directory {
	return Directory{
		{Name: "Priya Sharma", Email: "priya.hr@example.com", Role: "HR"},
		{Name: "Rahul Mehta", Email: "rahul.hr@example.com", Role: "HR"},
		{Name: "Dr. Ananya Jain", Email: "ananya.counsellor@example.com", Role: "Counsellor"},
		{Name: "Dr. Kabir Das", Email: "kabir.counsellor@example.com", Role: "Counsellor"},
	}
}

type directoryFile struct {
	Contacts Directory `yaml:"contacts"`
}

// LoadDirectory reads a YAML contacts file:
//
//	contacts:
//	  - name: Priya Sharma
//	    email: priya.hr@example.com
//	    role: HR
func LoadDirectory(path string) (Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading contacts file: %w", err)
	}

	var f directoryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing contacts file: %w", err)
	}
	if len(f.Contacts) == 0 {
		return nil, fmt.Errorf("contacts file %s lists no contacts", path)
	}
	for i, c := range f.Contacts {
		if c.Name == "" || c.Email == "" {
			return nil, fmt.Errorf("contact %d: name and email are required", i)
		}
	}
	return f.Contacts, nil
}

// Find looks a contact up by name or by label.
func (d Directory) Find(name string) (Contact, bool) {
	for _, c := range d {
		if c.Name == name || c.Label() == name {
			return c, true
		}
	}
	return Contact{}, false
}
