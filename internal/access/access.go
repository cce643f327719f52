// Package access maps authenticated users onto the departments they may
// view. The engine consumes the active department read-only; this directory
// only answers who may select what.
package access

import "strings"

// Directory holds the email to departments table for the session.
type Directory struct {
	mapping map[string][]string
}

// NewDirectory builds a directory from an email -> departments table. Keys
// are normalized to lower case.
func NewDirectory(mapping map[string][]string) *Directory {
	normalized := make(map[string][]string, len(mapping))
	for email, departments := range mapping {
		normalized[normalizeEmail(email)] = departments
	}
	return &Directory{mapping: normalized}
}

// DepartmentsForEmail returns the departments the user may view, in
// configured order. Unknown users get none.
func (d *Directory) DepartmentsForEmail(email string) []string {
	return d.mapping[normalizeEmail(email)]
}

// HasAccess reports whether the user may view any department at all.
func (d *Directory) HasAccess(email string) bool {
	return len(d.DepartmentsForEmail(email)) > 0
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
