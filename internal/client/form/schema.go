// Package form is a declarative form-validation layer: screens describe
// their fields once and a single routine interprets the constraints, so
// validation is testable apart from any rendering.
package form

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Field declares one form field and its constraints. Label feeds the
// generated messages ("Please enter meal name").
type Field struct {
	Name     string
	Label    string
	Required bool
	Min      int
	Max      int
	Email    bool
	// RichText treats the value as HTML; requiredness is judged on the
	// tag-stripped text content.
	RichText bool
}

// Schema is the ordered field list of one create/edit form.
type Schema []Field

// Errors maps field names to their first failing message.
type Errors map[string]string

func (e Errors) Any() bool { return len(e) > 0 }

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, m := range e {
		parts = append(parts, m)
	}
	return strings.Join(parts, "; ")
}

// Validate checks values against the schema. All validation runs
// client-side; a failing form never reaches the network.
func (s Schema) Validate(values map[string]string) Errors {
	errs := Errors{}
	for _, f := range s {
		v := values[f.Name]
		if f.RichText {
			if f.Required && IsEffectivelyEmpty(v) {
				errs[f.Name] = fmt.Sprintf("Please enter %s", strings.ToLower(f.Label))
			}
			continue
		}
		trimmed := strings.TrimSpace(v)
		if f.Required && trimmed == "" {
			errs[f.Name] = fmt.Sprintf("Please enter %s", strings.ToLower(f.Label))
			continue
		}
		if trimmed == "" {
			continue
		}
		// min/max count characters, not bytes
		length := utf8.RuneCountInString(trimmed)
		if f.Min > 0 && length < f.Min {
			errs[f.Name] = fmt.Sprintf("%s must be at least %d characters", f.Label, f.Min)
			continue
		}
		if f.Max > 0 && length > f.Max {
			errs[f.Name] = fmt.Sprintf("%s must be less than %d characters", f.Label, f.Max)
			continue
		}
		if f.Email && !emailPattern.MatchString(trimmed) {
			errs[f.Name] = "This is not a valid email address."
		}
	}
	return errs
}
