package models

import (
	"fmt"
	"net/url"
	"strings"
)

// FieldError reports an invalid value for a single field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// ValidImageURL reports whether raw is an absolute http or https URL.
func ValidImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// numbered is implemented by records with integer fields.
type numbered interface {
	numbers() map[string]int
}

// PrepareRecord normalizes rec and checks the invariants that hold for
// every write: a non-empty name, a well-formed image URL and numbers
// within their declared bounds.
func PrepareRecord(rec Record) error {
	base := rec.Base()
	base.Name = strings.TrimSpace(base.Name)
	if base.Name == "" {
		return &FieldError{Field: "name", Message: "Missing required field: name"}
	}

	if base.ImageURL != nil {
		trimmed := strings.TrimSpace(*base.ImageURL)
		if trimmed == "" {
			base.ImageURL = nil
		} else if !ValidImageURL(trimmed) {
			return &FieldError{Field: "imageUrl", Message: "Invalid imageUrl: must be an http or https URL"}
		} else {
			base.ImageURL = &trimmed
		}
	}

	if d, ok := rec.(interface{ applyDefaults() }); ok {
		d.applyDefaults()
	}

	n, ok := rec.(numbered)
	if !ok {
		return nil
	}
	numbers := n.numbers()
	for _, f := range rec.Category().Fields() {
		if f.Kind != KindNumber {
			continue
		}
		v := numbers[f.Key]
		if (f.Min != 0 && v < f.Min) || (f.Max != 0 && v > f.Max) {
			return &FieldError{Field: f.Key, Message: boundsMessage(f)}
		}
	}
	return nil
}

func boundsMessage(f FieldDef) string {
	if f.Max == 0 {
		return fmt.Sprintf("Invalid %s: must be at least %d", f.Key, f.Min)
	}
	return fmt.Sprintf("Invalid %s: must be between %d and %d", f.Key, f.Min, f.Max)
}
