// Package authority decides which candidate source is preferred for each
// nutrient field when a working record is filled in bulk.
package authority

import (
	"path/filepath"
	"sort"

	"github.com/agentstation/dietdesk/pkg/fields"
)

// Authority determines which source is authoritative for each field
type Authority interface {
	// Find returns the authorities matching a field, highest priority first
	Find(field fields.Name) []Field

	// List returns all configured authorities
	List() []Field
}

// Field defines source priority for a field pattern
type Field struct {
	Path     string        `json:"path" yaml:"path"`         // e.g., "kcal", "vitamin*"
	Source   fields.Origin `json:"source" yaml:"source"`     // existing or algorithmic
	Priority int           `json:"priority" yaml:"priority"` // higher = more authoritative
}

// authorities is the list-backed Authority.
type authorities struct {
	fields []Field
}

// New creates an Authority from explicit field rules.
func New(rules ...Field) Authority {
	return &authorities{fields: append([]Field(nil), rules...)}
}

// Default returns the standard rules: energy and macronutrients follow the
// dietician's saved profile, everything else follows the recommendation.
func Default() Authority {
	return New(defaultFields()...)
}

// Find returns every matching rule ordered by priority, then pattern specificity.
func (a *authorities) Find(field fields.Name) []Field {
	var matched []Field
	for _, auth := range a.fields {
		if MatchesPattern(string(field), auth.Path) {
			matched = append(matched, auth)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Priority != matched[j].Priority {
			return matched[i].Priority > matched[j].Priority
		}
		return len(matched[i].Path) > len(matched[j].Path)
	})
	return matched
}

// List returns all configured authorities
func (a *authorities) List() []Field {
	return append([]Field(nil), a.fields...)
}

// ByField returns the highest priority authority for a given field
func ByField(field fields.Name, auth Authority) *Field {
	found := auth.Find(field)
	if len(found) == 0 {
		return nil
	}
	return &found[0]
}

// MatchesPattern checks if a field matches a pattern (supports * wildcards)
func MatchesPattern(field, pattern string) bool {
	if field == pattern {
		return true
	}

	if len(pattern) > 0 && pattern[len(pattern)-1] == '*' {
		prefix := pattern[:len(pattern)-1]
		return len(field) >= len(prefix) && field[:len(prefix)] == prefix
	}

	matched, err := filepath.Match(pattern, field)
	if err != nil {
		return false
	}
	return matched
}

// FilterBySource returns only the authorities for a specific source
func FilterBySource(list []Field, source fields.Origin) []Field {
	var filtered []Field
	for _, auth := range list {
		if auth.Source == source {
			filtered = append(filtered, auth)
		}
	}
	return filtered
}

// defaultFields returns the default field authorities
func defaultFields() []Field {
	return []Field{
		// Energy and macros - the saved profile was tuned by hand
		{Path: "kcal", Source: fields.OriginExisting, Priority: 100},
		{Path: "protein", Source: fields.OriginExisting, Priority: 100},
		{Path: "fat", Source: fields.OriginExisting, Priority: 100},
		{Path: "carbohydrates", Source: fields.OriginExisting, Priority: 100},
		{Path: "kcal", Source: fields.OriginAlgorithmic, Priority: 90},
		{Path: "protein", Source: fields.OriginAlgorithmic, Priority: 90},
		{Path: "fat", Source: fields.OriginAlgorithmic, Priority: 90},
		{Path: "carbohydrates", Source: fields.OriginAlgorithmic, Priority: 90},

		// Micronutrients - the recommendation tracks current guidelines
		{Path: "*", Source: fields.OriginAlgorithmic, Priority: 50},
		{Path: "*", Source: fields.OriginExisting, Priority: 40},
	}
}
