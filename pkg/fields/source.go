package fields

import (
	"github.com/goccy/go-yaml"

	"github.com/agentstation/dietdesk/pkg/constants"
	"github.com/agentstation/dietdesk/pkg/errors"
)

// Entry is one key of a candidate source with its raw decoded value.
type Entry struct {
	Name  Name
	Value any
}

// Source is a read-only, insertion-ordered mapping from field name to value.
// A nil *Source is valid and behaves as an empty source.
type Source struct {
	entries []Entry
	index   map[Name]int
}

// NewSource builds a source from entries. Later duplicates replace earlier
// values but keep the first position.
func NewSource(entries ...Entry) *Source {
	s := &Source{index: make(map[Name]int, len(entries))}
	for _, e := range entries {
		s.add(e.Name, e.Value)
	}
	return s
}

func (s *Source) add(name Name, value any) {
	if i, ok := s.index[name]; ok {
		s.entries[i].Value = value
		return
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, Entry{Name: name, Value: value})
}

// Len returns the number of keys in the source.
func (s *Source) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Names returns every key in insertion order.
func (s *Source) Names() []Name {
	if s == nil {
		return nil
	}
	names := make([]Name, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}

// Get returns the raw value for a key.
func (s *Source) Get(name Name) (any, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.entries[i].Value, true
}

// Number returns the numeric value for an eligible key.
// Meta fields and non-numeric values report false.
func (s *Source) Number(name Name) (float64, bool) {
	if IsMeta(name) {
		return 0, false
	}
	v, ok := s.Get(name)
	if !ok {
		return 0, false
	}
	return Number(v)
}

// Eligible returns the numeric, non-meta keys in insertion order.
func (s *Source) Eligible() []Name {
	if s == nil {
		return nil
	}
	var names []Name
	for _, e := range s.entries {
		if IsMeta(e.Name) {
			continue
		}
		if _, ok := Number(e.Value); ok {
			names = append(names, e.Name)
		}
	}
	return names
}

// Display renders the value for a key, or the missing-value placeholder.
func (s *Source) Display(name Name) string {
	if v, ok := s.Number(name); ok {
		return Format(v)
	}
	return constants.MissingValue
}

// MapSlice returns the source as an ordered YAML map.
func (s *Source) MapSlice() yaml.MapSlice {
	if s == nil {
		return yaml.MapSlice{}
	}
	ms := make(yaml.MapSlice, len(s.entries))
	for i, e := range s.entries {
		ms[i] = yaml.MapItem{Key: string(e.Name), Value: e.Value}
	}
	return ms
}

// FromMapSlice builds a source from an ordered YAML map. Keys must be strings.
func FromMapSlice(ms yaml.MapSlice) (*Source, error) {
	s := NewSource()
	for _, item := range ms {
		key, ok := item.Key.(string)
		if !ok {
			return nil, errors.NewValidationError("key", item.Key, "candidate source keys must be strings")
		}
		s.add(Name(key), item.Value)
	}
	return s, nil
}

// UnmarshalYAML decodes a mapping while keeping its key order.
// JSON objects decode through the same path.
func (s *Source) UnmarshalYAML(data []byte) error {
	var ms yaml.MapSlice
	if err := yaml.Unmarshal(data, &ms); err != nil {
		return err
	}
	decoded, err := FromMapSlice(ms)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

// UnmarshalJSON decodes a JSON object while keeping its key order.
func (s *Source) UnmarshalJSON(data []byte) error {
	return s.UnmarshalYAML(data)
}

// MarshalYAML encodes the source as an ordered mapping.
func (s *Source) MarshalYAML() (any, error) {
	return s.MapSlice(), nil
}
