// Package fields defines nutrient field names, read-only candidate sources and
// the numeric coercion rule shared by nutrition profiles and blood results.
package fields

import (
	"math"
	"slices"
)

// Name identifies one nutrient or parameter slot, e.g. "kcal" or "iron".
type Name string

// String returns the field name.
func (n Name) String() string {
	return string(n)
}

// metaFields are keys a source may carry that never take part in copy or commit.
var metaFields = [...]Name{"id", "name", "averageRating"}

// MetaFields returns the denylisted meta-field names.
func MetaFields() []Name {
	return slices.Clone(metaFields[:])
}

// IsMeta reports whether a field name is on the meta-field denylist.
func IsMeta(name Name) bool {
	return slices.Contains(metaFields[:], name)
}

// Origin names where a working value came from.
type Origin string

const (
	// OriginExisting is a previously saved profile.
	OriginExisting Origin = "existing"
	// OriginAlgorithmic is the computed recommendation.
	OriginAlgorithmic Origin = "algorithmic"
	// OriginManual is operator input.
	OriginManual Origin = "manual"
)

// String returns the origin name.
func (o Origin) String() string {
	return string(o)
}

// IsCandidate reports whether the origin names one of the two candidate sources.
func (o Origin) IsCandidate() bool {
	return o == OriginExisting || o == OriginAlgorithmic
}

// ParseOrigin parses a candidate source selector.
func ParseOrigin(s string) (Origin, bool) {
	switch o := Origin(s); o {
	case OriginExisting, OriginAlgorithmic, OriginManual:
		return o, true
	}
	return "", false
}

// Number converts a decoded value to a float64 when it is numeric.
// Strings (including the "-" placeholder), NaN and infinities are not numeric.
func Number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
