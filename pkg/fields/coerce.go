package fields

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agentstation/dietdesk/pkg/errors"
)

// Format renders a number the way the working record stores it:
// shortest decimal form, no exponent, no trailing zeros.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Coerce converts operator text to a nullable number.
// Blank text (after trimming) is nil, meaning "no value" and distinct from zero.
// Anything else must parse as a finite decimal float or ErrInvalidNumeric is
// returned. Hex literals and digit separators are not accepted.
func Coerce(raw string) (*float64, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, nil
	}
	if strings.ContainsAny(text, "xX_") {
		return nil, errors.ErrInvalidNumeric
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, errors.ErrInvalidNumeric
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, errors.ErrInvalidNumeric
	}
	return &v, nil
}

// CoerceField is Coerce with the failure attributed to a field.
func CoerceField(name Name, raw string) (*float64, error) {
	v, err := Coerce(raw)
	if err != nil {
		return nil, errors.NewNumericFieldError(string(name), raw, err)
	}
	return v, nil
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Text renders a decoded scalar as working text: nil is blank, numbers use
// Format and strings pass through. Other values are rendered with %v so that
// Coerce rejects them.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	}
	if f, ok := Number(v); ok {
		return Format(f)
	}
	return fmt.Sprint(v)
}
