package records

import (
	"github.com/agentstation/dietdesk/pkg/errors"
	"github.com/agentstation/dietdesk/pkg/fields"
)

// ParseResults builds blood results from operator text using the same rule
// as nutrition profiles: blank is nil, anything else must be a number. All
// offending parameters are reported in one *errors.CommitError.
func ParseResults(raw map[string]string, order []string, units map[string]string) ([]BloodResult, error) {
	var rejected errors.CommitError
	results := make([]BloodResult, 0, len(order))
	for _, parameter := range order {
		text := raw[parameter]
		v, err := fields.Coerce(text)
		if err != nil {
			rejected.Fields = append(rejected.Fields, errors.NewNumericFieldError(parameter, text, err))
			continue
		}
		results = append(results, BloodResult{Parameter: parameter, Value: v, Unit: units[parameter]})
	}
	if len(rejected.Fields) > 0 {
		return nil, &rejected
	}
	return results, nil
}
