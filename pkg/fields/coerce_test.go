package fields_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/dietdesk/pkg/errors"
	"github.com/agentstation/dietdesk/pkg/fields"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "2000", fields.Format(2000))
	assert.Equal(t, "12.5", fields.Format(12.5))
	assert.Equal(t, "0.1", fields.Format(0.1))
	assert.Equal(t, "-3", fields.Format(-3))
	assert.Equal(t, "1234567", fields.Format(1234567))
}

func TestCoerce(t *testing.T) {
	t.Run("blank is nil not zero", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "\t"} {
			v, err := fields.Coerce(raw)
			require.NoError(t, err)
			assert.Nil(t, v)
		}
	})

	t.Run("numbers", func(t *testing.T) {
		tests := map[string]float64{
			"12.5":  12.5,
			" 42 ":  42,
			"0":     0,
			"-1.25": -1.25,
			"1e3":   1000,
			"12.":   12,
			".5":    0.5,
		}
		for raw, want := range tests {
			v, err := fields.Coerce(raw)
			require.NoError(t, err, raw)
			require.NotNil(t, v, raw)
			assert.Equal(t, want, *v, raw)
		}
	})

	t.Run("rejects non numbers", func(t *testing.T) {
		for _, raw := range []string{"abc", "12abc", "1,5", "NaN", "Inf", "-", "0x1p4", "0x10p0", "0X1P4", "1_000"} {
			v, err := fields.Coerce(raw)
			assert.Nil(t, v, raw)
			assert.ErrorIs(t, err, pkgerrors.ErrInvalidNumeric, raw)
		}
	})
}

func TestCoerceField(t *testing.T) {
	_, err := fields.CoerceField("iron", "abc")
	require.Error(t, err)

	var fieldErr *pkgerrors.NumericFieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "iron", fieldErr.Field)
	assert.Equal(t, "abc", fieldErr.Value)

	v, err := fields.CoerceField("iron", "14")
	require.NoError(t, err)
	assert.Equal(t, fields.Float(14), v)
}

func TestText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"12.", "12."},
		{35.5, "35.5"},
		{uint64(90), "90"},
		{true, "true"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fields.Text(tt.in))
	}
}
