package fields_test

import (
	"math"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dietdesk/pkg/fields"
)

func TestIsMeta(t *testing.T) {
	for _, name := range []fields.Name{"id", "name", "averageRating"} {
		assert.True(t, fields.IsMeta(name), name)
	}
	assert.False(t, fields.IsMeta("kcal"))
	assert.False(t, fields.IsMeta("Name"))

	meta := fields.MetaFields()
	meta[0] = "mutated"
	assert.True(t, fields.IsMeta("id"), "MetaFields must return a copy")
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
		ok    bool
	}{
		{"float", 12.5, 12.5, true},
		{"uint64 from yaml", uint64(2000), 2000, true},
		{"negative int64", int64(-3), -3, true},
		{"int", 7, 7, true},
		{"string number", "12", 0, false},
		{"placeholder", "-", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"NaN", math.NaN(), 0, false},
		{"Inf", math.Inf(1), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fields.Number(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrigin(t *testing.T) {
	o, ok := fields.ParseOrigin("existing")
	assert.True(t, ok)
	assert.Equal(t, fields.OriginExisting, o)
	assert.True(t, o.IsCandidate())

	o, ok = fields.ParseOrigin("manual")
	assert.True(t, ok)
	assert.False(t, o.IsCandidate())

	_, ok = fields.ParseOrigin("bogus")
	assert.False(t, ok)
}

func TestSourceEligibleKeepsOrder(t *testing.T) {
	src := fields.NewSource(
		fields.Entry{Name: "id", Value: 9},
		fields.Entry{Name: "protein", Value: 100},
		fields.Entry{Name: "name", Value: "Plan A"},
		fields.Entry{Name: "kcal", Value: 2000.0},
		fields.Entry{Name: "averageRating", Value: 4.2},
		fields.Entry{Name: "note", Value: "-"},
		fields.Entry{Name: "iron", Value: 14},
	)

	assert.Equal(t, 7, src.Len())
	assert.Equal(t, []fields.Name{"protein", "kcal", "iron"}, src.Eligible())

	_, ok := src.Number("averageRating")
	assert.False(t, ok, "meta fields are never numeric candidates")

	assert.Equal(t, "100", src.Display("protein"))
	assert.Equal(t, "-", src.Display("note"))
	assert.Equal(t, "-", src.Display("missing"))
}

func TestSourceDuplicateKeepsFirstPosition(t *testing.T) {
	src := fields.NewSource(
		fields.Entry{Name: "kcal", Value: 1},
		fields.Entry{Name: "fat", Value: 2},
		fields.Entry{Name: "kcal", Value: 3},
	)
	assert.Equal(t, []fields.Name{"kcal", "fat"}, src.Names())
	v, _ := src.Number("kcal")
	assert.Equal(t, 3.0, v)
}

func TestNilSource(t *testing.T) {
	var src *fields.Source
	assert.Equal(t, 0, src.Len())
	assert.Nil(t, src.Eligible())
	assert.Nil(t, src.Names())
	_, ok := src.Get("kcal")
	assert.False(t, ok)
	assert.Equal(t, "-", src.Display("kcal"))
	assert.Empty(t, src.MapSlice())
}

func TestSourceYAMLOrder(t *testing.T) {
	data := []byte("zinc: 11\nkcal: 2000\naverageRating: 4.2\nname: Standard\nprotein: 100.5\n")

	var src fields.Source
	require.NoError(t, yaml.Unmarshal(data, &src))
	assert.Equal(t, []fields.Name{"zinc", "kcal", "protein"}, src.Eligible())

	v, ok := src.Number("protein")
	require.True(t, ok)
	assert.Equal(t, 100.5, v)

	out, err := yaml.Marshal(&src)
	require.NoError(t, err)

	var again fields.Source
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.Equal(t, src.Names(), again.Names())
}

func TestSourceJSONOrder(t *testing.T) {
	var src fields.Source
	require.NoError(t, src.UnmarshalJSON([]byte(`{"protein": 90, "id": 3, "kcal": 1800}`)))
	assert.Equal(t, []fields.Name{"protein", "kcal"}, src.Eligible())
}

func TestFromMapSliceRejectsNonStringKeys(t *testing.T) {
	_, err := fields.FromMapSlice(yaml.MapSlice{{Key: 1, Value: 2}})
	require.Error(t, err)
}
