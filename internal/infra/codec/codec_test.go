package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/entry"
	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/field"
)

func sampleFields() []field.Field {
	return []field.Field{
		{ID: "1", Name: "Steps", Type: field.TypeNumber},
		{ID: "2", Name: "Meditated", Type: field.TypeBoolean},
		{ID: "3", Name: "Notes", Type: field.TypeText},
		{ID: "4", Name: "Mood", Type: field.TypeChoice, Options: []string{"Yes", "No", "Maybe"}},
		{ID: "5", Name: "Woke up", Type: field.TypeDatetime},
		{ID: "6", Name: "Empty choice", Type: field.TypeChoice, Options: []string{}},
	}
}

func sampleStore() entry.Store {
	return entry.Store{
		"2024-01-06": {
			"1": field.NumberValue(5000),
			"2": field.NullBoolean(),
		},
		"2024-01-07": {
			"1": field.NullNumber(),
			"2": field.BooleanValue(true),
			"3": field.TextValue(""),
			"4": field.ChoiceValue("Maybe"),
			"5": field.DatetimeValue("2024-01-07T06:45"),
		},
	}
}

func TestFields_RoundTrip(t *testing.T) {
	for _, fields := range [][]field.Field{sampleFields(), {}} {
		raw, err := EncodeFields(fields)
		require.NoError(t, err)
		assert.Equal(t, fields, DecodeFields(raw))
	}
}

func TestEncodeFields_Nil(t *testing.T) {
	raw, err := EncodeFields(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestEntries_RoundTrip(t *testing.T) {
	for _, store := range []entry.Store{sampleStore(), {}} {
		raw, err := EncodeEntries(store)
		require.NoError(t, err)
		assert.Equal(t, store, DecodeEntries(raw))
	}
}

func TestEncodeEntries_Nil(t *testing.T) {
	raw, err := EncodeEntries(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", raw)
}

func TestChoiceValue_SurvivesReload(t *testing.T) {
	fields := []field.Field{{ID: "4", Name: "Mood", Type: field.TypeChoice, Options: []string{"Yes", "No", "Maybe"}}}
	store := entry.Store{}.With("2024-01-07", "4", field.ChoiceValue("Maybe"))

	rawFields, err := EncodeFields(fields)
	require.NoError(t, err)
	rawEntries, err := EncodeEntries(store)
	require.NoError(t, err)

	reloadedFields := DecodeFields(rawFields)
	reloaded := DecodeEntries(rawEntries)

	v, ok := reloaded.Lookup("2024-01-07", "4")
	require.True(t, ok)
	shown, err := v.Display(reloadedFields[0])
	require.NoError(t, err)
	assert.Equal(t, "Maybe", shown)
}

func TestDecode_Garbage(t *testing.T) {
	inputs := []string{
		"",
		"not json",
		"{",
		"42",
		`"a string"`,
		"null",
		"true",
		`[1, 2, 3]`,
		`[[{"id":"1"}]]`,
		`{"id":"1","name":"x","type":"number"}`,
		`{"2024-01-07": [1,2]}`,
		`{"2024-01-07": "text"}`,
		`{"2024-01-07": {"1": {"type": {"nested": true}, "value": 1}}}`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assert.NotPanics(t, func() {
				fields := DecodeFields(in)
				store := DecodeEntries(in)
				assert.NotNil(t, fields)
				assert.NotNil(t, store)
			})
		})
	}

	assert.Empty(t, DecodeFields("{}"))
	assert.Empty(t, DecodeFields(`{"2024-01-07": {}}`))
	assert.Empty(t, DecodeEntries(`[{"type":"number","value":1}]`))
	assert.Empty(t, DecodeEntries("42"))
}

func TestDecodeFields_FiltersAndPreservesOrder(t *testing.T) {
	raw := `[
		{"id":"1","name":"Steps","type":"number"},
		{"id":2,"name":"Bad id","type":"number"},
		{"id":"3","name":"Mood","type":"choice","options":["Yes","No"]},
		{"id":"4","name":"Broken choice","type":"choice","options":"Yes"},
		"garbage",
		null,
		{"id":"5","name":"Notes","type":"text"},
		{"id":"6","name":"Unknown","type":"color"}
	]`

	got := DecodeFields(raw)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"1", "3", "5"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, []string{"Yes", "No"}, got[1].Options)
}

func TestDecodeEntries_DropsInvalidValues(t *testing.T) {
	raw := `{
		"2024-01-06": {
			"1": {"type":"number","value":"5000"},
			"2": {"type":"boolean","value":"yes"}
		},
		"2024-01-07": {
			"1": {"type":"number","value":5000},
			"2": {"type":"boolean","value":1},
			"3": {"type":"text"},
			"4": {"type":"choice","value":"Maybe"},
			"5": "raw"
		},
		"2024-01-08": "not an entry"
	}`

	got := DecodeEntries(raw)
	assert.Equal(t, entry.Store{
		"2024-01-07": {
			"1": field.NumberValue(5000),
			"4": field.ChoiceValue("Maybe"),
		},
	}, got)
	_, ok := got["2024-01-06"]
	assert.False(t, ok, "date with only invalid values must be omitted")
}

func TestDecodeEntries_OutOfRangeNumberStaysLocal(t *testing.T) {
	raw := `{
		"2024-01-06": {"1": {"type":"number","value":5000}},
		"2024-01-07": {
			"1": {"type":"number","value":1e400},
			"2": {"type":"boolean","value":true}
		}
	}`

	got := DecodeEntries(raw)
	require.Len(t, got, 2)

	v, ok := got.Lookup("2024-01-06", "1")
	require.True(t, ok)
	assert.Equal(t, field.NumberValue(5000), v)

	v, ok = got.Lookup("2024-01-07", "2")
	require.True(t, ok)
	assert.Equal(t, field.BooleanValue(true), v)

	huge, ok := got.Lookup("2024-01-07", "1")
	require.True(t, ok)
	_, finite := huge.Float()
	assert.False(t, finite, "overflowing literal reads as an empty number")

	reencoded, err := EncodeEntries(got)
	require.NoError(t, err)
	assert.Contains(t, reencoded, `{"type":"number","value":null}`)
}

func TestDecodeFields_OutOfRangeNumberInIgnoredKey(t *testing.T) {
	raw := `[
		{"id":"1","name":"Steps","type":"number","extra":1e400},
		{"id":"2","name":"Mood","type":"choice","options":["Yes"]}
	]`

	got := DecodeFields(raw)
	require.Len(t, got, 2)
	assert.Equal(t, "Steps", got[0].Name)
	assert.Equal(t, "Mood", got[1].Name)
}

func TestDecode_TrailingData(t *testing.T) {
	assert.Empty(t, DecodeFields(`[{"id":"1","name":"Steps","type":"number"}] trailing`))
	assert.Empty(t, DecodeEntries(`{"2024-01-07":{"1":{"type":"text","value":"x"}}} {}`))
}
