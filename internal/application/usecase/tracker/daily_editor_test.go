package tracker

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/habittrack/internal/app/state"
	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/entry"
	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/field"
)

var (
	stepsField = field.Field{ID: "steps", Name: "Steps", Type: field.TypeNumber}
	medField   = field.Field{ID: "med", Name: "Meditated", Type: field.TypeBoolean}
	notesField = field.Field{ID: "notes", Name: "Notes", Type: field.TypeText}
	moodField  = field.Field{ID: "mood", Name: "Mood", Type: field.TypeChoice, Options: []string{"Yes", "No", "Maybe"}}
	wokeField  = field.Field{ID: "woke", Name: "Woke up", Type: field.TypeDatetime}
)

func allFields() []field.Field {
	return []field.Field{stepsField, medField, notesField, moodField, wokeField}
}

var anchor = time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name  string
		field field.Field
		input string
		want  field.Value
	}{
		{name: "number", field: stepsField, input: "5000", want: field.NumberValue(5000)},
		{name: "fraction", field: stepsField, input: "7.5", want: field.NumberValue(7.5)},
		{name: "empty number", field: stepsField, input: "", want: field.NullNumber()},
		{name: "true", field: medField, input: "true", want: field.BooleanValue(true)},
		{name: "false", field: medField, input: "false", want: field.BooleanValue(false)},
		{name: "other boolean text", field: medField, input: "yes", want: field.BooleanValue(false)},
		{name: "empty boolean", field: medField, input: "", want: field.NullBoolean()},
		{name: "text", field: notesField, input: "walked", want: field.TextValue("walked")},
		{name: "empty text", field: notesField, input: "", want: field.TextValue("")},
		{name: "choice", field: moodField, input: "Maybe", want: field.ChoiceValue("Maybe")},
		{name: "datetime", field: wokeField, input: "2024-01-07T06:45", want: field.DatetimeValue("2024-01-07T06:45")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInput(tt.field, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInput_NotANumber(t *testing.T) {
	got, err := ParseInput(stepsField, "abc")
	require.NoError(t, err)
	assert.Equal(t, field.TypeNumber, got.Type)
	require.NotNil(t, got.Number)
	assert.True(t, math.IsNaN(*got.Number))

	_, ok := got.Float()
	assert.False(t, ok)
}

func TestParseInput_NumericPrefixIsNotANumber(t *testing.T) {
	for _, input := range []string{"12abc", "3.5kg", " 12"} {
		got, err := ParseInput(stepsField, input)
		require.NoError(t, err)
		require.NotNil(t, got.Number, input)
		assert.True(t, math.IsNaN(*got.Number), input)
	}
}

func TestParseInput_UnknownType(t *testing.T) {
	_, err := ParseInput(field.Field{ID: "x", Type: "color"}, "red")
	assert.ErrorIs(t, err, field.ErrUnknownType)
}

func TestDailyEditor_Update(t *testing.T) {
	c := state.NewContainer(allFields(), entry.Store{
		"2024-01-06": {"steps": field.NumberValue(100)},
	})
	e := NewDailyEditor(c, anchor)
	assert.Equal(t, "2024-01-07", e.Date())

	var changes []state.ChangeKind
	c.Subscribe(func(ch state.Change) { changes = append(changes, ch.Kind) })

	v, err := e.Update("steps", "5000")
	require.NoError(t, err)
	assert.Equal(t, field.NumberValue(5000), v)

	_, err = e.Update("mood", "Maybe")
	require.NoError(t, err)

	store := c.Entries()
	got, ok := store.Lookup("2024-01-07", "steps")
	require.True(t, ok)
	assert.Equal(t, field.NumberValue(5000), got)
	got, ok = store.Lookup("2024-01-07", "mood")
	require.True(t, ok)
	assert.Equal(t, field.ChoiceValue("Maybe"), got)

	got, ok = store.Lookup("2024-01-06", "steps")
	require.True(t, ok, "other dates are preserved")
	assert.Equal(t, field.NumberValue(100), got)

	assert.Equal(t, []state.ChangeKind{state.EntriesChanged, state.EntriesChanged}, changes)
}

func TestDailyEditor_UpdateUnknownField(t *testing.T) {
	c := state.NewContainer(allFields(), nil)
	e := NewDailyEditor(c, anchor)

	_, err := e.Update("missing", "1")
	assert.ErrorIs(t, err, ErrFieldNotFound)
	assert.Empty(t, c.Entries())
}

func TestDailyEditor_AnchorDateIsFixed(t *testing.T) {
	c := state.NewContainer(allFields(), nil)
	e := NewDailyEditor(c, time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC))

	// the editor stays on its original date however long it lives
	_, err := e.Update("steps", "1")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	_, ok := c.Entries().Lookup("2024-01-07", "steps")
	assert.True(t, ok)
}

func TestDailyEditor_Rows(t *testing.T) {
	c := state.NewContainer(allFields(), entry.Store{
		"2024-01-07": {
			"steps": field.NumberValue(5000),
			"med":   field.NullBoolean(),
			"notes": field.NumberValue(3), // stored with the wrong tag
			"mood":  field.ChoiceValue("Maybe"),
		},
	})
	rows := NewDailyEditor(c, anchor).Rows()
	require.Len(t, rows, 5)

	assert.Equal(t, "Steps", rows[0].Field.Name)
	assert.Equal(t, "5000", rows[0].Display)
	require.NotNil(t, rows[0].Value)

	assert.Equal(t, "", rows[1].Display)
	require.NotNil(t, rows[1].Value)
	assert.True(t, rows[1].Value.IsNull())

	assert.True(t, rows[2].Mismatch)
	assert.Nil(t, rows[2].Value)
	assert.Equal(t, "", rows[2].Display)

	assert.Equal(t, "Maybe", rows[3].Display)

	assert.Nil(t, rows[4].Value)
	assert.False(t, rows[4].Mismatch)
}

func TestDailyEditor_RowsNoFields(t *testing.T) {
	rows := NewDailyEditor(state.NewContainer(nil, nil), anchor).Rows()
	assert.Empty(t, rows)
}
