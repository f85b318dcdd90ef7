package tracker

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/entry"
	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/field"
)

func TestWeekDates(t *testing.T) {
	got := WeekDates(time.Date(2024, 1, 7, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04",
		"2024-01-05", "2024-01-06", "2024-01-07",
	}, got)
}

func TestWeekDates_CrossesMonthAndYear(t *testing.T) {
	got := WeekDates(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{
		"2024-02-25", "2024-02-26", "2024-02-27", "2024-02-28",
		"2024-02-29", "2024-03-01", "2024-03-02",
	}, got)

	got = WeekDates(time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "2023-12-28", got[0])
	assert.Equal(t, "2024-01-03", got[6])
}

func TestWeeklyOverview(t *testing.T) {
	today := time.Date(2024, 1, 7, 10, 0, 0, 0, time.UTC)
	sleep := field.Field{ID: "sleep", Name: "Sleep", Type: field.TypeNumber}
	fields := []field.Field{stepsField, medField, sleep, moodField}

	store := entry.Store{
		"2024-01-07": {"steps": field.NumberValue(5000), "sleep": field.NullNumber()},
		"2024-01-05": {"steps": field.NumberValue(math.NaN()), "sleep": field.NumberValue(7.5)},
		"2024-01-03": {"steps": field.TextValue("9000")},
		"2023-12-31": {"steps": field.NumberValue(99999)},
	}

	records := WeeklyOverview(today, fields, store)
	require.Len(t, records, WeekLength)

	for _, rec := range records {
		assert.Equal(t, []string{"Steps", "Sleep"}, rec.Series)
		assert.Len(t, rec.Values, 2, "only number fields are projected")
	}

	assert.Equal(t, "2024-01-01", records[0].Date)
	assert.Equal(t, 0.0, records[0].Value("Steps"), "missing date is zero")

	assert.Equal(t, 0.0, records[2].Value("Steps"), "mismatched tag is zero")
	assert.Equal(t, 0.0, records[4].Value("Steps"), "NaN is zero")
	assert.Equal(t, 7.5, records[4].Value("Sleep"))

	assert.Equal(t, "2024-01-07", records[6].Date)
	assert.Equal(t, 5000.0, records[6].Value("Steps"))
	assert.Equal(t, 0.0, records[6].Value("Sleep"), "null is zero")
}

func TestWeeklyOverview_NoNumericFields(t *testing.T) {
	records := WeeklyOverview(anchor, []field.Field{medField, notesField}, entry.Store{})
	require.Len(t, records, WeekLength)
	for _, rec := range records {
		assert.Empty(t, rec.Values)
	}
}

func TestWeekRecord_MarshalJSON(t *testing.T) {
	fields := []field.Field{
		stepsField,
		{ID: "d", Name: "date", Type: field.TypeNumber},
	}
	store := entry.Store{"2024-01-07": {"steps": field.NumberValue(5000), "d": field.NumberValue(3)}}

	records := WeeklyOverview(anchor, fields, store)
	data, err := json.Marshal(records[6])
	require.NoError(t, err)
	assert.Equal(t, `{"date":"2024-01-07","Steps":5000}`, string(data))

	data, err = json.Marshal(records[0])
	require.NoError(t, err)
	assert.Equal(t, `{"date":"2024-01-01","Steps":0}`, string(data))
}

func TestNumericSeries_DuplicateNames(t *testing.T) {
	a := field.Field{ID: "a", Name: "Steps", Type: field.TypeNumber}
	b := field.Field{ID: "b", Name: "Steps", Type: field.TypeNumber}
	assert.Equal(t, []string{"Steps"}, NumericSeries([]field.Field{a, b}))

	store := entry.Store{"2024-01-07": {"a": field.NumberValue(1), "b": field.NumberValue(2)}}
	records := WeeklyOverview(anchor, []field.Field{a, b}, store)
	assert.Equal(t, 2.0, records[6].Value("Steps"), "later field wins")
}
