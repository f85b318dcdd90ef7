package entry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/field"
)

func TestDateKey(t *testing.T) {
	ts := time.Date(2024, 1, 7, 23, 30, 0, 0, time.FixedZone("JST", 9*60*60))
	assert.Equal(t, "2024-01-07", DateKey(ts))

	late := time.Date(2024, 1, 7, 23, 30, 0, 0, time.FixedZone("PST", -8*60*60))
	assert.Equal(t, "2024-01-08", DateKey(late))
}

func TestStore_With(t *testing.T) {
	original := Store{
		"2024-01-06": {"steps": field.NumberValue(100)},
	}

	next := original.With("2024-01-07", "steps", field.NumberValue(5000))
	next = next.With("2024-01-07", "mood", field.ChoiceValue("Yes"))

	assert.Len(t, original, 1, "original store must not change")
	_, ok := original.Lookup("2024-01-07", "steps")
	assert.False(t, ok)

	v, ok := next.Lookup("2024-01-07", "steps")
	require.True(t, ok)
	assert.Equal(t, field.NumberValue(5000), v)

	v, ok = next.Lookup("2024-01-07", "mood")
	require.True(t, ok)
	assert.Equal(t, field.ChoiceValue("Yes"), v)

	v, ok = next.Lookup("2024-01-06", "steps")
	require.True(t, ok)
	assert.Equal(t, field.NumberValue(100), v)
}

func TestStore_WithDoesNotShareDay(t *testing.T) {
	original := Store{"2024-01-07": {"steps": field.NumberValue(1)}}
	next := original.With("2024-01-07", "steps", field.NumberValue(2))

	v, _ := original.Lookup("2024-01-07", "steps")
	assert.Equal(t, field.NumberValue(1), v)
	v, _ = next.Lookup("2024-01-07", "steps")
	assert.Equal(t, field.NumberValue(2), v)
}
