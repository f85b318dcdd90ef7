package entry

import (
	"time"

	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/field"
)

// DateLayout is the layout of date keys (ISO calendar date)
const DateLayout = "2006-01-02"

// DailyEntry maps field IDs to the values recorded on one calendar date
type DailyEntry map[string]field.Value

// Store maps date keys to the entry recorded that day
type Store map[string]DailyEntry

// DateKey returns the store key for t's calendar date in UTC
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Lookup returns the value stored for fieldID on date, if any
func (s Store) Lookup(date, fieldID string) (field.Value, bool) {
	day, ok := s[date]
	if !ok {
		return field.Value{}, false
	}
	v, ok := day[fieldID]
	return v, ok
}

// With returns a new store equal to s with value recorded under date and
// fieldID. s itself is left untouched so holders of the previous store keep
// a consistent snapshot.
func (s Store) With(date, fieldID string, value field.Value) Store {
	next := make(Store, len(s)+1)
	for k, v := range s {
		next[k] = v
	}

	day := make(DailyEntry, len(s[date])+1)
	for k, v := range s[date] {
		day[k] = v
	}
	day[fieldID] = value
	next[date] = day

	return next
}
