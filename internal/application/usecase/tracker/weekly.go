package tracker

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/entry"
	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/field"
)

// WeekLength is the number of days covered by the weekly overview
const WeekLength = 7

// DateKey is the record key holding the date axis value
const DateKey = "date"

// WeekRecord is one point of the weekly chart: a date plus one value per
// numeric field, keyed by field name
type WeekRecord struct {
	Date   string
	Series []string // field names in field order
	Values map[string]float64
}

// Value returns the value of the named series
func (r WeekRecord) Value(name string) float64 {
	return r.Values[name]
}

// MarshalJSON writes {"date": ..., "<series>": n, ...} with series in field
// order. A series named "date" is not written since it would shadow the axis.
func (r WeekRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	key, _ := json.Marshal(DateKey)
	val, err := json.Marshal(r.Date)
	if err != nil {
		return nil, err
	}
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(val)

	for _, name := range r.Series {
		if name == DateKey {
			continue
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.Values[name])
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WeekDates returns the WeekLength date keys ending with today's date,
// oldest first
func WeekDates(today time.Time) []string {
	day := today.UTC()
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	dates := make([]string, 0, WeekLength)
	for i := WeekLength - 1; i >= 0; i-- {
		dates = append(dates, entry.DateKey(day.AddDate(0, 0, -i)))
	}
	return dates
}

// NumericSeries returns the names of the number fields, in field order and
// without duplicates
func NumericSeries(fields []field.Field) []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range fields {
		if f.Type != field.TypeNumber || seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		names = append(names, f.Name)
	}
	return names
}

// WeeklyOverview projects the entry store onto the week ending today.
// Every number field gets a value for every date: the stored number, or 0
// when the date has no entry, the field has no value, the value is null or
// the stored tag is not number. Other field types are left out.
func WeeklyOverview(today time.Time, fields []field.Field, store entry.Store) []WeekRecord {
	series := NumericSeries(fields)

	records := make([]WeekRecord, 0, WeekLength)
	for _, date := range WeekDates(today) {
		rec := WeekRecord{
			Date:   date,
			Series: series,
			Values: make(map[string]float64, len(series)),
		}
		for _, f := range fields {
			if f.Type != field.TypeNumber {
				continue
			}
			n := 0.0
			if v, ok := store.Lookup(date, f.ID); ok {
				if stored, ok := v.Float(); ok {
					n = stored
				}
			}
			rec.Values[f.Name] = n
		}
		records = append(records, rec)
	}
	return records
}
