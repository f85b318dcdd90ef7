package tracker

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/YoshitsuguKoike/habittrack/internal/app"
	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/entry"
	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/field"
)

// Row is one field of the daily entry form
type Row struct {
	Field    field.Field
	Value    *field.Value // nil when nothing usable is stored
	Display  string
	Mismatch bool // stored value has a different type than the field
}

// DailyEditor edits the entry of a single anchor date. The date is fixed
// when the editor is created; an editor kept open across midnight keeps
// writing to the original date.
type DailyEditor struct {
	book EntryBook
	date string
}

// NewDailyEditor binds an editor to the calendar date of now
func NewDailyEditor(book EntryBook, now time.Time) *DailyEditor {
	return &DailyEditor{book: book, date: entry.DateKey(now)}
}

// Date returns the anchor date key
func (e *DailyEditor) Date() string {
	return e.date
}

// Rows returns one row per defined field, in field order
func (e *DailyEditor) Rows() []Row {
	fields := e.book.Fields()
	store := e.book.Entries()

	rows := make([]Row, 0, len(fields))
	for _, f := range fields {
		row := Row{Field: f}
		if v, ok := store.Lookup(e.date, f.ID); ok {
			shown, err := v.Display(f)
			switch {
			case errors.Is(err, field.ErrTypeMismatch):
				app.GetLogger().Warn("Type mismatch for field %s on %s: %v", f.ID, e.date, err)
				row.Mismatch = true
			case err != nil:
				app.GetLogger().Error("Cannot display field %s on %s: %v", f.ID, e.date, err)
			default:
				value := v
				row.Value = &value
				row.Display = shown
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Update parses input for the field and records it in the anchor date's
// entry, replacing the whole entry store
func (e *DailyEditor) Update(fieldID, input string) (field.Value, error) {
	f, ok := e.lookupField(fieldID)
	if !ok {
		return field.Value{}, fmt.Errorf("%w: %s", ErrFieldNotFound, fieldID)
	}

	value, err := ParseInput(f, input)
	if err != nil {
		return field.Value{}, err
	}

	e.book.SetEntries(e.book.Entries().With(e.date, f.ID, value))
	app.GetLogger().Debug("Recorded %s=%q on %s", f.Name, input, e.date)
	return value, nil
}

func (e *DailyEditor) lookupField(fieldID string) (field.Field, bool) {
	for _, f := range e.book.Fields() {
		if f.ID == fieldID {
			return f, true
		}
	}
	return field.Field{}, false
}

// ParseInput converts raw input text into a value of the field's type.
//
//	number:   "" -> null, otherwise a float (NaN when the text is not numeric)
//	boolean:  "" -> null, "true" -> true, anything else -> false
//	others:   the text itself, "" included
//
// The whole number text must parse. Text with a numeric prefix such as
// "12abc", or with surrounding spaces, becomes NaN rather than 12.
func ParseInput(f field.Field, input string) (field.Value, error) {
	switch f.Type {
	case field.TypeNumber:
		if input == "" {
			return field.NullNumber(), nil
		}
		n, err := strconv.ParseFloat(input, 64)
		if err != nil {
			n = math.NaN()
		}
		return field.NumberValue(n), nil
	case field.TypeBoolean:
		if input == "" {
			return field.NullBoolean(), nil
		}
		return field.BooleanValue(input == "true"), nil
	case field.TypeText:
		return field.TextValue(input), nil
	case field.TypeChoice:
		return field.ChoiceValue(input), nil
	case field.TypeDatetime:
		return field.DatetimeValue(input), nil
	default:
		return field.Value{}, fmt.Errorf("%w: %q", field.ErrUnknownType, f.Type)
	}
}
