// Package tracker implements the habit tracker's editing and projection use
// cases on top of the session state container.
package tracker

import (
	"errors"

	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/entry"
	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/field"
)

// ErrFieldNotFound is returned when an update names a field that is not defined
var ErrFieldNotFound = errors.New("field not found")

// FieldList is the part of the session state the field editor mutates
type FieldList interface {
	Fields() []field.Field
	SetFields([]field.Field)
}

// EntryBook is the part of the session state the daily editor works on
type EntryBook interface {
	Fields() []field.Field
	Entries() entry.Store
	SetEntries(entry.Store)
}
