package tracker

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/YoshitsuguKoike/habittrack/internal/app"
	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/field"
)

// Draft is the pending definition of a field that has not been submitted yet
type Draft struct {
	Name    string
	Type    field.Type
	Options []string
}

func emptyDraft() Draft {
	return Draft{Name: "", Type: field.TypeNumber, Options: []string{}}
}

// FieldEditor builds new field definitions and appends them to the field list
type FieldEditor struct {
	fields FieldList
	draft  Draft
	now    func() time.Time
}

// NewFieldEditor creates an editor with an empty number draft
func NewFieldEditor(fields FieldList) *FieldEditor {
	return &FieldEditor{
		fields: fields,
		draft:  emptyDraft(),
		now:    time.Now,
	}
}

// Draft returns a copy of the current draft
func (e *FieldEditor) Draft() Draft {
	d := e.draft
	d.Options = append([]string{}, e.draft.Options...)
	return d
}

// SetName sets the draft name
func (e *FieldEditor) SetName(name string) {
	e.draft.Name = name
}

// ChangeType switches the draft type. Leaving choice discards the options
// collected so far.
func (e *FieldEditor) ChangeType(t field.Type) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: %q", field.ErrUnknownType, t)
	}
	if t != field.TypeChoice {
		e.draft.Options = []string{}
	}
	e.draft.Type = t
	return nil
}

// AddOption appends an option to a choice draft. Empty text and non-choice
// drafts are ignored. Duplicates are kept.
func (e *FieldEditor) AddOption(text string) bool {
	if e.draft.Type != field.TypeChoice || text == "" {
		return false
	}
	e.draft.Options = append(e.draft.Options, text)
	return true
}

// RemoveOption removes the option at index
func (e *FieldEditor) RemoveOption(index int) bool {
	if index < 0 || index >= len(e.draft.Options) {
		return false
	}
	opts := make([]string, 0, len(e.draft.Options)-1)
	opts = append(opts, e.draft.Options[:index]...)
	opts = append(opts, e.draft.Options[index+1:]...)
	e.draft.Options = opts
	return true
}

// Submit turns the draft into a field and appends it to the field list.
// A draft whose name is empty after normalization is left untouched and
// reported with ok == false.
func (e *FieldEditor) Submit() (f field.Field, ok bool, err error) {
	name := normalizeName(e.draft.Name)
	if name == "" {
		return field.Field{}, false, nil
	}

	f, err = field.NewAt(e.now(), name, e.draft.Type, e.draft.Options)
	if err != nil {
		return field.Field{}, false, err
	}

	current := e.fields.Fields()
	next := make([]field.Field, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, f)
	e.fields.SetFields(next)

	app.GetLogger().Info("Added field %q (%s) with id %s", f.Name, f.Type, f.ID)
	e.draft = emptyDraft()
	return f, true, nil
}

// normalizeName folds compatibility characters (full-width letters and
// digits) and trims surrounding whitespace
func normalizeName(name string) string {
	return strings.TrimSpace(norm.NFKC.String(name))
}
