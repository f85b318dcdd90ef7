package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/habittrack/internal/application/usecase/tracker"
	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/field"
)

var (
	// ErrInvalidInput is returned when a value cannot be used for its field
	ErrInvalidInput = errors.New("invalid input")
)

// newEntryCmd creates the entry command group
func newEntryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Show or record today's values",
		Example: `  # Show today's entry
  habittrack entry show

  # Record a value (field id or name)
  habittrack entry set Steps 5000
  habittrack entry set Meditated yes

  # Clear a value
  habittrack entry set Steps ""`,
	}

	cmd.AddCommand(newEntryShowCmd())
	cmd.AddCommand(newEntrySetCmd())

	return cmd
}

// newEntryShowCmd creates the entry show command
func newEntryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show today's entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				editor := tracker.NewDailyEditor(s.state, nowFunc())
				showEntry(editor, cmd.OutOrStdout())
				return nil
			})
		},
	}
}

func showEntry(editor *tracker.DailyEditor, out io.Writer) {
	fmt.Fprintln(out, titleStyle.Render("Entry for "+editor.Date()))

	rows := editor.Rows()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No fields yet. Add one with: habittrack field add --name NAME")
		return
	}

	t := newTable("Field", "Type", "Value")
	for _, row := range rows {
		t.Row(row.Field.Name, row.Field.Type.Label(), displayValue(row.Field, row.Value))
	}
	fmt.Fprintln(out, t.Render())
}

// newEntrySetCmd creates the entry set command
func newEntrySetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Record a value for today",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				editor := tracker.NewDailyEditor(s.state, nowFunc())
				return setEntry(editor, s.state.Fields(), args[0], args[1], cmd.OutOrStdout())
			})
		},
	}
}

func setEntry(editor *tracker.DailyEditor, fields []field.Field, ref, input string, out io.Writer) error {
	f, ok := resolveField(fields, ref)
	if !ok {
		return fmt.Errorf("%w: %s", tracker.ErrFieldNotFound, ref)
	}

	normalized, err := normalizeInput(f, input)
	if err != nil {
		return err
	}

	v, err := editor.Update(f.ID, normalized)
	if err != nil {
		return err
	}
	if f.Type == field.TypeNumber && normalized != "" {
		if _, ok := v.Float(); !ok {
			GetLogger().Warn("%q is not a number; %s will read as empty", input, f.Name)
		}
	}

	shown := displayValue(f, &v)
	if shown == "" {
		shown = "(empty)"
	}
	fmt.Fprintf(out, "%s = %s on %s\n", f.Name, shown, editor.Date())
	return nil
}

// resolveField finds a field by id, then by name
func resolveField(fields []field.Field, ref string) (field.Field, bool) {
	for _, f := range fields {
		if f.ID == ref {
			return f, true
		}
	}
	for _, f := range fields {
		if f.Name == ref {
			return f, true
		}
	}
	for _, f := range fields {
		if strings.EqualFold(f.Name, ref) {
			return f, true
		}
	}
	return field.Field{}, false
}

// normalizeInput maps command line spellings onto the editor's input
// format. Booleans accept yes/no and choices must name a declared option.
func normalizeInput(f field.Field, input string) (string, error) {
	switch f.Type {
	case field.TypeBoolean:
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "":
			return "", nil
		case "yes", "y", "true":
			return "true", nil
		case "no", "n", "false":
			return "false", nil
		default:
			return "", fmt.Errorf("%w: %s expects yes or no, got %q", ErrInvalidInput, f.Name, input)
		}
	case field.TypeChoice:
		if input == "" || f.HasOption(input) {
			return input, nil
		}
		return "", fmt.Errorf("%w: %s expects one of [%s], got %q",
			ErrInvalidInput, f.Name, strings.Join(f.Options, ", "), input)
	case field.TypeNumber:
		return strings.TrimSpace(input), nil
	default:
		return input, nil
	}
}
