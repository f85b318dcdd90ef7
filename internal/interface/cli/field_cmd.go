package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/YoshitsuguKoike/habittrack/internal/application/usecase/tracker"
	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/field"
)

var (
	// ErrEmptyName is returned when field add is given no usable name
	ErrEmptyName = errors.New("field name is empty")
	// ErrUnknownFormat is returned for an unsupported --format value
	ErrUnknownFormat = errors.New("unknown output format")
)

type fieldAddOptions struct {
	name          string
	typ           string
	options       []string
	removeOptions []int
}

// newFieldCmd creates the field command group
func newFieldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Manage tracked fields",
		Long: `Manage the custom fields recorded every day.

Fields are append-only: once added they keep their name and type.`,
		Example: `  # Track a daily step count
  habittrack field add --name Steps

  # Track a mood with fixed answers
  habittrack field add --name Mood --type choice --option Good --option Okay --option Bad

  # Show all fields
  habittrack field list --format yaml`,
	}

	cmd.AddCommand(newFieldAddCmd())
	cmd.AddCommand(newFieldListCmd())

	return cmd
}

// newFieldAddCmd creates the field add command
func newFieldAddCmd() *cobra.Command {
	opts := &fieldAddOptions{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				return addField(s, opts, cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Field name")
	cmd.Flags().StringVarP(&opts.typ, "type", "t", string(field.TypeNumber), "Field type: "+typeNames())
	cmd.Flags().StringArrayVarP(&opts.options, "option", "o", nil, "Choice option (repeatable)")
	cmd.Flags().IntSliceVar(&opts.removeOptions, "remove-option", nil, "Drop the option at this 0-based index before saving")
	return cmd
}

func typeNames() string {
	names := make([]string, 0, len(field.Types))
	for _, t := range field.Types {
		names = append(names, t.String())
	}
	return strings.Join(names, "|")
}

// addField drives the field editor the way the form does: name, type,
// options, then submit
func addField(s *session, opts *fieldAddOptions, out io.Writer) error {
	editor := tracker.NewFieldEditor(s.state)
	editor.SetName(opts.name)

	typ, err := field.ParseType(strings.ToLower(strings.TrimSpace(opts.typ)))
	if err != nil {
		return err
	}
	if err := editor.ChangeType(typ); err != nil {
		return err
	}

	if typ != field.TypeChoice && len(opts.options) > 0 {
		GetLogger().Warn("Ignoring --option for %s field", typ)
	}
	for _, o := range opts.options {
		editor.AddOption(o)
	}

	// highest index first so earlier indexes stay valid
	remove := append([]int(nil), opts.removeOptions...)
	sort.Sort(sort.Reverse(sort.IntSlice(remove)))
	last := -1
	for _, idx := range remove {
		if idx == last {
			continue
		}
		last = idx
		if !editor.RemoveOption(idx) {
			return fmt.Errorf("no option at index %d", idx)
		}
	}

	f, ok, err := editor.Submit()
	if err != nil {
		return err
	}
	if !ok {
		return ErrEmptyName
	}

	fmt.Fprintf(out, "Added %s field %q (%s)\n", f.Type.Label(), f.Name, f.ID)
	if f.Type == field.TypeNumber && f.Name == tracker.DateKey {
		GetLogger().Warn("Field %q will be missing from week --json output", f.Name)
	}
	if f.Type == field.TypeChoice {
		fmt.Fprintf(out, "  Options: %s\n", strings.Join(f.Options, ", "))
	}
	return nil
}

// newFieldListCmd creates the field list command
func newFieldListCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				return listFields(s.state.Fields(), format, cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table|json|yaml")
	return cmd
}

func listFields(fields []field.Field, format string, out io.Writer) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal fields: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		data, err := yaml.Marshal(fields)
		if err != nil {
			return fmt.Errorf("failed to marshal fields: %w", err)
		}
		fmt.Fprint(out, string(data))
	case "table":
		if len(fields) == 0 {
			fmt.Fprintln(out, "No fields yet. Add one with: habittrack field add --name NAME")
			return nil
		}
		t := newTable("ID", "Name", "Type", "Options")
		for _, f := range fields {
			t.Row(f.ID, f.Name, f.Type.Label(), strings.Join(f.Options, ", "))
		}
		fmt.Fprintln(out, t.Render())
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}
