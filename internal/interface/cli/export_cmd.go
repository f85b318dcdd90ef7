package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/entry"
	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/field"
)

// exportDocument holds both storage channels under their storage keys
type exportDocument struct {
	Fields  []field.Field `json:"trackerFields" yaml:"trackerFields"`
	Entries entry.Store   `json:"trackerEntries" yaml:"trackerEntries"`
}

// newExportCmd creates the export command
func newExportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump all fields and entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				doc := exportDocument{Fields: s.state.Fields(), Entries: s.state.Entries()}
				return writeExport(doc, format, cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json|yaml")
	return cmd
}

func writeExport(doc exportDocument, format string, out io.Writer) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(doc, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case "yaml":
		data, err = yaml.Marshal(doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}
	_, err = out.Write(data)
	return err
}
