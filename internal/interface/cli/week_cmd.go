package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/habittrack/internal/application/usecase/tracker"
)

// newWeekCmd creates the week command
func newWeekCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the last seven days of number fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				records := tracker.WeeklyOverview(nowFunc(), s.state.Fields(), s.state.Entries())
				if asJSON {
					return writeWeekJSON(records, cmd.OutOrStdout())
				}
				renderWeek(records, cmd.OutOrStdout())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print chart records as JSON")
	return cmd
}

func writeWeekJSON(records []tracker.WeekRecord, out io.Writer) error {
	if len(records) > 0 {
		for _, name := range records[0].Series {
			if name == tracker.DateKey {
				GetLogger().Warn("Number field %q is left out of JSON records: the name collides with the date key", name)
			}
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal weekly overview: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func renderWeek(records []tracker.WeekRecord, out io.Writer) {
	fmt.Fprintln(out, titleStyle.Render("Weekly Overview"))

	if len(records) == 0 || len(records[0].Series) == 0 {
		fmt.Fprintln(out, "No number fields to chart.")
		return
	}
	series := records[0].Series

	headers := append([]string{"Date"}, series...)
	t := newTable(headers...)
	for _, rec := range records {
		row := []string{rec.Date}
		for _, name := range series {
			row = append(row, formatNumber(rec.Value(name)))
		}
		t.Row(row...)
	}
	fmt.Fprintln(out, t.Render())

	width := 0
	for _, name := range series {
		if w := lipgloss.Width(name); w > width {
			width = w
		}
	}
	label := lipgloss.NewStyle().Width(width + 2)
	for i, name := range series {
		values := make([]float64, 0, len(records))
		for _, rec := range records {
			values = append(values, rec.Value(name))
		}
		line := lipgloss.NewStyle().Foreground(seriesColor(i)).Render(sparkline(values))
		fmt.Fprintln(out, label.Render(name)+line)
	}
}
