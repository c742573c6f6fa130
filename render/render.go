// Package render writes a dashboard report as terminal tables, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/patricioibar/points-dashboard/comparison"
	"github.com/patricioibar/points-dashboard/dashboard/common"
	"github.com/patricioibar/points-dashboard/pivot"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"

	notApplicable = "N/A"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
)

// Write renders report in the given format.
func Write(w io.Writer, format string, report common.Report) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		return Text(w, report)
	case FormatJSON:
		return JSON(w, report)
	case FormatYAML, "yml":
		return YAML(w, report)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func JSON(w io.Writer, report common.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func YAML(w io.Writer, report common.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding report as yaml: %w", err)
	}
	return enc.Close()
}

// Text writes the report as a sequence of titled tables.
func Text(w io.Writer, report common.Report) error {
	sections := []struct {
		title string
		body  string
	}{
		{"Comparison", ComparisonTable(report.Comparison)},
		{"Tiers", TierTable(report)},
		{"Points by month and season", PivotTable(report.Pivots.Points)},
		{"Average order value by month and season", PivotTable(report.Pivots.AverageOrderValue)},
		{"New clients by month and season", PivotTable(report.Pivots.NewClients)},
		{"Top professionals", PerformanceTable(report)},
	}

	if _, err := fmt.Fprintf(w, "%s\n", titleStyle.Render("Report "+report.RunID)); err != nil {
		return err
	}
	for _, s := range sections {
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", titleStyle.Render(s.title), s.body); err != nil {
			return err
		}
	}
	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func ComparisonTable(c comparison.Table) string {
	t := newTable("", "Selected", "Segment", "Company", "% of segment")
	for _, row := range c.Rows {
		t.Row(row.Label, Number(row.Selected), Number(row.SegmentWide), Number(row.Company), Percent(row.PercentOfSegment))
	}
	return t.String()
}

func TierTable(report common.Report) string {
	t := newTable("Tier", "Selected", "Points", "Segment", "Points", "Company", "Points")
	for _, row := range report.Tiers {
		t.Row(
			row.Label,
			fmt.Sprint(row.Selected.Professionals), formatFloat(row.Selected.Points),
			fmt.Sprint(row.SegmentWide.Professionals), formatFloat(row.SegmentWide.Points),
			fmt.Sprint(row.Company.Professionals), formatFloat(row.Company.Points),
		)
	}
	return t.String()
}

func PivotTable(p pivot.Table) string {
	headers := append([]string{"Month"}, p.Columns...)
	headers = append(headers, pivot.TotalLabel)
	t := newTable(headers...)
	for _, row := range p.Rows {
		t.Row(pivotCells(row)...)
	}
	t.Row(pivotCells(p.Totals)...)
	return t.String()
}

func pivotCells(row pivot.Row) []string {
	cells := make([]string, 0, len(row.Values)+2)
	cells = append(cells, row.Label)
	for _, v := range row.Values {
		cells = append(cells, formatFloat(v))
	}
	return append(cells, formatFloat(row.Total))
}

func PerformanceTable(report common.Report) string {
	t := newTable("Professional", "Points", "Tier")
	for _, p := range report.Performance {
		t.Row(p.ID, formatFloat(p.Points), p.Tier.String())
	}
	return t.String()
}

// Number renders v with two decimals, or N/A when it does not apply.
func Number(v *float64) string {
	if v == nil {
		return notApplicable
	}
	return formatFloat(*v)
}

func Percent(v *float64) string {
	if v == nil {
		return notApplicable
	}
	return fmt.Sprintf("%.1f%%", *v)
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
