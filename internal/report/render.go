package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"ursbench/internal/aggregate"
	"ursbench/internal/corpus"
	"ursbench/internal/folds"
	"ursbench/internal/stats"
)

// RenderDocumentMetrics serializes document metrics records. Pure; the
// caller owns all I/O.
func RenderDocumentMetrics(records []DocumentMetrics, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return renderJSON(records)
	case FormatCSV:
		return renderCSV(documentMetricsHeader(), documentMetricsRows(records))
	case FormatTable:
		return renderTable(documentMetricsHeader(), documentMetricsRows(records)), nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

// RenderFolds serializes a fold assignment.
func RenderFolds(assignment *folds.Assignment, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return renderJSON(assignment)
	case FormatCSV:
		return renderCSV(foldsHeader(), foldsRows(assignment))
	case FormatTable:
		return renderTable(foldsHeader(), foldsRows(assignment)), nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

// RenderAggregate serializes an aggregate statistics report.
func RenderAggregate(report *aggregate.Report, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return renderJSON(report)
	case FormatCSV:
		return renderCSV(aggregateHeader(), aggregateRows(report))
	case FormatTable:
		out := renderTable(aggregateHeader(), aggregateRows(report))
		if extra := renderTests(report); extra != "" {
			out += "\n" + extra
		}
		if !report.Reproducible {
			out += "\nNote: bootstrap intervals computed without a fixed seed; not reproducible across runs.\n"
		}
		return out, nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

func renderJSON(value any) (string, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(data) + "\n", nil
}

func renderCSV(header []string, rows [][]string) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return builder.String(), nil
}

func renderTable(header []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(header...).
		Rows(rows...)
	return t.Render() + "\n"
}

func documentMetricsHeader() []string {
	return []string{
		"id", "category", "functional", "regulatory", "performance",
		"integration", "technical", "total", "complexity",
	}
}

func documentMetricsRows(records []DocumentMetrics) [][]string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			string(record.Category),
			strconv.Itoa(record.SectionCounts[corpus.SectionFunctional]),
			strconv.Itoa(record.SectionCounts[corpus.SectionRegulatory]),
			strconv.Itoa(record.SectionCounts[corpus.SectionPerformance]),
			strconv.Itoa(record.SectionCounts[corpus.SectionIntegration]),
			strconv.Itoa(record.SectionCounts[corpus.SectionTechnical]),
			strconv.Itoa(record.Total),
			formatFloat(record.Complexity.Composite),
		})
	}
	return rows
}

func foldsHeader() []string {
	return []string{"fold", "train_count", "test_count", "test_ids"}
}

func foldsRows(assignment *folds.Assignment) [][]string {
	rows := make([][]string, 0, len(assignment.Folds))
	for _, fold := range assignment.Folds {
		rows = append(rows, []string{
			strconv.Itoa(fold.Index),
			strconv.Itoa(len(fold.TrainIDs)),
			strconv.Itoa(len(fold.TestIDs)),
			strings.Join(fold.TestIDs, " "),
		})
	}
	return rows
}

func aggregateHeader() []string {
	return []string{"metric", "n", "estimate", "ci_low", "ci_high"}
}

func aggregateRows(report *aggregate.Report) [][]string {
	rows := make([][]string, 0, len(report.Metrics))
	for _, metric := range report.Metrics {
		rows = append(rows, []string{
			metric.Name,
			strconv.Itoa(metric.N),
			formatFloat(metric.Estimate),
			formatFloat(metric.CI.Low),
			formatFloat(metric.CI.High),
		})
	}
	for _, group := range report.Groups {
		for _, metric := range group.Metrics {
			rows = append(rows, []string{
				group.Group + "/" + metric.Name,
				strconv.Itoa(metric.N),
				formatFloat(metric.Estimate),
				formatFloat(metric.CI.Low),
				formatFloat(metric.CI.High),
			})
		}
	}
	return rows
}

// renderTests renders hypothesis test lines attached to a report.
func renderTests(report *aggregate.Report) string {
	var lines []string
	for _, metric := range report.Metrics {
		if metric.Test == nil {
			continue
		}
		lines = append(lines, formatTest(metric.Name, *metric.Test))
	}
	for _, named := range report.GroupTests {
		lines = append(lines, formatTest(named.Metric, named.Test))
	}
	for _, named := range report.PairedTests {
		lines = append(lines, formatTest(named.Metric, named.Test))
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func formatTest(metric string, test stats.TestResult) string {
	verdict := "not significant"
	if test.Significant {
		verdict = "significant"
	}
	return fmt.Sprintf("%s: %s statistic=%.4f p=%.4f (%s at alpha=%.2f)",
		metric, test.Kind, test.Statistic, test.P, verdict, test.Alpha)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
