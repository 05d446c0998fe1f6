package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aryankumar/chunkflow/internal/executor"
	"github.com/olekukonko/tablewriter"
)

// TableFormatter formats output as a borderless, tab-separated table
type TableFormatter struct {
	options *Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(opts *Options) *TableFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &TableFormatter{
		options: opts,
	}
}

// Format outputs a single data item as a table
func (f *TableFormatter) Format(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case Table:
		f.render(w, v.Headers, v.Rows)
		return nil
	case map[string]interface{}:
		return f.formatMap(w, v)
	default:
		fmt.Fprintln(w, v)
		return nil
	}
}

// FormatReports outputs one row per report, followed by a summary.
// In wide mode each report is followed by its per-task results.
func (f *TableFormatter) FormatReports(w io.Writer, reports []Report) error {
	if len(reports) == 0 {
		fmt.Fprintln(w, "No results")
		return nil
	}

	colors := NewColorScheme(w, f.options.NoColor)

	headers := []string{"RUN", "KERNEL", "PARTITIONER", "WORKERS", "SIZE", "DISPATCHES", "CHUNKS", "VISITED", "RESULT", "DURATION"}
	rows := make([][]string, 0, len(reports))
	var all []executor.Result

	for _, r := range reports {
		rows = append(rows, []string{
			strconv.Itoa(r.Run),
			colors.Kernel("%s", r.Kernel),
			r.Partitioner,
			strconv.Itoa(r.Workers),
			strconv.Itoa(r.Size),
			strconv.Itoa(r.Dispatches),
			strconv.Itoa(r.Chunks),
			strconv.Itoa(r.Visited),
			r.Result,
			colors.Duration("%s", r.Duration),
		})
		all = append(all, r.Results...)
	}
	f.renderColored(w, headers, rows, colors)

	if f.options.Wide {
		for _, r := range reports {
			fmt.Fprintf(w, "\nRun %d tasks:\n", r.Run)
			f.renderColored(w, []string{"TASK", "WORKER", "STATUS", "DURATION"}, f.taskRows(r.Results, colors), colors)
		}
	}

	f.printSummary(w, all, colors)
	return nil
}

// taskRows formats executor results as table rows
func (f *TableFormatter) taskRows(results []executor.Result, colors *ColorScheme) [][]string {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		status := "Success"
		if res.Error != nil {
			status = "Failed: " + res.Error.Error()
			if len(status) > 60 {
				status = status[:57] + "..."
			}
		}

		worker := strconv.Itoa(res.Worker)
		if res.Worker < 0 {
			worker = "-"
		}

		rows = append(rows, []string{
			res.Task,
			worker,
			colors.StatusColor(res.Error != nil)("%s", status),
			colors.Duration("%s", res.Duration),
		})
	}
	return rows
}

// formatMap formats a map as a two-column table, keys sorted
func (f *TableFormatter) formatMap(w io.Writer, data map[string]interface{}) error {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, fmt.Sprintf("%v", data[k])})
	}

	f.render(w, []string{"KEY", "VALUE"}, rows)
	return nil
}

func (f *TableFormatter) renderColored(w io.Writer, headers []string, rows [][]string, colors *ColorScheme) {
	if !colors.Disabled {
		colored := make([]string, len(headers))
		for i, h := range headers {
			colored[i] = colors.Header("%s", h)
		}
		headers = colored
	}
	f.render(w, headers, rows)
}

func (f *TableFormatter) render(w io.Writer, headers []string, rows [][]string) {
	table := f.createTable(w)
	if !f.options.NoHeaders {
		table.SetHeader(headers)
	}
	table.AppendBulk(rows)
	table.Render()
}

// createTable creates a borderless, tab-padded table
func (f *TableFormatter) createTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	return table
}

// printSummary prints a summary of all task results
func (f *TableFormatter) printSummary(w io.Writer, results []executor.Result, colors *ColorScheme) {
	summary := executor.Summarize(results)

	parts := []string{
		colors.Success("%d tasks succeeded", summary.Successful),
	}

	failed := fmt.Sprintf("%d failed", summary.Failed)
	if summary.Failed > 0 {
		failed = colors.Error("%s", failed)
	}
	parts = append(parts, failed)

	if summary.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d not executed", summary.Skipped))
	}

	parts = append(parts, colors.Duration("avg=%s", summary.AvgDuration.Round(1000)))

	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Summary: %s\n", strings.Join(parts, ", "))
}
