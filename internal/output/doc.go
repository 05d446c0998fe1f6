// Package output renders chunkflow results as tables, JSON or YAML.
//
//	formatter := output.NewFormatter(output.FormatTable, output.WithWide(true))
//	formatter.FormatReports(os.Stdout, reports)
//
// Table output is borderless and tab-separated, with colors on TTYs only.
// Wide mode adds per-task rows (task name, worker, status, duration) under
// each report. JSON and YAML always include the per-task results.
package output
