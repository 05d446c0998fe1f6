package output

import (
	"time"

	"github.com/aryankumar/chunkflow/internal/executor"
)

// Report describes one kernel invocation for display
type Report struct {
	Run         int           `json:"run" yaml:"run"`
	Kernel      string        `json:"kernel" yaml:"kernel"`
	Partitioner string        `json:"partitioner" yaml:"partitioner"`
	Workers     int           `json:"workers" yaml:"workers"`
	Size        int           `json:"size" yaml:"size"`
	Dispatches  int           `json:"dispatches" yaml:"dispatches"`
	Tasks       int           `json:"tasks" yaml:"tasks"`
	Chunks      int           `json:"chunks" yaml:"chunks"`
	Visited     int           `json:"visited" yaml:"visited"`
	Result      string        `json:"result" yaml:"result"`
	Duration    time.Duration `json:"duration" yaml:"duration"`

	// Results holds per-task outcomes from the executor
	Results []executor.Result `json:"-" yaml:"-"`
}

// Table is pre-shaped tabular data with fixed column order
type Table struct {
	Headers []string
	Rows    [][]string
}

// taskRecords converts executor results to a serialization-friendly form
func taskRecords(results []executor.Result) []map[string]interface{} {
	out := make([]map[string]interface{}, len(results))
	for i, r := range results {
		item := map[string]interface{}{
			"task":     r.Task,
			"worker":   r.Worker,
			"duration": r.Duration.String(),
		}
		if r.Error != nil {
			item["status"] = "failed"
			item["error"] = r.Error.Error()
		} else {
			item["status"] = "success"
		}
		out[i] = item
	}
	return out
}

// reportRecord converts a report to a serialization-friendly form
func reportRecord(r Report) map[string]interface{} {
	return map[string]interface{}{
		"run":         r.Run,
		"kernel":      r.Kernel,
		"partitioner": r.Partitioner,
		"workers":     r.Workers,
		"size":        r.Size,
		"dispatches":  r.Dispatches,
		"tasks":       r.Tasks,
		"chunks":      r.Chunks,
		"visited":     r.Visited,
		"result":      r.Result,
		"duration":    r.Duration.String(),
		"taskResults": taskRecords(r.Results),
	}
}

// tableRecords converts a Table to a slice of header-keyed records
func tableRecords(t Table) []map[string]string {
	out := make([]map[string]string, len(t.Rows))
	for i, row := range t.Rows {
		item := make(map[string]string, len(t.Headers))
		for j, h := range t.Headers {
			if j < len(row) {
				item[h] = row[j]
			}
		}
		out[i] = item
	}
	return out
}
