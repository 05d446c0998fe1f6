package executor

import (
	"fmt"
	"strings"
	"time"
)

// CountSuccessful returns the number of successful results (no error)
func CountSuccessful(results []Result) int {
	count := 0
	for _, r := range results {
		if r.Error == nil {
			count++
		}
	}
	return count
}

// CountFailed returns the number of failed results (has error)
func CountFailed(results []Result) int {
	return len(results) - CountSuccessful(results)
}

// CountSkipped returns the number of tasks that never reached a worker
func CountSkipped(results []Result) int {
	count := 0
	for _, r := range results {
		if r.Worker < 0 {
			count++
		}
	}
	return count
}

// FilterFailed returns only the failed results
func FilterFailed(results []Result) []Result {
	filtered := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Error != nil {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// GroupByWorker groups executed results by the worker that ran them
func GroupByWorker(results []Result) map[int][]Result {
	grouped := make(map[int][]Result)
	for _, r := range results {
		if r.Worker < 0 {
			continue
		}
		grouped[r.Worker] = append(grouped[r.Worker], r)
	}
	return grouped
}

// AverageDuration calculates the average duration of all results
func AverageDuration(results []Result) time.Duration {
	if len(results) == 0 {
		return 0
	}

	var total time.Duration
	for _, r := range results {
		total += r.Duration
	}

	return total / time.Duration(len(results))
}

// MaxDuration returns the maximum duration among all results
func MaxDuration(results []Result) time.Duration {
	if len(results) == 0 {
		return 0
	}

	max := results[0].Duration
	for _, r := range results {
		if r.Duration > max {
			max = r.Duration
		}
	}
	return max
}

// MinDuration returns the minimum duration among all results
func MinDuration(results []Result) time.Duration {
	if len(results) == 0 {
		return 0
	}

	min := results[0].Duration
	for _, r := range results {
		if r.Duration < min {
			min = r.Duration
		}
	}
	return min
}

// GetErrors extracts all errors from results
func GetErrors(results []Result) []error {
	errs := make([]error, 0)
	for _, r := range results {
		if r.Error != nil {
			errs = append(errs, r.Error)
		}
	}
	return errs
}

// Summary provides a summary of execution results
type Summary struct {
	Total       int           `json:"total" yaml:"total"`
	Successful  int           `json:"successful" yaml:"successful"`
	Failed      int           `json:"failed" yaml:"failed"`
	Skipped     int           `json:"skipped" yaml:"skipped"`
	Workers     int           `json:"workers" yaml:"workers"`
	AvgDuration time.Duration `json:"avgDuration" yaml:"avgDuration"`
	MaxDuration time.Duration `json:"maxDuration" yaml:"maxDuration"`
	MinDuration time.Duration `json:"minDuration" yaml:"minDuration"`
}

// Summarize creates a summary of the results
func Summarize(results []Result) Summary {
	return Summary{
		Total:       len(results),
		Successful:  CountSuccessful(results),
		Failed:      CountFailed(results),
		Skipped:     CountSkipped(results),
		Workers:     len(GroupByWorker(results)),
		AvgDuration: AverageDuration(results),
		MaxDuration: MaxDuration(results),
		MinDuration: MinDuration(results),
	}
}

// String returns a human-readable string representation of the summary
func (s Summary) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Total: %d, ", s.Total))
	sb.WriteString(fmt.Sprintf("Successful: %d, ", s.Successful))
	sb.WriteString(fmt.Sprintf("Failed: %d", s.Failed))

	if s.Skipped > 0 {
		sb.WriteString(fmt.Sprintf(", Skipped: %d", s.Skipped))
	}

	if s.Total > 0 {
		sb.WriteString(fmt.Sprintf(", Workers: %d", s.Workers))
		sb.WriteString(fmt.Sprintf(", Avg: %s", s.AvgDuration.Round(time.Microsecond)))
		sb.WriteString(fmt.Sprintf(", Max: %s", s.MaxDuration.Round(time.Microsecond)))
	}

	return sb.String()
}

// HasErrors returns true if any results contain errors
func HasErrors(results []Result) bool {
	for _, r := range results {
		if r.Error != nil {
			return true
		}
	}
	return false
}
