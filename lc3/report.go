package lc3

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Report is a stateless aggregate over a completed result set.
type Report struct {
	Title    string
	Total    int
	Passed   int
	Failed   int
	Duration time.Duration
	Avg      time.Duration
	// Throughput is cases per second of wall-clock time. Only the
	// parallel suite sets it: with workers running concurrently it is
	// a separate measurement, not the inverse of Avg.
	Throughput float64
	Failures   []Result
	// MaxShown caps the failure table; 0 means show all.
	MaxShown int
}

// buildReport computes the aggregate from a full result set. Failures
// of id-keyed cases are sorted ascending so the report is deterministic
// regardless of completion order; name-keyed results are assumed to be
// in registration order already and are kept as given.
func buildReport(title string, results []Result, wall time.Duration, sortByID bool) Report {
	r := Report{Title: title, Total: len(results), Duration: wall}
	for _, res := range results {
		if res.Passed {
			r.Passed++
		} else {
			r.Failed++
			r.Failures = append(r.Failures, res)
		}
	}
	if sortByID {
		sort.Slice(r.Failures, func(i, j int) bool { return r.Failures[i].ID < r.Failures[j].ID })
	}
	if r.Total > 0 {
		r.Avg = wall / time.Duration(r.Total)
	}
	return r
}

// PassRate returns the percentage of passed cases.
func (r Report) PassRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Passed) / float64(r.Total) * 100
}

// AllPassed reports whether no case failed.
func (r Report) AllPassed() bool { return r.Failed == 0 }

// Print writes the human-readable report: summary lines followed by a
// fixed-width failure table when anything failed.
func (r Report) Print(w io.Writer) {
	line := "============================================================"
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Test Report: %s\n", r.Title)
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Duration:     %.4f seconds\n", r.Duration.Seconds())
	if r.Total > 0 {
		fmt.Fprintf(w, "Avg Time:     %.2f ms/case\n", float64(r.Avg.Microseconds())/1000)
	}
	if r.Throughput > 0 {
		fmt.Fprintf(w, "Throughput:   %.1f cases/sec\n", r.Throughput)
	}
	fmt.Fprintf(w, "Total:        %d\n", r.Total)
	fmt.Fprintf(w, "Passed:       %d\n", r.Passed)

	if r.Failed == 0 {
		fmt.Fprintln(w, "\nAll Tests Passed!")
		fmt.Fprintln(w, line)
		return
	}

	fmt.Fprintf(w, "Failed:       %d\n", r.Failed)
	fmt.Fprintf(w, "Pass Rate:    %.2f%%\n", r.PassRate())
	fmt.Fprintln(w, "\nFailure Details:")

	shown := r.Failures
	if r.MaxShown > 0 && len(shown) > r.MaxShown {
		shown = shown[:r.MaxShown]
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Case", "Reason"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	for _, f := range shown {
		table.Append([]string{f.Identity(), f.Reason()})
	}
	table.Render()
	if hidden := len(r.Failures) - len(shown); hidden > 0 {
		fmt.Fprintf(w, "... (%d more failures not shown)\n", hidden)
	}
	fmt.Fprintln(w, line)
}
