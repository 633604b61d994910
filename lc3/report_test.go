package lc3

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResultReason(t *testing.T) {
	require.Equal(t, "", Result{Passed: true}.Reason())
	require.Equal(t, "Assertion Failed", Result{}.Reason())
	require.Equal(t, "SimulationTimeout: no match for \"halt\" within 1s",
		Result{Err: &SimulationTimeout{Pattern: "halt", Waited: time.Second}}.Reason())

	r := Result{Err: &ResponseParseError{Detail: "missing register R3", Raw: "..."}}
	require.Contains(t, r.Reason(), "ResponseParseError: ")
}

func TestResultIdentity(t *testing.T) {
	require.Equal(t, "Case 12", Result{ID: 12}.Identity())
	require.Equal(t, "Empty input", Result{ID: 3, Name: "Empty input"}.Identity())
}

func TestReportAggregates(t *testing.T) {
	results := []Result{
		{ID: 0, Passed: true},
		{ID: 1, Passed: false},
		{ID: 2, Passed: true},
		{ID: 3, Passed: false, Err: &SimulationTimeout{Pattern: "p", Waited: time.Second}},
	}
	report := buildReport("T", results, 2*time.Second, true)
	require.Equal(t, 4, report.Total)
	require.Equal(t, 2, report.Passed)
	require.Equal(t, 2, report.Failed)
	require.Equal(t, 500*time.Millisecond, report.Avg)
	require.InDelta(t, 50.0, report.PassRate(), 0.001)
	require.False(t, report.AllPassed())
}

func TestReportPrint(t *testing.T) {
	t.Run("all passed", func(t *testing.T) {
		var out bytes.Buffer
		buildReport("Happy", []Result{{Passed: true}}, time.Second, true).Print(&out)
		require.Contains(t, out.String(), "All Tests Passed!")
		require.NotContains(t, out.String(), "Failure Details")
	})
	t.Run("failure table", func(t *testing.T) {
		var out bytes.Buffer
		results := []Result{
			{ID: 5, Passed: false},
			{ID: 1, Passed: false},
			{ID: 2, Passed: true},
		}
		buildReport("Sad", results, time.Second, true).Print(&out)
		text := out.String()
		require.Contains(t, text, "Pass Rate")
		require.Contains(t, text, "Case 1")
		require.Contains(t, text, "Assertion Failed")
	})
	t.Run("capped failures", func(t *testing.T) {
		var results []Result
		for i := 0; i < 15; i++ {
			results = append(results, Result{ID: i})
		}
		report := buildReport("Capped", results, time.Second, true)
		report.MaxShown = 10
		var out bytes.Buffer
		report.Print(&out)
		require.Contains(t, out.String(), "(5 more failures not shown)")
	})
	t.Run("throughput shown for parallel runs", func(t *testing.T) {
		report := buildReport("P", []Result{{Passed: true}}, time.Second, true)
		report.Throughput = 42.5
		var out bytes.Buffer
		report.Print(&out)
		require.Contains(t, out.String(), "Throughput:   42.5 cases/sec")
	})
}
