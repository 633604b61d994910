package lc3

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequenceSuiteOrder(t *testing.T) {
	var calls []string
	record := func(name string, ok bool, err error) func() (bool, error) {
		return func() (bool, error) {
			calls = append(calls, name)
			return ok, err
		}
	}

	var out bytes.Buffer
	suite := NewSequenceSuite("Boundary Tests").
		Add("first fails", record("first fails", false, nil)).
		Add("second errors", record("second errors", false, errors.New("bad"))).
		Add("third passes", record("third passes", true, nil))
	suite.Out = &out
	require.Equal(t, 3, suite.Len())
	suite.RunAll()

	require.Equal(t, []string{"first fails", "second errors", "third passes"}, calls,
		"execution strictly follows registration order, failures do not stop the run")

	results := suite.Results()
	require.Len(t, results, 3)
	require.Equal(t, "first fails", results[0].Name)
	require.Equal(t, "second errors", results[1].Name)
	require.Equal(t, "third passes", results[2].Name)
	require.False(t, results[0].Passed)
	require.False(t, results[1].Passed)
	require.True(t, results[2].Passed)

	report := suite.Report()
	require.Equal(t, 1, report.Passed)
	require.Equal(t, 2, report.Failed)
	require.Equal(t, "first fails", report.Failures[0].Name, "report keeps registration order")
	require.Equal(t, "Assertion Failed", report.Failures[0].Reason())
	require.Equal(t, "UnhandledError: bad", report.Failures[1].Reason())
}

func TestSequenceSuiteRunTable(t *testing.T) {
	var out bytes.Buffer
	suite := NewSequenceSuite("Demo").
		Add("passes", func() (bool, error) { return true, nil }).
		Add("fails", func() (bool, error) { return false, nil }).
		Add("errors", func() (bool, error) { return false, errors.New("x") })
	suite.Out = &out
	suite.RunAll()

	text := out.String()
	require.Contains(t, text, "PASS")
	require.Contains(t, text, "FAIL")
	require.Contains(t, text, "ERROR")
	require.Contains(t, text, "Demo")
}

func TestSequenceSuitePanicIsolation(t *testing.T) {
	var out bytes.Buffer
	suite := NewSequenceSuite("Panics").
		Add("panics", func() (bool, error) { panic("nope") }).
		Add("still runs", func() (bool, error) { return true, nil })
	suite.Out = &out
	suite.RunAll()

	results := suite.Results()
	require.Len(t, results, 2)
	require.False(t, results[0].Passed)
	require.Contains(t, results[0].Reason(), "UnhandledError: panic")
	require.True(t, results[1].Passed)
}

func TestSequenceSuiteEmpty(t *testing.T) {
	var out bytes.Buffer
	suite := NewSequenceSuite("Empty")
	suite.Out = &out
	suite.RunAll()
	report := suite.Report()
	require.Equal(t, 0, report.Total)
	require.True(t, report.AllPassed())
}
