package lc3

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/log"
)

type namedCase struct {
	name string
	fn   func() (bool, error)
}

// SequenceSuite runs named cases strictly in registration order. A
// failing or erroring case never stops the ones registered after it.
type SequenceSuite struct {
	Name string
	Out  io.Writer
	Log  log.Logger

	cases   []namedCase
	results []Result
	wall    time.Duration
}

// NewSequenceSuite builds an empty ordered registry.
func NewSequenceSuite(name string) *SequenceSuite {
	return &SequenceSuite{
		Name: name,
		Out:  os.Stdout,
		Log:  log.NewLogger(log.DiscardHandler()),
	}
}

// Add registers a named case. It returns the suite for chaining.
func (s *SequenceSuite) Add(name string, fn func() (bool, error)) *SequenceSuite {
	s.cases = append(s.cases, namedCase{name: name, fn: fn})
	return s
}

// Len returns the number of registered cases.
func (s *SequenceSuite) Len() int { return len(s.cases) }

// RunAll executes all registered cases in order, printing a row per
// case with its outcome and elapsed time.
func (s *SequenceSuite) RunAll() {
	s.Log.Info("starting sequence suite", "name", s.Name, "cases", len(s.cases))
	fmt.Fprintf(s.Out, ">>> Starting %s (%d test cases)...\n\n", s.Name, len(s.cases))
	rule := "----------------------------------------------------------------------"
	fmt.Fprintln(s.Out, rule)
	fmt.Fprintf(s.Out, "%-4s %-45s %-10s %s\n", "#", "Test Name", "Result", "Time")
	fmt.Fprintln(s.Out, rule)

	start := time.Now()
	s.results = s.results[:0]
	for i, c := range s.cases {
		res := runCase(caseAdapter{c.fn}, i)
		res.Name = c.name
		s.results = append(s.results, res)

		status := "PASS"
		if !res.Passed {
			if res.Err != nil {
				status = "ERROR"
			} else {
				status = "FAIL"
			}
		}
		name := c.name
		if len(name) > 45 {
			name = name[:42] + "..."
		}
		fmt.Fprintf(s.Out, "%-4d %-45s %-10s %.2fms\n", i+1, name, status, float64(res.Elapsed.Microseconds())/1000)
	}
	s.wall = time.Since(start)
	fmt.Fprintln(s.Out, rule)
	fmt.Fprintln(s.Out)
}

// caseAdapter lets a zero-argument named case reuse the shared
// panic-isolating runCase wrapper.
type caseAdapter struct {
	fn func() (bool, error)
}

func (a caseAdapter) RunCase(int) (bool, error) { return a.fn() }

// Results returns the results in registration order.
func (s *SequenceSuite) Results() []Result { return s.results }

// Report aggregates the completed run, failures kept in registration
// order and keyed by name.
func (s *SequenceSuite) Report() Report {
	return buildReport(s.Name, s.results, s.wall, false)
}

// PrintReport writes the report to the suite's output.
func (s *SequenceSuite) PrintReport() Report {
	r := s.Report()
	r.Print(s.Out)
	return r
}
