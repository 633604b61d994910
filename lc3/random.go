package lc3

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
)

// RandomSuite runs randomized case identities 0..Cases-1 across a
// bounded pool of workers. Each worker owns its full per-case stack
// (image, session, response); the only shared structure is the result
// channel feeding the collector. Completion order is unspecified, the
// final report is sorted by case id.
type RandomSuite struct {
	Cases   int
	Workers int
	// Out receives the progress display and the report. Defaults to
	// stdout.
	Out io.Writer
	Log log.Logger

	runner  CaseRunner
	results []Result
	wall    time.Duration
}

// NewRandomSuite builds a suite around the given hook. workers <= 0
// picks a bound from the CPU count.
func NewRandomSuite(runner CaseRunner, cases, workers int) *RandomSuite {
	if workers <= 0 {
		workers = runtime.NumCPU() + 4
		if workers > 32 {
			workers = 32
		}
	}
	return &RandomSuite{
		Cases:   cases,
		Workers: workers,
		Out:     os.Stdout,
		Log:     log.NewLogger(log.DiscardHandler()),
		runner:  runner,
	}
}

// RunAll dispatches every case to the worker pool and blocks until all
// results are in. Hook errors and panics become failed Results; the
// loop always completes for all Cases.
func (s *RandomSuite) RunAll() {
	s.Log.Info("starting randomized suite", "cases", s.Cases, "workers", s.Workers)
	fmt.Fprintf(s.Out, ">>> Starting LC3 Parallel Random Tests (%d test cases, %d workers)...\n", s.Cases, s.Workers)

	jobs := make(chan int)
	resultCh := make(chan Result)

	var wg sync.WaitGroup
	for w := 0; w < s.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				resultCh <- runCase(s.runner, id)
			}
		}()
	}
	go func() {
		for id := 0; id < s.Cases; id++ {
			jobs <- id
		}
		close(jobs)
		wg.Wait()
		close(resultCh)
	}()

	start := time.Now()
	s.results = s.results[:0]
	for res := range resultCh {
		s.results = append(s.results, res)
		s.printProgress(len(s.results))
		if !res.Passed {
			s.Log.Debug("case failed", "id", res.ID, "reason", res.Reason())
		}
	}
	s.wall = time.Since(start)
	fmt.Fprintln(s.Out)
}

func (s *RandomSuite) printProgress(done int) {
	const barLen = 40
	percent := float64(done) * 100 / float64(s.Cases)
	filled := int(percent / 100 * barLen)
	if filled > 0 {
		filled--
	}
	bar := strings.Repeat("=", filled) + ">"
	bar += strings.Repeat(" ", barLen-len(bar))
	fmt.Fprintf(s.Out, "\rProgress: [%s] %.1f%% (%d/%d)", bar, percent, done, s.Cases)
}

// Results returns the collected results, one per case.
func (s *RandomSuite) Results() []Result { return s.results }

// Report aggregates the completed run. Failure rows are sorted by case
// id and capped at 10 in the printed table.
func (s *RandomSuite) Report() Report {
	r := buildReport("Parallel Random Tests", s.results, s.wall, true)
	if s.wall > 0 {
		r.Throughput = float64(s.Cases) / s.wall.Seconds()
	}
	r.MaxShown = 10
	return r
}

// PrintReport writes the report to the suite's output.
func (s *RandomSuite) PrintReport() Report {
	r := s.Report()
	r.Print(s.Out)
	return r
}
