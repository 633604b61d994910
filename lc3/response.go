package lc3

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Response is the immutable outcome of one completed simulator run:
// the program's output captured before the halt marker, and the final
// register bank read back after the halt.
type Response struct {
	// Output is the program's own output, up to the halt marker.
	Output string
	// Status is the simulator's post-halt status text (informational).
	Status string
	// Regs is the register bank after the run.
	Regs Regs
}

// normalizeLines splits text into lines with surrounding whitespace
// stripped per line; trailing blank lines disappear with the outer trim.
func normalizeLines(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	lines := strings.Split(trimmed, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// DiffOutput reports whether the captured program output equals expected
// under a trailing-whitespace/newline-insensitive comparison. On
// mismatch it prints a line-by-line diff table to stdout and returns
// false. The comparison never mutates the Response and never fails.
func (r *Response) DiffOutput(expected string) bool {
	return r.DiffOutputTo(os.Stdout, expected)
}

// DiffOutputTo is DiffOutput with an explicit destination for the diff
// report.
func (r *Response) DiffOutputTo(w io.Writer, expected string) bool {
	expectLines := normalizeLines(expected)
	actualLines := normalizeLines(r.Output)

	if len(expectLines) == len(actualLines) {
		equal := true
		for i := range expectLines {
			if expectLines[i] != actualLines[i] {
				equal = false
				break
			}
		}
		if equal {
			return true
		}
	}

	max := len(expectLines)
	if len(actualLines) > max {
		max = len(actualLines)
	}

	fmt.Fprintln(w, "\noutput mismatch:")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Line", "Expected", "Actual"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	for i := 0; i < max; i++ {
		exp, act := "<MISSING>", "<MISSING>"
		if i < len(expectLines) {
			exp = expectLines[i]
		}
		if i < len(actualLines) {
			act = actualLines[i]
		}
		marker := ""
		if exp != act {
			marker = "!"
		}
		table.Append([]string{fmt.Sprintf("%d%s", i+1, marker), exp, act})
	}
	table.Render()
	return false
}

func (r *Response) String() string {
	return fmt.Sprintf("--- Output ---\n%s\n--- Regs ---\n%s", r.Output, r.Regs)
}
