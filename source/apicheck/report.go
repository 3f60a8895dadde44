package apicheck

import (
	"fmt"
	"io"
	"strings"
)

type Result struct {
	Name    string
	Passed  bool
	Message string
}

type Report struct {
	Results []Result
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
}

func (r *Report) Passed() []Result {
	return r.filter(true)
}

func (r *Report) Failed() []Result {
	return r.filter(false)
}

func (r *Report) filter(passed bool) []Result {
	out := []Result{}
	for _, res := range r.Results {
		if res.Passed == passed {
			out = append(out, res)
		}
	}
	return out
}

func (r *Report) OK() bool {
	return len(r.Results) > 0 && len(r.Failed()) == 0
}

// SuccessRate is the passed percentage, 0 for an empty report.
func (r *Report) SuccessRate() float64 {
	if len(r.Results) == 0 {
		return 0
	}
	return float64(len(r.Passed())) / float64(len(r.Results)) * 100
}

func (r *Report) Write(w io.Writer) {
	line := strings.Repeat("=", 60)

	for _, res := range r.Results {
		fmt.Fprintf(w, "%s %s: %s\n", mark(res.Passed), res.Name, res.Message)
	}

	fmt.Fprintf(w, "\n%s\nGTM BACKEND API CHECK REPORT\n%s\n", line, line)
	fmt.Fprintf(w, "Total checks: %d\n", len(r.Results))
	fmt.Fprintf(w, "Passed: %d\n", len(r.Passed()))
	fmt.Fprintf(w, "Failed: %d\n", len(r.Failed()))
	if len(r.Results) > 0 {
		fmt.Fprintf(w, "Success rate: %.1f%%\n", r.SuccessRate())
	} else {
		fmt.Fprintln(w, "No checks run")
	}

	if failed := r.Failed(); len(failed) > 0 {
		fmt.Fprintln(w, "\nFAILED CHECKS:")
		for _, res := range failed {
			fmt.Fprintf(w, "  %s %s: %s\n", mark(false), res.Name, res.Message)
		}
	}

	fmt.Fprintf(w, "\n%s\n", line)
}

func mark(passed bool) string {
	if passed {
		return "[PASS]"
	}
	return "[FAIL]"
}
