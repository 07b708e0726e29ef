// Package profiler records how long each stage of a single pipeline pass
// takes and prints a short report.
package profiler

import (
	"fmt"
	"io"
	"runtime"
	"time"
)

// Stage is the timing of one named pipeline step.
type Stage struct {
	Name     string
	Duration time.Duration
}

// StageTimer tracks operation timings in the order they complete. It is not
// safe for concurrent use; the pipeline runs its stages sequentially.
type StageTimer struct {
	stages []Stage
	now    func() time.Time
}

// NewStageTimer creates an empty timer using the wall clock.
func NewStageTimer() *StageTimer {
	return &StageTimer{now: time.Now}
}

// StartOperation begins timing an operation.
//
// Arguments:
// - name: The name of the operation to track
//
// Returns:
// - A function to call when the operation completes
func (st *StageTimer) StartOperation(name string) func() {
	if st == nil {
		return func() {}
	}
	start := st.now()
	return func() {
		st.stages = append(st.stages, Stage{Name: name, Duration: st.now().Sub(start)})
	}
}

// Stages returns the recorded stages in completion order.
func (st *StageTimer) Stages() []Stage {
	if st == nil {
		return nil
	}
	out := make([]Stage, len(st.stages))
	copy(out, st.stages)
	return out
}

// Total returns the sum of all recorded stage durations.
func (st *StageTimer) Total() time.Duration {
	var total time.Duration
	for _, s := range st.Stages() {
		total += s.Duration
	}
	return total
}

// Report writes the stage timings and current heap usage to w.
func (st *StageTimer) Report(w io.Writer) {
	stages := st.Stages()
	if len(stages) == 0 {
		return
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	fmt.Fprintf(w, "\nOPERATION TIMINGS:\n")
	for _, s := range stages {
		fmt.Fprintf(w, "  %s: %v\n", s.Name, s.Duration.Truncate(time.Microsecond))
	}
	fmt.Fprintf(w, "  total: %v\n", st.Total().Truncate(time.Microsecond))
	fmt.Fprintf(w, "\nMEMORY USAGE:\n")
	fmt.Fprintf(w, "  Heap Alloc: %s\n", formatBytes(mem.HeapAlloc))
}

// formatBytes formats byte counts in human-readable format.
func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
