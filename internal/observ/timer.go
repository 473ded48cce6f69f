package observ

import (
	"fmt"
	"sort"
	"time"
)

// Phase records the duration and metadata of one pipeline phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of the expansion pipeline phases
// together with a few run counters (files seen, cache hits, expanded
// invocations).
type Timer struct {
	phases   []Phase
	counters map[string]int
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer {
	return &Timer{
		phases:   make([]Phase, 0, 4),
		counters: make(map[string]int),
	}
}

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Count adds n to the named run counter.
func (t *Timer) Count(name string, n int) {
	t.counters[name] += n
}

// Summary returns a human-readable string summarizing phases and counters.
func (t *Timer) Summary() string {
	report := t.Report()
	out := "timings:\n"
	for _, p := range report.Phases {
		out += fmt.Sprintf("  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			out += "  // " + p.Note
		}
		out += "\n"
	}
	out += fmt.Sprintf("  %-20s %7.2f ms\n", "total", report.TotalMS)
	for _, c := range report.Counters {
		out += fmt.Sprintf("  %-20s %7d\n", c.Name, c.Value)
	}
	return out
}

// PhaseReport is the serializable view of a single phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Counter is the serializable view of a run counter.
type Counter struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Report aggregates all phases and counters plus the total duration in
// milliseconds.
type Report struct {
	TotalMS  float64       `json:"total_ms"`
	Phases   []PhaseReport `json:"phases"`
	Counters []Counter     `json:"counters,omitempty"`
}

// Report builds the phase slice, counters and total duration.
func (t *Timer) Report() Report {
	report := Report{}
	var total time.Duration
	for _, phase := range t.phases {
		total += phase.Dur
		report.Phases = append(report.Phases, PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		})
	}
	report.TotalMS = durationToMillis(total)
	names := make([]string, 0, len(t.counters))
	for name := range t.counters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		report.Counters = append(report.Counters, Counter{Name: name, Value: t.counters[name]})
	}
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
