package dispatcher

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dshills/richtext/internal/dispatcher/handler"
	"github.com/dshills/richtext/internal/engine"
)

// CommandStats are the counters of one host method.
type CommandStats struct {
	Name  string
	Calls uint64

	// Failures counts error results, panics included.
	Failures uint64

	// Rejected counts edits refused by a read-only editor. They are also
	// failures.
	Rejected uint64

	Panics  uint64
	Elapsed time.Duration
	Slowest time.Duration
	Last    handler.ResultStatus
}

// Mean returns the average time spent per call.
func (s CommandStats) Mean() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Elapsed / time.Duration(s.Calls)
}

// Totals sums CommandStats over every method.
type Totals struct {
	Calls    uint64
	Failures uint64
	Rejected uint64
	Panics   uint64
	Elapsed  time.Duration
	Methods  int
}

// Metrics counts dispatches per host method.
type Metrics struct {
	mu       sync.Mutex
	commands map[string]*CommandStats
}

// NewMetrics returns an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{commands: make(map[string]*CommandStats)}
}

func (m *Metrics) entry(name string) *CommandStats {
	s := m.commands[name]
	if s == nil {
		s = &CommandStats{Name: name}
		m.commands[name] = s
	}
	return s
}

// Record counts one dispatch of name that took elapsed and produced res.
func (m *Metrics) Record(name string, elapsed time.Duration, res handler.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.entry(name)
	s.Calls++
	s.Elapsed += elapsed
	s.Slowest = max(s.Slowest, elapsed)
	s.Last = res.Status
	if res.IsError() {
		s.Failures++
		if errors.Is(res.Error, engine.ErrReadOnly) {
			s.Rejected++
		}
	}
}

// RecordPanic counts a recovered handler panic. The dispatch itself is
// still counted by Record.
func (m *Metrics) RecordPanic(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry(name).Panics++
}

// Command returns the counters of name.
func (m *Metrics) Command(name string) (CommandStats, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.commands[name]
	if !ok {
		return CommandStats{}, false
	}
	return *s, true
}

// Busiest returns up to n methods, most called first.
func (m *Metrics) Busiest(n int) []CommandStats {
	m.mu.Lock()
	out := make([]CommandStats, 0, len(m.commands))
	for _, s := range m.commands {
		out = append(out, *s)
	}
	m.mu.Unlock()

	slices.SortFunc(out, func(a, b CommandStats) int {
		if a.Calls != b.Calls {
			if a.Calls > b.Calls {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out[:min(max(n, 0), len(out))]
}

// Totals sums the counters of every method.
func (m *Metrics) Totals() Totals {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := Totals{Methods: len(m.commands)}
	for _, s := range m.commands {
		t.Calls += s.Calls
		t.Failures += s.Failures
		t.Rejected += s.Rejected
		t.Panics += s.Panics
		t.Elapsed += s.Elapsed
	}
	return t
}

// Reset forgets every counter.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.commands)
}
