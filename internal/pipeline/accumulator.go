package pipeline

import (
	"sort"
	"sync"
)

// Accumulator collects the output of every pipeline call in a run.
// It is safe for concurrent use.
type Accumulator struct {
	mu    sync.Mutex
	words map[string]struct{}
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{words: make(map[string]struct{})}
}

// Add merges words into the accumulator.
func (a *Accumulator) Add(words []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, w := range words {
		a.words[w] = struct{}{}
	}
}

// Len returns the number of distinct words held, the empty word included.
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.words)
}

// Finalize returns the sorted distinct non-empty words.
func (a *Accumulator) Finalize() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]string, 0, len(a.words))
	for w := range a.words {
		if w == "" {
			continue
		}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
