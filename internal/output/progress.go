// Package output handles all wordsmith CLI output formatting.
package output

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/vulnverified/wordsmith/internal/engine"
)

// Progress writes stage progress updates to stderr.
type Progress struct {
	w       io.Writer
	words   io.Writer
	verbose bool
	silent  bool
	mu      sync.Mutex
	start   time.Time
}

// NewProgress creates a progress reporter.
func NewProgress(w io.Writer, verbose, silent bool) *Progress {
	return &Progress{
		w:       w,
		verbose: verbose,
		silent:  silent,
		start:   time.Now(),
	}
}

// EchoWords makes the reporter print the words of every collection to w.
func (p *Progress) EchoWords(w io.Writer) *Progress {
	p.words = w
	return p
}

// Stage prints a stage header like "[1/5] Resolving inputs..."
func (p *Progress) Stage(num, total int, msg string) {
	if p.silent {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "[%d/%d] %s\n", num, total, msg)
}

// Detail prints verbose detail (only in verbose mode).
func (p *Progress) Detail(msg string) {
	if !p.verbose || p.silent {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "  %s\n", msg)
}

// Warn prints a warning to stderr.
func (p *Progress) Warn(msg string) {
	if p.silent {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "  ! %s\n", msg)
}

// Collection implements engine.CollectionReporter.
func (p *Progress) Collection(c engine.Collection, words []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.words != nil && len(words) > 0 {
		bw := bufio.NewWriter(p.words)
		for _, w := range words {
			fmt.Fprintln(bw, w)
		}
		bw.Flush()
	}
	if p.silent {
		return
	}
	if c.Count == 0 {
		fmt.Fprintf(p.w, "  No %s found\n", c.Label())
		return
	}
	fmt.Fprintf(p.w, "  Total %s: %d\n", c.Label(), c.Count)
}

// Complete prints the final duration.
func (p *Progress) Complete() {
	if p.silent {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	elapsed := time.Since(p.start)
	fmt.Fprintf(p.w, "\nCompleted in %.1fs\n", elapsed.Seconds())
}
