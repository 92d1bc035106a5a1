package pipeline

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Batch is the working state of one Transform call.
type Batch struct {
	Node  string   // node the words came from, empty for run-wide collections
	Input []string // original lines
	Base  []string // input lines plus split tokens
	Words []string // every word produced so far

	staged    []string
	limit     int
	emitted   int
	truncated bool
}

// Staged returns the words produced before the first combination stage.
// Combination stages read from it so their output never compounds.
func (b *Batch) Staged() []string {
	if b.staged == nil {
		b.staged = b.Words[:len(b.Words):len(b.Words)]
	}
	return b.staged
}

// emit adds a combined word unless the combination cap is reached.
func (b *Batch) emit(w string) bool {
	if b.limit > 0 && b.emitted >= b.limit {
		b.truncated = true
		return false
	}
	b.emitted++
	b.Words = append(b.Words, w)
	return true
}

// Stage is one step of the pipeline.
type Stage interface {
	Name() string
	Apply(b *Batch) error
}

type splitStage struct{}

func (splitStage) Name() string { return "split" }

func (splitStage) Apply(b *Batch) error {
	for _, line := range b.Input {
		for _, tok := range strings.Fields(line) {
			b.Base = append(b.Base, tok)
			b.Words = append(b.Words, tok)
		}
	}
	return nil
}

// stripStage adds a rewritten copy of every base word.
type stripStage struct {
	name    string
	rewrite func(string) string
}

func (s stripStage) Name() string { return s.name }

func (s stripStage) Apply(b *Batch) error {
	for _, w := range b.Base {
		b.Words = append(b.Words, s.rewrite(w))
	}
	return nil
}

func stripSpecials(w string) string {
	return strings.Map(func(r rune) rune {
		if isDigit(r) || isLower(r) || isUpper(r) {
			return r
		}
		return -1
	}, w)
}

func stripSpaces(w string) string {
	return strings.ReplaceAll(w, " ", "")
}

// combineStage joins every staged word with every element of a list.
type combineStage struct {
	name   string
	load   func(node string) ([]string, error)
	prefix bool
	suffix bool
}

func (s combineStage) Name() string { return s.name }

func (s combineStage) Apply(b *Batch) error {
	staged := b.Staged()
	list, err := s.load(b.Node)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return nil
	}

	if s.prefix {
		for _, w := range staged {
			for _, e := range list {
				if !b.emit(e + w) {
					return nil
				}
			}
		}
	}
	if s.suffix {
		for _, w := range staged {
			for _, e := range list {
				if !b.emit(w + e) {
					return nil
				}
			}
		}
	}
	return nil
}

// filterStage keeps the words for which keep returns true.
type filterStage struct {
	name string
	keep func(string) bool
}

func (s filterStage) Name() string { return s.name }

func (s filterStage) Apply(b *Batch) error {
	kept := b.Words[:0:0]
	for _, w := range b.Words {
		if s.keep(w) {
			kept = append(kept, w)
		}
	}
	b.Words = kept
	return nil
}

func lengthFilter(min, max int) filterStage {
	return filterStage{
		name: "length",
		keep: func(w string) bool {
			n := utf8.RuneCountInString(w)
			if min > 0 && n < min {
				return false
			}
			if max > 0 && n > max {
				return false
			}
			return true
		},
	}
}

// Complex reports whether w contains at least three of the four character
// classes digit, lowercase, uppercase and symbol.
func Complex(w string) bool {
	var digit, lower, upper, symbol bool
	for _, r := range w {
		switch {
		case isDigit(r):
			digit = true
		case isLower(r):
			lower = true
		case isUpper(r):
			upper = true
		default:
			symbol = true
		}
	}
	classes := 0
	for _, ok := range []bool{digit, lower, upper, symbol} {
		if ok {
			classes++
		}
	}
	return classes >= 3
}

type lowercaseStage struct{}

func (lowercaseStage) Name() string { return "lowercase" }

func (lowercaseStage) Apply(b *Batch) error {
	// A Caser carries state; one per call keeps concurrent batches apart.
	c := cases.Lower(language.Und)
	for i, w := range b.Words {
		b.Words[i] = c.String(w)
	}
	return nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
