// Package username builds combinatorial username candidates from name lists.
package username

import (
	"fmt"
	"strings"

	"github.com/vulnverified/wordsmith/internal/attribute"
	"github.com/vulnverified/wordsmith/internal/wordlist"
	"github.com/vulnverified/wordsmith/pkg/alphabet"
)

// DefaultDepth is the number of first and last names used per node.
const DefaultDepth = 100

// Scheme describes how a username is assembled from a first and last name.
type Scheme struct {
	Name         string
	Example      string
	FirstInitial bool // use the alphabet in place of first names
	LastInitial  bool // use the alphabet in place of last names
	LastFirst    bool // last name leads
	Separator    string
}

// Schemes are the supported username layouts.
var (
	FirstInitialLastName = Scheme{Name: "filn", Example: "bsmith", FirstInitial: true}
	FirstNameLastName    = Scheme{Name: "fnln", Example: "bobsmith"}
	FirstNameLastInitial = Scheme{Name: "fnli", Example: "bobs", LastInitial: true}
	LastNameFirstInitial = Scheme{Name: "lnfi", Example: "smithb", FirstInitial: true, LastFirst: true}
	LastNameFirstName    = Scheme{Name: "lnfn", Example: "smithbob", LastFirst: true}
	FirstInitialDotLast  = Scheme{Name: "fidln", Example: "b.smith", FirstInitial: true, Separator: "."}
	FirstNameDotLastName = Scheme{Name: "fndln", Example: "bob.smith", Separator: "."}
)

// All lists the schemes in generation order.
var All = []Scheme{
	FirstInitialLastName, FirstNameLastName, FirstNameLastInitial,
	LastNameFirstInitial, LastNameFirstName,
	FirstInitialDotLast, FirstNameDotLastName,
}

// ParseScheme returns the scheme named name.
func ParseScheme(name string) (Scheme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range All {
		if s.Name == name {
			return s, nil
		}
	}
	return Scheme{}, fmt.Errorf("unknown username scheme %q", name)
}

// Join assembles one username.
func (s Scheme) Join(first, last string) string {
	if s.LastFirst {
		return last + s.Separator + first
	}
	return first + s.Separator + last
}

// Combine returns the cartesian product of first and last under s, first
// names in the outer loop.
func (s Scheme) Combine(first, last []string) []string {
	out := make([]string, 0, len(first)*len(last))
	for _, f := range first {
		for _, l := range last {
			out = append(out, s.Join(f, l))
		}
	}
	return out
}

// Options controls generation.
type Options struct {
	Schemes  []Scheme
	Depth    int // names read from each list; 0 reads all
	Truncate int // keep the first Truncate runes of each username; 0 disables
	MaxCount int // keep the first MaxCount usernames; 0 disables
}

// NameSource supplies name lists for a node.
type NameSource interface {
	Names(node string, kind attribute.Kind, depth int) ([]string, error)
}

// Generator builds usernames for nodes.
type Generator struct {
	Source NameSource
}

// NewGenerator returns a generator reading names from src.
func NewGenerator(src NameSource) *Generator {
	return &Generator{Source: src}
}

// Generate returns the usernames for node in generation order. A node that
// lacks a name list required by a scheme yields no usernames.
func (g *Generator) Generate(node string, opts Options) ([]string, error) {
	if len(opts.Schemes) == 0 {
		return nil, nil
	}

	var first, last []string
	needFirst, needLast := false, false
	for _, s := range opts.Schemes {
		needFirst = needFirst || !s.FirstInitial
		needLast = needLast || !s.LastInitial
	}

	if needFirst {
		names, ok, err := g.names(node, attribute.FirstNames, opts.Depth)
		if err != nil || !ok {
			return nil, err
		}
		first = names
	}
	if needLast {
		names, ok, err := g.names(node, attribute.LastNames, opts.Depth)
		if err != nil || !ok {
			return nil, err
		}
		last = names
	}

	var out []string
	for _, s := range opts.Schemes {
		f, l := first, last
		if s.FirstInitial {
			f = alphabet.Initials()
		}
		if s.LastInitial {
			l = alphabet.Initials()
		}
		out = append(out, s.Combine(f, l)...)
	}

	return Limit(out, opts.Truncate, opts.MaxCount), nil
}

func (g *Generator) names(node string, kind attribute.Kind, depth int) ([]string, bool, error) {
	names, err := g.Source.Names(node, kind, depth)
	if err != nil {
		if wordlist.IsMissing(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return names, true, nil
}

// Limit truncates every username to truncate runes and then keeps the
// first maxCount entries. Zero disables either limit.
func Limit(names []string, truncate, maxCount int) []string {
	if truncate > 0 {
		for i, n := range names {
			if r := []rune(n); len(r) > truncate {
				names[i] = string(r[:truncate])
			}
		}
	}
	if maxCount > 0 && len(names) > maxCount {
		names = names[:maxCount]
	}
	return names
}
