// Package region expands user-defined region aliases into location tokens.
package region

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Alias is one row of the region table.
type Alias struct {
	Name        string
	Description string
	Members     []string
}

// CycleError reports an alias that refers back to itself, directly or
// through other aliases.
type CycleError struct {
	Token string
	Chain []string
}

func (e *CycleError) Error() string {
	path := make([]string, 0, len(e.Chain)+1)
	path = append(path, e.Chain...)
	path = append(path, strings.ToLower(e.Token))
	return fmt.Sprintf("region alias %q is cyclic (%s)", e.Token, strings.Join(path, " -> "))
}

// Table is a parsed region alias table.
type Table struct {
	aliases []Alias
	byName  map[string]int
}

// Load reads a region table from a CSV file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open region table: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// Parse reads alias rows of the form alias,description,members.
// Rows without exactly three fields or starting with '#' are skipped.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	t := &Table{byName: make(map[string]int)}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) != 3 || strings.HasPrefix(rec[0], "#") {
			continue
		}
		name := strings.TrimSpace(rec[0])
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := t.byName[key]; dup {
			// First definition wins, later rows only add members.
			idx := t.byName[key]
			t.aliases[idx].Members = append(t.aliases[idx].Members, strings.Fields(rec[2])...)
			continue
		}
		t.byName[key] = len(t.aliases)
		t.aliases = append(t.aliases, Alias{
			Name:        name,
			Description: strings.TrimSpace(rec[1]),
			Members:     strings.Fields(rec[2]),
		})
	}
	return t, nil
}

// Aliases returns the valid rows in file order.
func (t *Table) Aliases() []Alias {
	out := make([]Alias, len(t.aliases))
	copy(out, t.aliases)
	return out
}

// Lookup returns the alias matching name case-insensitively.
func (t *Table) Lookup(name string) (Alias, bool) {
	idx, ok := t.byName[strings.ToLower(name)]
	if !ok {
		return Alias{}, false
	}
	return t.aliases[idx], true
}

// Resolve expands token into primitive location tokens.
// A token that names no alias is returned unchanged.
func (t *Table) Resolve(token string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	if err := t.expand(token, nil, seen, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveAll expands every token and unions the results in first-seen order.
func (t *Table) ResolveAll(tokens []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, tok := range tokens {
		if err := t.expand(tok, nil, seen, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// expand walks the alias graph depth-first. chain holds the aliases being
// expanded above this call; re-entering one of them is a cycle.
func (t *Table) expand(token string, chain []string, seen map[string]bool, out *[]string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	alias, ok := t.Lookup(token)
	if !ok {
		if !seen[token] {
			seen[token] = true
			*out = append(*out, token)
		}
		return nil
	}

	key := strings.ToLower(alias.Name)
	for _, c := range chain {
		if c == key {
			return &CycleError{Token: alias.Name, Chain: chain}
		}
	}

	next := append(chain[:len(chain):len(chain)], key)
	for _, m := range alias.Members {
		if err := t.expand(m, next, seen, out); err != nil {
			return err
		}
	}
	return nil
}
