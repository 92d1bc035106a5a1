// Package boundary maps location tokens onto nodes of the data hierarchy.
package boundary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Delimiter separates node segments in a user-facing token (usa-nc-raleigh).
const Delimiter = "-"

// PopulousFile lists country codes by population, most populous first.
const PopulousFile = "most-populous-countries.csv"

// UnknownError reports a token with no matching node in the hierarchy.
type UnknownError struct {
	Token string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("input '%s' not found", e.Token)
}

// Validator checks tokens against a data directory.
type Validator struct {
	Root string
}

// NewValidator returns a validator rooted at the data directory.
func NewValidator(root string) *Validator {
	return &Validator{Root: root}
}

// Validate converts tokens to node paths such as "usa/nc/raleigh".
// The first unknown token aborts validation; no partial result is returned.
// The result is sorted and free of duplicates.
func (v *Validator) Validate(tokens []string) ([]string, error) {
	seen := make(map[string]bool, len(tokens))
	var nodes []string

	for _, tok := range tokens {
		node, err := v.node(tok)
		if err != nil {
			return nil, err
		}
		if !seen[node] {
			seen[node] = true
			nodes = append(nodes, node)
		}
	}

	sort.Strings(nodes)
	return nodes, nil
}

// Exists reports whether node names a directory under the root.
func (v *Validator) Exists(node string) bool {
	info, err := os.Stat(filepath.Join(v.Root, filepath.FromSlash(node)))
	return err == nil && info.IsDir()
}

func (v *Validator) node(token string) (string, error) {
	segments := strings.Split(strings.TrimSpace(token), Delimiter)
	dir := v.Root
	walked := make([]string, 0, len(segments))

	for _, seg := range segments {
		seg = strings.ToLower(seg)
		if !validSegment(seg) {
			return "", &UnknownError{Token: token}
		}
		dir = filepath.Join(dir, seg)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return "", &UnknownError{Token: token}
		}
		walked = append(walked, seg)
	}
	return path.Join(walked...), nil
}

func validSegment(seg string) bool {
	if seg == "" || seg == "." || seg == ".." {
		return false
	}
	return !strings.ContainsAny(seg, `/\`)
}

// Country returns the top-level segment of a node path.
func Country(node string) string {
	if i := strings.IndexByte(node, '/'); i >= 0 {
		return node[:i]
	}
	return node
}

// Token converts a node path back to its user-facing form.
func Token(node string) string {
	return strings.ReplaceAll(node, "/", Delimiter)
}

// MostPopulous returns the first n country codes from the populous list.
func (v *Validator) MostPopulous(n int) ([]string, error) {
	p := filepath.Join(v.Root, PopulousFile)
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("%s does not exist: %w", p, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	var countries []string
	for len(countries) < n {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		if len(rec) == 0 {
			continue
		}
		code := strings.TrimSpace(rec[0])
		if code == "" || strings.HasPrefix(code, "#") {
			continue
		}
		countries = append(countries, code)
	}
	return countries, nil
}

// IsCount reports whether input is a bare number selecting the most
// populous countries.
func IsCount(input string) bool {
	if input == "" {
		return false
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
