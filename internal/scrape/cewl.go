package scrape

import (
	"context"
	"fmt"
	"os/exec"
	"slices"
	"strings"
)

// cewlUnreachable is printed by CeWL when the target cannot be fetched.
const cewlUnreachable = "Unable to connect to the site"

// Cewl scrapes through an installed CeWL binary.
type Cewl struct {
	Path string
	Args []string // extra arguments placed before the URL
}

// LookCewl finds the CeWL binary. path overrides the PATH search.
func LookCewl(path string) (*Cewl, error) {
	if path == "" {
		path = "cewl"
	}
	p, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("cewl executable not found: %w", err)
	}
	return &Cewl{Path: p}, nil
}

// Scrape runs CeWL against rawURL.
func (c *Cewl) Scrape(ctx context.Context, rawURL string) ([]string, error) {
	args := append(append([]string(nil), c.Args...), strings.TrimSpace(rawURL))
	out, err := exec.CommandContext(ctx, c.Path, args...).Output()
	if err != nil && len(out) == 0 {
		return nil, fmt.Errorf("running cewl: %w", err)
	}
	return ParseCewl(string(out))
}

// ParseCewl turns CeWL output into sorted distinct words. The first two
// lines are the banner.
func ParseCewl(out string) ([]string, error) {
	if strings.Contains(out, cewlUnreachable) {
		return nil, ErrUnreachable
	}

	lines := strings.Split(strings.ReplaceAll(out, "\r\n", "\n"), "\n")
	if len(lines) <= 2 {
		return nil, nil
	}

	var words []string
	for _, l := range lines[2:] {
		if l = strings.TrimSpace(l); l != "" {
			words = append(words, l)
		}
	}
	slices.Sort(words)
	return slices.Compact(words), nil
}
