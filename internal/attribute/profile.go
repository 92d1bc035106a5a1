package attribute

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is the per-country configuration record.
type Profile struct {
	Religion1 string `yaml:"religion_1"`
	Religion2 string `yaml:"religion_2"`
	Language1 string `yaml:"language_1"`
	Language2 string `yaml:"language_2"`
}

type profileFile struct {
	Config Profile `yaml:"config"`
}

// Religions returns the non-empty religion names, lowercased.
func (p Profile) Religions() []string {
	return nonEmptyLower(p.Religion1, p.Religion2)
}

// Languages returns the non-empty language names, lowercased.
func (p Profile) Languages() []string {
	return nonEmptyLower(p.Language1, p.Language2)
}

func nonEmptyLower(vals ...string) []string {
	var out []string
	for _, v := range vals {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ProfilePath is the location of the profile for the country owning node.
func (s *Store) ProfilePath(node string) string {
	country := node
	if i := strings.IndexByte(node, '/'); i >= 0 {
		country = node[:i]
	}
	return filepath.Join(s.Root, country, country+".yaml")
}

// Profile reads the country profile of node. ok is false when the
// country has no profile.
func (s *Store) Profile(node string) (p Profile, ok bool, err error) {
	path := s.ProfilePath(node)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Profile{}, false, nil
		}
		return Profile{}, false, fmt.Errorf("read profile: %w", err)
	}

	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return Profile{}, false, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return pf.Config, true, nil
}
