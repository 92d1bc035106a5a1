package attribute

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vulnverified/wordsmith/internal/wordlist"
)

// DefaultFallbackCountry supplies code lists to collections that are not
// tied to a node, such as religion, language and scrape output.
const DefaultFallbackCountry = "usa"

// Store reads attribute resources from a data directory.
type Store struct {
	Root string
	// FallbackCountry is used by Codes when no node is given.
	FallbackCountry string
}

// NewStore returns a store rooted at the data directory.
func NewStore(root string) *Store {
	return &Store{Root: root, FallbackCountry: DefaultFallbackCountry}
}

func (s *Store) dir(node string) string {
	return filepath.Join(s.Root, filepath.FromSlash(node))
}

// Files returns the resources of kind under node, node itself included,
// in lexical walk order.
func (s *Store) Files(node string, kind Kind) ([]string, error) {
	root := s.dir(node)
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == root {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.HasSuffix(name, ".txt") {
			return nil
		}
		if kind == Other {
			if Kind(strings.TrimSuffix(name, ".txt")).Tagged() {
				return nil
			}
		} else if name != kind.FileName() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// Collect merges every resource of kind found under node into one
// collection. A node without matching resources yields an empty result.
func (s *Store) Collect(node string, kind Kind) ([]string, error) {
	if kind.CrossCutting() {
		return nil, fmt.Errorf("%s is collected per run, not per node", kind)
	}

	files, err := s.Files(node, kind)
	if err != nil {
		return nil, err
	}

	var words []string
	for _, f := range files {
		lines, err := s.read(f, kind)
		if err != nil {
			return nil, err
		}
		words = append(words, lines...)
	}
	return words, nil
}

func (s *Store) read(path string, kind Kind) ([]string, error) {
	if kind == Demographics || filepath.Base(path) == Demographics.FileName() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		data, err = wordlist.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return ExtractDemographics(string(data)), nil
	}
	return wordlist.Load(path)
}

// Codes returns the area or zip codes found under node. An empty node
// selects the fallback country. Missing code lists yield no codes.
func (s *Store) Codes(node string, kind Kind) ([]string, error) {
	if kind != AreaCodes && kind != ZipCodes {
		return nil, fmt.Errorf("%s is not a code list", kind)
	}
	if node == "" {
		node = s.FallbackCountry
	}
	if node == "" {
		return nil, nil
	}
	return s.Collect(node, kind)
}

// Names returns the first depth entries (0 = all) of the first or last
// name list stored directly at node.
func (s *Store) Names(node string, kind Kind, depth int) ([]string, error) {
	if kind != FirstNames && kind != LastNames {
		return nil, fmt.Errorf("%s is not a name list", kind)
	}
	return wordlist.LoadPrefix(filepath.Join(s.dir(node), kind.FileName()), depth)
}
