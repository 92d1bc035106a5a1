package attribute

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vulnverified/wordsmith/internal/wordlist"
)

const (
	religionDir = "religion"
	languageDir = "languages"
)

// referenceGroup ties a list of religion names to the corpora they read.
type referenceGroup struct {
	members string   // file listing religion names belonging to the group
	corpora []string // reference texts merged for any member
}

var religionGroups = []referenceGroup{
	{
		members: "bible-religions.conf",
		corpora: []string{
			"king-james-bible-parsed.txt",
			"douay-rheims-parsed.txt",
			"new-international-version-bible-parsed.txt",
			"king-james-bible-book-verse.txt",
		},
	},
	{
		members: "quran-religions.conf",
		corpora: []string{"quran-parsed-eng.txt"},
	},
}

// chineseDictionary serves every spoken Chinese language.
const chineseDictionary = "cedict.txt"

var chineseLanguages = map[string]bool{
	"mandarin":  true,
	"cantonese": true,
	"chinese":   true,
}

// Religions merges the reference corpora of every religion group that
// lists one of religions. Corpora are lowercased.
func (s *Store) Religions(religions []string) ([]string, error) {
	dir := filepath.Join(s.Root, religionDir)

	var data []string
	for _, g := range religionGroups {
		members, err := wordlist.LoadLower(filepath.Join(dir, g.members))
		if err != nil {
			if wordlist.IsMissing(err) {
				continue
			}
			return nil, err
		}
		set := make(map[string]bool, len(members))
		for _, m := range members {
			set[strings.TrimSpace(m)] = true
		}

		for _, r := range religions {
			if !set[strings.ToLower(r)] {
				continue
			}
			for _, c := range g.corpora {
				lines, err := s.corpus(filepath.Join(dir, c))
				if err != nil {
					return nil, err
				}
				data = append(data, lines...)
			}
		}
	}
	return data, nil
}

// Languages merges the dictionaries of languages. Languages without a
// dictionary contribute nothing.
func (s *Store) Languages(languages []string) ([]string, error) {
	dir := filepath.Join(s.Root, languageDir)
	available, err := s.dictionaries(dir)
	if err != nil {
		return nil, err
	}

	var data []string
	for _, lang := range languages {
		lang = strings.ToLower(lang)
		if chineseLanguages[lang] {
			lines, err := s.corpus(filepath.Join(dir, chineseDictionary))
			if err != nil {
				return nil, err
			}
			data = append(data, lines...)
		}
		if file, ok := available[lang]; ok {
			lines, err := s.corpus(file)
			if err != nil {
				return nil, err
			}
			data = append(data, lines...)
		}
	}
	return data, nil
}

func (s *Store) dictionaries(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	out := make(map[string]string)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		out[strings.ToLower(strings.TrimSuffix(name, ".txt"))] = filepath.Join(dir, name)
	}
	return out, nil
}

// corpus reads a reference text; a missing text contributes nothing.
func (s *Store) corpus(path string) ([]string, error) {
	lines, err := wordlist.LoadLower(path)
	if wordlist.IsMissing(err) {
		return nil, nil
	}
	return lines, err
}
