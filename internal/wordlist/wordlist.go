// Package wordlist reads newline-delimited word resources from disk.
package wordlist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// maxLine bounds a single line; reference corpora contain very long verses.
const maxLine = 4 * 1024 * 1024

// MissingError reports a resource that does not exist on disk.
type MissingError struct {
	Path string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s does not exist", e.Path)
}

// IsMissing reports whether err is, or wraps, a *MissingError.
func IsMissing(err error) bool {
	var me *MissingError
	return errors.As(err, &me)
}

// Require checks that every non-empty path exists and is a regular file.
// It is used before processing starts so that a typo in a user-supplied
// wordlist stops the run instead of silently contributing nothing.
func Require(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			return &MissingError{Path: p}
		}
	}
	return nil
}

// Load reads every line of the file at path.
// Content that is not valid UTF-8 is decoded as ISO-8859-1.
func Load(path string) ([]string, error) {
	return LoadPrefix(path, 0)
}

// LoadPrefix reads at most n lines from the file at path (0 reads all).
func LoadPrefix(path string, n int) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingError{Path: path}
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	data, err = Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return Lines(bytes.NewReader(data), n)
}

// LoadLower reads every line of the file at path, lowercased.
func LoadLower(path string) ([]string, error) {
	lines, err := Load(path)
	if err != nil {
		return nil, err
	}
	for i, l := range lines {
		lines[i] = strings.ToLower(l)
	}
	return lines, nil
}

// Decode returns data unchanged when it is valid UTF-8 and otherwise
// transcodes it from ISO-8859-1.
func Decode(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return data, nil
	}
	return charmap.ISO8859_1.NewDecoder().Bytes(data)
}

// Lines splits r into lines, trimming only the record separator.
// Blank lines inside the content are kept. At most n lines are returned
// when n > 0.
func Lines(r io.Reader, n int) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	for scanner.Scan() {
		words = append(words, scanner.Text())
		if n > 0 && len(words) == n {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
