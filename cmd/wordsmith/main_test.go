package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vulnverified/wordsmith/internal/attribute"
	"github.com/vulnverified/wordsmith/internal/username"
)

func newFlags() *flags {
	f := &flags{schemes: make(map[string]*bool), nameDepth: username.DefaultDepth}
	for _, s := range username.All {
		f.schemes[s.Name] = new(bool)
	}
	return f
}

func TestFlags_Kinds(t *testing.T) {
	f := newFlags()
	f.roads = true
	f.allNames = true
	f.cia = true

	want := []attribute.Kind{attribute.Demographics, attribute.FirstNames, attribute.LastNames, attribute.Roads}
	if got := f.kinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}

	f.all = true
	if got := f.kinds(); !reflect.DeepEqual(got, attribute.NodeKinds) {
		t.Errorf("kinds with --all = %v, want every node kind", got)
	}
}

func TestFlags_Usernames(t *testing.T) {
	f := newFlags()
	*f.schemes["fndln"] = true
	*f.schemes["filn"] = true
	f.truncate = 8
	f.maxUsers = 500

	opts := f.usernames()
	if len(opts.Schemes) != 2 || opts.Schemes[0] != username.FirstInitialLastName || opts.Schemes[1] != username.FirstNameDotLastName {
		t.Errorf("schemes = %+v", opts.Schemes)
	}
	if opts.Depth != username.DefaultDepth || opts.Truncate != 8 || opts.MaxCount != 500 {
		t.Errorf("limits = %+v", opts)
	}
}

func TestLoadRegions_MissingTableIsEmpty(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	table, err := loadRegions(t.TempDir(), log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Aliases()) != 0 {
		t.Errorf("aliases = %v, want none", table.Aliases())
	}
	if !strings.Contains(buf.String(), "region table not found") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestLoadRegions(t *testing.T) {
	dir := t.TempDir()
	data := "# alias,description,members\nnewengland,New England,usa-ma usa-ct usa-ri\n"
	if err := os.WriteFile(filepath.Join(dir, regionsFile), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := loadRegions(dir, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a := table.Aliases(); len(a) != 1 || a[0].Name != "newengland" {
		t.Errorf("aliases = %+v", a)
	}
}

func TestWriteExamples(t *testing.T) {
	var buf bytes.Buffer
	writeExamples(&buf)
	if !strings.Contains(buf.String(), "wordsmith -I newengland -r") {
		t.Errorf("examples missing region usage:\n%s", buf.String())
	}
}
