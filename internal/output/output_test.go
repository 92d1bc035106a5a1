package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vulnverified/wordsmith/internal/boundary"
	"github.com/vulnverified/wordsmith/internal/engine"
	"github.com/vulnverified/wordsmith/internal/region"
)

func sampleResult() *engine.RunResult {
	return &engine.RunResult{
		Inputs: []string{"usa-nc"},
		Nodes:  []string{"usa-nc"},
		Collections: []engine.Collection{
			{Node: "usa-nc", Kind: "cities", Count: 12},
			{Node: "usa-nc", Kind: "landmarks", Count: 0},
			{Kind: "religion", Count: 3},
		},
		Warnings: []string{"Unable to connect to https://down.example"},
		Summary:  engine.Summary{NodeCount: 1, CollectionCount: 3, EmptyCollections: 1, CandidateWords: 15, UniqueWords: 14},
		Words:    []string{"a", "b"},
	}
}

func TestWriteTable_NoColor(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, sampleResult(), true)
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Node") || !strings.Contains(lines[0], "Collection") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], "usa-nc") || !strings.Contains(lines[2], "12") {
		t.Errorf("first row = %q", lines[2])
	}
	if !strings.HasPrefix(lines[4], "-") || !strings.Contains(lines[4], "religion") {
		t.Errorf("run-wide row = %q", lines[4])
	}
}

func TestWriteTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, &engine.RunResult{}, true)
	if !strings.Contains(buf.String(), "No collections processed.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteRegions(t *testing.T) {
	var buf bytes.Buffer
	WriteRegions(&buf, []region.Alias{
		{Name: "newengland", Description: "New England", Members: []string{"usa-ma", "usa-ct", "usa-ri"}},
	}, true)
	out := buf.String()
	if !strings.Contains(out, "newengland") || !strings.Contains(out, "usa-ma usa-ct usa-ri") {
		t.Errorf("output = %q", out)
	}
}

func TestWriteTree(t *testing.T) {
	node := &boundary.Node{
		Path:       "usa/nc",
		Attributes: []string{"cities", "roads"},
		Children: []*boundary.Node{
			{Path: "usa/nc/raleigh", Attributes: []string{"landmarks"}},
			{Path: "usa/nc/durham"},
		},
	}

	var buf bytes.Buffer
	WriteTree(&buf, node, true)
	out := buf.String()
	for _, want := range []string{"usa-nc", "[cities, roads]", "usa-nc-raleigh", "[landmarks]", "usa-nc-durham"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTree_EmptyNode(t *testing.T) {
	var buf bytes.Buffer
	WriteTree(&buf, &boundary.Node{Path: "atf"}, true)
	if !strings.Contains(buf.String(), "atf has no attributes") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, sampleResult(), "out.txt", true)
	out := buf.String()
	for _, want := range []string{"Nodes: 1", "Collections: 3 (1 empty)", "15 candidates, 14 unique", "! 1 warnings", "Wrote 14 words to out.txt"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteJSON_OmitsWords(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := decoded["words"]; ok {
		t.Error("words should not be serialized")
	}
	if _, ok := decoded["collections"]; !ok {
		t.Error("collections missing")
	}
}

func TestWriteWordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := WriteWordsFile(path, []string{"alpha", "beta"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "alpha\nbeta\n" {
		t.Errorf("file = %q", data)
	}
}

func TestProgress_Collection(t *testing.T) {
	var status, words bytes.Buffer
	p := NewProgress(&status, false, false).EchoWords(&words)

	p.Collection(engine.Collection{Node: "usa-nc", Kind: "cities", Count: 2}, []string{"Cary", "Raleigh"})
	p.Collection(engine.Collection{Node: "usa-nc", Kind: "roads"}, nil)

	if words.String() != "Cary\nRaleigh\n" {
		t.Errorf("echoed words = %q", words.String())
	}
	if !strings.Contains(status.String(), "Total cities in usa-nc: 2") {
		t.Errorf("status = %q", status.String())
	}
	if !strings.Contains(status.String(), "No roads in usa-nc found") {
		t.Errorf("status = %q", status.String())
	}
}

func TestProgress_Silent(t *testing.T) {
	var status bytes.Buffer
	p := NewProgress(&status, true, true)

	p.Stage(1, 5, "Resolving inputs...")
	p.Detail("detail")
	p.Warn("warn")
	p.Collection(engine.Collection{Kind: "religion", Count: 1}, []string{"x"})
	p.Complete()

	if status.Len() != 0 {
		t.Errorf("silent progress wrote %q", status.String())
	}
}
