// Package engine orchestrates a wordsmith run.
package engine

import (
	"context"
	"time"

	"github.com/vulnverified/wordsmith/internal/attribute"
	"github.com/vulnverified/wordsmith/internal/username"
)

// RunResult is the top-level output of a wordsmith run.
type RunResult struct {
	Inputs       []string     `json:"inputs"`
	Nodes        []string     `json:"nodes"`
	StartedAt    time.Time    `json:"started_at"`
	CompletedAt  time.Time    `json:"completed_at"`
	DurationSecs float64      `json:"duration_secs"`
	Collections  []Collection `json:"collections"`
	Warnings     []string     `json:"warnings,omitempty"`
	Summary      Summary      `json:"summary"`

	// Words is the finalized word list: sorted, distinct, no empty entries.
	Words []string `json:"-"`
}

// Collection is one word collection after the pipeline.
type Collection struct {
	Node  string `json:"node,omitempty"` // user-facing token, empty for run-wide collections
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// Label names the collection for display.
func (c Collection) Label() string {
	if c.Node == "" {
		return c.Kind
	}
	return c.Kind + " in " + c.Node
}

// Summary provides aggregate counts for the run.
type Summary struct {
	NodeCount        int `json:"nodes"`
	CollectionCount  int `json:"collections"`
	EmptyCollections int `json:"empty_collections"`
	CandidateWords   int `json:"candidate_words"`
	UniqueWords      int `json:"unique_words"`
}

// Collection kinds that are not attribute kinds.
const (
	KindUsernames = "usernames"
	KindScrape    = "scrape"
)

// AliasResolver expands region aliases into location tokens.
type AliasResolver interface {
	ResolveAll(tokens []string) ([]string, error)
}

// BoundaryValidator maps location tokens onto hierarchy nodes.
type BoundaryValidator interface {
	Validate(tokens []string) ([]string, error)
	MostPopulous(n int) ([]string, error)
}

// AttributeCollector reads attribute collections and country profiles.
type AttributeCollector interface {
	Collect(node string, kind attribute.Kind) ([]string, error)
	Profile(node string) (attribute.Profile, bool, error)
	Religions(names []string) ([]string, error)
	Languages(names []string) ([]string, error)
}

// UsernameGenerator builds username candidates for a node.
type UsernameGenerator interface {
	Generate(node string, opts username.Options) ([]string, error)
}

// Scraper returns the words found at a URL.
type Scraper interface {
	Scrape(ctx context.Context, url string) ([]string, error)
}

// Transformer is the word pipeline every collection passes through.
type Transformer interface {
	Transform(node string, input []string, raw bool) ([]string, error)
}

// CollectionReporter is an optional interface that ProgressReporter
// implementations can satisfy to receive every finished collection.
type CollectionReporter interface {
	Collection(c Collection, words []string)
}
