package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vulnverified/wordsmith/internal/attribute"
	"github.com/vulnverified/wordsmith/internal/boundary"
	"github.com/vulnverified/wordsmith/internal/pipeline"
	"github.com/vulnverified/wordsmith/internal/scrape"
	"github.com/vulnverified/wordsmith/internal/username"
	"github.com/vulnverified/wordsmith/internal/wordlist"
)

// Config holds the runtime configuration for a wordsmith run.
type Config struct {
	// Inputs are location tokens or region aliases. A bare number selects
	// that many of the most populous countries.
	Inputs []string
	Kinds  []attribute.Kind

	Religion  bool
	Language  bool
	Usernames username.Options

	ScrapeURL  string
	ScrapeList string // file with one URL per line

	Concurrency int
	Logger      *slog.Logger
}

// Stages holds the injectable stage implementations.
type Stages struct {
	Resolver  AliasResolver
	Validator BoundaryValidator
	Collector AttributeCollector
	Usernames UsernameGenerator
	Scraper   Scraper
	Pipeline  Transformer
}

// ProgressReporter is called by the engine to report stage progress.
type ProgressReporter interface {
	Stage(num, total int, msg string)
	Detail(msg string)
	Warn(msg string)
}

const totalStages = 5

// task is one collection to run through the pipeline.
type task struct {
	node string
	kind string
	raw  bool
	load func() ([]string, error)
}

type taskResult struct {
	words []string
}

// Run executes the full wordsmith pipeline.
func Run(ctx context.Context, cfg Config, stages Stages, progress ProgressReporter) (*RunResult, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	result := &RunResult{
		Inputs:    cfg.Inputs,
		StartedAt: time.Now(),
	}
	acc := pipeline.NewAccumulator()

	// Stage 1: Expand inputs and region aliases.
	progress.Stage(1, totalStages, "Resolving inputs...")
	tokens, err := expandCounts(cfg.Inputs, stages.Validator)
	if err != nil {
		return nil, err
	}
	if stages.Resolver != nil {
		tokens, err = stages.Resolver.ResolveAll(tokens)
		if err != nil {
			return nil, fmt.Errorf("resolving region aliases: %w", err)
		}
	}
	if len(tokens) > 0 {
		progress.Detail(fmt.Sprintf("%d location tokens: %s", len(tokens), strings.Join(tokens, ", ")))
	}

	// Stage 2: Validate boundaries. An unknown token stops the run.
	progress.Stage(2, totalStages, "Validating boundaries...")
	var nodes []string
	if len(tokens) > 0 {
		nodes, err = stages.Validator.Validate(tokens)
		if err != nil {
			return nil, err
		}
	}
	result.Nodes = make([]string, len(nodes))
	for i, n := range nodes {
		result.Nodes[i] = boundary.Token(n)
	}
	progress.Detail(fmt.Sprintf("%d nodes validated", len(nodes)))

	// Stage 3: Per-node collections.
	tasks := nodeTasks(cfg, stages, nodes)
	progress.Stage(3, totalStages, fmt.Sprintf("Collecting %d attribute sets across %d nodes...", len(tasks), len(nodes)))
	if err := runTasks(ctx, cfg, stages, tasks, acc, result, progress, logger); err != nil {
		return nil, err
	}

	// Stage 4: Religion and language, once for the whole run.
	if cfg.Religion || cfg.Language {
		progress.Stage(4, totalStages, "Collecting religion and language corpora...")
		religions, languages, err := profiles(stages.Collector, nodes)
		if err != nil {
			return nil, err
		}

		var run []task
		if cfg.Religion {
			run = append(run, task{kind: string(attribute.Religion), load: func() ([]string, error) {
				return stages.Collector.Religions(religions)
			}})
		}
		if cfg.Language {
			run = append(run, task{kind: string(attribute.Language), load: func() ([]string, error) {
				return stages.Collector.Languages(languages)
			}})
		}
		if err := runTasks(ctx, cfg, stages, run, acc, result, progress, logger); err != nil {
			return nil, err
		}
	}

	// Stage 5: Scraping, one URL at a time.
	if cfg.ScrapeURL != "" || cfg.ScrapeList != "" {
		progress.Stage(5, totalStages, "Scraping...")
		if err := runScrape(ctx, cfg, stages, acc, result, progress, logger); err != nil {
			return nil, err
		}
	}

	result.Words = acc.Finalize()
	result.CompletedAt = time.Now()
	result.DurationSecs = result.CompletedAt.Sub(result.StartedAt).Seconds()
	result.Summary = buildSummary(result)

	return result, nil
}

// expandCounts replaces numeric inputs with the most populous countries.
func expandCounts(inputs []string, v BoundaryValidator) ([]string, error) {
	var out []string
	for _, in := range inputs {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		if !boundary.IsCount(in) {
			out = append(out, in)
			continue
		}
		n, err := strconv.Atoi(in)
		if err != nil {
			return nil, fmt.Errorf("invalid country count %q: %w", in, err)
		}
		countries, err := v.MostPopulous(n)
		if err != nil {
			return nil, fmt.Errorf("selecting most populous countries: %w", err)
		}
		out = append(out, countries...)
	}
	return out, nil
}

func nodeTasks(cfg Config, stages Stages, nodes []string) []task {
	want := make(map[attribute.Kind]bool, len(cfg.Kinds))
	for _, k := range cfg.Kinds {
		want[k] = true
	}

	var tasks []task
	for _, node := range nodes {
		for _, kind := range attribute.NodeKinds {
			if !want[kind] {
				continue
			}
			tasks = append(tasks, task{
				node: node,
				kind: string(kind),
				load: func() ([]string, error) { return stages.Collector.Collect(node, kind) },
			})
		}
		if len(cfg.Usernames.Schemes) > 0 && stages.Usernames != nil {
			tasks = append(tasks, task{
				node: node,
				kind: KindUsernames,
				raw:  true,
				load: func() ([]string, error) { return stages.Usernames.Generate(node, cfg.Usernames) },
			})
		}
	}
	return tasks
}

// runTasks runs tasks with bounded parallelism and reports them in task
// order.
func runTasks(ctx context.Context, cfg Config, stages Stages, tasks []task, acc *pipeline.Accumulator,
	result *RunResult, progress ProgressReporter, logger *slog.Logger) error {
	if len(tasks) == 0 {
		return nil
	}

	limit := cfg.Concurrency
	if limit < 1 {
		limit = 1
	}

	results := make([]taskResult, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, t := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			input, err := t.load()
			if err != nil {
				return fmt.Errorf("collecting %s for %s: %w", t.kind, displayNode(t.node), err)
			}
			words, err := stages.Pipeline.Transform(t.node, input, t.raw)
			if err != nil {
				return fmt.Errorf("processing %s for %s: %w", t.kind, displayNode(t.node), err)
			}
			acc.Add(words)
			results[i] = taskResult{words: words}
			logger.Debug("collection processed",
				slog.String("node", t.node),
				slog.String("kind", t.kind),
				slog.Int("input", len(input)),
				slog.Int("output", len(words)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, t := range tasks {
		record(result, progress, Collection{Node: boundary.Token(t.node), Kind: t.kind}, results[i].words)
	}
	return nil
}

func record(result *RunResult, progress ProgressReporter, c Collection, words []string) {
	c.Count = len(words)
	result.Collections = append(result.Collections, c)

	if cr, ok := progress.(CollectionReporter); ok {
		cr.Collection(c, words)
		return
	}
	if c.Count == 0 {
		progress.Detail(fmt.Sprintf("No %s found", c.Label()))
		return
	}
	progress.Detail(fmt.Sprintf("Total %s: %d", c.Label(), c.Count))
}

// profiles gathers the religion and language names of every node's
// country, each name once, in first-seen order.
func profiles(c AttributeCollector, nodes []string) (religions, languages []string, err error) {
	seenCountry := make(map[string]bool)
	seenRel := make(map[string]bool)
	seenLang := make(map[string]bool)

	for _, node := range nodes {
		country := boundary.Country(node)
		if seenCountry[country] {
			continue
		}
		seenCountry[country] = true

		p, ok, err := c.Profile(node)
		if err != nil {
			return nil, nil, fmt.Errorf("reading profile for %s: %w", country, err)
		}
		if !ok {
			continue
		}
		for _, r := range p.Religions() {
			if !seenRel[r] {
				seenRel[r] = true
				religions = append(religions, r)
			}
		}
		for _, l := range p.Languages() {
			if !seenLang[l] {
				seenLang[l] = true
				languages = append(languages, l)
			}
		}
	}
	return religions, languages, nil
}

func runScrape(ctx context.Context, cfg Config, stages Stages, acc *pipeline.Accumulator,
	result *RunResult, progress ProgressReporter, logger *slog.Logger) error {
	if stages.Scraper == nil {
		return fmt.Errorf("no scraper configured")
	}

	if cfg.ScrapeURL != "" {
		progress.Detail(fmt.Sprintf("Scraping %s", cfg.ScrapeURL))
		words, err := stages.Scraper.Scrape(ctx, cfg.ScrapeURL)
		if err != nil {
			if !errors.Is(err, scrape.ErrUnreachable) {
				return fmt.Errorf("scraping %s: %w", cfg.ScrapeURL, err)
			}
			warn(result, progress, fmt.Sprintf("Unable to connect to %s", cfg.ScrapeURL))
		}
		if err := transformScrape(stages, acc, result, progress, cfg.ScrapeURL, words); err != nil {
			return err
		}
	}

	if cfg.ScrapeList != "" {
		urls, err := wordlist.Load(cfg.ScrapeList)
		if err != nil {
			return err
		}
		var targets []string
		for _, u := range urls {
			if u = strings.TrimSpace(u); u != "" {
				targets = append(targets, u)
			}
		}

		var all []string
		for i, u := range targets {
			if err := ctx.Err(); err != nil {
				return err
			}
			progress.Detail(fmt.Sprintf("Scraping %s (%d/%d)", u, i+1, len(targets)))
			words, err := stages.Scraper.Scrape(ctx, u)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				warn(result, progress, fmt.Sprintf("Skipping %s: %s", u, err))
				continue
			}
			logger.Debug("url scraped", slog.String("url", u), slog.Int("words", len(words)))
			progress.Detail(fmt.Sprintf("Total words from %s: %d", u, len(words)))
			all = append(all, words...)
		}
		if err := transformScrape(stages, acc, result, progress, cfg.ScrapeList, all); err != nil {
			return err
		}
	}
	return nil
}

func transformScrape(stages Stages, acc *pipeline.Accumulator, result *RunResult, progress ProgressReporter,
	source string, words []string) error {
	out, err := stages.Pipeline.Transform("", words, false)
	if err != nil {
		return fmt.Errorf("processing scrape of %s: %w", source, err)
	}
	acc.Add(out)
	record(result, progress, Collection{Kind: KindScrape + " of " + source}, out)
	return nil
}

func warn(result *RunResult, progress ProgressReporter, msg string) {
	result.Warnings = append(result.Warnings, msg)
	progress.Warn(msg)
}

func displayNode(node string) string {
	if node == "" {
		return "run"
	}
	return boundary.Token(node)
}

func buildSummary(result *RunResult) Summary {
	s := Summary{
		NodeCount:       len(result.Nodes),
		CollectionCount: len(result.Collections),
		UniqueWords:     len(result.Words),
	}
	for _, c := range result.Collections {
		if c.Count == 0 {
			s.EmptyCollections++
		}
		s.CandidateWords += c.Count
	}
	return s
}
