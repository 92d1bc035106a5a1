package pipeline

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vulnverified/wordsmith/internal/attribute"
	"github.com/vulnverified/wordsmith/internal/wordlist"
)

// CodeSource supplies the area and zip codes for a node.
type CodeSource interface {
	Codes(node string, kind attribute.Kind) ([]string, error)
}

// Pipeline is an ordered list of enabled stages built once per run.
type Pipeline struct {
	Logger *slog.Logger

	opts   Options
	stages []Stage
}

// New builds the stage list for opts. User-supplied wordlists are loaded
// here, so a missing file fails before any collection starts.
func New(opts Options, codes CodeSource) (*Pipeline, error) {
	opts = opts.Normalize()
	if err := wordlist.Require(opts.Wordlists()...); err != nil {
		return nil, err
	}

	p := &Pipeline{
		Logger: slog.New(slog.DiscardHandler),
		opts:   opts,
	}

	if opts.Split {
		p.stages = append(p.stages, splitStage{})
	}
	if opts.Specials {
		p.stages = append(p.stages, stripStage{name: "specials", rewrite: stripSpecials})
	}
	if opts.Spaces {
		p.stages = append(p.stages, stripStage{name: "spaces", rewrite: stripSpaces})
	}

	if opts.PrependPhone || opts.AppendPhone || opts.PrependZip || opts.AppendZip {
		if codes == nil {
			return nil, fmt.Errorf("code prepend/append requires a code source")
		}
	}
	if opts.PrependPhone || opts.AppendPhone {
		p.stages = append(p.stages, combineStage{
			name:   "phone",
			load:   func(node string) ([]string, error) { return codes.Codes(node, attribute.AreaCodes) },
			prefix: opts.PrependPhone,
			suffix: opts.AppendPhone,
		})
	}
	if opts.PrependZip || opts.AppendZip {
		p.stages = append(p.stages, combineStage{
			name:   "zip",
			load:   func(node string) ([]string, error) { return codes.Codes(node, attribute.ZipCodes) },
			prefix: opts.PrependZip,
			suffix: opts.AppendZip,
		})
	}
	if opts.PrependWordlist != "" {
		words, err := wordlist.Load(opts.PrependWordlist)
		if err != nil {
			return nil, err
		}
		p.stages = append(p.stages, combineStage{name: "prepend-wordlist", load: fixed(words), prefix: true})
	}
	if opts.AppendWordlist != "" {
		words, err := wordlist.Load(opts.AppendWordlist)
		if err != nil {
			return nil, err
		}
		p.stages = append(p.stages, combineStage{name: "append-wordlist", load: fixed(words), suffix: true})
	}

	if opts.MinLength > 0 || opts.MaxLength > 0 {
		p.stages = append(p.stages, lengthFilter(opts.MinLength, opts.MaxLength))
	}
	if opts.Complexity {
		p.stages = append(p.stages, filterStage{name: "complexity", keep: Complex})
	}
	if opts.Lowercase {
		p.stages = append(p.stages, lowercaseStage{})
	}

	return p, nil
}

func fixed(words []string) func(string) ([]string, error) {
	return func(string) ([]string, error) { return words, nil }
}

// Options returns the normalized options the pipeline was built from.
func (p *Pipeline) Options() Options {
	return p.opts
}

// Stages returns the names of the enabled stages in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Transform runs input through every enabled stage. node scopes the code
// lists used by phone and zip stages. Unless raw is set the result is
// deduplicated and sorted; raw keeps generation order and duplicates.
func (p *Pipeline) Transform(node string, input []string, raw bool) ([]string, error) {
	b := &Batch{
		Node:  node,
		Input: input,
		Base:  append([]string(nil), input...),
		Words: append([]string(nil), input...),
		limit: p.opts.MaxCombinations,
	}

	for _, s := range p.stages {
		if err := s.Apply(b); err != nil {
			return nil, fmt.Errorf("%s stage: %w", s.Name(), err)
		}
	}

	if b.truncated {
		p.Logger.Warn("combination cap reached",
			slog.String("node", node),
			slog.Int("limit", p.opts.MaxCombinations))
	}

	if raw {
		return b.Words, nil
	}
	return Unique(b.Words), nil
}

// Unique returns the sorted distinct values of words.
func Unique(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	out := append([]string(nil), words...)
	sort.Strings(out)
	j := 0
	for i := 1; i < len(out); i++ {
		if out[i] != out[j] {
			j++
			out[j] = out[i]
		}
	}
	return out[:j+1]
}
