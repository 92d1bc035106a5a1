package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vulnverified/wordsmith/internal/attribute"
	"github.com/vulnverified/wordsmith/internal/boundary"
	"github.com/vulnverified/wordsmith/internal/config"
	"github.com/vulnverified/wordsmith/internal/engine"
	"github.com/vulnverified/wordsmith/internal/logger"
	"github.com/vulnverified/wordsmith/internal/output"
	"github.com/vulnverified/wordsmith/internal/pipeline"
	"github.com/vulnverified/wordsmith/internal/region"
	"github.com/vulnverified/wordsmith/internal/scrape"
	"github.com/vulnverified/wordsmith/internal/username"
)

// Set via ldflags at build time.
var version = "dev"

const regionsFile = "regions.csv"

// flags holds every command line option.
type flags struct {
	inputs []string

	all, other, cia, cities, colleges, landmarks bool
	language, allNames, firstNames, lastNames    bool
	phone, roads, religion, sports, counties     bool
	zip                                          bool

	schemes   map[string]*bool
	truncate  int
	maxUsers  int
	nameDepth int

	url        string
	urlFile    string
	useCewl    bool
	crawlDepth int

	outFile string
	quiet   bool
	pipe    pipeline.Options
	mangle  bool

	showChildren bool
	showExamples bool
	showRegions  bool

	dataDir     string
	concurrency int
	jsonOutput  bool
	noColor     bool
	silent      bool
	verbose     bool
	logLevel    string
}

func main() {
	output.Version = version

	env, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f := &flags{schemes: make(map[string]*bool)}

	rootCmd := &cobra.Command{
		Use:   "wordsmith",
		Short: "Build targeted wordlists from geographic data",
		Long: "Build targeted wordlists from geographic and demographic data: names, roads, " +
			"landmarks, sports teams, zip and area codes, religious and language corpora, " +
			"generated usernames and scraped web pages.",
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.inputs = append(f.inputs, args...)
			return run(cmd, env, f)
		},
	}

	fl := rootCmd.Flags()
	fl.SortFlags = false

	fl.StringSliceVarP(&f.inputs, "input", "I", nil, "Comma-delimited list of inputs, see -E for examples")

	fl.BoolVarP(&f.all, "all", "a", false, "Grab all attributes")
	fl.BoolVarP(&f.other, "other", "b", false, "Grab other miscellaneous attributes")
	fl.BoolVarP(&f.cia, "cia", "e", false, "Grab demographics compiled by the CIA")
	fl.BoolVarP(&f.cities, "cities", "c", false, "Grab all city names")
	fl.BoolVarP(&f.colleges, "colleges", "f", false, "Grab all colleges")
	fl.BoolVarP(&f.landmarks, "landmarks", "l", false, "Grab all landmarks")
	fl.BoolVarP(&f.language, "language", "v", false, "Grab the most popular language(s)")
	fl.BoolVarP(&f.allNames, "all-names", "N", false, "Grab all first names and last names")
	fl.BoolVarP(&f.firstNames, "first-names", "G", false, "Grab all first names")
	fl.BoolVarP(&f.lastNames, "last-names", "L", false, "Grab all last names")
	fl.BoolVarP(&f.phone, "phone", "p", false, "Grab all area codes")
	fl.BoolVarP(&f.roads, "roads", "r", false, "Grab all road names")
	fl.BoolVarP(&f.religion, "religion", "g", false, "Grab the most popular religious text(s)")
	fl.BoolVarP(&f.sports, "teams", "t", false, "Grab all major sports teams")
	fl.BoolVarP(&f.counties, "counties", "u", false, "Grab all counties")
	fl.BoolVarP(&f.zip, "zip", "z", false, "Grab all zip codes")

	for _, s := range username.All {
		v := new(bool)
		f.schemes[s.Name] = v
		fl.BoolVar(v, s.Name, false, fmt.Sprintf("Generate usernames like %s", s.Example))
	}
	fl.IntVar(&f.truncate, "truncate", 0, "Truncate usernames at LEN characters")
	fl.IntVar(&f.maxUsers, "max-users", 0, "Max number of usernames to generate per node")
	fl.IntVar(&f.nameDepth, "name-depth", username.DefaultDepth, "First/last names to iterate over (0 uses all)")

	fl.StringVarP(&f.url, "domain", "d", "", "URL of a web application to scrape")
	fl.StringVarP(&f.urlFile, "infile", "i", "", "File containing multiple URLs to scrape")
	fl.BoolVar(&f.useCewl, "cewl", false, "Scrape with an installed CeWL instead of the built-in crawler")
	fl.IntVar(&f.crawlDepth, "crawl-depth", scrape.DefaultDepth, "Link hops followed by the built-in crawler")

	fl.StringVarP(&f.outFile, "output", "o", "", "File to write the final wordlist to")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "Don't print generated words, use with -o")
	fl.IntVarP(&f.pipe.MinLength, "min-length", "k", 0, "Minimum length of word to include")
	fl.IntVarP(&f.pipe.MaxLength, "max-length", "n", 0, "Maximum length of word to include")
	fl.BoolVarP(&f.pipe.Complexity, "complexity", "D", false, "Words must meet default Windows complexity (8 char min, 3 of 4 classes)")
	fl.BoolVarP(&f.pipe.Lowercase, "lowercase", "j", false, "Convert all words to lowercase")
	fl.BoolVarP(&f.pipe.Specials, "specials", "w", false, "Add words with special characters removed")
	fl.BoolVarP(&f.pipe.Spaces, "spaces", "x", false, "Add words with spaces removed")
	fl.BoolVarP(&f.pipe.Split, "split", "y", false, "Split words by space and add")
	fl.BoolVarP(&f.mangle, "mangle", "m", false, "Add all permutations (-w, -x, -y)")
	fl.BoolVarP(&f.pipe.PrependPhone, "prepend-phones", "P", false, "Prepend area codes to each word")
	fl.BoolVarP(&f.pipe.AppendPhone, "append-phones", "A", false, "Append area codes to each word")
	fl.BoolVarP(&f.pipe.PrependZip, "prepend-zips", "X", false, "Prepend zip codes to each word")
	fl.BoolVarP(&f.pipe.AppendZip, "append-zips", "Z", false, "Append zip codes to each word")
	fl.StringVarP(&f.pipe.PrependWordlist, "prepend-wordlist", "W", "", "Prepend the words in FILE to each word")
	fl.StringVarP(&f.pipe.AppendWordlist, "append-wordlist", "Y", "", "Append the words in FILE to each word")
	fl.IntVar(&f.pipe.MaxCombinations, "max-combinations", 0, "Cap on words added by prepend/append per collection (0 = unlimited)")

	fl.BoolVarP(&f.showChildren, "show-child-nodes", "C", false, "Show all child nodes for each input")
	fl.BoolVarP(&f.showExamples, "examples", "E", false, "Show usage examples")
	fl.BoolVarP(&f.showRegions, "show-regions", "R", false, "Show region aliases")

	fl.StringVar(&f.dataDir, "data-dir", env.DataDir, "Data directory")
	fl.IntVar(&f.concurrency, "concurrency", env.Concurrency, "Collections processed in parallel")
	fl.BoolVar(&f.jsonOutput, "json", false, "Output the run result as JSON to stdout")
	fl.BoolVar(&f.noColor, "no-color", false, "Disable terminal colors")
	fl.BoolVar(&f.silent, "silent", false, "No banner, progress or summary")
	fl.BoolVar(&f.verbose, "verbose", false, "Verbose progress")
	fl.StringVar(&f.logLevel, "log-level", env.LogLevel, "Diagnostic log level (debug, info, warn, error)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("wordsmith {{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, env config.Env, f *flags) error {
	// Respect NO_COLOR and plain pipes.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		f.noColor = true
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		f.noColor = true
	}

	log, err := newLogger(env, f.logLevel)
	if err != nil {
		return err
	}

	if f.showExamples {
		writeExamples(cmd.OutOrStdout())
		return nil
	}

	table, err := loadRegions(f.dataDir, log)
	if err != nil {
		return err
	}
	if f.showRegions {
		output.WriteRegions(cmd.OutOrStdout(), table.Aliases(), f.noColor)
		return nil
	}

	validator := boundary.NewValidator(f.dataDir)
	store := attribute.NewStore(f.dataDir)

	if f.showChildren {
		return showChildren(cmd, table, validator, f)
	}

	if f.mangle {
		f.pipe.Mangle()
	}

	cfg := engine.Config{
		Inputs:      f.inputs,
		Kinds:       f.kinds(),
		Religion:    f.all || f.religion,
		Language:    f.all || f.language,
		Usernames:   f.usernames(),
		ScrapeURL:   f.url,
		ScrapeList:  f.urlFile,
		Concurrency: f.concurrency,
		Logger:      log,
	}
	if len(cfg.Inputs) == 0 && cfg.ScrapeURL == "" && cfg.ScrapeList == "" {
		return fmt.Errorf("no input given: use -I, -d or -i (see --help and -E)")
	}
	if len(cfg.Inputs) > 0 && len(cfg.Kinds) == 0 && !cfg.Religion && !cfg.Language && len(cfg.Usernames.Schemes) == 0 {
		return fmt.Errorf("no attributes selected for %s (see --help)", strings.Join(cfg.Inputs, ","))
	}

	// User wordlists are checked here, before any collection starts.
	pipe, err := pipeline.New(f.pipe, store)
	if err != nil {
		return err
	}
	pipe.Logger = log
	log.Debug("pipeline built",
		slog.Any("stages", pipe.Stages()),
		slog.Int("min_length", pipe.Options().MinLength))

	stages := engine.Stages{
		Resolver:  table,
		Validator: validator,
		Collector: store,
		Usernames: username.NewGenerator(store),
		Pipeline:  pipe,
	}
	if cfg.ScrapeURL != "" || cfg.ScrapeList != "" {
		scraper, err := newScraper(env, f)
		if err != nil {
			return err
		}
		stages.Scraper = scraper
	}

	// Set up context with signal handling for clean Ctrl+C.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, cleaning up...")
		cancel()
	}()

	// Progress output.
	showProgress := !f.jsonOutput && !f.silent
	progress := output.NewProgress(os.Stderr, f.verbose, !showProgress)
	if !f.quiet && !f.jsonOutput {
		progress.EchoWords(os.Stdout)
	}

	if showProgress {
		output.WriteHeader(os.Stderr, f.noColor)
	}

	result, err := engine.Run(ctx, cfg, stages, progress)
	if err != nil {
		return err
	}

	if showProgress {
		progress.Complete()
	}

	if f.outFile != "" {
		if err := output.WriteWordsFile(f.outFile, result.Words); err != nil {
			return err
		}
	}

	if f.jsonOutput {
		return output.WriteJSON(os.Stdout, result)
	}
	if showProgress {
		output.WriteTable(os.Stderr, result, f.noColor)
		output.WriteSummary(os.Stderr, result, f.outFile, f.noColor)
	}
	return nil
}

func newLogger(env config.Env, level string) (*slog.Logger, error) {
	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	format, err := logger.ParseFormat(env.LogFormat)
	if err != nil {
		return nil, err
	}
	return logger.New(
		logger.WithLevel(lvl),
		logger.WithFormat(format),
		logger.WithOutput(os.Stderr),
	), nil
}

// loadRegions reads the region table. A data directory without one has no
// aliases.
func loadRegions(dataDir string, log *slog.Logger) (*region.Table, error) {
	path := filepath.Join(dataDir, regionsFile)
	table, err := region.Load(path)
	if err == nil {
		return table, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	log.Warn("region table not found", slog.String("path", path))
	return region.Parse(strings.NewReader(""))
}

func showChildren(cmd *cobra.Command, table *region.Table, v *boundary.Validator, f *flags) error {
	if len(f.inputs) == 0 {
		return fmt.Errorf("-C requires inputs (-I)")
	}
	tokens, err := table.ResolveAll(f.inputs)
	if err != nil {
		return err
	}
	nodes, err := v.Validate(tokens)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		tree, err := v.Children(n)
		if err != nil {
			return err
		}
		output.WriteTree(cmd.OutOrStdout(), tree, f.noColor)
	}
	return nil
}

func newScraper(env config.Env, f *flags) (engine.Scraper, error) {
	if f.useCewl {
		c, err := scrape.LookCewl(env.CewlPath)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	c := scrape.NewCrawler(env.UserAgent)
	c.Depth = f.crawlDepth
	return c, nil
}

// kinds returns the per-node attribute kinds selected by flags.
func (f *flags) kinds() []attribute.Kind {
	if f.all {
		return attribute.NodeKinds
	}
	selected := map[attribute.Kind]bool{
		attribute.Demographics: f.cia,
		attribute.Cities:       f.cities,
		attribute.Colleges:     f.colleges,
		attribute.Counties:     f.counties,
		attribute.Landmarks:    f.landmarks,
		attribute.FirstNames:   f.firstNames || f.allNames,
		attribute.LastNames:    f.lastNames || f.allNames,
		attribute.Other:        f.other,
		attribute.AreaCodes:    f.phone,
		attribute.Roads:        f.roads,
		attribute.Sports:       f.sports,
		attribute.ZipCodes:     f.zip,
	}
	var out []attribute.Kind
	for _, k := range attribute.NodeKinds {
		if selected[k] {
			out = append(out, k)
		}
	}
	return out
}

func (f *flags) usernames() username.Options {
	opts := username.Options{
		Depth:    f.nameDepth,
		Truncate: f.truncate,
		MaxCount: f.maxUsers,
	}
	for _, s := range username.All {
		if *f.schemes[s.Name] {
			opts.Schemes = append(opts.Schemes, s)
		}
	}
	return opts
}
