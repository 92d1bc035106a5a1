package output

import (
	"fmt"
	"io"

	"github.com/vulnverified/wordsmith/internal/engine"
)

// Version is set via ldflags at build time.
var Version = "dev"

// WriteHeader prints the wordsmith banner.
func WriteHeader(w io.Writer, noColor bool) {
	if noColor {
		fmt.Fprintf(w, "wordsmith %s - geographic wordlist builder\n\n", Version)
	} else {
		fmt.Fprintf(w, "\033[1mwordsmith %s\033[0m - geographic wordlist builder\n\n", Version)
	}
}

// WriteSummary prints the post-run summary. outPath is the word file that
// was written, if any.
func WriteSummary(w io.Writer, result *engine.RunResult, outPath string, noColor bool) {
	s := result.Summary

	fmt.Fprintln(w)
	if noColor {
		fmt.Fprintf(w, "Nodes: %d\n", s.NodeCount)
		fmt.Fprintf(w, "Collections: %d (%d empty)\n", s.CollectionCount, s.EmptyCollections)
		fmt.Fprintf(w, "Words: %d candidates, %d unique\n", s.CandidateWords, s.UniqueWords)
	} else {
		fmt.Fprintf(w, "\033[1mNodes:\033[0m %d\n", s.NodeCount)
		fmt.Fprintf(w, "\033[1mCollections:\033[0m %d (%d empty)\n", s.CollectionCount, s.EmptyCollections)
		fmt.Fprintf(w, "\033[1mWords:\033[0m %d candidates, %d unique\n", s.CandidateWords, s.UniqueWords)
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(w)
		if noColor {
			fmt.Fprintf(w, "! %d warnings\n", len(result.Warnings))
		} else {
			fmt.Fprintf(w, "\033[33m!\033[0m %d warnings\n", len(result.Warnings))
		}
		for _, msg := range result.Warnings {
			fmt.Fprintf(w, "  %s\n", msg)
		}
	}

	if outPath != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Wrote %d words to %s\n", s.UniqueWords, outPath)
	}
}
