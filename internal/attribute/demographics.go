package attribute

import (
	"sort"
	"strings"
)

// demographicSymbols are removed from every token, in this order.
var demographicSymbols = []string{
	",", "$", ";", ".", "!", "(", ")", "*", "%", "@", "^", "&", ":", "'",
	"\"", "/", "\\", "|", "[", "]", "=", "”", "“", "?", "<a", "+",
}

// navigationArtifact marks leftover ranking links in the source documents.
const navigationArtifact = "hrefrankorder"

// ExtractDemographics turns a templated demographics document into a
// sorted list of unique words.
func ExtractDemographics(doc string) []string {
	seen := make(map[string]bool)
	var words []string

	for _, tok := range strings.Fields(doc) {
		for _, sym := range demographicSymbols {
			tok = strings.ReplaceAll(tok, sym, "")
		}
		if tok == "" || strings.Contains(tok, navigationArtifact) {
			continue
		}
		if !seen[tok] {
			seen[tok] = true
			words = append(words, tok)
		}
	}

	sort.Strings(words)
	return words
}
