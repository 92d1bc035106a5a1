// Package pipeline expands, filters and deduplicates word collections.
package pipeline

// ComplexityMinLength is the minimum length implied by the complexity
// filter when no explicit minimum is configured.
const ComplexityMinLength = 8

// Options selects the stages of a pipeline. The zero value passes words
// through unchanged apart from deduplication and sorting.
type Options struct {
	Split    bool // add every whitespace-separated token of each line
	Specials bool // add copies with non-alphanumerics removed
	Spaces   bool // add copies with spaces removed

	PrependPhone bool
	AppendPhone  bool
	PrependZip   bool
	AppendZip    bool

	PrependWordlist string // file whose lines are prefixed to every word
	AppendWordlist  string // file whose lines are suffixed to every word

	MinLength  int // 0 disables
	MaxLength  int // 0 disables
	Complexity bool
	Lowercase  bool

	// MaxCombinations caps the words emitted by prepend/append stages per
	// collection. 0 means unlimited.
	MaxCombinations int
}

// Mangle enables splitting and both stripping stages.
func (o *Options) Mangle() {
	o.Split = true
	o.Specials = true
	o.Spaces = true
}

// Normalize applies option couplings: the complexity filter implies a
// minimum length of ComplexityMinLength unless one was given.
func (o Options) Normalize() Options {
	if o.Complexity && o.MinLength == 0 {
		o.MinLength = ComplexityMinLength
	}
	return o
}

// Wordlists returns the user-supplied wordlist paths that are set.
func (o Options) Wordlists() []string {
	var out []string
	if o.PrependWordlist != "" {
		out = append(out, o.PrependWordlist)
	}
	if o.AppendWordlist != "" {
		out = append(out, o.AppendWordlist)
	}
	return out
}
