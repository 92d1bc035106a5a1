// Package alphabet provides the letter sets used as name-initial stand-ins.
package alphabet

// Lower is the lowercase latin alphabet, a through z.
// It replaces a name list when only an initial is wanted.
var Lower = []string{
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j",
	"k", "l", "m", "n", "o", "p", "q", "r", "s", "t",
	"u", "v", "w", "x", "y", "z",
}

// Initials returns a fresh copy of Lower so callers may modify it.
func Initials() []string {
	out := make([]string, len(Lower))
	copy(out, Lower)
	return out
}
