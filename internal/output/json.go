package output

import (
	"encoding/json"
	"io"

	"github.com/vulnverified/wordsmith/internal/engine"
)

// WriteJSON writes the run result as indented JSON to w.
func WriteJSON(w io.Writer, result *engine.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
