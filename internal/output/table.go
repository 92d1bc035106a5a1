package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vulnverified/wordsmith/internal/engine"
	"github.com/vulnverified/wordsmith/internal/region"
)

// WriteTable renders the word count of every collection as a styled
// terminal table.
func WriteTable(w io.Writer, result *engine.RunResult, noColor bool) {
	if len(result.Collections) == 0 {
		fmt.Fprintln(w, "\nNo collections processed.")
		return
	}

	var rows [][]string
	for _, c := range result.Collections {
		node := c.Node
		if node == "" {
			node = "-"
		}
		rows = append(rows, []string{node, truncate(c.Kind, 50), strconv.Itoa(c.Count)})
	}

	fmt.Fprintln(w)
	render(w, []string{"Node", "Collection", "Words"}, rows, noColor)
}

// WriteRegions lists the aliases of a region table.
func WriteRegions(w io.Writer, aliases []region.Alias, noColor bool) {
	if len(aliases) == 0 {
		fmt.Fprintln(w, "No regions defined.")
		return
	}

	var rows [][]string
	for _, a := range aliases {
		rows = append(rows, []string{a.Name, truncate(a.Description, 40), truncate(strings.Join(a.Members, " "), 60)})
	}
	render(w, []string{"Region", "Description", "Members"}, rows, noColor)
}

func render(w io.Writer, headers []string, rows [][]string, noColor bool) {
	if noColor {
		writeSimpleTable(w, headers, rows)
		return
	}

	t := table.New().
		Headers(headers...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
			}
			return lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		})

	for _, row := range rows {
		t.Row(row...)
	}

	fmt.Fprintln(w, t.Render())
}

func writeSimpleTable(w io.Writer, headers []string, rows [][]string) {
	// Calculate column widths.
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	// Print header.
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(w, " | ")
		}
		fmt.Fprintf(w, "%-*s", widths[i], h)
	}
	fmt.Fprintln(w)

	// Separator.
	for i, width := range widths {
		if i > 0 {
			fmt.Fprint(w, "-+-")
		}
		fmt.Fprint(w, strings.Repeat("-", width))
	}
	fmt.Fprintln(w)

	// Rows.
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, " | ")
			}
			fmt.Fprintf(w, "%-*s", widths[i], cell)
		}
		fmt.Fprintln(w)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
