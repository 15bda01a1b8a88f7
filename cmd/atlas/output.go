package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	formatTable = "table"
	formatJSON  = "json"

	// minFlexWidth keeps the flexible column readable on narrow terminals.
	minFlexWidth = 15
	// maxIDWidth caps id columns; longer ids wrap.
	maxIDWidth = 40
)

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
	}
}

func outputJSON(cmd *cobra.Command, v interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newTable(cmd *cobra.Command) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	return t
}

func getTerminalWidth() int {
	// Try to get terminal width from stdout
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	// Default width if terminal size cannot be determined
	return 80
}

// flexWidth is the width left for the one flexible column of a table once
// the fixed columns and the borders (roughly 3 chars per column) are paid for.
func flexWidth(termWidth int, fixed ...int) int {
	used := (len(fixed)+1)*3 + 1
	for _, w := range fixed {
		used += w
	}
	if w := termWidth - used; w > minFlexWidth {
		return w
	}
	return minFlexWidth
}

// columnWidth is the display width of the widest value, capped at limit.
func columnWidth(header string, values []string, limit int) int {
	width := runewidth.StringWidth(header)
	for _, v := range values {
		if w := runewidth.StringWidth(v); w > width {
			width = w
		}
	}
	if limit > 0 && width > limit {
		return limit
	}
	return width
}

// wrapString wraps a string to fit within maxWidth, accounting for multi-byte characters
func wrapString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}

	s = strings.TrimSpace(s)
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	var result strings.Builder
	var currentLine strings.Builder
	currentWidth := 0

	for _, r := range s {
		charWidth := runewidth.RuneWidth(r)

		if currentWidth+charWidth > maxWidth && currentWidth > 0 {
			result.WriteString(currentLine.String())
			result.WriteString("\n")
			currentLine.Reset()
			currentWidth = 0
		}

		currentLine.WriteRune(r)
		currentWidth += charWidth
	}

	if currentLine.Len() > 0 {
		result.WriteString(currentLine.String())
	}

	return result.String()
}

func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

// shortPath keeps the last two path elements, enough to tell files apart
// within a section.
func shortPath(path string) string {
	if path == "" {
		return "-"
	}
	dir, file := filepath.Split(filepath.Clean(path))
	parent := filepath.Base(dir)
	if parent == "." || parent == string(filepath.Separator) {
		return file
	}
	return filepath.Join(parent, file)
}

func checkMark(ok bool) string {
	if ok {
		return "✓"
	}
	return ""
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
