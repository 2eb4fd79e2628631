package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/advq/internal/formatter"
	"github.com/oakwood-commons/advq/pkg/query"
	"github.com/oakwood-commons/advq/pkg/settings"
)

type outputFormat string

const (
	outputText  outputFormat = "text"
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
	outputYAML  outputFormat = "yaml"
	outputTOML  outputFormat = "toml"
	outputTree  outputFormat = "tree"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return outputText, nil
	case outputText, outputTable, outputJSON, outputYAML, outputTOML, outputTree:
		return f, nil
	}
	return "", fmt.Errorf("invalid --output %q (expected text|table|json|yaml|toml|tree)", s)
}

// writeStructured encodes v as json, yaml or toml. It reports false for the
// text, table and tree formats, which each command renders itself.
func writeStructured(w io.Writer, format outputFormat, v interface{}) (bool, error) {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return true, enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	case outputTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return true, enc.Encode(v)
	}
	return false, nil
}

// writeCompactJSON writes v as a single JSON line.
func writeCompactJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// renderTable draws rows under header with columns padded to their display width.
func renderTable(header []string, rows [][]string, noColor bool) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i := 0; i < len(r) && i < len(widths); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(r[i]))
		}
	}

	line := func(cells []string) string {
		padded := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			padded[i] = runewidth.FillRight(cell, widths[i])
		}
		return strings.TrimRight(strings.Join(padded, "  "), " ")
	}

	headStyle := lipgloss.NewStyle()
	if !noColor {
		headStyle = headStyle.Bold(true).Underline(true)
	}
	var b strings.Builder
	b.WriteString(headStyle.Render(line(header)))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(line(r))
		b.WriteString("\n")
	}
	return b.String()
}

// printResult writes a parse result in the selected format.
func printResult(cmd *cobra.Command, o *rootOptions, res query.Result) error {
	w := cmd.OutOrStdout()
	format, err := parseOutputFormat(o.output)
	if err != nil {
		return err
	}
	if ok, err := writeStructured(w, format, res); ok {
		return err
	}

	ordered := o.set.Keys()

	if format == outputTree {
		fmt.Fprint(w, formatter.ResultTree(ordered, res))
		return nil
	}
	if format == outputTable {
		rows := make([][]string, 0, len(ordered)+1)
		for _, k := range ordered {
			rows = append(rows, []string{k, strings.Join(res.Filters.Values(k), ", ")})
		}
		rows = append(rows, []string{"(text)", res.Remaining})
		fmt.Fprint(w, renderTable([]string{"FILTER", "VALUES"}, rows, noColorFor(cmd)))
		return nil
	}

	for _, k := range ordered {
		fmt.Fprintf(w, "%s: [%s]\n", k, strings.Join(res.Filters.Values(k), " "))
	}
	fmt.Fprintf(w, "remaining: %q\n", res.Remaining)
	return nil
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runSettings returns the settings stored by the root command, or the defaults
// when the command runs without them.
func runSettings(cmd *cobra.Command) *settings.Run {
	if ctx := cmd.Context(); ctx != nil {
		if run, ok := settings.FromContext(ctx); ok && run != nil {
			return run
		}
	}
	return settings.NewCliParams()
}

func noColorFor(cmd *cobra.Command) bool {
	return runSettings(cmd).NoColor || !isTerminal(cmd.OutOrStdout())
}
