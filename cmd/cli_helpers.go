package cmd

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/advq/pkg/query"
)

const caretFlag = "caret"

// addCaretFlag registers --caret on cmd.
func addCaretFlag(cmd *cobra.Command, caret *int) {
	cmd.Flags().IntVar(caret, caretFlag, query.CaretUnknown,
		"caret position as a rune offset into the query; -1 means unknown")
	cmd.Flags().Lookup(caretFlag).DefValue = "end of query"
}

// resolveCaret returns the caret to use for value. An unset flag means the end
// of the query, where a text field leaves the caret after typing.
func resolveCaret(flags *pflag.FlagSet, value string, caret int) (int, error) {
	if !flags.Changed(caretFlag) {
		return utf8.RuneCountInString(value), nil
	}
	if caret < query.CaretUnknown {
		return 0, fmt.Errorf("invalid --caret %d (must be >= -1)", caret)
	}
	return caret, nil
}
