package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/advq/internal/completion"
	"github.com/oakwood-commons/advq/pkg/query"
)

type wordOutput struct {
	Word  string `json:"word" yaml:"word" toml:"word"`
	Start int    `json:"start" yaml:"start" toml:"start"`
	End   int    `json:"end" yaml:"end" toml:"end"`
	Caret int    `json:"caret" yaml:"caret" toml:"caret"`
}

type positionOutput struct {
	State string `json:"state" yaml:"state" toml:"state"`
	Key   string `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
	Word  string `json:"word" yaml:"word" toml:"word"`
}

type suggestionOutput struct {
	Kind   string `json:"kind" yaml:"kind" toml:"kind"`
	Text   string `json:"text" yaml:"text" toml:"text"`
	Label  string `json:"label" yaml:"label" toml:"label"`
	Key    string `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty" toml:"detail,omitempty"`
}

type suggestionsOutput struct {
	Position positionOutput     `json:"position" yaml:"position" toml:"position"`
	Items    []suggestionOutput `json:"items" yaml:"items" toml:"items"`
}

func toPositionOutput(p query.Position) positionOutput {
	return positionOutput{State: p.State.String(), Key: p.Key, Word: p.Word}
}

func newParseCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse QUERY",
		Short: "Split a query into filter values and remaining free text",
		Long: `Parse reads key:value tokens whose key is a configured filter and whose value
is not empty. Every configured key is reported, with an empty list when the
query does not mention it. All other tokens are kept, in order, as free text.`,
		Example: "  advq parse 'status:active foo type:admin'\n  advq parse 'status:active status:pending' -o json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := query.Parse(args[0], o.set.Keys())
			o.log.V(1).Info("parsed query", "active", res.Filters.Active(), "remaining", res.Remaining)
			return printResult(cmd, o, res)
		},
	}
}

func newWordCmd(o *rootOptions) *cobra.Command {
	var caret int
	cmd := &cobra.Command{
		Use:     "word QUERY",
		Short:   "Print the space-delimited word under the caret",
		Example: "  advq word 'foo status:ac bar' --caret 10",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveCaret(cmd.Flags(), args[0], caret)
			if err != nil {
				return err
			}
			start, end := query.WordSpan(args[0], c)
			out := wordOutput{Word: query.WordAt(args[0], c), Start: start, End: end, Caret: c}
			format, _ := parseOutputFormat(o.output)
			if ok, err := writeStructured(cmd.OutOrStdout(), format, out); ok {
				return err
			}
			if format == outputTable {
				fmt.Fprint(cmd.OutOrStdout(), renderTable(
					[]string{"WORD", "START", "END", "CARET"},
					[][]string{{strconv.Quote(out.Word), strconv.Itoa(start), strconv.Itoa(end), strconv.Itoa(c)}},
					noColorFor(cmd)))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Word)
			return nil
		},
	}
	addCaretFlag(cmd, &caret)
	return cmd
}

func newClassifyCmd(o *rootOptions) *cobra.Command {
	var caret int
	cmd := &cobra.Command{
		Use:   "classify QUERY",
		Short: "Report whether the caret awaits a filter key or a value",
		Long: `Classify looks at the word under the caret. A word that is exactly "key:"
for a configured filter awaits a value of that filter. Anything else, including
a partly typed value such as "status:act", awaits a key.`,
		Example: "  advq classify 'status:'\n  advq classify 'foo status:' --caret 2",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveCaret(cmd.Flags(), args[0], caret)
			if err != nil {
				return err
			}
			pos := query.ClassifyAt(args[0], c, o.set.Keys())
			format, _ := parseOutputFormat(o.output)
			if ok, err := writeStructured(cmd.OutOrStdout(), format, toPositionOutput(pos)); ok {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pos.String())
			return nil
		},
	}
	addCaretFlag(cmd, &caret)
	return cmd
}

func newSuggestCmd(o *rootOptions) *cobra.Command {
	var (
		caret  int
		prefix bool
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "suggest QUERY",
		Short: "List the filter keys or values to offer at the caret",
		Long: `Suggest prints the dropdown an input would show: every filter key while the
caret awaits a key, or the options of one filter while it awaits that
filter's value. With --prefix only keys starting with the current word are
listed.`,
		Example: "  advq suggest ''\n  advq suggest 'status:'\n  advq suggest 'ty' --prefix -o json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveCaret(cmd.Flags(), args[0], caret)
			if err != nil {
				return err
			}
			opts := completion.DefaultOptions()
			opts.PrefixMatch = prefix
			opts.MaxResults = limit
			engine := completion.NewEngine(completion.NewFilterProvider(o.set, opts))
			sugg := engine.GetCompletions(args[0], c)
			o.log.V(1).Info("suggestions", "position", sugg.Position.String(), "count", len(sugg.Items))

			out := suggestionsOutput{Position: toPositionOutput(sugg.Position), Items: make([]suggestionOutput, 0, len(sugg.Items))}
			for _, it := range sugg.Items {
				out.Items = append(out.Items, suggestionOutput{
					Kind:   it.Kind.String(),
					Text:   it.Text,
					Label:  it.Display,
					Key:    it.Key,
					Detail: it.Detail,
				})
			}
			format, _ := parseOutputFormat(o.output)
			if ok, err := writeStructured(cmd.OutOrStdout(), format, out); ok {
				return err
			}
			rows := make([][]string, 0, len(out.Items))
			for _, it := range out.Items {
				rows = append(rows, []string{it.Text, it.Label, it.Detail})
			}
			if format == outputTable {
				fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"INSERT", "LABEL", "DETAIL"}, rows, noColorFor(cmd)))
				return nil
			}
			if !runSettings(cmd).IsQuiet {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", sugg.Position.String())
			}
			for _, it := range out.Items {
				fmt.Fprintln(cmd.OutOrStdout(), it.Text)
			}
			return nil
		},
	}
	addCaretFlag(cmd, &caret)
	cmd.Flags().BoolVar(&prefix, "prefix", false, "only list keys starting with the word under the caret")
	cmd.Flags().IntVar(&limit, "max", 0, "maximum number of suggestions (0 = all)")
	return cmd
}

func newInsertKeyCmd(o *rootOptions) *cobra.Command {
	var caret int
	cmd := &cobra.Command{
		Use:   "insert-key QUERY KEY",
		Short: "Replace the word under the caret with KEY:",
		Long: `Insert-key applies a selected filter key. The first word equal to the word
under the caret is replaced by "KEY:"; when the caret is on an empty word,
"KEY:" is inserted as a new word. The new query and caret are printed.`,
		Example: "  advq insert-key 'foo sta bar' status --caret 6\n  advq insert-key 'foo ' type",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveCaret(cmd.Flags(), args[0], caret)
			if err != nil {
				return err
			}
			if _, ok := o.set.Lookup(args[1]); !ok {
				o.log.Info("key is not a configured filter", "key", args[1])
			}
			return printEdit(cmd, o, query.InsertFilterKey(args[0], c, args[1]))
		},
	}
	addCaretFlag(cmd, &caret)
	return cmd
}

func newInsertValueCmd(o *rootOptions) *cobra.Command {
	var caret int
	cmd := &cobra.Command{
		Use:   "insert-value QUERY VALUE",
		Short: "Complete the key:... word under the caret with VALUE",
		Long: `Insert-value applies a selected filter value. The word under the caret must
contain a colon; the first word equal to it becomes "key:VALUE " with a
trailing space. Without a colon the query is returned unchanged.`,
		Example: "  advq insert-value 'status: foo' active --caret 7",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveCaret(cmd.Flags(), args[0], caret)
			if err != nil {
				return err
			}
			return printEdit(cmd, o, query.InsertFilterValue(args[0], c, args[1]))
		},
	}
	addCaretFlag(cmd, &caret)
	return cmd
}

func printEdit(cmd *cobra.Command, o *rootOptions, e query.Edit) error {
	format, _ := parseOutputFormat(o.output)
	if ok, err := writeStructured(cmd.OutOrStdout(), format, e); ok {
		return err
	}
	if format == outputTable {
		fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"QUERY", "CARET"},
			[][]string{{strconv.Quote(e.Value), strconv.Itoa(e.Caret)}}, noColorFor(cmd)))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%q\ncaret: %d\n", e.Value, e.Caret)
	return nil
}
