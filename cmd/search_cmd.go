package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/advq/internal/formatter"
	"github.com/oakwood-commons/advq/internal/limiter"
	"github.com/oakwood-commons/advq/internal/search"
	"github.com/oakwood-commons/advq/pkg/loader"
	"github.com/oakwood-commons/advq/pkg/logger"
	"github.com/oakwood-commons/advq/pkg/query"
)

func newSearchCmd(o *rootOptions) *cobra.Command {
	var (
		input    string
		explain  bool
		limits   limiter.Config
		maxDepth int
	)
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Filter records with a query",
		Long: `Search parses QUERY and keeps the records it matches. Values given for the
same key are alternatives; different keys must all match. Every free-text
word must appear, ignoring case, in one of the record's values.

Records are read from --input (JSON, YAML, TOML, NDJSON or multi-document
YAML; "-" reads stdin). A top-level list is searched element by element.`,
		Example: "  advq search 'status:active alice' --input users.json\n  cat users.ndjson | advq search 'type:admin' --input -\n  advq search 'status:active status:pending' --explain",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := limits.Validate(); err != nil {
				return err
			}
			lgr := logger.FromContext(cmd.Context())

			ev, err := search.NewEvaluator(o.set.Keys())
			if err != nil {
				return err
			}
			res := query.Parse(args[0], o.set.Keys())
			prog, err := ev.Compile(res)
			if err != nil {
				return err
			}
			if explain {
				fmt.Fprintln(cmd.OutOrStdout(), prog.Expression())
				return nil
			}
			if input == "" {
				return fmt.Errorf("--input is required (use - for stdin)")
			}

			records, err := loader.LoadFile(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			matched := search.Filter(cmd.Context(), records, prog)
			lgr.V(1).Info("search finished", "records", len(records), "matched", len(matched), "expression", prog.Expression())
			matched = limiter.Apply(limits, matched)

			format, _ := parseOutputFormat(o.output)
			switch format {
			case outputText, outputTable:
				// JSON lines keep one record per line for piping.
				for _, r := range matched {
					if err := writeCompactJSON(cmd.OutOrStdout(), r); err != nil {
						return err
					}
				}
				return nil
			case outputTree:
				fmt.Fprint(cmd.OutOrStdout(), formatter.RecordsTree(matched, formatter.TreeOptions{MaxDepth: maxDepth}))
				return nil
			case outputTOML:
				// TOML has no top-level array.
				_, err = writeStructured(cmd.OutOrStdout(), format, map[string]interface{}{"records": matched})
				return err
			}
			_, err = writeStructured(cmd.OutOrStdout(), format, matched)
			return err
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "records file (json, yaml, toml, ndjson); - for stdin")
	cmd.Flags().BoolVar(&explain, "explain", false, "print the generated CEL expression instead of matching")
	cmd.Flags().IntVar(&limits.Limit, "limit", 0, "show at most N matching records")
	cmd.Flags().IntVar(&limits.Offset, "offset", 0, "skip the first N matching records")
	cmd.Flags().IntVar(&limits.Tail, "tail", 0, "show the last N matching records (exclusive with --limit)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "limit nesting in -o tree output (0 = unlimited)")
	return cmd
}
