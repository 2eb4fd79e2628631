package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/advq/internal/completion"
	"github.com/oakwood-commons/advq/internal/ui"
	"github.com/oakwood-commons/advq/pkg/filters"
	"github.com/oakwood-commons/advq/pkg/logger"
	"github.com/oakwood-commons/advq/pkg/settings"
)

// errShowHelp is returned when the root command runs without a mode to run in.
var errShowHelp = errors.New("no query or mode provided")

// rootOptions holds the flags of one command tree.
type rootOptions struct {
	filtersPath string
	output      string
	logLevel    string
	logFile     string
	debug       bool
	noColor     bool
	quiet       bool

	interactive bool
	snapshot    bool
	startKeys   []string
	width       int
	height      int
	theme       string
	prefix      bool
	maxResults  int
	unfocused   bool

	// resolved in PersistentPreRunE
	set *filters.Set
	log logr.Logger
}

// Execute runs the advq command tree.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   settings.CliBinaryName + " [query]",
		Short: "Parse, complete and apply inline key:value search queries",
		Long: `advq works with advanced search queries: free text mixed with key:value
filter tokens, for example "status:active type:admin alice".

Subcommands expose each step on its own (parse, word, classify, suggest,
insert-key, insert-value, search). With -i the query is edited in an
interactive input whose dropdown offers filter keys, then the values of the
key being typed.`,
		Example: "\n  advq parse 'status:active alice'\n  advq suggest 'status:' \n  advq insert-key 'foo sta' status --caret 7\n  advq search 'type:admin' --input users.json\n  advq -i 'status:'",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRoot(cmd, opts, args)
			if errors.Is(err, errShowHelp) {
				return cmd.Help()
			}
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.filtersPath, "filters", "", "filter configuration file (yaml, toml or json); defaults to the built-in status/type/group filters")
	pf.StringVarP(&opts.output, "output", "o", "text", "output format: text|table|json|yaml|toml|tree")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level: debug|info|warn|error or a zap level number")
	pf.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")
	pf.BoolVar(&opts.debug, "debug", false, "shorthand for --log-level debug; shows the last key in interactive mode")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable color output")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-essential output")

	f := root.Flags()
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "edit the query in an interactive input with key/value suggestions")
	f.BoolVar(&opts.snapshot, "snapshot", false, "render a single frame of the interactive input and exit; honors --width/--height")
	f.StringArrayVar(&opts.startKeys, "press", nil, "simulate keys on startup. Use <Key> for special keys (<Tab>, <Down>, <Up>, <Enter>, <Esc>, <Left>, <Home>, <Blur>, <Focus>); literal text types normally")
	f.IntVar(&opts.width, "width", 0, "width in columns (0 = terminal width)")
	f.IntVar(&opts.height, "height", 0, "height in rows (0 = terminal height)")
	f.StringVar(&opts.theme, "theme", "dark", "theme: "+strings.Join(ui.ThemeNames(), "|"))
	f.BoolVar(&opts.prefix, "prefix", false, "only suggest keys starting with the word under the caret")
	f.IntVar(&opts.maxResults, "max", 0, "maximum number of suggestions (0 = all)")
	f.BoolVar(&opts.unfocused, "unfocused", false, "start with the input blurred (dropdown closed)")
	_ = f.MarkHidden("unfocused")

	root.Version = cliVersionString()
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddCommand(
		newParseCmd(opts),
		newWordCmd(opts),
		newClassifyCmd(opts),
		newSuggestCmd(opts),
		newInsertKeyCmd(opts),
		newInsertValueCmd(opts),
		newSearchCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(opts),
	)
	return root
}

// setup builds the logger, loads the filter set and stores per-run settings in
// the command context.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if _, err := parseOutputFormat(o.output); err != nil {
		return err
	}
	level, err := parseLogLevel(o.logLevel)
	if err != nil {
		return err
	}
	if o.debug {
		level = -1
	}

	logOpts := logger.Options{Level: level}
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		// Left open: the global logger writes to it until exit.
		logOpts.Output = f
	}
	lgr := logger.Setup(logOpts)
	lgr = logger.WithValues(lgr, logger.CommandKey, cmd.Name())
	o.log = *lgr

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	run := settings.NewCliParams()
	run.MinLogLevel = level
	run.LogFile = o.logFile
	run.FiltersPath = o.filtersPath
	run.Output = o.output
	run.IsQuiet = o.quiet
	run.NoColor = o.noColor
	ctx = settings.IntoContext(logger.WithLogger(ctx, lgr), run)
	cmd.SetContext(ctx)

	set, err := filters.Load(o.filtersPath)
	if err != nil {
		return err
	}
	o.set = set
	lgr.V(1).Info("filters loaded", "path", o.filtersPath, "keys", set.Keys())
	return nil
}

func (o *rootOptions) completionOptions() completion.Options {
	opts := completion.DefaultOptions()
	opts.PrefixMatch = o.prefix
	opts.MaxResults = o.maxResults
	return opts
}

func (o *rootOptions) uiConfig(query string) ui.Config {
	return ui.Config{
		Filters:    o.set,
		Completion: o.completionOptions(),
		Query:      query,
		Width:      o.width,
		Height:     o.height,
		Theme:      o.theme,
		NoColor:    o.noColor,
		Debug:      o.debug,
		StartKeys:  o.startKeys,
		Logger:     o.log,
		Unfocused:  o.unfocused,
	}
}

func runRoot(cmd *cobra.Command, o *rootOptions, args []string) error {
	initial := ""
	if len(args) == 1 {
		initial = args[0]
	}
	out := cmd.OutOrStdout()

	if o.snapshot {
		cfg := o.uiConfig(initial)
		cfg.NoColor = noColorFor(cmd)
		view, err := ui.RenderSnapshot(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, view)
		return nil
	}
	if !o.interactive {
		return errShowHelp
	}

	res, err := ui.Run(cmd.Context(), o.uiConfig(initial))
	if err != nil {
		return err
	}
	if !res.Submitted {
		o.log.V(1).Info("interactive session cancelled")
		return nil
	}
	return printResult(cmd, o, res.Result)
}

// parseLogLevel accepts zap level names or numbers.
func parseLogLevel(s string) (int8, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return 0, nil
	case "debug":
		return -1, nil
	case "warn", "warning":
		return 1, nil
	case "error":
		return 2, nil
	}
	n, err := strconv.ParseInt(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid --log-level %q (expected debug|info|warn|error or a number)", s)
	}
	return int8(n), nil
}

func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s)", settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime)
}
