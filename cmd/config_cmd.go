package cmd

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/advq/internal/formatter"
	"github.com/oakwood-commons/advq/pkg/filters"
	"github.com/oakwood-commons/advq/pkg/settings"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective filter configuration",
		Long: `Config prints the filters advq recognises: the built-in demo filters, or the
file given with --filters after validation and label defaulting. The YAML
output is a valid --filters file.`,
		Example: "  advq config\n  advq config --filters my-filters.toml -o json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := parseOutputFormat(o.output)
			w := cmd.OutOrStdout()
			switch format {
			case outputTree:
				fmt.Fprint(w, formatter.FiltersTree(o.set))
				return nil
			case outputTable:
				rows := [][]string{}
				for _, d := range o.set.Definitions() {
					values := make([]string, 0, len(d.Options))
					for _, opt := range d.Options {
						values = append(values, opt.Value)
					}
					rows = append(rows, []string{d.Key, d.Label, strings.Join(values, ", ")})
				}
				fmt.Fprint(w, renderTable([]string{"KEY", "LABEL", "OPTIONS"}, rows, noColorFor(cmd)))
				return nil
			case outputJSON:
				return encodeFilters(cmd, o.set, filters.FormatJSON)
			case outputTOML:
				return encodeFilters(cmd, o.set, filters.FormatTOML)
			}
			return encodeFilters(cmd, o.set, filters.FormatYAML)
		},
	}
}

func encodeFilters(cmd *cobra.Command, set *filters.Set, format filters.Format) error {
	data, err := filters.Encode(set, format)
	if err != nil {
		return err
	}
	out := string(data)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

type versionOutput struct {
	settings.VersionInfo `yaml:",inline"`
	GoVersion            string `json:"goVersion" yaml:"goVersion" toml:"goVersion"`
	Platform             string `json:"platform" yaml:"platform" toml:"platform"`
	Filters              int    `json:"filters" yaml:"filters" toml:"filters"`
}

func newVersionCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := versionOutput{
				VersionInfo: settings.VersionInformation,
				GoVersion:   runtime.Version(),
				Platform:    runtime.GOOS + "/" + runtime.GOARCH,
				Filters:     o.set.Len(),
			}
			format, _ := parseOutputFormat(o.output)
			if ok, err := writeStructured(cmd.OutOrStdout(), format, out); ok {
				return err
			}
			if format == outputTable {
				fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"FIELD", "VALUE"}, [][]string{
					{"version", out.BuildVersion},
					{"commit", out.Commit},
					{"built", out.BuildTime},
					{"go", out.GoVersion},
					{"platform", out.Platform},
					{"filters", strconv.Itoa(out.Filters)},
				}, noColorFor(cmd)))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
			return nil
		},
	}
}
