// Package settings provides build metadata, per-run configuration, and context
// helpers shared by the advq CLI and its packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "advq"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string `json:"commit" yaml:"commit"`
	BuildVersion string `json:"version" yaml:"version"`
	BuildTime    string `json:"buildTime" yaml:"buildTime"`
}

// Run holds the settings of a single invocation.
type Run struct {
	MinLogLevel int8
	LogFile     string
	FiltersPath string
	Output      string
	IsQuiet     bool
	NoColor     bool
}

// NewCliParams returns the defaults used by the CLI before flags are applied.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Output:      "text",
		IsQuiet:     false,
		NoColor:     false,
	}
}
