// Package main is the entry point for omnicpp — one front door to the host's
// C/C++ build environment.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/WyattAu/omnicpp/internal/engine"
	"github.com/WyattAu/omnicpp/internal/output"
	"github.com/WyattAu/omnicpp/internal/platform"
	"github.com/WyattAu/omnicpp/internal/policy"
	"github.com/WyattAu/omnicpp/internal/profile"
	"github.com/WyattAu/omnicpp/internal/types"
)

// version is set at build time via -ldflags. The default is a dev fallback
// for plain `go install` or `go run` usage.
var version = "1.0.0"

// Config holds all parsed CLI flag values.
type Config struct {
	Action     string
	Step       string
	BuildType  string
	Target     string
	PolicyFile string
	CFlags     string
	CXXFlags   string
	LDFlags    string
	Defines    string
	Format     string
	NoColor    bool
	OutputFile string
	Quiet      bool
	Verbose    bool
	Debug      bool
}

// parseFlags parses command-line arguments into a Config using a dedicated FlagSet,
// keeping the global flag.CommandLine clean for testability.
func parseFlags(args []string) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("omnicpp", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.Action, "action", "detect", "What to do: detect, validate, profile, command")
	fs.StringVar(&cfg.Action, "a", "detect", "What to do (shorthand)")
	fs.StringVar(&cfg.Step, "step", "configure", "Pipeline step for -action command: configure, build, test, package")
	fs.StringVar(&cfg.BuildType, "build-type", "debug", "Build type: debug, release, relwithdebinfo, minsizerel")
	fs.StringVar(&cfg.BuildType, "b", "debug", "Build type (shorthand)")
	fs.StringVar(&cfg.Target, "target", "", "Build or test target name")
	fs.StringVar(&cfg.PolicyFile, "policy", "omnicpp.yaml", "Path to the selection policy file")
	fs.StringVar(&cfg.PolicyFile, "p", "omnicpp.yaml", "Path to the selection policy file (shorthand)")
	fs.StringVar(&cfg.CFlags, "cflags", "", "Extra C compiler flags (space-separated, appended last)")
	fs.StringVar(&cfg.CXXFlags, "cxxflags", "", "Extra C++ compiler flags (space-separated, appended last)")
	fs.StringVar(&cfg.LDFlags, "ldflags", "", "Extra linker flags (space-separated, appended last)")
	fs.StringVar(&cfg.Defines, "define", "", "Extra preprocessor defines (space-separated)")
	fs.StringVar(&cfg.Format, "format", "text", "Output format: text, json, jsonl")
	fs.StringVar(&cfg.Format, "f", "text", "Output format (shorthand)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write output to file (default: stdout)")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write output to file (shorthand)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Suppress output, exit code only (0 = ready, 1 = problems, 2 = errors)")
	fs.BoolVar(&cfg.Quiet, "q", false, "Suppress output (shorthand)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Show capability details for every toolchain")
	fs.BoolVar(&cfg.Debug, "debug", false, "Enable debug diagnostic output")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "  omnicpp — one front door to the host's C/C++ build environment\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "  Usage: omnicpp [options]\n\n")
		fmt.Fprintf(os.Stderr, "  Options:\n")
		fmt.Fprintf(os.Stderr, "    -a,  --action <mode>      detect, validate, profile, command (default: detect)\n")
		fmt.Fprintf(os.Stderr, "         --step <step>        Step for --action command: configure, build, test, package\n")
		fmt.Fprintf(os.Stderr, "    -b,  --build-type <type>  debug, release, relwithdebinfo, minsizerel (default: debug)\n")
		fmt.Fprintf(os.Stderr, "         --target <name>      Build or test target name\n")
		fmt.Fprintf(os.Stderr, "    -p,  --policy <file>      Selection policy file (default: omnicpp.yaml)\n")
		fmt.Fprintf(os.Stderr, "         --cflags <flags>     Extra C compiler flags, appended last\n")
		fmt.Fprintf(os.Stderr, "         --cxxflags <flags>   Extra C++ compiler flags, appended last\n")
		fmt.Fprintf(os.Stderr, "         --ldflags <flags>    Extra linker flags, appended last\n")
		fmt.Fprintf(os.Stderr, "         --define <names>     Extra preprocessor defines\n")
		fmt.Fprintf(os.Stderr, "    -f,  --format <type>      Output format: text, json, jsonl (default: text)\n")
		fmt.Fprintf(os.Stderr, "         --no-color           Disable colored output\n")
		fmt.Fprintf(os.Stderr, "    -o,  --output <file>      Write output to file (default: stdout)\n")
		fmt.Fprintf(os.Stderr, "    -q,  --quiet              Suppress output, exit code only (0/1/2)\n")
		fmt.Fprintf(os.Stderr, "         --verbose            Show capability details for every toolchain\n")
		fmt.Fprintf(os.Stderr, "         --debug              Enable debug diagnostic output\n")
		fmt.Fprintf(os.Stderr, "\n  Examples:\n")
		fmt.Fprintf(os.Stderr, "    omnicpp                                   Detect toolchains and backends\n")
		fmt.Fprintf(os.Stderr, "    omnicpp -a validate                       Check the host is ready to build\n")
		fmt.Fprintf(os.Stderr, "    omnicpp -a validate -q && ninja           Scripting with exit code\n")
		fmt.Fprintf(os.Stderr, "    omnicpp -a profile -b release             Generate a release profile\n")
		fmt.Fprintf(os.Stderr, "    omnicpp -a profile -o release.profile     Write the profile to a file\n")
		fmt.Fprintf(os.Stderr, "    omnicpp -a command --step configure       Print the configure command\n")
		fmt.Fprintf(os.Stderr, "    omnicpp -a command --step test --target unit\n")
		fmt.Fprintf(os.Stderr, "    omnicpp -a detect -f json                 Machine-readable detection report\n")
		fmt.Fprintf(os.Stderr, "    omnicpp -a detect -f jsonl                One record per line for pipelines\n")
		fmt.Fprintf(os.Stderr, "    omnicpp -p ci/omnicpp.yaml -a validate    Custom selection policy\n")
		fmt.Fprintf(os.Stderr, "\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	os.Exit(run(cfg))
}

// run executes the requested action and returns an exit code.
func run(cfg *Config) int {
	start := time.Now()

	if code := validateFlags(cfg); code >= 0 {
		return code
	}

	isDumb := output.IsDumbTerm()
	if cfg.NoColor || cfg.Format != "text" || cfg.OutputFile != "" || isDumb {
		color.NoColor = true
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		// Piped output never gets escape codes.
		color.NoColor = true
	}
	platform.DebugMode = cfg.Debug

	pol, err := policy.New().Load(cfg.PolicyFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng := engine.New(pol)
	report := &output.Report{
		Action:    cfg.Action,
		Version:   version,
		Timestamp: start,
	}

	code := dispatch(ctx, cfg, eng, report)
	if code >= 0 {
		return code
	}

	// The error list always lands on stderr so scripts can capture it
	// independently of the decorated report.
	if report.Validation != nil && !report.Validation.Valid {
		fmt.Fprintln(os.Stderr, (&types.ValidationFailure{Errors: report.Validation.Errors}).Error())
	}

	if cfg.Quiet {
		return quietCode(report)
	}
	return writeReport(cfg, report, isDumb)
}

// dispatch fills the report for the requested action. Returns -1 to proceed
// to output, or an exit code on early failure.
func dispatch(ctx context.Context, cfg *Config, eng *engine.Engine, report *output.Report) int {
	probes := eng.Probes(ctx)
	report.Platform = probes.Platform

	switch cfg.Action {
	case "detect":
		report.Toolchains = probes.Toolchains
		report.Backends = probes.Backends
		if tc, err := eng.SelectToolchain(ctx); err == nil {
			report.Toolchain = &tc
		}
		if be, err := eng.SelectBackend(ctx); err == nil {
			report.Backend = &be
		}
		return -1

	case "validate":
		report.Toolchains = probes.Toolchains
		report.Backends = probes.Backends
		v := eng.Validate(ctx)
		report.Validation = &v
		return -1

	case "profile":
		p, err := eng.Profile(ctx, types.BuildType(cfg.BuildType), overridesFrom(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
			return 1
		}
		report.Toolchain = &p.Toolchain
		report.Profile = &p
		report.ProfileText = string(profile.Marshal(p))
		return -1

	case "command":
		spec, err := eng.Command(ctx, types.Action(cfg.Step), types.BuildType(cfg.BuildType), cfg.Target, overridesFrom(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
			return 1
		}
		report.Command = &spec
		return -1
	}

	// validateFlags rejects unknown actions before dispatch.
	return 2
}

// knownActions and knownSteps feed flag validation and typo suggestions.
var (
	knownActions = []string{"detect", "validate", "profile", "command"}
	knownSteps   = []string{"configure", "build", "test", "package"}
)

// validateFlags checks --action, --step, --build-type, and --format values.
// Returns -1 if valid, or an exit code (2) if invalid.
func validateFlags(cfg *Config) int {
	if !contains(knownActions, cfg.Action) {
		fmt.Fprintf(os.Stderr, "  ✗ Invalid --action value %q (must be detect, validate, profile, or command)\n", cfg.Action)
		printSuggestions(cfg.Action, knownActions)
		return 2
	}
	if !contains(knownSteps, cfg.Step) {
		fmt.Fprintf(os.Stderr, "  ✗ Invalid --step value %q (must be configure, build, test, or package)\n", cfg.Step)
		printSuggestions(cfg.Step, knownSteps)
		return 2
	}
	if !types.IsKnownBuildType(types.BuildType(cfg.BuildType)) {
		fmt.Fprintf(os.Stderr, "  ✗ Invalid --build-type value %q (must be debug, release, relwithdebinfo, or minsizerel)\n", cfg.BuildType)
		printSuggestions(cfg.BuildType, buildTypeNames())
		return 2
	}
	switch cfg.Format {
	case "text", "json", "jsonl":
	default:
		fmt.Fprintf(os.Stderr, "  ✗ Invalid --format value %q (must be text, json, or jsonl)\n", cfg.Format)
		return 2
	}
	return -1
}

func printSuggestions(input string, valid []string) {
	suggestions := suggestNames(input, valid)
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "\n  Did you mean:\n")
	for _, s := range suggestions {
		fmt.Fprintf(os.Stderr, "    • %s\n", s)
	}
	fmt.Fprintf(os.Stderr, "\n")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func buildTypeNames() []string {
	names := make([]string, len(types.KnownBuildTypes))
	for i, b := range types.KnownBuildTypes {
		names[i] = string(b)
	}
	return names
}

// overridesFrom converts the flag strings into profile overrides.
func overridesFrom(cfg *Config) profile.Overrides {
	return profile.Overrides{
		CFlags:      strings.Fields(cfg.CFlags),
		CXXFlags:    strings.Fields(cfg.CXXFlags),
		LinkerFlags: strings.Fields(cfg.LDFlags),
		Defines:     strings.Fields(cfg.Defines),
	}
}

// quietCode maps the report onto an exit code without printing anything.
func quietCode(report *output.Report) int {
	if report.Validation != nil && !report.Validation.Valid {
		return 1
	}
	return 0
}

// writeReport formats and writes the report to stdout or a file.
func writeReport(cfg *Config, report *output.Report, isDumb bool) int {
	var formatter output.Formatter
	switch cfg.Format {
	case "json":
		formatter = &output.JSONFormatter{}
	case "jsonl":
		formatter = &output.JSONLFormatter{}
	default:
		formatter = &output.TextFormatter{Verbose: cfg.Verbose, Dumb: isDumb}
	}

	w := os.Stdout
	if cfg.OutputFile != "" {
		if err := validateOutputPath(cfg.OutputFile); err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Unsafe output path: %v\n", err)
			return 2
		}
		f, err := os.Create(cfg.OutputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Failed to create output file: %v\n", err)
			return 2
		}
		defer f.Close()
		w = f

		// A profile written to a file is consumed by other tools; emit the
		// bare text form rather than the decorated report.
		if cfg.Action == "profile" && cfg.Format == "text" {
			if _, err := f.WriteString(report.ProfileText); err != nil {
				fmt.Fprintf(os.Stderr, "  ✗ Failed to write output: %v\n", err)
				return 2
			}
			fmt.Fprintf(os.Stderr, "  ✓ Profile written to %s\n", cfg.OutputFile)
			return 0
		}
	}

	if err := formatter.Write(w, report); err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ Failed to write output: %v\n", err)
		return 2
	}

	if report.Validation != nil && !report.Validation.Valid {
		return 1
	}
	return 0
}

// unsafeOutputPrefixes are path prefixes where writing output files is rejected.
// Prevents accidental overwrite of system files when running as root.
var unsafeOutputPrefixes = []string{"/etc/", "/proc/", "/sys/", "/dev/", "/boot/", "/sbin/", "/bin/", "/usr/"}

// validateOutputPath checks that the output file path is safe to write to.
func validateOutputPath(path string) error {
	cleaned := filepath.Clean(path)
	if filepath.IsAbs(cleaned) {
		for _, prefix := range unsafeOutputPrefixes {
			if strings.HasPrefix(cleaned, prefix) {
				return fmt.Errorf("refusing to write to system path %q", cleaned)
			}
		}
	}
	return nil
}
