package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/WyattAu/omnicpp/internal/types"
)

const (
	colMargin = 4  // left margin (spaces) for entry lines
	nameWidth = 10 // fixed field for family/backend names
	ruleWidth = 56 // width of horizontal divider rules
)

// TextFormatter writes a colored, human-readable report.
type TextFormatter struct {
	Verbose bool // show detail lines for every candidate, not just problems
	Dumb    bool // TERM=dumb — use single-char ASCII fallback icons
}

// Color helpers — each returns a sprint function.
var (
	cBold   = color.New(color.Bold).SprintFunc()
	cGreen  = color.New(color.FgGreen).SprintFunc()
	cRed    = color.New(color.FgRed).SprintFunc()
	cYellow = color.New(color.FgYellow).SprintFunc()
	cCyan   = color.New(color.FgCyan).SprintFunc()
	cDim    = color.New(color.Faint).SprintFunc()

	cRedBold   = color.New(color.FgRed, color.Bold).SprintFunc()
	cGreenBold = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// IsDumbTerm returns true when the terminal doesn't support Unicode.
func IsDumbTerm() bool {
	t := os.Getenv("TERM")
	return t == "dumb" || t == ""
}

// Write renders the full text report.
func (f *TextFormatter) Write(w io.Writer, r *Report) error {
	f.writeHeader(w, r)
	f.writePlatform(w, r)
	if len(r.Toolchains) > 0 || r.Toolchain != nil {
		f.writeToolchains(w, r)
	}
	if len(r.Backends) > 0 || r.Backend != nil {
		f.writeBackends(w, r)
	}
	if r.Validation != nil {
		f.writeValidation(w, r.Validation)
	}
	if r.ProfileText != "" {
		f.writeProfile(w, r)
	}
	if r.Command != nil {
		f.writeCommand(w, r.Command)
	}
	fmt.Fprintln(w)
	return nil
}

func (f *TextFormatter) writeHeader(w io.Writer, r *Report) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s\n", cBold("omnicpp"), cDim("v"+r.Version))
	fmt.Fprintf(w, "  %s %s\n", cDim("Detected:"), r.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintln(w)
}

func (f *TextFormatter) writePlatform(w io.Writer, r *Report) {
	p := r.Platform
	fmt.Fprintf(w, "  %s\n", cBold(f.icon("section")+" Platform"))
	fmt.Fprintf(w, "    OS:      %s %s (%s)\n", p.OSFamily, p.OSVersion, p.Arch)
	if p.ReleaseName != "" {
		release := p.ReleaseName + " " + p.ReleaseVersion
		if p.DerivativeOf != "" {
			release += fmt.Sprintf(" (%s derivative)", p.DerivativeOf)
		}
		fmt.Fprintf(w, "    Release: %s\n", strings.TrimSpace(release))
	}
	if p.DefaultABI != "" {
		fmt.Fprintf(w, "    ABI:     %s\n", p.DefaultABI)
	}
	if p.InNixShell() {
		fmt.Fprintf(w, "    %s\n", cCyan("Nix shell active"))
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) writeToolchains(w io.Writer, r *Report) {
	fmt.Fprintf(w, "  %s\n", cBold(f.icon("section")+" Toolchains"))
	for _, tc := range r.Toolchains {
		f.writeToolchainLine(w, tc, r.Toolchain)
	}
	if r.Toolchain != nil && len(r.Toolchains) == 0 {
		f.writeToolchainLine(w, *r.Toolchain, r.Toolchain)
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) writeToolchainLine(w io.Writer, tc types.ToolchainCandidate, selected *types.ToolchainCandidate) {
	icon := f.candidateIcon(tc.Status)
	name := fmt.Sprintf("%-*s", nameWidth, tc.Family)

	switch tc.Status {
	case types.StatusAvailable:
		line := fmt.Sprintf("%s%s %s %s  %s", colPad(colMargin), icon, cBold(name), tc.Version, cDim(tc.Path))
		if selected != nil && selected.Family == tc.Family && selected.Path == tc.Path {
			line += " " + cGreenBold("(selected)")
		}
		fmt.Fprintln(w, line)
		if f.Verbose && len(tc.Capabilities) > 0 {
			fmt.Fprintf(w, "%s%s %s\n", colPad(colMargin+2), cDim("caps:"), cDim(strings.Join(tc.Capabilities, " ")))
		}
	case types.StatusIncompatibleVersion:
		fmt.Fprintf(w, "%s%s %s %s  %s\n", colPad(colMargin), icon, cBold(name), tc.Version, cYellow(tc.Detail))
	default:
		fmt.Fprintf(w, "%s%s %s %s\n", colPad(colMargin), icon, cBold(name), cDim(tc.Detail))
	}
}

func (f *TextFormatter) writeBackends(w io.Writer, r *Report) {
	fmt.Fprintf(w, "  %s\n", cBold(f.icon("section")+" Backends"))
	for _, be := range r.Backends {
		f.writeBackendLine(w, be, r.Backend)
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) writeBackendLine(w io.Writer, be types.BackendRecord, selected *types.BackendRecord) {
	label := string(be.Kind)
	if be.NativeName != "" {
		label = fmt.Sprintf("%s/%s", be.Kind, be.NativeName)
	}
	name := fmt.Sprintf("%-*s", nameWidth, label)

	if !be.Available {
		fmt.Fprintf(w, "%s%s %s %s\n", colPad(colMargin), cDim(f.icon("skip")), cBold(name), cDim(be.Detail))
		return
	}

	line := fmt.Sprintf("%s%s %s", colPad(colMargin), cGreen(f.icon("pass")), cBold(name))
	if !be.Version.IsZero() {
		line += fmt.Sprintf(" %s", be.Version)
	}
	if be.Path != "" {
		line += "  " + cDim(be.Path)
	}
	if be.RequiresElevation {
		line += " " + cYellow("(needs elevation)")
	}
	if selected != nil && selected.Kind == be.Kind {
		line += " " + cGreenBold("(selected)")
	}
	fmt.Fprintln(w, line)
}

func (f *TextFormatter) writeValidation(w io.Writer, v *types.ValidationReport) {
	rule := cDim(strings.Repeat("-", ruleWidth))
	fmt.Fprintf(w, "  %s\n", rule)

	if v.Valid {
		fmt.Fprintf(w, "  %s %s\n", cGreenBold(f.icon("pass")), cGreenBold("Environment ready"))
		fmt.Fprintf(w, "  %s\n", rule)
		return
	}

	fmt.Fprintf(w, "  %s %s\n", cRedBold(f.icon("fail")),
		cRedBold(fmt.Sprintf("%d problem(s) need attention", len(v.Errors))))
	for _, msg := range v.Errors {
		fmt.Fprintf(w, "%s%s %s\n", colPad(colMargin), cRed(f.icon("fail")), msg)
	}
	fmt.Fprintf(w, "  %s\n", rule)
}

func (f *TextFormatter) writeProfile(w io.Writer, r *Report) {
	fmt.Fprintf(w, "  %s\n", cBold(f.icon("section")+" Profile"))
	for _, line := range strings.Split(strings.TrimRight(r.ProfileText, "\n"), "\n") {
		if line == "" {
			fmt.Fprintln(w)
			continue
		}
		if strings.HasPrefix(line, "[") {
			fmt.Fprintf(w, "%s%s\n", colPad(colMargin), cCyan(line))
			continue
		}
		fmt.Fprintf(w, "%s%s\n", colPad(colMargin), line)
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) writeCommand(w io.Writer, spec *types.CommandSpec) {
	fmt.Fprintf(w, "  %s\n", cBold(f.icon("section")+" Command"))
	fmt.Fprintf(w, "%s%s %s\n", colPad(colMargin), cBold(spec.Executable), strings.Join(spec.Args, " "))
	if spec.Dir != "" {
		fmt.Fprintf(w, "%s%s %s\n", colPad(colMargin), cDim("dir:"), spec.Dir)
	}
	if len(spec.Env) > 0 {
		for _, kv := range sortedEnv(spec.Env) {
			fmt.Fprintf(w, "%s%s %s\n", colPad(colMargin), cDim("env:"), kv)
		}
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) candidateIcon(s types.CandidateStatus) string {
	switch s {
	case types.StatusAvailable:
		return cGreen(f.icon("pass"))
	case types.StatusIncompatibleVersion:
		return cYellow(f.icon("warn"))
	case types.StatusMissingDependency:
		return cRed(f.icon("fail"))
	default:
		return cDim(f.icon("skip"))
	}
}

func (f *TextFormatter) icon(name string) string {
	if f.Dumb {
		switch name {
		case "pass":
			return "+"
		case "fail":
			return "x"
		case "skip":
			return "-"
		case "warn":
			return "!"
		case "section":
			return ">"
		default:
			return "?"
		}
	}
	switch name {
	case "pass":
		return "✓"
	case "fail":
		return "✗"
	case "skip":
		return "○"
	case "warn":
		return "⚠"
	case "section":
		return "▸"
	default:
		return "?"
	}
}

func colPad(n int) string {
	return strings.Repeat(" ", n)
}

func sortedEnv(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k + "=" + env[k]
	}
	return out
}
