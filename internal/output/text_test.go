package output

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WyattAu/omnicpp/internal/types"
)

func init() {
	// Disable color for deterministic test output.
	color.NoColor = true
}

func renderText(t *testing.T, report *Report, opts ...func(*TextFormatter)) string {
	t.Helper()
	f := &TextFormatter{}
	for _, opt := range opts {
		opt(f)
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf, report))
	return buf.String()
}

func TestTextFormatter_Write_Detect(t *testing.T) {
	out := renderText(t, newTestReport())

	assert.Contains(t, out, "Platform")
	assert.Contains(t, out, "cachyos rolling (arch derivative)")
	assert.Contains(t, out, "Toolchains")
	assert.Contains(t, out, "13.2.1")
	assert.Contains(t, out, "/usr/bin/gcc")
	assert.Contains(t, out, "(selected)")
	assert.Contains(t, out, "clang not found on PATH")
	assert.Contains(t, out, "not probed on this platform")
	assert.Contains(t, out, "native-os/pacman")
	assert.Contains(t, out, "(needs elevation)")
}

func TestTextFormatter_Write_ValidationFailure(t *testing.T) {
	out := renderText(t, newValidationReport())

	assert.Contains(t, out, "2 problem(s) need attention")
	assert.Contains(t, out, "sudo pacman -S --needed ninja")
}

func TestTextFormatter_Write_ValidationClean(t *testing.T) {
	r := newTestReport()
	r.Validation = &types.ValidationReport{Valid: true, Errors: []string{}}

	out := renderText(t, r)

	assert.Contains(t, out, "Environment ready")
	assert.NotContains(t, out, "need attention")
}

func TestTextFormatter_Write_Profile(t *testing.T) {
	r := newTestReport()
	r.ProfileText = "[settings]\nbuild_type=release\ncompiler=gcc\n\n[env]\nCC=/usr/bin/gcc\n"

	out := renderText(t, r)

	assert.Contains(t, out, "Profile")
	assert.Contains(t, out, "[settings]")
	assert.Contains(t, out, "build_type=release")
	assert.Contains(t, out, "CC=/usr/bin/gcc")
}

func TestTextFormatter_Write_Command(t *testing.T) {
	r := newTestReport()
	r.Command = &types.CommandSpec{
		Executable: "cmake",
		Args:       []string{"-S", ".", "-B", "build/gcc-release", "-G", "Ninja"},
		Env:        map[string]string{"CXX": "/usr/bin/g++", "CC": "/usr/bin/gcc"},
		Dir:        ".",
	}

	out := renderText(t, r)

	assert.Contains(t, out, "cmake -S . -B build/gcc-release -G Ninja")
	assert.Contains(t, out, "env: CC=/usr/bin/gcc")
	assert.Contains(t, out, "env: CXX=/usr/bin/g++")
}

func TestTextFormatter_Write_NixShellNoted(t *testing.T) {
	r := newTestReport()
	r.Platform.Extra = map[string]string{types.ExtraNixShell: "impure"}

	out := renderText(t, r)

	assert.Contains(t, out, "Nix shell active")
}

func TestTextFormatter_DumbTerminalASCIIOnly(t *testing.T) {
	out := renderText(t, newValidationReport(), func(f *TextFormatter) { f.Dumb = true })

	for _, r := range out {
		assert.Less(t, r, rune(128), "dumb terminal output must be pure ASCII")
	}
}

func TestTextFormatter_VerboseShowsCapabilities(t *testing.T) {
	quiet := renderText(t, newTestReport())
	verbose := renderText(t, newTestReport(), func(f *TextFormatter) { f.Verbose = true })

	assert.NotContains(t, quiet, "caps:")
	assert.Contains(t, verbose, "caps: asan c++17 c++20 c++23 lto ubsan")
}
