// Package output provides formatters that render detection reports in
// different formats.
package output

import (
	"io"
	"time"

	"github.com/WyattAu/omnicpp/internal/types"
)

// Report is the renderable result of one invocation. Fields past Platform
// are optional; a formatter renders what is present.
type Report struct {
	// Action is the invocation mode, e.g. "detect" or "validate".
	Action string `json:"action"`

	// Version is the tool version.
	Version string `json:"version"`

	// Timestamp is when detection ran.
	Timestamp time.Time `json:"timestamp"`

	Platform   types.PlatformRecord       `json:"platform"`
	Toolchains []types.ToolchainCandidate `json:"toolchains,omitempty"`
	Backends   []types.BackendRecord      `json:"backends,omitempty"`

	// Toolchain and Backend are the selector winners, when selection ran.
	Toolchain *types.ToolchainCandidate `json:"selected_toolchain,omitempty"`
	Backend   *types.BackendRecord      `json:"selected_backend,omitempty"`

	Validation *types.ValidationReport `json:"validation,omitempty"`

	// Profile carries the structured profile; ProfileText its text form.
	Profile     *types.BuildProfile `json:"profile,omitempty"`
	ProfileText string              `json:"profile_text,omitempty"`

	Command *types.CommandSpec `json:"command,omitempty"`
}

// Formatter writes a report to the given writer.
type Formatter interface {
	Write(w io.Writer, report *Report) error
}
