package types

import "time"

// Action is a build pipeline step a command can be generated for.
type Action string

// Supported actions.
const (
	ActionConfigure Action = "configure"
	ActionBuild     Action = "build"
	ActionTest      Action = "test"
	ActionPackage   Action = "package"
)

// KnownActions lists the accepted actions.
var KnownActions = []Action{ActionConfigure, ActionBuild, ActionTest, ActionPackage}

// IsKnownAction reports whether a names a supported action.
func IsKnownAction(a Action) bool {
	for _, k := range KnownActions {
		if k == a {
			return true
		}
	}
	return false
}

// CommandSpec is a pure value object describing one external command. It is
// consumed by the process-execution collaborator; this package never runs it.
type CommandSpec struct {
	// Executable is the program to run (bare name or absolute path).
	Executable string `json:"executable"`

	// Args are the arguments in invocation order.
	Args []string `json:"arguments"`

	// Env are variables added to the inherited environment.
	Env map[string]string `json:"environment,omitempty"`

	// Dir is the working directory. Empty means the caller's cwd.
	Dir string `json:"working_directory,omitempty"`

	// Timeout bounds the command's wall-clock runtime. Zero means no limit.
	Timeout time.Duration `json:"timeout,omitempty"`
}
