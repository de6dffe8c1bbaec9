package types

import (
	"fmt"
	"strings"
)

// NotFoundFailure reports that no candidate at all exists for what was
// requested (a toolchain family, a backend, or any of either).
type NotFoundFailure struct {
	// What names the missing thing, e.g. "toolchain", "backend" or "gcc".
	What string
}

func (e *NotFoundFailure) Error() string {
	return fmt.Sprintf("%s: not found", e.What)
}

// IncompatibleVersionFailure reports that candidates exist but every one is
// below the configured minimum. It carries the best candidate found so the
// caller can distinguish "not installed" from "too old".
type IncompatibleVersionFailure struct {
	// What names the subject, e.g. "gcc" or "conan".
	What string
	// Found is the highest version among the incompatible candidates.
	Found Version
	// Required is the configured minimum.
	Required Version
	// Path is the executable path of the best candidate, when known.
	Path string
}

func (e *IncompatibleVersionFailure) Error() string {
	msg := fmt.Sprintf("%s: version %s is below the required minimum %s", e.What, e.Found, e.Required)
	if e.Path != "" {
		msg += fmt.Sprintf(" (found at %s)", e.Path)
	}
	return msg
}

// DetectionFailure reports that a probing subprocess itself errored or timed
// out — the tool exists but could not be queried.
type DetectionFailure struct {
	// Tool is the executable that failed to answer.
	Tool string
	// Err is the underlying subprocess error.
	Err error
}

func (e *DetectionFailure) Error() string {
	return fmt.Sprintf("%s: version query failed: %v", e.Tool, e.Err)
}

func (e *DetectionFailure) Unwrap() error { return e.Err }

// ValidationFailure aggregates every problem found during one validation
// pass. It is the error form of a failed ValidationReport.
type ValidationFailure struct {
	// Errors is the ordered remediation list.
	Errors []string
}

func (e *ValidationFailure) Error() string {
	return strings.Join(e.Errors, "\n")
}
