package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportBuilder_FreezesOrderedErrors(t *testing.T) {
	var b ReportBuilder
	b.Add("no compiler found")
	b.Add("no backend found")

	report := b.Report()

	assert.False(t, report.Valid)
	assert.Equal(t, []string{"no compiler found", "no backend found"}, report.Errors)
}

func TestReportBuilder_DeduplicatesPreservingFirstSeen(t *testing.T) {
	var b ReportBuilder
	b.Add("cmake not found")
	b.Add("ninja not found")
	b.Add("cmake not found")

	report := b.Report()

	assert.Equal(t, []string{"cmake not found", "ninja not found"}, report.Errors)
}

func TestReportBuilder_EmptyIsValid(t *testing.T) {
	var b ReportBuilder
	report := b.Report()

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
}

func TestIsKnownDerivative(t *testing.T) {
	p := PlatformRecord{OSFamily: OSLinux, ReleaseName: "cachyos", DerivativeOf: "arch"}

	assert.True(t, p.IsKnownDerivative("arch"))
	assert.False(t, p.IsKnownDerivative("debian"))
	assert.False(t, PlatformRecord{}.IsKnownDerivative("arch"))
}

func TestIncompatibleVersionFailure_Message(t *testing.T) {
	err := &IncompatibleVersionFailure{
		What:     "gcc",
		Found:    Version{Major: 8, Minor: 5},
		Required: Version{Major: 9},
		Path:     "/usr/bin/gcc",
	}

	msg := err.Error()
	assert.Contains(t, msg, "8.5.0")
	assert.Contains(t, msg, "9.0.0")
	assert.Contains(t, msg, "/usr/bin/gcc")
}

func TestCandidateHelpers(t *testing.T) {
	c := ToolchainCandidate{
		Status:       StatusAvailable,
		Capabilities: []string{"c++20", "lto"},
	}

	assert.True(t, c.Usable())
	assert.True(t, c.HasCapability("lto"))
	assert.False(t, c.HasCapability("c++26"))
	assert.False(t, ToolchainCandidate{Status: StatusNotFound}.Usable())
}

func TestPolicyMinimumFor(t *testing.T) {
	p := DefaultPolicy()

	min, ok := p.MinimumFor("gcc")
	assert.True(t, ok)
	assert.Equal(t, Version{Major: 9}, min)

	_, ok = p.MinimumFor("unheard-of")
	assert.False(t, ok)
}
