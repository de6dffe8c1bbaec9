package output

import (
	"encoding/json"
	"io"

	"github.com/WyattAu/omnicpp/internal/types"
)

// JSONLFormatter writes a report as newline-delimited JSON (one object per
// line). The first line is a header with the platform; subsequent lines are
// individual toolchain and backend records. Suited to piping into line
// oriented tools.
type JSONLFormatter struct{}

// Write renders the report as JSONL: header line + one line per record.
func (f *JSONLFormatter) Write(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	header := struct {
		Type      string               `json:"type"`
		Version   string               `json:"version"`
		Timestamp string               `json:"timestamp"`
		Platform  types.PlatformRecord `json:"platform"`
	}{
		Type:      "header",
		Version:   report.Version,
		Timestamp: report.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		Platform:  report.Platform,
	}
	if err := enc.Encode(header); err != nil {
		return err
	}

	for _, tc := range report.Toolchains {
		line := struct {
			Type      string                   `json:"type"`
			Toolchain types.ToolchainCandidate `json:"toolchain"`
		}{Type: "toolchain", Toolchain: tc}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}

	for _, be := range report.Backends {
		line := struct {
			Type    string              `json:"type"`
			Backend types.BackendRecord `json:"backend"`
		}{Type: "backend", Backend: be}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}

	return nil
}
