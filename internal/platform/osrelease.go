package platform

import "strings"

// ParseOSRelease parses an os-release style key-value descriptor. Values may
// be bare, single- or double-quoted; blank lines and #-comments are skipped.
// Malformed lines are ignored rather than failing the parse.
func ParseOSRelease(data []byte) map[string]string {
	fields := make(map[string]string)

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		value = strings.TrimSpace(value)
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		fields[key] = value
	}

	return fields
}
