package types

// ValidationReport is the single source of truth for "can this host build
// the project". It is built once per validation pass from a local builder and
// frozen; it is never partially mutated.
type ValidationReport struct {
	// Valid is true when no problems were found.
	Valid bool `json:"is_valid"`

	// Errors is the ordered, deduplicated list of remediation-oriented
	// messages. Empty when Valid.
	Errors []string `json:"errors"`
}

// ReportBuilder accumulates validation errors and freezes them into a
// ValidationReport. Duplicates are dropped while preserving first-seen order.
type ReportBuilder struct {
	errs []string
	seen map[string]struct{}
}

// Add records one error message, ignoring exact duplicates.
func (b *ReportBuilder) Add(msg string) {
	if msg == "" {
		return
	}
	if b.seen == nil {
		b.seen = make(map[string]struct{})
	}
	if _, dup := b.seen[msg]; dup {
		return
	}
	b.seen[msg] = struct{}{}
	b.errs = append(b.errs, msg)
}

// AddAll records each message in msgs via Add.
func (b *ReportBuilder) AddAll(msgs []string) {
	for _, m := range msgs {
		b.Add(m)
	}
}

// Report freezes the accumulated errors into an immutable report.
func (b *ReportBuilder) Report() ValidationReport {
	errs := make([]string, len(b.errs))
	copy(errs, b.errs)
	return ValidationReport{Valid: len(errs) == 0, Errors: errs}
}
