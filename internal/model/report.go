package model

// FixStatus represents the outcome of one patch attempt.
type FixStatus int

const (
	// Fixed indicates a rewrite rule changed the line and the file was written.
	Fixed FixStatus = iota
	// AlreadyPrefixed indicates the line already contains the identifier with
	// an underscore prefix, so the patcher left it alone.
	AlreadyPrefixed
	// MissingFile indicates the diagnostic's file does not exist on disk.
	MissingFile
	// OutOfRange indicates the diagnostic's line number exceeds the file's line count.
	OutOfRange
	// NoRuleMatched indicates no rewrite rule changed the line.
	NoRuleMatched
	// DryRun indicates a rule matched but writing was suppressed.
	DryRun
)

// String returns a short human-readable label for the status.
func (s FixStatus) String() string {
	switch s {
	case Fixed:
		return "fixed"
	case AlreadyPrefixed:
		return "already prefixed"
	case MissingFile:
		return "missing file"
	case OutOfRange:
		return "line out of range"
	case NoRuleMatched:
		return "no rule matched"
	case DryRun:
		return "dry run"
	}

	return "unknown"
}

// Applied reports whether the attempt actually changed the file on disk.
func (s FixStatus) Applied() bool {
	return s == Fixed
}

// FixReport records the outcome of patching a single diagnostic.
type FixReport struct {
	Diagnostic Diagnostic
	Status     FixStatus
	// Rule names the rewrite rule that changed the line. Empty unless the
	// status is Fixed or DryRun.
	Rule string
}

// FileFixCount holds per-file counts for the run summary.
type FileFixCount struct {
	File  Path `yaml:"file"`
	Found int  `yaml:"found"`
	Fixed int  `yaml:"fixed"`
}

// RunSummary aggregates one full fix run.
type RunSummary struct {
	Found        int `yaml:"found"`
	FilesTouched int `yaml:"files_touched"`
	Fixed        int `yaml:"fixed"`
	// Remaining is the TS6133 count observed by the verification build.
	// Only meaningful when Verified is true.
	Remaining int            `yaml:"remaining"`
	Verified  bool           `yaml:"verified"`
	DryRun    bool           `yaml:"dry_run"`
	PerFile   []FileFixCount `yaml:"per_file,omitempty"`
	// Timestamp is set by the report store when the summary is saved.
	Timestamp string `yaml:"timestamp,omitempty"`
}
