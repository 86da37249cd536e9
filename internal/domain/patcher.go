package domain

import (
	"log/slog"
	"os"
	"strings"

	"tsquiet.dev/pkg/tsquiet/internal/adapter"
	"tsquiet.dev/pkg/tsquiet/internal/domain/rules"
	m "tsquiet.dev/pkg/tsquiet/internal/model"
)

const defaultFilePerm os.FileMode = 0o644

// Patcher attempts to silence a single diagnostic by rewriting the
// referenced line. Every local failure degrades to a not-fixed report rather
// than aborting the run.
type Patcher interface {
	Patch(diagnostic m.Diagnostic) (m.FixReport, error)
}

type patcher struct {
	fs     adapter.SourceFSAdapter
	root   string
	rules  []rules.Rule
	dryRun bool
}

// NewPatcher constructs a Patcher resolving diagnostic paths against root.
// When dryRun is set, matching lines are reported but never written back.
func NewPatcher(fs adapter.SourceFSAdapter, root string, dryRun bool) Patcher {
	return &patcher{
		fs:     fs,
		root:   root,
		rules:  rules.Ordered(),
		dryRun: dryRun,
	}
}

// Patch applies the first rewrite rule that changes the diagnostic's line and
// rewrites the whole file. The returned error covers I/O failures only;
// every "could not fix" case is expressed through the report status.
func (p *patcher) Patch(diagnostic m.Diagnostic) (m.FixReport, error) {
	report := m.FixReport{Diagnostic: diagnostic}

	fullPath := p.fs.JoinPath(p.root, string(diagnostic.File))

	info, err := p.fs.FileInfo(fullPath)
	if err != nil {
		report.Status = m.MissingFile
		return report, nil
	}

	lines, err := p.fs.ReadLines(fullPath)
	if err != nil {
		report.Status = m.MissingFile
		return report, err
	}

	if diagnostic.Line > len(lines) {
		report.Status = m.OutOfRange
		return report, nil
	}

	line := lines[diagnostic.Line-1]

	// Idempotence guard: if the underscore-prefixed identifier already
	// appears anywhere in the line, treat it as fixed. An unrelated substring
	// can coincidentally match; the verification build surfaces anything
	// wrongly skipped.
	if strings.Contains(line, "_"+diagnostic.Identifier) {
		report.Status = m.AlreadyPrefixed
		return report, nil
	}

	for _, rule := range p.rules {
		rewritten, changed := rule.Apply(line, diagnostic.Identifier)
		if !changed {
			continue
		}

		report.Rule = rule.Name()

		if p.dryRun {
			report.Status = m.DryRun
			return report, nil
		}

		lines[diagnostic.Line-1] = rewritten

		perm := defaultFilePerm
		if info != nil {
			perm = info.Mode().Perm()
		}

		if err := p.fs.WriteLines(fullPath, lines, perm); err != nil {
			report.Status = m.NoRuleMatched
			report.Rule = ""

			slog.Error("failed to write patched file", "path", fullPath, "error", err)

			return report, err
		}

		report.Status = m.Fixed

		slog.Debug("patched line",
			"file", diagnostic.File,
			"line", diagnostic.Line,
			"identifier", diagnostic.Identifier,
			"rule", report.Rule,
		)

		return report, nil
	}

	report.Status = m.NoRuleMatched

	return report, nil
}
