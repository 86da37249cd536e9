package domain

import (
	"context"
	"os"
	"strings"

	m "tsquiet.dev/pkg/tsquiet/internal/model"
)

// fakeRunner returns canned output per invocation, in order, repeating the
// last one once exhausted.
type fakeRunner struct {
	outputs []string
	err     error
	calls   int
	lastDir string
}

func (f *fakeRunner) Run(_ context.Context, dir, _ string, _ ...string) (string, error) {
	f.lastDir = dir
	f.calls++

	if f.err != nil {
		return "", f.err
	}

	index := f.calls - 1
	if index >= len(f.outputs) {
		index = len(f.outputs) - 1
	}

	return f.outputs[index], nil
}

// fakeFS is an in-memory SourceFSAdapter.
type fakeFS struct {
	files  map[string]string
	writes int
}

func newFakeFS(files map[string]string) *fakeFS {
	return &fakeFS{files: files}
}

func (f *fakeFS) FileInfo(path m.Path) (os.FileInfo, error) {
	if _, ok := f.files[string(path)]; !ok {
		return nil, os.ErrNotExist
	}

	return nil, nil
}

func (f *fakeFS) ReadLines(path m.Path) ([]string, error) {
	content, ok := f.files[string(path)]
	if !ok {
		return nil, os.ErrNotExist
	}

	return strings.Split(content, "\n"), nil
}

func (f *fakeFS) WriteLines(path m.Path, lines []string, _ os.FileMode) error {
	f.files[string(path)] = strings.Join(lines, "\n")
	f.writes++

	return nil
}

func (f *fakeFS) JoinPath(elem ...string) m.Path {
	return m.Path(strings.Join(elem, "/"))
}

// recordingPatcher records the order in which diagnostics are attempted.
type recordingPatcher struct {
	attempts []m.Diagnostic
	status   m.FixStatus
}

func (p *recordingPatcher) Patch(diagnostic m.Diagnostic) (m.FixReport, error) {
	p.attempts = append(p.attempts, diagnostic)

	return m.FixReport{Diagnostic: diagnostic, Status: p.status}, nil
}

// fakeUI records display calls.
type fakeUI struct {
	started    bool
	collected  []int
	files      []m.Path
	results    []m.FixReport
	unfixed    []m.FixReport
	summaries  []m.RunSummary
	diagnostic []m.Diagnostic
	verifying  bool
}

func (u *fakeUI) Start(context.Context) error { u.started = true; return nil }
func (u *fakeUI) Close(context.Context)       {}
func (u *fakeUI) Wait(context.Context)        {}

func (u *fakeUI) DisplayBuildInfo(context.Context, string, string) {}

func (u *fakeUI) DisplayCollected(_ context.Context, found, files int) {
	u.collected = append(u.collected, found, files)
}

func (u *fakeUI) DisplayDiagnostics(_ context.Context, diagnostics []m.Diagnostic) error {
	u.diagnostic = diagnostics
	return nil
}

func (u *fakeUI) DisplayFileProgress(_ context.Context, file m.Path, _ int) {
	u.files = append(u.files, file)
}

func (u *fakeUI) DisplayPatchResult(_ context.Context, report m.FixReport) {
	u.results = append(u.results, report)
}

func (u *fakeUI) DisplayVerifying(context.Context) { u.verifying = true }

func (u *fakeUI) DisplayUnfixed(_ context.Context, reports []m.FixReport) {
	u.unfixed = reports
}

func (u *fakeUI) DisplaySummary(_ context.Context, summary m.RunSummary) {
	u.summaries = append(u.summaries, summary)
}

// fakeStore records saved summaries.
type fakeStore struct {
	saved []m.RunSummary
	dirs  []m.Path
}

func (s *fakeStore) SaveSummary(dir m.Path, summary m.RunSummary) (m.Path, error) {
	s.saved = append(s.saved, summary)
	s.dirs = append(s.dirs, dir)

	return dir + "/summary.yaml", nil
}

func (s *fakeStore) LoadSummaries(m.Path) ([]m.RunSummary, error) {
	return s.saved, nil
}

// memorySinkForTest collects reports appended by the orchestrator.
type memorySinkForTest struct {
	reports []m.FixReport
}

func (s *memorySinkForTest) Append(report m.FixReport) error {
	s.reports = append(s.reports, report)
	return nil
}
