package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	m "tsquiet.dev/pkg/tsquiet/internal/model"
)

const (
	tuiDefaultWidth = 80
	tuiMaxRecent    = 8
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	fileStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	fixedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	unfixedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI with a Bubble Tea progress view. The program runs in its
// own goroutine; Display* calls feed it messages. Only rendering is
// concurrent: file edits and builds stay on the caller's single flow.
type TUI struct {
	output  io.Writer
	program *tea.Program
	group   *errgroup.Group
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program.
func (t *TUI) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newFixModel()

	if f, ok := t.output.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			model.width = width
		}
	}

	t.program = tea.NewProgram(model, tea.WithOutput(t.output))

	group := &errgroup.Group{}
	group.Go(func() error {
		_, err := t.program.Run()
		return err
	})
	t.group = group

	return nil
}

// Close asks the program to quit if it is still running.
func (t *TUI) Close(_ context.Context) {
	if t.program != nil {
		t.program.Send(finishedMsg{})
	}
}

// Wait blocks until the program exits.
func (t *TUI) Wait(_ context.Context) {
	if t.group != nil {
		_ = t.group.Wait()
	}
}

// DisplayBuildInfo announces the build about to run.
func (t *TUI) DisplayBuildInfo(_ context.Context, dir, invocation string) {
	t.send(buildInfoMsg{dir: dir, invocation: invocation})
}

// DisplayCollected reports the number of diagnostics found.
func (t *TUI) DisplayCollected(_ context.Context, found, fileCount int) {
	t.send(collectedMsg{found: found, files: fileCount})
}

// DisplayDiagnostics renders the list-mode view and finishes.
func (t *TUI) DisplayDiagnostics(_ context.Context, diagnostics []m.Diagnostic) error {
	t.send(diagnosticsMsg{diagnostics: diagnostics})
	t.send(finishedMsg{})

	return nil
}

// DisplayFileProgress announces the file currently being patched.
func (t *TUI) DisplayFileProgress(_ context.Context, file m.Path, count int) {
	t.send(fileMsg{file: file, count: count})
}

// DisplayPatchResult reports one patch attempt.
func (t *TUI) DisplayPatchResult(_ context.Context, report m.FixReport) {
	t.send(resultMsg{report: report})
}

// DisplayVerifying announces the verification build.
func (t *TUI) DisplayVerifying(_ context.Context) {
	t.send(verifyingMsg{})
}

// DisplayUnfixed lists diagnostics that could not be fixed.
func (t *TUI) DisplayUnfixed(_ context.Context, reports []m.FixReport) {
	t.send(unfixedMsg{reports: reports})
}

// DisplaySummary renders the totals and finishes.
func (t *TUI) DisplaySummary(_ context.Context, summary m.RunSummary) {
	t.send(summaryMsg{summary: summary})
	t.send(finishedMsg{})
}

func (t *TUI) send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}

type buildInfoMsg struct {
	dir        string
	invocation string
}

type collectedMsg struct {
	found int
	files int
}

type diagnosticsMsg struct {
	diagnostics []m.Diagnostic
}

type fileMsg struct {
	file  m.Path
	count int
}

type resultMsg struct {
	report m.FixReport
}

type verifyingMsg struct{}

type unfixedMsg struct {
	reports []m.FixReport
}

type summaryMsg struct {
	summary m.RunSummary
}

type finishedMsg struct{}

// fixModel is the Bubble Tea model for a fix run.
type fixModel struct {
	width       int
	bar         progress.Model
	invocation  string
	total       int
	processed   int
	fixed       int
	currentFile m.Path
	recent      []string
	diagnostics []m.Diagnostic
	unfixed     []m.FixReport
	summary     *m.RunSummary
	verifying   bool
	done        bool
}

func newFixModel() fixModel {
	return fixModel{
		width: tuiDefaultWidth,
		bar:   progress.New(progress.WithDefaultGradient()),
	}
}

func (fm fixModel) Init() tea.Cmd {
	return nil
}

func (fm fixModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		fm.width = msg.Width
		return fm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			fm.done = true
			return fm, tea.Quit
		}

		return fm, nil

	case buildInfoMsg:
		fm.invocation = msg.invocation
		return fm, nil

	case collectedMsg:
		fm.total = msg.found
		return fm, nil

	case diagnosticsMsg:
		fm.diagnostics = msg.diagnostics
		return fm, nil

	case fileMsg:
		fm.currentFile = msg.file
		return fm, nil

	case resultMsg:
		fm.processed++
		if msg.report.Status == m.Fixed || msg.report.Status == m.DryRun {
			fm.fixed++
		}

		fm.recent = append(fm.recent, renderResultLine(msg.report))
		if len(fm.recent) > tuiMaxRecent {
			fm.recent = fm.recent[len(fm.recent)-tuiMaxRecent:]
		}

		return fm, nil

	case verifyingMsg:
		fm.verifying = true
		return fm, nil

	case unfixedMsg:
		fm.unfixed = msg.reports
		return fm, nil

	case summaryMsg:
		summary := msg.summary
		fm.summary = &summary

		return fm, nil

	case finishedMsg:
		fm.done = true
		return fm, tea.Quit
	}

	return fm, nil
}

func (fm fixModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("tsquiet"))

	if fm.invocation != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%s)", fm.invocation)))
	}

	b.WriteString("\n\n")

	if fm.diagnostics != nil {
		fm.renderDiagnosticList(&b)
		return b.String()
	}

	if fm.total == 0 && fm.processed == 0 && fm.summary == nil {
		b.WriteString(dimStyle.Render("Collecting diagnostics...") + "\n")
		return b.String()
	}

	fm.renderProgress(&b)

	for _, line := range fm.recent {
		b.WriteString(line + "\n")
	}

	if fm.verifying && fm.summary == nil {
		b.WriteString("\n" + dimStyle.Render("Running build to verify...") + "\n")
	}

	if fm.summary != nil {
		fm.renderSummary(&b)
	}

	return b.String()
}

func (fm fixModel) renderProgress(b *strings.Builder) {
	if fm.total > 0 {
		barWidth := fm.width - 10
		if barWidth > 0 {
			fm.bar.Width = barWidth
		}

		percent := float64(fm.processed) / float64(fm.total)
		b.WriteString(fm.bar.ViewAs(percent) + "\n")
	}

	if fm.currentFile != "" && fm.summary == nil {
		b.WriteString(fileStyle.Render(string(fm.currentFile)) + "\n")
	}

	b.WriteString("\n")
}

func (fm fixModel) renderDiagnosticList(b *strings.Builder) {
	if len(fm.diagnostics) == 0 {
		b.WriteString("No TS6133 errors found!\n")
		return
	}

	batch := m.Partition(fm.diagnostics)

	for _, file := range batch.SortedFiles() {
		b.WriteString(fileStyle.Render(string(file)) + "\n")

		for _, d := range batch[file] {
			b.WriteString(fmt.Sprintf("  (%d,%d) '%s'\n", d.Line, d.Column, d.Identifier))
		}
	}

	fmt.Fprintf(b, "\nTotal: %d unused variables in %d files\n", len(fm.diagnostics), len(batch))
}

func (fm fixModel) renderSummary(b *strings.Builder) {
	summary := *fm.summary

	b.WriteString("\n")

	if summary.DryRun {
		fmt.Fprintf(b, "Would fix %s unused variables (dry run)\n", fixedStyle.Render(fmt.Sprintf("%d", summary.Fixed)))
	} else {
		fmt.Fprintf(b, "Fixed %s of %d unused variables in %d files\n",
			fixedStyle.Render(fmt.Sprintf("%d", summary.Fixed)), summary.Found, summary.FilesTouched)
	}

	if len(fm.unfixed) > 0 {
		b.WriteString(unfixedStyle.Render(fmt.Sprintf("%d not fixed", len(fm.unfixed))) + "\n")
	}

	if summary.Verified {
		fmt.Fprintf(b, "Remaining TS6133 errors: %d\n", summary.Remaining)
	}
}

func renderResultLine(report m.FixReport) string {
	d := report.Diagnostic
	location := fmt.Sprintf("%s(%d,%d) '%s'", d.File, d.Line, d.Column, d.Identifier)

	switch report.Status {
	case m.Fixed, m.DryRun:
		return fixedStyle.Render("  ✓ ") + location + dimStyle.Render("  "+report.Rule)
	case m.AlreadyPrefixed:
		return skippedStyle.Render("  - ") + location + dimStyle.Render("  already prefixed")
	default:
		return unfixedStyle.Render("  ✗ ") + location + dimStyle.Render("  "+report.Status.String())
	}
}
