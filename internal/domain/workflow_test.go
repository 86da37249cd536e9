package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "tsquiet.dev/pkg/tsquiet/internal/model"
)

type fakeCollector struct {
	diagnostics []m.Diagnostic
	remaining   int
	collectErr  error
	verifyErr   error
	collects    int
	verifies    int
	config      BuildConfig
}

func (c *fakeCollector) Collect(context.Context) ([]m.Diagnostic, error) {
	c.collects++
	return c.diagnostics, c.collectErr
}

func (c *fakeCollector) CountRemaining(context.Context) (int, error) {
	c.verifies++
	return c.remaining, c.verifyErr
}

func (c *fakeCollector) Config() BuildConfig {
	return c.config
}

func newTestWorkflow(collector Collector, status m.FixStatus) (Workflow, *recordingPatcher, *fakeUI, *fakeStore) {
	patcher := &recordingPatcher{status: status}
	ui := &fakeUI{}
	store := &fakeStore{}
	orchestrator := NewOrchestrator(patcher, ui)

	return NewWorkflow(collector, orchestrator, store, ui), patcher, ui, store
}

func TestWorkflow_Fix_NoneFound(t *testing.T) {
	collector := &fakeCollector{}
	workflow, patcher, ui, store := newTestWorkflow(collector, m.Fixed)

	err := workflow.Fix(context.Background(), FixArgs{Verify: true, Reports: "reports"})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0}, ui.collected)
	assert.Empty(t, patcher.attempts)
	assert.Empty(t, store.saved)
	assert.Zero(t, collector.verifies)
}

func TestWorkflow_Fix_WithVerification(t *testing.T) {
	collector := &fakeCollector{
		diagnostics: []m.Diagnostic{
			{File: "src/a.ts", Line: 1, Identifier: "a"},
			{File: "src/b.ts", Line: 2, Identifier: "b"},
		},
		remaining: 1,
	}
	workflow, patcher, ui, store := newTestWorkflow(collector, m.Fixed)

	err := workflow.Fix(context.Background(), FixArgs{Verify: true, Reports: "reports"})
	require.NoError(t, err)

	assert.Len(t, patcher.attempts, 2)
	assert.Equal(t, 1, collector.verifies)
	assert.True(t, ui.verifying)

	require.Len(t, store.saved, 1)
	saved := store.saved[0]
	assert.Equal(t, 2, saved.Fixed)
	assert.Equal(t, 1, saved.Remaining)
	assert.True(t, saved.Verified)

	require.Len(t, ui.summaries, 1)
	assert.Equal(t, saved.Fixed, ui.summaries[0].Fixed)
}

func TestWorkflow_Fix_DryRunSkipsVerification(t *testing.T) {
	collector := &fakeCollector{
		diagnostics: []m.Diagnostic{{File: "src/a.ts", Line: 1, Identifier: "a"}},
	}
	workflow, _, ui, store := newTestWorkflow(collector, m.DryRun)

	err := workflow.Fix(context.Background(), FixArgs{Verify: true, DryRun: true, Reports: "reports"})
	require.NoError(t, err)

	assert.Zero(t, collector.verifies)
	assert.False(t, ui.verifying)

	require.Len(t, store.saved, 1)
	assert.True(t, store.saved[0].DryRun)
	assert.False(t, store.saved[0].Verified)
}

func TestWorkflow_Fix_CollectErrorIsFatal(t *testing.T) {
	collector := &fakeCollector{collectErr: errors.New("npm: not found")}
	workflow, _, _, store := newTestWorkflow(collector, m.Fixed)

	err := workflow.Fix(context.Background(), FixArgs{Reports: "reports"})
	require.Error(t, err)
	assert.Empty(t, store.saved)
}

func TestWorkflow_Fix_VerifyErrorIsFatal(t *testing.T) {
	collector := &fakeCollector{
		diagnostics: []m.Diagnostic{{File: "src/a.ts", Line: 1, Identifier: "a"}},
		verifyErr:   errors.New("npm vanished mid-run"),
	}
	workflow, _, _, _ := newTestWorkflow(collector, m.Fixed)

	err := workflow.Fix(context.Background(), FixArgs{Verify: true, Reports: "reports"})
	require.Error(t, err)
}

func TestWorkflow_Fix_ReportsUnfixed(t *testing.T) {
	collector := &fakeCollector{
		diagnostics: []m.Diagnostic{{File: "src/a.ts", Line: 1, Identifier: "a"}},
	}
	workflow, _, ui, _ := newTestWorkflow(collector, m.NoRuleMatched)

	err := workflow.Fix(context.Background(), FixArgs{Reports: "reports"})
	require.NoError(t, err)

	require.Len(t, ui.unfixed, 1)
	assert.Equal(t, m.NoRuleMatched, ui.unfixed[0].Status)
}

func TestWorkflow_List(t *testing.T) {
	collector := &fakeCollector{
		diagnostics: []m.Diagnostic{{File: "src/a.ts", Line: 1, Identifier: "a"}},
	}
	workflow, patcher, ui, _ := newTestWorkflow(collector, m.Fixed)

	err := workflow.List(context.Background())
	require.NoError(t, err)

	assert.Len(t, ui.diagnostic, 1)
	assert.Empty(t, patcher.attempts)
}

// End-to-end over the real collector, patcher and orchestrator: a second run
// over the same compiler output must fix nothing new.
func TestWorkflow_Fix_SecondRunIsIdempotent(t *testing.T) {
	output := "src/a.ts(2,7): error TS6133: 'unusedThing' is declared but its value is never read.\n" +
		"src/b.ts(1,10): error TS6133: 'Spare' is declared but its value is never read.\n"

	runner := &fakeRunner{outputs: []string{output}}
	collector, err := NewCollector(runner, BuildConfig{Root: "/proj", Command: "npm", Args: []string{"run", "build"}})
	require.NoError(t, err)

	fs := newFakeFS(map[string]string{
		"/proj/src/a.ts": "export function main() {\n  const unusedThing = 1;\n}\n",
		"/proj/src/b.ts": "import { Keep, Spare } from 'mod';\nexport { Keep };\n",
	})

	ui := &fakeUI{}
	store := &fakeStore{}
	workflow := NewWorkflow(collector, NewOrchestrator(NewPatcher(fs, "/proj", false), ui), store, ui)

	require.NoError(t, workflow.Fix(context.Background(), FixArgs{Reports: "reports"}))

	require.Len(t, store.saved, 1)
	assert.Equal(t, 2, store.saved[0].Fixed)
	assert.Equal(t, "export function main() {\n  const _unusedThing = 1;\n}\n", fs.files["/proj/src/a.ts"])
	assert.Equal(t, "import { Keep, _Spare } from 'mod';\nexport { Keep };\n", fs.files["/proj/src/b.ts"])

	writesAfterFirstRun := fs.writes

	require.NoError(t, workflow.Fix(context.Background(), FixArgs{Reports: "reports"}))

	require.Len(t, store.saved, 2)
	assert.Equal(t, 0, store.saved[1].Fixed)
	assert.Equal(t, writesAfterFirstRun, fs.writes)
}
