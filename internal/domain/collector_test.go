package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "tsquiet.dev/pkg/tsquiet/internal/model"
)

const sampleBuildOutput = `
> frontend@0.1.0 build
> tsc && vite build

src/components/Button.tsx(14,7): error TS6133: 'theme' is declared but its value is never read.
src/components/Button.tsx(3,10): error TS6133: 'useMemo' is declared but its value is never read.
src/pages/Home.tsx(88,11): error TS2339: Property 'missing' does not exist on type 'Props'.
src/api/client.mts(5,1): error TS6133: 'legacyClient' is declared but its value is never read.
types/globals.d.ts(2,3): error TS6133: 'Unused' is declared but its value is never read.
Found 5 errors.
`

func TestParseDiagnostics(t *testing.T) {
	diagnostics := ParseDiagnostics(sampleBuildOutput)

	require.Len(t, diagnostics, 4)

	// Stream order is preserved.
	assert.Equal(t, m.Diagnostic{File: "src/components/Button.tsx", Line: 14, Column: 7, Identifier: "theme"}, diagnostics[0])
	assert.Equal(t, m.Diagnostic{File: "src/components/Button.tsx", Line: 3, Column: 10, Identifier: "useMemo"}, diagnostics[1])
	assert.Equal(t, m.Diagnostic{File: "src/api/client.mts", Line: 5, Column: 1, Identifier: "legacyClient"}, diagnostics[2])
	assert.Equal(t, m.Diagnostic{File: "types/globals.d.ts", Line: 2, Column: 3, Identifier: "Unused"}, diagnostics[3])
}

func TestParseDiagnostics_IgnoresOtherCodesAndNoise(t *testing.T) {
	output := `
src/a.ts(1,1): error TS2304: Cannot find name 'foo'.
src/b.ts(2,2): warning TS6133: 'bar' is declared but its value is never read.
src/c.ts(3,3): error TS6133: 'baz' is declared but never read.
not a diagnostic line at all
`

	// Wrong code, wrong severity keyword position, wrong message text: all skipped.
	assert.Empty(t, ParseDiagnostics(output))
}

func TestCountDiagnostics(t *testing.T) {
	assert.Equal(t, 4, CountDiagnostics(sampleBuildOutput))
	assert.Equal(t, 0, CountDiagnostics("clean build\n"))

	// The verification count is deliberately looser than the collect parse:
	// it counts the code alone, message shape notwithstanding.
	assert.Equal(t, 1, CountDiagnostics("weird(1,1): error TS6133: localized message\n"))
}

func TestCollector_Collect(t *testing.T) {
	runner := &fakeRunner{outputs: []string{sampleBuildOutput}}

	collector, err := NewCollector(runner, BuildConfig{
		Root:    "/proj",
		Command: "npm",
		Args:    []string{"run", "build"},
	})
	require.NoError(t, err)

	diagnostics, err := collector.Collect(context.Background())
	require.NoError(t, err)

	assert.Len(t, diagnostics, 4)
	assert.Equal(t, "/proj", runner.lastDir)
}

func TestCollector_Exclude(t *testing.T) {
	runner := &fakeRunner{outputs: []string{sampleBuildOutput}}

	collector, err := NewCollector(runner, BuildConfig{
		Root:    "/proj",
		Command: "npm",
		Exclude: []string{`\.d\.ts$`, `^src/api/`},
	})
	require.NoError(t, err)

	diagnostics, err := collector.Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, diagnostics, 2)
	assert.Equal(t, m.Path("src/components/Button.tsx"), diagnostics[0].File)
	assert.Equal(t, m.Path("src/components/Button.tsx"), diagnostics[1].File)
}

func TestCollector_BadExcludePattern(t *testing.T) {
	_, err := NewCollector(&fakeRunner{}, BuildConfig{Exclude: []string{"("}})
	require.Error(t, err)
}

func TestCollector_RunError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("npm: command not found")}

	collector, err := NewCollector(runner, BuildConfig{Command: "npm"})
	require.NoError(t, err)

	_, err = collector.Collect(context.Background())
	require.Error(t, err)

	_, err = collector.CountRemaining(context.Background())
	require.Error(t, err)
}

func TestCollector_CountRemaining(t *testing.T) {
	runner := &fakeRunner{outputs: []string{"src/a.ts(1,1): error TS6133: 'x' is declared but its value is never read.\n"}}

	collector, err := NewCollector(runner, BuildConfig{Command: "npm"})
	require.NoError(t, err)

	remaining, err := collector.CountRemaining(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
}

func TestBuildConfig_Invocation(t *testing.T) {
	config := BuildConfig{Command: "npm", Args: []string{"run", "build"}}
	assert.Equal(t, "npm run build", config.Invocation())

	bare := BuildConfig{Command: "tsc"}
	assert.Equal(t, "tsc", bare.Invocation())
}
