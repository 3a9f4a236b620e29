package gates

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureGatesReport() *GatesReport {
	return &GatesReport{
		Gates: []Result{
			{Name: "overall", Scope: ScopeOverall, Score: 65, Threshold: 70, Blocking: true,
				Message: "overall score 65.0 is below minimum 70.0"},
			{Name: "structure", Scope: "structure", Score: 18, Threshold: 15, Passed: true,
				Message: "structure score 18.0 meets threshold 15.0"},
			{Name: "testing", Scope: "testing", Score: 12, Threshold: 11.25, Passed: true, Warning: true,
				Message: "testing score 12.0 passes but is below warning threshold 13.5"},
		},
		Summary: ReportSummary{Total: 3, Passed: 2, Failed: 1, Warnings: 1, PassRate: 2.0 / 3.0},
		Passed:  false,
	}
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{
		"":               FormatAuto,
		"auto":           FormatAuto,
		"GitHub-Actions": FormatGitHubActions,
		"gitlab-ci":      FormatGitLabCI,
		"jenkins":        FormatJenkins,
		"generic":        FormatGeneric,
		"console":        FormatConsole,
	} {
		got, err := ParseFormat(raw)
		require.NoError(t, err, "raw %q", raw)
		assert.Equal(t, want, got, "raw %q", raw)
	}

	_, err := ParseFormat("teamcity")
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestDetectFormat_CIVariables(t *testing.T) {
	for _, v := range []string{"GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Setenv(v, "")
	}

	t.Setenv("GITHUB_ACTIONS", "true")
	assert.Equal(t, FormatGitHubActions, DetectFormat())
	t.Setenv("GITHUB_ACTIONS", "")

	t.Setenv("GITLAB_CI", "true")
	assert.Equal(t, FormatGitLabCI, DetectFormat())
	t.Setenv("GITLAB_CI", "")

	t.Setenv("JENKINS_URL", "https://ci.example.com/")
	assert.Equal(t, FormatJenkins, DetectFormat())
}

func TestEmit_GitHubActions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, fixtureGatesReport(), FormatGitHubActions))
	out := buf.String()

	assert.Contains(t, out, "::error title=Quality gate failed::overall score 65.0 is below minimum 70.0")
	assert.Contains(t, out, "::warning title=Quality gate::testing score 12.0")
	assert.Contains(t, out, "| Gate | Score | Threshold | Status |")
	assert.Contains(t, out, "| overall | 65.0 | 70.0 | FAIL |")
	assert.Contains(t, out, "2/3 gates passed")
	assert.Contains(t, out, "FAILED")
}

func TestEmit_GitLabCI(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, fixtureGatesReport(), FormatGitLabCI))
	out := buf.String()

	assert.Contains(t, out, "[FAIL] overall: 65.0 (min 70.0)")
	assert.Contains(t, out, "[PASS] structure: 18.0 (min 15.0)")
	assert.Contains(t, out, "[WARN] testing: 12.0")
	assert.Contains(t, out, "quality gates: 2/3 passed, 1 warnings, overall FAILED")
}

func TestEmit_JenkinsRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, fixtureGatesReport(), FormatJenkins))

	var decoded GatesReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, fixtureGatesReport(), &decoded)
}

func TestEmit_Generic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, fixtureGatesReport(), FormatGeneric))
	out := buf.String()

	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "overall")
	assert.Contains(t, out, "2/3 passed (67%), 1 warnings: FAILED")
	assert.NotContains(t, out, "\x1b[", "generic output must be unstyled")
}

func TestEmit_Console(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, fixtureGatesReport(), FormatConsole))
	out := buf.String()

	assert.Contains(t, out, "Quality Gates")
	for _, name := range []string{"overall", "structure", "testing"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "FAILED")
}

func TestEmit_SameDecisionAcrossFormats(t *testing.T) {
	gr := fixtureGatesReport()
	for _, f := range []Format{FormatGitHubActions, FormatGitLabCI, FormatJenkins, FormatGeneric, FormatConsole} {
		var buf bytes.Buffer
		require.NoError(t, Emit(&buf, gr, f))
		assert.False(t, gr.Passed, "format %s must not change the decision", f)
		assert.True(t, strings.Contains(strings.ToUpper(buf.String()), "FAIL"),
			"format %s should surface the failure", f)
	}
}

func TestEmit_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Emit(&buf, fixtureGatesReport(), Format("teamcity"))
	require.Error(t, err)
}
