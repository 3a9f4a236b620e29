package gates

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/scorecard/internal/output"
)

// Format selects the CI platform syntax for gate output. Formats change only
// presentation; the pass/fail decision is computed before emission.
type Format string

const (
	FormatAuto          Format = "auto"
	FormatGitHubActions Format = "github-actions"
	FormatGitLabCI      Format = "gitlab-ci"
	FormatJenkins       Format = "jenkins"
	FormatGeneric       Format = "generic"
	FormatConsole       Format = "console"
)

// ParseFormat validates a --format flag value.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatAuto, "":
		return FormatAuto, nil
	case FormatGitHubActions:
		return FormatGitHubActions, nil
	case FormatGitLabCI:
		return FormatGitLabCI, nil
	case FormatJenkins:
		return FormatJenkins, nil
	case FormatGeneric:
		return FormatGeneric, nil
	case FormatConsole:
		return FormatConsole, nil
	default:
		return "", &ConfigError{Reason: fmt.Sprintf("unknown output format %q", raw)}
	}
}

// DetectFormat resolves the auto format from the environment: CI platform
// variables first, then a TTY check.
func DetectFormat() Format {
	switch {
	case os.Getenv("GITHUB_ACTIONS") == "true":
		return FormatGitHubActions
	case os.Getenv("GITLAB_CI") == "true":
		return FormatGitLabCI
	case os.Getenv("JENKINS_URL") != "":
		return FormatJenkins
	case isatty.IsTerminal(os.Stdout.Fd()):
		return FormatConsole
	default:
		return FormatGeneric
	}
}

// Emit writes the gates report in the given format. FormatAuto must be
// resolved with DetectFormat before calling.
func Emit(w io.Writer, gr *GatesReport, format Format) error {
	switch format {
	case FormatGitHubActions:
		return emitGitHubActions(w, gr)
	case FormatGitLabCI:
		return emitGitLabCI(w, gr)
	case FormatJenkins:
		return emitJenkins(w, gr)
	case FormatGeneric:
		return emitGeneric(w, gr)
	case FormatConsole:
		return emitConsole(w, gr)
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown output format %q", format)}
	}
}

// emitGitHubActions writes workflow annotation commands followed by a
// step-summary markdown table.
func emitGitHubActions(w io.Writer, gr *GatesReport) error {
	var sb strings.Builder

	for _, g := range gr.Gates {
		switch {
		case !g.Passed && g.Blocking:
			sb.WriteString(fmt.Sprintf("::error title=Quality gate failed::%s\n", g.Message))
		case !g.Passed || g.Warning:
			sb.WriteString(fmt.Sprintf("::warning title=Quality gate::%s\n", g.Message))
		}
	}

	sb.WriteString("## Quality Gates\n\n")
	sb.WriteString("| Gate | Score | Threshold | Status |\n")
	sb.WriteString("|------|-------|-----------|--------|\n")
	for _, g := range gr.Gates {
		sb.WriteString(fmt.Sprintf("| %s | %.1f | %.1f | %s |\n",
			g.Name, g.Score, g.Threshold, statusWord(g)))
	}
	sb.WriteString(fmt.Sprintf("\n**%d/%d gates passed** (%d warnings) — overall: %s\n",
		gr.Summary.Passed, gr.Summary.Total, gr.Summary.Warnings, overallWord(gr)))

	_, err := io.WriteString(w, sb.String())
	return err
}

// emitGitLabCI writes compact line-oriented output suitable for job logs.
func emitGitLabCI(w io.Writer, gr *GatesReport) error {
	var sb strings.Builder
	for _, g := range gr.Gates {
		sb.WriteString(fmt.Sprintf("[%s] %s: %.1f (min %.1f) - %s\n",
			statusWord(g), g.Name, g.Score, g.Threshold, g.Message))
	}
	sb.WriteString(fmt.Sprintf("quality gates: %d/%d passed, %d warnings, overall %s\n",
		gr.Summary.Passed, gr.Summary.Total, gr.Summary.Warnings, overallWord(gr)))
	_, err := io.WriteString(w, sb.String())
	return err
}

// emitJenkins writes the full report as JSON for pipeline consumption.
func emitJenkins(w io.Writer, gr *GatesReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(gr)
}

// emitGeneric writes plain unstyled text.
func emitGeneric(w io.Writer, gr *GatesReport) error {
	var sb strings.Builder
	for _, g := range gr.Gates {
		sb.WriteString(fmt.Sprintf("%-4s %-14s %6.1f / %-6.1f %s\n",
			statusWord(g), g.Name, g.Score, g.Threshold, g.Message))
	}
	sb.WriteString(fmt.Sprintf("\n%d/%d passed (%.0f%%), %d warnings: %s\n",
		gr.Summary.Passed, gr.Summary.Total, gr.Summary.PassRate*100,
		gr.Summary.Warnings, overallWord(gr)))
	_, err := io.WriteString(w, sb.String())
	return err
}

// emitConsole writes a styled table for humans.
func emitConsole(w io.Writer, gr *GatesReport) error {
	var sb strings.Builder
	sb.WriteString(output.Section("Quality Gates"))
	sb.WriteString("\n\n")

	tbl := output.NewTable("Gate", "Score", "Threshold", "Status")
	for _, g := range gr.Gates {
		var status string
		switch {
		case !g.Passed:
			status = output.StyleError.Render("FAIL")
		case g.Warning:
			status = output.StyleWarning.Render("WARN")
		default:
			status = output.StyleSuccess.Render("PASS")
		}
		tbl.AddRow(g.Name, fmt.Sprintf("%.1f", g.Score), fmt.Sprintf("%.1f", g.Threshold), status)
	}
	sb.WriteString(tbl.Render())

	verdict := output.StyleSuccess.Render("PASSED")
	if !gr.Passed {
		verdict = output.StyleError.Render("FAILED")
	}
	sb.WriteString(fmt.Sprintf("\n %s %s %s\n",
		output.StyleLabel.Render("Overall:"), verdict,
		output.StyleMuted.Render(fmt.Sprintf("(%d/%d passed, %d warnings)",
			gr.Summary.Passed, gr.Summary.Total, gr.Summary.Warnings))))

	_, err := io.WriteString(w, sb.String())
	return err
}

func statusWord(g Result) string {
	switch {
	case !g.Passed:
		return "FAIL"
	case g.Warning:
		return "WARN"
	default:
		return "PASS"
	}
}

func overallWord(gr *GatesReport) string {
	if gr.Passed {
		return "PASSED"
	}
	return "FAILED"
}
