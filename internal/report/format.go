package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/scorecard/internal/output"
)

// ConsoleOptions control the console rendering.
type ConsoleOptions struct {
	Detailed        bool
	Recommendations bool
}

// WriteJSON writes the full structured report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteSummaryJSON writes the compact summary as indented JSON.
func WriteSummaryJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Summarize(r))
}

// WriteConsole renders the report for humans. All values come from the
// already-validated report; nothing is recomputed here.
func WriteConsole(w io.Writer, r *Report, opts ConsoleOptions) error {
	var sb strings.Builder

	sb.WriteString(output.Section("Project Score"))
	sb.WriteString("\n\n")

	if r.Project != nil {
		sb.WriteString(fmt.Sprintf(" %s %s\n",
			output.StyleLabel.Render("Project:"),
			output.StyleBold.Render(r.Project.Name)))
		sb.WriteString(fmt.Sprintf(" %s %s\n",
			output.StyleLabel.Render("Type:"),
			string(r.Project.Type)))
	}
	sb.WriteString(fmt.Sprintf(" %s %s\n",
		output.StyleLabel.Render("Overall:"),
		output.ScoreBar(float64(r.Overall.Percentage), 20)))
	sb.WriteString(fmt.Sprintf(" %s %s\n",
		output.StyleLabel.Render("Grade:"),
		output.GradeStyle(r.Overall.Grade).Render(r.Overall.Grade)))
	if r.Overall.HasErrors {
		sb.WriteString(fmt.Sprintf(" %s %s\n",
			output.StyleLabel.Render("Errors:"),
			output.StyleError.Render("one or more analyzers failed")))
	}

	sb.WriteString(output.Section("Categories"))
	sb.WriteString("\n\n")

	tbl := output.NewTable("Category", "Score", "Grade", "Issues")
	for _, c := range r.Categories {
		scoreStr := fmt.Sprintf("%.1f/%.0f", c.Score, c.MaxScore)
		gradeStr := output.GradeStyle(c.Grade).Render(c.Grade)
		issueStr := fmt.Sprintf("%d", len(c.Issues))
		if c.Err != "" {
			issueStr = output.StyleError.Render("failed")
		}
		tbl.AddRow(c.Name, scoreStr, gradeStr, issueStr)
	}
	sb.WriteString(tbl.Render())

	if opts.Detailed {
		for _, c := range r.Categories {
			if len(c.Issues) == 0 {
				continue
			}
			sb.WriteString(output.Section(c.Name))
			sb.WriteString("\n\n")
			for _, issue := range c.Issues {
				sb.WriteString(fmt.Sprintf("   %s %s\n", output.StyleWarning.Render("!"), issue))
			}
		}
	}

	if opts.Recommendations && len(r.Recommendations) > 0 {
		sb.WriteString(output.Section("Recommendations"))
		sb.WriteString("\n\n")
		for i, rec := range r.Recommendations {
			sb.WriteString(fmt.Sprintf("  %2d. %s %s\n", i+1,
				output.StyleBold.Render(rec.Suggestion),
				output.StyleMuted.Render(fmt.Sprintf("(+%.1f pts, %s)", rec.Impact, rec.Category))))
			if rec.Description != "" {
				sb.WriteString(fmt.Sprintf("      %s\n", output.StyleMuted.Render(rec.Description)))
			}
		}
	}

	if !r.Validation.IsValid {
		sb.WriteString(output.Section("Validation"))
		sb.WriteString("\n\n")
		for _, e := range r.Validation.Errors {
			sb.WriteString(fmt.Sprintf("   %s %s\n", output.StyleError.Render("x"), e))
		}
	}

	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
