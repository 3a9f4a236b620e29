package report

import (
	"html/template"
	"io"
)

// gradeClass picks a CSS class for a percentage band.
func gradeClass(percentage int) string {
	switch {
	case percentage >= 80:
		return "good"
	case percentage >= 60:
		return "warn"
	default:
		return "bad"
	}
}

// htmlTemplate renders a self-contained single-page report.
var htmlTemplate = template.Must(template.New("report").
	Funcs(template.FuncMap{"gradeClass": gradeClass}).
	Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Score Report: {{.Project.Name}}</title>
<style>
  body { font-family: -apple-system, sans-serif; margin: 2rem auto; max-width: 760px; color: #222; }
  h1 { font-size: 1.4rem; }
  h2 { font-size: 1.1rem; margin-top: 2rem; }
  table { border-collapse: collapse; width: 100%; }
  th, td { text-align: left; padding: 0.4rem 0.8rem; border-bottom: 1px solid #ddd; }
  .grade { font-weight: bold; }
  .good { color: #2e7d32; }
  .warn { color: #b26a00; }
  .bad { color: #c62828; }
  .muted { color: #888; font-size: 0.9rem; }
</style>
</head>
<body>
<h1>{{.Project.Name}} &mdash; {{printf "%.1f" .Overall.Score}}/{{printf "%.0f" .Overall.MaxScore}} ({{.Overall.Grade}})</h1>
<p class="muted">{{.Project.Type}} &middot; analyzed {{.Overall.Timestamp.Format "2006-01-02 15:04 MST"}}</p>
{{if .Overall.HasErrors}}<p class="bad">One or more analyzers failed; their categories scored zero.</p>{{end}}
{{if not .Validation.IsValid}}
<h2>Validation errors</h2>
<ul>{{range .Validation.Errors}}<li class="bad">{{.}}</li>{{end}}</ul>
{{end}}

<h2>Categories</h2>
<table>
<tr><th>Category</th><th>Score</th><th>Percentage</th><th>Grade</th></tr>
{{range .Categories}}
<tr>
  <td>{{.Name}}</td>
  <td>{{printf "%.1f" .Score}}/{{printf "%.0f" .MaxScore}}</td>
  <td>{{.Percentage}}%</td>
  <td class="grade {{gradeClass .Percentage}}">{{.Grade}}</td>
</tr>
{{end}}
</table>

{{if .Recommendations}}
<h2>Recommendations</h2>
<ol>
{{range .Recommendations}}
  <li><strong>{{.Suggestion}}</strong> <span class="muted">(+{{printf "%.1f" .Impact}} pts, {{.Category}})</span><br>{{.Description}}</li>
{{end}}
</ol>
{{end}}
</body>
</html>
`))

// WriteHTML renders the report as a standalone HTML page.
func WriteHTML(w io.Writer, r *Report) error {
	return htmlTemplate.Execute(w, r)
}
