// Command clausecheck analyzes a contract text file from the command line
// and prints a risk report, without needing the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/fairlance/clausecheck/internal/analysis"
)

const reportTemplate = `Contract Risk Report — {{.Document.Filename}}
{{repeat "=" 60}}
Risk score:      {{.RiskScore}}/100
Recommendation:  {{.Recommendation}}
Legal defects:   {{.LegalViolationCount}}
Unfair terms:    {{.UnfairTermCount}}
PII redacted:    {{.RedactedCount}}
{{- if .CriticalIssues}}

Critical issues:
{{- range .CriticalIssues}}
  - {{.}}
{{- end}}
{{- end}}

Violations ({{len .Violations}}):
{{- range .Violations}}
  [{{.Severity}}] {{.Label}} ({{.Section}})
      {{.ClauseText}}
      Fair alternative: {{.FairAlternative}}
{{- end}}
{{- if .Deviations}}

Deviations from fair standards ({{len .Deviations}}):
{{- range .Deviations}}
  [{{.Severity}}] {{.Label}}: found {{.FoundValue}}, fair {{.FairValue}}
      {{.Recommendation}}
{{- end}}
{{- end}}
`

func main() {
	var (
		file     = flag.String("file", "", "contract text file to analyze")
		asJSON   = flag.Bool("json", false, "emit the full result as JSON")
		redacted = flag.Bool("show-redacted", false, "print the redacted text and exit")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: clausecheck -file contract.txt [-json] [-show-redacted]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", *file, err)
		os.Exit(1)
	}
	text := string(data)

	if *redacted {
		fmt.Print(analysis.Redact(text).RedactedText)
		return
	}

	analyzer := analysis.NewAnalyzer(analysis.NewRuleSet(), analysis.DefaultHeuristics(), nil)
	result := analyzer.Analyze(context.Background(), text, analysis.DocumentMeta{
		Filename:         filepath.Base(*file),
		ExtractionMethod: "plaintext",
	})

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result)
		return
	}

	tmpl := template.Must(template.New("report").Funcs(template.FuncMap{
		"repeat": strings.Repeat,
	}).Parse(reportTemplate))
	if err := tmpl.Execute(os.Stdout, result); err != nil {
		fmt.Fprintf(os.Stderr, "failed to render report: %v\n", err)
		os.Exit(1)
	}
}
