package compose

import (
	"fmt"

	"github.com/roach88/tiaki/internal/findings"
)

// TechnicalTitle is the title of the technical-voice document.
const TechnicalTitle = "Technical Cultural Impact Assessment"

// MatrixHeader is the header row of the issue matrix table.
var MatrixHeader = []string{"Category", "Issue", "Mitigation", "Recommendation", "Policy"}

const adaptiveManagement = "Monitoring will follow the triggers set out for each value. " +
	"Where a threshold is reached, the consent holder will pause the affected works, notify mana whenua " +
	"and agree corrective actions before work resumes. The monitoring plan will be reviewed at each " +
	"stage-gate and updated as results become available."

// Technical renders the technical-voice document.
func Technical(set []findings.Finding, ctx Context) Document {
	doc := Document{Title: TechnicalTitle}

	doc.Sections = append(doc.Sections, projectSection(ctx))
	doc.Sections = append(doc.Sections, Section{
		Heading: "Assessment scope",
		Paragraphs: []string{render(technicalScopeTmpl, map[string]string{
			"Project":  ctx.project(),
			"Location": ctx.location(),
			"Label":    ctx.label(),
			"Policy":   PolicyPhrase(ctx.Council),
		})},
	})

	matrix := Section{Heading: "Issue, mitigation, recommendation and policy matrix"}
	for _, row := range Matrix(set) {
		matrix.Paragraphs = append(matrix.Paragraphs, render(matrixRowTmpl, map[string]string{
			"Category":       row[0],
			"Issue":          row[1],
			"Mitigation":     row[2],
			"Recommendation": row[3],
			"Policy":         row[4],
		}))
	}
	doc.Sections = append(doc.Sections, matrix)

	conditions := Section{Heading: "Recommended consent conditions"}
	n := 0
	for _, f := range set {
		for _, clause := range f.ConsentClauses {
			n++
			conditions.Paragraphs = append(conditions.Paragraphs, fmt.Sprintf("%d. %s", n, clause))
		}
	}
	if n == 0 {
		conditions.Paragraphs = []string{"No consent conditions recorded."}
	}
	doc.Sections = append(doc.Sections, conditions)

	doc.Sections = append(doc.Sections, Section{
		Heading:    "Monitoring and adaptive management",
		Paragraphs: []string{adaptiveManagement},
	})

	return doc
}

// Matrix returns one row per finding with the columns in MatrixHeader.
func Matrix(set []findings.Finding) [][]string {
	rows := make([][]string, 0, len(set))
	for _, f := range set {
		rows = append(rows, []string{
			categoryHeading(f.Category),
			orDefault(f.Issue, "none recorded"),
			joinOr(f.Mitigations),
			joinOr(f.Recommendations),
			joinOr(f.PolicyLinks),
		})
	}
	return rows
}
