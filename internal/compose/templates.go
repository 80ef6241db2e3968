package compose

import (
	"strings"
	"text/template"
)

var (
	communityFramingTmpl = template.Must(template.New("framing").Parse(
		`This statement sets out what mana whenua and the wider community have told us about {{.Project}} at {{.Location}}. ` +
			`It is written in our own voice and speaks to {{.Values}}.`))

	communityPolicyTmpl = template.Must(template.New("policy").Parse(
		`We expect {{.Project}} to give effect to the {{.Label}} and to the outcomes mana whenua seek for the wider catchment.`))

	technicalScopeTmpl = template.Must(template.New("scope").Parse(
		`This assessment considers the effects of {{.Project}} at {{.Location}} ({{.Label}}) on the cultural values of mana whenua. ` +
			`It has been prepared with reference to the {{.Policy}}.`))

	matrixRowTmpl = template.Must(template.New("matrix").Parse(
		`{{.Category}}: Issue: {{.Issue}} | Mitigation: {{.Mitigation}} | Recommendation: {{.Recommendation}} | Policy: {{.Policy}}`))
)

// render executes a static template. The templates above are fixed and
// only read string fields, so an execution error is a programming error.
func render(t *template.Template, data any) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		panic("compose: template " + t.Name() + ": " + err.Error())
	}
	return b.String()
}
