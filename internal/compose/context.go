package compose

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/tiaki/internal/findings"
	"github.com/roach88/tiaki/internal/region"
)

// Context is the project information both renderers interpolate.
type Context struct {
	ProjectName string         `json:"project_name"`
	Location    string         `json:"location"`
	Council     region.Council `json:"council"`
	// Label is the resolved classification label; empty renders region.NotSet.
	Label string `json:"label"`
}

func (c Context) project() string {
	return orDefault(c.ProjectName, "the project")
}

func (c Context) location() string {
	return orDefault(c.Location, "a location to be confirmed")
}

func (c Context) label() string {
	return orDefault(c.Label, region.NotSet)
}

// policyPhrases selects the planning instruments named in the technical
// assessment scope, by council.
var policyPhrases = map[region.Council]string{
	region.Hamilton: "Hamilton City Operative District Plan and the Hamilton Integrated Catchment Management Plans",
	region.Waikato:  "Waikato District Plan and Te Ture Whaimana o Te Awa o Waikato",
}

// PolicyPhrase returns the policy instruments phrase for council.
func PolicyPhrase(c region.Council) string {
	if p, ok := policyPhrases[c]; ok {
		return p
	}
	return "relevant district and regional planning instruments"
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// joinOr joins items with "; ", or returns "none recorded".
func joinOr(items []string) string {
	if len(items) == 0 {
		return "none recorded"
	}
	return strings.Join(items, "; ")
}

// categoryHeading title-cases a category label, keeping macrons.
func categoryHeading(c findings.Category) string {
	if c == "" {
		return "Uncategorised"
	}
	return cases.Title(language.Und).String(string(c))
}

func categoryList(set []findings.Finding) string {
	names := make([]string, 0, len(set))
	for _, f := range set {
		names = append(names, string(f.Category))
	}
	switch len(names) {
	case 0:
		return "our values"
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

func projectSection(ctx Context) Section {
	return Section{
		Heading: "Project",
		Paragraphs: []string{
			"Project: " + ctx.project(),
			"Location: " + ctx.location(),
			"Council: " + ctx.Council.DisplayName(),
		},
	}
}
