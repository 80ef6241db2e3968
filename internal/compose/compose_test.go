package compose

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tiaki/internal/findings"
	"github.com/roach88/tiaki/internal/region"
)

func defaultFindings(t *testing.T) []findings.Finding {
	t.Helper()
	repo, err := findings.Default()
	require.NoError(t, err)
	return repo.All()
}

func hamiltonContext() Context {
	return Context{
		ProjectName: "Beerescourt Stormwater Upgrade",
		Location:    "Beerescourt",
		Council:     region.Hamilton,
		Label:       "Waitawhiriwhiri ICMP",
	}
}

func TestCommunityStructure(t *testing.T) {
	set := defaultFindings(t)
	doc := Community(set, hamiltonContext())

	assert.Equal(t, CommunityTitle, doc.Title)
	require.Len(t, doc.Sections, 2+len(set)+2)

	assert.Equal(t, "Project", doc.Sections[0].Heading)
	assert.Equal(t, "Context", doc.Sections[1].Heading)
	assert.Equal(t, "Wai", doc.Sections[2].Heading)
	assert.Equal(t, "Whānau", doc.Sections[5].Heading)
	assert.Equal(t, "Policy alignment", doc.Sections[len(doc.Sections)-2].Heading)
	assert.Equal(t, "Participation and our ask", doc.Sections[len(doc.Sections)-1].Heading)

	wai := doc.Sections[2].Paragraphs
	require.Len(t, wai, 4)
	assert.True(t, strings.HasPrefix(wai[0], "What we are worried about: "))
	assert.Contains(t, wai[3], "Total suspended solids at discharge points; Turbidity upstream and downstream of works")
}

func TestCommunityInterpolatesLabel(t *testing.T) {
	doc := Community(defaultFindings(t), hamiltonContext())
	assert.True(t, doc.Contains("give effect to the Waitawhiriwhiri ICMP"))
	assert.True(t, doc.Contains(CommunityTitle))
	assert.True(t, doc.Contains("wai, whenua, whakapapa, whānau, mauri and wairua"))
}

func TestCommunityLabelNotSet(t *testing.T) {
	ctx := hamiltonContext()
	ctx.Label = ""
	doc := Community(defaultFindings(t), ctx)
	assert.True(t, doc.Contains("give effect to the "+region.NotSet))
}

func TestTechnicalPolicyPhraseByCouncil(t *testing.T) {
	set := defaultFindings(t)

	ham := Technical(set, hamiltonContext())
	scope := ham.Sections[1]
	require.Equal(t, "Assessment scope", scope.Heading)
	assert.Contains(t, scope.Paragraphs[0], PolicyPhrase(region.Hamilton))
	assert.NotContains(t, scope.Paragraphs[0], PolicyPhrase(region.Waikato))

	ctx := hamiltonContext()
	ctx.Council = region.Waikato
	ctx.Label = region.Classify(ctx.Location, region.Waikato).Label
	wai := Technical(set, ctx)
	assert.Contains(t, wai.Sections[1].Paragraphs[0], PolicyPhrase(region.Waikato))
	assert.Contains(t, wai.Sections[1].Paragraphs[0], "Waikato District ICMP (area to confirm)")
}

func TestTechnicalMatrixAndConditions(t *testing.T) {
	set := defaultFindings(t)
	doc := Technical(set, hamiltonContext())

	matrix := doc.Sections[2]
	assert.Len(t, matrix.Paragraphs, len(set))
	assert.True(t, strings.HasPrefix(matrix.Paragraphs[0], "Wai: Issue: "))
	assert.Contains(t, matrix.Paragraphs[0], " | Policy: Te Ture Whaimana")

	total := 0
	for _, f := range set {
		total += len(f.ConsentClauses)
	}
	conditions := doc.Sections[3]
	require.Len(t, conditions.Paragraphs, total)
	assert.True(t, strings.HasPrefix(conditions.Paragraphs[0], "1. "))
	assert.True(t, strings.HasPrefix(conditions.Paragraphs[total-1], fmt.Sprintf("%d. ", total)))

	assert.Equal(t, "Monitoring and adaptive management", doc.Sections[4].Heading)
	assert.Equal(t, []string{adaptiveManagement}, doc.Sections[4].Paragraphs)
}

func TestRenderersAreDeterministic(t *testing.T) {
	set := defaultFindings(t)
	ctx := hamiltonContext()

	assert.Equal(t, Community(set, ctx).String(), Community(set, ctx).String())
	assert.Equal(t, Technical(set, ctx).String(), Technical(set, ctx).String())
	assert.Equal(t, Technical(set, ctx).Markdown(), Technical(set, ctx).Markdown())
}

func TestRenderersDoNotMutateFindings(t *testing.T) {
	set := defaultFindings(t)
	before := make([]findings.Finding, len(set))
	for i, f := range set {
		before[i] = f.Clone()
	}

	_ = Community(set, hamiltonContext())
	_ = Technical(set, hamiltonContext())
	assert.Equal(t, before, set)
}

func TestRenderIncompleteFinding(t *testing.T) {
	set := []findings.Finding{{Category: findings.Wai}}

	doc := Community(set, Context{Council: region.Hamilton})
	assert.True(t, doc.Contains("What we are worried about: none recorded"))
	assert.True(t, doc.Contains("What will help: none recorded"))
	assert.True(t, doc.Contains("Project: the project"))

	tech := Technical(set, Context{Council: region.Hamilton})
	assert.True(t, tech.Contains("No consent conditions recorded."))
}

func TestDocumentLinesAndMarkdown(t *testing.T) {
	doc := Document{
		Title: "T",
		Sections: []Section{
			{Heading: "A", Paragraphs: []string{"a1", "a2"}},
			{Heading: "B", Paragraphs: []string{"b1"}},
		},
	}

	assert.Equal(t, []string{"A", "a1", "a2", "B", "b1"}, doc.Lines())
	assert.Equal(t, "T\n\nA\na1\na2\n\nB\nb1\n", doc.String())
	assert.Equal(t, "# T\n\n## A\n\na1\n\na2\n\n\n## B\n\nb1\n\n", doc.Markdown())
}

func TestPolicyPhraseUnknownCouncil(t *testing.T) {
	assert.Equal(t, "relevant district and regional planning instruments", PolicyPhrase(region.Council("x")))
}
