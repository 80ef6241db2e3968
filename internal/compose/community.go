package compose

import (
	"github.com/roach88/tiaki/internal/findings"
)

// CommunityTitle is the title of the community-voice document.
const CommunityTitle = "Community Voice Statement"

var communityClosing = []string{
	"We ask to be involved as partners from design through to close-out, with kaitiaki resourced to monitor works on site.",
	"Please contact the project team to confirm hui dates and how our kōrero will be reflected in the final design.",
}

// Community renders the community-voice document.
//
// Section order is fixed: project header, context, one block per finding,
// policy alignment, then participation.
func Community(set []findings.Finding, ctx Context) Document {
	doc := Document{Title: CommunityTitle}

	doc.Sections = append(doc.Sections, projectSection(ctx))
	doc.Sections = append(doc.Sections, Section{
		Heading: "Context",
		Paragraphs: []string{render(communityFramingTmpl, map[string]string{
			"Project":  ctx.project(),
			"Location": ctx.location(),
			"Values":   categoryList(set),
		})},
	})

	for _, f := range set {
		doc.Sections = append(doc.Sections, Section{
			Heading: categoryHeading(f.Category),
			Paragraphs: []string{
				"What we are worried about: " + orDefault(f.Issue, "none recorded"),
				"What will help: " + joinOr(f.Mitigations),
				"What we ask for: " + joinOr(f.Recommendations),
				"What we will watch: " + joinOr(f.Triggers.Metrics),
			},
		})
	}

	doc.Sections = append(doc.Sections, Section{
		Heading: "Policy alignment",
		Paragraphs: []string{render(communityPolicyTmpl, map[string]string{
			"Project": ctx.project(),
			"Label":   ctx.label(),
		})},
	})

	closing := make([]string, len(communityClosing))
	copy(closing, communityClosing)
	doc.Sections = append(doc.Sections, Section{
		Heading:    "Participation and our ask",
		Paragraphs: closing,
	})

	return doc
}
