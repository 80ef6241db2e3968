package cli

import (
	"fmt"

	"github.com/roach88/tiaki/internal/compose"
	"github.com/roach88/tiaki/internal/export"
	"github.com/roach88/tiaki/internal/figures"
	"github.com/roach88/tiaki/internal/findings"
	"github.com/roach88/tiaki/internal/monitoring"
	"github.com/roach88/tiaki/internal/session"
)

// Document kinds accepted by compose and export.
const (
	DocCommunity = "community"
	DocTechnical = "technical"
	DocPlan      = "plan"
	DocAll       = "all"
)

// PlanTitle is the title of the exported monitoring plan.
const PlanTitle = "Monitoring Plan"

// expandKinds resolves "all" to the three documents in export order.
func expandKinds(kind string) ([]string, error) {
	switch kind {
	case DocCommunity, DocTechnical, DocPlan:
		return []string{kind}, nil
	case DocAll:
		return []string{DocCommunity, DocTechnical, DocPlan}, nil
	}
	return nil, fmt.Errorf("unknown document %q: must be community, technical, plan or all", kind)
}

func narrative(kind string, set []findings.Finding, s session.Session) (compose.Document, error) {
	switch kind {
	case DocCommunity:
		return compose.Community(set, s.Context()), nil
	case DocTechnical:
		return compose.Technical(set, s.Context()), nil
	}
	return compose.Document{}, fmt.Errorf("unknown narrative %q: must be community or technical", kind)
}

// buildRequest assembles the export request for one document. Narratives
// carry the selected figures; the plan is a table only.
func buildRequest(kind string, set []findings.Finding, s session.Session) (export.Request, error) {
	if kind == DocPlan {
		rows := monitoring.Derive(set, s.Council, s.SpeciesCheckpoint)
		return export.Request{
			Title: PlanTitle,
			Body: []string{
				"Project: " + firstNonEmpty(s.Project, "the project"),
				"Council: " + s.Council.DisplayName(),
				"Area: " + s.Label(),
			},
			Table: monitoring.Table(rows),
		}, nil
	}

	doc, err := narrative(kind, set, s)
	if err != nil {
		return export.Request{}, err
	}
	req := export.Request{
		Title:   doc.Title,
		Project: s.Project,
		Body:    doc.Lines(),
		Images:  figures.Images(s.Figures),
	}
	if kind == DocTechnical {
		req.Table = &export.Table{Header: compose.MatrixHeader, Rows: compose.Matrix(set)}
	}
	return req, nil
}

func buildRequests(kinds []string, set []findings.Finding, s session.Session) ([]export.Request, error) {
	reqs := make([]export.Request, 0, len(kinds))
	for _, k := range kinds {
		req, err := buildRequest(k, set, s)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
