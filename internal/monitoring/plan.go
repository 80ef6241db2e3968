// Package monitoring derives the monitoring schedule from findings.
//
// Derive is pure. It starts from four base rows, applies the species rule
// (insert at a fixed index when a keyword appears), then appends exactly
// one council row, so a plan always has 5 or 6 rows.
package monitoring

import (
	"strings"

	"github.com/roach88/tiaki/internal/export"
	"github.com/roach88/tiaki/internal/findings"
	"github.com/roach88/tiaki/internal/region"
	"github.com/roach88/tiaki/internal/textnorm"
)

// Row is one line of the monitoring schedule.
type Row struct {
	Phase     string `json:"phase"`
	Focus     string `json:"focus"`
	Role      string `json:"role"`
	Frequency string `json:"frequency"`
}

// Header is the column header for rendered and exported plans.
var Header = []string{"Phase", "Focus", "Role", "Frequency"}

// Frequencies for the toggle-capable council checkpoint.
const (
	StageGateFrequency = "at each stage-gate"
	DisabledFrequency  = "disabled (toggle off)"
)

var baseRows = []Row{
	{
		Phase:     "Pre-construction",
		Focus:     "Cultural and ecological baseline (wai, whenua, taonga species)",
		Role:      "Mana whenua kaitiaki with project ecologist",
		Frequency: "Once, before works begin",
	},
	{
		Phase:     "During earthworks",
		Focus:     "Sediment controls and accidental discovery checks",
		Role:      "Kaitiaki monitor on site",
		Frequency: "Daily during earthworks",
	},
	{
		Phase:     "During works",
		Focus:     "Ecology and water quality monitoring",
		Role:      "Project ecologist",
		Frequency: "Monthly",
	},
	{
		Phase:     "Close-out",
		Focus:     "Cultural close-out hui and final report",
		Role:      "Project lead with mana whenua",
		Frequency: "Once, at completion",
	},
}

// keywordRule inserts row at index when any keyword appears in the
// findings' issue or recommendation text.
type keywordRule struct {
	keywords []string
	row      Row
	index    int
}

var speciesRules = []keywordRule{
	{
		keywords: []string{"tuna", "eel", "kōura", "inanga", "pekapeka", "bat", "mudfish", "kākahi"},
		row: Row{
			Phase:     "Pre-construction",
			Focus:     "Taonga species salvage and relocation",
			Role:      "Mana whenua kaitiaki with project ecologist",
			Frequency: "Before each dewatering or clearance event",
		},
		index: 1,
	},
}

// councilRow is the checkpoint appended for a council. Toggleable rows take
// their frequency from the species checkpoint toggle.
type councilRow struct {
	row        Row
	toggleable bool
}

var councilRows = map[region.Council]councilRow{
	region.Hamilton: {
		row: Row{
			Phase: "Stage-gates",
			Focus: "Pekapeka (long-tailed bat) habitat checkpoint",
			Role:  "Bat ecologist with kaitiaki",
		},
		toggleable: true,
	},
	region.Waikato: {
		row: Row{
			Phase:     "During works",
			Focus:     "Marae access and construction noise check",
			Role:      "Site manager with marae committee",
			Frequency: "Weekly",
		},
	},
}

var unknownCouncilRow = councilRow{
	row: Row{
		Phase:     "During works",
		Focus:     "Council checkpoint (council to confirm)",
		Role:      "Project lead",
		Frequency: "To be confirmed",
	},
}

// Derive computes the monitoring plan. speciesCheckpoint only affects
// councils with a toggleable checkpoint.
func Derive(set []findings.Finding, council region.Council, speciesCheckpoint bool) []Row {
	rows := make([]Row, len(baseRows), len(baseRows)+2)
	copy(rows, baseRows)

	text := scanText(set)
	for _, rule := range speciesRules {
		if !rule.matches(text) || covers(rows, rule.row.Focus) {
			continue
		}
		rows = insertAt(rows, rule.index, rule.row)
	}

	cr, ok := councilRows[council]
	if !ok {
		cr = unknownCouncilRow
	}
	row := cr.row
	if cr.toggleable {
		row.Frequency = DisabledFrequency
		if speciesCheckpoint {
			row.Frequency = StageGateFrequency
		}
	}
	return append(rows, row)
}

// HasSpeciesRow reports whether rows contain the species salvage row.
func HasSpeciesRow(rows []Row) bool {
	for _, rule := range speciesRules {
		if covers(rows, rule.row.Focus) {
			return true
		}
	}
	return false
}

// Cells returns rows as plain-text cells in Header order.
func Cells(rows []Row) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.Phase, r.Focus, r.Role, r.Frequency}
	}
	return out
}

// Table converts rows into an export table.
func Table(rows []Row) *export.Table {
	return &export.Table{Header: append([]string(nil), Header...), Rows: Cells(rows)}
}

// Render renders rows as pipe-separated text, header first.
func Render(rows []Row) string {
	var b strings.Builder
	b.WriteString(strings.Join(Header, " | "))
	b.WriteString("\n")
	for _, cells := range Cells(rows) {
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString("\n")
	}
	return b.String()
}

func (r keywordRule) matches(text string) bool {
	for _, kw := range r.keywords {
		if textnorm.ContainsWord(text, kw) {
			return true
		}
	}
	return false
}

func scanText(set []findings.Finding) string {
	var parts []string
	for _, f := range set {
		parts = append(parts, f.Issue)
		parts = append(parts, f.Recommendations...)
	}
	return strings.Join(parts, " ")
}

func covers(rows []Row, focus string) bool {
	for _, r := range rows {
		if textnorm.Equal(r.Focus, focus) {
			return true
		}
	}
	return false
}

func insertAt(rows []Row, index int, row Row) []Row {
	if index > len(rows) {
		index = len(rows)
	}
	rows = append(rows, Row{})
	copy(rows[index+1:], rows[index:])
	rows[index] = row
	return rows
}
