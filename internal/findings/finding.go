// Package findings holds the static, validated knowledge base of
// assessment findings.
//
// The knowledge base is CUE data unified with a CUE schema, then checked by
// Validate for the invariants CUE cannot express. A repository that fails
// either step is never constructed: callers get a *LoadError and must not
// continue.
package findings

// Category is one of the six canonical assessment categories.
type Category string

const (
	Wai       Category = "wai"
	Whenua    Category = "whenua"
	Whakapapa Category = "whakapapa"
	Whanau    Category = "whānau"
	Mauri     Category = "mauri"
	Wairua    Category = "wairua"
)

// Canonical returns the six categories in canonical order.
func Canonical() []Category {
	return []Category{Wai, Whenua, Whakapapa, Whanau, Mauri, Wairua}
}

// Finding is a structured assessment entry for one category.
type Finding struct {
	Category        Category    `json:"category"`
	Issue           string      `json:"issue"`
	Effects         Effects     `json:"effects"`
	Mitigations     []string    `json:"mitigations"`
	Recommendations []string    `json:"recommendations"`
	Triggers        TriggerSpec `json:"triggers"`
	PolicyLinks     []string    `json:"policy_links"`
	ConsentClauses  []string    `json:"consent_clauses"`
}

// Effects groups effects by axis.
type Effects struct {
	Cultural      []string `json:"cultural"`
	Social        []string `json:"social"`
	Environmental []string `json:"environmental"`
	Spiritual     []string `json:"spiritual"`
}

// TriggerSpec defines when and how a finding's risk is escalated.
type TriggerSpec struct {
	Metrics    []string `json:"metrics"`
	Baselines  string   `json:"baselines"`
	Thresholds []string `json:"thresholds"`
	Actions    []string `json:"actions"`
	Reporting  string   `json:"reporting"`
}

// Clone returns a deep copy of f.
func (f Finding) Clone() Finding {
	out := f
	out.Effects = Effects{
		Cultural:      cloneStrings(f.Effects.Cultural),
		Social:        cloneStrings(f.Effects.Social),
		Environmental: cloneStrings(f.Effects.Environmental),
		Spiritual:     cloneStrings(f.Effects.Spiritual),
	}
	out.Mitigations = cloneStrings(f.Mitigations)
	out.Recommendations = cloneStrings(f.Recommendations)
	out.Triggers.Metrics = cloneStrings(f.Triggers.Metrics)
	out.Triggers.Thresholds = cloneStrings(f.Triggers.Thresholds)
	out.Triggers.Actions = cloneStrings(f.Triggers.Actions)
	out.PolicyLinks = cloneStrings(f.PolicyLinks)
	out.ConsentClauses = cloneStrings(f.ConsentClauses)
	return out
}

// axes returns the effect axes by name, in a fixed order.
func (e Effects) axes() []struct {
	name  string
	items []string
} {
	return []struct {
		name  string
		items []string
	}{
		{"cultural", e.Cultural},
		{"social", e.Social},
		{"environmental", e.Environmental},
		{"spiritual", e.Spiritual},
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
