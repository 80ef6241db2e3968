// Package selfcheck runs the fixed smoke checks over the pipeline.
//
// Checks run in order and stop at the first failure. The outcome is
// diagnostic only: a failing self-check never blocks composing or
// exporting.
package selfcheck

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/tiaki/internal/compose"
	"github.com/roach88/tiaki/internal/figures"
	"github.com/roach88/tiaki/internal/findings"
	"github.com/roach88/tiaki/internal/region"
)

// SuccessMessage is reported when every check passes.
const SuccessMessage = "All self-checks passed"

// Check names, in run order.
const (
	CheckFindingsComplete    = "findings-complete"
	CheckCommunityMarker     = "community-marker"
	CheckTechnicalPolicy     = "technical-policy"
	CheckCanonicalCategories = "canonical-categories"
	CheckFigureSelected      = "figure-selected"
	CheckCanaryLocations     = "canary-locations"
)

// Env is the state under check.
type Env struct {
	Findings []findings.Finding
	Context  compose.Context
	Figures  []figures.Figure
}

// Outcome is the result of a run. Check names the failing check; it is
// empty on success.
type Outcome struct {
	Pass    bool   `json:"pass"`
	Check   string `json:"check,omitempty"`
	Message string `json:"message"`
}

func (o Outcome) String() string {
	return o.Message
}

type check struct {
	name string
	run  func(Env, *Scenario) error
}

var checks = []check{
	{CheckFindingsComplete, checkFindingsComplete},
	{CheckCommunityMarker, checkCommunityMarker},
	{CheckTechnicalPolicy, checkTechnicalPolicy},
	{CheckCanonicalCategories, checkCanonicalCategories},
	{CheckFigureSelected, checkFigureSelected},
	{CheckCanaryLocations, checkCanaryLocations},
}

// Names returns the check names in run order.
func Names() []string {
	out := make([]string, len(checks))
	for i, c := range checks {
		out[i] = c.name
	}
	return out
}

// Run executes the checks against env. A nil scenario uses the embedded
// default.
func Run(env Env, scenario *Scenario) Outcome {
	if scenario == nil {
		scenario = DefaultScenario()
	}
	for _, c := range checks {
		if err := c.run(env, scenario); err != nil {
			return Outcome{Check: c.name, Message: err.Error()}
		}
	}
	return Outcome{Pass: true, Message: SuccessMessage}
}

func checkFindingsComplete(env Env, _ *Scenario) error {
	for i, f := range env.Findings {
		missing := missingFields(f)
		if len(missing) > 0 {
			return fmt.Errorf("finding %d (%s) is missing %s", i+1, orUnnamed(string(f.Category)), strings.Join(missing, ", "))
		}
	}
	return nil
}

func missingFields(f findings.Finding) []string {
	var missing []string
	for _, field := range []struct {
		name  string
		empty bool
	}{
		{"category", strings.TrimSpace(string(f.Category)) == ""},
		{"issue", strings.TrimSpace(f.Issue) == ""},
		{"cultural effects", len(f.Effects.Cultural) == 0},
		{"social effects", len(f.Effects.Social) == 0},
		{"environmental effects", len(f.Effects.Environmental) == 0},
		{"spiritual effects", len(f.Effects.Spiritual) == 0},
		{"mitigations", len(f.Mitigations) == 0},
		{"recommendations", len(f.Recommendations) == 0},
		{"trigger metrics", len(f.Triggers.Metrics) == 0},
	} {
		if field.empty {
			missing = append(missing, field.name)
		}
	}
	return missing
}

func orUnnamed(s string) string {
	if s == "" {
		return "unnamed"
	}
	return s
}

func checkCommunityMarker(env Env, s *Scenario) error {
	doc := compose.Community(env.Findings, env.Context)
	if !doc.Contains(s.CommunityMarker) {
		return fmt.Errorf("community document is missing %q", s.CommunityMarker)
	}
	return nil
}

func checkTechnicalPolicy(env Env, _ *Scenario) error {
	phrase := compose.PolicyPhrase(env.Context.Council)
	doc := compose.Technical(env.Findings, env.Context)
	if !doc.Contains(phrase) {
		return fmt.Errorf("technical document does not cite %q", phrase)
	}
	return nil
}

func checkCanonicalCategories(env Env, _ *Scenario) error {
	got := make([]string, len(env.Findings))
	for i, f := range env.Findings {
		got[i] = string(f.Category)
	}
	want := make([]string, 0, len(findings.Canonical()))
	for _, c := range findings.Canonical() {
		want = append(want, string(c))
	}

	sortedGot := slices.Sorted(slices.Values(got))
	if !slices.Equal(sortedGot, slices.Sorted(slices.Values(want))) {
		return fmt.Errorf("categories %v do not match the canonical six %v", got, want)
	}
	return nil
}

func checkFigureSelected(env Env, _ *Scenario) error {
	if len(figures.Selected(env.Figures)) == 0 {
		return fmt.Errorf("no figures selected")
	}
	return nil
}

func checkCanaryLocations(_ Env, s *Scenario) error {
	council, err := region.ParseCouncil(s.Council)
	if err != nil {
		return err
	}
	for _, c := range s.Canaries {
		res := region.Classify(c.Location, council)
		if res.Pending {
			return fmt.Errorf("canary %q is ambiguous: %v", c.Location, res.Candidates)
		}
		if res.Label != c.Expect {
			return fmt.Errorf("canary %q classified as %q, expected %q", c.Location, res.Label, c.Expect)
		}
	}
	return nil
}
