package region

// Result is the outcome of a classification: either Resolved with a Label,
// or Pending with ordered Candidates awaiting confirmation.
type Result struct {
	Label      string   `json:"label,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
	Pending    bool     `json:"pending"`
}

// Resolved returns a resolved result.
func Resolved(label string) Result {
	return Result{Label: label}
}

// PendingOf returns a pending result over candidates.
func PendingOf(candidates []string) Result {
	c := make([]string, len(candidates))
	copy(c, candidates)
	return Result{Candidates: c, Pending: true}
}

// Default returns the tentative choice of a pending result (the first
// candidate in dictionary order), or the label of a resolved one.
func (r Result) Default() string {
	if r.Pending {
		if len(r.Candidates) == 0 {
			return ""
		}
		return r.Candidates[0]
	}
	return r.Label
}

// Classify classifies location against the council's built-in dictionary.
func Classify(location string, council Council) Result {
	return ClassifyWith(DictionaryFor(council), location)
}

// ClassifyWith classifies location against d.
//
//   - no match: resolved to the council fallback
//   - one match: resolved to that region
//   - two or more: pending, candidates in declaration order
func ClassifyWith(d *Dictionary, location string) Result {
	matches := d.Match(location)
	switch len(matches) {
	case 0:
		return Resolved(d.Council().Fallback())
	case 1:
		return Resolved(matches[0])
	default:
		return PendingOf(matches)
	}
}

// NotSet is shown wherever a resolved label is needed but none exists yet.
const NotSet = "(not set)"
