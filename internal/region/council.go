package region

import (
	"errors"
	"fmt"
	"strings"
)

// Council identifies one of the two supported jurisdictions.
type Council string

const (
	Hamilton Council = "hamilton"
	Waikato  Council = "waikato"
)

// ErrUnknownCouncil is returned by ParseCouncil for unrecognised input.
var ErrUnknownCouncil = errors.New("unknown council")

var councilNames = map[Council]string{
	Hamilton: "Hamilton City",
	Waikato:  "Waikato District",
}

var councilAliases = map[string]Council{
	"hamilton":         Hamilton,
	"hcc":              Hamilton,
	"hamilton-city":    Hamilton,
	"hamilton city":    Hamilton,
	"waikato":          Waikato,
	"wdc":              Waikato,
	"waikato-district": Waikato,
	"waikato district": Waikato,
}

// Councils returns the supported councils in display order.
func Councils() []Council {
	return []Council{Hamilton, Waikato}
}

// ParseCouncil resolves a council from a name or alias, case-insensitively.
func ParseCouncil(s string) (Council, error) {
	c, ok := councilAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q (want one of hamilton, waikato)", ErrUnknownCouncil, s)
	}
	return c, nil
}

// DisplayName returns the human-readable council name.
func (c Council) DisplayName() string {
	if name, ok := councilNames[c]; ok {
		return name
	}
	return string(c)
}

// Fallback returns the label used when no region matches.
func (c Council) Fallback() string {
	return c.DisplayName() + " ICMP (area to confirm)"
}

// Valid reports whether c is a supported council.
func (c Council) Valid() bool {
	_, ok := councilNames[c]
	return ok
}

func (c Council) String() string {
	return string(c)
}
