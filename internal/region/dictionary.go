package region

import "github.com/roach88/tiaki/internal/textnorm"

// Region is a named area with the predicates that identify it.
type Region struct {
	Name       string
	Predicates []Predicate
}

// Matches reports whether any predicate matches the normalized text.
func (r Region) Matches(normalized string) bool {
	for _, p := range r.Predicates {
		if p.Match(normalized) {
			return true
		}
	}
	return false
}

// Dictionary is an append-only, ordered set of regions for one council.
// Declaration order is significant: it orders disambiguation candidates.
type Dictionary struct {
	council Council
	regions []Region
}

// NewDictionary creates an empty dictionary for council.
func NewDictionary(council Council) *Dictionary {
	return &Dictionary{council: council}
}

// Append adds regions in order and returns d for chaining.
func (d *Dictionary) Append(regions ...Region) *Dictionary {
	d.regions = append(d.regions, regions...)
	return d
}

// Council returns the owning council.
func (d *Dictionary) Council() Council {
	return d.council
}

// Regions returns a copy of the regions in declaration order.
func (d *Dictionary) Regions() []Region {
	out := make([]Region, len(d.regions))
	copy(out, d.regions)
	return out
}

// Len returns the number of regions.
func (d *Dictionary) Len() int {
	return len(d.regions)
}

// Match returns the names of all regions matching location, in declaration
// order. The location is normalized here.
func (d *Dictionary) Match(location string) []string {
	normalized := textnorm.Normalize(location)
	if normalized == "" {
		return nil
	}
	var names []string
	for _, r := range d.regions {
		if r.Matches(normalized) {
			names = append(names, r.Name)
		}
	}
	return names
}
