// Package region maps free-text locations to council-scoped ICMP labels.
//
// Each council owns a Dictionary of Regions. A Region matches when any of
// its Predicates matches the normalized location text. Classify walks the
// dictionary in declaration order and returns either a resolved label or a
// pending disambiguation that the caller must confirm explicitly.
//
// Classification has no hidden state: identical (location, council) pairs
// always yield identical ordered candidates.
package region
