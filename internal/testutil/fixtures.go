// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/tiaki/internal/findings"
)

// Findings returns a deep copy of the embedded knowledge base.
func Findings(t testing.TB) []findings.Finding {
	t.Helper()
	repo, err := findings.Default()
	require.NoError(t, err)
	return repo.All()
}

// NeutralFindings returns the embedded findings with issue and
// recommendation text replaced by wording that names no taonga species.
func NeutralFindings(t testing.TB) []findings.Finding {
	t.Helper()
	set := Findings(t)
	for i := range set {
		set[i].Issue = "General effects on " + string(set[i].Category) + " values."
		set[i].Recommendations = []string{"Keep mana whenua informed."}
	}
	return set
}
