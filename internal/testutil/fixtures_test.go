package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindingsAreIndependentCopies(t *testing.T) {
	a := Findings(t)
	b := Findings(t)
	a[0].Issue = "changed"
	assert.NotEqual(t, a[0].Issue, b[0].Issue)
}

func TestNeutralFindingsKeepCategories(t *testing.T) {
	full := Findings(t)
	neutral := NeutralFindings(t)
	assert.Len(t, neutral, len(full))
	for i := range full {
		assert.Equal(t, full[i].Category, neutral[i].Category)
		assert.Equal(t, []string{"Keep mana whenua informed."}, neutral[i].Recommendations)
	}
}
