package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySingleMatch(t *testing.T) {
	tests := []struct {
		location string
		council  Council
		expected string
	}{
		{"Rotokauri", Hamilton, "Rotokauri ICMP"},
		{"Beerescourt", Hamilton, "Waitawhiriwhiri ICMP"},
		{"12 Forest Lake Road", Hamilton, "Waitawhiriwhiri ICMP"},
		{"PEACOCKE stage 2", Hamilton, "Peacocke ICMP"},
		{"Ngāruawāhia", Waikato, "Ngāruawāhia ICMP"},
		{"ngaruawahia", Waikato, "Ngāruawāhia ICMP"},
		{"Whaingaroa harbour", Waikato, "Raglan ICMP"},
		{"Pokeno interchange", Waikato, "Pōkeno ICMP"},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			result := Classify(tt.location, tt.council)
			assert.False(t, result.Pending)
			assert.Empty(t, result.Candidates)
			assert.Equal(t, tt.expected, result.Label)
		})
	}
}

func TestClassifyFallback(t *testing.T) {
	result := Classify("", Hamilton)
	assert.False(t, result.Pending)
	assert.Equal(t, "Hamilton City ICMP (area to confirm)", result.Label)

	result = Classify("somewhere else entirely", Waikato)
	assert.False(t, result.Pending)
	assert.Equal(t, "Waikato District ICMP (area to confirm)", result.Label)
}

func TestClassifyPending(t *testing.T) {
	result := Classify("Rotokauri and Beerescourt", Hamilton)
	require.True(t, result.Pending)
	assert.GreaterOrEqual(t, len(result.Candidates), 2)
	assert.Equal(t, []string{"Rotokauri ICMP", "Waitawhiriwhiri ICMP"}, result.Candidates)
	assert.Equal(t, "Rotokauri ICMP", result.Default())
	assert.Empty(t, result.Label)
}

func TestClassifyPendingUsesDeclarationOrder(t *testing.T) {
	// Input order is reversed relative to the dictionary.
	result := Classify("Glenview to Crawshaw", Hamilton)
	require.True(t, result.Pending)
	assert.Equal(t, []string{"Waitawhiriwhiri ICMP", "Mangakotukutuku ICMP"}, result.Candidates)
	assert.Equal(t, "Waitawhiriwhiri ICMP", result.Default())
}

func TestClassifyDeterministic(t *testing.T) {
	inputs := []string{"Rotokauri and Beerescourt", "Hillcrest, Silverdale", "", "Huntly"}
	for _, in := range inputs {
		for _, c := range Councils() {
			first := Classify(in, c)
			for i := 0; i < 5; i++ {
				assert.Equal(t, first, Classify(in, c))
			}
		}
	}
}

func TestClassifyCouncilSwitchChangesFallback(t *testing.T) {
	assert.Equal(t, "Waitawhiriwhiri ICMP", Classify("Beerescourt", Hamilton).Label)
	assert.Equal(t, "Waikato District ICMP (area to confirm)", Classify("Beerescourt", Waikato).Label)
}

func TestClassifyWordBoundaries(t *testing.T) {
	// "baderton" must not match the "bader" term.
	result := Classify("Baderton Street", Hamilton)
	assert.Equal(t, Hamilton.Fallback(), result.Label)
}

func TestClassifyUnknownCouncil(t *testing.T) {
	result := Classify("Rotokauri", Council("tauranga"))
	assert.False(t, result.Pending)
	assert.Equal(t, "tauranga ICMP (area to confirm)", result.Label)
}

func TestClassifyWithCustomPredicates(t *testing.T) {
	d := NewDictionary(Hamilton).Append(
		Region{Name: "A", Predicates: []Predicate{NewContains("alpha")}},
		Region{Name: "B", Predicates: []Predicate{PredicateFunc(func(s string) bool { return s == "beta" })}},
	)

	assert.Equal(t, Resolved("A"), ClassifyWith(d, "ALPHAbet"))
	assert.Equal(t, Resolved("B"), ClassifyWith(d, "Beta"))
	assert.Equal(t, Resolved(Hamilton.Fallback()), ClassifyWith(d, "gamma"))
}

func TestDictionaryRegionsIsCopy(t *testing.T) {
	d := DictionaryFor(Hamilton)
	regions := d.Regions()
	regions[0].Name = "mutated"
	assert.Equal(t, "Rotokauri ICMP", d.Regions()[0].Name)
}

func TestParseCouncil(t *testing.T) {
	tests := []struct {
		input    string
		expected Council
	}{
		{"hamilton", Hamilton},
		{"HCC", Hamilton},
		{" Hamilton-City ", Hamilton},
		{"waikato", Waikato},
		{"WDC", Waikato},
		{"Waikato District", Waikato},
	}
	for _, tt := range tests {
		c, err := ParseCouncil(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, c)
	}

	_, err := ParseCouncil("auckland")
	require.ErrorIs(t, err, ErrUnknownCouncil)
}

func TestCouncilLabels(t *testing.T) {
	assert.Equal(t, "Hamilton City ICMP (area to confirm)", Hamilton.Fallback())
	assert.Equal(t, "Waikato District ICMP (area to confirm)", Waikato.Fallback())
	assert.True(t, Hamilton.Valid())
	assert.False(t, Council("x").Valid())
}

func TestPatternEmpty(t *testing.T) {
	p := NewPattern("", "  ")
	assert.False(t, p.Match("anything"))
	assert.Equal(t, "", p.String())
}
