package findings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validSet returns a minimal finding set that satisfies every invariant.
func validSet() []Finding {
	set := make([]Finding, 0, 6)
	for _, c := range Canonical() {
		set = append(set, Finding{
			Category: c,
			Issue:    "issue for " + string(c),
			Effects: Effects{
				Cultural:      []string{"c"},
				Social:        []string{"s"},
				Environmental: []string{"e"},
				Spiritual:     []string{"sp"},
			},
			Mitigations:     []string{"m"},
			Recommendations: []string{"r"},
			Triggers: TriggerSpec{
				Metrics:   []string{"metric"},
				Baselines: "baseline",
				Reporting: "report",
			},
		})
	}
	return set
}

func TestDefaultRepository(t *testing.T) {
	repo, err := Default()
	require.NoError(t, err)
	require.Equal(t, 6, repo.Len())
	assert.Equal(t, Canonical(), repo.Categories())

	for _, f := range repo.All() {
		assert.NotEmpty(t, f.Issue, f.Category)
		assert.NotEmpty(t, f.Effects.Cultural, f.Category)
		assert.NotEmpty(t, f.Effects.Social, f.Category)
		assert.NotEmpty(t, f.Effects.Environmental, f.Category)
		assert.NotEmpty(t, f.Effects.Spiritual, f.Category)
		assert.NotEmpty(t, f.Triggers.Metrics, f.Category)
		assert.NotEmpty(t, f.ConsentClauses, f.Category)
	}
}

func TestDefaultRepositoryIsShared(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestAllReturnsDeepCopy(t *testing.T) {
	repo, err := Default()
	require.NoError(t, err)

	all := repo.All()
	all[0].Issue = "mutated"
	all[0].Mitigations[0] = "mutated"
	all[0].Triggers.Metrics[0] = "mutated"

	fresh := repo.All()
	assert.NotEqual(t, "mutated", fresh[0].Issue)
	assert.NotEqual(t, "mutated", fresh[0].Mitigations[0])
	assert.NotEqual(t, "mutated", fresh[0].Triggers.Metrics[0])
}

func TestGet(t *testing.T) {
	repo, err := Default()
	require.NoError(t, err)

	f, ok := repo.Get(Whanau)
	require.True(t, ok)
	assert.Equal(t, Whanau, f.Category)

	_, ok = repo.Get(Category("kai"))
	assert.False(t, ok)
}

func TestNewOrdersCanonically(t *testing.T) {
	set := validSet()
	set[0], set[5] = set[5], set[0]

	repo, err := New(set)
	require.NoError(t, err)
	assert.Equal(t, Canonical(), repo.Categories())
}

func TestValidateValidSet(t *testing.T) {
	assert.Empty(t, Validate(validSet()))
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]Finding) []Finding
		code   string
	}{
		{"empty category", func(s []Finding) []Finding { s[0].Category = ""; return s }, ErrCategoryInvalid},
		{"unknown category", func(s []Finding) []Finding { s[0].Category = "kai"; return s }, ErrCategoryInvalid},
		{"duplicate category", func(s []Finding) []Finding { s[1].Category = Wai; return s }, ErrCategoryDuplicate},
		{"empty issue", func(s []Finding) []Finding { s[2].Issue = "   "; return s }, ErrIssueEmpty},
		{"empty effect axis", func(s []Finding) []Finding { s[3].Effects.Spiritual = nil; return s }, ErrEffectEmpty},
		{"blank entry", func(s []Finding) []Finding { s[4].Mitigations = []string{""}; return s }, ErrEntryEmpty},
		{"missing triggers", func(s []Finding) []Finding { s[5].Triggers = TriggerSpec{}; return s }, ErrTriggersMissing},
		{"five findings", func(s []Finding) []Finding { return s[:5] }, ErrCanonicalSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.mutate(validSet()))
			require.NotEmpty(t, errs)

			codes := make([]string, len(errs))
			for i, e := range errs {
				codes[i] = e.Code
			}
			assert.Contains(t, codes, tt.code)
		})
	}
}

func TestNewRejectsInvalidSet(t *testing.T) {
	set := validSet()
	set[0].Issue = ""

	repo, err := New(set)
	require.Error(t, err)
	assert.Nil(t, repo)
	assert.True(t, IsLoadError(err))

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrIssueEmpty, loadErr.Code)
	assert.Equal(t, "findings[0].issue", loadErr.Field)
}

func TestLoadRejectsUnknownCategoryViaSchema(t *testing.T) {
	src := strings.Replace(string(findingsSource), `category: "wai"`, `category: "kai"`, 1)

	repo, err := Load([]byte(src), "bad.cue")
	require.Error(t, err)
	assert.Nil(t, repo)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeCUE, loadErr.Code)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	src := strings.Replace(string(findingsSource), `category: "wai"`, "category: \"wai\"\n\t\tseverity: \"high\"", 1)

	_, err := Load([]byte(src), "bad.cue")
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeCUE, loadErr.Code)
}

func TestLoadRejectsSyntaxError(t *testing.T) {
	_, err := Load([]byte("findings: [ {"), "broken.cue")
	require.Error(t, err)
	assert.True(t, IsLoadError(err))
}

func TestLoadRejectsMissingCategory(t *testing.T) {
	// Drop the wairua finding: CUE accepts it, the validator does not.
	idx := strings.Index(string(findingsSource), "\t{\n\t\tcategory: \"wairua\"")
	require.Positive(t, idx)
	src := string(findingsSource[:idx]) + "]\n"

	_, err := Load([]byte(src), "short.cue")
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCanonicalSet, loadErr.Code)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.cue")
	require.NoError(t, os.WriteFile(path, findingsSource, 0644))

	repo, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 6, repo.Len())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/kb.cue")
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeRead, loadErr.Code)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
