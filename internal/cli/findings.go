package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tiaki/internal/findings"
	"github.com/roach88/tiaki/internal/textnorm"
)

// FindingsOptions holds flags for the findings command.
type FindingsOptions struct {
	*RootOptions
	Path     string
	Category string
}

// FindingSummary is one entry of the findings listing.
type FindingSummary struct {
	Category       string `json:"category"`
	Issue          string `json:"issue"`
	Mitigations    int    `json:"mitigations"`
	ConsentClauses int    `json:"consent_clauses"`
}

// NewFindingsCommand creates the findings command.
func NewFindingsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FindingsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "findings",
		Short: "Validate and list the knowledge base",
		Long: `Load the knowledge base, validate it, and list its findings.

Without --path the configured override or the embedded knowledge base is
used. An invalid knowledge base exits with code 2. --category shows one
finding in full; macrons are optional.

Example:
  tiaki findings
  tiaki findings --category whanau
  tiaki findings --path ./kb/findings.cue --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFindings(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Path, "path", "", "CUE knowledge base to validate")
	cmd.Flags().StringVar(&opts.Category, "category", "", "show the full finding for one category")

	return cmd
}

func runFindings(opts *FindingsOptions, cmd *cobra.Command) error {
	e, err := newEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	repo, err := e.findings(opts.Path)
	if err != nil {
		return err
	}
	if opts.Category != "" {
		return showFinding(e, repo, opts.Category)
	}

	var summaries []FindingSummary
	var b strings.Builder
	fmt.Fprintf(&b, "✓ Knowledge base valid (%d findings)\n", repo.Len())
	for _, f := range repo.All() {
		summaries = append(summaries, FindingSummary{
			Category:       string(f.Category),
			Issue:          f.Issue,
			Mitigations:    len(f.Mitigations),
			ConsentClauses: len(f.ConsentClauses),
		})
		fmt.Fprintf(&b, "  %-10s %s\n", f.Category, f.Issue)
	}

	return e.formatter.Success(summaries, strings.TrimRight(b.String(), "\n"))
}

func showFinding(e *env, repo *findings.Repository, name string) error {
	var (
		f  findings.Finding
		ok bool
	)
	for _, c := range repo.Categories() {
		if textnorm.Equal(string(c), name) {
			f, ok = repo.Get(c)
			break
		}
	}
	if !ok {
		return e.formatter.Fail(ExitCommandError, ErrCodeNotFound,
			fmt.Sprintf("no finding for category %q", name), repo.Categories())
	}
	return e.formatter.Success(f, findingText(f))
}

func findingText(f findings.Finding) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", f.Category, f.Issue)
	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "%s:\n", title)
		for _, item := range items {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}
	list("Cultural effects", f.Effects.Cultural)
	list("Social effects", f.Effects.Social)
	list("Environmental effects", f.Effects.Environmental)
	list("Spiritual effects", f.Effects.Spiritual)
	list("Mitigations", f.Mitigations)
	list("Recommendations", f.Recommendations)
	list("Trigger metrics", f.Triggers.Metrics)
	list("Trigger thresholds", f.Triggers.Thresholds)
	list("Trigger actions", f.Triggers.Actions)
	list("Policy links", f.PolicyLinks)
	list("Consent clauses", f.ConsentClauses)
	return strings.TrimRight(b.String(), "\n")
}
