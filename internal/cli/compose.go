package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/roach88/tiaki/internal/compose"
)

// ComposeOptions holds flags for the compose command.
type ComposeOptions struct {
	*RootOptions
	ProjectFlags
	Markdown bool
	Render   bool
	Findings string
}

// ComposeResult is the JSON payload of the compose command.
type ComposeResult struct {
	Document string `json:"document"`
	Label    string `json:"label"`
	Disambiguation
	Title    string            `json:"title"`
	Sections []compose.Section `json:"sections"`
}

// NewComposeCommand creates the compose command.
func NewComposeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ComposeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compose community|technical",
		Short: "Render a narrative document",
		Long: `Render the community voice statement or the technical assessment.

Output is plain text by default. --markdown emits Markdown and --render
previews the Markdown in the terminal.

Example:
  tiaki compose community --project "Rotokauri Stage 2" --location Rotokauri
  tiaki compose technical --council waikato --render`,
		Args:          cobra.ExactArgs(1),
		ValidArgs:     []string{DocCommunity, DocTechnical},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompose(opts, args[0], cmd)
		},
	}

	opts.ProjectFlags.register(cmd)
	cmd.Flags().BoolVar(&opts.Markdown, "markdown", false, "emit Markdown")
	cmd.Flags().BoolVar(&opts.Render, "render", false, "render Markdown for the terminal")
	cmd.Flags().StringVar(&opts.Findings, "findings", "", "knowledge base override (CUE file)")
	cmd.MarkFlagsMutuallyExclusive("markdown", "render")

	return cmd
}

func runCompose(opts *ComposeOptions, kind string, cmd *cobra.Command) error {
	e, err := newEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	repo, err := e.findings(opts.Findings)
	if err != nil {
		return err
	}
	s, _, err := e.session(opts.ProjectFlags)
	if err != nil {
		return err
	}

	doc, err := narrative(kind, repo.All(), s)
	if err != nil {
		return e.formatter.Fail(ExitCommandError, ErrCodeUsage, err.Error(), nil)
	}

	text := doc.String()
	switch {
	case opts.Markdown:
		text = doc.Markdown()
	case opts.Render:
		text, err = renderMarkdown(doc.Markdown())
		if err != nil {
			return e.formatter.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
		}
	}

	return e.formatter.Success(ComposeResult{
		Document:       kind,
		Label:          s.Label(),
		Disambiguation: disambiguation(s),
		Title:          doc.Title,
		Sections:       doc.Sections,
	}, text)
}

// renderMarkdown renders md for a terminal without colour codes, so the
// output is stable when piped.
func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("notty"),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
