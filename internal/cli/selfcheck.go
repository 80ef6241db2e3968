package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/tiaki/internal/selfcheck"
)

// SelfCheckOptions holds flags for the selfcheck command.
type SelfCheckOptions struct {
	*RootOptions
	ProjectFlags
	Scenario string
	Findings string
}

// NewSelfCheckCommand creates the selfcheck command.
func NewSelfCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SelfCheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "selfcheck",
		Short: "Run the smoke checks",
		Long: `Run the fixed smoke checks over the knowledge base, both narratives,
the figure selection and the canary locations.

Checks stop at the first failure. A failure is diagnostic only: it never
blocks compose or export.

Example:
  tiaki selfcheck
  tiaki selfcheck --council waikato --scenario ./canary.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelfCheck(opts, cmd)
		},
	}

	opts.ProjectFlags.register(cmd)
	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "canary scenario YAML (defaults to the built-in scenario)")
	cmd.Flags().StringVar(&opts.Findings, "findings", "", "knowledge base override (CUE file)")

	return cmd
}

func runSelfCheck(opts *SelfCheckOptions, cmd *cobra.Command) error {
	e, err := newEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	scenario := selfcheck.DefaultScenario()
	if opts.Scenario != "" {
		scenario, err = selfcheck.LoadScenario(opts.Scenario)
		if err != nil {
			return e.formatter.Fail(ExitCommandError, ErrCodeNotFound, err.Error(), nil)
		}
	}

	repo, err := e.findings(opts.Findings)
	if err != nil {
		return err
	}
	s, _, err := e.session(opts.ProjectFlags)
	if err != nil {
		return err
	}

	out := selfcheck.Run(selfcheck.Env{
		Findings: repo.All(),
		Context:  s.Context(),
		Figures:  s.Figures,
	}, scenario)
	e.logger.Debug("self-check finished", "pass", out.Pass, "check", out.Check)

	if !out.Pass {
		return e.formatter.Fail(ExitFailure, ErrCodeSelfCheck, out.Message, map[string]string{"check": out.Check})
	}
	return e.formatter.Success(out, out.Message)
}
