package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/tiaki/internal/monitoring"
)

// PlanOptions holds flags for the plan command.
type PlanOptions struct {
	*RootOptions
	ProjectFlags
	SpeciesCheckpoint bool
	Findings          string
}

// PlanResult is the JSON payload of the plan command.
type PlanResult struct {
	Council           string           `json:"council"`
	SpeciesCheckpoint bool             `json:"species_checkpoint"`
	Rows              []monitoring.Row `json:"rows"`
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Derive the monitoring plan",
		Long: `Derive the monitoring plan for the council.

The plan has four base rows, a taonga species salvage row when the findings
name a taonga species, and one council checkpoint row.

Example:
  tiaki plan --council hamilton --species-checkpoint=false`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(opts, cmd)
		},
	}

	opts.ProjectFlags.register(cmd)
	cmd.Flags().BoolVar(&opts.SpeciesCheckpoint, "species-checkpoint", true, "enable the stage-gate species checkpoint (overrides config)")
	cmd.Flags().StringVar(&opts.Findings, "findings", "", "knowledge base override (CUE file)")

	return cmd
}

func runPlan(opts *PlanOptions, cmd *cobra.Command) error {
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
	if cmd.Flags().Changed("species-checkpoint") {
		s = s.WithSpeciesCheckpoint(opts.SpeciesCheckpoint)
	}

	rows := monitoring.Derive(repo.All(), s.Council, s.SpeciesCheckpoint)
	e.logger.Debug("plan derived", "council", s.Council, "rows", len(rows), "species_row", monitoring.HasSpeciesRow(rows))

	return e.formatter.Success(PlanResult{
		Council:           string(s.Council),
		SpeciesCheckpoint: s.SpeciesCheckpoint,
		Rows:              rows,
	}, monitoring.Render(rows))
}
