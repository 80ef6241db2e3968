package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tiaki/internal/session"
)

// ClassifyOptions holds flags for the classify command.
type ClassifyOptions struct {
	*RootOptions
	Council string
	Choose  int
	Cancel  bool
}

// ClassifyResult is the JSON payload of the classify command.
type ClassifyResult struct {
	Location   string   `json:"location"`
	Council    string   `json:"council"`
	Label      string   `json:"label"`
	Pending    bool     `json:"pending"`
	Candidates []string `json:"candidates,omitempty"`
	Default    string   `json:"default,omitempty"`
	Cancelled  bool     `json:"cancelled,omitempty"`
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClassifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "classify <location...>",
		Short: "Classify a location into its ICMP area",
		Long: `Classify a free-text location against the council's ICMP areas.

A location matching no area resolves to the council fallback. A location
matching several areas is reported as pending: rerun with --choose N to
confirm a candidate, or --cancel to leave the label unset.

Example:
  tiaki classify Beerescourt
  tiaki classify --council waikato Whāingaroa
  tiaki classify Rotokauri and Beerescourt --choose 2`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Council, "council", "", "council: hamilton|waikato (overrides config)")
	cmd.Flags().IntVar(&opts.Choose, "choose", 0, "confirm candidate N of a pending result")
	cmd.Flags().BoolVar(&opts.Cancel, "cancel", false, "cancel a pending result")
	cmd.MarkFlagsMutuallyExclusive("choose", "cancel")

	return cmd
}

func runClassify(opts *ClassifyOptions, location string, cmd *cobra.Command) error {
	e, err := newEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	council, err := e.council(opts.Council)
	if err != nil {
		return err
	}

	s, res := session.New(council).Classify(location)
	out := ClassifyResult{
		Location:   location,
		Council:    string(council),
		Label:      s.Label(),
		Pending:    res.Pending,
		Candidates: res.Candidates,
	}
	if res.Pending {
		out.Default = res.Default()
	}

	switch {
	case opts.Choose > 0:
		s, err = s.Confirm(opts.Choose)
		if err != nil {
			return e.formatter.Fail(ExitCommandError, ErrCodeUsage, err.Error(), res.Candidates)
		}
		out.Label, out.Pending = s.Label(), false
		e.logger.Debug("candidate confirmed", "location", location, "label", out.Label)
		return e.formatter.Success(out, out.Label)

	case opts.Cancel:
		s, err = s.Cancel()
		if errors.Is(err, session.ErrNothingPending) {
			return e.formatter.Fail(ExitCommandError, ErrCodeUsage, err.Error(), nil)
		}
		out.Pending, out.Cancelled = false, true
		return e.formatter.Success(out, "Cancelled; label unchanged: "+s.Label())

	case res.Pending:
		return e.formatter.Success(out, pendingText(location, res))
	}

	return e.formatter.Success(out, out.Label)
}
