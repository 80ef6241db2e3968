package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tiaki/internal/export"
	"github.com/roach88/tiaki/internal/findings"
	"github.com/roach88/tiaki/internal/journal"
	"github.com/roach88/tiaki/internal/monitoring"
	"github.com/roach88/tiaki/internal/region"
	"github.com/roach88/tiaki/internal/selfcheck"
	"github.com/roach88/tiaki/internal/session"
)

// SessionOptions holds flags for the session command.
type SessionOptions struct {
	*RootOptions
	ProjectFlags
	Findings string
}

// NewSessionCommand creates the interactive session command.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start an interactive session",
		Long: `Start a line-oriented session that keeps council, location, toggle and
figure selection between commands. State is discarded when the session
ends. Type "help" for the command list.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(opts, cmd)
		},
	}

	opts.ProjectFlags.register(cmd)
	cmd.Flags().StringVar(&opts.Findings, "findings", "", "knowledge base override (CUE file)")

	return cmd
}

func runSession(opts *SessionOptions, cmd *cobra.Command) error {
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

	j, err := journal.Open(nil)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open session journal", err)
	}
	defer func() {
		if closeErr := j.Close(); closeErr != nil {
			e.logger.Error("error closing journal", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	r := &repl{
		env:      e,
		set:      repo.All(),
		guard:    session.NewGuard(s, e.logger, j),
		exporter: export.New(e.logger, nil),
		out:      cmd.OutOrStdout(),
	}
	return r.loop(ctx, cmd.InOrStdin())
}

// repl runs session commands read line by line.
type repl struct {
	env      *env
	set      []findings.Finding
	guard    *session.Guard
	exporter *export.Exporter
	out      io.Writer
}

type replCommand struct {
	usage string
	run   func(r *repl, ctx context.Context, args []string) error
}

var replCommands map[string]replCommand

func init() {
	replCommands = map[string]replCommand{
		"council": {"council hamilton|waikato", (*repl).council},
		"project": {"project <name>", (*repl).project},
		"locate":  {"locate <location>", (*repl).locate},
		"confirm": {"confirm <n>", (*repl).confirm},
		"cancel":  {"cancel", (*repl).cancel},
		"toggle":  {"toggle", (*repl).toggle},
		"figure":  {"figure [id]", (*repl).figure},
		"compose": {"compose community|technical", (*repl).compose},
		"plan":    {"plan", (*repl).plan},
		"export":  {"export community|technical|plan|all [docx|xlsx]", (*repl).export},
		"check":   {"check", (*repl).check},
		"history": {"history", (*repl).history},
		"status":  {"status", (*repl).status},
		"help":    {"help", (*repl).help},
	}
}

func (r *repl) loop(ctx context.Context, in io.Reader) error {
	s := r.guard.Snapshot()
	fmt.Fprintf(r.out, "tiaki session %s (council %s). Type \"help\" for commands.\n", s.ID, s.Council.DisplayName())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		name, args := strings.ToLower(fields[0]), fields[1:]
		if name == "quit" || name == "exit" {
			break
		}
		c, ok := replCommands[name]
		if !ok {
			fmt.Fprintf(r.out, "unknown command %q; type \"help\"\n", name)
			continue
		}
		if err := c.run(r, ctx, args); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
	}
	fmt.Fprintln(r.out)
	return scanner.Err()
}

func (r *repl) council(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s", replCommands["council"].usage)
	}
	c, err := region.ParseCouncil(args[0])
	if err != nil {
		return err
	}
	s, _ := r.guard.Apply(ctx, journal.KindCouncil, map[string]string{"council": string(c)}, func(s session.Session) (session.Session, error) {
		return s.WithCouncil(c), nil
	})
	fmt.Fprintf(r.out, "council: %s\n", s.Council.DisplayName())
	if s.Location != "" {
		fmt.Fprintf(r.out, "label: %s\n", s.Label())
	}
	return nil
}

func (r *repl) project(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	s, _ := r.guard.Apply(ctx, journal.KindProject, map[string]string{"project": name}, func(s session.Session) (session.Session, error) {
		return s.WithProject(name), nil
	})
	fmt.Fprintf(r.out, "project: %s\n", firstNonEmpty(s.Project, "(none)"))
	return nil
}

func (r *repl) locate(ctx context.Context, args []string) error {
	location := strings.Join(args, " ")
	if location == "" {
		return fmt.Errorf("usage: %s", replCommands["locate"].usage)
	}
	var res region.Result
	s, _ := r.guard.Apply(ctx, journal.KindClassify, map[string]string{"location": location}, func(s session.Session) (session.Session, error) {
		next, out := s.Classify(location)
		res = out
		return next, nil
	})
	if res.Pending {
		fmt.Fprintln(r.out, pendingText(location, res))
		fmt.Fprintf(r.out, "label remains: %s\n", s.Label())
		return nil
	}
	fmt.Fprintf(r.out, "label: %s\n", s.Label())
	return nil
}

func (r *repl) confirm(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s", replCommands["confirm"].usage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("choice must be a number: %q", args[0])
	}
	s, err := r.guard.Apply(ctx, journal.KindConfirm, map[string]string{"choice": args[0]}, func(s session.Session) (session.Session, error) {
		return s.Confirm(n)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "label: %s\n", s.Label())
	return nil
}

func (r *repl) cancel(ctx context.Context, _ []string) error {
	s, err := r.guard.Apply(ctx, journal.KindCancel, nil, func(s session.Session) (session.Session, error) {
		return s.Cancel()
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "cancelled; label: %s\n", s.Label())
	return nil
}

func (r *repl) toggle(ctx context.Context, _ []string) error {
	s, _ := r.guard.Apply(ctx, journal.KindToggle, nil, func(s session.Session) (session.Session, error) {
		return s.WithSpeciesCheckpoint(!s.SpeciesCheckpoint), nil
	})
	fmt.Fprintf(r.out, "species checkpoint: %s\n", onOff(s.SpeciesCheckpoint))
	return nil
}

func (r *repl) figure(ctx context.Context, args []string) error {
	if len(args) == 0 {
		for _, f := range r.guard.Snapshot().Figures {
			mark := " "
			if f.Selected {
				mark = "x"
			}
			fmt.Fprintf(r.out, "[%s] %-12s %s\n", mark, f.ID, f.Caption)
		}
		return nil
	}
	id := args[0]
	s, err := r.guard.Apply(ctx, journal.KindFigure, map[string]string{"figure": id}, func(s session.Session) (session.Session, error) {
		return s.ToggleFigure(id)
	})
	if err != nil {
		return err
	}
	for _, f := range s.Figures {
		if f.ID == id {
			fmt.Fprintf(r.out, "figure %s: %s\n", id, map[bool]string{true: "selected", false: "not selected"}[f.Selected])
		}
	}
	return nil
}

func (r *repl) compose(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s", replCommands["compose"].usage)
	}
	doc, err := narrative(args[0], r.set, r.guard.Snapshot())
	if err != nil {
		return err
	}
	fmt.Fprint(r.out, doc.String())
	return nil
}

func (r *repl) plan(_ context.Context, _ []string) error {
	s := r.guard.Snapshot()
	fmt.Fprint(r.out, monitoring.Render(monitoring.Derive(r.set, s.Council, s.SpeciesCheckpoint)))
	return nil
}

// export works from a snapshot, so the session stays unchanged whether the
// export succeeds or fails.
func (r *repl) export(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: %s", replCommands["export"].usage)
	}
	kinds, err := expandKinds(args[0])
	if err != nil {
		return err
	}
	raw := r.env.cfg.Export.Format
	if len(args) == 2 {
		raw = args[1]
	}
	format, err := export.ParseFormat(raw)
	if err != nil {
		return err
	}

	reqs, err := buildRequests(kinds, r.set, r.guard.Snapshot())
	if err != nil {
		return err
	}
	arts, err := r.exporter.ExportAll(ctx, format, reqs)
	if err != nil {
		fmt.Fprintln(r.out, export.UserMessage)
		return nil
	}
	for i, art := range arts {
		path, err := export.WriteFile(r.env.cfg.Export.Dir, art)
		if err != nil {
			r.env.logger.Error("delivery failed", "file", art.Filename, "error", err)
			fmt.Fprintln(r.out, export.UserMessage)
			return nil
		}
		r.guard.Record(ctx, journal.KindExport, map[string]string{"document": kinds[i], "file": art.Filename, "digest": art.Digest()[:12]})
		fmt.Fprintf(r.out, "wrote %s\n", path)
	}
	return nil
}

func (r *repl) check(ctx context.Context, _ []string) error {
	s := r.guard.Snapshot()
	out := selfcheck.Run(selfcheck.Env{Findings: r.set, Context: s.Context(), Figures: s.Figures}, nil)
	r.guard.Record(ctx, journal.KindSelfCheck, map[string]string{"pass": strconv.FormatBool(out.Pass), "check": out.Check})
	fmt.Fprintln(r.out, out.Message)
	return nil
}

func (r *repl) history(ctx context.Context, _ []string) error {
	events, err := r.guard.History(ctx)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(r.out, "no events")
		return nil
	}
	for _, ev := range events {
		fmt.Fprintf(r.out, "%3d %-9s %s\n", ev.Seq, ev.Kind, detailText(ev.Detail))
	}
	return nil
}

func (r *repl) status(ctx context.Context, _ []string) error {
	s := r.guard.Snapshot()
	fmt.Fprintf(r.out, "project: %s\n", firstNonEmpty(s.Project, "(none)"))
	fmt.Fprintf(r.out, "council: %s\n", s.Council.DisplayName())
	fmt.Fprintf(r.out, "location: %s\n", firstNonEmpty(s.Location, "(none)"))
	fmt.Fprintf(r.out, "label: %s\n", s.Label())
	if p, ok := s.Pending(); ok {
		fmt.Fprintf(r.out, "pending: %s\n", strings.Join(p.Candidates, " | "))
	}
	fmt.Fprintf(r.out, "species checkpoint: %s\n", onOff(s.SpeciesCheckpoint))

	activity, err := r.guard.Activity(ctx)
	if err != nil {
		return err
	}
	if len(activity) > 0 {
		counts := make(map[string]string, len(activity))
		for kind, n := range activity {
			counts[kind] = strconv.Itoa(n)
		}
		fmt.Fprintf(r.out, "activity: %s\n", detailText(counts))
	}
	return nil
}

func (r *repl) help(_ context.Context, _ []string) error {
	names := make([]string, 0, len(replCommands))
	for name := range replCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(r.out, "  %s\n", replCommands[name].usage)
	}
	fmt.Fprintln(r.out, "  quit")
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func detailText(detail map[string]string) string {
	keys := make([]string, 0, len(detail))
	for k := range detail {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + detail[k]
	}
	return strings.Join(parts, " ")
}
