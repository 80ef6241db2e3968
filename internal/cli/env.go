package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tiaki/internal/config"
	"github.com/roach88/tiaki/internal/findings"
	"github.com/roach88/tiaki/internal/region"
	"github.com/roach88/tiaki/internal/session"
)

// env is what every command needs after flags are parsed.
type env struct {
	opts      *RootOptions
	cfg       *config.Config
	logger    *slog.Logger
	formatter *OutputFormatter
}

// ProjectFlags are shared by the commands that build a session.
type ProjectFlags struct {
	Project  string
	Location string
	Council  string
	Choose   int
}

func (f *ProjectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Project, "project", "", "project name (overrides config)")
	cmd.Flags().StringVar(&f.Location, "location", "", "project location (overrides config)")
	cmd.Flags().StringVar(&f.Council, "council", "", "council: hamilton|waikato (overrides config)")
	cmd.Flags().IntVar(&f.Choose, "choose", 0, "candidate number to confirm when the location is ambiguous")
}

func newEnv(opts *RootOptions, cmd *cobra.Command) (*env, error) {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}

	level, _ := config.ParseLevel(cfg.Logging.Level)
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return &env{opts: opts, cfg: cfg, logger: logger, formatter: formatter}, nil
}

// findings loads the knowledge base: path if given, else the configured
// override, else the embedded default.
func (e *env) findings(path string) (*findings.Repository, error) {
	if path == "" {
		path = e.cfg.Findings.Path
	}

	var (
		repo *findings.Repository
		err  error
	)
	if path == "" {
		repo, err = findings.Default()
	} else {
		e.logger.Debug("loading knowledge base", "path", path)
		repo, err = findings.LoadFile(path)
	}
	if err != nil {
		var details any
		var loadErr *findings.LoadError
		if errors.As(err, &loadErr) && len(loadErr.Issues) > 0 {
			details = loadErr.Issues
		}
		e.logger.Error("knowledge base rejected", "error", err)
		return nil, e.formatter.Fail(ExitCommandError, ErrCodeFindings, err.Error(), details)
	}
	e.logger.Debug("knowledge base loaded", "findings", repo.Len())
	return repo, nil
}

func (e *env) council(flag string) (region.Council, error) {
	if flag == "" {
		return e.cfg.CouncilValue(), nil
	}
	c, err := region.ParseCouncil(flag)
	if err != nil {
		return "", e.formatter.Fail(ExitCommandError, ErrCodeUsage, err.Error(), nil)
	}
	return c, nil
}

// session builds a session from config and flags and classifies the
// location. An ambiguous location is confirmed with --choose; without it the
// label stays unset and the pending result is returned for reporting.
func (e *env) session(f ProjectFlags) (session.Session, region.Result, error) {
	council, err := e.council(f.Council)
	if err != nil {
		return session.Session{}, region.Result{}, err
	}

	s := session.New(council).
		WithProject(firstNonEmpty(f.Project, e.cfg.Project.Name)).
		WithSpeciesCheckpoint(e.cfg.Checkpoint())
	if sel := e.cfg.Figures.Selected; len(sel) > 0 {
		if s, err = s.SelectFigures(sel); err != nil {
			return session.Session{}, region.Result{}, e.formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
		}
	}

	var res region.Result
	if loc := firstNonEmpty(f.Location, e.cfg.Project.Location); loc != "" {
		s, res = s.Classify(loc)
		if res.Pending {
			if f.Choose > 0 {
				if s, err = s.Confirm(f.Choose); err != nil {
					return session.Session{}, res, e.formatter.Fail(ExitCommandError, ErrCodeUsage, err.Error(), res.Candidates)
				}
			} else {
				e.logger.Warn("location is ambiguous; label not set", "location", loc, "candidates", strings.Join(res.Candidates, ", "))
			}
		}
	}
	e.logger.Debug("session ready", "session", s.ID, "council", s.Council, "label", s.Label())
	return s, res, nil
}

// Disambiguation reports an open ambiguous classification in command
// results, so JSON callers see it without reading the log.
type Disambiguation struct {
	Pending    bool     `json:"pending,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
}

func disambiguation(s session.Session) Disambiguation {
	p, ok := s.Pending()
	if !ok {
		return Disambiguation{}
	}
	return Disambiguation{Pending: true, Candidates: p.Candidates}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// pendingText describes an open disambiguation.
func pendingText(location string, res region.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Multiple areas match %q:\n", location)
	for i, c := range res.Candidates {
		if i == 0 {
			fmt.Fprintf(&b, "  %d. %s (default)\n", i+1, c)
			continue
		}
		fmt.Fprintf(&b, "  %d. %s\n", i+1, c)
	}
	b.WriteString("Confirm a choice or cancel; nothing is applied until you do.")
	return b.String()
}
