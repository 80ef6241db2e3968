package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tiaki/internal/export"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	ProjectFlags
	Out               string
	As                string
	Metrics           bool
	Findings          string
	SpeciesCheckpoint bool
}

// ExportResult is the JSON payload of the export command.
type ExportResult struct {
	Files []ExportedFile `json:"files"`
	Label string         `json:"label"`
	Disambiguation
	Metrics []export.Sample `json:"metrics,omitempty"`
}

// ExportedFile describes one delivered artifact.
type ExportedFile struct {
	Document string `json:"document"`
	Path     string `json:"path"`
	Bytes    int    `json:"bytes"`
	Digest   string `json:"digest"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export community|technical|plan|all",
		Short: "Export documents as DOCX or XLSX",
		Long: `Export one document, or all three, to files.

Every document is built in memory first. If any build fails nothing is
written and the command reports a single-line failure.

Example:
  tiaki export all --project "Rotokauri Stage 2" --location Rotokauri --out ./reports
  tiaki export plan --as xlsx --metrics
  tiaki export plan --species-checkpoint=false`,
		Args:          cobra.ExactArgs(1),
		ValidArgs:     []string{DocCommunity, DocTechnical, DocPlan, DocAll},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	opts.ProjectFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output directory (overrides config)")
	cmd.Flags().StringVar(&opts.As, "as", "", "container format: docx|xlsx (overrides config)")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "print export metrics")
	cmd.Flags().StringVar(&opts.Findings, "findings", "", "knowledge base override (CUE file)")
	cmd.Flags().BoolVar(&opts.SpeciesCheckpoint, "species-checkpoint", true, "enable the stage-gate species checkpoint in the plan (overrides config)")

	return cmd
}

func runExport(opts *ExportOptions, kind string, cmd *cobra.Command) error {
	e, err := newEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	kinds, err := expandKinds(kind)
	if err != nil {
		return e.formatter.Fail(ExitCommandError, ErrCodeUsage, err.Error(), nil)
	}
	format, err := export.ParseFormat(firstNonEmpty(opts.As, e.cfg.Export.Format))
	if err != nil {
		return e.formatter.Fail(ExitCommandError, ErrCodeUsage, err.Error(), nil)
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

	reqs, err := buildRequests(kinds, repo.All(), s)
	if err != nil {
		return e.formatter.Fail(ExitCommandError, ErrCodeUsage, err.Error(), nil)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	metrics := export.NewMetrics()
	exporter := export.New(e.logger, metrics)

	arts, err := exporter.ExportAll(ctx, format, reqs)
	if err != nil {
		return e.formatter.Fail(ExitFailure, ErrCodeExport, export.UserMessage, nil)
	}

	dir := firstNonEmpty(opts.Out, e.cfg.Export.Dir)
	result := ExportResult{Label: s.Label(), Disambiguation: disambiguation(s)}
	for i, art := range arts {
		path, err := export.WriteFile(dir, art)
		if err != nil {
			e.logger.Error("delivery failed", "file", art.Filename, "error", err)
			return e.formatter.Fail(ExitFailure, ErrCodeExport, export.UserMessage, nil)
		}
		e.logger.Info("exported", "document", kinds[i], "path", path, "bytes", len(art.Data))
		result.Files = append(result.Files, ExportedFile{Document: kinds[i], Path: path, Bytes: len(art.Data), Digest: art.Digest()})
	}

	if opts.Metrics {
		result.Metrics, err = metrics.Snapshot()
		if err != nil {
			return e.formatter.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
		}
	}

	return e.formatter.Success(result, exportText(result))
}

func exportText(r ExportResult) string {
	var b strings.Builder
	for _, f := range r.Files {
		fmt.Fprintf(&b, "wrote %s (%d bytes)\n", f.Path, f.Bytes)
	}
	if len(r.Metrics) > 0 {
		b.WriteString("\nmetrics:\n")
		for _, m := range r.Metrics {
			fmt.Fprintf(&b, "  %s%s %g\n", m.Name, labelText(m.Labels), m.Value)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func labelText(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%q", k, labels[k])
	}
	return "{" + strings.Join(parts, ",") + "}"
}
