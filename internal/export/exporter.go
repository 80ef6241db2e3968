package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Exporter turns requests into artifacts. It holds no per-export state and
// is safe for concurrent use.
type Exporter struct {
	logger  *slog.Logger
	metrics *Metrics
}

// New creates an Exporter. A nil logger uses slog.Default; nil metrics
// disables recording.
func New(logger *slog.Logger, metrics *Metrics) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger, metrics: metrics}
}

// Export builds the container for req in memory. On failure it returns an
// *Error and a nil artifact. The context is checked between stages; a
// cancelled context yields KindCancelled.
func (e *Exporter) Export(ctx context.Context, format Format, req Request) (*Artifact, error) {
	start := time.Now()
	art, err := e.export(ctx, format, req)

	status := "ok"
	if err != nil {
		var xerr *Error
		if errors.As(err, &xerr) {
			status = string(xerr.Kind)
		}
		e.logger.Warn("export failed", "format", format, "title", req.Title, "error", err)
	} else {
		e.logger.Debug("export complete", "format", format, "file", art.Filename, "bytes", len(art.Data))
	}
	e.metrics.observe(format, status, time.Since(start))
	return art, err
}

func (e *Exporter) export(ctx context.Context, format Format, req Request) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapError(KindCancelled, format, err)
	}

	pics, err := decodeImages(req.Images)
	if err != nil {
		return nil, wrapError(KindPayload, format, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, wrapError(KindCancelled, format, err)
	}

	var data []byte
	switch format {
	case FormatDOCX:
		data, err = buildDOCX(ctx, req, pics)
	case FormatXLSX:
		data, err = buildXLSX(ctx, req, pics)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, wrapError(KindCancelled, format, err)
		}
		return nil, wrapError(KindSerialization, format, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, wrapError(KindCancelled, format, err)
	}

	return &Artifact{
		Filename:    Filename(req.Title, req.Project, format),
		ContentType: format.ContentType(),
		Format:      format,
		Data:        data,
	}, nil
}

// ExportAll exports every request in parallel. Artifacts are returned in
// request order, and only when all of them succeed.
func (e *Exporter) ExportAll(ctx context.Context, format Format, reqs []Request) ([]*Artifact, error) {
	out := make([]*Artifact, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			art, err := e.Export(gctx, format, req)
			if err != nil {
				return err
			}
			out[i] = art
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
