package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/roach88/tiaki/internal/journal"
)

// Transition is a pure session update.
type Transition func(Session) (Session, error)

// Guard owns the current Session and applies transitions one at a time.
// Accepted transitions are recorded in the journal when one is attached.
type Guard struct {
	mu      sync.Mutex
	current Session
	logger  *slog.Logger
	journal *journal.Journal
}

// NewGuard wraps s. logger and j may be nil.
func NewGuard(s Session, logger *slog.Logger, j *journal.Journal) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{current: s, logger: logger, journal: j}
}

// Snapshot returns the current session value.
func (g *Guard) Snapshot() Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// Apply runs fn against the current session. On error the session is left
// unchanged. kind and detail describe the transition for the journal.
func (g *Guard) Apply(ctx context.Context, kind string, detail map[string]string, fn Transition) (Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	next, err := fn(g.current)
	if err != nil {
		g.logger.Debug("session transition rejected", "session", g.current.ID, "kind", kind, "error", err)
		return g.current, err
	}
	g.current = next
	g.logger.Debug("session transition", "session", next.ID, "kind", kind, "label", next.Label())

	g.record(ctx, kind, detail)
	return next, nil
}

// Record journals an event that does not change the session, such as an
// export or a self-check run.
func (g *Guard) Record(ctx context.Context, kind string, detail map[string]string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record(ctx, kind, detail)
}

func (g *Guard) record(ctx context.Context, kind string, detail map[string]string) {
	if g.journal == nil {
		return
	}
	if _, err := g.journal.Append(ctx, g.current.ID, kind, detail); err != nil {
		g.logger.Warn("journal append failed", "kind", kind, "error", err)
	}
}

// History returns the journaled events for this session.
func (g *Guard) History(ctx context.Context) ([]journal.Event, error) {
	if g.journal == nil {
		return nil, nil
	}
	id := g.Snapshot().ID
	return g.journal.List(ctx, id)
}

// Activity returns the journaled event count per kind.
func (g *Guard) Activity(ctx context.Context) (map[string]int, error) {
	if g.journal == nil {
		return nil, nil
	}
	return g.journal.CountByKind(ctx, g.Snapshot().ID)
}
