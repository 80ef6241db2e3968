// Package session holds the state a user builds up while preparing an
// assessment: project details, council, toggle, figure selection and the
// classification label.
//
// Session is a value. Every transition returns a new Session and leaves the
// receiver untouched, so exports can work from a snapshot while the user
// keeps editing. Guard serializes user-driven transitions.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/tiaki/internal/compose"
	"github.com/roach88/tiaki/internal/figures"
	"github.com/roach88/tiaki/internal/region"
)

var (
	// ErrNothingPending is returned by Confirm when no disambiguation is open.
	ErrNothingPending = errors.New("no classification awaiting confirmation")
	// ErrInvalidChoice is returned by Confirm for an out-of-range choice.
	ErrInvalidChoice = errors.New("invalid candidate choice")
)

// Session is one user's working state.
type Session struct {
	ID                string
	Project           string
	Location          string
	Council           region.Council
	SpeciesCheckpoint bool
	Figures           []figures.Figure

	label   string
	pending *region.Result
}

// New creates a session with a fresh UUIDv7 ID, the default figures and the
// given council.
func New(council region.Council) Session {
	return Session{
		ID:                NewID(),
		Council:           council,
		SpeciesCheckpoint: true,
		Figures:           figures.Defaults(),
	}
}

// NewID returns a time-sortable session ID.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Label returns the resolved label, or region.NotSet.
func (s Session) Label() string {
	if s.label == "" {
		return region.NotSet
	}
	return s.label
}

// Resolved reports whether a label has been resolved.
func (s Session) Resolved() bool {
	return s.label != ""
}

// Pending returns the open disambiguation, if any.
func (s Session) Pending() (region.Result, bool) {
	if s.pending == nil {
		return region.Result{}, false
	}
	return region.PendingOf(s.pending.Candidates), true
}

// Context returns the composer context for the session.
func (s Session) Context() compose.Context {
	return compose.Context{
		ProjectName: s.Project,
		Location:    s.Location,
		Council:     s.Council,
		Label:       s.label,
	}
}

// WithProject sets the project name.
func (s Session) WithProject(name string) Session {
	s.Project = name
	return s
}

// WithCouncil switches council and reclassifies the recorded location
// against the new council's regions. Any open disambiguation is discarded,
// since its candidates belong to the old council. A location that is
// ambiguous under the new council leaves the label unset until it is
// located again.
func (s Session) WithCouncil(c region.Council) Session {
	s.Council = c
	s.pending = nil
	if s.Location == "" {
		return s
	}
	res := region.Classify(s.Location, c)
	if res.Pending {
		s.label = ""
		return s
	}
	s.label = res.Label
	return s
}

// WithSpeciesCheckpoint sets the stage-gate checkpoint toggle.
func (s Session) WithSpeciesCheckpoint(on bool) Session {
	s.SpeciesCheckpoint = on
	return s
}

// ToggleFigure flips the selection of one figure.
func (s Session) ToggleFigure(id string) (Session, error) {
	figs, err := figures.Toggle(s.Figures, id)
	if err != nil {
		return s, err
	}
	s.Figures = figs
	return s, nil
}

// SelectFigures selects exactly the given figures.
func (s Session) SelectFigures(ids []string) (Session, error) {
	figs, err := figures.Select(s.Figures, ids)
	if err != nil {
		return s, err
	}
	s.Figures = figs
	return s, nil
}

// Classify records location and classifies it. A resolved result replaces
// the label; a pending one is held for Confirm or Cancel and the label is
// left as it was.
func (s Session) Classify(location string) (Session, region.Result) {
	res := region.Classify(location, s.Council)
	s.Location = location
	if res.Pending {
		s.pending = &res
		return s, res
	}
	s.label = res.Label
	s.pending = nil
	return s, res
}

// Confirm resolves the open disambiguation with the 1-based choice.
func (s Session) Confirm(choice int) (Session, error) {
	if s.pending == nil {
		return s, ErrNothingPending
	}
	if choice < 1 || choice > len(s.pending.Candidates) {
		return s, fmt.Errorf("%w: %d (have %d candidates)", ErrInvalidChoice, choice, len(s.pending.Candidates))
	}
	s.label = s.pending.Candidates[choice-1]
	s.pending = nil
	return s, nil
}

// Cancel closes the open disambiguation without changing the label.
func (s Session) Cancel() (Session, error) {
	if s.pending == nil {
		return s, ErrNothingPending
	}
	s.pending = nil
	return s, nil
}
