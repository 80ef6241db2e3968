package findings

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaSource string

//go:embed findings.cue
var findingsSource []byte

// Load error codes for failures before semantic validation.
const (
	ErrCodeRead   = "E210" // source could not be read
	ErrCodeCUE    = "E211" // CUE compile or schema unification failed
	ErrCodeDecode = "E212" // CUE value could not be decoded
)

// LoadError is the fatal error returned when a knowledge base cannot be
// turned into a Repository.
type LoadError struct {
	Code    string
	Field   string
	Message string
	Pos     token.Pos
	Issues  []ValidationError // all semantic violations, when Code is E2xx from Validate
	Err     error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if len(e.Issues) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(e.Issues)-1)
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Repository is a validated, read-only finding set.
type Repository struct {
	findings []Finding
}

// New validates set and returns a repository ordered canonically.
func New(set []Finding) (*Repository, error) {
	if issues := Validate(set); len(issues) > 0 {
		return nil, &LoadError{
			Code:    issues[0].Code,
			Field:   issues[0].Field,
			Message: issues[0].Message,
			Issues:  issues,
		}
	}

	order := make(map[Category]int)
	for i, c := range Canonical() {
		order[c] = i
	}

	owned := make([]Finding, len(set))
	for i, f := range set {
		owned[i] = f.Clone()
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return order[owned[i].Category] < order[owned[j].Category]
	})

	return &Repository{findings: owned}, nil
}

// All returns a deep copy of the findings in canonical order.
func (r *Repository) All() []Finding {
	out := make([]Finding, len(r.findings))
	for i, f := range r.findings {
		out[i] = f.Clone()
	}
	return out
}

// Get returns the finding for category.
func (r *Repository) Get(c Category) (Finding, bool) {
	for _, f := range r.findings {
		if f.Category == c {
			return f.Clone(), true
		}
	}
	return Finding{}, false
}

// Categories returns the category labels in order.
func (r *Repository) Categories() []Category {
	out := make([]Category, len(r.findings))
	for i, f := range r.findings {
		out[i] = f.Category
	}
	return out
}

// Len returns the number of findings.
func (r *Repository) Len() int {
	return len(r.findings)
}

var defaultRepo = sync.OnceValues(func() (*Repository, error) {
	return Load(findingsSource, "findings.cue")
})

// Default returns the embedded knowledge base. The result is shared; it is
// safe because Repository never exposes its internal slices.
func Default() (*Repository, error) {
	return defaultRepo()
}

// LoadFile loads a knowledge base from a CUE file on disk.
func LoadFile(path string) (*Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeRead,
			Message: fmt.Sprintf("reading knowledge base: %v", err),
			Err:     err,
		}
	}
	return Load(data, path)
}

// Load compiles src as CUE, unifies it with the schema, decodes the
// findings and validates them.
func Load(src []byte, filename string) (*Repository, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	data := ctx.CompileBytes(src, cue.Filename(filename))
	if err := data.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	value := schema.Unify(data)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	listVal := value.LookupPath(cue.ParsePath("findings"))
	if !listVal.Exists() {
		return nil, &LoadError{Code: ErrCodeDecode, Field: "findings", Message: "findings list is required"}
	}

	var set []Finding
	if err := listVal.Decode(&set); err != nil {
		return nil, &LoadError{Code: ErrCodeDecode, Field: "findings", Message: err.Error(), Err: err}
	}

	return New(set)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: ErrCodeCUE, Message: err.Error(), Err: err}
	}

	first := errs[0]
	loadErr := &LoadError{Code: ErrCodeCUE, Message: first.Error(), Err: err}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		loadErr.Pos = positions[0]
	}
	return loadErr
}

// IsLoadError reports whether err is a knowledge-base load failure.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
