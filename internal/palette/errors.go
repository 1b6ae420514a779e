package palette

import (
	"errors"
	"fmt"

	"github.com/agext/levenshtein"
	"github.com/jsvensson/unipalette/internal/parser"
)

// Resolution failures. A *ResolveError wraps exactly one of these.
var (
	ErrUnknownIdentifier = errors.New("unknown identifier")
	ErrUnknownNamedColor = errors.New("unknown named color")
	ErrUnknownFunction   = errors.New("unknown function")
	ErrArity             = errors.New("wrong number of arguments")
	ErrCallDepth         = errors.New("call depth exceeded")
)

// ErrBuilt is returned when adding to a Builder after Finish.
var ErrBuilt = errors.New("palette already built")

// ResolveError reports which name could not be resolved and where it
// appears in the expression source.
type ResolveError struct {
	Err    error
	Name   string
	Span   parser.Span
	Detail string
	Hint   string // closest known name, if any
}

func (e *ResolveError) Error() string {
	msg := fmt.Sprintf("%v %q", e.Err, e.Name)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Hint != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Hint)
	}
	return msg
}

func (e *ResolveError) Unwrap() error { return e.Err }

// LineError ties a load failure to its 1-based line in the palette source.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// suggest returns the candidate closest to name, or "" when nothing is
// within two edits.
func suggest(name string, candidates []string) string {
	best := ""
	bestDist := 3
	for _, c := range candidates {
		if c == name {
			continue
		}
		if d := levenshtein.Distance(name, c, nil); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
