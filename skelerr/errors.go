// Package skelerr defines the typed error taxonomy the simulator uses to
// fail fast on bad input, broken invariants, numeric stalls and impossible
// case-analysis branches (spec.md §7). All four carry enough context
// (triangle info, simulated time) for a caller to diagnose the failure
// without attaching a debugger.
package skelerr

import "fmt"

// Kind tags which of the four failure categories an error belongs to, so
// callers can branch with errors.As without parsing messages.
type Kind int

const (
	InvalidInput Kind = iota
	InvariantViolation
	NumericStall
	ImpossibleConfiguration
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case InvariantViolation:
		return "invariant violation"
	case NumericStall:
		return "numeric stall"
	case ImpossibleConfiguration:
		return "impossible configuration"
	default:
		return "unknown"
	}
}

// Error is the single error type the core raises. TriangleInfo is -1 when
// the failure isn't attributable to one triangle (e.g. a NumericStall
// guard firing, or InvalidInput discovered before any triangle exists).
type Error struct {
	Kind         Kind
	Message      string
	TriangleInfo int
	Time         float64
}

func (e *Error) Error() string {
	if e.TriangleInfo >= 0 {
		return fmt.Sprintf("%s: %s (triangle=%d, t=%g)", e.Kind, e.Message, e.TriangleInfo, e.Time)
	}
	return fmt.Sprintf("%s: %s (t=%g)", e.Kind, e.Message, e.Time)
}

// Is lets errors.Is(err, skelerr.ErrInvalidInput) style sentinels work by
// comparing Kind; two *Error values are "the same" for errors.Is purposes
// iff their Kind matches.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newErr(kind Kind, triangleInfo int, time float64, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), TriangleInfo: triangleInfo, Time: time}
}

func NewInvalidInput(format string, args ...any) *Error {
	return newErr(InvalidInput, -1, 0, format, args...)
}

func NewInvariantViolation(triangleInfo int, now float64, format string, args ...any) *Error {
	return newErr(InvariantViolation, triangleInfo, now, format, args...)
}

func NewNumericStall(now float64, iterations int) *Error {
	return newErr(NumericStall, -1, now, "exceeded %d event-loop iterations without converging", iterations)
}

func NewImpossibleConfiguration(triangleInfo int, now float64, format string, args ...any) *Error {
	return newErr(ImpossibleConfiguration, triangleInfo, now, format, args...)
}

// Sentinels for errors.Is comparisons against a bare kind, e.g.
// errors.Is(err, skelerr.ErrInvalidInput).
var (
	ErrInvalidInput            = &Error{Kind: InvalidInput}
	ErrInvariantViolation       = &Error{Kind: InvariantViolation}
	ErrNumericStall             = &Error{Kind: NumericStall}
	ErrImpossibleConfiguration  = &Error{Kind: ImpossibleConfiguration}
)
