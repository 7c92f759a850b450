package dcf

import "errors"

// Kind classifies a library error so callers can branch on the failure
// mode with errors.Is instead of parsing messages.
type Kind int

const (
	// DomainError: empty curve queried, non-monotonic grid, or a
	// non-positive value handed to a log-based scheme.
	DomainError Kind = iota
	// ShapeError: mismatched xs/ys or amount/date vector lengths.
	ShapeError
	// NegativeVariance: terminal-vol variance differencing went negative
	// and no floor was configured.
	NegativeVariance
	// RootNotBracketed: a YTM, fair-rate, or curve-fit solve could not
	// find a sign change in its search bracket.
	RootNotBracketed
	// AmbiguousFixedRate: FixedRate() on a list whose rate-bearing
	// payoffs disagree on the fixed rate.
	AmbiguousFixedRate
	// MissingCurve: a pricing function was invoked without a curve it
	// requires.
	MissingCurve
	// ConfigError: unknown scheme name, incompatible displacement, etc.
	ConfigError
)

func (k Kind) String() string {
	switch k {
	case DomainError:
		return "DomainError"
	case ShapeError:
		return "ShapeError"
	case NegativeVariance:
		return "NegativeVariance"
	case RootNotBracketed:
		return "RootNotBracketed"
	case AmbiguousFixedRate:
		return "AmbiguousFixedRate"
	case MissingCurve:
		return "MissingCurve"
	case ConfigError:
		return "ConfigError"
	default:
		return "UnknownError"
	}
}

// Error wraps a message with a Kind so errors.Is(err, dcf.ErrNegativeVariance)
// style checks work without string matching.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Kind.String() + ": " + e.Msg
	}
	return e.Op + ": " + e.Kind.String() + ": " + e.Msg
}

// Is lets errors.Is(err, target) work by comparing kinds, not identity,
// when target is an *Error such as one of the Err* sentinels (e.g.
// errors.Is(err, dcf.ErrNegativeVariance)).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// newErr builds an *Error for kind k, tagging it with the failing
// operation's name in the "Func: reason" idiom.
func newErr(op string, k Kind, msg string) error {
	return &Error{Kind: k, Op: op, Msg: msg}
}

// sentinel kind markers so callers can write errors.Is(err, dcf.ErrNegativeVariance).
var (
	ErrDomain             = &Error{Kind: DomainError}
	ErrShape              = &Error{Kind: ShapeError}
	ErrNegativeVariance   = &Error{Kind: NegativeVariance}
	ErrRootNotBracketed   = &Error{Kind: RootNotBracketed}
	ErrAmbiguousFixedRate = &Error{Kind: AmbiguousFixedRate}
	ErrMissingCurve       = &Error{Kind: MissingCurve}
	ErrConfigError        = &Error{Kind: ConfigError}
)

// KindOf reports the Kind of err, if err (or something it wraps) is an
// *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
