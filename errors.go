package sioclient

import "fmt"

// Kind classifies an Error, matching the error taxonomy from spec.md §7.
type Kind int

const (
	// KindConfig: a required configuration option was missing, or an
	// option had an invalid value (e.g. an unknown transport selector).
	// Returned synchronously from Init.
	KindConfig Kind = iota

	// KindCapacity: the registry has no free slot. Returned from Init.
	KindCapacity

	// KindState: the operation is invalid in the session's current
	// state (sending before handshake, destroying while polling,
	// handshaking while already polling). Returned synchronously, no
	// event is posted.
	KindState

	// KindTransport: an HTTP-level failure — perform error, non-200
	// status, empty body. Logged and converted into a lifecycle event
	// rather than returned to a synchronous caller, except where the
	// spec calls for a direct return (e.g. sio_client_begin).
	KindTransport

	// KindProtocol: wrong packet count, wrong packet kind, malformed
	// JSON, or a missing expected JSON field.
	KindProtocol

	// KindFatal: unrecoverable allocation failure. Go's runtime already
	// terminates the process on true out-of-memory conditions, so no
	// code path in this package constructs a KindFatal error; the value
	// exists for parity with the original taxonomy (see DESIGN.md).
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindCapacity:
		return "capacity"
	case KindState:
		return "state"
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every synchronous operation in
// this package. It carries a Kind so callers can branch on the error
// category with errors.As, and wraps an optional underlying cause.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sioclient: %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("sioclient: %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, &Error{Kind: KindState}) match on Kind alone,
// the way callers most often want to test these errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newErr(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Message: msg}
}

func wrapErr(kind Kind, op, msg string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: msg, Cause: cause}
}
