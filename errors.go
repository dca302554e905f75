package mlkem

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an Error, following the five-way taxonomy spec.md §7
// requires: malformed parameters, wrong-length input, structurally
// invalid encodings, entropy-source failure, and internal invariant
// violations.
type Kind int

const (
	// InvalidParameter marks an unsupported or out-of-range parameter
	// level (e.g. ParameterSet(3)).
	InvalidParameter Kind = iota
	// InvalidLength marks an input byte slice of the wrong size.
	InvalidLength
	// InvalidEncoding marks a structurally invalid encoding, such as a
	// ByteDecode_12 coefficient >= q in a parsed public key.
	InvalidEncoding
	// EntropyFailure marks a failure to read from the caller-supplied
	// randomness source.
	EntropyFailure
	// Internal marks a condition that should be unreachable given a
	// correct caller and a correct implementation.
	Internal
)

func (k Kind) String() string {
	switch k {
	case InvalidParameter:
		return "invalid parameter"
	case InvalidLength:
		return "invalid length"
	case InvalidEncoding:
		return "invalid encoding"
	case EntropyFailure:
		return "entropy failure"
	case Internal:
		return "internal error"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by this package. It carries a Kind so
// callers can branch with errors.Is against the exported sentinels below,
// and an Op naming the failing operation.
type Error struct {
	Kind Kind
	Op   string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("mlkem: %s: %s: %v", e.Op, e.Kind, e.err)
	}
	return fmt.Sprintf("mlkem: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is a *Error with the same Kind, satisfying
// errors.Is(err, ErrInvalidLength) without requiring exact identity.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors for errors.Is comparisons.
var (
	ErrInvalidParameter = &Error{Kind: InvalidParameter}
	ErrInvalidLength    = &Error{Kind: InvalidLength}
	ErrInvalidEncoding  = &Error{Kind: InvalidEncoding}
	ErrEntropyFailure   = &Error{Kind: EntropyFailure}
	ErrInternal         = &Error{Kind: Internal}
)

func newError(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, err: cause}
}

// wrapEntropy wraps a randomness-source read failure with op context,
// mirroring hyperledger-fabric's bccsp/pqc pattern of wrapping low-level
// failures with github.com/pkg/errors rather than losing the cause.
func wrapEntropy(op string, cause error) *Error {
	return newError(EntropyFailure, op, errors.Wrap(cause, "read randomness"))
}
