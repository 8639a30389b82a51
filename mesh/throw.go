package mesh

import "github.com/pkg/errors"

// Threading errors up and down through the walks, fans and ear lists would add
// a ton of noise to the code. Instead, the internals panic with a *Error, and
// every exported operation recovers to convert it back into an error.

type Kind int

const (
	// A handle or argument was bad. Detected before anything is mutated.
	InvalidArgument Kind = iota + 1
	// Degenerate geometry, or a walk that failed to close within its budget
	Numerical
	// A capacity limit was hit
	Resource
	// Only produced by the verifier
	Consistency
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case Numerical:
		return "numerical failure"
	case Resource:
		return "resource exhausted"
	case Consistency:
		return "consistency violation"
	}
	return "unknown"
}

type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	return e.cause.Error()
}

func (e *Error) Cause() error {
	return e.cause
}

func (e *Error) Unwrap() error {
	return e.cause
}

// A *Error of the given kind, for callers building on the mesh
func NewError(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, cause: errors.Errorf(format, args...)}
}

// Panic with a *Error of the given kind.
func fatalf(kind Kind, format string, args ...interface{}) {
	panic(&Error{Kind: kind, cause: errors.Errorf(format, args...)})
}

func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if meshError, ok := r.(*Error); ok {
			return meshError
		}
		panic(r)
	}
	return nil
}

// Kind of a mesh error anywhere in the chain, or zero if there is none.
func KindOf(err error) Kind {
	var meshError *Error
	if errors.As(err, &meshError) {
		return meshError.Kind
	}
	var verifyError *VerifyError
	if errors.As(err, &verifyError) {
		return Consistency
	}
	return 0
}

// Used by exported methods as `defer recoverInto(&err)`
func recoverInto(err *error) {
	if recovered := HandlePanicRecover(recover()); recovered != nil {
		*err = recovered
	}
}
