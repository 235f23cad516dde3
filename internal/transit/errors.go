package transit

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies fetch failures
type Kind int

const (
	// KindConnection is an HTTP transport failure (dial, TLS, timeout)
	KindConnection Kind = iota + 1
	// KindStatus is a non-2xx response
	KindStatus
	// KindIO is a failure while reading the response body
	KindIO
	// KindJSON is a body or element that is not valid JSON for the expected shape
	KindJSON
	// KindStructure is a valid JSON document without a stationboard array
	KindStructure
)

// String returns the display name of the kind
func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "Connection error"
	case KindStatus:
		return "HTTP status error"
	case KindIO:
		return "IO error"
	case KindJSON:
		return "JSON error"
	case KindStructure:
		return "Structure error"
	default:
		return "Unknown error"
	}
}

// FetchError is the single error type returned by Client.Fetch
type FetchError struct {
	Kind Kind
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// newFetchError wraps err with a message and stack, tagged with kind
func newFetchError(kind Kind, err error, msg string) *FetchError {
	if err == nil {
		return &FetchError{Kind: kind, Err: errors.New(msg)}
	}
	return &FetchError{Kind: kind, Err: errors.Wrap(err, msg)}
}

// KindOf returns the Kind of err, or 0 if err is not a *FetchError
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

// IsKind reports whether err is a *FetchError of the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
