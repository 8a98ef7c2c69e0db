package api

import (
	"errors"
	"fmt"
)

// Kind classifies a FetchError.
type Kind string

const (
	// KindNetwork means the request never produced a response.
	KindNetwork Kind = "network"
	// KindStatus means the server answered with a non-2xx status.
	KindStatus Kind = "status"
	// KindDecode means the body was not JSON or did not match the expected shape.
	KindDecode Kind = "decode"
)

// FetchError is the only error type Get and Post return. Callers decide the
// fallback; the client never retries.
type FetchError struct {
	Kind     Kind
	Endpoint string
	Status   int
	Message  string
	Err      error
}

func (e *FetchError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%s error from %s (HTTP %d): %s", e.Kind, e.Endpoint, e.Status, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s error from %s: %s: %v", e.Kind, e.Endpoint, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s error from %s: %s", e.Kind, e.Endpoint, e.Message)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsKind reports whether err is a FetchError of the given kind.
func IsKind(err error, kind Kind) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == kind
}

// LogAttrs returns slog key/value pairs describing err. FetchErrors
// contribute their endpoint and kind.
func LogAttrs(err error) []any {
	var fe *FetchError
	if errors.As(err, &fe) {
		return []any{"endpoint", fe.Endpoint, "kind", string(fe.Kind), "err", err}
	}
	return []any{"err", err}
}
