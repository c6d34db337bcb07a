package launch

import (
	"errors"
	"fmt"
)

// ErrInvalidDescriptor is wrapped by Validate failures.
var ErrInvalidDescriptor = errors.New("invalid launch descriptor")

// InvalidPathError reports a script path that cannot be relativized.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid script path %q: %s", e.Path, e.Reason)
}

// EncodingError reports a value that cannot be represented in a script
// generated for the given platform.
type EncodingError struct {
	Field   string
	Value   string
	Charset string
	Reason  string
}

func (e *EncodingError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cannot encode value for %s: %s", e.Charset, e.Reason)
	}
	return fmt.Sprintf("cannot encode %s %q for %s: %s", e.Field, e.Value, e.Charset, e.Reason)
}
