package patch

import (
	"errors"
	"strings"
)

// Sentinel errors for rewrite failures. Both are fatal: the input is
// deterministic text, so retrying cannot help.
var (
	// ErrStructuralMismatch indicates that a prerequisite pattern was expected
	// but not found, or was found in the wrong place.
	ErrStructuralMismatch = errors.New("patch: structural mismatch")
	// ErrMalformed indicates that an extracted fragment could not be parsed.
	ErrMalformed = errors.New("patch: malformed fragment")
)

// MismatchError reports a violated generator-output assumption.
type MismatchError struct {
	Rule    string
	Message string
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	var b strings.Builder
	b.WriteString("patch: ")
	b.WriteString(e.Rule)
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// Is reports whether the target matches ErrStructuralMismatch.
func (e *MismatchError) Is(target error) bool {
	return target == ErrStructuralMismatch
}

// NewMismatchError creates a new MismatchError.
func NewMismatchError(rule, message string) *MismatchError {
	return &MismatchError{Rule: rule, Message: message}
}

// FormatError reports a fragment that matched a pattern but does not parse.
type FormatError struct {
	Rule     string
	Fragment string
	Cause    error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("patch: ")
	b.WriteString(e.Rule)
	b.WriteString(": unable to parse ")
	b.WriteString(e.Fragment)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrMalformed.
func (e *FormatError) Is(target error) bool {
	return target == ErrMalformed
}

// NewFormatError creates a new FormatError.
func NewFormatError(rule, fragment string, cause error) *FormatError {
	return &FormatError{Rule: rule, Fragment: fragment, Cause: cause}
}

// IsMismatch reports whether err is a structural mismatch.
func IsMismatch(err error) bool {
	return errors.Is(err, ErrStructuralMismatch)
}
