package errcodes

import (
	"context"
	"fmt"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
)

// Error is a typed failure surfaced by the ComicVine client and the import
// pipeline. Code is a stable machine-readable identifier; Message is what
// gets shown to the user.
type Error struct {
	Code     string
	Message  string
	HTTPCode int // non-zero only for http_status errors
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.Code = err.Code
	te.Message = err.Message
	te.HTTPCode = err.HTTPCode
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	// Matching on code alone lets callers test kinds with sentinel values
	// (e.g. errors.Is(err, errcodes.Cancelled())) regardless of message.
	return te.Code == err.Code
}

func code(kind string) string {
	return strcase.ToSnake(kind)
}

// Transport returns a network-level failure (DNS, dial, TLS, timeout).
func Transport(err error) error {
	return &Error{
		Code:    code("Transport"),
		Message: fmt.Sprintf("Request failed: %v.", err),
	}
}

// HTTPStatus returns a failure for a non-2xx response.
func HTTPStatus(statusCode int) error {
	return &Error{
		Code:     code("HTTPStatus"),
		Message:  fmt.Sprintf("ComicVine returned HTTP %d.", statusCode),
		HTTPCode: statusCode,
	}
}

// Decode returns a failure for a response body that isn't valid JSON.
func Decode(err error) error {
	return &Error{
		Code:    code("Decode"),
		Message: fmt.Sprintf("Response body could not be decoded: %v.", err),
	}
}

// Domain returns a failure reported inside the API envelope (error != "OK").
func Domain(message string) error {
	return &Error{
		Code:    code("Domain"),
		Message: "ComicVine error: " + message + ".",
	}
}

// Cancelled returns the cooperative-cancellation failure. It takes
// precedence over any other error observed after cancellation was signaled.
func Cancelled() error {
	return &Error{
		Code:    code("Cancelled"),
		Message: "Operation cancelled.",
	}
}

// NotConfigured returns a failure for a missing required setting.
func NotConfigured(setting string) error {
	return &Error{
		Code:    code("NotConfigured"),
		Message: setting + " is not configured.",
	}
}

// NoteExists returns a failure for an import that would overwrite an
// existing note without the overwrite flag.
func NoteExists(path string) error {
	return &Error{
		Code:    code("NoteExists"),
		Message: fmt.Sprintf("Note %q already exists; re-run with --overwrite to replace it.", path),
	}
}

// FromContext maps a context error to the Cancelled kind. It returns nil for
// a live context.
func FromContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return Cancelled()
	}
	return nil
}

// IsCancelled reports whether err (anywhere in its chain) is the Cancelled
// kind or a raw context cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, Cancelled()) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
