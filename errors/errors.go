package errors

import (
	// Go internal packages
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
)

// Error defines a standard application error.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	// Wrapped underlying error.
	WrappedErr error `json:"wrapped_err,omitempty"`
}

// Error returns the string representation of the error message.
func (e *Error) Error() string {
	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(e)
	return buf.String()
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.WrappedErr
}

// NewError returns standard go error with given string
func NewError(e string) error {
	return errors.New(e)
}

// Kind defines the kind or class of an error.
type Kind uint8

// Transport agnostic error "kinds"
const (
	Other         Kind = iota // Unclassified error
	Internal                  // Internal error
	Conflict                  // Conflict when an entity already exists
	Invalid                   // Invalid input, validation error etc
	NotFound                  // Entity does not exist
	Unauthorized              // Unauthorized access
	Forbidden                 // Forbidden access
	Upstream                  // Gateway returned non-2xx or malformed response
	Configuration             // Missing or unusable settings/credentials
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "unclassified error"
	case Internal:
		return "internal error"
	case Invalid:
		return "invalid input"
	case NotFound:
		return "entity not found"
	case Unauthorized:
		return "unauthorized"
	case Upstream:
		return "upstream gateway error"
	case Configuration:
		return "configuration error"
	default:
		return "unknown error kind"
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch arg := arg.(type) {
		case Kind:
			e.Kind = arg
		case error:
			e.WrappedErr = arg
		case string:
			e.Message = arg
		}
	}
	return e
}

// KindOf extracts the Kind from err, or Other for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}

// HTTPStatus maps an error to the status code handlers should answer with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Invalid:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the human-facing message of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// NewInternalServerError creates a new internal server error
func NewInternalServerError(msg string) error {
	return E(Internal, msg)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(msg string) error {
	return E(NotFound, msg)
}

// NewInvalidParamsError creates a new invalid parameters error
func NewInvalidParamsError(msg string) error {
	return E(Invalid, msg)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(msg string) error {
	return E(Unauthorized, msg)
}

// NewUpstreamError creates a new upstream gateway error
func NewUpstreamError(msg string) error {
	return E(Upstream, msg)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(msg string) error {
	return E(Configuration, msg)
}

var (
	As = errors.As
	Is = errors.Is
)
