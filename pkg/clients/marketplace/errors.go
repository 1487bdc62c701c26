package marketplace

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies failures of the marketplace API.
type ErrorKind string

const (
	KindNetwork    ErrorKind = "network"
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindNotFound   ErrorKind = "not_found"
	KindServer     ErrorKind = "server"
	KindUnknown    ErrorKind = "unknown"
)

var (
	// ErrNetwork matches connection failures and timeouts.
	ErrNetwork = errors.New("marketplace unreachable")
	// ErrValidation matches 4xx rejections carrying field detail.
	ErrValidation = errors.New("marketplace rejected the request")
	// ErrConflict matches a duplicate price list; resubmit with overwrite set.
	ErrConflict = errors.New("price list already exists")
	// ErrNotFound matches 404 responses.
	ErrNotFound = errors.New("resource not found")
	// ErrServer matches 5xx responses.
	ErrServer = errors.New("marketplace server error")
)

// APIError is returned for every failed marketplace call.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Fields  map[string]string
	Op      string
	cause   error
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.cause != nil {
		b.WriteString(": " + e.cause.Error())
	}
	return b.String()
}

func (e *APIError) Unwrap() error { return e.cause }

// Is lets errors.Is compare an APIError against the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrServer:
		return e.Kind == KindServer
	}
	return false
}

// Retryable reports whether repeating the same call may succeed.
func (e *APIError) Retryable() bool {
	return e.Kind == KindNetwork || e.Kind == KindServer
}

// errorBody is the error envelope returned by the backend. Field errors come either
// as a single message or a list of messages per field.
type errorBody struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

func (b *errorBody) message() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

func (b *errorBody) fields() map[string]string {
	if len(b.Errors) == 0 {
		return nil
	}

	var single map[string]string
	if err := json.Unmarshal(b.Errors, &single); err == nil {
		return single
	}

	var multi map[string][]string
	if err := json.Unmarshal(b.Errors, &multi); err == nil {
		out := make(map[string]string, len(multi))
		for k, v := range multi {
			out[k] = strings.Join(v, "; ")
		}
		return out
	}
	return nil
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= http.StatusInternalServerError:
		return KindServer
	case status >= http.StatusBadRequest:
		return KindValidation
	default:
		return KindUnknown
	}
}

func statusError(op string, status int, body *errorBody) *APIError {
	apiErr := &APIError{Kind: kindForStatus(status), Status: status, Op: op}
	if body != nil {
		apiErr.Message = body.message()
		apiErr.Fields = body.fields()
	}
	return apiErr
}

func networkError(op string, err error) *APIError {
	return &APIError{Kind: KindNetwork, Op: op, cause: err}
}
