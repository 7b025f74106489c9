package scene

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrMissingSnapshot = errors.New("snapshot is missing")
	ErrMissingSurface  = errors.New("output target is missing")
	ErrRenderPanic     = errors.New("render pass panicked")
)

// Code classifies a failed frame.
type Code int

const (
	// CodeMissingData: required input absent, the frame is skipped.
	CodeMissingData Code = 1001
	// CodeRender: computing or emitting primitives failed, the output is left cleared.
	CodeRender Code = 2001
	// CodeConfiguration: the snapshot names an unknown topology.
	CodeConfiguration Code = 3001
)

func (c Code) ReportType() ReportType {
	switch c {
	case CodeMissingData:
		return ReportMissingData
	case CodeConfiguration:
		return ReportConfiguration
	default:
		return ReportRender
	}
}

// Error is a failed render pass with its classification and context.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Context map[string]any
	Stack   string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds a detail that is carried into the report.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func newError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause, Context: make(map[string]any)}
}

// ReportType is the category of an error report.
type ReportType string

const (
	ReportMissingData   ReportType = "missing_data"
	ReportRender        ReportType = "render"
	ReportConfiguration ReportType = "configuration"
)

// Report is what the engine hands to the host when a frame cannot be drawn.
type Report struct {
	ID      string         `json:"id"`
	Type    ReportType     `json:"type"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Stack   string         `json:"stack,omitempty"`
}

// Report converts the error into a host-facing report.
func (e *Error) Report() Report {
	details := make(map[string]any, len(e.Context)+1)
	for k, v := range e.Context {
		details[k] = v
	}
	if e.Cause != nil {
		details["cause"] = e.Cause.Error()
	}
	return Report{
		ID:      uuid.NewString(),
		Type:    e.Code.ReportType(),
		Message: e.Message,
		Details: details,
		Stack:   e.Stack,
	}
}

// AsError extracts the render error from err, classifying foreign errors as render errors.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return newError(CodeRender, fmt.Sprintf("render failed: %T", err), err)
}
