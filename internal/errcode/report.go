package errcode

import (
	"encoding/json"
	"errors"

	"github.com/alantech/alan/internal/ast"
)

// Report is the canonical structured diagnostic type for the core.
// Every error builder documented in spec §7 returns a *Report, which
// is wrapped as a ReportError so it survives errors.As() unwrapping.
type Report struct {
	Schema  string         `json:"schema"` // Always "alan.error/v1"
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Span    *ast.Span      `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Fix     *Fix           `json:"fix,omitempty"`
}

// Fix is an optional suggested remediation with a confidence score.
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// ReportError wraps a Report as an error.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport extracts a Report from an error chain.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as an error. Call sites should return
// errcode.WrapReport(report) to preserve structure through the stack.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON converts a Report to JSON with deterministic key order.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// New builds a Report for the given code/phase/message, filling Schema.
func New(code, phase, message string) *Report {
	return &Report{Schema: "alan.error/v1", Code: code, Phase: phase, Message: message, Data: map[string]any{}}
}

// At attaches a source span to the report and returns it for chaining.
func (r *Report) At(span ast.Span) *Report {
	r.Span = &span
	return r
}

// With attaches a data key/value and returns the report for chaining.
func (r *Report) With(key string, value any) *Report {
	if r.Data == nil {
		r.Data = map[string]any{}
	}
	r.Data[key] = value
	return r
}

// Suggest attaches a suggested fix and returns the report for chaining.
func (r *Report) Suggest(text string, confidence float64) *Report {
	r.Fix = &Fix{Suggestion: text, Confidence: confidence}
	return r
}
