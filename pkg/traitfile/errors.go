package traitfile

import (
	"fmt"
	"strings"
)

// ErrorType categorizes a problem found while loading a trait file.
type ErrorType string

const (
	ErrorTypeSyntax     ErrorType = "syntax"     // malformed YAML
	ErrorTypeStructural ErrorType = "structural" // schema violation
	ErrorTypeSemantic   ErrorType = "semantic"   // bad type name, unknown reference
	ErrorTypeIO         ErrorType = "io"         // file access failure
)

// Error is one problem found in a trait file. Path points into the
// document structure ("traits[0].fields[2]") since YAML node positions are
// lost once the document is decoded.
type Error struct {
	Type       ErrorType
	Message    string
	File       string
	Path       string
	Suggestion string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s\n", e.Type, e.Message))
	if e.File != "" || e.Path != "" {
		sb.WriteString(fmt.Sprintf("  --> %s: %s\n", e.File, e.Path))
	}
	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}
	return sb.String()
}

// ErrorList accumulates problems so a whole file can be reported in one
// pass instead of failing on the first issue.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates an empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{Errors: make([]*Error, 0)}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and appends an error from its parts.
func (el *ErrorList) AddError(errType ErrorType, message, file, path string) {
	el.Add(&Error{Type: errType, Message: message, File: file, Path: path})
}

// AddErrorWithSuggestion creates and appends an error carrying a fix hint.
func (el *ErrorList) AddErrorWithSuggestion(errType ErrorType, message, file, path, suggestion string) {
	el.Add(&Error{Type: errType, Message: message, File: file, Path: path, Suggestion: suggestion})
}

// HasErrors reports whether any error was recorded.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of recorded errors.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface, rendering every recorded problem.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("found %d error(s):\n\n", el.Count()))
	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToError returns nil when the list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns the recorded errors of one category.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var out []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			out = append(out, err)
		}
	}
	return out
}
