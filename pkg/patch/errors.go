package patch

import "fmt"

// ErrorCode classifies the fatal failures the engine can report.
type ErrorCode string

const (
	// CodeMalformedHeader signals a payload that does not open with the
	// "*** Begin Patch" marker.
	CodeMalformedHeader ErrorCode = "MALFORMED_HEADER"
	// CodeDuplicatePath signals a path targeted by more than one directive.
	CodeDuplicatePath ErrorCode = "DUPLICATE_PATH"
	// CodeMissingFile signals an Update or Delete on a path absent from the
	// snapshot.
	CodeMissingFile ErrorCode = "MISSING_FILE"
	// CodeUnrecognizedDirective signals a top-level line that matches none of
	// the known directive forms.
	CodeUnrecognizedDirective ErrorCode = "UNRECOGNIZED_DIRECTIVE"
	// CodeContextNotFound signals a hunk whose expected lines cannot be
	// located in the target file.
	CodeContextNotFound ErrorCode = "CONTEXT_NOT_FOUND"
)

// Error represents a structured failure while parsing or building a patch. It
// satisfies the error interface so it can be returned directly from the
// package's entry points.
type Error struct {
	Code    ErrorCode
	Path    string
	Line    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return "patch error"
}

func duplicatePathError(directive, path string) *Error {
	return &Error{
		Code:    CodeDuplicatePath,
		Path:    path,
		Message: fmt.Sprintf("%s Error: Duplicate Path: %s", directive, path),
	}
}

func missingFileError(directive, path string) *Error {
	return &Error{
		Code:    CodeMissingFile,
		Path:    path,
		Message: fmt.Sprintf("%s Error: Missing File: %s", directive, path),
	}
}

func malformedHeaderError() *Error {
	return &Error{
		Code:    CodeMalformedHeader,
		Message: "Patch must start with *** Begin Patch",
	}
}
