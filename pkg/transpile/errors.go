package transpile

import "fmt"

type ErrorKind int

const (
	LexError ErrorKind = iota
	ParseError
	SemanticError
	GenerateError
	FileSystemError
)

func (k ErrorKind) String() string {
	switch k {
	case LexError:
		return "lex"
	case ParseError:
		return "parse"
	case SemanticError:
		return "semantic"
	case GenerateError:
		return "generate"
	case FileSystemError:
		return "filesystem"
	}
	return "unknown"
}

// Error describes a failure in one stage of the pipeline.
type Error struct {
	Kind    ErrorKind
	Message string
	File    string
	Line    int
	Column  int
	Cause   error
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
