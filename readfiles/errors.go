package readfiles

import "fmt"

// ParseError carries file/line/column context for a malformed input file
type ParseError struct {
	File string
	Line int
	Col  int // 1-based, 0 when a whole line is at fault
	Err  error
}

func (e *ParseError) Error() string {
	if e.Col > 0 {
		return fmt.Sprintf("%s:%d: column %d: %s", e.File, e.Line, e.Col, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(file string, line, col int, format string, args ...interface{}) *ParseError {
	return &ParseError{
		File: file,
		Line: line,
		Col:  col,
		Err:  fmt.Errorf(format, args...),
	}
}
