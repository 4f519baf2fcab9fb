package meshio

import "fmt"

// ParseError reports a malformed record.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("meshio: line %d: %s", e.Line, e.Msg)
}

func parseErrorf(line int, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
