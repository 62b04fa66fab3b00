package obj

import "fmt"

// ParseError reports a malformed vertex or face line.
// A load that returns it produced nothing usable.
type ParseError struct {
	Path string // empty when decoding a plain reader
	Line int    // 1-based
	Msg  string
	Err  error // underlying strconv error, if any
}

func (e *ParseError) Error() string {
	loc := fmt.Sprintf("line %d", e.Line)
	if e.Path != "" {
		loc = e.Path + ":" + fmt.Sprint(e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", loc, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", loc, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
