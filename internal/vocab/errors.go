package vocab

import (
	"errors"
	"fmt"
)

// ErrNoData indicates that a data directory contained no usable class files
var ErrNoData = errors.New("no vocabulary data files found")

// ErrEmptyDictionary indicates that the selected categories produced no
// practice words
var ErrEmptyDictionary = errors.New("dictionary contains no words")

// ParseError describes a malformed data file. Line is 1-based and zero when
// the error is not tied to a specific line.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError checks if an error is a ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
