package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// Category groups related error codes.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategoryConfig   Category = "config"
	CategoryProtocol Category = "protocol"
	CategoryCLI      Category = "cli"
)

// Location is a position in a source or configuration file.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
}

func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Error is a coded error with an explanation and a hint.
type Error struct {
	// Code identifies the error, e.g. "W203".
	Code     string
	Category Category

	Message string
	Detail  string

	Location *Location
	// Context holds the file lines around Location.
	Context []string

	Suggestion string
	DocURL     string

	Wrapped error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is matches another *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithLocation records where the error occurred and loads the surrounding
// lines of file.
func (e *Error) WithLocation(file string, line, column int) *Error {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

var lineRE = regexp.MustCompile(`line (\d+)(?:, column (\d+))?`)

// WithLocationFromError takes the line reported by a parser error such as
// "yaml: line 4: mapping values are not allowed" and records it in file.
func (e *Error) WithLocationFromError(file string, err error) *Error {
	if err == nil {
		return e
	}
	m := lineRE.FindStringSubmatch(err.Error())
	if m == nil {
		return e
	}
	line, _ := strconv.Atoi(m[1])
	col, _ := strconv.Atoi(m[2])
	return e.WithLocation(file, line, col)
}

func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// Wrap sets the underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

func readContextLines(filename string, target, size int) []string {
	f, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer f.Close()

	first, last := target-size/2, target+size/2
	var lines []string
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan() && n <= last; n++ {
		if n >= first {
			lines = append(lines, sc.Text())
		}
	}
	return lines
}

// New creates an error from a registered code. Unregistered codes produce
// an "Unknown error".
func New(code string) *Error {
	t, ok := registry[code]
	if !ok {
		return &Error{Code: code, Message: "Unknown error"}
	}
	return &Error{
		Code:     code,
		Category: t.Category,
		Message:  t.Message,
		Detail:   t.Detail,
		DocURL:   t.DocURL,
	}
}

// Newf creates an uncoded error.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{Category: category, Message: fmt.Sprintf(format, args...)}
}

// FromError returns err itself when it already is an *Error somewhere in its
// chain, and otherwise wraps it in a new error with code.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var we *Error
	if stderrors.As(err, &we) {
		return we
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first *Error in err's chain.
func Code(err error) string {
	var we *Error
	if stderrors.As(err, &we) {
		return we.Code
	}
	return ""
}
