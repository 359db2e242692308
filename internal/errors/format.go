package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
	ansiGray  = "\033[90m"
	ansiBold  = "\033[1m"
)

// colors reports whether Format writes ANSI escapes.
var colors = true

// SetColors turns ANSI colors on or off.
func SetColors(on bool) { colors = on }

// IsTerminal reports whether f is a terminal. The CLI turns colors off when
// stderr is not one.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func paint(code, s string) string {
	if !colors {
		return s
	}
	return code + s + ansiReset
}

// Format renders the error for a terminal.
func (e *Error) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(paint(ansiRed+ansiBold, "ERROR "+e.Code+":"))
	} else {
		b.WriteString(paint(ansiRed+ansiBold, "ERROR:"))
	}
	b.WriteString(" " + e.Message + "\n\n")

	if e.Location != nil {
		b.WriteString("  " + paint(ansiCyan, e.Location.String()) + "\n\n")
		first := e.Location.Line - len(e.Context)/2
		for i, line := range e.Context {
			n := first + i
			marker := "  "
			if n == e.Location.Line {
				marker = paint(ansiRed, "→ ")
			}
			fmt.Fprintf(&b, "  %s%4d %s %s\n", marker, n, paint(ansiGray, "│"), line)
			if n == e.Location.Line && e.Location.Column > 0 {
				fmt.Fprintf(&b, "         %s %s%s\n", paint(ansiGray, "│"),
					strings.Repeat(" ", e.Location.Column-1), paint(ansiRed, "^"))
			}
		}
		if len(e.Context) > 0 {
			b.WriteString("\n")
		}
	}

	if e.Wrapped != nil {
		b.WriteString("  " + e.Wrapped.Error() + "\n\n")
	}
	for _, line := range wrapText(e.Detail, 70) {
		b.WriteString("  " + line + "\n")
	}
	if e.Detail != "" {
		b.WriteString("\n")
	}
	if e.Suggestion != "" {
		b.WriteString("  " + paint(ansiCyan, "Hint: ") + e.Suggestion + "\n\n")
	}
	if e.DocURL != "" {
		b.WriteString("  " + paint(ansiGray, "Learn more: ") + paint(ansiBlue, e.DocURL) + "\n")
	}
	return b.String()
}

// FormatCompact renders the error on one line.
func (e *Error) FormatCompact() string {
	if e.Location != nil {
		return e.Location.String() + ": " + e.Error()
	}
	return e.Error()
}

type jsonError struct {
	Code       string    `json:"code,omitempty"`
	Category   Category  `json:"category"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	Location   *Location `json:"location,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	Cause      string    `json:"cause,omitempty"`
	DocURL     string    `json:"docUrl,omitempty"`
}

// FormatJSON renders the error as a JSON object.
func (e *Error) FormatJSON() string {
	je := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Location:   e.Location,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	}
	if e.Wrapped != nil {
		je.Cause = e.Wrapped.Error()
	}
	out, _ := json.Marshal(je)
	return string(out)
}

func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	var (
		lines   []string
		current strings.Builder
	)
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+1+len(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// Print writes err to w, formatted when it is an *Error.
func Print(w io.Writer, err error) {
	if we := FromError(err, ""); we != nil && we.Code != "" {
		fmt.Fprint(w, we.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %v\n\n", paint(ansiRed+ansiBold, "ERROR:"), err)
}
