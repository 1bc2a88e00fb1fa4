// Package errors formats ALang lexer/parser/runtime errors with source
// context and caret indicators, and carries call-stack traces for
// structured exceptions.
package errors

import (
	"fmt"
	"strings"

	"github.com/asultop/alang/internal/token"
)

// CompilerError is a single lex/parse-time error with its source span,
// carrying enough to render a caret-annotated message (spec §4.1/§4.2).
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// New constructs a CompilerError.
func New(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error with a single line of source context and a caret
// under the offending column. Pass color=true for ANSI-highlighted output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString(strings.Repeat("^", max(1, e.Pos.Length)))
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (e *CompilerError) sourceLine(n int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FormatErrors renders a batch of errors, numbering them when there is more than one.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Compilation failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
