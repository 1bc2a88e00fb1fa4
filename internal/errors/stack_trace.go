package errors

import (
	"fmt"
	"strings"

	"github.com/asultop/alang/internal/token"
)

// StackFrame is a single call-stack entry captured at throw time (spec §4.7).
type StackFrame struct {
	FunctionName string
	Pos          *token.Position
}

// String renders a frame as "<name> at line N" per spec §4.7.
func (f StackFrame) String() string {
	if f.Pos == nil {
		return f.FunctionName
	}
	return fmt.Sprintf("%s at line %d", f.FunctionName, f.Pos.Line)
}

// StackTrace is a call stack snapshot, oldest frame first.
type StackTrace []StackFrame

func (st StackTrace) String() string {
	parts := make([]string, len(st))
	for i := len(st) - 1; i >= 0; i-- {
		parts[len(st)-1-i] = st[i].String()
	}
	return strings.Join(parts, "\n")
}

// Len returns the number of frames, mirroring the script-visible `stack.len()`.
func (st StackTrace) Len() int { return len(st) }

// Push returns a new trace with frame appended (stacks are treated as
// persistent/immutable once captured onto an exception).
func (st StackTrace) Push(frame StackFrame) StackTrace {
	next := make(StackTrace, len(st)+1)
	copy(next, st)
	next[len(st)] = frame
	return next
}
