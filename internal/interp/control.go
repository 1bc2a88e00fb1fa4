package interp

import "github.com/asultop/alang/internal/object"

// Control-flow signals propagate up through Eval the same way a returned
// object.Value does; callers that can handle a signal (loops, function
// bodies) type-switch for it and unwrap, everything else just keeps
// forwarding it upward. None of these are ordinary script-visible values.

type returnSignal struct{ value object.Value }

func (*returnSignal) Type() string    { return "return-signal" }
func (*returnSignal) Inspect() string { return "<return>" }

type breakSignal struct{}

func (*breakSignal) Type() string    { return "break-signal" }
func (*breakSignal) Inspect() string { return "<break>" }

type continueSignal struct{}

func (*continueSignal) Type() string    { return "continue-signal" }
func (*continueSignal) Inspect() string { return "<continue>" }

var theBreakSignal = &breakSignal{}
var theContinueSignal = &continueSignal{}

func isSignal(v object.Value) bool {
	switch v.(type) {
	case *returnSignal, *breakSignal, *continueSignal:
		return true
	default:
		return false
	}
}
