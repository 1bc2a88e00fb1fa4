package object

import (
	"strconv"
	"strings"
)

// ToNumber converts v per spec §4.3: Number passes through, numeric strings
// parse, Boolean is 0/1, everything else (Null, Array, Object, ...) is NaN.
func ToNumber(v Value) float64 {
	switch val := v.(type) {
	case *Number:
		return val.Value
	case *String:
		f, err := strconv.ParseFloat(strings.TrimSpace(val.Value), 64)
		if err != nil {
			return nan()
		}
		return f
	case *Boolean:
		if val.Value {
			return 1
		}
		return 0
	default:
		return nan()
	}
}

func nan() float64 {
	var z float64
	return z / z
}

// ToStringValue converts v to its script-visible string form (spec §4.3).
// Unlike Inspect, this is the semantics used by `+` concatenation and
// explicit string coercion, not debug printing.
func ToStringValue(v Value) string {
	switch val := v.(type) {
	case *Null:
		return "null"
	case *Number:
		return val.Inspect()
	case *String:
		return val.Value
	case *Boolean:
		return strconv.FormatBool(val.Value)
	case *Array:
		parts := make([]string, len(val.Elements))
		for i, e := range val.Elements {
			parts[i] = ToStringValue(e)
		}
		return strings.Join(parts, ",")
	case nil:
		return "null"
	default:
		return v.Inspect()
	}
}

// Truthy implements spec §4.3 truthiness: false for null, 0, NaN, "", and
// true otherwise (arrays/objects/functions/instances are always truthy).
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil, *Null:
		return false
	case *Number:
		return val.Value != 0 && !isNaN(val.Value)
	case *String:
		return val.Value != ""
	case *Boolean:
		return val.Value
	default:
		return true
	}
}

func isNaN(f float64) bool { return f != f }

// isNumericString reports whether s parses cleanly as a number, used by the
// loose-equality numeric-string coercion rule (spec §3.2).
func isNumericString(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// StrictEquals implements `===` (spec §3.2): same variant and, for
// primitives, same value; for reference types, same identity.
func StrictEquals(a, b Value) bool {
	if a == nil {
		a = NullVal
	}
	if b == nil {
		b = NullVal
	}
	switch av := a.(type) {
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Number:
		bv, ok := b.(*Number)
		return ok && av.Value == bv.Value
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *Boolean:
		bv, ok := b.(*Boolean)
		return ok && av.Value == bv.Value
	case *Array:
		bv, ok := b.(*Array)
		return ok && av == bv
	case *Object:
		bv, ok := b.(*Object)
		return ok && av == bv
	case *Class:
		bv, ok := b.(*Class)
		return ok && av == bv
	case *Instance:
		bv, ok := b.(*Instance)
		return ok && av == bv
	case *Promise:
		bv, ok := b.(*Promise)
		return ok && av == bv
	case *Function:
		bv, ok := b.(*Function)
		return ok && av == bv
	default:
		return false
	}
}

// LooseEquals implements `==` (spec §3.2): strict equality, plus numeric
// coercion when one side is a Number and the other a numeric String.
func LooseEquals(a, b Value) bool {
	if StrictEquals(a, b) {
		return true
	}
	an, aIsNum := a.(*Number)
	bn, bIsNum := b.(*Number)
	as, aIsStr := a.(*String)
	bs, bIsStr := b.(*String)

	if aIsNum && bIsStr && isNumericString(bs.Value) {
		return an.Value == ToNumber(bs)
	}
	if bIsNum && aIsStr && isNumericString(as.Value) {
		return bn.Value == ToNumber(as)
	}
	return false
}

// Compare orders a and b per spec §4.5: numeric after ToNumber coercion,
// unless both are strings, in which case comparison is lexicographic.
// Returns -1, 0, or 1; NaN comparisons always return false from the caller's
// operator, signalled here by returning 2.
func Compare(a, b Value) int {
	as, aIsStr := a.(*String)
	bs, bIsStr := b.(*String)
	if aIsStr && bIsStr {
		switch {
		case as.Value < bs.Value:
			return -1
		case as.Value > bs.Value:
			return 1
		default:
			return 0
		}
	}
	af, bf := ToNumber(a), ToNumber(b)
	if isNaN(af) || isNaN(bf) {
		return 2
	}
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}
