package types

import (
	"fmt"
)

// InvariantError is raised when a type that should never exist is about to
// escape construction. It is not a user facing error.
type InvariantError struct{ Msg string }

func (err *InvariantError) Error() string { return "internal invariant violated: " + err.Msg }

// Invariantf panics with an InvariantError.
func Invariantf(format string, args ...any) {
	panic(&InvariantError{Msg: fmt.Sprintf(format, args...)})
}

// Enforce panics if t is not well formed and returns it otherwise.
func Enforce(t Type) Type {
	if err := SanityCheck(t); err != nil {
		panic(err)
	}
	return t
}

// SanityCheck verifies that a type and everything it contains is well formed:
// no nil children, no references to NoSymbol and no unknown literal kinds.
func SanityCheck(t Type) error {
	switch tt := t.(type) {
	case nil:
		return &InvariantError{Msg: "nil type"}
	case *ClassType:
		if tt == nil || !tt.Symbol.Exists() {
			return &InvariantError{Msg: "class type without a symbol"}
		}
	case *AppliedType:
		if tt == nil || !tt.Klass.Exists() {
			return &InvariantError{Msg: "applied type without a class"}
		}
		return checkAll("applied type argument", tt.Targs)
	case *TupleType:
		if tt == nil {
			return &InvariantError{Msg: "nil tuple"}
		}
		return checkAll("tuple element", tt.Elems)
	case *LiteralType:
		if tt == nil || !tt.Underlying.Exists() {
			return &InvariantError{Msg: "literal type without an underlying class"}
		} else if tt.Kind < LitInteger || tt.Kind > LitSymbol {
			return &InvariantError{Msg: fmt.Sprintf("unknown literal kind %d", tt.Kind)}
		}
	case *LambdaParam:
		if tt == nil || !tt.Definition.Exists() {
			return &InvariantError{Msg: "lambda param without a type member"}
		}
	case *OrType:
		if tt == nil {
			return &InvariantError{Msg: "nil union"}
		}
		return checkAll("union branch", []Type{tt.Left, tt.Right})
	case *AndType:
		if tt == nil {
			return &InvariantError{Msg: "nil intersection"}
		}
		return checkAll("intersection branch", []Type{tt.Left, tt.Right})
	case *dynamicType, *bottomType:
	default:
		return &InvariantError{Msg: fmt.Sprintf("unknown type variant %T", t)}
	}
	return nil
}

func checkAll(what string, all []Type) error {
	for i, t := range all {
		if err := SanityCheck(t); err != nil {
			return fmt.Errorf("%s %d: %w", what, i, err)
		}
	}
	return nil
}
