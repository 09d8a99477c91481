package types

import (
	"fmt"
)

type (
	// Type is the interface for all resolved types.
	Type interface {
		fmt.Stringer
		isType()
	}
	// Ref identifies a symbol in a symbol table. The zero value is NoSymbol.
	Ref uint32
	// LiteralKind tags which value a LiteralType holds.
	LiteralKind int
	// ClassType is a nominal class or module reference, singleton classes included.
	ClassType struct{ Symbol Ref }
	// AppliedType is a generic class applied to an ordered list of type arguments.
	AppliedType struct {
		Klass Ref
		Targs []Type
	}
	// TupleType is a fixed length sequence of element types.
	TupleType struct{ Elems []Type }
	// LiteralType is inhabited by exactly one value, tagged with its underlying class.
	LiteralType struct {
		Kind       LiteralKind
		Int        int64
		Float      float64
		Bool       bool
		Str        string
		Underlying Ref
	}
	// LambdaParam refers to a generic type member.
	LambdaParam struct{ Definition Ref }
	// OrType is the union of two types.
	OrType struct{ Left, Right Type }
	// AndType is the intersection of two types.
	AndType     struct{ Left, Right Type }
	dynamicType struct{}
	bottomType  struct{}
)

const (
	// NoSymbol is the ref that points at nothing.
	NoSymbol Ref = 0
)

const (
	// LitInteger is an integer literal.
	LitInteger LiteralKind = iota
	// LitFloat is a float literal.
	LitFloat
	// LitBool is a true or false literal.
	LitBool
	// LitString is a string literal.
	LitString
	// LitSymbol is a symbol literal.
	LitSymbol
)

var (
	// Dynamic is the untyped top value, every value is compatible with it.
	Dynamic Type = &dynamicType{}
	// Bottom is the uninhabited type used for methods that never return.
	Bottom Type = &bottomType{}
)

func (*ClassType) isType()   {}
func (*AppliedType) isType() {}
func (*TupleType) isType()   {}
func (*LiteralType) isType() {}
func (*LambdaParam) isType() {}
func (*OrType) isType()      {}
func (*AndType) isType()     {}
func (*dynamicType) isType() {}
func (*bottomType) isType()  {}

func (t *ClassType) String() string   { return Format(t, nil) }
func (t *AppliedType) String() string { return Format(t, nil) }
func (t *TupleType) String() string   { return Format(t, nil) }
func (t *LiteralType) String() string { return Format(t, nil) }
func (t *LambdaParam) String() string { return Format(t, nil) }
func (t *OrType) String() string      { return Format(t, nil) }
func (t *AndType) String() string     { return Format(t, nil) }
func (t *dynamicType) String() string { return "T.untyped" }
func (t *bottomType) String() string  { return "T.noreturn" }

// Exists reports if the ref points at a symbol.
func (r Ref) Exists() bool { return r != NoSymbol }

// NewClass creates a class reference type.
func NewClass(sym Ref) *ClassType { return &ClassType{Symbol: sym} }

// NewApplied creates a generic application. The argument slice is owned by the
// new type and must not be modified by the caller afterwards.
func NewApplied(klass Ref, targs []Type) *AppliedType {
	return &AppliedType{Klass: klass, Targs: targs}
}

// NewTuple creates a tuple type from its element types.
func NewTuple(elems []Type) *TupleType { return &TupleType{Elems: elems} }

// IntLiteral creates an integer literal type.
func IntLiteral(val int64, klass Ref) *LiteralType {
	return &LiteralType{Kind: LitInteger, Int: val, Underlying: klass}
}

// FloatLiteral creates a float literal type.
func FloatLiteral(val float64, klass Ref) *LiteralType {
	return &LiteralType{Kind: LitFloat, Float: val, Underlying: klass}
}

// BoolLiteral creates a true or false literal type.
func BoolLiteral(val bool, klass Ref) *LiteralType {
	return &LiteralType{Kind: LitBool, Bool: val, Underlying: klass}
}

// StringLiteral creates a string literal type.
func StringLiteral(val string, klass Ref) *LiteralType {
	return &LiteralType{Kind: LitString, Str: val, Underlying: klass}
}

// SymbolLiteral creates a symbol literal type.
func SymbolLiteral(name string, klass Ref) *LiteralType {
	return &LiteralType{Kind: LitSymbol, Str: name, Underlying: klass}
}

// Or builds the union of two types. No simplification happens so that
// folding order stays visible in the result.
func Or(left, right Type) Type { return &OrType{Left: left, Right: right} }

// And builds the intersection of two types without simplification.
func And(left, right Type) Type { return &AndType{Left: left, Right: right} }

// Equal reports if two types are structurally the same.
func Equal(a, b Type) bool {
	if a == b {
		return true
	} else if a == nil || b == nil {
		return false
	}

	switch ta := a.(type) {
	case *ClassType:
		other, ok := b.(*ClassType)
		return ok && ta.Symbol == other.Symbol
	case *AppliedType:
		other, ok := b.(*AppliedType)
		return ok && ta.Klass == other.Klass && equalAll(ta.Targs, other.Targs)
	case *TupleType:
		other, ok := b.(*TupleType)
		return ok && equalAll(ta.Elems, other.Elems)
	case *LiteralType:
		other, ok := b.(*LiteralType)
		return ok && *ta == *other
	case *LambdaParam:
		other, ok := b.(*LambdaParam)
		return ok && ta.Definition == other.Definition
	case *OrType:
		other, ok := b.(*OrType)
		return ok && Equal(ta.Left, other.Left) && Equal(ta.Right, other.Right)
	case *AndType:
		other, ok := b.(*AndType)
		return ok && Equal(ta.Left, other.Left) && Equal(ta.Right, other.Right)
	default:
		// the singletons only equal themselves and were handled above.
		return false
	}
}

func equalAll(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
