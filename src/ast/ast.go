// Package ast holds the expression tree the resolver consumes. Every node is
// one of the variants in this file; Expression is sealed so a type switch over
// these variants is exhaustive apart from its required default arm.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tanema/sigtype/src/names"
	"github.com/tanema/sigtype/src/types"
)

type (
	// LineInfo is the source location of a node.
	LineInfo struct {
		Filename string
		Line     int64
		Column   int64
	}
	// Expression is implemented by every node.
	Expression interface {
		fmt.Stringer
		Loc() LineInfo
		exprNode()
	}
	// Array is a sequence literal, [a, b].
	Array struct {
		LineInfo
		Elems []Expression
	}
	// Ident is a constant reference that has been resolved to a symbol. Symbol
	// is NoSymbol when the name did not resolve.
	Ident struct {
		LineInfo
		Name   string
		Symbol types.Ref
	}
	// Send is a method call. Recv is never nil; a call with no explicit
	// receiver has an implicit Self receiver.
	Send struct {
		LineInfo
		Recv Expression
		Fun  names.Name
		Args []Expression
	}
	// Self is the self reference, written or implied.
	Self struct {
		LineInfo
		Implicit bool
	}
	// Hash is an associative literal with ordered pairs. Keys[i] maps to
	// Values[i]; a Hash whose slices differ in length is malformed.
	Hash struct {
		LineInfo
		Keys   []Expression
		Values []Expression
	}
	// IntLit is an integer literal.
	IntLit struct {
		LineInfo
		Value int64
	}
	// FloatLit is a float literal.
	FloatLit struct {
		LineInfo
		Value float64
	}
	// BoolLit is true or false.
	BoolLit struct {
		LineInfo
		Value bool
	}
	// StringLit is a string literal.
	StringLit struct {
		LineInfo
		Value string
	}
	// SymbolLit is a symbol literal, :name.
	SymbolLit struct {
		LineInfo
		Name string
	}
	// NilLit is nil.
	NilLit struct{ LineInfo }
	// Local is a lower case name that is not a method call.
	Local struct {
		LineInfo
		Name string
	}
)

// Loc returns the location itself so that embedding LineInfo satisfies Expression.
func (li LineInfo) Loc() LineInfo { return li }

func (li LineInfo) String() string {
	return fmt.Sprintf("%s:%d:%d", li.Filename, li.Line, li.Column)
}

func (*Array) exprNode()     {}
func (*Ident) exprNode()     {}
func (*Send) exprNode()      {}
func (*Self) exprNode()      {}
func (*Hash) exprNode()      {}
func (*IntLit) exprNode()    {}
func (*FloatLit) exprNode()  {}
func (*BoolLit) exprNode()   {}
func (*StringLit) exprNode() {}
func (*SymbolLit) exprNode() {}
func (*NilLit) exprNode()    {}
func (*Local) exprNode()     {}

func (ex *Array) String() string     { return "[" + join(ex.Elems) + "]" }
func (ex *Ident) String() string     { return ex.Name }
func (ex *IntLit) String() string    { return strconv.FormatInt(ex.Value, 10) }
func (ex *FloatLit) String() string  { return strconv.FormatFloat(ex.Value, 'g', -1, 64) }
func (ex *BoolLit) String() string   { return strconv.FormatBool(ex.Value) }
func (ex *StringLit) String() string { return strconv.Quote(ex.Value) }
func (ex *SymbolLit) String() string { return ":" + ex.Name }
func (ex *NilLit) String() string    { return "nil" }
func (ex *Local) String() string     { return ex.Name }
func (ex *Self) String() string      { return "self" }

func (ex *Hash) String() string { return "{" + ex.pairs() + "}" }

// WellFormed reports if every key has a value.
func (ex *Hash) WellFormed() bool { return len(ex.Keys) == len(ex.Values) }

func (ex *Hash) pairs() string {
	parts := make([]string, len(ex.Keys))
	for i, key := range ex.Keys {
		val := "<missing>"
		if i < len(ex.Values) {
			val = ex.Values[i].String()
		}
		if sym, isSym := key.(*SymbolLit); isSym {
			parts[i] = fmt.Sprintf("%s: %s", sym.Name, val)
		} else {
			parts[i] = fmt.Sprintf("%s => %s", key, val)
		}
	}
	return strings.Join(parts, ", ")
}

// keywordForm reports if the hash can be written as trailing keyword
// arguments, name: value.
func (ex *Hash) keywordForm() bool {
	if len(ex.Keys) == 0 || !ex.WellFormed() {
		return false
	}
	for _, key := range ex.Keys {
		if _, isSym := key.(*SymbolLit); !isSym {
			return false
		}
	}
	return true
}

func (ex *Send) String() string {
	switch {
	case ex.Fun == names.SquareBrackets:
		return fmt.Sprintf("%s[%s]", ex.Recv, join(ex.Args))
	case ex.Fun == names.Splat && len(ex.Args) == 1:
		return "*" + ex.Args[0].String()
	}
	var call string
	if len(ex.Args) > 0 {
		call = fmt.Sprintf("%s(%s)", ex.Fun, callArgs(ex.Args))
	} else {
		call = ex.Fun.String()
	}
	if ex.Recv == nil {
		return call
	} else if self, isSelf := ex.Recv.(*Self); isSelf && self.Implicit {
		return call
	}
	return ex.Recv.String() + "." + call
}

// callArgs renders a trailing symbol keyed hash as keyword arguments.
func callArgs(args []Expression) string {
	last, isHash := args[len(args)-1].(*Hash)
	if !isHash || !last.keywordForm() {
		return join(args)
	}
	kwargs := last.pairs()
	if len(args) == 1 {
		return kwargs
	}
	return join(args[:len(args)-1]) + ", " + kwargs
}

func join(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, ex := range exprs {
		parts[i] = ex.String()
	}
	return strings.Join(parts, ", ")
}
