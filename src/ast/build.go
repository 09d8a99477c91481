package ast

import (
	"github.com/tanema/sigtype/src/names"
	"github.com/tanema/sigtype/src/types"
)

// The constructors below build nodes without location information. They are
// used where trees are assembled by hand rather than read from source.

// NewSend builds a call on recv.
func NewSend(recv Expression, fun names.Name, args ...Expression) *Send {
	return &Send{Recv: recv, Fun: fun, Args: args}
}

// NewSelfSend builds a call with an implicit self receiver, sig(...).
func NewSelfSend(fun names.Name, args ...Expression) *Send {
	return &Send{Recv: &Self{Implicit: true}, Fun: fun, Args: args}
}

// NewIdent builds a resolved constant reference.
func NewIdent(name string, sym types.Ref) *Ident { return &Ident{Name: name, Symbol: sym} }

// NewArray builds a sequence literal.
func NewArray(elems ...Expression) *Array { return &Array{Elems: elems} }

// NewHash builds an associative literal with symbol keys from alternating
// name, value arguments.
func NewHash(pairs ...any) *Hash {
	hash := &Hash{}
	for i := 0; i+1 < len(pairs); i += 2 {
		hash.Keys = append(hash.Keys, &SymbolLit{Name: pairs[i].(string)})
		hash.Values = append(hash.Values, pairs[i+1].(Expression))
	}
	return hash
}

// NewInt builds an integer literal.
func NewInt(val int64) *IntLit { return &IntLit{Value: val} }

// NewFloat builds a float literal.
func NewFloat(val float64) *FloatLit { return &FloatLit{Value: val} }

// NewBool builds a boolean literal.
func NewBool(val bool) *BoolLit { return &BoolLit{Value: val} }

// NewString builds a string literal.
func NewString(val string) *StringLit { return &StringLit{Value: val} }

// NewSymbol builds a symbol literal.
func NewSymbol(name string) *SymbolLit { return &SymbolLit{Name: name} }
