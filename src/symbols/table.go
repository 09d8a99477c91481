package symbols

import (
	"fmt"

	"github.com/tanema/sigtype/src/types"
)

type (
	// Kind is what sort of symbol an entry is.
	Kind int
	// Table stores every symbol by ref. Ref 0 is never used.
	Table struct {
		syms   []data
		byName map[string]types.Ref
	}
	data struct {
		name        string
		kind        Kind
		owner       types.Ref
		typeMembers []types.Ref
		resultType  types.Type
		attached    types.Ref
		singleton   types.Ref
	}
)

const (
	// KindClass is a class or module. Singleton classes are classes too.
	KindClass Kind = iota + 1
	// KindStaticField is a constant assignment.
	KindStaticField
	// KindTypeMember is a generic parameter declared on a class.
	KindTypeMember
	// KindMethod is a method, the owner context of a signature.
	KindMethod
)

// Exists reports whether ref names a symbol in this table.
func (tbl *Table) Exists(ref types.Ref) bool {
	return ref.Exists() && int(ref) < len(tbl.syms)
}

func (tbl *Table) data(ref types.Ref) data {
	if !tbl.Exists(ref) {
		return data{}
	}
	return tbl.syms[ref]
}

// Name is the full name of a symbol, e.g. T::Array or Box::Elem.
func (tbl *Table) Name(ref types.Ref) string {
	if !tbl.Exists(ref) {
		return fmt.Sprintf("<none:%d>", ref)
	}
	return tbl.syms[ref].name
}

// Lookup finds a symbol by full name. Methods are named Owner#method.
func (tbl *Table) Lookup(name string) (types.Ref, bool) {
	ref, ok := tbl.byName[name]
	return ref, ok
}

// Len is the number of symbols in the table.
func (tbl *Table) Len() int { return len(tbl.syms) - 1 }

// IsClass reports if ref is a class or module.
func (tbl *Table) IsClass(ref types.Ref) bool { return tbl.data(ref).kind == KindClass }

// IsStaticField reports if ref is a constant assignment.
func (tbl *Table) IsStaticField(ref types.Ref) bool { return tbl.data(ref).kind == KindStaticField }

// IsTypeMember reports if ref is a generic type member.
func (tbl *Table) IsTypeMember(ref types.Ref) bool { return tbl.data(ref).kind == KindTypeMember }

// TypeMembers are the declared type members of a class in declaration order.
// Their count is the class's generic arity.
func (tbl *Table) TypeMembers(ref types.Ref) []types.Ref {
	return append([]types.Ref(nil), tbl.data(ref).typeMembers...)
}

// ResultType is the declared type of a static field, nil for anything else.
func (tbl *Table) ResultType(ref types.Ref) types.Type { return tbl.data(ref).resultType }

// AttachedClass is the class a singleton class is the singleton of.
func (tbl *Table) AttachedClass(ref types.Ref) types.Ref { return tbl.data(ref).attached }

// SingletonClass is the singleton class of a class, NoSymbol when there is none.
func (tbl *Table) SingletonClass(ref types.Ref) types.Ref { return tbl.data(ref).singleton }

// Owner is the symbol that lexically contains ref.
func (tbl *Table) Owner(ref types.Ref) types.Ref { return tbl.data(ref).owner }

// EnclosingClass walks owners from ref until it reaches a class. A ref outside
// any class encloses in Root.
func (tbl *Table) EnclosingClass(ref types.Ref) types.Ref {
	for steps := 0; tbl.Exists(ref) && steps < len(tbl.syms); steps++ {
		if tbl.IsClass(ref) {
			return ref
		}
		ref = tbl.syms[ref].owner
	}
	return Root
}

// SelfType is the type of self inside a class: the class itself, or the class
// applied to its own type members when it is generic.
func (tbl *Table) SelfType(klass types.Ref) types.Type {
	if !tbl.IsClass(klass) {
		return types.Dynamic
	}
	members := tbl.syms[klass].typeMembers
	if len(members) == 0 {
		return types.NewClass(klass)
	}
	targs := make([]types.Type, len(members))
	for i, member := range members {
		targs[i] = &types.LambdaParam{Definition: member}
	}
	return types.NewApplied(klass, targs)
}
