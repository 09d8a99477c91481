package symbols

import (
	"fmt"

	"github.com/tanema/sigtype/src/conf"
	"github.com/tanema/sigtype/src/types"
)

// Well-known symbols. New defines them in exactly this order so the refs are
// stable across tables.
const (
	Root types.Ref = iota + 1
	Object
	BasicObject
	Integer
	Float
	String
	Symbol
	TrueClass
	FalseClass
	NilClass
	Array
	Hash
	Set
	Struct
	File
	Enumerable
	T
	TArray
	THash
	TEnumerable
	Magic
	proc0
)

const lastWellKnown = proc0 + conf.MAXPROCARITY

type wellKnown struct {
	ref     types.Ref
	name    string
	members []string
}

var registry = []wellKnown{
	{Root, "<root>", nil},
	{Object, "Object", nil},
	{BasicObject, "BasicObject", nil},
	{Integer, "Integer", nil},
	{Float, "Float", nil},
	{String, "String", nil},
	{Symbol, "Symbol", nil},
	{TrueClass, "TrueClass", nil},
	{FalseClass, "FalseClass", nil},
	{NilClass, "NilClass", nil},
	{Array, "Array", []string{"Elem"}},
	{Hash, "Hash", []string{"K", "V", "Elem"}},
	{Set, "Set", []string{"Elem"}},
	{Struct, "Struct", []string{"Elem"}},
	{File, "File", []string{"Elem"}},
	{Enumerable, "Enumerable", []string{"Elem"}},
	{T, "T", nil},
	{TArray, "T::Array", nil},
	{THash, "T::Hash", nil},
	{TEnumerable, "T::Enumerable", nil},
	{Magic, "<Magic>", nil},
}

// Proc is the ProcN class for a block of the given arity. Its first type
// member is the return type followed by one per argument.
func Proc(arity int) types.Ref {
	if arity < 0 || arity > conf.MAXPROCARITY {
		types.Invariantf("no Proc class for arity %d", arity)
	}
	return proc0 + types.Ref(arity)
}

// New creates a table holding only the well-known registry.
func New() *Table {
	tbl := &Table{
		syms:   make([]data, 1, int(lastWellKnown)*3),
		byName: map[string]types.Ref{},
	}
	expect := func(got, want types.Ref) {
		if got != want {
			types.Invariantf("well-known symbol defined as %d, expected %d", got, want)
		}
	}
	for _, wk := range registry {
		ref := tbl.newClass(wk.name, Root)
		expect(ref, wk.ref)
	}
	for arity := 0; arity <= conf.MAXPROCARITY; arity++ {
		expect(tbl.newClass(fmt.Sprintf("Proc%d", arity), Root), Proc(arity))
	}
	// members and singletons come after every fixed ref is allocated.
	for _, wk := range registry {
		for _, member := range wk.members {
			tbl.newTypeMember(wk.ref, member)
		}
	}
	for arity := 0; arity <= conf.MAXPROCARITY; arity++ {
		tbl.newTypeMember(Proc(arity), "Return")
		for i := 0; i < arity; i++ {
			tbl.newTypeMember(Proc(arity), fmt.Sprintf("Arg%d", i))
		}
	}
	for ref := Root; ref <= lastWellKnown; ref++ {
		tbl.newSingleton(ref)
	}
	return tbl
}

func (tbl *Table) add(d data) types.Ref {
	ref := types.Ref(len(tbl.syms))
	tbl.syms = append(tbl.syms, d)
	tbl.byName[d.name] = ref
	return ref
}

func (tbl *Table) newClass(name string, owner types.Ref) types.Ref {
	return tbl.add(data{name: name, kind: KindClass, owner: owner})
}

func (tbl *Table) newTypeMember(klass types.Ref, name string) types.Ref {
	ref := tbl.add(data{
		name:  tbl.syms[klass].name + "::" + name,
		kind:  KindTypeMember,
		owner: klass,
	})
	tbl.syms[klass].typeMembers = append(tbl.syms[klass].typeMembers, ref)
	return ref
}

func (tbl *Table) newSingleton(klass types.Ref) types.Ref {
	ref := tbl.add(data{
		name:     "<Class:" + tbl.syms[klass].name + ">",
		kind:     KindClass,
		owner:    tbl.syms[klass].owner,
		attached: klass,
	})
	tbl.syms[klass].singleton = ref
	return ref
}
