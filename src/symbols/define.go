package symbols

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tanema/sigtype/src/types"
)

func (tbl *Table) checkFree(name string) error {
	if name == "" {
		return errors.New("empty symbol name")
	} else if _, taken := tbl.byName[name]; taken {
		return fmt.Errorf("symbol %s already defined", name)
	}
	return nil
}

// DefineClass adds a top level class with the given type members and its
// singleton class. Nested names like A::B are allowed as one full name.
func (tbl *Table) DefineClass(name string, typeMembers ...string) (types.Ref, error) {
	if err := tbl.checkFree(name); err != nil {
		return types.NoSymbol, err
	}
	seen := map[string]bool{}
	for _, member := range typeMembers {
		if member == "" || strings.Contains(member, "::") {
			return types.NoSymbol, fmt.Errorf("invalid type member name %q on %s", member, name)
		} else if seen[member] {
			return types.NoSymbol, fmt.Errorf("duplicate type member %s on %s", member, name)
		}
		seen[member] = true
	}
	ref := tbl.newClass(name, Root)
	for _, member := range typeMembers {
		tbl.newTypeMember(ref, member)
	}
	tbl.newSingleton(ref)
	return ref, nil
}

// DefineTypeMember appends a type member to an existing class, growing its
// generic arity by one.
func (tbl *Table) DefineTypeMember(klass types.Ref, name string) (types.Ref, error) {
	if !tbl.IsClass(klass) {
		return types.NoSymbol, fmt.Errorf("type member %s owner %d is not a class", name, klass)
	} else if err := tbl.checkFree(tbl.syms[klass].name + "::" + name); err != nil {
		return types.NoSymbol, err
	}
	return tbl.newTypeMember(klass, name), nil
}

// DefineStaticField adds a constant named owner::name with a declared type.
func (tbl *Table) DefineStaticField(owner types.Ref, name string, result types.Type) (types.Ref, error) {
	full, err := tbl.nested(owner, name, "::")
	if err != nil {
		return types.NoSymbol, err
	} else if err := types.SanityCheck(result); err != nil {
		return types.NoSymbol, fmt.Errorf("static field %s: %w", full, err)
	}
	return tbl.add(data{name: full, kind: KindStaticField, owner: owner, resultType: result}), nil
}

// DefineMethod adds a method symbol named Owner#name for use as the owner
// context of a signature.
func (tbl *Table) DefineMethod(owner types.Ref, name string) (types.Ref, error) {
	full, err := tbl.nested(owner, name, "#")
	if err != nil {
		return types.NoSymbol, err
	}
	return tbl.add(data{name: full, kind: KindMethod, owner: owner}), nil
}

// AliasClass defines a top level constant name = target. A class alias is a
// static field whose type is the singleton class of its target.
func (tbl *Table) AliasClass(name string, target types.Ref) (types.Ref, error) {
	if !tbl.IsClass(target) {
		return types.NoSymbol, fmt.Errorf("alias %s target %d is not a class", name, target)
	}
	singleton := tbl.syms[target].singleton
	if !singleton.Exists() {
		return types.NoSymbol, fmt.Errorf("alias %s target %s has no singleton class", name, tbl.Name(target))
	}
	if err := tbl.checkFree(name); err != nil {
		return types.NoSymbol, err
	}
	return tbl.add(data{
		name:       name,
		kind:       KindStaticField,
		owner:      Root,
		resultType: types.NewClass(singleton),
	}), nil
}

func (tbl *Table) nested(owner types.Ref, name, sep string) (string, error) {
	if !tbl.IsClass(owner) {
		return "", fmt.Errorf("owner %d of %s is not a class", owner, name)
	}
	full := name
	if owner != Root {
		full = tbl.syms[owner].name + sep + name
	}
	return full, tbl.checkFree(full)
}
