package resolver

import "github.com/tanema/sigtype/src/types"

// Dealias follows static fields that alias a class, A = B, back to the class
// they name. The chain stops at the first symbol that is not such an alias. If
// the chain loops, the symbol where it closed is returned unchanged, which is
// always a static field and never a class.
func Dealias(table SymbolTable, sym types.Ref) types.Ref {
	visited := map[types.Ref]bool{}
	for table.IsStaticField(sym) && !visited[sym] {
		visited[sym] = true
		ct, isClass := table.ResultType(sym).(*types.ClassType)
		if !isClass {
			break
		}
		klass := table.AttachedClass(ct.Symbol)
		if !klass.Exists() {
			break
		}
		sym = klass
	}
	return sym
}
