// Package resolver turns type annotation expressions into types.
//
// The two entry points are GetResultType, which resolves a single annotation
// such as T.nilable(String) or Box[Integer], and ParseSig, which walks a
// builder chain like sig(a: Integer).returns(String) into a ParsedSig. Both
// report malformed input to the Context's Sink and substitute types.Dynamic,
// or types.Bottom for the two silent legacy forms, so resolution of the
// surrounding program can carry on.
// They never return nil and never return a type that fails
// types.SanityCheck; breaking that rule is a bug and panics with a
// *types.InvariantError.
//
// Resolution holds no state between calls and only reads the symbol table, so
// independent annotations may be resolved concurrently as long as the Sink is
// safe for concurrent use.
package resolver
