// Package symbols is a concrete, read-only symbol table for resolving
// annotations. A Table is seeded with the fixed registry of well-known symbols
// by New, extended with user classes while it is being built, and then only
// queried. Queries never mutate the table, so a built table may be shared by
// any number of goroutines.
//
// The well-known refs are constants: any table used with the resolver must
// assign them the same values, which New guarantees.
package symbols
