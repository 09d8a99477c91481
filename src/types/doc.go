// Package types contains the resolved type values produced from annotation
// syntax. The set of variants is closed: every value is one of ClassType,
// AppliedType, TupleType, LiteralType, LambdaParam, OrType, AndType, or one of
// the Dynamic and Bottom singletons. Values are immutable once built and may
// be shared freely between signatures, so nothing in this package mutates a
// type after construction.
// Types refer to symbols by Ref only. Printing names requires a Namer, which
// the symbol table provides.
package types //nolint:revive
