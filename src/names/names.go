// Package names is the registry of selector names the resolver recognizes.
// Comparing a call's selector against these constants is the only way the
// resolver identifies builder and combinator calls.
package names

// Name is the canonical identity of a method selector.
type Name string

const (
	// Sig starts a method signature chain.
	Sig Name = "sig"
	// Proc starts a proc type chain on T.
	Proc Name = "proc"
	// Returns declares the return type of a chain.
	Returns Name = "returns"
	// Abstract marks a signature abstract.
	Abstract Name = "abstract"
	// Override marks a signature as overriding a parent method.
	Override Name = "override"
	// Implementation marks a signature as implementing an abstract method.
	Implementation Name = "implementation"
	// Overridable marks a signature as open for overriding.
	Overridable Name = "overridable"
	// Checked toggles runtime checking of a signature.
	Checked Name = "checked"
	// Nilable is T.nilable.
	Nilable Name = "nilable"
	// All is T.all.
	All Name = "all"
	// Any is T.any.
	Any Name = "any"
	// Enum is T.enum.
	Enum Name = "enum"
	// ClassOf is T.class_of.
	ClassOf Name = "class_of"
	// Untyped is T.untyped.
	Untyped Name = "untyped"
	// Noreturn is T.noreturn.
	Noreturn Name = "noreturn"
	// SingletonClass selects the singleton class of its receiver.
	SingletonClass Name = "singleton_class"
	// SquareBrackets is generic application, Box[Integer].
	SquareBrackets Name = "[]"
	// Splat is the marker sent to Magic for a splatted argument.
	Splat Name = "<splat>"
)

func (n Name) String() string { return string(n) }
