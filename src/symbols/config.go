package symbols

import (
	"fmt"

	"github.com/tanema/sigtype/src/conf"
	"github.com/tanema/sigtype/src/types"
)

// FromConfig builds a table from the well-known registry plus the classes,
// methods and aliases a config declares. It also returns the owner ref that
// signatures resolve in, Root when the config names none.
func FromConfig(cfg *conf.Config) (*Table, types.Ref, error) {
	tbl := New()
	for _, decl := range cfg.Classes {
		klass, err := tbl.DefineClass(decl.Name, decl.TypeMembers...)
		if err != nil {
			return nil, types.NoSymbol, fmt.Errorf("class %s: %w", decl.Name, err)
		}
		for _, method := range decl.Methods {
			if _, err := tbl.DefineMethod(klass, method); err != nil {
				return nil, types.NoSymbol, fmt.Errorf("class %s: %w", decl.Name, err)
			}
		}
	}
	for _, alias := range cfg.Aliases {
		target, found := tbl.Lookup(alias.Class)
		if !found {
			return nil, types.NoSymbol, fmt.Errorf("alias %s: unknown class %s", alias.Name, alias.Class)
		}
		if _, err := tbl.AliasClass(alias.Name, target); err != nil {
			return nil, types.NoSymbol, err
		}
	}
	if cfg.Owner == "" {
		return tbl, Root, nil
	}
	owner, found := tbl.Lookup(cfg.Owner)
	if !found {
		return nil, types.NoSymbol, fmt.Errorf("unknown owner %s", cfg.Owner)
	}
	return tbl, owner, nil
}
