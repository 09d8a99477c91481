package driver

import (
	"fmt"
	"strings"

	"github.com/tanema/sigtype/src/resolver"
	"github.com/tanema/sigtype/src/types"
)

// Describe renders a result in annotation notation, for example
// sig(a: Integer).returns(String), or the type itself for plain annotations.
func Describe(namer types.Namer, res Result) string {
	if res.Sig != nil {
		return DescribeSig(namer, res.Sig)
	} else if res.Type == nil {
		return "<none>"
	}
	return types.Format(res.Type, namer)
}

// DescribeSig renders a parsed signature as parameters, then modifiers in a
// fixed order, then the return type.
func DescribeSig(namer types.Namer, sig *resolver.ParsedSig) string {
	var out strings.Builder
	if sig.Seen.Proc {
		out.WriteString("T.proc")
	} else {
		out.WriteString("sig")
	}
	if len(sig.ArgTypes) > 0 {
		params := make([]string, len(sig.ArgTypes))
		for i, arg := range sig.ArgTypes {
			params[i] = fmt.Sprintf("%s: %s", arg.Name, types.Format(arg.Type, namer))
		}
		fmt.Fprintf(&out, "(%s)", strings.Join(params, ", "))
	}
	for _, mod := range []struct {
		seen bool
		name string
	}{
		{sig.Seen.Abstract, "abstract"},
		{sig.Seen.Override, "override"},
		{sig.Seen.Implementation, "implementation"},
		{sig.Seen.Overridable, "overridable"},
		{sig.Seen.Checked, "checked"},
	} {
		if mod.seen {
			out.WriteString("." + mod.name)
		}
	}
	if sig.Returns != nil {
		fmt.Fprintf(&out, ".returns(%s)", types.Format(sig.Returns, namer))
	}
	return out.String()
}
