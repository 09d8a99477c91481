package resolver

import (
	"github.com/tanema/sigtype/src/ast"
	"github.com/tanema/sigtype/src/conf"
	"github.com/tanema/sigtype/src/names"
	"github.com/tanema/sigtype/src/symbols"
	"github.com/tanema/sigtype/src/types"
)

type (
	// SigSeen records which builder calls appeared in a chain.
	SigSeen struct {
		Sig            bool
		Proc           bool
		Args           bool
		Abstract       bool
		Override       bool
		Implementation bool
		Overridable    bool
		Returns        bool
		Checked        bool
	}
	// ArgSpec is one declared parameter.
	ArgSpec struct {
		Loc  ast.LineInfo
		Name string
		Type types.Type
	}
	// ParsedSig is the record built from a sig or T.proc chain. Returns is nil
	// when the chain has no returns call.
	ParsedSig struct {
		Seen     SigSeen
		ArgTypes []ArgSpec
		Returns  types.Type
	}
)

// IsSig reports if some call in the chain is sig on self.
func IsSig(send *ast.Send) bool {
	return scanChain(send, func(link *ast.Send) bool {
		_, onSelf := link.Recv.(*ast.Self)
		return link.Fun == names.Sig && onSelf
	})
}

// IsTProc reports if some call in the chain is T.proc.
func IsTProc(send *ast.Send) bool {
	return scanChain(send, func(link *ast.Send) bool {
		recv, isIdent := link.Recv.(*ast.Ident)
		return link.Fun == names.Proc && isIdent && recv.Symbol == symbols.T
	})
}

func scanChain(send *ast.Send, match func(*ast.Send) bool) bool {
	for link := 0; send != nil; link++ {
		if link >= conf.MAXCHAINLENGTH {
			types.Invariantf("signature chain longer than %d calls", conf.MAXCHAINLENGTH)
		} else if match(send) {
			return true
		}
		send, _ = send.Recv.(*ast.Send)
	}
	return false
}

// ParseSig walks a builder chain, outermost call first, and collects what it
// declares. The chain must contain a sig or proc call, check it with IsSig or
// IsTProc first.
func ParseSig(ctx Context, send *ast.Send) ParsedSig {
	var sig ParsedSig
	for link := 0; send != nil; link++ {
		if link >= conf.MAXCHAINLENGTH {
			types.Invariantf("signature chain longer than %d calls", conf.MAXCHAINLENGTH)
		}
		switch send.Fun {
		case names.Sig, names.Proc:
			sig.parseArgList(ctx, send)
		case names.Abstract:
			sig.Seen.Abstract = true
		case names.Override:
			sig.Seen.Override = true
		case names.Implementation:
			sig.Seen.Implementation = true
		case names.Overridable:
			sig.Seen.Overridable = true
		case names.Checked:
			sig.Seen.Checked = true
		case names.Returns:
			sig.Seen.Returns = true
			if len(send.Args) != 1 {
				ctx.sigErr(send.Loc(), "Wrong number of args to `sig.returns`. Got %d, expected 1", len(send.Args))
			}
			if len(send.Args) > 0 {
				sig.Returns = GetResultType(ctx, send.Args[0])
			}
		default:
			ctx.sigErr(send.Loc(), "Unknown `sig` builder method %s.", send.Fun)
		}
		send, _ = send.Recv.(*ast.Send)
	}
	if !sig.Seen.Sig && !sig.Seen.Proc {
		types.Invariantf("parsed a signature chain without sig or proc")
	}
	return sig
}

func (sig *ParsedSig) parseArgList(ctx Context, send *ast.Send) {
	if sig.Seen.Sig || sig.Seen.Proc {
		ctx.sigErr(send.Loc(), "Malformed `%s`: Found multiple argument lists", send.Fun)
		sig.ArgTypes = nil
	}
	if send.Fun == names.Sig {
		sig.Seen.Sig = true
	} else {
		sig.Seen.Proc = true
	}

	if len(send.Args) == 0 {
		return
	}
	sig.Seen.Args = true
	if len(send.Args) > 1 {
		ctx.sigErr(send.Loc(), "Wrong number of args to `%s`. Got %d, expected 0-1", send.Fun, len(send.Args))
		return
	}
	hash, isHash := send.Args[0].(*ast.Hash)
	if !isHash || !hash.WellFormed() {
		ctx.sigErr(send.Loc(), "Malformed `%s`; Expected a hash of arguments => types.", send.Fun)
		return
	}
	for i, key := range hash.Keys {
		name, isSym := key.(*ast.SymbolLit)
		if !isSym {
			ctx.sigErr(locOf(key), "Malformed `%s`; argument names must be symbols", send.Fun)
			continue
		}
		sig.ArgTypes = append(sig.ArgTypes, ArgSpec{
			Loc:  name.Loc(),
			Name: name.Name,
			Type: GetResultType(ctx, hash.Values[i]),
		})
	}
}
