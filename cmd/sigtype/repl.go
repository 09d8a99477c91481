package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tanema/sigtype/src/ast"
	"github.com/tanema/sigtype/src/driver"
	"github.com/tanema/sigtype/src/lerrors"
	"github.com/tanema/sigtype/src/parse"
	"github.com/tanema/sigtype/src/report"
)

const (
	prompt     = "sigtype> "
	contPrompt = "...> "
)

func runREPL(ctx context.Context, sess *session) {
	printVersion()
	fmt.Fprint(os.Stderr, "Press ctrl-c to quit or clear current buffer.\n")
	rl, err := readline.New(prompt)
	checkErr(err)
	defer func() { _ = rl.Close() }()

	var buf strings.Builder
	var lineNo int64
	for {
		src, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if buf.Len() > 0 {
					rl.SetPrompt(prompt)
					buf.Reset()
					fmt.Fprint(os.Stderr, "Press ctrl-c again to quit.\n")
					continue
				}
			}
			return
		}
		lineNo++
		if buf.Len() > 0 {
			buf.WriteString("\n")
		} else if strings.TrimSpace(src) == "" {
			continue
		}
		buf.WriteString(src)

		loc := ast.LineInfo{Filename: "<repl>", Line: lineNo - int64(strings.Count(buf.String(), "\n"))}
		expr, err := parse.ExprAt(loc, buf.String(), sess.table)
		if parse.IsIncomplete(err) {
			rl.SetPrompt(contPrompt)
			continue
		}
		rl.SetPrompt(prompt)
		buf.Reset()
		if err != nil {
			fmt.Fprintln(os.Stderr, report.Diagnostic(asDiagnostic(err), sess.opts.Color))
			continue
		}
		sess.evalREPL(ctx, expr)
	}
}

func (sess *session) evalREPL(ctx context.Context, expr ast.Expression) {
	diags := sess.drv.Diagnostics()
	defer diags.Reset()
	results, err := sess.drv.Resolve(ctx, []driver.Request{{Name: "=>", Owner: sess.owner, Expr: expr}})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	opts := sess.opts
	opts.TimeFormat = ""
	if err := report.Write(os.Stdout, sess.table, results, diags.Sorted(), opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func asDiagnostic(err error) *lerrors.Error {
	var lerr *lerrors.Error
	if errors.As(err, &lerr) {
		return lerr
	}
	return &lerrors.Error{LineInfo: ast.LineInfo{Filename: "<repl>"}, Kind: lerrors.ParserErr, Err: err}
}
