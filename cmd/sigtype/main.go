// Package main is the main entrypoint to the sigtype application
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/tanema/sigtype/src/conf"
	"github.com/tanema/sigtype/src/driver"
	"github.com/tanema/sigtype/src/parse"
	"github.com/tanema/sigtype/src/report"
	"github.com/tanema/sigtype/src/symbols"
	"github.com/tanema/sigtype/src/types"
)

var (
	configPath  string
	executeExpr string
	ownerName   string
	workers     int
	colorMode   string
	verbose     bool
	showVersion bool
)

// session is everything needed to resolve annotations from any input.
type session struct {
	table *symbols.Table
	owner types.Ref
	drv   *driver.Resolver
	opts  report.Options
}

func init() {
	flag.StringVar(&configPath, "c", "", "load classes and settings from a yaml config")
	flag.StringVar(&executeExpr, "e", "", "resolve annotation 'expr'")
	flag.StringVar(&ownerName, "owner", "", "class that self resolves against")
	flag.IntVar(&workers, "j", 0, "number of annotations to resolve in parallel")
	flag.StringVar(&colorMode, "color", "", "colour diagnostics: auto, always or never")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.BoolVar(&showVersion, "version", false, "show version information")
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	os.Exit(run(context.Background()))
}

// run resolves whatever input was given and returns the exit status, 1 when
// any diagnostic was reported.
func run(ctx context.Context) int {
	if showVersion {
		printVersion()
		return 0
	}

	sess := newSession()
	args := flag.Args()
	if executeExpr != "" {
		expr, err := parse.Expr("<string>", executeExpr, sess.table)
		checkErr(err)
		sess.run(ctx, []driver.Request{{Name: "<string>", Owner: sess.owner, Expr: expr}})
	} else if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		checkErr(err)
		sess.runFile(ctx, args[0], bytes.NewReader(data))
	} else if isTerminal(os.Stdin.Fd()) {
		runREPL(ctx, sess)
		return 0
	} else {
		sess.runFile(ctx, "<stdin>", os.Stdin)
	}
	if sess.drv.Diagnostics().Len() > 0 {
		return 1
	}
	return 0
}

func newSession() *session {
	cfg := conf.Default()
	if configPath != "" {
		var err error
		cfg, err = conf.Load(configPath)
		checkErr(err)
	}
	if ownerName != "" {
		cfg.Owner = ownerName
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if colorMode != "" {
		cfg.Color = colorMode
		checkErr(cfg.Validate())
	}

	table, owner, err := symbols.FromConfig(cfg)
	checkErr(err)

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return &session{
		table: table,
		owner: owner,
		drv:   driver.New(table, driver.WithWorkers(cfg.Workers), driver.WithLogger(logger)),
		opts: report.Options{
			Color:      useColor(cfg.Color),
			TimeFormat: cfg.TimeFormat,
		},
	}
}

// runFile resolves every declaration in an annotation file. A declaration
// named after a known method or class resolves self against that class.
func (sess *session) runFile(ctx context.Context, filename string, src io.Reader) {
	decls, err := parse.File(filename, src, sess.table)
	checkErr(err)
	sess.run(ctx, sess.requests(decls))
}

func (sess *session) requests(decls []parse.Decl) []driver.Request {
	reqs := make([]driver.Request, len(decls))
	for i, decl := range decls {
		owner := sess.owner
		if ref, found := sess.table.Lookup(decl.Name); found {
			owner = ref
		}
		reqs[i] = driver.Request{Name: decl.Name, Owner: owner, Expr: decl.Expr}
	}
	return reqs
}

func (sess *session) run(ctx context.Context, reqs []driver.Request) {
	results, err := sess.drv.Resolve(ctx, reqs)
	checkErr(err)
	checkErr(report.Write(os.Stdout, sess.table, results, sess.drv.Diagnostics().Sorted(), sess.opts))
}

func useColor(mode string) bool {
	switch mode {
	case conf.ColorAlways:
		return true
	case conf.ColorNever:
		return false
	default:
		return isTerminal(os.Stdout.Fd())
	}
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func printVersion() {
	fmt.Fprintf(os.Stderr, "%v\n", conf.FullVersion())
}

func printUsage() {
	printVersion()
	fmt.Fprint(os.Stderr, "\nUsage: sigtype [options] [file]\n")
	flag.PrintDefaults()
}

func checkErr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
