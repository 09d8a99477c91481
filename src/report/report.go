// Package report renders resolution results and diagnostics for people.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/tanema/sigtype/src/driver"
	"github.com/tanema/sigtype/src/lerrors"
	"github.com/tanema/sigtype/src/types"
)

const (
	red   = "\033[31m"
	yell  = "\033[33m"
	reset = "\033[0m"
)

// Options controls the output. An empty TimeFormat prints no header. Now
// defaults to time.Now.
type Options struct {
	Color      bool
	TimeFormat string
	Now        func() time.Time
}

// Write prints an optional timestamp header, one line per result and then every
// diagnostic in location order.
func Write(w io.Writer, namer types.Namer, results []driver.Result, diags []*lerrors.Error, opts Options) error {
	if opts.TimeFormat != "" {
		header, err := Header(opts.TimeFormat, opts.now())
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
	}
	for _, res := range results {
		if _, err := fmt.Fprintf(w, "%s: %s\n", res.Name, driver.Describe(namer, res)); err != nil {
			return err
		}
	}
	for _, diag := range diags {
		if _, err := fmt.Fprintln(w, Diagnostic(diag, opts.Color)); err != nil {
			return err
		}
	}
	return nil
}

// Header formats t with a strftime pattern.
func Header(format string, t time.Time) (string, error) {
	f, err := strftime.New(format)
	if err != nil {
		return "", fmt.Errorf("time format %q: %w", format, err)
	}
	return f.FormatString(t), nil
}

// Diagnostic renders one diagnostic as file:line:col: kind: message. Read
// errors are red and resolution problems yellow when color is on.
func Diagnostic(diag *lerrors.Error, color bool) string {
	kind := diag.Kind.String()
	if color {
		switch diag.Kind {
		case lerrors.ParserErr, lerrors.LexerErr:
			kind = red + kind + reset
		default:
			kind = yell + kind + reset
		}
	}
	return fmt.Sprintf("%s:%d:%d: %s: %v", diag.Filename, diag.Line, diag.Column, kind, diag.Err)
}

func (opts Options) now() time.Time {
	if opts.Now == nil {
		return time.Now()
	}
	return opts.Now()
}
