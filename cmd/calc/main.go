package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
	"github.com/zephyrtronium/calc/internal/logging"
)

func main() {
	log.SetFlags(0)
	cfg, err := config.LoadOrDefault()
	if err != nil {
		log.Printf("%v; using default configuration", err)
	}
	var (
		inname, base  string
		with          [][2]string
		nl, echo, pre bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=expr", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.Func("given", "name=expr variable definition (any number of times)", addwith)
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.StringVar(&base, "base", "", `print integer results in another base, "hex" or "bin"`)
	flag.BoolVar(&pre, "preview", false, "evaluate without keeping assignments or definitions")
	flag.IntVar(&cfg.Session.HistoryLimit, "history", cfg.Session.HistoryLimit, "interactive history entries to keep (0 for all)")
	flag.StringVar(&cfg.Logging.Level, "log", cfg.Logging.Level, `log level (default "info", or "debug" with CALC_LOG_DEV)`)
	flag.Parse()

	show, err := formatter(base)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := calc.NewContext()
	for _, d := range with {
		nm := d[0]
		vl := d[1]
		r, err := calc.Evaluate(vl, ctx)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		ctx.Set(nm, r)
	}

	if inname == "" && flag.NArg() == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
		sess := calc.NewSession(
			calc.WithLogger(logger.Logger),
			calc.WithHistoryLimit(cfg.Session.HistoryLimit),
			calc.WithContext(ctx),
		)
		defer sess.Close()
		repl(sess, os.Stdin, os.Stdout, show, pre)
		return
	}

	var ins []io.RuneScanner
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}

	var p []*calc.Expr
	var opts []calc.ParseOption
	if nl {
		opts = append(opts, calc.StopOn('\n', ';'))
	}
	for _, in := range ins {
		for {
			// First check whether we're done with the input.
			if _, _, err := in.ReadRune(); err != nil {
				if err == io.EOF {
					break
				}
				log.Fatal(err)
			}
			in.UnreadRune()
			a, err := calc.Parse(in, opts...)
			if err != nil {
				var ee *calc.EmptyExpressionError
				if nl && errors.As(err, &ee) && ee.End == "" {
					// Only blank lines remained.
					break
				}
				log.Fatal(err)
			}
			p = append(p, a)
		}
	}

	for _, a := range p {
		if echo {
			fmt.Printf("%v : ", a)
		}
		ev := ctx
		if pre {
			ev = ctx.Clone()
		}
		r, err := ev.Eval(a)
		if err != nil {
			logger.Debug("evaluation failed", zap.Stringer("expr", a), zap.Error(err))
			fmt.Println(err)
			continue
		}
		fmt.Println(show(r))
	}
}

// newLogger builds the logger for the logging mode. A non-empty level
// overrides the mode's default level.
func newLogger(c config.LogConfig) (*logging.Logger, error) {
	lc := logging.DefaultConfig()
	if c.Development {
		lc = logging.DevelopmentConfig()
	}
	if c.Level != "" {
		lc.Level = c.Level
	}
	return logging.New(lc)
}

// formatter returns the function to display results for a -base value.
func formatter(base string) (func(calc.Number) string, error) {
	var conv func(calc.Number) (string, error)
	switch base {
	case "", "dec":
		return calc.Format, nil
	case "hex":
		conv = calc.ToHex
	case "bin":
		conv = calc.ToBin
	default:
		return nil, fmt.Errorf(`unknown base %q (want "hex" or "bin")`, base)
	}
	return func(r calc.Number) string {
		s, err := conv(r)
		if err != nil {
			// Results with no integer value print normally.
			return calc.Format(r)
		}
		return s
	}, nil
}

// repl runs an interactive session, one expression per line. Lines starting
// with a colon are commands.
func repl(sess *calc.Session, in io.Reader, out io.Writer, show func(calc.Number) string, pre bool) {
	ctx := context.Background()
	sc := bufio.NewScanner(in)
	fmt.Fprintln(out, `calc (Ctrl+D to exit, ":help" for commands)`)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case ":help":
			fmt.Fprintln(out, ":vars      list variables")
			fmt.Fprintln(out, ":funcs     list user functions")
			fmt.Fprintln(out, ":builtins  list built-in functions")
			fmt.Fprintln(out, ":history   list evaluated expressions")
			fmt.Fprintln(out, ":clear     clear history")
			continue
		case ":vars":
			vars, err := sess.Vars(ctx)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			names := make([]string, 0, len(vars))
			for k := range vars {
				names = append(names, k)
			}
			slices.Sort(names)
			for _, k := range names {
				fmt.Fprintf(out, "%s = %s\n", k, show(vars[k]))
			}
			continue
		case ":funcs":
			fns, err := sess.Funcs(ctx)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			for _, f := range fns {
				fmt.Fprintln(out, f)
			}
			continue
		case ":builtins":
			fmt.Fprintln(out, strings.Join(calc.Builtins(), " "))
			continue
		case ":history":
			h, err := sess.History(ctx)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			for _, e := range h {
				fmt.Fprintln(out, e)
			}
			continue
		case ":clear":
			if err := sess.ClearHistory(ctx); err != nil {
				fmt.Fprintln(out, err)
			}
			continue
		}
		eval := sess.Evaluate
		if pre {
			eval = sess.Preview
		}
		r, err := eval(ctx, line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprintln(out, show(r))
	}
}

func infile(inname string, std bool) (io.RuneScanner, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return bufio.NewReader(f), nil
}
