// Command lox is the tree-walking Lox interpreter: run a script file, or
// with no arguments drop into an interactive prompt.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/sanity-io/litter"

	lox "github.com/MelvinMallari/golox"
)

const (
	usageExit       = 64
	staticErrExit   = 65
	runtimeErrExit  = 70
	replContProm    = "...> "
	replQuitLiteral = "exit"
)

func main() {
	dumpAST := flag.Bool("ast", false, "pretty-dump the parsed statement list before running")
	flag.Parse()

	args := flag.Args()
	switch {
	case len(args) > 1:
		fmt.Fprintln(os.Stderr, "Usage: lox [script]")
		os.Exit(usageExit)
	case len(args) == 1:
		os.Exit(runFile(args[0], *dumpAST))
	default:
		os.Exit(runPrompt(*dumpAST))
	}
}

func runFile(path string, dumpAST bool) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lox: cannot read %s: %v\n", path, err)
		return 1
	}

	cfg, err := lox.LoadConfig(filepath.Dir(path))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	reporter := lox.NewReporter(os.Stdout)
	reporter.Color = cfg.Color
	run(string(src), reporter, lox.NewInterpreter(reporter), dumpAST, cfg)

	switch {
	case reporter.HadError:
		return staticErrExit
	case reporter.HadRuntimeError:
		return runtimeErrExit
	default:
		return 0
	}
}

func runPrompt(dumpAST bool) int {
	cfg, err := lox.LoadConfig(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryFile
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	reporter := lox.NewReporter(os.Stdout)
	reporter.Color = cfg.Color
	interp := lox.NewInterpreter(reporter)

	for {
		line, ok := readLine(ln, cfg.Prompt)
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(line) == replQuitLiteral {
			return 0
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		reporter.Reset()
		run(line, reporter, interp, dumpAST, cfg)
		ln.AppendHistory(strings.ReplaceAll(line, "\n", " "))
	}
}

// readLine reads one REPL entry, growing it across lines with a
// continuation prompt while looksIncomplete reports the input as an
// unclosed block, so a block spanning multiple lines does not need to be
// typed on one line.
func readLine(ln *liner.State, prompt string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = replContProm
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == replQuitLiteral {
			return src, true
		}
		if !looksIncomplete(src) {
			return src, true
		}
	}
}

// looksIncomplete reports whether src scans cleanly, fails to parse, and
// has more '{' than '}' (an unclosed block). Any other parse failure,
// including an expression cut off after an operator, counts as complete
// input, so its error is reported immediately.
func looksIncomplete(src string) bool {
	reporter := lox.NewReporter(io.Discard)
	scanner := lox.NewScanner(src, reporter)
	tokens := scanner.ScanTokens()
	if reporter.HadError {
		return false
	}
	parser := lox.NewParser(tokens, reporter)
	parser.Parse()
	if !reporter.HadError {
		return false
	}
	last := tokens[len(tokens)-1]
	return last.Type == lox.EOF && strings.Count(src, "{") > strings.Count(src, "}")
}

func run(source string, reporter *lox.Reporter, interp *lox.Interpreter, dumpAST bool, cfg *lox.Config) {
	scanner := lox.NewScanner(source, reporter)
	tokens := scanner.ScanTokens()

	parser := lox.NewParser(tokens, reporter)
	statements := parser.Parse()

	if reporter.HadError {
		return
	}

	resolver := lox.NewResolver(interp, reporter)
	resolver.Resolve(statements)

	if reporter.HadError {
		return
	}

	if dumpAST {
		litter.Dump(statements)
	}

	interp.Interpret(statements)
}
