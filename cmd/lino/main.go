// Command lino runs the interactive interpreter, or a script file line by
// line when one is given.
package main

import (
	"flag"
	"fmt"
	"os"

	"fortio.org/log"
	"github.com/peterh/liner"

	"github.com/titivuk/lino/config"
	"github.com/titivuk/lino/evaluator"
	"github.com/titivuk/lino/repl"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(fs.Output(), `Usage:
  lino [flags]          Start the interpreter.
  lino [flags] <file>   Run a script, one statement line at a time.

Flags:
`)
		fs.PrintDefaults()
	}
}

func run(args []string) int {
	fs := flag.NewFlagSet("lino", flag.ContinueOnError)
	fs.Usage = usage(fs)
	configPath := fs.String("config", "", "path to a YAML config file")
	logLevel := fs.String("loglevel", "", "log level (debug, verbose, info, warning, error), overrides the config")
	traceTokens := fs.Bool("tokens", false, "dump the tokens of every line")
	traceAST := fs.Bool("ast", false, "dump the syntax tree of every line")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Errf("%v", err)
		return 2
	}

	// flags win over the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "loglevel":
			cfg.LogLevel = *logLevel
		case "tokens":
			cfg.TraceTokens = *traceTokens
		case "ast":
			cfg.TraceAST = *traceAST
		}
	})
	if err := log.SetLogLevelStr(cfg.LogLevel); err != nil {
		log.Errf("%v", err)
		return 2
	}

	ev := evaluator.New(
		evaluator.WithStdout(os.Stdout),
		evaluator.WithStderr(os.Stderr),
		evaluator.WithStackCapacity(cfg.StackCapacity),
		evaluator.WithMaxCallDepth(cfg.MaxCallDepth),
	)
	opts := []repl.Option{
		repl.WithEvaluator(ev),
		repl.WithPrompt(cfg.Prompt),
		repl.WithTokenTrace(cfg.TraceTokens),
		repl.WithASTTrace(cfg.TraceAST),
	}

	if fs.NArg() == 1 {
		return runScript(fs.Arg(0), opts)
	}
	return runInteractive(cfg, opts)
}

func runScript(path string, opts []repl.Option) int {
	f, err := os.Open(path)
	if err != nil {
		log.Errf("%v", err)
		return 1
	}
	defer f.Close()

	failed, err := repl.New(nil, os.Stdout, os.Stderr, opts...).RunScript(path, f)
	if err != nil {
		log.Errf("%v", err)
		return 1
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func runInteractive(cfg *config.Config, opts []repl.Option) int {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("no home directory, history stays relative: %v", err)
	}
	histPath := cfg.HistoryPath(home)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			if _, err := ln.ReadHistory(f); err != nil {
				log.Warnf("read history %s: %v", histPath, err)
			}
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(histPath)
			if err != nil {
				log.Warnf("write history %s: %v", histPath, err)
				return
			}
			if _, err := ln.WriteHistory(f); err != nil {
				log.Warnf("write history %s: %v", histPath, err)
			}
			_ = f.Close()
		}()
	}

	if err := repl.New(ln, os.Stdout, os.Stderr, opts...).Run(); err != nil {
		log.Errf("%v", err)
		return 1
	}
	return 0
}
