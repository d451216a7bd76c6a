package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/oarkflow/json"
	"github.com/oarkflow/log"

	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/driver"
	"monkey/interpreter-go/pkg/interpreter"
	"monkey/interpreter-go/pkg/lexer"
	"monkey/interpreter-go/pkg/runtime"
)

const cliToolVersion = "monkey 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	return newApp(os.Stdout, os.Stderr).run(args)
}

// app holds the output streams so commands can be exercised in tests.
type app struct {
	stdout io.Writer
	stderr io.Writer
	// newLineReader opens the interactive line editor; tests replace it.
	newLineReader func() lineReader
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, newLineReader: newLinerReader}
}

func (a *app) run(args []string) int {
	if len(args) == 0 {
		return a.runRepl(nil)
	}

	switch args[0] {
	case "--help", "-h", "help":
		a.printUsage(a.stdout)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(a.stdout, cliToolVersion)
		return 0
	case "run":
		return a.runFile(args[1:])
	case "repl":
		return a.runRepl(args[1:])
	case "tokens":
		return a.runTokens(args[1:])
	case "ast":
		return a.runAST(args[1:])
	default:
		if strings.HasPrefix(args[0], "-") {
			fmt.Fprintf(a.stderr, "unknown flag %s\n", args[0])
			a.printUsage(a.stderr)
			return 1
		}
		return a.runFile(args)
	}
}

func (a *app) printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  monkey [run] [-config monkey.yml] <file>   evaluate a source file")
	fmt.Fprintln(w, "  monkey repl [-config monkey.yml]           start an interactive session")
	fmt.Fprintln(w, "  monkey tokens <file>                       print the token stream")
	fmt.Fprintln(w, "  monkey ast [-json] <file>                  print the parsed program")
	fmt.Fprintln(w, "  monkey version                             print the version")
}

// session bundles what every command derives from flags and config.
type session struct {
	cfg    *driver.Config
	logger *log.Logger
}

func (a *app) newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	configPath := fs.String("config", "", "path to monkey.yml")
	return fs, configPath
}

func (a *app) openSession(configPath string) (*session, error) {
	cfg, err := driver.ResolveConfig(configPath, ".")
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, a.stderr)
	if cfg.Path != "" {
		logger.Debug().Str("path", cfg.Path).Msg("config loaded")
	}
	return &session{cfg: cfg, logger: logger}, nil
}

// newLogger honours MONKEY_LOG_LEVEL over the configured level.
func newLogger(cfg *driver.Config, w io.Writer) *log.Logger {
	level := cfg.Log.Level
	if env := strings.TrimSpace(os.Getenv(driver.EnvLogLevel)); env != "" {
		level = env
	}
	return &log.Logger{
		Level:  log.ParseLevel(strings.ToLower(level)),
		Writer: &log.IOWriter{Writer: w},
	}
}

func (a *app) newInterpreter(s *session) *interpreter.Interpreter {
	return interpreter.New(
		interpreter.WithOutput(func(line string) { fmt.Fprintln(a.stdout, line) }),
		interpreter.WithMaxCallDepth(s.cfg.Limits.MaxCallDepth),
	)
}

func singleFileArg(fs *flag.FlagSet) (string, error) {
	switch fs.NArg() {
	case 0:
		return "", fmt.Errorf("%s requires a source file", fs.Name())
	case 1:
		return fs.Arg(0), nil
	default:
		return "", fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args()[1:], " "))
	}
}

//-----------------------------------------------------------------------------
// run
//-----------------------------------------------------------------------------

func (a *app) runFile(args []string) int {
	fs, configPath := a.newFlagSet("run")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	path, err := singleFileArg(fs)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	s, err := a.openSession(*configPath)
	if err != nil {
		fmt.Fprintf(a.stderr, "failed to load config: %v\n", err)
		return 1
	}

	program, ok := a.parseFile(s, path)
	if !ok {
		return 1
	}

	interp := a.newInterpreter(s)
	start := time.Now()
	result, err := interp.EvaluateProgram(program, nil)
	s.logger.Debug().Str("path", path).Dur("duration", time.Since(start)).Msg("evaluation finished")
	if err != nil {
		if errors.Is(err, interpreter.ErrCallDepthExceeded) {
			fmt.Fprintf(a.stderr, "runtime fault: %v\n", err)
		} else {
			fmt.Fprintf(a.stderr, "runtime error: %v\n", err)
		}
		return 1
	}
	if runtime.IsError(result) {
		fmt.Fprintln(a.stderr, runtime.Inspect(result))
		return 1
	}
	if result.Kind() != runtime.KindNull {
		fmt.Fprintln(a.stdout, runtime.Inspect(result))
	}
	return 0
}

// parseFile loads and parses path, reporting problems on stderr.
func (a *app) parseFile(s *session, path string) (*ast.Program, bool) {
	src, program, err := driver.ParseFile(path)
	if err != nil {
		var perr *driver.ParseError
		if errors.As(err, &perr) {
			s.logger.Debug().Str("path", path).Int("diagnostics", len(perr.Diagnostics)).Msg("parse failed")
			fmt.Fprintln(a.stderr, "parser errors:")
			for _, diag := range perr.Diagnostics {
				fmt.Fprintf(a.stderr, "\t%s: %s\n", path, diag)
			}
			return nil, false
		}
		fmt.Fprintln(a.stderr, err)
		return nil, false
	}
	s.logger.Debug().Str("path", src.Path).Int("bytes", len(src.Text)).Int("statements", len(program.Statements)).Msg("source parsed")
	return program, true
}

//-----------------------------------------------------------------------------
// tokens & ast
//-----------------------------------------------------------------------------

func (a *app) runTokens(args []string) int {
	fs, _ := a.newFlagSet("tokens")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	path, err := singleFileArg(fs)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	src, err := driver.LoadSource(path)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	for _, tok := range lexer.Tokenize(src.Text) {
		fmt.Fprintln(a.stdout, tok)
	}
	return 0
}

func (a *app) runAST(args []string) int {
	fs, configPath := a.newFlagSet("ast")
	asJSON := fs.Bool("json", false, "emit the program as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	path, err := singleFileArg(fs)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	s, err := a.openSession(*configPath)
	if err != nil {
		fmt.Fprintf(a.stderr, "failed to load config: %v\n", err)
		return 1
	}
	program, ok := a.parseFile(s, path)
	if !ok {
		return 1
	}
	if !*asJSON {
		fmt.Fprintln(a.stdout, program.String())
		return 0
	}
	data, err := json.Marshal(program)
	if err != nil {
		fmt.Fprintf(a.stderr, "encode ast: %v\n", err)
		return 1
	}
	fmt.Fprintln(a.stdout, string(data))
	return 0
}
