package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"monkey/interpreter-go/pkg/driver"
	"monkey/interpreter-go/pkg/interpreter"
	"monkey/interpreter-go/pkg/lexer"
	"monkey/interpreter-go/pkg/parser"
	"monkey/interpreter-go/pkg/runtime"
	"monkey/interpreter-go/pkg/token"
)

const replBanner = cliToolVersion + " (:help for commands)"

// lineReader is the part of *liner.State the REPL needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// linerReader adds history persistence on top of liner.
type linerReader struct {
	*liner.State
	historyPath string
}

func newLinerReader() lineReader {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	return &linerReader{State: st}
}

func (r *linerReader) loadHistory(path string) {
	r.historyPath = path
	if path == "" {
		return
	}
	if f, err := os.Open(path); err == nil {
		_, _ = r.ReadHistory(f)
		_ = f.Close()
	}
}

func (r *linerReader) Close() error {
	if r.historyPath != "" {
		if err := os.MkdirAll(filepath.Dir(r.historyPath), 0o755); err == nil {
			if f, err := os.Create(r.historyPath); err == nil {
				_, _ = r.WriteHistory(f)
				_ = f.Close()
			}
		}
	}
	return r.State.Close()
}

type repl struct {
	in           lineReader
	out          io.Writer
	errOut       io.Writer
	interp       *interpreter.Interpreter
	env          *runtime.Environment
	prompt       string
	continuation string
}

func (a *app) runRepl(args []string) int {
	fs, configPath := a.newFlagSet("repl")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(a.stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return 1
	}
	s, err := a.openSession(*configPath)
	if err != nil {
		fmt.Fprintf(a.stderr, "failed to load config: %v\n", err)
		return 1
	}

	in := a.newLineReader()
	if lr, ok := in.(*linerReader); ok {
		if home, err := driver.ResolveHome(); err == nil {
			lr.loadHistory(s.cfg.HistoryPath(home))
		} else {
			s.logger.Warn().Err(err).Msg("history disabled")
		}
	}
	defer in.Close()

	interp := a.newInterpreter(s)
	r := &repl{
		in:           in,
		out:          a.stdout,
		errOut:       a.stderr,
		interp:       interp,
		env:          interp.GlobalEnvironment(),
		prompt:       s.cfg.REPL.Prompt,
		continuation: s.cfg.REPL.Continuation,
	}
	fmt.Fprintln(a.stdout, replBanner)
	return r.loop()
}

func (r *repl) loop() int {
	for {
		code, ok := r.readChunk()
		if !ok {
			fmt.Fprintln(r.out)
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		r.in.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			if quit := r.command(trimmed); quit {
				return 0
			}
			continue
		}
		if err := r.eval(code); err != nil {
			return 1
		}
	}
}

// readChunk keeps prompting while brackets are left open. ok is false at
// end of input.
func (r *repl) readChunk() (string, bool) {
	var b strings.Builder
	for {
		prompt := r.prompt
		if b.Len() > 0 {
			prompt = r.continuation
		}
		line, err := r.in.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || openBrackets(src) <= 0 {
			return src, true
		}
	}
}

// openBrackets counts unclosed ( [ { in src, ignoring string contents.
func openBrackets(src string) int {
	depth := 0
	for _, tok := range lexer.Tokenize(src) {
		switch tok.Kind {
		case token.KindLParen, token.KindLBracket, token.KindLBrace:
			depth++
		case token.KindRParen, token.KindRBracket, token.KindRBrace:
			depth--
		}
	}
	return depth
}

func (r *repl) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":env":
		for _, name := range r.env.Keys() {
			val, _ := r.env.Get(name)
			fmt.Fprintf(r.out, "%s = %s\n", name, runtime.Inspect(val))
		}
	case ":help":
		fmt.Fprintln(r.out, ":env   list bindings")
		fmt.Fprintln(r.out, ":help  show this help")
		fmt.Fprintln(r.out, ":quit  leave the session")
	default:
		fmt.Fprintf(r.out, "unknown command %s. Type :help for a list.\n", cmd)
	}
	return false
}

// eval runs one chunk in the session environment. Only host faults are
// returned; language errors are printed and the session continues.
func (r *repl) eval(code string) error {
	program, errs := parser.ParseSource(code)
	if len(errs) > 0 {
		fmt.Fprintln(r.out, "parser errors:")
		for _, msg := range errs {
			fmt.Fprintf(r.out, "\t%s\n", msg)
		}
		return nil
	}
	result, err := r.interp.EvaluateProgram(program, r.env)
	if err != nil {
		if errors.Is(err, interpreter.ErrCallDepthExceeded) {
			fmt.Fprintf(r.errOut, "runtime fault: %v\n", err)
			return nil
		}
		fmt.Fprintf(r.errOut, "runtime error: %v\n", err)
		return err
	}
	if result != nil && result.Kind() != runtime.KindNull {
		fmt.Fprintln(r.out, runtime.Inspect(result))
	}
	return nil
}
