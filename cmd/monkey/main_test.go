package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// quietConfig writes a config that keeps logging off stderr.
func quietConfig(t *testing.T, dir string, extra string) string {
	t.Helper()
	return writeTemp(t, dir, "monkey.yml", "log:\n  level: error\n"+extra)
}

func runApp(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("MONKEY_LOG_LEVEL", "")
	var stdout, stderr bytes.Buffer
	code := newApp(&stdout, &stderr).run(args)
	return code, stdout.String(), stderr.String()
}

func TestRunFileEvaluates(t *testing.T) {
	dir := t.TempDir()
	cfg := quietConfig(t, dir, "")
	src := writeTemp(t, dir, "main.mk", "let a = 2;\nprint(a * 3);\na + 1\n")

	code, stdout, stderr := runApp(t, "run", "-config", cfg, src)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr)
	}
	if stdout != "6\n3\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestRunFileWithoutSubcommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MONKEY_CONFIG", quietConfig(t, dir, ""))
	src := writeTemp(t, dir, "main.mk", `"hello" + " " + "world"`)

	code, stdout, stderr := runApp(t, src)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr)
	}
	if stdout != "hello world\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestRunFileNullResultPrintsNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := quietConfig(t, dir, "")
	src := writeTemp(t, dir, "main.mk", "if (false) { 1 }")

	code, stdout, _ := runApp(t, "run", "-config", cfg, src)
	if code != 0 || stdout != "" {
		t.Fatalf("code=%d stdout=%q", code, stdout)
	}
}

func TestRunFileReportsErrorValue(t *testing.T) {
	dir := t.TempDir()
	cfg := quietConfig(t, dir, "")
	src := writeTemp(t, dir, "main.mk", "1 + true")

	code, stdout, stderr := runApp(t, "run", "-config", cfg, src)
	if code != 1 {
		t.Fatalf("exit code %d", code)
	}
	if stdout != "" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, "ERROR: type mismatch: INTEGER + BOOLEAN") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRunFileReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := quietConfig(t, dir, "")
	src := writeTemp(t, dir, "bad.mk", "let = 1;")

	code, _, stderr := runApp(t, "run", "-config", cfg, src)
	if code != 1 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(stderr, "parser errors:") {
		t.Fatalf("stderr = %q", stderr)
	}
	if !strings.Contains(stderr, "1:5: expected next token to be IDENT, got = instead") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRunFileCallDepthFault(t *testing.T) {
	dir := t.TempDir()
	cfg := quietConfig(t, dir, "limits:\n  max_call_depth: 20\n")
	src := writeTemp(t, dir, "loop.mk", "let f = fn(n) { f(n) }; f(1)")

	code, _, stderr := runApp(t, "run", "-config", cfg, src)
	if code != 1 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(stderr, "runtime fault") || !strings.Contains(stderr, "maximum call depth exceeded") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTemp(t, dir, "monkey.yml", "log:\n  level: loud\n")
	src := writeTemp(t, dir, "main.mk", "1")

	code, _, stderr := runApp(t, "run", "-config", cfg, src)
	if code != 1 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(stderr, "failed to load config: config validation failed") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRunRequiresFile(t *testing.T) {
	code, _, stderr := runApp(t, "run")
	if code != 1 || !strings.Contains(stderr, "run requires a source file") {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
}

func TestTokensCommand(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "tok.mk", "let x = 5;")

	code, stdout, stderr := runApp(t, "tokens", src)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr)
	}
	want := strings.Join([]string{
		`LET("let") at 1:1`,
		`IDENT("x") at 1:5`,
		`=("=") at 1:7`,
		`INT("5") at 1:9`,
		`;(";") at 1:10`,
		`EOF("") at 1:11`,
	}, "\n") + "\n"
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
}

func TestASTCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := quietConfig(t, dir, "")
	src := writeTemp(t, dir, "ast.mk", "1 + 2 * 3")

	code, stdout, stderr := runApp(t, "ast", "-config", cfg, src)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr)
	}
	if stdout != "(1 + (2 * 3))\n" {
		t.Fatalf("stdout = %q", stdout)
	}

	code, stdout, stderr = runApp(t, "ast", "-config", cfg, "-json", src)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr)
	}
	for _, fragment := range []string{`"type":"Program"`, `"type":"InfixExpression"`, `"operator":"*"`} {
		if !strings.Contains(stdout, fragment) {
			t.Fatalf("json output %q missing %s", stdout, fragment)
		}
	}
}

func TestVersionAndHelp(t *testing.T) {
	code, stdout, _ := runApp(t, "--version")
	if code != 0 || stdout != cliToolVersion+"\n" {
		t.Fatalf("code=%d stdout=%q", code, stdout)
	}
	code, stdout, _ = runApp(t, "--help")
	if code != 0 || !strings.Contains(stdout, "usage:") {
		t.Fatalf("code=%d stdout=%q", code, stdout)
	}
	code, _, stderr := runApp(t, "--bogus")
	if code != 1 || !strings.Contains(stderr, "unknown flag --bogus") {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
}

type scriptedReader struct {
	lines   []string
	prompts []string
	history []string
	closed  bool
}

func (r *scriptedReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) AppendHistory(item string) { r.history = append(r.history, item) }

func (r *scriptedReader) Close() error {
	r.closed = true
	return nil
}

func runRepl(t *testing.T, reader *scriptedReader, extraConfig string) (int, string, string) {
	t.Helper()
	t.Setenv("MONKEY_LOG_LEVEL", "")
	cfg := quietConfig(t, t.TempDir(), extraConfig)
	var stdout, stderr bytes.Buffer
	a := newApp(&stdout, &stderr)
	a.newLineReader = func() lineReader { return reader }
	code := a.run([]string{"repl", "-config", cfg})
	if !reader.closed {
		t.Fatalf("line reader was not closed")
	}
	return code, stdout.String(), stderr.String()
}

func TestReplSession(t *testing.T) {
	reader := &scriptedReader{lines: []string{
		"let add = fn(a, b) {",
		"  a + b",
		"};",
		"add(2, 3)",
		`print("hi")`,
		"missing",
		"",
		":env",
		":bogus",
		"let = 1",
		":quit",
		"add(1, 1)",
	}}
	code, stdout, stderr := runRepl(t, reader, "")
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr)
	}
	want := strings.Join([]string{
		replBanner,
		"fn(a, b) { (a + b) }",
		"5",
		"hi",
		"ERROR: identifier not found: missing",
		"add = fn(a, b) { (a + b) }",
		"unknown command :bogus. Type :help for a list.",
		"parser errors:",
		"\texpected next token to be IDENT, got = instead",
		"\tno prefix parse function for = found",
	}, "\n") + "\n"
	if stdout != want {
		t.Fatalf("stdout = %q\nwant     %q", stdout, want)
	}
	if len(reader.lines) != 1 {
		t.Fatalf(":quit should stop reading, %d lines left", len(reader.lines))
	}
	if got := reader.prompts[:4]; got[0] != ">> " || got[1] != ".. " || got[2] != ".. " || got[3] != ">> " {
		t.Fatalf("unexpected prompts %q", got)
	}
	if reader.history[0] != "let add = fn(a, b) {   a + b };" {
		t.Fatalf("unexpected history entry %q", reader.history[0])
	}
}

func TestReplEndsOnEOF(t *testing.T) {
	reader := &scriptedReader{lines: []string{"let x = 1;", "x * 10"}}
	code, stdout, _ := runRepl(t, reader, "repl:\n  prompt: \"monkey> \"\n")
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if want := replBanner + "\n1\n10\n\n"; stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
	if reader.prompts[0] != "monkey> " {
		t.Fatalf("configured prompt not used: %q", reader.prompts[0])
	}
}

func TestReplSurvivesCallDepthFault(t *testing.T) {
	reader := &scriptedReader{lines: []string{"let f = fn() { f() };", "f()", "1 + 1"}}
	code, stdout, stderr := runRepl(t, reader, "limits:\n  max_call_depth: 10\n")
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(stderr, "runtime fault") {
		t.Fatalf("stderr = %q", stderr)
	}
	if !strings.HasSuffix(stdout, "2\n\n") {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestOpenBrackets(t *testing.T) {
	cases := map[string]int{
		"let a = [1, 2":        1,
		"fn(x) { if (x) {":     2,
		`"{ not counted"`:      0,
		"}":                    -1,
		"let h = {\"a\": [1]}": 0,
	}
	for src, want := range cases {
		if got := openBrackets(src); got != want {
			t.Fatalf("openBrackets(%q) = %d, want %d", src, got, want)
		}
	}
}
