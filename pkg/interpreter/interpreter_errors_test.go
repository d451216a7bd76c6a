package interpreter

import (
	"errors"
	"testing"

	"monkey/interpreter-go/pkg/parser"
	"monkey/interpreter-go/pkg/runtime"
)

func TestRuntimeErrorValues(t *testing.T) {
	cases := []struct {
		src string
		msg string
	}{
		{"5 + true;", "type mismatch: INTEGER + BOOLEAN"},
		{"5 + true; 5;", "type mismatch: INTEGER + BOOLEAN"},
		{"-true", "unknown operator: -BOOLEAN"},
		{`-"a"`, "unknown operator: -STRING"},
		{"true + false;", "unknown operator: BOOLEAN + BOOLEAN"},
		{"5; true + false; 5", "unknown operator: BOOLEAN + BOOLEAN"},
		{"if (10 > 1) { true + false; }", "unknown operator: BOOLEAN + BOOLEAN"},
		{"if (10 > 1) { if (10 > 1) { return true + false; } return 1; }", "unknown operator: BOOLEAN + BOOLEAN"},
		{`"Hello" - "World"`, "unknown operator: STRING - STRING"},
		{`"a" < "b"`, "unknown operator: STRING < STRING"},
		{`"a" + 1`, "type mismatch: STRING + INTEGER"},
		{"[1] + [2]", "unknown operator: ARRAY + ARRAY"},
		{"foobar", "identifier not found: foobar"},
		{`{"name": "Monkey"}[fn(x) { x }];`, "unusable as hash key: FUNCTION"},
		{`{[1]: 2}`, "unusable as hash key: ARRAY"},
		{"1[0]", "index operator not supported: INTEGER"},
		{`[1, 2]["a"]`, "index operator not supported: ARRAY"},
		{"5(1)", "not a function: INTEGER"},
		{`"f"()`, "not a function: STRING"},
		{"10 / 0", "division by zero"},
		{"fn(x) { x }()", "wrong number of arguments: want=1, got=0"},
		{"fn() { 1 }(2)", "wrong number of arguments: want=0, got=1"},
	}
	for _, tc := range cases {
		expectError(t, evalSource(t, tc.src), tc.msg)
	}
}

func TestErrorsShortCircuitCollections(t *testing.T) {
	var lines []string
	out := WithOutput(func(line string) { lines = append(lines, line) })
	expectError(t, evalSource(t, `[print("a"), missing, print("b")]`, out), "identifier not found: missing")
	expectError(t, evalSource(t, `{"k": missing, print("c"): 1}`, out), "identifier not found: missing")
	expectError(t, evalSource(t, `print(missing, "d")`, out), "identifier not found: missing")
	expectError(t, evalSource(t, `missing(print("e"))`, out), "identifier not found: missing")
	if len(lines) != 1 || lines[0] != "a" {
		t.Fatalf("expected only the first print to run, got %v", lines)
	}
}

func TestErrorsStopTheProgram(t *testing.T) {
	var lines []string
	val := evalSource(t, `let x = 1 + "a"; print("unreachable"); x`, WithOutput(func(line string) {
		lines = append(lines, line)
	}))
	expectError(t, val, "type mismatch: INTEGER + STRING")
	if len(lines) != 0 {
		t.Fatalf("statements after the error ran: %v", lines)
	}
}

func TestCallDepthGuard(t *testing.T) {
	program, errs := parser.ParseSource("let f = fn(n) { f(n + 1) }; f(0)")
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	interp := New(WithMaxCallDepth(100))
	_, err := interp.EvaluateProgram(program, nil)
	if !errors.Is(err, ErrCallDepthExceeded) {
		t.Fatalf("expected call depth error, got %v", err)
	}

	// The counter unwinds, so the same interpreter keeps working.
	val, err := interp.EvaluateProgram(mustParse(t, "let g = fn(n) { if (n == 0) { 0 } else { g(n - 1) } }; g(90)"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectInteger(t, val, 0)
}

func TestCallDepthGuardDisabled(t *testing.T) {
	src := "let g = fn(n) { if (n == 0) { 0 } else { 1 + g(n - 1) } }; g(200)"
	expectInteger(t, evalSource(t, src, WithMaxCallDepth(0)), 200)
	expectError(t, evalSource(t, "len(1, 2)", WithMaxCallDepth(0)), "wrong number of arguments. got=2, want=1")
}

func TestReturnValueNeverEscapes(t *testing.T) {
	val := evalSource(t, "let f = fn() { return [1]; }; f()")
	if val.Kind() == runtime.KindReturnValue {
		t.Fatalf("return wrapper escaped the call")
	}
	if got := runtime.Inspect(val); got != "[1]" {
		t.Fatalf("unexpected result %q", got)
	}
}
