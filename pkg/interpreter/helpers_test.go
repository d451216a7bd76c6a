package interpreter

import (
	"testing"

	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/parser"
	"monkey/interpreter-go/pkg/runtime"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, errs := parser.ParseSource(src)
	if len(errs) > 0 {
		t.Fatalf("parse errors for %q: %v", src, errs)
	}
	return program
}

// evalSource parses and evaluates src in a fresh interpreter, failing the
// test on parse errors or host faults.
func evalSource(t *testing.T, src string, opts ...Option) runtime.Value {
	t.Helper()
	program := mustParse(t, src)
	result, err := New(opts...).EvaluateProgram(program, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

func expectInteger(t *testing.T, val runtime.Value, want int64) {
	t.Helper()
	iv, ok := val.(runtime.IntegerValue)
	if !ok {
		t.Fatalf("expected integer %d, got %s (%s)", want, runtime.TypeName(val), runtime.Inspect(val))
	}
	if iv.Val != want {
		t.Fatalf("expected %d, got %d", want, iv.Val)
	}
}

func expectBool(t *testing.T, val runtime.Value, want bool) {
	t.Helper()
	bv, ok := val.(runtime.BoolValue)
	if !ok {
		t.Fatalf("expected boolean %v, got %s (%s)", want, runtime.TypeName(val), runtime.Inspect(val))
	}
	if bv.Val != want {
		t.Fatalf("expected %v, got %v", want, bv.Val)
	}
}

func expectNull(t *testing.T, val runtime.Value) {
	t.Helper()
	if _, ok := val.(runtime.NullValue); !ok {
		t.Fatalf("expected null, got %s (%s)", runtime.TypeName(val), runtime.Inspect(val))
	}
}

func expectError(t *testing.T, val runtime.Value, message string) {
	t.Helper()
	errVal, ok := val.(*runtime.ErrorValue)
	if !ok {
		t.Fatalf("expected error %q, got %s (%s)", message, runtime.TypeName(val), runtime.Inspect(val))
	}
	if errVal.Message != message {
		t.Fatalf("expected error %q, got %q", message, errVal.Message)
	}
}
