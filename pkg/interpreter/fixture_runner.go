package interpreter

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"

	"monkey/interpreter-go/pkg/runtime"
)

// testingT captures the subset of testing.T used by fixture helpers.
type testingT interface {
	Helper()
	Fatalf(format string, args ...interface{})
}

// walkFixtures calls fn for every directory under root holding a manifest.
func walkFixtures(t testingT, root string, fn func(dir string)) {
	t.Helper()
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read dir %s: %v", root, err)
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() && entry.Name() == fixtureManifestName {
			fn(root)
			break
		}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			walkFixtures(t, filepath.Join(root, entry.Name()), fn)
		}
	}
}

// runFixture evaluates a fixture directory and checks it against its manifest.
func runFixture(t testingT, dir string) {
	t.Helper()
	manifest := readManifest(t, dir)
	entry := manifest.Entry
	if entry == "" {
		entry = fixtureDefaultEntry
	}
	program, parseErrs := readProgram(t, filepath.Join(dir, entry))

	if len(manifest.Expect.ParseErrors) > 0 {
		if !reflect.DeepEqual(parseErrs, manifest.Expect.ParseErrors) {
			t.Fatalf("fixture %s expected parse errors %v, got %v", dir, manifest.Expect.ParseErrors, parseErrs)
		}
		return
	}
	if len(parseErrs) > 0 {
		t.Fatalf("fixture %s: parse errors: %v", dir, parseErrs)
	}

	var stdout []string
	opts := []Option{WithOutput(func(line string) { stdout = append(stdout, line) })}
	if manifest.MaxDepth > 0 {
		opts = append(opts, WithMaxCallDepth(manifest.MaxDepth))
	}
	interp := New(opts...)
	result, err := interp.EvaluateProgram(program, nil)

	if manifest.Expect.HostError {
		if !errors.Is(err, ErrCallDepthExceeded) {
			t.Fatalf("fixture %s expected call depth fault, got %v", dir, err)
		}
		return
	}
	if err != nil {
		t.Fatalf("fixture %s: evaluation error: %v", dir, err)
	}

	if manifest.Expect.Error != "" {
		errVal, ok := result.(*runtime.ErrorValue)
		if !ok {
			t.Fatalf("fixture %s expected error %q, got %s", dir, manifest.Expect.Error, runtime.Inspect(result))
		}
		if errVal.Message != manifest.Expect.Error {
			t.Fatalf("fixture %s expected error %q, got %q", dir, manifest.Expect.Error, errVal.Message)
		}
	}
	assertResult(t, dir, manifest, result, stdout)
}

func assertResult(t testingT, dir string, manifest fixtureManifest, result runtime.Value, stdout []string) {
	t.Helper()
	if manifest.Expect.Stdout != nil && !reflect.DeepEqual(stdout, manifest.Expect.Stdout) {
		t.Fatalf("fixture %s expected stdout %v, got %v", dir, manifest.Expect.Stdout, stdout)
	}
	exp := manifest.Expect.Result
	if exp == nil {
		return
	}
	if got := runtime.TypeName(result); exp.Kind != "" && got != exp.Kind {
		t.Fatalf("fixture %s expected %s result, got %s", dir, exp.Kind, got)
	}
	if got := runtime.Inspect(result); got != exp.Value {
		t.Fatalf("fixture %s expected value %q, got %q", dir, exp.Value, got)
	}
}
