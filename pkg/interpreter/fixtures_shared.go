package interpreter

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/parser"
)

const (
	fixtureManifestName = "manifest.yml"
	fixtureDefaultEntry = "source.mk"
)

// fixtureManifest describes what a fixture program should produce.
// Result.Value is compared against the inspected form of the result.
type fixtureManifest struct {
	Description string `yaml:"description"`
	Entry       string `yaml:"entry"`
	MaxDepth    int    `yaml:"maxCallDepth"`
	Expect      struct {
		Result *struct {
			Kind  string `yaml:"kind"`
			Value string `yaml:"value"`
		} `yaml:"result"`
		Stdout      []string `yaml:"stdout"`
		Error       string   `yaml:"error"`
		ParseErrors []string `yaml:"parseErrors"`
		HostError   bool     `yaml:"hostError"`
	} `yaml:"expect"`
}

func readManifest(t testingT, dir string) fixtureManifest {
	t.Helper()
	manifestPath := filepath.Join(dir, fixtureManifestName)
	file, err := os.Open(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fixtureManifest{}
		}
		t.Fatalf("read manifest %s: %v", manifestPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	var manifest fixtureManifest
	if err := decoder.Decode(&manifest); err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("parse manifest %s: %v", manifestPath, err)
	}
	return manifest
}

func readProgram(t testingT, path string) (*ast.Program, []string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read source %s: %v", path, err)
	}
	return parser.ParseSource(string(data))
}
