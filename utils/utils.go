package utils

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/jamesgrm-mccallum/vulkan-shader-complier/ast"
	"github.com/jamesgrm-mccallum/vulkan-shader-complier/token"
)

// ErrorAt locates an error at a token.
type ErrorAt struct {
	Where token.Token
	Err   error
}

func (e ErrorAt) Error() string {
	if e.Where.Kind == token.EOF {
		return fmt.Sprintf("at end: %s", e.Err.Error())
	}

	return fmt.Sprintf("at %d:%d: `%s`, %s", e.Where.Line, e.Where.Column, e.Where.Lexeme, e.Err.Error())
}

func (e ErrorAt) Unwrap() error {
	return e.Err
}

// TestData is one entry of a yaml test table.
type TestData struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string]string
}

func ReadTestData(s []byte) []TestData {
	var data []TestData
	if err := yaml.Unmarshal(s, &data); err != nil {
		panic(err)
	}

	// Remove disabled test cases.
	i := 0
	for _, d := range data {
		if d.Enable {
			data[i] = d
			i++
		}
	}
	data = data[:i]

	return data
}

// SourceRunner runs a source string through the front end and returns the
// resulting program.
type SourceRunner interface {
	RunSource(source string) (*ast.Program, error)
}

// RunTest feeds input through runner and compares the program's String form
// against expected.
func RunTest(runner SourceRunner, t testing.TB, label string, input string, expected string) {
	t.Helper()

	program, err := runner.RunSource(input)
	if err != nil {
		t.Errorf("%s returned error: %v", label, err)

		return
	}

	if diff := cmp.Diff(expected, program.String()); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", label, diff)
	}
}

// FindSourceFiles returns every .shader file under dir, sorted by path.
func FindSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".shader") {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(files)

	return files, nil
}
