package driver_test

import (
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jamesgrm-mccallum/vulkan-shader-complier/ast"
	"github.com/jamesgrm-mccallum/vulkan-shader-complier/codegen"
	"github.com/jamesgrm-mccallum/vulkan-shader-complier/driver"
)

const pipelineSource = `shader vertex {
	input vec3 position;
	output vec3 fragColor;
	main {
		fragColor = position * 1.0;
		gl_Position = vec4(position, 1.0);
	}
}
shader fragment {
	input vec3 fragColor;
	output vec4 outColor;
	main {
		outColor = vec4(fragColor, 1.0);
	}
}`

func TestLexicalErrorStaging(t *testing.T) {
	t.Parallel()

	compiler := driver.NewCompiler()
	_, err := compiler.Compile("shader vertex { main { x = 1.0 @ 2.0; } }", ast.Vertex)
	if err == nil {
		t.Fatal("Compile accepted a bad character")
	}

	var compileErr *driver.Error
	if !errors.As(err, &compileErr) {
		t.Fatalf("error is %T, want *driver.Error", err)
	}
	if compileErr.Kind != driver.Lexical {
		t.Errorf("kind = %v, want Lexical", compileErr.Kind)
	}
	if !strings.HasPrefix(err.Error(), "[Lexing Error]") {
		t.Errorf("message %q lacks the stage prefix", err)
	}
	if compileErr.Line != 1 || compileErr.Column == 0 {
		t.Errorf("position %d:%d not set", compileErr.Line, compileErr.Column)
	}
}

func TestSyntaxErrorStaging(t *testing.T) {
	t.Parallel()

	compiler := driver.NewCompiler()
	_, err := compiler.Compile("shader vertex { input vec3 }", ast.Vertex)
	if err == nil {
		t.Fatal("Compile accepted malformed input")
	}

	var compileErr *driver.Error
	if !errors.As(err, &compileErr) {
		t.Fatalf("error is %T, want *driver.Error", err)
	}
	if compileErr.Kind != driver.Syntax {
		t.Errorf("kind = %v, want Syntax", compileErr.Kind)
	}
	if !strings.HasPrefix(err.Error(), "[Parsing Error]") {
		t.Errorf("message %q lacks the stage prefix", err)
	}
	if compileErr.Line == 0 || compileErr.Column == 0 {
		t.Errorf("position %d:%d not set", compileErr.Line, compileErr.Column)
	}
}

func TestCodeGenErrorStaging(t *testing.T) {
	t.Parallel()

	compiler := driver.NewCompiler()
	_, err := compiler.GenerateGLSL(pipelineSource, ast.Vertex)
	if err != nil {
		t.Fatalf("GenerateGLSL returned error: %v", err)
	}

	_, err = compiler.GenerateGLSL("shader vertex { main { gl_Position = vec4(0, 0, 0, 1); } }", ast.Fragment)
	if err == nil {
		t.Fatal("GenerateGLSL found a missing stage")
	}
	var compileErr *driver.Error
	if !errors.As(err, &compileErr) {
		t.Fatalf("error is %T, want *driver.Error", err)
	}
	if compileErr.Kind != driver.CodeGen {
		t.Errorf("kind = %v, want CodeGen", compileErr.Kind)
	}
	if !strings.HasPrefix(err.Error(), "[Code Generation Error]") {
		t.Errorf("message %q lacks the stage prefix", err)
	}
}

func TestInvalidStageRejected(t *testing.T) {
	t.Parallel()

	compiler := driver.NewCompiler()
	if _, err := compiler.Compile(pipelineSource, ast.Stage("compute")); err == nil {
		t.Fatal("Compile accepted an invalid stage")
	}
}

func TestStatsPopulated(t *testing.T) {
	t.Parallel()

	source := `shader vertex {
		output vec3 o;
		main {
			tmp = 1.0 * 2.0;
			o = vec3(0, 0, 0);
			gl_Position = vec4(0, 0, 0, 1);
		}
	}`

	compiler := driver.NewCompiler()
	if _, err := compiler.GenerateGLSL(source, ast.Vertex); err != nil {
		t.Fatalf("GenerateGLSL returned error: %v", err)
	}

	stats := compiler.Stats()
	if stats.TokenCount == 0 {
		t.Error("TokenCount not recorded")
	}
	if stats.ASTNodeCount == 0 {
		t.Error("ASTNodeCount not recorded")
	}
	if stats.OriginalStatementCount != 3 {
		t.Errorf("OriginalStatementCount = %d, want 3", stats.OriginalStatementCount)
	}
	if stats.OptimizedStatementCount != 2 {
		t.Errorf("OptimizedStatementCount = %d, want 2", stats.OptimizedStatementCount)
	}
	if stats.ConstantsFolded != 1 {
		t.Errorf("ConstantsFolded = %d, want 1", stats.ConstantsFolded)
	}
	if stats.DeadCodeRemoved != 1 {
		t.Errorf("DeadCodeRemoved = %d, want 1", stats.DeadCodeRemoved)
	}
	if stats.TotalPasses == 0 {
		t.Error("TotalPasses not recorded")
	}
}

func TestOptimizationDisabled(t *testing.T) {
	t.Parallel()

	compiler := driver.NewCompiler()
	compiler.OptimizationEnabled = false
	glsl, err := compiler.GenerateGLSL("shader vertex { input vec3 p; output vec3 o; main { o = p * 1.0; gl_Position = vec4(p, 1.0); } }", ast.Vertex)
	if err != nil {
		t.Fatalf("GenerateGLSL returned error: %v", err)
	}
	if !strings.Contains(glsl, "(p * 1.0)") {
		t.Errorf("identity simplified with optimization disabled, got:\n%s", glsl)
	}

	stats := compiler.Stats()
	if stats.TotalPasses != 0 {
		t.Errorf("TotalPasses = %d, want 0 when disabled", stats.TotalPasses)
	}
	if stats.OptimizedStatementCount != stats.OriginalStatementCount {
		t.Errorf("statement counts diverge when disabled: %d != %d", stats.OptimizedStatementCount, stats.OriginalStatementCount)
	}
}

func TestRunSource(t *testing.T) {
	t.Parallel()

	compiler := driver.NewCompiler()
	program, err := compiler.RunSource(pipelineSource)
	if err != nil {
		t.Fatalf("RunSource returned error: %v", err)
	}
	if len(program.Shaders) != 2 {
		t.Fatalf("parsed %d shaders, want 2", len(program.Shaders))
	}
}

func TestCompileFileMissing(t *testing.T) {
	t.Parallel()

	compiler := driver.NewCompiler()
	if _, err := compiler.CompileFile(filepath.Join(t.TempDir(), "missing.shader"), ast.Vertex); err == nil {
		t.Error("CompileFile succeeded on a missing file")
	}
}

// TestEndToEnd exercises the subprocess edge and is skipped when the
// translator is not installed.
func TestEndToEnd(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("glslangValidator"); err != nil {
		t.Skip("glslangValidator not installed")
	}

	compiler := driver.NewCompiler()
	vertexWords, err := compiler.Compile(pipelineSource, ast.Vertex)
	if err != nil {
		t.Fatalf("vertex compile failed: %v", err)
	}
	fragmentWords, err := compiler.Compile(pipelineSource, ast.Fragment)
	if err != nil {
		t.Fatalf("fragment compile failed: %v", err)
	}

	for _, words := range [][]uint32{vertexWords, fragmentWords} {
		if len(words) == 0 || words[0] != codegen.Magic {
			t.Fatalf("module does not start with the SPIR-V magic word")
		}
	}

	if len(vertexWords) == len(fragmentWords) {
		same := true
		for i := range vertexWords {
			if vertexWords[i] != fragmentWords[i] {
				same = false

				break
			}
		}
		if same {
			t.Error("vertex and fragment stages produced identical modules")
		}
	}

	stats := compiler.Stats()
	if stats.SPIRVWordCount != len(fragmentWords) {
		t.Errorf("SPIRVWordCount = %d, want %d", stats.SPIRVWordCount, len(fragmentWords))
	}
}
