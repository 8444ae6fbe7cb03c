// Package driver sequences the compiler stages: lex, parse, optimize, emit.
package driver

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jamesgrm-mccallum/vulkan-shader-complier/ast"
	"github.com/jamesgrm-mccallum/vulkan-shader-complier/codegen"
	"github.com/jamesgrm-mccallum/vulkan-shader-complier/lexer"
	"github.com/jamesgrm-mccallum/vulkan-shader-complier/optimizer"
	"github.com/jamesgrm-mccallum/vulkan-shader-complier/parser"
	"github.com/jamesgrm-mccallum/vulkan-shader-complier/utils"
)

// Stats is the per-compile record of counts and stage timings.
type Stats struct {
	TokenCount              int
	ASTNodeCount            int
	OriginalStatementCount  int
	OptimizedStatementCount int

	ConstantsFolded          int
	AlgebraicSimplifications int
	DeadCodeRemoved          int
	TotalPasses              int

	SPIRVSizeBytes int
	SPIRVWordCount int

	LexingTimeMs       float64
	ParsingTimeMs      float64
	OptimizationTimeMs float64
	CodegenTimeMs      float64
	TotalTimeMs        float64
}

// Compiler runs one compilation at a time from source text to SPIR-V words.
// Instances are independent: each keeps its own stats and generated-GLSL
// buffer, so concurrent compilations need separate instances.
type Compiler struct {
	OptimizationEnabled bool
	Verbose             bool

	stats         Stats
	generatedGLSL string
}

func NewCompiler() *Compiler {
	return &Compiler{OptimizationEnabled: true}
}

// Stats returns the record of the most recent compile call.
func (c *Compiler) Stats() Stats {
	return c.stats
}

// GeneratedGLSL returns the GLSL text of the most recent successful emission.
func (c *Compiler) GeneratedGLSL() string {
	return c.generatedGLSL
}

// Compile runs the whole pipeline and returns the SPIR-V word sequence.
// The first error in any stage terminates the compilation.
func (c *Compiler) Compile(source string, stage ast.Stage) ([]uint32, error) {
	c.stats = Stats{}
	c.generatedGLSL = ""

	if !stage.Valid() {
		return nil, fmt.Errorf("invalid shader stage %q (want %q or %q)", stage, ast.Vertex, ast.Fragment)
	}

	totalStart := time.Now()

	program, err := c.frontEnd(source)
	if err != nil {
		return nil, err
	}

	c.logf("starting code generation")
	codegenStart := time.Now()
	glsl, err := codegen.GenerateGLSL(program, stage)
	if err != nil {
		return nil, stageError(CodeGen, err)
	}
	c.generatedGLSL = glsl

	words, err := codegen.CompileToSPIRV(glsl, stage)
	if err != nil {
		return nil, stageError(CodeGen, err)
	}
	c.stats.CodegenTimeMs = msSince(codegenStart)
	c.stats.SPIRVWordCount = len(words)
	c.stats.SPIRVSizeBytes = len(words) * 4
	c.logf("code generation complete: %d words SPIR-V", len(words))

	c.stats.TotalTimeMs = msSince(totalStart)

	return words, nil
}

// CompileFile reads UTF-8 source from path and compiles it.
func (c *Compiler) CompileFile(path string, stage ast.Stage) ([]uint32, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return c.Compile(string(source), stage)
}

// GenerateGLSL runs the front end only and returns the GLSL text for stage,
// never invoking the external translator.
func (c *Compiler) GenerateGLSL(source string, stage ast.Stage) (string, error) {
	c.stats = Stats{}
	c.generatedGLSL = ""

	program, err := c.frontEnd(source)
	if err != nil {
		return "", err
	}

	glsl, err := codegen.GenerateGLSL(program, stage)
	if err != nil {
		return "", stageError(CodeGen, err)
	}
	c.generatedGLSL = glsl

	return glsl, nil
}

// RunSource lexes, parses and (when enabled) optimizes source, returning the
// program tree.
func (c *Compiler) RunSource(source string) (*ast.Program, error) {
	c.stats = Stats{}

	return c.frontEnd(source)
}

func (c *Compiler) frontEnd(source string) (*ast.Program, error) {
	c.logf("starting lexical analysis")
	lexStart := time.Now()
	tokens, err := lexer.Lex(source)
	if err != nil {
		return nil, stageError(Lexical, err)
	}
	c.stats.LexingTimeMs = msSince(lexStart)
	c.stats.TokenCount = len(tokens)
	c.logf("lexing complete: %d tokens", len(tokens))

	c.logf("starting syntax analysis")
	parseStart := time.Now()
	program, err := parser.NewParser(tokens).Parse()
	if err != nil {
		return nil, stageError(Syntax, err)
	}
	c.stats.ParsingTimeMs = msSince(parseStart)
	c.stats.ASTNodeCount = ast.Count(program)
	c.stats.OriginalStatementCount = ast.CountStatements(program)
	c.logf("parsing complete: %d nodes, %d statements", c.stats.ASTNodeCount, c.stats.OriginalStatementCount)

	if !c.OptimizationEnabled {
		c.stats.OptimizedStatementCount = c.stats.OriginalStatementCount

		return program, nil
	}

	c.logf("starting optimization passes")
	optStart := time.Now()
	opt := optimizer.New()
	opt.Optimize(program)
	c.stats.OptimizationTimeMs = msSince(optStart)

	optStats := opt.Stats()
	c.stats.ConstantsFolded = optStats.ConstantsFolded
	c.stats.AlgebraicSimplifications = optStats.AlgebraicSimplifications
	c.stats.DeadCodeRemoved = optStats.DeadCodeRemoved
	c.stats.TotalPasses = optStats.TotalPasses
	c.stats.OptimizedStatementCount = ast.CountStatements(program)
	c.logf("optimization complete: %d passes, %d folded, %d simplified, %d removed",
		optStats.TotalPasses, optStats.ConstantsFolded, optStats.AlgebraicSimplifications, optStats.DeadCodeRemoved)

	return program, nil
}

// stageError converts a stage's error into the tagged compile error,
// extracting the source position when the underlying error carries one.
func stageError(kind ErrorKind, err error) error {
	compileErr := &Error{Kind: kind, Message: err.Error()}

	var charErr lexer.UnexpectedCharacterError
	if errors.As(err, &charErr) {
		compileErr.Line = charErr.Line
		compileErr.Column = charErr.Column
	}

	var at utils.ErrorAt
	if errors.As(err, &at) {
		compileErr.Line = at.Where.Line
		compileErr.Column = at.Where.Column
	}

	return compileErr
}

func (c *Compiler) logf(format string, args ...any) {
	if !c.Verbose {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
