// Command vulkan-shader-complier compiles shader DSL source to SPIR-V via
// glslangValidator.
//
// Usage:
//
//	vulkan-shader-complier <input.dsl> -o <output.spv> -t <vertex|fragment> [options]
//
// With no input file it starts an interactive prompt that prints the
// optimized GLSL for each line of source.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/peterh/liner"

	"github.com/jamesgrm-mccallum/vulkan-shader-complier/ast"
	"github.com/jamesgrm-mccallum/vulkan-shader-complier/codegen"
	"github.com/jamesgrm-mccallum/vulkan-shader-complier/driver"
)

var (
	output    = flag.String("o", "", "output SPIR-V file")
	stageName = flag.String("t", "", "shader stage: vertex or fragment")
	noOpt     = flag.Bool("no-opt", false, "disable optimization passes")
	showStats = flag.Bool("stats", false, "show detailed compilation statistics")
	verbose   = flag.Bool("verbose", false, "enable verbose compilation output")
	showGLSL  = flag.Bool("glsl", false, "print generated GLSL to stdout")
)

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		if err := runPrompt(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		return
	}

	// Options may follow the input file as well as precede it.
	inputPath := flag.Arg(0)
	flag.CommandLine.Parse(flag.Args()[1:])

	if err := runFile(inputPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runFile(inputPath string) error {
	if *output == "" {
		return fmt.Errorf("no output file specified (use -o)")
	}
	stage := ast.Stage(*stageName)
	if !stage.Valid() {
		return fmt.Errorf("invalid shader stage %q (use -t vertex or -t fragment)", *stageName)
	}

	compiler := driver.NewCompiler()
	compiler.OptimizationEnabled = !*noOpt
	compiler.Verbose = *verbose

	words, err := compiler.CompileFile(inputPath, stage)
	if err != nil {
		return err
	}

	if *showGLSL {
		fmt.Print(compiler.GeneratedGLSL())
	}

	if err := writeSPIRV(*output, words); err != nil {
		return err
	}

	stats := compiler.Stats()
	fmt.Printf("compiled %s to %s (%d bytes)\n", inputPath, *output, stats.SPIRVSizeBytes)
	if *showStats {
		printStats(stats)
	}

	return nil
}

func writeSPIRV(path string, words []uint32) error {
	data := make([]byte, len(words)*4)
	for i, word := range words {
		binary.LittleEndian.PutUint32(data[i*4:], word)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

func printStats(stats driver.Stats) {
	fmt.Printf("tokens:                    %d\n", stats.TokenCount)
	fmt.Printf("AST nodes:                 %d\n", stats.ASTNodeCount)
	fmt.Printf("statements:                %d -> %d\n", stats.OriginalStatementCount, stats.OptimizedStatementCount)
	fmt.Printf("constants folded:          %d\n", stats.ConstantsFolded)
	fmt.Printf("algebraic simplifications: %d\n", stats.AlgebraicSimplifications)
	fmt.Printf("dead code removed:         %d\n", stats.DeadCodeRemoved)
	fmt.Printf("optimizer passes:          %d\n", stats.TotalPasses)
	fmt.Printf("SPIR-V words:              %d\n", stats.SPIRVWordCount)
	fmt.Printf("lexing time:               %.3f ms\n", stats.LexingTimeMs)
	fmt.Printf("parsing time:              %.3f ms\n", stats.ParsingTimeMs)
	fmt.Printf("optimization time:         %.3f ms\n", stats.OptimizationTimeMs)
	fmt.Printf("codegen time:              %.3f ms\n", stats.CodegenTimeMs)
	fmt.Printf("total time:                %.3f ms\n", stats.TotalTimeMs)
}

var history = filepath.Join(xdg.DataHome, "vulkan-shader-complier", ".history")

// runPrompt reads lines of DSL source and prints the optimized GLSL for each
// stage the line declares. The external translator is never invoked here.
func runPrompt() error {
	line := liner.NewLiner()
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(history); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	for {
		input, err := line.Prompt("> ")
		if err != nil {
			return err
		}
		line.AppendHistory(input)

		compiler := driver.NewCompiler()
		compiler.OptimizationEnabled = !*noOpt
		program, err := compiler.RunSource(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)

			continue
		}

		for _, shader := range program.Shaders {
			glsl, err := codegen.GenerateGLSL(program, shader.Stage)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)

				continue
			}
			fmt.Printf("// %s\n%s", shader.Stage, glsl)
		}
	}
}
