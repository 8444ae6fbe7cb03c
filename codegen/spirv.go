package codegen

import (
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"

	"github.com/jamesgrm-mccallum/vulkan-shader-complier/ast"
)

// Magic is the first word of every valid SPIR-V module.
const Magic = 0x07230203

const validatorCommand = "glslangValidator"

// tempCounter makes temp-file names unique when compiler instances share a
// process.
var tempCounter atomic.Int64

// TranslateError reports a failed translator invocation. It carries the
// translator's combined output and the full generated GLSL, since the
// translator's line numbers refer to it.
type TranslateError struct {
	Output string
	GLSL   string
}

func (e *TranslateError) Error() string {
	return fmt.Sprintf("GLSL compilation failed\noutput: %sgenerated GLSL:\n%s", e.Output, e.GLSL)
}

// CompileToSPIRV writes glsl to a temporary file, invokes the external
// translator, and returns the resulting SPIR-V word sequence. Temporary
// files are removed on every exit path.
func CompileToSPIRV(glsl string, stage ast.Stage) ([]uint32, error) {
	ext, err := stageExtension(stage)
	if err != nil {
		return nil, err
	}

	inputPath := tempFilePath(ext)
	outputPath := tempFilePath("spv")
	defer os.Remove(inputPath)
	defer os.Remove(outputPath)

	if err := os.WriteFile(inputPath, []byte(glsl), 0o644); err != nil {
		return nil, fmt.Errorf("write temporary GLSL file: %w", err)
	}

	cmd := exec.Command(validatorCommand, "-V", inputPath, "-o", outputPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, &TranslateError{Output: string(out), GLSL: glsl}
	}

	return readSPIRVFile(outputPath)
}

// readSPIRVFile loads a SPIR-V binary as little-endian 32-bit words and
// checks the magic number.
func readSPIRVFile(path string) ([]uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read SPIR-V file: %w", err)
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid SPIR-V file: size %d is not a multiple of 4", len(data))
	}

	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}

	if len(words) == 0 || words[0] != Magic {
		return nil, fmt.Errorf("invalid SPIR-V file: incorrect magic number")
	}

	return words, nil
}

// stageExtension maps a stage to the source-file extension the translator
// uses to pick the pipeline stage.
func stageExtension(stage ast.Stage) (string, error) {
	switch stage {
	case ast.Vertex:
		return "vert", nil
	case ast.Fragment:
		return "frag", nil
	}

	return "", fmt.Errorf("unknown shader stage %q", stage)
}

func tempFilePath(ext string) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("shader_%d_%d.%s", os.Getpid(), tempCounter.Add(1), ext))
}
