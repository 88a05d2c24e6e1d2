package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/euclid-tools/densify/pkg/pipeline"
)

// stdoutPath selects standard output for a single-format command.
const stdoutPath = "-"

// basePath derives the base output path from the output and input file paths.
// If output is empty, the input's extension is replaced by suffix.
// If output has a format extension (.svg, .json, etc.), that extension is stripped.
func basePath(output, input, suffix string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to the file it is written to. A single format
// with an explicit output path is written to exactly that path.
func outputPaths(output, input, suffix string, formats []string) (map[string]string, error) {
	if output == stdoutPath && len(formats) != 1 {
		return nil, fmt.Errorf("output %q needs exactly one format, got %d", stdoutPath, len(formats))
	}

	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths, nil
	}

	base := basePath(output, input, suffix)
	for _, f := range formats {
		path := base + "." + f
		if filepath.Clean(path) == filepath.Clean(input) {
			return nil, fmt.Errorf("output %s would overwrite the input; use -o", path)
		}
		paths[f] = path
	}
	return paths, nil
}

// writeArtifacts writes artifacts in format order and returns the paths written.
func writeArtifacts(artifacts map[string][]byte, formats []string, paths map[string]string) ([]string, error) {
	var written []string
	for _, f := range formats {
		path := paths[f]
		if err := writeOutput(path, artifacts[f]); err != nil {
			return written, err
		}
		if path != stdoutPath {
			written = append(written, path)
		}
	}
	return written, nil
}

func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	return writeAndClose(out, path, data)
}

// writeAndClose writes data to out and closes it. A close failure after a
// successful write is reported, since it may mean the data never landed.
func writeAndClose(out io.WriteCloser, path string, data []byte) error {
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
