package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/euclid-tools/densify/pkg/geom"
	pkgio "github.com/euclid-tools/densify/pkg/io"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "json,svg,png", []string{"json", "svg", "png"}},
		{"spaces and blanks", " json , ,dot", []string{"json", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, suffix string
		want                  string
	}{
		{"", "graph.json", ".dense", "graph.dense"},
		{"", "dir/graph.json", "", "dir/graph"},
		{"out.svg", "graph.json", ".dense", "out"},
		{"out.txt", "graph.json", ".dense", "out.txt"},
		{"out", "graph.json", ".dense", "out"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input, tt.suffix); got != tt.want {
			t.Errorf("basePath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.suffix, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		input   string
		suffix  string
		formats []string
		want    map[string]string
		wantErr bool
	}{
		{
			name:    "derived",
			input:   "g.json",
			suffix:  ".dense",
			formats: []string{"json", "svg"},
			want:    map[string]string{"json": "g.dense.json", "svg": "g.dense.svg"},
		},
		{
			name:    "explicit single",
			output:  "result.out",
			input:   "g.json",
			formats: []string{"json"},
			want:    map[string]string{"json": "result.out"},
		},
		{
			name:    "explicit base",
			output:  "out/g.svg",
			input:   "g.json",
			formats: []string{"svg", "png"},
			want:    map[string]string{"svg": "out/g.svg", "png": "out/g.png"},
		},
		{
			name:    "stdout",
			output:  "-",
			input:   "g.json",
			formats: []string{"dot"},
			want:    map[string]string{"dot": "-"},
		},
		{
			name:    "stdout with several formats",
			output:  "-",
			input:   "g.json",
			formats: []string{"dot", "svg"},
			wantErr: true,
		},
		{
			name:    "would overwrite input",
			input:   "g.json",
			formats: []string{"json"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputPaths(tt.output, tt.input, tt.suffix, tt.formats)
			if (err != nil) != tt.wantErr {
				t.Fatalf("outputPaths() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("outputPaths() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDensifyOptionsPrecedence(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Step = 5
	c.Config.Policy = "floor"
	c.Config.Workers = 3

	var f densifyFlags
	cmd := &cobra.Command{}
	addDensifyFlags(cmd, &f)
	if err := cmd.Flags().Parse([]string{"--policy", "truncate", "--skip-degenerate"}); err != nil {
		t.Fatal(err)
	}

	opts, err := c.densifyOptions(cmd, &f)
	if err != nil {
		t.Fatalf("densifyOptions() error = %v", err)
	}
	if opts.Step != 5 {
		t.Errorf("Step = %g, want config value 5", opts.Step)
	}
	if opts.Policy != "truncate" {
		t.Errorf("Policy = %q, want flag value truncate", opts.Policy)
	}
	if opts.Workers != 3 || !opts.SkipDegenerate {
		t.Errorf("Workers = %d, SkipDegenerate = %v", opts.Workers, opts.SkipDegenerate)
	}
}

func TestDensifyOptionsRejectsZeroStep(t *testing.T) {
	c := New(io.Discard, LogInfo)
	var f densifyFlags
	cmd := &cobra.Command{}
	addDensifyFlags(cmd, &f)
	if err := cmd.Flags().Parse([]string{"--step", "0"}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.densifyOptions(cmd, &f); err == nil {
		t.Error("densifyOptions() with --step 0 should fail")
	}
}

// execute runs the root command with isolated config and cache directories.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeGraph(t *testing.T, dir string, g geom.Graph) string {
	t.Helper()
	path := filepath.Join(dir, "graph.json")
	if err := pkgio.ExportJSON(g, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeGraph(t, dir, geom.Graph{geom.Seg(geom.Pt(0, 0), geom.Pt(10, 0))})

	if err := execute(t, "run", input, "--step", "3", "--format", "json,dot"); err != nil {
		t.Fatalf("run error = %v", err)
	}

	dense, err := pkgio.ImportJSON(filepath.Join(dir, "graph.dense.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(dense) != 4 {
		t.Errorf("dense graph has %d segments, want 4", len(dense))
	}

	dot, err := os.ReadFile(filepath.Join(dir, "graph.dense.dot"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dot), "layout=neato") {
		t.Errorf("dot output = %s", dot)
	}
}

func TestRunCommandErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeGraph(t, dir, geom.Graph{geom.Seg(geom.Pt(0, 0), geom.Pt(1, 0))})

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"run", filepath.Join(dir, "missing.json")}},
		{"negative step", []string{"run", input, "--step", "-1"}},
		{"bad format", []string{"run", input, "--format", "gif"}},
		{"bad policy", []string{"run", input, "--policy", "round"}},
		{"no args", []string{"run"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, tt.args...); err == nil {
				t.Errorf("%v should fail", tt.args)
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeGraph(t, dir, geom.Graph{geom.Seg(geom.Pt(0, 0), geom.Pt(0, 4))})
	out := filepath.Join(dir, "drawing.dot")

	if err := execute(t, "render", input, "--densify", "--step", "1", "--format", "dot", "-o", out); err != nil {
		t.Fatalf("render error = %v", err)
	}

	dot, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(dot), " -- p"); got != 4 {
		t.Errorf("dot has %d dense edges, want 4:\n%s", got, dot)
	}
	if !strings.Contains(string(dot), "style=dashed") {
		t.Errorf("dot should draw the input underneath:\n%s", dot)
	}
}

func TestStatsCommand(t *testing.T) {
	input := writeGraph(t, t.TempDir(), geom.Graph{
		geom.Seg(geom.Pt(0, 0), geom.Pt(10, 0)),
		geom.Seg(geom.Pt(1, 1), geom.Pt(1, 1)),
	})
	if err := execute(t, "stats", input, "--step", "2"); err != nil {
		t.Errorf("stats error = %v", err)
	}
}

func TestCacheCommands(t *testing.T) {
	if err := execute(t, "cache", "path"); err != nil {
		t.Errorf("cache path error = %v", err)
	}
	if err := execute(t, "cache", "info"); err != nil {
		t.Errorf("cache info error = %v", err)
	}
	if err := execute(t, "cache", "clear"); err != nil {
		t.Errorf("cache clear error = %v", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	if err := execute(t, "completion", "bash"); err != nil {
		t.Errorf("completion error = %v", err)
	}
	if err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("completion with an unknown shell should fail")
	}
}

var errFlush = errors.New("flush failed")

type closeRecorder struct {
	bytes.Buffer
	writeErr, closeErr error
	closed             bool
}

func (w *closeRecorder) Write(p []byte) (int, error) {
	if w.writeErr != nil {
		return 0, w.writeErr
	}
	return w.Buffer.Write(p)
}

func (w *closeRecorder) Close() error {
	w.closed = true
	return w.closeErr
}

func TestWriteAndClose(t *testing.T) {
	tests := []struct {
		name     string
		writeErr error
		closeErr error
		want     error
	}{
		{"ok", nil, nil, nil},
		{"close error reported", nil, errFlush, errFlush},
		{"write error wins", errFlush, errors.New("close"), errFlush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &closeRecorder{writeErr: tt.writeErr, closeErr: tt.closeErr}
			err := writeAndClose(w, "out.json", []byte("{}"))
			if !errors.Is(err, tt.want) || (tt.want == nil && err != nil) {
				t.Errorf("writeAndClose() error = %v, want %v", err, tt.want)
			}
			if !w.closed {
				t.Error("writeAndClose() did not close the writer")
			}
		})
	}
}
