package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/euclid-tools/densify/pkg/cache"
	"github.com/euclid-tools/densify/pkg/errors"
	"github.com/euclid-tools/densify/pkg/geom"
	"github.com/euclid-tools/densify/pkg/observability"
)

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func seg(x0, y0, x1, y1 float64) geom.Segment {
	return geom.Seg(geom.Pt(x0, y0), geom.Pt(x1, y1))
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	g := geom.Graph{seg(0, 0, 10, 0)}
	opts := Options{Step: 3, Formats: []string{FormatJSON, FormatDOT}}

	res, err := r.Execute(ctx, g, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := geom.Graph{
		seg(0, 0, 3, 0),
		seg(3, 0, 6, 0),
		seg(6, 0, 9, 0),
		seg(9, 0, 10, 0),
	}
	if diff := cmp.Diff(want, res.Dense); diff != "" {
		t.Errorf("Execute() dense mismatch (-want +got):\n%s", diff)
	}
	if res.RunID == "" {
		t.Error("RunID should be set")
	}
	if res.GraphHash == "" || res.DenseHash == "" || res.GraphHash == res.DenseHash {
		t.Errorf("hashes = %q, %q; want distinct non-empty", res.GraphHash, res.DenseHash)
	}
	if res.Stats.Input != 1 || res.Stats.Output != 4 {
		t.Errorf("Stats = %+v, want 1 input, 4 output", res.Stats.Stats)
	}
	if res.CacheInfo.DensifyHit || res.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", res.CacheInfo)
	}
	if !strings.Contains(string(res.Artifacts[FormatJSON]), `"segments"`) {
		t.Errorf("json artifact = %s", res.Artifacts[FormatJSON])
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), "layout=neato") {
		t.Errorf("dot artifact = %s", res.Artifacts[FormatDOT])
	}

	again, err := r.Execute(ctx, g, opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !again.CacheInfo.DensifyHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", again.CacheInfo)
	}
	if diff := cmp.Diff(res.Dense, again.Dense); diff != "" {
		t.Errorf("cached dense mismatch (-first +second):\n%s", diff)
	}
	if again.Stats.Stats != res.Stats.Stats {
		t.Errorf("cached stats = %+v, want %+v", again.Stats.Stats, res.Stats.Stats)
	}
	if again.RunID == res.RunID {
		t.Error("each run should get a new RunID")
	}
}

func TestRunnerDensifyCacheKeyedByOptions(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)
	g := geom.Graph{seg(0, 0, 10, 0)}

	if _, _, hit, err := r.DensifyWithCacheInfo(ctx, g, Options{Step: 3}); err != nil || hit {
		t.Fatalf("first DensifyWithCacheInfo() hit = %v, err = %v", hit, err)
	}
	dense, _, hit, err := r.DensifyWithCacheInfo(ctx, g, Options{Step: 5})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("different step should miss the cache")
	}
	if len(dense) != 2 {
		t.Errorf("step 5 produced %d segments, want 2", len(dense))
	}

	// Workers never changes output, so it shares the entry.
	if _, _, hit, _ := r.DensifyWithCacheInfo(ctx, g, Options{Step: 5, Workers: 4}); !hit {
		t.Error("worker count should not affect the cache key")
	}
}

func TestRunnerRefresh(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	g := geom.Graph{seg(0, 0, 4, 4)}

	if _, err := r.Execute(ctx, g, Options{Step: 1}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, g, Options{Step: 1, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.DensifyHit || res.CacheInfo.RenderHit {
		t.Errorf("refresh CacheInfo = %+v, want misses", res.CacheInfo)
	}
}

func TestRunnerCorruptCacheEntry(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	g := geom.Graph{seg(0, 0, 2, 0)}
	opts := Options{Step: 1}
	if err := opts.ValidateForDensify(); err != nil {
		t.Fatal(err)
	}

	key := r.Keyer.DenseKey(graphHash(g), opts.DenseKeyOpts())
	c.data[key] = []byte("not json")

	dense, _, hit, err := r.DensifyWithCacheInfo(ctx, g, opts)
	if err != nil {
		t.Fatalf("DensifyWithCacheInfo() error = %v", err)
	}
	if hit {
		t.Error("corrupt entry should be treated as a miss")
	}
	if len(dense) != 2 {
		t.Errorf("got %d segments, want 2", len(dense))
	}
}

func TestRunnerInvalidInput(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	g := geom.Graph{seg(0, 0, 1, 0)}

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"step", Options{Step: -2}, errors.ErrCodeInvalidStep},
		{"policy", Options{Step: 1, Policy: "ceil"}, errors.ErrCodeInvalidPolicy},
		{"format", Options{Step: 1, Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(ctx, g, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() = %v, want code %s", err, tt.code)
			}
		})
	}

	bad := geom.Graph{seg(0, 0, 1e12, 0)}
	if _, err := r.Execute(ctx, bad, Options{Step: 1}); !errors.Is(err, errors.ErrCodeTooManyPoints) {
		t.Errorf("Execute() = %v, want TOO_MANY_POINTS", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	mu      sync.Mutex
	events  []string
	outputs int
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnDensifyStart(context.Context, int, float64) { h.record("densify") }
func (h *recordingHooks) OnDensifyComplete(_ context.Context, segments, _ int, _ time.Duration, _ error) {
	h.outputs = segments
}
func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.record("render") }
func (h *recordingHooks) OnCacheHit(_ context.Context, kind string) {
	h.record("hit:" + kind)
}
func (h *recordingHooks) OnCacheMiss(_ context.Context, kind string) {
	h.record("miss:" + kind)
}

func TestRunnerHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)

	ctx := context.Background()
	r := NewRunner(newMemCache(), cache.NewScopedKeyer(nil, "test:"), nil)
	g := geom.Graph{seg(0, 0, 0, 3)}

	if _, err := r.Execute(ctx, g, Options{Step: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Execute(ctx, g, Options{Step: 1}); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"miss:dense", "densify", "miss:artifact", "render",
		"hit:dense", "hit:artifact",
	}
	if diff := cmp.Diff(want, h.events); diff != "" {
		t.Errorf("hook events mismatch (-want +got):\n%s", diff)
	}
	if h.outputs != 3 {
		t.Errorf("OnDensifyComplete segments = %d, want 3", h.outputs)
	}
}
