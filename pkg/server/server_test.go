package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lintrans/pkg/buildinfo"
	"github.com/matzehuels/lintrans/pkg/cache"
	"github.com/matzehuels/lintrans/pkg/errors"
	"github.com/matzehuels/lintrans/pkg/geom"
	"github.com/matzehuels/lintrans/pkg/observability"
	"github.com/matzehuels/lintrans/pkg/pipeline"
	"github.com/matzehuels/lintrans/pkg/render/sink"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(c, nil, logger)
	srv := httptest.NewServer(New(runner, nil).Handler())
	t.Cleanup(func() {
		srv.Close()
		runner.Close()
	})
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string, q url.Values) *http.Response {
	t.Helper()
	u := srv.URL + path
	if q != nil {
		u += "?" + q.Encode()
	}
	resp, err := http.Get(u)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readAll(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/healthz", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body := strings.TrimSpace(string(readAll(t, resp))); body != "ok" {
		t.Errorf("body = %q, want ok", body)
	}
	if got := resp.Header.Get("Server"); got != buildinfo.ServerHeader() {
		t.Errorf("Server = %q", got)
	}
	if resp.Header.Get(HeaderRequestID) == "" {
		t.Error("missing request id")
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv := newTestServer(t)
	const id = "7d444840-9dc0-11d1-b245-5ffdce74fad2"

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(HeaderRequestID); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}

	req.Header.Set(HeaderRequestID, "not-a-uuid")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if got := resp2.Header.Get(HeaderRequestID); got == "not-a-uuid" || got == "" {
		t.Errorf("malformed request id should be replaced, got %q", got)
	}
}

func TestVersion(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/version", nil)

	var info buildinfo.Info
	if err := json.Unmarshal(readAll(t, resp), &info); err != nil {
		t.Fatal(err)
	}
	if info.Version != buildinfo.Version {
		t.Errorf("version = %q", info.Version)
	}
}

func TestTransform(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name   string
		q      url.Values
		want   []geom.Point
		matrix [2][2]float64
	}{
		{"defaults", nil, []geom.Point{geom.Pt(2, 2), geom.Pt(6, 2), geom.Pt(4, 6)}, [2][2]float64{{2, 0}, {0, 2}}},
		{"custom", url.Values{"points": {"0,0;4,0;0,3"}, "scale": {"2,-1"}},
			[]geom.Point{geom.Pt(0, 0), geom.Pt(8, 0), geom.Pt(0, -3)}, [2][2]float64{{2, 0}, {0, -1}}},
		{"pipe separator", url.Values{"points": {"1,1|2,1|1,2"}, "scale": {"0"}},
			[]geom.Point{geom.Pt(0, 0), geom.Pt(0, 0), geom.Pt(0, 0)}, [2][2]float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, srv, "/api/v1/transform", tt.q)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", resp.StatusCode, readAll(t, resp))
			}
			var tr sink.Transform
			if err := json.Unmarshal(readAll(t, resp), &tr); err != nil {
				t.Fatal(err)
			}
			if len(tr.Transformed) != len(tt.want) {
				t.Fatalf("transformed = %v", tr.Transformed)
			}
			for i := range tt.want {
				if tr.Transformed[i] != tt.want[i] {
					t.Errorf("transformed[%d] = %v, want %v", i, tr.Transformed[i], tt.want[i])
				}
			}
			if tr.Matrix.Entries != tt.matrix {
				t.Errorf("matrix = %v, want %v", tr.Matrix.Entries, tt.matrix)
			}
		})
	}
}

func TestSteps(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/api/v1/steps", url.Values{"fps": {"10"}})

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var board sink.Storyboard
	if err := json.Unmarshal(readAll(t, resp), &board); err != nil {
		t.Fatal(err)
	}
	if len(board.Steps) != 30 || board.FPS != 10 {
		t.Errorf("steps = %d, fps = %d", len(board.Steps), board.FPS)
	}
}

func TestScenePNGCached(t *testing.T) {
	srv := newTestServer(t)
	q := url.Values{"width": {"160"}, "height": {"90"}, "t": {"5"}}

	first := get(t, srv, "/api/v1/scene.png", q)
	if first.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", first.StatusCode, readAll(t, first))
	}
	if first.Header.Get("Content-Type") != "image/png" {
		t.Errorf("Content-Type = %q", first.Header.Get("Content-Type"))
	}
	if first.Header.Get(HeaderCache) != "MISS" {
		t.Errorf("first X-Cache = %q", first.Header.Get(HeaderCache))
	}
	img, err := png.Decode(bytes.NewReader(readAll(t, first)))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 90 {
		t.Errorf("size = %v", b)
	}

	second := get(t, srv, "/api/v1/scene.png", q)
	if second.Header.Get(HeaderCache) != "HIT" {
		t.Errorf("second X-Cache = %q", second.Header.Get(HeaderCache))
	}
	if second.Header.Get("ETag") != first.Header.Get("ETag") {
		t.Error("ETag should be stable")
	}
}

func TestSceneETagPerArtifact(t *testing.T) {
	srv := newTestServer(t)
	queries := []url.Values{
		{"width": {"64"}, "height": {"36"}, "t": {"1"}},
		{"width": {"64"}, "height": {"36"}, "t": {"30"}},
		{"width": {"128"}, "height": {"72"}, "t": {"30"}},
	}

	seen := make(map[string]int)
	for i, q := range queries {
		resp := get(t, srv, "/api/v1/scene.png", q)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("query %d: status = %d: %s", i, resp.StatusCode, readAll(t, resp))
		}
		etag := resp.Header.Get("ETag")
		if etag == "" {
			t.Fatalf("query %d: missing ETag", i)
		}
		if j, ok := seen[etag]; ok {
			t.Errorf("queries %d and %d render different images but share ETag %s", j, i, etag)
		}
		seen[etag] = i
	}
}

func TestSceneSVG(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/api/v1/scene.svg", url.Values{"fill": {"#FF0000"}})
	body := string(readAll(t, resp))
	if !strings.HasPrefix(body, "<svg") {
		t.Fatalf("body = %.60q", body)
	}
	if !strings.Contains(body, "#FF0000") {
		t.Error("custom fill color missing")
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		q      url.Values
		status int
		code   errors.Code
	}{
		{"format", "/api/v1/scene.bmp", nil, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"points", "/api/v1/transform", url.Values{"points": {"1,1;oops"}}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"too few points", "/api/v1/transform", url.Values{"points": {"1,1;2,2"}}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"scale", "/api/v1/steps", url.Values{"scale": {"x"}}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"width", "/api/v1/scene.png", url.Values{"width": {"wide"}}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"dimensions", "/api/v1/scene.png", url.Values{"width": {"4"}}, http.StatusBadRequest, errors.ErrCodeInvalidDimensions},
		{"color", "/api/v1/scene.svg", url.Values{"fill": {"green"}}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"route", "/nope", nil, http.StatusNotFound, errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, srv, tt.path, tt.q)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body ErrorResponse
			if err := json.Unmarshal(readAll(t, resp), &body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", body.Code, tt.code, body.Message)
			}
			if body.Message == "" || body.RequestID == "" {
				t.Errorf("incomplete error body %+v", body)
			}
		})
	}
}

type recordingServerHooks struct {
	observability.NoopServerHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingServerHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestServerHooks(t *testing.T) {
	hooks := &recordingServerHooks{}
	observability.SetServerHooks(hooks)
	t.Cleanup(observability.Reset)

	srv := newTestServer(t)
	get(t, srv, "/healthz", nil)
	get(t, srv, "/api/v1/scene.bmp", nil)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.statuses) != 2 || hooks.statuses[0] != http.StatusOK || hooks.statuses[1] != http.StatusBadRequest {
		t.Errorf("statuses = %v", hooks.statuses)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(pipeline.NewRunner(nil, nil, logger), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestParseQuery(t *testing.T) {
	opts, err := ParseQuery(url.Values{
		"t": {"-1"}, "fps": {"24"}, "embed_font": {"true"}, "bg": {"#111111"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if opts.StillTime() != -1 || opts.FPS != 24 || !opts.EmbedFont || opts.Palette.Background != "#111111" {
		t.Errorf("opts = %+v", opts)
	}
	if opts.Vertices != nil || opts.Matrix != nil {
		t.Error("absent points and scale should keep defaults")
	}

	if _, err := ParseQuery(url.Values{"t": {"soon"}}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad t error = %v", err)
	}
	if _, err := ParseQuery(url.Values{"embed_font": {"maybe"}}); err == nil {
		t.Error("bad embed_font should fail")
	}
}

func TestNewScopesCacheKeys(t *testing.T) {
	runner := pipeline.NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	s := New(runner, nil)

	if _, ok := runner.Keyer.(*cache.ScopedKeyer); ok {
		t.Error("New should not modify the caller's runner")
	}
	opts := cache.SceneKeyOpts{Vertices: "1,1;3,1;2,3"}
	if got := s.runner.Keyer.SceneKey(opts); !strings.HasPrefix(got, KeyPrefix) {
		t.Errorf("SceneKey = %q, want prefix %q", got, KeyPrefix)
	}
	if s.logger != runner.Logger {
		t.Error("nil logger should fall back to the runner's logger")
	}
}
