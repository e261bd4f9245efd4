package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/flowter/pkg/cache"
	"github.com/matzehuels/flowter/pkg/core/render"
	"github.com/matzehuels/flowter/pkg/errors"
	"github.com/matzehuels/flowter/pkg/graph"
	"github.com/matzehuels/flowter/pkg/observability"
	"github.com/matzehuels/flowter/pkg/observability/metrics"
	"github.com/matzehuels/flowter/pkg/pipeline"
)

const chartYAML = `
nodes:
  start: {text: Start, symbol: ellipse}
  check: {text: "Ready?", symbol: rhombus}
  done: {text: Done}
edges:
  - {from: start, to: check}
  - {from: check, to: done, text: "yes"}
`

const chartJSON = `{"nodes":{"a":{"text":"A"},"b":{"text":"B"}},"edges":[{"from":"a","to":"b"}]}`

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	cfg.Logger = logger
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	ts := httptest.NewServer(New(runner, cfg).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
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

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var h healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.Version == "" {
		t.Errorf("health = %+v", h)
	}
}

func TestLayout(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := post(t, ts.URL+"/v1/layout", "application/yaml", chartYAML)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, readAll(t, resp))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	l, err := graph.UnmarshalLayout(readAll(t, resp))
	if err != nil {
		t.Fatalf("UnmarshalLayout() error: %v", err)
	}
	if l.NodeCount() != 3 {
		t.Errorf("nodes = %d, want 3", l.NodeCount())
	}
	if len(l.Edges) != 2 {
		t.Errorf("edges = %d, want 2", len(l.Edges))
	}
	if l.Mode != "vertical" {
		t.Errorf("mode = %q, want vertical", l.Mode)
	}
}

func TestLayoutModeOverride(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := post(t, ts.URL+"/v1/layout?mode=horizontal", "application/json", chartJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, readAll(t, resp))
	}
	l, err := graph.UnmarshalLayout(readAll(t, resp))
	if err != nil {
		t.Fatal(err)
	}
	if l.Mode != "horizontal" {
		t.Errorf("mode = %q, want horizontal", l.Mode)
	}
}

func TestRenderSVG(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := post(t, ts.URL+"/v1/render?input=yaml&background=%23fafafa", "text/plain", chartYAML)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, readAll(t, resp))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := readAll(t, resp)
	if !bytes.HasPrefix(body, []byte("<svg")) {
		t.Errorf("body does not start with <svg: %.40s", body)
	}
	if !bytes.Contains(body, []byte("#fafafa")) {
		t.Error("background color missing from SVG")
	}
}

func TestExport(t *testing.T) {
	ts := newTestServer(t, Config{})

	tests := []struct {
		query  string
		prefix string
		ctype  string
	}{
		{"", "flowchart TB", "text/plain; charset=utf-8"},
		{"?format=mermaid&mode=horizontal", "flowchart LR", "text/plain; charset=utf-8"},
		{"?format=dot", "digraph", "text/vnd.graphviz; charset=utf-8"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/export"+tt.query, "application/json", chartJSON)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body %s", resp.StatusCode, readAll(t, resp))
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.ctype {
				t.Errorf("Content-Type = %q, want %q", ct, tt.ctype)
			}
			body := strings.TrimSpace(string(readAll(t, resp)))
			if !strings.HasPrefix(body, tt.prefix) {
				t.Errorf("body = %.60q, want prefix %q", body, tt.prefix)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t, Config{})

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"render format", "/v1/render?format=gif", chartJSON, http.StatusBadRequest, "INVALID_FORMAT"},
		{"export format", "/v1/export?format=svg", chartJSON, http.StatusBadRequest, "INVALID_FORMAT"},
		{"input format", "/v1/layout?input=xml", chartJSON, http.StatusBadRequest, "INVALID_FORMAT"},
		{"malformed json", "/v1/layout", `{"nodes":`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"unknown node", "/v1/layout", `{"nodes":{"a":{}},"edges":[{"from":"a","to":"ghost"}]}`, http.StatusBadRequest, "UNKNOWN_NODE"},
		{"bad mode", "/v1/layout?mode=diagonal", chartJSON, http.StatusBadRequest, "INVALID_MODE"},
		{"bad scale", "/v1/render?scale=-1", chartJSON, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad bool", "/v1/render?no_edges=maybe", chartJSON, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.path, "application/json", tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			e := decodeError(t, resp)
			if e.Error.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", e.Error.Code, tt.code, e.Error.Message)
			}
			if e.RequestID == "" {
				t.Error("error response has no request id")
			}
		})
	}
}

func TestRenderWithoutConverter(t *testing.T) {
	prev := render.Converter
	render.Converter = "flowter-no-such-converter"
	t.Cleanup(func() { render.Converter = prev })

	ts := newTestServer(t, Config{})
	resp := post(t, ts.URL+"/v1/render?format=png", "application/json", chartJSON)
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want 415", resp.StatusCode)
	}
	if e := decodeError(t, resp); e.Error.Code != string(errors.ErrCodeUnsupported) {
		t.Errorf("code = %q", e.Error.Code)
	}
}

func TestBodyTooLarge(t *testing.T) {
	ts := newTestServer(t, Config{MaxBodyBytes: 16})

	resp := post(t, ts.URL+"/v1/layout", "application/json", chartJSON)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", resp.StatusCode)
	}
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("missing generated request id")
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-Id"); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/v2/nothing")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if e := decodeError(t, resp); e.Error.Code != "NOT_FOUND" {
		t.Errorf("code = %q", e.Error.Code)
	}

	resp2, err := http.Get(ts.URL + "/v1/layout")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/layout status = %d, want 405", resp2.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Cleanup(observability.Reset)

	reg := prometheus.NewRegistry()
	metrics.New(reg).Register()
	ts := newTestServer(t, Config{Gatherer: reg})

	post(t, ts.URL+"/v1/render", "application/json", chartJSON)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body := string(readAll(t, resp))

	for _, want := range []string{
		`flowter_http_requests_total{method="POST",route="/v1/render",status="200"} 1`,
		`flowter_renders_total{format="svg",result="ok"} 1`,
		`flowter_layouts_total{mode="vertical",result="ok"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 without a gatherer", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidSide, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeUnknownNode, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusUnsupportedMediaType},
		{errors.New(errors.ErrCodeTimeout, "x"), http.StatusGatewayTimeout},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(pipeline.NewRunner(nil, nil, logger), Config{Addr: "127.0.0.1:0", Logger: logger})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	cancel()

	if err := <-done; err != nil {
		t.Errorf("ListenAndServe() after cancel = %v, want nil", err)
	}
}
