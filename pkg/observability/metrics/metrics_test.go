package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/flowter/pkg/observability"
)

func TestPipelineMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())
	ctx := context.Background()

	m.OnLayoutComplete(ctx, "vertical", 4, 3, time.Millisecond, nil)
	m.OnLayoutComplete(ctx, "vertical", 0, 0, time.Millisecond, errors.New("boom"))
	m.OnRenderComplete(ctx, "svg", 4096, time.Millisecond, nil)

	if got := testutil.ToFloat64(m.layouts.WithLabelValues("vertical", "ok")); got != 1 {
		t.Errorf("ok layouts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.layouts.WithLabelValues("vertical", "error")); got != 1 {
		t.Errorf("failed layouts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.renders.WithLabelValues("svg", "ok")); got != 1 {
		t.Errorf("svg renders = %v, want 1", got)
	}
}

func TestCacheMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())
	ctx := context.Background()

	m.OnCacheMiss(ctx, "artifact")
	m.OnCacheSet(ctx, "artifact", 10)
	m.OnCacheHit(ctx, "artifact")
	m.OnCacheHit(ctx, "artifact")

	if got := testutil.ToFloat64(m.cacheEvents.WithLabelValues("artifact", "hit")); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.cacheEvents.WithLabelValues("artifact", "miss")); got != 1 {
		t.Errorf("misses = %v, want 1", got)
	}
}

func TestServerMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())
	ctx := context.Background()

	m.OnRequest(ctx, "POST", "/v1/layout")
	if got := testutil.ToFloat64(m.inFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	m.OnResponse(ctx, "POST", "/v1/layout", 200, time.Millisecond)
	if got := testutil.ToFloat64(m.inFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/v1/layout", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
}

func TestRegister(t *testing.T) {
	defer observability.Reset()
	m := New(prometheus.NewRegistry())
	m.Register()
	if observability.Pipeline() != m || observability.Cache() != m || observability.Server() != m {
		t.Error("Register should install m for every hook category")
	}
}

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.OnCacheHit(context.Background(), "artifact")
	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "flowter_cache_events_total" {
			found = true
		}
	}
	if !found {
		t.Error("cache counter not registered")
	}
}
