package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dinotrek.io/internal/sim/catalogs"
	"dinotrek.io/internal/sim/world"
	"dinotrek.io/internal/sim/world/terrain/store"
)

func newServerWorld(t *testing.T) *world.World {
	t.Helper()
	cats, err := catalogs.Load("../../configs")
	if err != nil {
		t.Fatalf("catalogs: %v", err)
	}
	w, err := world.New(world.WorldConfig{
		ID:         "srv",
		TickRateHz: 20,
		Seed:       7,
		Layout:     store.Layout{TextureSize: 16},
	}, cats)
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	if _, err := w.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	w.StepOnce(nil, 50)
	return w
}

func TestMetricsHandler(t *testing.T) {
	w := newServerWorld(t)
	rr := httptest.NewRecorder()
	metricsHandler(w, nil)(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rr.Body.String()
	for _, want := range []string{
		`dinotrek_world_tick{world="srv"} 1`,
		`dinotrek_session_outcome{world="srv",outcome="exploring"} 1`,
		`# TYPE dinotrek_world_step_ms gauge`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in:\n%s", want, body)
		}
	}
	if strings.Contains(body, "dinotrek_index_") {
		t.Fatalf("index metrics without an index")
	}
}

func TestAdminState_LoopbackOnly(t *testing.T) {
	w := newServerWorld(t)
	mux := newMux(w, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/v1/state", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("remote code=%d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/v1/state", nil)
	req.RemoteAddr = "127.0.0.1:5555"
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("loopback code=%d", rr.Code)
	}
	var resp struct {
		WorldID string             `json:"world_id"`
		Seed    int64              `json:"seed"`
		Metrics world.WorldMetrics `json:"metrics"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.WorldID != "srv" || resp.Seed != 7 || resp.Metrics.Tick != 1 {
		t.Fatalf("resp=%+v", resp)
	}
	if resp.Metrics.Digest == "" || resp.Metrics.Digest != w.StateDigest() {
		t.Fatalf("digest=%q want %q", resp.Metrics.Digest, w.StateDigest())
	}
}

type recordingTicks struct{ n int }

func (r *recordingTicks) WriteTick(world.TickLogEntry) error { r.n++; return nil }

type recordingEvents struct{ kinds []string }

func (r *recordingEvents) WriteEvent(e world.EventEntry) error {
	r.kinds = append(r.kinds, e.Kind)
	return nil
}

func TestMultiLoggers_FanOut(t *testing.T) {
	a, b := &recordingTicks{}, &recordingTicks{}
	mt := multiTickLogger{a: a, b: b}
	_ = mt.WriteTick(world.TickLogEntry{Tick: 1})
	_ = multiTickLogger{a: a}.WriteTick(world.TickLogEntry{Tick: 2})
	if a.n != 2 || b.n != 1 {
		t.Fatalf("a=%d b=%d", a.n, b.n)
	}

	ea, eb := &recordingEvents{}, &recordingEvents{}
	_ = multiEventLogger{a: ea, b: eb}.WriteEvent(world.EventEntry{Kind: world.EventSpawn})
	if len(ea.kinds) != 1 || len(eb.kinds) != 1 || eb.kinds[0] != world.EventSpawn {
		t.Fatalf("a=%v b=%v", ea.kinds, eb.kinds)
	}
}

func TestIsLoopbackRemote(t *testing.T) {
	cases := map[string]bool{
		"127.0.0.1:80": true,
		"[::1]:80":     true,
		"10.0.0.1:80":  false,
		"garbage":      false,
	}
	for in, want := range cases {
		if got := isLoopbackRemote(in); got != want {
			t.Fatalf("%s: got %v", in, got)
		}
	}
}
