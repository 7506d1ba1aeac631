package worldtest

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"dinotrek.io/internal/protocol"
	"dinotrek.io/internal/sim/encoding"
	world "dinotrek.io/internal/sim/world"
	"dinotrek.io/internal/sim/world/terrain/store"
)

func TestRun_PublishesFramesAndChunks(t *testing.T) {
	cats := LoadCatalogs(t)
	cfg := testConfig()
	cfg.ChunkRadius = 0
	w, err := world.New(cfg, cats)
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	if _, err := w.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	frames := make(chan []byte, 1)
	chunks := make(chan []byte, 4)
	w.Subscribe() <- world.FrameSubscription{ID: "obs", Out: frames, Chunks: chunks}
	w.Inbox() <- world.CommandEnvelope{Commands: []string{"move forward"}}

	timeout := time.After(5 * time.Second)
	var cm protocol.ChunksMsg
	for cm.Type == "" {
		select {
		case b := <-chunks:
			if err := json.Unmarshal(b, &cm); err != nil {
				t.Fatalf("chunks: %v", err)
			}
		case <-timeout:
			t.Fatalf("no CHUNKS received")
		}
	}
	if len(cm.Chunks) != 1 || cm.Chunks[0].ID != "terrain-chunk-0,0,0" {
		t.Fatalf("chunks=%+v", cm.Chunks)
	}
	heights, err := store.DecodeHeights(cm.Chunks[0].HeightsZstd, cm.Chunks[0].VertexSize)
	if err != nil || len(heights) != 81 {
		t.Fatalf("heights: %v len=%d", err, len(heights))
	}
	tc := cm.Chunks[0]
	ids, err := encoding.DecodeRLE(tc.TextureRLE, tc.TextureSize*tc.TextureSize)
	if err != nil || tc.TextureSize != 16 {
		t.Fatalf("texture: %v size=%d", err, tc.TextureSize)
	}
	if _, err := encoding.ExpandRGBA(tc.TexturePalette, ids); err != nil {
		t.Fatalf("texture palette: %v", err)
	}

	var f protocol.FrameMsg
	for f.Tick < 3 {
		select {
		case b := <-frames:
			if err := json.Unmarshal(b, &f); err != nil {
				t.Fatalf("frame: %v", err)
			}
		case <-timeout:
			t.Fatalf("no frames after tick %d", f.Tick)
		}
	}
	if f.Type != protocol.TypeFrame || len(f.Entities) == 0 {
		t.Fatalf("frame=%+v", f)
	}

	// The same chunk is never sent twice.
	select {
	case b := <-chunks:
		t.Fatalf("chunk resent: %s", b)
	default:
	}

	w.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after Stop")
	}
	if m := w.Metrics(); m.Tick < 3 || m.Subscribers != 1 || m.LoadedChunks != 1 {
		t.Fatalf("metrics=%+v", m)
	}
}
