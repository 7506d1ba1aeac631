package indexdb

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"dinotrek.io/internal/sim/catalogs"
	"dinotrek.io/internal/sim/tuning"
	"dinotrek.io/internal/sim/world"
)

func TestSQLiteIndex_QueueDropStats(t *testing.T) {
	s := &SQLiteIndex{ch: make(chan req, 1)}
	s.ch <- req{kind: reqTick, tick: world.TickLogEntry{Tick: 1}}

	_ = s.WriteTick(world.TickLogEntry{Tick: 2})
	_ = s.WriteEvent(world.EventEntry{Tick: 2})

	st := s.Stats()
	if st.DropTickTotal != 1 {
		t.Fatalf("DropTickTotal=%d want=1", st.DropTickTotal)
	}
	if st.DropEventTotal != 1 {
		t.Fatalf("DropEventTotal=%d want=1", st.DropEventTotal)
	}
	if st.QueueDepth != 1 || st.QueueCapacity != 1 {
		t.Fatalf("queue stats mismatch: depth=%d cap=%d", st.QueueDepth, st.QueueCapacity)
	}
}

func TestSQLiteIndex_WriteAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index", "world.sqlite")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	cats, err := catalogs.Load("../../../configs")
	if err != nil {
		t.Fatalf("catalogs: %v", err)
	}
	if err := s.UpsertCatalogs("../../../configs", cats, tuning.Defaults()); err != nil {
		t.Fatalf("upsert catalogs: %v", err)
	}

	for i := uint64(1); i <= 3; i++ {
		_ = s.WriteTick(world.TickLogEntry{Tick: i, DtMS: 50, Commands: []string{"move forward", "jump"}, Outcome: "exploring", Digest: fmt.Sprintf("d%d", i)})
	}
	_ = s.WriteEvent(world.EventEntry{Tick: 2, Kind: world.EventSpawn, EntityID: "a"})
	_ = s.WriteEvent(world.EventEntry{Tick: 2, Kind: world.EventSpawn, EntityID: "b"})
	_ = s.WriteEvent(world.EventEntry{Tick: 3, Kind: world.EventDespawn, EntityID: "a"})

	// Close drains the queue and commits.
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.WriteTick(world.TickLogEntry{Tick: 9}); err != nil {
		t.Fatalf("write after close: %v", err)
	}

	s2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	ctx := context.Background()

	d, err := s2.TickDigest(ctx, 2)
	if err != nil || d != "d2" {
		t.Fatalf("digest=%q err=%v", d, err)
	}
	if d, err := s2.TickDigest(ctx, 99); err != nil || d != "" {
		t.Fatalf("missing tick digest=%q err=%v", d, err)
	}
	counts, err := s2.EventCounts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[world.EventSpawn] != 2 || counts[world.EventDespawn] != 1 {
		t.Fatalf("counts=%v", counts)
	}

	var n int
	if err := s2.db.QueryRow(`SELECT COUNT(*) FROM catalogs`).Scan(&n); err != nil || n != 3 {
		t.Fatalf("catalog rows=%d err=%v", n, err)
	}
	if st := s2.Stats(); st.WriteErrorTotal != 0 {
		t.Fatalf("stats=%+v", st)
	}
}
