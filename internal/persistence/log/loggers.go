package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"dinotrek.io/internal/sim/world"
)

// SegmentTicks is how many consecutive ticks share one journal file: an
// hour of play at 20 Hz.
const SegmentTicks = 72000

// journal appends JSON lines to zstd segments named by their first tick,
// <dir>/<prefix>-000000072000.jsonl.zst. It owns dir: segments left by an
// earlier session are removed before the first write. Not safe for
// concurrent use.
type journal struct {
	dir    string
	prefix string
	span   uint64

	cleared bool
	seg     uint64
	f       *os.File
	zw      *zstd.Encoder
	bw      *bufio.Writer
}

func newJournal(dir, prefix string, span uint64) *journal {
	if span == 0 {
		span = SegmentTicks
	}
	return &journal{dir: dir, prefix: prefix, span: span}
}

func (j *journal) append(tick uint64, v any) error {
	line, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if seg := tick - tick%j.span; j.f == nil || seg != j.seg {
		if err := j.openSegment(seg); err != nil {
			return err
		}
	}
	if _, err := j.bw.Write(append(line, '\n')); err != nil {
		return err
	}
	return j.bw.Flush()
}

func (j *journal) openSegment(seg uint64) error {
	if err := j.closeSegment(); err != nil {
		return err
	}
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return err
	}
	if !j.cleared {
		stale, err := Files(j.dir, j.prefix)
		if err != nil {
			return err
		}
		for _, p := range stale {
			if err := os.Remove(p); err != nil {
				return err
			}
		}
		j.cleared = true
	}
	path := filepath.Join(j.dir, fmt.Sprintf("%s-%012d.jsonl.zst", j.prefix, seg))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	j.f, j.zw, j.bw, j.seg = f, zw, bufio.NewWriterSize(zw, 128*1024), seg
	return nil
}

func (j *journal) closeSegment() error {
	if j.f == nil {
		return nil
	}
	err := j.bw.Flush()
	if cerr := j.zw.Close(); err == nil {
		err = cerr
	}
	if cerr := j.f.Close(); err == nil {
		err = cerr
	}
	j.f, j.zw, j.bw = nil, nil, nil
	return err
}

// TickLogger journals one entry per simulated tick under <worldDir>/ticks.
// Replays pair entries with ticks one to one, so an entry that does not
// advance the tick is refused.
type TickLogger struct {
	mu   sync.Mutex
	j    *journal
	last world.TickLogEntry
}

func NewTickLogger(worldDir string) *TickLogger {
	return &TickLogger{j: newJournal(filepath.Join(worldDir, "ticks"), "ticks", SegmentTicks)}
}

func (l *TickLogger) WriteTick(e world.TickLogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.last.Tick != 0 && e.Tick <= l.last.Tick {
		return fmt.Errorf("tick %d does not follow %d", e.Tick, l.last.Tick)
	}
	if err := l.j.append(e.Tick, e); err != nil {
		return err
	}
	l.last = e
	return nil
}

// Last is the newest entry written; zero before the first tick.
func (l *TickLogger) Last() world.TickLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}

func (l *TickLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.j.closeSegment()
}

// EventLogger journals spawn, despawn, interaction and outcome entries under
// <worldDir>/events, filed by the tick they happened on.
type EventLogger struct {
	mu     sync.Mutex
	j      *journal
	counts map[string]int
}

func NewEventLogger(worldDir string) *EventLogger {
	return &EventLogger{
		j:      newJournal(filepath.Join(worldDir, "events"), "events", SegmentTicks),
		counts: map[string]int{},
	}
}

func (l *EventLogger) WriteEvent(e world.EventEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.j.append(e.Tick, e); err != nil {
		return err
	}
	l.counts[e.Kind]++
	return nil
}

// Counts returns how many events of each kind this logger has written.
func (l *EventLogger) Counts() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]int, len(l.counts))
	for k, n := range l.counts {
		out[k] = n
	}
	return out
}

func (l *EventLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.j.closeSegment()
}
