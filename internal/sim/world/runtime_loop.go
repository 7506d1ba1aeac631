package world

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"time"

	"dinotrek.io/internal/protocol"
	"dinotrek.io/internal/sim/encoding"
	"dinotrek.io/internal/sim/world/logic/mathx"
	"dinotrek.io/internal/sim/world/terrain/store"
)

// CommandEnvelope carries the commands a client is holding down. The newest
// envelope replaces the previous one and stays in effect until replaced.
type CommandEnvelope struct {
	Commands []string
}

// FrameSubscription registers Out to receive every FRAME the loop produces.
// Slow readers only ever see the latest frame. When Chunks is set, terrain
// the subscriber has not seen yet is sent there as CHUNKS messages, at most
// MaxChunks per tick and within ChunkRadius of the character.
type FrameSubscription struct {
	ID  string
	Out chan []byte

	Chunks      chan []byte
	ChunkRadius int
	MaxChunks   int
}

type subscriber struct {
	FrameSubscription
	sent map[store.ChunkKey]bool
}

func (w *World) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(w.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	defer close(w.done)

	dtMS := 1000 / float64(w.cfg.TickRateHz)
	var held []string

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stop:
			return nil
		case sub := <-w.subscribe:
			w.subscribers[sub.ID] = &subscriber{FrameSubscription: sub, sent: map[store.ChunkKey]bool{}}
		case id := <-w.unsubscribe:
			delete(w.subscribers, id)
		case env := <-w.inbox:
			held = env.Commands
		case <-ticker.C:
			w.StepOnce(held, dtMS)
			w.publishFrame()
		}
	}
}

func (w *World) Stop() { close(w.stop) }

// Done is closed once Run has returned.
func (w *World) Done() <-chan struct{} { return w.done }

// Leave drops a frame subscription. It waits for the loop to take the
// request unless Run has already returned.
func (w *World) Leave(id string) {
	select {
	case w.unsubscribe <- id:
	case <-w.done:
	}
}

func (w *World) publishFrame() {
	if len(w.subscribers) == 0 {
		return
	}
	b, err := json.Marshal(w.BuildFrame())
	if err != nil {
		w.log.WithError(err).Error("frame encode")
		return
	}
	for _, sub := range w.subscribers {
		if sub.Chunks != nil {
			w.publishChunks(sub)
		}
		sendLatest(sub.Out, b)
	}
}

// publishChunks sends visible chunks the subscriber lacks. A chunk counts as
// sent only once the message was accepted, so a full channel retries later.
func (w *World) publishChunks(sub *subscriber) {
	center, err := w.chunks.ChunkKeyAt(w.focus())
	if err != nil {
		return
	}
	msg := protocol.ChunksMsg{
		Type:            protocol.TypeChunks,
		ProtocolVersion: protocol.Version,
		Tick:            w.tick.Load(),
	}
	var keys []store.ChunkKey
	for _, c := range w.visibleChunks {
		if sub.sent[c.Key] {
			continue
		}
		if sub.ChunkRadius > 0 && (mathx.AbsInt(c.Key.CX-center.CX) > sub.ChunkRadius || mathx.AbsInt(c.Key.CY-center.CY) > sub.ChunkRadius) {
			continue
		}
		if sub.MaxChunks > 0 && len(keys) >= sub.MaxChunks {
			break
		}
		data, err := chunkData(c)
		if err != nil {
			w.log.WithError(err).WithField("chunk", c.ID).Warn("chunk encode")
			continue
		}
		msg.Chunks = append(msg.Chunks, data)
		keys = append(keys, c.Key)
	}
	if len(keys) == 0 {
		return
	}
	b, err := json.Marshal(msg)
	if err != nil {
		w.log.WithError(err).Error("chunks encode")
		return
	}
	select {
	case sub.Chunks <- b:
		for _, k := range keys {
			sub.sent[k] = true
		}
	default:
	}
}

func chunkData(c *store.Chunk) (protocol.ChunkData, error) {
	heights, err := store.EncodeHeights(c)
	if err != nil {
		return protocol.ChunkData{}, err
	}
	palette, ids, err := encoding.IndexRGBA(c.Texture)
	if err != nil {
		return protocol.ChunkData{}, err
	}
	d := c.Digest()
	return protocol.ChunkData{
		ID:          c.ID,
		CX:          c.Key.CX,
		CY:          c.Key.CY,
		Center:      vec(c.Center),
		Size:        c.Size,
		VertexSize:  c.VertexSize(),
		Color:       c.Color,
		HeightsZstd: heights,
		Digest:      hex.EncodeToString(d[:]),

		TextureSize:    c.TextureSize,
		TexturePalette: palette,
		TextureRLE:     encoding.EncodeRLE(ids),
	}, nil
}

func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	// Drop one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}
