package store

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	genpkg "dinotrek.io/internal/sim/world/terrain/gen"
)

type ChunkKey struct {
	CX int
	CY int
}

func (k ChunkKey) ID() string { return fmt.Sprintf("terrain-chunk-%d,%d,0", k.CX, k.CY) }

// Chunk is one square tile of terrain. Heights are indexed [row][col] where
// row 0 is the north edge and col 0 the west edge.
type Chunk struct {
	Key         ChunkKey
	ID          string
	Center      mgl64.Vec3
	Size        float64
	Segments    int
	Heights     [][]float64
	Texture     []byte // RGBA, TextureSize x TextureSize, row 0 at the south edge
	TextureSize int
	Color       string

	hash [32]byte
}

func (c *Chunk) VertexSize() int { return c.Segments + 1 }

func (c *Chunk) Digest() [32]byte {
	if c.hash == ([32]byte{}) {
		h := sha256.New()
		var tmp [8]byte
		for _, row := range c.Heights {
			for _, v := range row {
				binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
				h.Write(tmp[:])
			}
		}
		h.Write(c.Texture)
		copy(c.hash[:], h.Sum(nil))
	}
	return c.hash
}

// Layout fixes the chunk geometry. Sizes are world units (20 per meter).
type Layout struct {
	ChunkSize   float64
	SegmentSize float64
	TextureSize int
}

func DefaultLayout() Layout {
	return Layout{
		ChunkSize:   genpkg.UnitsPerMeter * genpkg.ChunkSizeMeters,
		SegmentSize: 32,
		TextureSize: 256,
	}
}

func (l Layout) Segments() int { return int(l.ChunkSize / l.SegmentSize) }

type ChunkStore struct {
	Gen    *genpkg.Generator
	Layout Layout
	// MaxChunks bounds the cache; 0 keeps every chunk ever generated.
	MaxChunks int
	Chunks    map[ChunkKey]*Chunk

	focus ChunkKey
}

func NewChunkStore(gen *genpkg.Generator, layout Layout) *ChunkStore {
	def := DefaultLayout()
	if layout.ChunkSize <= 0 {
		layout.ChunkSize = def.ChunkSize
	}
	if layout.SegmentSize <= 0 {
		layout.SegmentSize = def.SegmentSize
	}
	if layout.TextureSize <= 0 {
		layout.TextureSize = def.TextureSize
	}
	return &ChunkStore{
		Gen:    gen,
		Layout: layout,
		Chunks: map[ChunkKey]*Chunk{},
	}
}
