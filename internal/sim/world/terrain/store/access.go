package store

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	genpkg "dinotrek.io/internal/sim/world/terrain/gen"
	"dinotrek.io/internal/sim/world/logic/mathx"
)

func (s *ChunkStore) ChunkCoord(n float64) (int, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("chunk coord of %v: %w", n, genpkg.ErrInvalidCoordinate)
	}
	return mathx.RoundHalfUp(n / s.Layout.ChunkSize), nil
}

func (s *ChunkStore) ChunkKeyAt(pos mgl64.Vec3) (ChunkKey, error) {
	cx, err := s.ChunkCoord(pos.X())
	if err != nil {
		return ChunkKey{}, err
	}
	cy, err := s.ChunkCoord(pos.Y())
	if err != nil {
		return ChunkKey{}, err
	}
	return ChunkKey{CX: cx, CY: cy}, nil
}

func (s *ChunkStore) CenterOf(k ChunkKey) mgl64.Vec3 {
	return mgl64.Vec3{float64(k.CX) * s.Layout.ChunkSize, float64(k.CY) * s.Layout.ChunkSize, 0}
}

// TopLeftOf is the north-west corner: x grows east, y grows north.
func (s *ChunkStore) TopLeftOf(k ChunkKey) mgl64.Vec3 {
	half := s.Layout.ChunkSize / 2
	c := s.CenterOf(k)
	return mgl64.Vec3{c.X() - half, c.Y() + half, 0}
}

func (s *ChunkStore) HeightAt(x, y float64) (float64, error) {
	return s.Gen.CalcTerrainHeight(x, y)
}

func (s *ChunkStore) LoadedChunkKeys() []ChunkKey {
	keys := make([]ChunkKey, 0, len(s.Chunks))
	for k := range s.Chunks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CX != keys[j].CX {
			return keys[i].CX < keys[j].CX
		}
		return keys[i].CY < keys[j].CY
	})
	return keys
}

func (s *ChunkStore) GetOrGenChunk(k ChunkKey) (*Chunk, error) {
	if ch, ok := s.Chunks[k]; ok {
		return ch, nil
	}
	ch, err := s.MakeTerrainChunk(k)
	if err != nil {
		return nil, err
	}
	s.Chunks[k] = ch
	s.evict()
	return ch, nil
}

// MakeTerrainChunks returns the (2r+1)² square of chunks around pos, column
// by column from west to east, generating any that are missing.
func (s *ChunkStore) MakeTerrainChunks(pos mgl64.Vec3, radius int) ([]*Chunk, error) {
	center, err := s.ChunkKeyAt(pos)
	if err != nil {
		return nil, err
	}
	if radius < 0 {
		radius = 0
	}
	s.focus = center
	out := make([]*Chunk, 0, (2*radius+1)*(2*radius+1))
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			ch, err := s.GetOrGenChunk(ChunkKey{CX: center.CX + dx, CY: center.CY + dy})
			if err != nil {
				return nil, err
			}
			out = append(out, ch)
		}
	}
	return out, nil
}

// evict drops the chunks farthest from the last requested center until the
// cache fits MaxChunks.
func (s *ChunkStore) evict() {
	if s.MaxChunks <= 0 || len(s.Chunks) <= s.MaxChunks {
		return
	}
	keys := s.LoadedChunkKeys()
	dist := func(k ChunkKey) int {
		return max(mathx.AbsInt(k.CX-s.focus.CX), mathx.AbsInt(k.CY-s.focus.CY))
	}
	sort.SliceStable(keys, func(i, j int) bool { return dist(keys[i]) > dist(keys[j]) })
	for _, k := range keys[:len(keys)-s.MaxChunks] {
		delete(s.Chunks, k)
	}
}
