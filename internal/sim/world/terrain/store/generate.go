package store

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// MakeTerrainChunk samples heights on the segment grid and colors the
// texture. It does not touch the cache.
func (s *ChunkStore) MakeTerrainChunk(k ChunkKey) (*Chunk, error) {
	segs := s.Layout.Segments()
	center := s.CenterOf(k)
	topLeft := s.TopLeftOf(k)

	ch := &Chunk{
		Key:         k,
		ID:          k.ID(),
		Center:      center,
		Size:        s.Layout.ChunkSize,
		Segments:    segs,
		Heights:     make([][]float64, segs+1),
		TextureSize: s.Layout.TextureSize,
		Color:       s.Gen.Tint(k.CX, k.CY),
	}
	for row := 0; row <= segs; row++ {
		ch.Heights[row] = make([]float64, segs+1)
		for col := 0; col <= segs; col++ {
			x, y := toWorldXY(topLeft, col, row, s.Layout.SegmentSize)
			h, err := s.Gen.CalcTerrainHeight(x, y)
			if err != nil {
				return nil, fmt.Errorf("chunk %s: %w", ch.ID, err)
			}
			ch.Heights[row][col] = h
		}
	}

	size := s.Layout.TextureSize
	step := s.Layout.ChunkSize / float64(size)
	ch.Texture = make([]byte, size*size*4)
	for ty := 0; ty < size; ty++ {
		for tx := 0; tx < size; tx++ {
			x, y := toWorldXY(topLeft, tx, size-ty, step)
			h, err := s.Gen.CalcTerrainHeight(x, y)
			if err != nil {
				return nil, fmt.Errorf("chunk %s texture: %w", ch.ID, err)
			}
			c := s.Gen.Palette.Color(x, y, h)
			i := (ty*size + tx) * 4
			ch.Texture[i], ch.Texture[i+1], ch.Texture[i+2], ch.Texture[i+3] = c[0], c[1], c[2], 255
		}
	}
	_ = ch.Digest()
	return ch, nil
}

func toWorldXY(topLeft mgl64.Vec3, stepX, stepY int, stepSize float64) (float64, float64) {
	return topLeft.X() + float64(stepX)*stepSize, topLeft.Y() - float64(stepY)*stepSize
}
