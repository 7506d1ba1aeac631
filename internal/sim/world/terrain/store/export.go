package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/klauspost/compress/zstd"
)

// EncodeHeights packs a chunk's height grid as little-endian float32 values,
// row-major, and zstd-compresses the result for the wire.
func EncodeHeights(ch *Chunk) ([]byte, error) {
	n := ch.VertexSize()
	raw := make([]byte, 0, n*n*4)
	var tmp [4]byte
	for _, row := range ch.Heights {
		for _, v := range row {
			binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(float32(v)))
			raw = append(raw, tmp[:]...)
		}
	}
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(raw); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeHeights reverses EncodeHeights for a grid of vertexSize² values.
func DecodeHeights(b []byte, vertexSize int) ([][]float32, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(b, nil)
	if err != nil {
		return nil, err
	}
	if len(raw) != vertexSize*vertexSize*4 {
		return nil, fmt.Errorf("height payload: got %d bytes, want %d", len(raw), vertexSize*vertexSize*4)
	}
	out := make([][]float32, vertexSize)
	for row := range out {
		out[row] = make([]float32, vertexSize)
		for col := range out[row] {
			i := (row*vertexSize + col) * 4
			out[row][col] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i:]))
		}
	}
	return out, nil
}
