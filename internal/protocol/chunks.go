package protocol

// SUBSCRIBE (observer -> server)
type SubscribeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ChunkRadius     int    `json:"chunk_radius"`
	MaxChunks       int    `json:"max_chunks"`
}

// CHUNKS (server -> observer): terrain chunks not yet sent on this session.
type ChunksMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	Tick            uint64      `json:"tick"`
	Chunks          []ChunkData `json:"chunks"`
}

type ChunkData struct {
	ID          string     `json:"id"`
	CX          int        `json:"cx"`
	CY          int        `json:"cy"`
	Center      [3]float64 `json:"center"`
	Size        float64    `json:"size"`
	VertexSize  int        `json:"vertex_size"`
	Color       string     `json:"color"`
	HeightsZstd []byte     `json:"heights_zstd"` // float32 LE, row-major, north row first
	Digest      string     `json:"digest"`

	// Texture is TextureSize² texels, row 0 at the south edge. TextureRLE
	// holds base64 uvarint (palette index, run) pairs.
	TextureSize    int      `json:"texture_size"`
	TexturePalette []string `json:"texture_palette"`
	TextureRLE     string   `json:"texture_rle"`
}
