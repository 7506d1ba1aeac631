package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ClientName      string `json:"client_name"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	SessionID       string      `json:"session_id"`
	CharacterID     string      `json:"character_id"`
	WorldParams     WorldParams `json:"world_params"`
	CatalogDigest   string      `json:"catalog_digest"`
}

type WorldParams struct {
	TickRateHz  int     `json:"tick_rate_hz"`
	ChunkSize   float64 `json:"chunk_size"`
	Segments    int     `json:"segments"`
	TextureSize int     `json:"texture_size"`
	TotalParts  int     `json:"total_parts"`
}

// COMMANDS (client -> server): the full set of commands held this frame,
// e.g. "move forward sprint", "jump", "interact nearest", "turn left".
type CommandsMsg struct {
	Type            string   `json:"type"`
	ProtocolVersion string   `json:"protocol_version"`
	Commands        []string `json:"commands"`
}

// ERROR (server -> client)
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Code            string `json:"code"`
	Message         string `json:"message,omitempty"`
}

func NewError(code, msg string) ErrorMsg {
	return ErrorMsg{Type: TypeError, ProtocolVersion: Version, Code: code, Message: msg}
}
