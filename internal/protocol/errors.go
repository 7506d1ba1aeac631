package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"
	ErrProtoVersion    = "E_PROTO_VERSION"

	// World routing/state.
	ErrWorldBusy  = "E_WORLD_BUSY"
	ErrWorldEnded = "E_WORLD_ENDED"

	// Command layer.
	ErrBadCommand  = "E_BAD_COMMAND"
	ErrRateLimited = "E_RATE_LIMITED"
	ErrInternal    = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrProtoVersion:    {},
	ErrWorldBusy:       {},
	ErrWorldEnded:      {},
	ErrBadCommand:      {},
	ErrRateLimited:     {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
