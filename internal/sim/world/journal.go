package world

// Event kinds written to the EventLogger.
const (
	EventSpawn    = "SPAWN"
	EventDespawn  = "DESPAWN"
	EventInteract = "INTERACT"
	EventPickUp   = "PICK_UP"
	EventOutcome  = "OUTCOME"
	EventPanic    = "ACTOR_PANIC"
)

type TickLogger interface {
	WriteTick(entry TickLogEntry) error
}

type EventLogger interface {
	WriteEvent(entry EventEntry) error
}

type TickLogEntry struct {
	Tick     uint64   `json:"tick"`
	DtMS     float64  `json:"dt_ms"`
	Commands []string `json:"commands,omitempty"`
	Actors   int      `json:"actors"`
	Items    int      `json:"items"`
	Chunks   int      `json:"chunks"`
	Damage   float64  `json:"damage,omitempty"`
	Outcome  string   `json:"outcome"`
	Digest   string   `json:"digest"`
}

type EventEntry struct {
	Tick     uint64     `json:"tick"`
	Kind     string     `json:"kind"`
	EntityID string     `json:"entity_id"`
	Name     string     `json:"name,omitempty"`
	Pos      [3]float64 `json:"pos"`
	Detail   string     `json:"detail,omitempty"`
}
