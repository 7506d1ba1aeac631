package protocol

// FRAME (server -> client): everything a renderer and HUD need for one tick.
type FrameMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Tick            uint64 `json:"tick"`

	TerrainChunks []string     `json:"terrain_chunks"`
	Entities      []EntityView `json:"entities"`
	Camera        CameraPose   `json:"camera"`
	SkyColor      string       `json:"sky_color"`
	SunAngle      float64      `json:"sun_angle"`

	HUD     HUD    `json:"hud"`
	Outcome string `json:"outcome"`
}

type EntityView struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"` // "actor" or "item"
	Name      string     `json:"name"`
	Pos       [3]float64 `json:"pos"`
	Facing    float64    `json:"facing"`
	Animation string     `json:"animation,omitempty"`
	RenderAs  string     `json:"render_as"`
	Model     string     `json:"model,omitempty"`
	Color     string     `json:"color,omitempty"`
	Size      float64    `json:"size"`
	Aggro     bool       `json:"aggro,omitempty"`
}

type CameraPose struct {
	Target [3]float64 `json:"target"`
	Facing float64    `json:"facing"`
}

type HUD struct {
	Stamina      PoolView        `json:"stamina"`
	Health       PoolView        `json:"health"`
	Interactable *InteractView   `json:"interactable,omitempty"`
	Inventory    []InventorySlot `json:"inventory"`
	Hour         int             `json:"hour"`
	Minute       int             `json:"minute"`
	Messages     []string        `json:"messages,omitempty"`
	Scan         []ScanView      `json:"scan,omitempty"`
	Parts        PartsView       `json:"parts"`
}

type PoolView struct {
	Current float64 `json:"current"`
	Max     float64 `json:"max"`
	Delta   float64 `json:"delta,omitempty"`
}

type InteractView struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Action  string  `json:"action"`
	Percent float64 `json:"percent"`
}

type InventorySlot struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ScanView struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	Distance  float64 `json:"distance"`
	SortAngle float64 `json:"sort_angle"`
	Percent   float64 `json:"percent"`
	Front     bool    `json:"front,omitempty"`
	Behind    bool    `json:"behind,omitempty"`
}

type PartsView struct {
	Carried int `json:"carried"`
	Needed  int `json:"needed"`
	Total   int `json:"total"`
}
