package world

// WorldMetrics is a thread-safe read-only view of key world runtime signals.
// It is updated from the world loop goroutine and read from HTTP handlers/tests.
type WorldMetrics struct {
	Tick uint64 `json:"tick"`

	Actors       int `json:"actors"`
	Items        int `json:"items"`
	Subscribers  int `json:"subscribers"`
	LoadedChunks int `json:"loaded_chunks"`

	QueueDepths QueueDepths `json:"queue_depths"`

	StepMS float64 `json:"step_ms"`

	Hour    int     `json:"hour"`
	Minute  int     `json:"minute"`
	Health  float64 `json:"health"`
	Parts   int     `json:"parts_carried"`
	Outcome string  `json:"outcome"`
	Digest  string  `json:"state_digest"`
}

type QueueDepths struct {
	Inbox       int `json:"inbox"`
	Subscribe   int `json:"subscribe"`
	Unsubscribe int `json:"unsubscribe"`
}

func (w *World) Metrics() WorldMetrics {
	if w == nil {
		return WorldMetrics{}
	}
	v := w.metrics.Load()
	if v == nil {
		return WorldMetrics{}
	}
	m, ok := v.(WorldMetrics)
	if !ok {
		return WorldMetrics{}
	}
	return m
}

func (w *World) publishMetrics() {
	m := WorldMetrics{
		Tick:         w.tick.Load(),
		Actors:       len(w.actors),
		Items:        len(w.items),
		Subscribers:  len(w.subscribers),
		LoadedChunks: len(w.chunks.Chunks),
		QueueDepths: QueueDepths{
			Inbox:       len(w.inbox),
			Subscribe:   len(w.subscribe),
			Unsubscribe: len(w.unsubscribe),
		},
		StepMS:  w.lastStepMS,
		Hour:    w.Hour(),
		Minute:  w.Minutes(),
		Parts:   w.PartsCarried(),
		Outcome: string(w.outcome),
		Digest:  w.lastDigest,
	}
	if w.character != nil {
		m.Health = w.character.Health.Current
	}
	w.metrics.Store(m)
}
