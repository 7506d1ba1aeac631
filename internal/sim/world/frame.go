package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"dinotrek.io/internal/protocol"
	"dinotrek.io/internal/sim/entity"
)

// BuildFrame snapshots what a renderer needs for the current tick.
func (w *World) BuildFrame() protocol.FrameMsg {
	f := protocol.FrameMsg{
		Type:            protocol.TypeFrame,
		ProtocolVersion: protocol.Version,
		Tick:            w.tick.Load(),
		TerrainChunks:   make([]string, 0, len(w.visibleChunks)),
		Entities:        make([]protocol.EntityView, 0, len(w.actors)+len(w.items)),
		SkyColor:        w.SkyColor(),
		SunAngle:        w.SunAngle(),
		Outcome:         string(w.outcome),
	}
	for _, c := range w.visibleChunks {
		f.TerrainChunks = append(f.TerrainChunks, c.ID)
	}
	for _, a := range w.actors {
		if a.Remove {
			continue
		}
		v := entityView("actor", &a.Body)
		v.Aggro = a.Aggro()
		f.Entities = append(f.Entities, v)
	}
	for _, it := range w.items {
		if it.Remove {
			continue
		}
		f.Entities = append(f.Entities, entityView("item", &it.Body))
	}
	f.HUD = w.buildHUD()
	if ch := w.character; ch != nil {
		f.Camera = protocol.CameraPose{Target: vec(ch.Pos), Facing: ch.Facing}
	}
	return f
}

func (w *World) buildHUD() protocol.HUD {
	hud := protocol.HUD{
		Hour:     w.Hour(),
		Minute:   w.Minutes(),
		Messages: append([]string(nil), w.messages...),
		Parts: protocol.PartsView{
			Carried: w.PartsCarried(),
			Needed:  w.PartsNeeded(),
			Total:   w.cats.TotalParts(),
		},
	}
	ch := w.character
	if ch == nil {
		return hud
	}
	hud.Stamina = poolView(&ch.Stamina)
	hud.Health = poolView(&ch.Health)
	for _, it := range ch.Inventory.Items() {
		hud.Inventory = append(hud.Inventory, protocol.InventorySlot{
			Name:        it.Name,
			Description: it.InventoryDescription,
		})
	}
	if _, it := w.FindNearestInRangeInteractableItem(ch.Pos); it != nil {
		hud.Interactable = &protocol.InteractView{
			ID:      it.ID,
			Name:    it.Name,
			Action:  it.InteractionAction,
			Percent: it.InteractionPercent(),
		}
	}
	for _, s := range w.scan {
		hud.Scan = append(hud.Scan, protocol.ScanView{
			ItemID:    s.ItemID,
			Name:      s.Name,
			Distance:  s.Distance,
			SortAngle: s.SortAngle,
			Percent:   s.Percent,
			Front:     s.Front,
			Behind:    s.Behind,
		})
	}
	return hud
}

func entityView(kind string, b *entity.Body) protocol.EntityView {
	return protocol.EntityView{
		ID:        b.ID,
		Kind:      kind,
		Name:      b.Name,
		Pos:       vec(b.Pos),
		Facing:    b.Facing,
		Animation: b.Animation,
		RenderAs:  b.RenderAs,
		Model:     b.Model,
		Color:     b.Color,
		Size:      b.Size,
	}
}

func poolView(p *entity.Pool) protocol.PoolView {
	return protocol.PoolView{Current: p.Current, Max: p.Max, Delta: p.LastDelta()}
}

func vec(v mgl64.Vec3) [3]float64 { return [3]float64{v.X(), v.Y(), v.Z()} }
