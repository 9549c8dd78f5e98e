package world

import (
	"encoding/json"

	"fluidworks.ai/internal/protocol"
)

func (w *World) vesselObs(e *Entity) protocol.VesselObs {
	if e.Vessel == nil {
		return protocol.VesselObs{ID: e.ID}
	}
	return protocol.VesselObs{
		ID:        e.ID,
		Archetype: e.Archetype,
		Policy:    e.Vessel.Policy().String(),
		Capacity:  e.Vessel.Capacity(),
		Quantity:  e.Vessel.Quantity(),
		Amount:    e.Vessel.Amount(),
		Presets:   e.Vessel.Presets(),
	}
}

// flushEvents sends each connected actor its per-tick event batch.
func (w *World) flushEvents(nowTick uint64) {
	for id, cs := range w.clients {
		a := w.actors[id]
		if a == nil || cs.Out == nil {
			continue
		}
		if len(a.Events) == 0 {
			continue
		}
		msg := protocol.EventsMsg{
			Type:            protocol.TypeEvents,
			ProtocolVersion: protocol.Version,
			Tick:            nowTick,
			ActorID:         id,
			Vessel:          w.vesselObs(&a.Entity),
			Events:          a.Events,
		}
		b, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		select {
		case cs.Out <- b:
		default:
			// Slow client: drop this batch rather than stall the loop.
		}
		a.Events = nil
	}
}
