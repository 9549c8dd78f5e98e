package world

import (
	"fluidworks.ai/internal/protocol"
	"fluidworks.ai/internal/sim/chem"
)

// Entity is anything an interaction can target: a placed vessel, an
// actor, or a bare recipient with no container at all.
type Entity struct {
	ID        string
	Name      string
	Archetype string

	// VesselName is the display name used in transfer messages.
	VesselName string

	Vessel *chem.Container // nil when the entity holds nothing

	Traits     map[chem.TraitID]bool
	Drenchable bool
	// Drenched accumulates material spilled onto this entity.
	Drenched *chem.Mix
}

func (e *Entity) TransferContainer() *chem.Container { return e.Vessel }
func (e *Entity) HasTrait(t chem.TraitID) bool       { return e.Traits[t] }
func (e *Entity) CanBeDrenched() bool                { return e.Drenchable }

// Actor is an entity driven by a connected client.
type Actor struct {
	Entity

	Events []protocol.Event
}

func (a *Actor) AddEvent(e protocol.Event) {
	a.Events = append(a.Events, e)
}
