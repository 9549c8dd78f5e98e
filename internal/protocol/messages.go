package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ActorName       string `json:"actor_name"`
	Vessel          string `json:"vessel,omitempty"` // archetype id; server default when empty
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	ActorID         string      `json:"actor_id"`
	WorldParams     WorldParams `json:"world_params"`
	Vessel          VesselObs   `json:"vessel"`
}

type WorldParams struct {
	TickRateHz int     `json:"tick_rate_hz"`
	MinAmount  float64 `json:"min_amount"`
	MaxAmount  float64 `json:"max_amount"`
}

// VesselObs describes a container as observed by its holder.
type VesselObs struct {
	ID        string    `json:"id"`
	Archetype string    `json:"archetype"`
	Policy    string    `json:"policy"`
	Capacity  float64   `json:"capacity"`
	Quantity  float64   `json:"quantity"`
	Amount    float64   `json:"amount"`
	Presets   []float64 `json:"presets,omitempty"`
}

// ACT (client -> server)
type ActMsg struct {
	Type            string       `json:"type"`
	ProtocolVersion string       `json:"protocol_version"`
	Tick            uint64       `json:"tick"`
	ActorID         string       `json:"actor_id"`
	Instants        []InstantReq `json:"instants,omitempty"`
}

type InstantReq struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	TargetID string `json:"target_id,omitempty"`
}

// EVENTS (server -> client): per-tick event flush plus self state.
type EventsMsg struct {
	Type            string    `json:"type"`
	ProtocolVersion string    `json:"protocol_version"`
	Tick            uint64    `json:"tick"`
	ActorID         string    `json:"actor_id"`
	Vessel          VesselObs `json:"vessel"`
	Events          []Event   `json:"events,omitempty"`
}

type Event map[string]interface{}
