package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	TickRateHz int `yaml:"tick_rate_hz"`

	Transfer TransferLimits `yaml:"transfer"`

	// Vessels are container archetypes actors and placements refer to.
	Vessels []VesselDef `yaml:"vessels"`

	// Placements are world-owned containers present at startup.
	Placements []PlacementDef `yaml:"placements"`

	// ActorVessel is the archetype handed to a joining actor.
	ActorVessel string `yaml:"actor_vessel"`
}

type TransferLimits struct {
	MinAmount      float64   `yaml:"min_amount"`
	MaxAmount      float64   `yaml:"max_amount"`
	DefaultPresets []float64 `yaml:"default_presets"`
}

type VesselDef struct {
	ID             string    `yaml:"id"`
	Policy         string    `yaml:"policy"`
	Capacity       float64   `yaml:"capacity"`
	Amount         float64   `yaml:"amount"`
	Presets        []float64 `yaml:"presets"`
	Whitelist      []string  `yaml:"whitelist"`
	RequiredTraits []string  `yaml:"required_traits"`
}

type PlacementDef struct {
	Name     string             `yaml:"name"`
	Vessel   string             `yaml:"vessel"`
	Contents map[string]float64 `yaml:"contents"`
	Traits   []string           `yaml:"traits"`
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func Defaults() Tuning {
	return Tuning{
		TickRateHz: 10,
		Transfer: TransferLimits{
			MinAmount:      1,
			MaxAmount:      100,
			DefaultPresets: []float64{1, 5, 10, 25, 50, 100},
		},
		Vessels: []VesselDef{
			{ID: "BEAKER", Policy: "NORMAL", Capacity: 100, Amount: 10},
			{ID: "JUG", Policy: "NORMAL", Capacity: 200, Amount: 10},
			{ID: "SYRINGE", Policy: "SYRINGE", Capacity: 15, Amount: 5, Presets: []float64{1, 5, 10, 15}},
			{ID: "DISPENSER", Policy: "OUTPUT_ONLY", Capacity: 500, Amount: 25},
			{ID: "DRAIN", Policy: "INPUT_ONLY", Capacity: 1000, Amount: 50},
			{ID: "SEALED_TANK", Policy: "NO_TRANSFER", Capacity: 300, Amount: 10},
		},
		Placements: []PlacementDef{
			{Name: "water dispenser", Vessel: "DISPENSER", Contents: map[string]float64{"WATER": 500}},
			{Name: "floor drain", Vessel: "DRAIN"},
		},
		ActorVessel: "BEAKER",
	}
}

func (t Tuning) Validate() error {
	if t.TickRateHz <= 0 {
		return fmt.Errorf("tick_rate_hz must be positive, got %d", t.TickRateHz)
	}
	tr := t.Transfer
	if tr.MinAmount <= 0 || tr.MaxAmount < tr.MinAmount {
		return fmt.Errorf("bad transfer bounds [%v, %v]", tr.MinAmount, tr.MaxAmount)
	}
	for _, p := range tr.DefaultPresets {
		if p < tr.MinAmount || p > tr.MaxAmount {
			return fmt.Errorf("default preset %v outside bounds [%v, %v]", p, tr.MinAmount, tr.MaxAmount)
		}
	}
	byID := map[string]VesselDef{}
	for _, v := range t.Vessels {
		if v.ID == "" {
			return fmt.Errorf("vessel with empty id")
		}
		if _, dup := byID[v.ID]; dup {
			return fmt.Errorf("duplicate vessel id %q", v.ID)
		}
		if v.Capacity <= 0 {
			return fmt.Errorf("vessel %s: capacity must be positive", v.ID)
		}
		byID[v.ID] = v
	}
	if t.ActorVessel != "" {
		if _, ok := byID[t.ActorVessel]; !ok {
			return fmt.Errorf("actor_vessel refers to unknown vessel %q", t.ActorVessel)
		}
	}
	for _, p := range t.Placements {
		if p.Name == "" {
			return fmt.Errorf("placement with empty name")
		}
		if _, ok := byID[p.Vessel]; !ok {
			return fmt.Errorf("placement %q refers to unknown vessel %q", p.Name, p.Vessel)
		}
	}
	return nil
}

// Vessel returns the archetype definition for id.
func (t Tuning) Vessel(id string) (VesselDef, bool) {
	for _, v := range t.Vessels {
		if v.ID == id {
			return v, true
		}
	}
	return VesselDef{}, false
}
