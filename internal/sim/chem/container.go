package chem

import "fmt"

// AmountBounds is the inclusive range a configured per-transfer amount
// must lie within.
type AmountBounds struct {
	Min float64
	Max float64
}

var DefaultBounds = AmountBounds{Min: 1, Max: 100}

// ContainerConfig is validated once at construction; the engine treats
// everything except the mix contents and the configured amount as read-only.
type ContainerConfig struct {
	Policy   Policy
	Capacity float64

	// Amount is the quantity attempted per transfer. Zero means Bounds.Min.
	Amount  float64
	Presets []float64
	Bounds  AmountBounds // zero value means DefaultBounds

	// Empty whitelist means no restriction.
	Whitelist []SubstanceID
	// Empty set means the counterpart needs no particular trait.
	RequiredTraits []TraitID

	Contents map[SubstanceID]float64
}

type Container struct {
	policy    Policy
	capacity  float64
	amount    float64
	presets   []float64
	bounds    AmountBounds
	whitelist map[SubstanceID]struct{}
	required  map[TraitID]struct{}
	mix       *Mix
}

func NewContainer(cfg ContainerConfig) (*Container, error) {
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("container capacity must be positive, got %v", cfg.Capacity)
	}
	bounds := cfg.Bounds
	if bounds == (AmountBounds{}) {
		bounds = DefaultBounds
	}
	if bounds.Min <= 0 || bounds.Max < bounds.Min {
		return nil, fmt.Errorf("bad amount bounds [%v, %v]", bounds.Min, bounds.Max)
	}
	amount := cfg.Amount
	if amount == 0 {
		amount = bounds.Min
	}
	if amount < bounds.Min || amount > bounds.Max {
		return nil, fmt.Errorf("amount %v outside bounds [%v, %v]", amount, bounds.Min, bounds.Max)
	}
	for _, p := range cfg.Presets {
		if p < bounds.Min || p > bounds.Max {
			return nil, fmt.Errorf("preset %v outside bounds [%v, %v]", p, bounds.Min, bounds.Max)
		}
	}

	c := &Container{
		policy:   cfg.Policy,
		capacity: cfg.Capacity,
		amount:   amount,
		presets:  append([]float64(nil), cfg.Presets...),
		bounds:   bounds,
		mix:      NewMix(cfg.Contents),
	}
	if c.mix.Quantity() > cfg.Capacity+epsilon {
		return nil, fmt.Errorf("initial contents %v exceed capacity %v", c.mix.Quantity(), cfg.Capacity)
	}
	if len(cfg.Whitelist) > 0 {
		c.whitelist = make(map[SubstanceID]struct{}, len(cfg.Whitelist))
		for _, id := range cfg.Whitelist {
			c.whitelist[id] = struct{}{}
		}
	}
	if len(cfg.RequiredTraits) > 0 {
		c.required = make(map[TraitID]struct{}, len(cfg.RequiredTraits))
		for _, id := range cfg.RequiredTraits {
			c.required[id] = struct{}{}
		}
	}
	return c, nil
}

func (c *Container) Policy() Policy     { return c.policy }
func (c *Container) Capacity() float64  { return c.capacity }
func (c *Container) Quantity() float64  { return c.mix.Quantity() }
func (c *Container) IsEmpty() bool      { return c.mix.IsEmpty() }
func (c *Container) IsFull() bool       { return c.mix.Quantity() >= c.capacity-epsilon }
func (c *Container) Amount() float64    { return c.amount }
func (c *Container) Presets() []float64 { return append([]float64(nil), c.presets...) }

func (c *Container) Contents() map[SubstanceID]float64 { return c.mix.Quantities() }

func (c *Container) accepts(id SubstanceID) bool {
	if len(c.whitelist) == 0 {
		return true
	}
	_, ok := c.whitelist[id]
	return ok
}

// Take extracts up to amount units from the container's mix.
func (c *Container) Take(amount float64) *Mix { return c.mix.Take(amount) }

// Add inserts as much of in as the whitelist and remaining capacity allow.
// The rejected portion comes back as excess; nothing is silently dropped.
// in is drained either way.
func (c *Container) Add(in *Mix) (accepted float64, excess *Mix) {
	excess = in.takeWhere(func(id SubstanceID) bool { return !c.accepts(id) })

	free := c.capacity - c.mix.Quantity()
	if free < 0 {
		free = 0
	}
	if over := in.Quantity() - free; over > epsilon {
		excess.merge(in.Take(over))
	}
	accepted = in.Quantity()
	c.mix.merge(in)
	return accepted, excess
}

// Reinstate returns previously extracted material to the container,
// bypassing the whitelist. Used to put a rejected extraction back.
func (c *Container) Reinstate(m *Mix) { c.mix.merge(m) }
