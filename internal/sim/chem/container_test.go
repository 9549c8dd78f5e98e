package chem

import "testing"

func mustContainer(t *testing.T, cfg ContainerConfig) *Container {
	t.Helper()
	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	return c
}

func TestNewContainerValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  ContainerConfig
	}{
		{"zero capacity", ContainerConfig{Capacity: 0}},
		{"amount below bounds", ContainerConfig{Capacity: 100, Amount: 0.5}},
		{"amount above bounds", ContainerConfig{Capacity: 100, Amount: 101}},
		{"preset outside bounds", ContainerConfig{Capacity: 100, Amount: 10, Presets: []float64{10, 500}}},
		{"inverted bounds", ContainerConfig{Capacity: 100, Amount: 10, Bounds: AmountBounds{Min: 50, Max: 5}}},
		{"contents exceed capacity", ContainerConfig{Capacity: 10, Amount: 5, Contents: map[SubstanceID]float64{"WATER": 20}}},
	}
	for _, tc := range cases {
		if _, err := NewContainer(tc.cfg); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestNewContainerDefaults(t *testing.T) {
	c := mustContainer(t, ContainerConfig{Capacity: 100})
	if c.Amount() != DefaultBounds.Min {
		t.Fatalf("expected default amount %v, got %v", DefaultBounds.Min, c.Amount())
	}
	if !c.IsEmpty() || c.IsFull() {
		t.Fatalf("expected empty, not full")
	}
}

func TestContainerAddOverflowReturnsExcess(t *testing.T) {
	c := mustContainer(t, ContainerConfig{
		Capacity: 50,
		Amount:   10,
		Contents: map[SubstanceID]float64{"WATER": 40},
	})
	in := NewMix(map[SubstanceID]float64{"WATER": 30})
	accepted, excess := c.Add(in)
	if !near(accepted, 10) {
		t.Fatalf("expected 10 accepted, got %v", accepted)
	}
	if !near(excess.Quantity(), 20) {
		t.Fatalf("expected 20 excess, got %v", excess.Quantity())
	}
	if !near(c.Quantity(), 50) {
		t.Fatalf("expected container at capacity, got %v", c.Quantity())
	}
	if !c.IsFull() {
		t.Fatalf("expected full container")
	}
}

func TestContainerAddWhitelistRejects(t *testing.T) {
	c := mustContainer(t, ContainerConfig{
		Capacity:  100,
		Amount:    10,
		Whitelist: []SubstanceID{"WATER"},
	})
	in := NewMix(map[SubstanceID]float64{"WATER": 10, "ACID": 5})
	accepted, excess := c.Add(in)
	if !near(accepted, 10) {
		t.Fatalf("expected 10 accepted, got %v", accepted)
	}
	if !near(excess.Quantity(), 5) {
		t.Fatalf("expected 5 rejected, got %v", excess.Quantity())
	}
	if q := excess.Quantities()["ACID"]; !near(q, 5) {
		t.Fatalf("expected rejected ACID, got %#v", excess.Quantities())
	}
}

func TestContainerAddConservation(t *testing.T) {
	c := mustContainer(t, ContainerConfig{
		Capacity: 30,
		Amount:   10,
		Contents: map[SubstanceID]float64{"WATER": 25},
	})
	in := NewMix(map[SubstanceID]float64{"WATER": 12, "ACID": 3})
	before := c.Quantity()
	accepted, excess := c.Add(in)
	delta := c.Quantity() - before
	if !near(accepted, delta) {
		t.Fatalf("accepted %v but quantity grew by %v", accepted, delta)
	}
	if !near(excess.Quantity()+delta, 15) {
		t.Fatalf("conservation violated: excess=%v delta=%v in=15", excess.Quantity(), delta)
	}
	if c.Quantity() > c.Capacity()+1e-6 {
		t.Fatalf("capacity exceeded: %v > %v", c.Quantity(), c.Capacity())
	}
}

func TestContainerReinstate(t *testing.T) {
	c := mustContainer(t, ContainerConfig{
		Capacity:  100,
		Amount:    10,
		Whitelist: []SubstanceID{"WATER"},
		Contents:  map[SubstanceID]float64{"WATER": 20},
	})
	taken := c.Take(10)
	c.Reinstate(taken)
	if !near(c.Quantity(), 20) {
		t.Fatalf("expected 20 after reinstate, got %v", c.Quantity())
	}
}
