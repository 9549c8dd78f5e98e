package chem

import (
	"strings"
	"testing"
)

type testNamer map[*Container]string

func (n testNamer) ContainerName(c *Container) string {
	if name, ok := n[c]; ok {
		return name
	}
	return "something"
}

type captureDiag struct {
	kinds []string
}

func (d *captureDiag) Event(kind string, fields map[string]any) {
	d.kinds = append(d.kinds, kind)
}

func TestExecuteNormalToNormal(t *testing.T) {
	// Scenario: 50 units in "one", empty 100-capacity "two", amount 20.
	one := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 20, Contents: map[SubstanceID]float64{"X": 50}})
	two := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 20})
	ex := NewExecutor(testNamer{one: "the flask", two: "the beaker"}, nil)

	res := ex.Execute(one, two)
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if !near(res.Amount, 20) {
		t.Fatalf("expected 20 transferred, got %v", res.Amount)
	}
	if !near(two.Quantity(), 20) || !near(one.Quantity(), 30) {
		t.Fatalf("expected 20/30 split, got two=%v one=%v", two.Quantity(), one.Quantity())
	}
	// Receiver was empty, so the fill framing applies.
	if !strings.Contains(res.Message, "fill the beaker") || !strings.Contains(res.Message, "20") {
		t.Fatalf("unexpected message: %q", res.Message)
	}
}

func TestExecuteTransferMessage(t *testing.T) {
	one := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 15, Contents: map[SubstanceID]float64{"X": 50}})
	two := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 15, Contents: map[SubstanceID]float64{"X": 5}})
	ex := NewExecutor(testNamer{one: "the flask", two: "the beaker"}, nil)

	res := ex.Execute(one, two)
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if !strings.Contains(res.Message, "transfer 15") || !strings.Contains(res.Message, "the flask") || !strings.Contains(res.Message, "the beaker") {
		t.Fatalf("unexpected message: %q", res.Message)
	}
}

func TestExecuteBothOutputOnly(t *testing.T) {
	one := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 10, Policy: PolicyOutputOnly, Contents: map[SubstanceID]float64{"X": 50}})
	two := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 10, Policy: PolicyOutputOnly, Contents: map[SubstanceID]float64{"Y": 50}})
	ex := NewExecutor(nil, nil)

	res := ex.Execute(one, two)
	if res.Success || res.Amount != 0 {
		t.Fatalf("expected blocked no-op, got %+v", res)
	}
	if res.Message != "both output-only" {
		t.Fatalf("expected blocked reason, got %q", res.Message)
	}
	if !near(one.Quantity(), 50) || !near(two.Quantity(), 50) {
		t.Fatalf("expected no mix change, got one=%v two=%v", one.Quantity(), two.Quantity())
	}
}

func TestExecuteSyringeDirection(t *testing.T) {
	// Full syringe supplies the other side.
	full := mustContainer(t, ContainerConfig{Capacity: 15, Amount: 5, Policy: PolicySyringe, Contents: map[SubstanceID]float64{"X": 15}})
	beaker := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 5})
	ex := NewExecutor(nil, nil)
	res := ex.Execute(full, beaker)
	if !res.Success || !near(beaker.Quantity(), 5) {
		t.Fatalf("expected full syringe to inject 5, got %+v beaker=%v", res, beaker.Quantity())
	}

	// A syringe with room draws in instead.
	syr := mustContainer(t, ContainerConfig{Capacity: 15, Amount: 5, Policy: PolicySyringe})
	src := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 5, Contents: map[SubstanceID]float64{"X": 50}})
	res = ex.Execute(syr, src)
	if !res.Success || !near(syr.Quantity(), 5) {
		t.Fatalf("expected syringe to draw 5, got %+v syringe=%v", res, syr.Quantity())
	}
	if !near(src.Quantity(), 45) {
		t.Fatalf("expected source at 45, got %v", src.Quantity())
	}
}

func TestExecuteEmptySourceIdempotent(t *testing.T) {
	// Input-only "one" forces "two" to supply, and "two" is empty.
	receiver := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 10, Policy: PolicyInputOnly})
	empty := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 10})
	ex := NewExecutor(testNamer{empty: "the flask"}, nil)

	first := ex.Execute(receiver, empty)
	second := ex.Execute(receiver, empty)
	if first.Success || first.Amount != 0 {
		t.Fatalf("expected failure on empty source, got %+v", first)
	}
	if !strings.Contains(first.Message, "the flask is empty") {
		t.Fatalf("expected emptiness message, got %q", first.Message)
	}
	if first != second {
		t.Fatalf("expected identical results, got %+v then %+v", first, second)
	}
	if !receiver.IsEmpty() || !empty.IsEmpty() {
		t.Fatalf("expected no mutation on either container")
	}
}

func TestExecuteConsume(t *testing.T) {
	source := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 25, Contents: map[SubstanceID]float64{"X": 60}})
	ex := NewExecutor(nil, nil)

	res := ex.Consume(source)
	if !res.Success || !near(res.Amount, 25) {
		t.Fatalf("expected consumed 25, got %+v", res)
	}
	if res.Message != "Reagents were consumed" {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	if !near(source.Quantity(), 35) {
		t.Fatalf("expected 35 remaining, got %v", source.Quantity())
	}
}

func TestExecuteInvalidPairingIsDiagnosed(t *testing.T) {
	one := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 10, Contents: map[SubstanceID]float64{"X": 50}})
	two := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 10, Policy: PolicyNoTransfer})
	diag := &captureDiag{}
	ex := NewExecutor(nil, diag)

	res := ex.Execute(one, two)
	if res.Success || res.Amount != 0 || res.Message != "" {
		t.Fatalf("expected silent no-op, got %+v", res)
	}
	if len(diag.kinds) != 1 || diag.kinds[0] != "INVALID_PAIRING" {
		t.Fatalf("expected one INVALID_PAIRING diagnostic, got %v", diag.kinds)
	}
	if !near(one.Quantity(), 50) {
		t.Fatalf("expected no mix change, got %v", one.Quantity())
	}
}

func TestExecutePartialAcceptanceIsSuccess(t *testing.T) {
	one := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 20, Contents: map[SubstanceID]float64{"X": 50}})
	two := mustContainer(t, ContainerConfig{Capacity: 30, Amount: 20, Contents: map[SubstanceID]float64{"X": 25}})
	ex := NewExecutor(nil, nil)

	res := ex.Execute(one, two)
	if !res.Success {
		t.Fatalf("expected partial success, got %+v", res)
	}
	if !near(res.Amount, 5) {
		t.Fatalf("expected 5 accepted, got %v", res.Amount)
	}
	if res.Excess == nil || !near(res.Excess.Quantity(), 15) {
		t.Fatalf("expected 15 excess, got %+v", res.Excess)
	}
	if !near(two.Quantity(), 30) {
		t.Fatalf("expected receiver at capacity, got %v", two.Quantity())
	}
	// Conservation across the whole attempt.
	total := one.Quantity() + two.Quantity() + res.Excess.Quantity()
	if !near(total, 75) {
		t.Fatalf("material not conserved: %v", total)
	}
}

func TestExecuteFullRejectionCarriesEverything(t *testing.T) {
	one := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 20, Contents: map[SubstanceID]float64{"X": 50}})
	two := mustContainer(t, ContainerConfig{Capacity: 30, Amount: 20, Contents: map[SubstanceID]float64{"X": 30}})
	ex := NewExecutor(testNamer{two: "the tank"}, nil)

	res := ex.Execute(one, two)
	if res.Success {
		t.Fatalf("expected failure, got %+v", res)
	}
	if res.Excess == nil || !near(res.Excess.Quantity(), 20) {
		t.Fatalf("expected all 20 in excess, got %+v", res.Excess)
	}
	if !strings.Contains(res.Message, "the tank is full") {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	// Caller reinstates; nothing is lost.
	one.Reinstate(res.Excess)
	if !near(one.Quantity(), 50) {
		t.Fatalf("expected source restored to 50, got %v", one.Quantity())
	}
}

func TestExecuteNeverMovesMoreThanConfigured(t *testing.T) {
	for _, qty := range []float64{0.5, 5, 20, 80} {
		one := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 10, Contents: map[SubstanceID]float64{"X": qty}})
		two := mustContainer(t, ContainerConfig{Capacity: 100, Amount: 10})
		ex := NewExecutor(nil, nil)
		res := ex.Execute(one, two)
		if res.Amount > 10+1e-6 {
			t.Fatalf("qty=%v: moved %v > configured 10", qty, res.Amount)
		}
		if res.Amount > qty+1e-6 {
			t.Fatalf("qty=%v: moved %v > available", qty, res.Amount)
		}
	}
}
