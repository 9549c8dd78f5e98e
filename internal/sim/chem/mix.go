package chem

// SubstanceID names a substance kind, e.g. "WATER".
type SubstanceID string

// TraitID names a trait a counterpart entity may present, e.g. "ORGANIC".
type TraitID string

// Quantities below epsilon are treated as zero.
const epsilon = 1e-6

// Mix is a divisible blend of substances measured in units.
// It has no capacity of its own; the owning Container bounds it.
type Mix struct {
	parts map[SubstanceID]float64
}

func NewMix(parts map[SubstanceID]float64) *Mix {
	m := &Mix{parts: map[SubstanceID]float64{}}
	for id, q := range parts {
		if id == "" || q <= epsilon {
			continue
		}
		m.parts[id] = q
	}
	return m
}

func EmptyMix() *Mix { return NewMix(nil) }

func (m *Mix) Quantity() float64 {
	var total float64
	for _, q := range m.parts {
		total += q
	}
	return total
}

func (m *Mix) IsEmpty() bool { return m.Quantity() <= epsilon }

// Quantities returns a copy for observation and audit records.
func (m *Mix) Quantities() map[SubstanceID]float64 {
	out := make(map[SubstanceID]float64, len(m.parts))
	for id, q := range m.parts {
		out[id] = q
	}
	return out
}

// Take removes up to amount units, split proportionally across substances,
// and returns what was actually removed.
func (m *Mix) Take(amount float64) *Mix {
	taken := EmptyMix()
	if amount <= epsilon {
		return taken
	}
	total := m.Quantity()
	if total <= epsilon {
		return taken
	}
	if amount >= total {
		taken.parts, m.parts = m.parts, map[SubstanceID]float64{}
		return taken
	}
	ratio := amount / total
	for id, q := range m.parts {
		t := q * ratio
		m.parts[id] = q - t
		if m.parts[id] <= epsilon {
			delete(m.parts, id)
		}
		taken.parts[id] += t
	}
	return taken
}

// takeWhere removes every part whose substance matches pred.
func (m *Mix) takeWhere(pred func(SubstanceID) bool) *Mix {
	taken := EmptyMix()
	for id, q := range m.parts {
		if !pred(id) {
			continue
		}
		taken.parts[id] = q
		delete(m.parts, id)
	}
	return taken
}

// Pour moves all of in into m with no bounds check. Spills land in
// uncontained mixes (a floor, a drenched actor), which have no capacity.
func (m *Mix) Pour(in *Mix) { m.merge(in) }

// merge moves all of in into m. Capacity is the caller's concern.
func (m *Mix) merge(in *Mix) {
	for id, q := range in.parts {
		if q <= epsilon {
			continue
		}
		m.parts[id] += q
	}
	in.parts = map[SubstanceID]float64{}
}
