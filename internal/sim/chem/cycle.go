package chem

// Cycle advances the configured amount to the next preset, wrapping after
// the last. If the current amount is not a preset, it falls back to the
// first one. With no presets the amount is untouched.
func Cycle(c *Container) float64 {
	if len(c.presets) == 0 {
		return c.amount
	}
	for i, v := range c.presets {
		if amountsEqual(v, c.amount) {
			c.amount = c.presets[(i+1)%len(c.presets)]
			return c.amount
		}
	}
	c.amount = c.presets[0]
	return c.amount
}

func amountsEqual(a, b float64) bool {
	d := a - b
	return d < epsilon && d > -epsilon
}
