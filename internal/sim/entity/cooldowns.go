package entity

// Cooldowns maps a timer name to the seconds left before it is ready.
type Cooldowns map[string]float64

func (c Cooldowns) HeatUp(name string, seconds float64) { c[name] = seconds }

func (c Cooldowns) CoolDown(name string, seconds float64) {
	if c[name] > 0 {
		c[name] -= seconds
	}
	if c[name] < 0 {
		c[name] = 0
	}
}

func (c Cooldowns) Tick(seconds float64) {
	for name := range c {
		c.CoolDown(name, seconds)
	}
}

func (c Cooldowns) Ready(name string) bool { return c[name] <= 0 }
