package entity

// Pool is a bounded resource such as health or stamina. Current always stays
// within [0, Max].
type Pool struct {
	Current float64 `json:"current"`
	Max     float64 `json:"max"`

	lastDelta float64
}

func NewPool(current, max float64) Pool {
	p := Pool{Max: max}
	p.Set(current)
	return p
}

func (p *Pool) Set(v float64) {
	if v < 0 {
		v = 0
	}
	if v > p.Max {
		v = p.Max
	}
	p.Current = v
}

// Add returns the change actually applied after clamping.
func (p *Pool) Add(n float64) float64 {
	before := p.Current
	p.Set(before + n)
	d := p.Current - before
	p.lastDelta += d
	return d
}

func (p *Pool) Subtract(n float64) float64 { return -p.Add(-n) }

func (p *Pool) AtMin() bool { return p.Current <= 0 }
func (p *Pool) AtMax() bool { return p.Current >= p.Max }

func (p *Pool) Percent() float64 {
	if p.Max <= 0 {
		return 0
	}
	return p.Current / p.Max
}

func (p *Pool) LastDelta() float64 { return p.lastDelta }
func (p *Pool) ClearLastDelta()    { p.lastDelta = 0 }
