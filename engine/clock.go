package engine

import (
	"time"
)

// Clock decides when a search has to stop. The search calls NotOkToTimeup
// until its minimum depth is reached, then OkToTimeup.
type Clock interface {
	Start(cfg ClockConfig)
	Timeup() bool
	HurryUp() bool
	NotOkToTimeup()
	OkToTimeup()
}

// ClockConfig carries the game clock state at the start of a search.
type ClockConfig struct {
	MyTime    time.Duration
	OpTime    time.Duration
	Increment time.Duration
}

const (
	advancedForceTimeout = 2 * time.Second
	advancedHurryUp      = 10 * time.Second
	advancedTotalMoves   = 60
	advancedMinMovesLeft = 5

	simpleForceTimeout = 5 * time.Second
	simpleASAPTime     = 30 * time.Second
	simpleHurryUpTime  = 45 * time.Second
)

// AdvancedClock spreads the remaining time over the moves expected to be
// left in the game, front loading the early moves.
type AdvancedClock struct {
	now func() time.Time

	start      time.Time
	allocated  time.Duration
	remaining  time.Duration
	noTimeup   bool
	moveNumber int
}

var _ Clock = (*AdvancedClock)(nil)

func NewAdvancedClock() *AdvancedClock {
	return &AdvancedClock{now: time.Now}
}

func (c *AdvancedClock) Start(cfg ClockConfig) {
	c.moveNumber++
	c.start = c.now()
	c.remaining = cfg.MyTime
	c.noTimeup = true

	movesLeft := max(advancedTotalMoves-c.moveNumber, advancedMinMovesLeft)
	target := float64(cfg.MyTime) / float64(movesLeft)
	c.allocated = time.Duration(1.4*target + 0.9*float64(cfg.Increment))
}

func (c *AdvancedClock) Timeup() bool {
	elapsed := c.now().Sub(c.start)
	if c.remaining-elapsed <= advancedForceTimeout {
		return true
	}
	if c.noTimeup {
		return false
	}
	return elapsed > c.allocated
}

func (c *AdvancedClock) HurryUp() bool {
	return c.remaining < advancedHurryUp
}

func (c *AdvancedClock) NotOkToTimeup() { c.noTimeup = true }
func (c *AdvancedClock) OkToTimeup()    { c.noTimeup = false }

// Allocated returns the budget of the running search.
func (c *AdvancedClock) Allocated() time.Duration {
	return c.allocated
}

// SimpleClock allocates a multiple of the increment depending on how much
// time is left compared to the opponent.
type SimpleClock struct {
	now func() time.Time

	start     time.Time
	allocated time.Duration
	remaining time.Duration
	noTimeup  bool
}

var _ Clock = (*SimpleClock)(nil)

func NewSimpleClock() *SimpleClock {
	return &SimpleClock{now: time.Now}
}

func (c *SimpleClock) Start(cfg ClockConfig) {
	c.start = c.now()
	c.remaining = cfg.MyTime
	switch {
	case cfg.MyTime <= simpleASAPTime:
		c.allocated = cfg.Increment / 3
	case cfg.MyTime <= simpleHurryUpTime:
		c.allocated = 2 * cfg.Increment
	case cfg.MyTime <= cfg.OpTime:
		c.allocated = 4 * cfg.Increment
	default:
		c.allocated = 5 * cfg.Increment
	}
}

func (c *SimpleClock) Timeup() bool {
	elapsed := c.now().Sub(c.start)
	if c.remaining-elapsed <= simpleForceTimeout {
		return true
	}
	if c.noTimeup {
		return false
	}
	return elapsed > c.allocated
}

func (c *SimpleClock) HurryUp() bool { return false }

func (c *SimpleClock) NotOkToTimeup() { c.noTimeup = true }
func (c *SimpleClock) OkToTimeup()    { c.noTimeup = false }

func (c *SimpleClock) Allocated() time.Duration {
	return c.allocated
}

// DepthClock never runs out, leaving the depth limits in charge.
type DepthClock struct{}

var _ Clock = DepthClock{}

func (DepthClock) Start(ClockConfig) {}
func (DepthClock) Timeup() bool      { return false }
func (DepthClock) HurryUp() bool     { return false }
func (DepthClock) NotOkToTimeup()    {}
func (DepthClock) OkToTimeup()       {}
