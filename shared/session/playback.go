package session

import "time"

// DefaultInterval is the time each frame stays on screen during playback.
const DefaultInterval = 100 * time.Millisecond

// TickDuration is the length of update tick n at tps ticks per second. The
// lengths are uneven by a nanosecond so that any tps consecutive ticks add
// up to exactly one second.
func TickDuration(n uint64, tps int) time.Duration {
	if tps <= 0 {
		return 0
	}
	t := uint64(tps)
	return time.Duration((n+1)*uint64(time.Second)/t - n*uint64(time.Second)/t)
}

// Playback is a fixed-period frame timer driven by the caller's update loop.
// Stopping it drops any partially elapsed period and bumps the generation,
// so a tick that was pending before Stop can never be delivered after it.
type Playback struct {
	Interval time.Duration

	playing    bool
	elapsed    time.Duration
	generation uint64
}

// NewPlayback returns a stopped timer.
func NewPlayback(interval time.Duration) *Playback {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Playback{Interval: interval}
}

// Playing reports whether ticks are being produced.
func (p *Playback) Playing() bool {
	return p.playing
}

// Generation identifies the current run; it changes on every Start and Stop.
func (p *Playback) Generation() uint64 {
	return p.generation
}

// Start begins a new run with a fresh period.
func (p *Playback) Start() {
	p.generation++
	p.elapsed = 0
	p.playing = true
}

// Stop cancels the pending tick.
func (p *Playback) Stop() {
	p.generation++
	p.elapsed = 0
	p.playing = false
}

// Toggle flips between playing and stopped and returns the new state.
func (p *Playback) Toggle() bool {
	if p.playing {
		p.Stop()
	} else {
		p.Start()
	}
	return p.playing
}

// Advance adds dt to the running period and returns how many whole ticks
// became due. A stopped timer never ticks.
func (p *Playback) Advance(dt time.Duration) int {
	if !p.playing || dt <= 0 {
		return 0
	}
	p.elapsed += dt
	n := int(p.elapsed / p.Interval)
	p.elapsed -= time.Duration(n) * p.Interval
	return n
}
