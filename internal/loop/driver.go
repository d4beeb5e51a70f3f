// Package loop schedules simulation ticks from render frames.
package loop

import "time"

// BoostDivisor shortens the tick period while boost is held.
const BoostDivisor = 2.5

// Driver decides, once per frame, whether a simulation tick is due.
//
// At most one tick fires per frame. Time beyond one period is dropped rather
// than caught up.
type Driver struct {
	base     time.Duration
	boosted  bool
	lastTick time.Time
}

// NewDriver creates a driver with the given base tick period.
func NewDriver(base time.Duration) *Driver {
	return &Driver{base: base}
}

// Frame reports whether a tick should run at now and records it if so.
func (d *Driver) Frame(now time.Time) bool {
	if now.Sub(d.lastTick) < d.Period() {
		return false
	}
	d.lastTick = now
	return true
}

// Period returns the current tick period, accounting for boost.
func (d *Driver) Period() time.Duration {
	if d.boosted {
		return time.Duration(float64(d.base) / BoostDivisor)
	}
	return d.base
}

// SetBoost turns boost on or off. It applies from the next frame.
func (d *Driver) SetBoost(on bool) {
	d.boosted = on
}

// Boosted reports whether boost is held.
func (d *Driver) Boosted() bool {
	return d.boosted
}

// SetBasePeriod changes the unboosted period, e.g. on a difficulty change.
func (d *Driver) SetBasePeriod(p time.Duration) {
	d.base = p
}

// BasePeriod returns the unboosted period.
func (d *Driver) BasePeriod() time.Duration {
	return d.base
}

// Reset restarts the cadence from now and releases boost.
func (d *Driver) Reset(now time.Time) {
	d.lastTick = now
	d.boosted = false
}
