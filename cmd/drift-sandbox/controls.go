package main

import (
	"time"

	"github.com/lixenwraith/raycar/vehicle"
)

// Terminals report key presses but not releases, so a key counts as held
// while autorepeat keeps refreshing it within the hold window
const keyHold = 320 * time.Millisecond

type action int

const (
	actThrottle action = iota
	actBrake
	actLeft
	actRight
	actCount
)

type controls struct {
	hold    time.Duration
	pressed [actCount]time.Time
}

func newControls() *controls {
	return &controls{hold: keyHold}
}

func (c *controls) press(a action, now time.Time) {
	if a >= 0 && a < actCount {
		c.pressed[a] = now
	}
}

func (c *controls) held(a action, now time.Time) bool {
	t := c.pressed[a]
	return !t.IsZero() && now.Sub(t) <= c.hold
}

// releaseAll drops every latched key
func (c *controls) releaseAll() {
	c.pressed = [actCount]time.Time{}
}

func (c *controls) input(now time.Time) vehicle.Input {
	var in vehicle.Input
	if c.held(actThrottle, now) {
		in.Throttle = 1
	}
	if c.held(actBrake, now) {
		in.Brake = 1
	}
	if c.held(actLeft, now) {
		in.SteerLeft = 1
	}
	if c.held(actRight, now) {
		in.SteerRight = 1
	}
	return in
}
