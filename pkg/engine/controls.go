package engine

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/driedee/pkg/render"
)

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBackward
	ActionStrafeLeft
	ActionStrafeRight
	ActionUp
	ActionDown
	ActionYawLeft
	ActionYawRight
	ActionPitchUp
	ActionPitchDown

	// One-shot actions, handled by the engine rather than Controls.
	ActionToggleWireframe
	ActionReset
	ActionToggleHUD
	ActionQuit

	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:            "none",
	ActionForward:         "forward",
	ActionBackward:        "backward",
	ActionStrafeLeft:      "strafe-left",
	ActionStrafeRight:     "strafe-right",
	ActionUp:              "up",
	ActionDown:            "down",
	ActionYawLeft:         "yaw-left",
	ActionYawRight:        "yaw-right",
	ActionPitchUp:         "pitch-up",
	ActionPitchDown:       "pitch-down",
	ActionToggleWireframe: "toggle-wireframe",
	ActionReset:           "reset",
	ActionToggleHUD:       "toggle-hud",
	ActionQuit:            "quit",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Continuous reports whether a is a held movement action.
func (a Action) Continuous() bool {
	return a >= ActionForward && a <= ActionPitchDown
}

// DefaultHoldTime is how long a key press keeps its action active. Terminals
// report presses and repeats but not releases.
const DefaultHoldTime = 0.15

// Spring parameters for input smoothing. Damping 1.0 is critically damped.
const (
	springFrequency = 10.0
	springDamping   = 1.0
)

// axis is one smoothed input channel, driven toward -1, 0 or +1.
type axis struct {
	Value    float64
	velocity float64
	spring   harmonica.Spring
}

func newAxis(fps int) axis {
	return axis{spring: harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping)}
}

func (a *axis) update(target float64, smooth bool) {
	if !smooth {
		a.Value, a.velocity = target, 0
		return
	}
	a.Value, a.velocity = a.spring.Update(a.Value, a.velocity, target)
	if target == 0 && math.Abs(a.Value) < 1e-3 && math.Abs(a.velocity) < 1e-3 {
		a.Value, a.velocity = 0, 0
	}
}

// Axis indices into Controls.axes.
const (
	axisForward = iota
	axisStrafe
	axisRise
	axisYaw
	axisPitch
	axisCount
)

// Controls turns action state into camera commands. Each movement axis eases
// toward its input through a harmonica spring.
type Controls struct {
	// HoldTime is how long Press keeps an action held, in seconds.
	HoldTime float32
	// Smooth enables the springs; when false axes jump to their targets.
	Smooth bool

	fps  int
	hold [actionCount]float32 // remaining hold time; +Inf while a key is down
	axes [axisCount]axis
}

// NewControls creates controls whose springs are tuned for fps frames per
// second.
func NewControls(fps float64) *Controls {
	c := &Controls{
		HoldTime: DefaultHoldTime,
		Smooth:   true,
		fps:      max(int(math.Round(fps)), 1),
	}
	c.Reset()
	return c
}

// Press activates a continuous action for HoldTime. Repeated presses extend it.
func (c *Controls) Press(a Action) {
	if a.Continuous() {
		c.hold[a] = max(c.hold[a], c.HoldTime)
	}
}

// Set marks a continuous action held or released, for inputs that report
// key state.
func (c *Controls) Set(a Action, held bool) {
	if !a.Continuous() {
		return
	}
	if held {
		c.hold[a] = float32(math.Inf(1))
	} else {
		c.hold[a] = 0
	}
}

// Held reports whether a is currently active.
func (c *Controls) Held(a Action) bool {
	return a.Continuous() && c.hold[a] > 0
}

// Axis returns the smoothed value of the axis driven by a, in [-1, 1].
func (c *Controls) Axis(a Action) float64 {
	switch a {
	case ActionForward, ActionBackward:
		return c.axes[axisForward].Value
	case ActionStrafeLeft, ActionStrafeRight:
		return c.axes[axisStrafe].Value
	case ActionUp, ActionDown:
		return c.axes[axisRise].Value
	case ActionYawLeft, ActionYawRight:
		return c.axes[axisYaw].Value
	case ActionPitchUp, ActionPitchDown:
		return c.axes[axisPitch].Value
	}
	return 0
}

// Reset releases every action and stops all axes.
func (c *Controls) Reset() {
	c.hold = [actionCount]float32{}
	for i := range c.axes {
		c.axes[i] = newAxis(c.fps)
	}
}

func (c *Controls) target(pos, neg Action) float64 {
	var t float64
	if c.Held(pos) {
		t++
	}
	if c.Held(neg) {
		t--
	}
	return t
}

// Update advances the springs by one frame and moves cam. Displacement
// scales with dt, so it is independent of frame rate.
func (c *Controls) Update(dt float32, cam *render.Camera) {
	targets := [axisCount]float64{
		axisForward: c.target(ActionForward, ActionBackward),
		axisStrafe:  c.target(ActionStrafeRight, ActionStrafeLeft),
		axisRise:    c.target(ActionUp, ActionDown),
		axisYaw:     c.target(ActionYawRight, ActionYawLeft),
		axisPitch:   c.target(ActionPitchUp, ActionPitchDown),
	}
	for i := range c.axes {
		c.axes[i].update(targets[i], c.Smooth)
	}

	for a := range c.hold {
		if c.hold[a] > 0 {
			c.hold[a] = max(c.hold[a]-dt, 0)
		}
	}

	if v := float32(c.axes[axisForward].Value); v != 0 {
		cam.MoveForward(dt * v)
	}
	if v := float32(c.axes[axisStrafe].Value); v != 0 {
		cam.StrafeRight(dt * v)
	}
	if v := float32(c.axes[axisRise].Value); v != 0 {
		cam.MoveUp(dt * v)
	}
	if v := float32(c.axes[axisYaw].Value); v != 0 {
		cam.YawRight(dt * v)
	}
	if v := float32(c.axes[axisPitch].Value); v != 0 {
		cam.PitchUp(dt * v)
	}
}
