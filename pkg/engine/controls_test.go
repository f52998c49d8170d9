package engine

import (
	"math"
	"testing"

	"github.com/taigrr/driedee/pkg/render"
)

const tolerance = 1e-4

func TestControlsPressHold(t *testing.T) {
	c := NewControls(60)
	c.Smooth = false
	cam := render.NewCamera()

	c.Press(ActionForward)
	// 0.15s hold covers two 0.1s frames; the press is seen before it decays.
	for range 3 {
		c.Update(0.1, cam)
	}
	want := float32(2 * 0.1 * render.DefaultMoveSpeed)
	if math.Abs(float64(cam.Position.Z-want)) > tolerance {
		t.Errorf("z = %v, want %v", cam.Position.Z, want)
	}
	if c.Held(ActionForward) {
		t.Error("forward still held after the hold window")
	}
}

func TestControlsOpposingCancel(t *testing.T) {
	c := NewControls(60)
	c.Smooth = false
	cam := render.NewCamera()

	c.Set(ActionStrafeLeft, true)
	c.Set(ActionStrafeRight, true)
	c.Update(0.5, cam)
	if cam.Position.X != 0 {
		t.Errorf("x = %v, want 0", cam.Position.X)
	}

	c.Set(ActionStrafeRight, false)
	c.Update(0.5, cam)
	if cam.Position.X >= 0 {
		t.Errorf("x = %v, want negative after strafing left", cam.Position.X)
	}
}

func TestControlsSpring(t *testing.T) {
	c := NewControls(60)
	cam := render.NewCamera()

	c.Set(ActionForward, true)
	lastZ := cam.Position.Z
	for range 60 {
		c.Update(1.0/60, cam)
		if cam.Position.Z < lastZ {
			t.Fatalf("moved backward while accelerating: %v < %v", cam.Position.Z, lastZ)
		}
		lastZ = cam.Position.Z
	}
	if v := c.Axis(ActionForward); v < 0.99 || v > 1.01 {
		t.Errorf("axis after 1s = %v, want about 1", v)
	}

	// Critically damped: eases back to rest without reversing.
	c.Set(ActionForward, false)
	for range 120 {
		c.Update(1.0/60, cam)
		if cam.Position.Z < lastZ {
			t.Fatalf("moved backward while decelerating: %v < %v", cam.Position.Z, lastZ)
		}
		lastZ = cam.Position.Z
	}
	if v := c.Axis(ActionForward); v != 0 {
		t.Errorf("axis at rest = %v, want 0", v)
	}
}

func TestControlsRotation(t *testing.T) {
	tests := []struct {
		action     Action
		yaw, pitch float32
	}{
		{ActionYawRight, 1, 0},
		{ActionYawLeft, -1, 0},
		{ActionPitchUp, 0, 1},
		{ActionPitchDown, 0, -1},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			c := NewControls(60)
			c.Smooth = false
			cam := render.NewCamera()
			c.Set(tc.action, true)
			c.Update(0.5, cam)
			if math.Abs(float64(cam.Yaw-tc.yaw)) > tolerance || math.Abs(float64(cam.Pitch-tc.pitch)) > tolerance {
				t.Errorf("yaw, pitch = %v, %v; want %v, %v", cam.Yaw, cam.Pitch, tc.yaw, tc.pitch)
			}
		})
	}
}

func TestControlsIgnoreOneShot(t *testing.T) {
	c := NewControls(60)
	c.Press(ActionQuit)
	c.Set(ActionReset, true)
	if c.Held(ActionQuit) || c.Held(ActionReset) {
		t.Error("one-shot actions should not be held")
	}
	if ActionQuit.Continuous() || !ActionPitchDown.Continuous() {
		t.Error("Continuous misclassifies actions")
	}
	if Action(99).String() != "unknown" {
		t.Errorf("String() = %q", Action(99).String())
	}
}
