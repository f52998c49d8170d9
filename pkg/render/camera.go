package render

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/driedee/pkg/math3d"
)

// Default camera speeds, in world units and radians per second.
const (
	DefaultMoveSpeed = 8
	DefaultTurnSpeed = 2
)

// maxPitch keeps the look direction away from the up vector.
const maxPitch = math32.Pi/2 - 0.01

// Camera is a first-person camera with position and yaw/pitch orientation.
//
// Movement commands take the elapsed frame time so that displacement is
// independent of frame rate. Every command recomputes LookDir.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation (radians)
	Yaw   float32 // Rotation around Y axis (look left/right)
	Pitch float32 // Rotation around X axis (look up/down)

	// LookDir is the unit forward vector derived from Yaw and Pitch.
	LookDir math3d.Vec3

	MoveSpeed float32 // Units per second
	TurnSpeed float32 // Radians per second
}

// NewCamera creates a camera at the origin looking down +Z.
func NewCamera() *Camera {
	c := &Camera{
		Position:  math3d.Zero3(),
		MoveSpeed: DefaultMoveSpeed,
		TurnSpeed: DefaultTurnSpeed,
	}
	c.Update()
	return c
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = math3d.V3(pos.X, pos.Y, pos.Z)
}

// SetRotation sets yaw and pitch (radians). Pitch is clamped.
func (c *Camera) SetRotation(yaw, pitch float32) {
	c.Yaw = yaw
	c.Pitch = pitch
	c.Update()
}

// Update clamps pitch and recomputes LookDir from yaw and pitch.
func (c *Camera) Update() {
	c.Pitch = math32.Max(-maxPitch, math32.Min(maxPitch, c.Pitch))
	rot := math3d.RotateX(-c.Pitch).Mul(math3d.RotateY(c.Yaw))
	c.LookDir = rot.MulDir(math3d.Forward())
}

// Right returns the horizontal strafe direction.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(math32.Cos(c.Yaw), 0, -math32.Sin(c.Yaw))
}

// ViewMatrix returns the world-to-view matrix, the quick inverse of the
// camera's look-at matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	target := c.Position.Add(c.LookDir)
	return math3d.LookAt(c.Position, target, math3d.Up()).QuickInverse()
}

// MoveForward moves the camera along LookDir.
func (c *Camera) MoveForward(dt float32) {
	c.Position = c.Position.Add(c.LookDir.Scale(c.MoveSpeed * dt))
}

// MoveBackward moves the camera against LookDir.
func (c *Camera) MoveBackward(dt float32) {
	c.MoveForward(-dt)
}

// StrafeRight moves the camera right, parallel to the ground.
func (c *Camera) StrafeRight(dt float32) {
	c.Position = c.Position.Add(c.Right().Scale(c.MoveSpeed * dt))
}

// StrafeLeft moves the camera left, parallel to the ground.
func (c *Camera) StrafeLeft(dt float32) {
	c.StrafeRight(-dt)
}

// MoveUp moves the camera along world up.
func (c *Camera) MoveUp(dt float32) {
	c.Position = c.Position.Add(math3d.Up().Scale(c.MoveSpeed * dt))
}

// MoveDown moves the camera against world up.
func (c *Camera) MoveDown(dt float32) {
	c.MoveUp(-dt)
}

// YawRight turns the camera to the right.
func (c *Camera) YawRight(dt float32) {
	c.Rotate(c.TurnSpeed*dt, 0)
}

// YawLeft turns the camera to the left.
func (c *Camera) YawLeft(dt float32) {
	c.Rotate(-c.TurnSpeed*dt, 0)
}

// PitchUp tilts the camera up.
func (c *Camera) PitchUp(dt float32) {
	c.Rotate(0, c.TurnSpeed*dt)
}

// PitchDown tilts the camera down.
func (c *Camera) PitchDown(dt float32) {
	c.Rotate(0, -c.TurnSpeed*dt)
}

// Rotate adds the given angles (radians) to yaw and pitch.
func (c *Camera) Rotate(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch

	// Wrap yaw into [-π, π].
	c.Yaw = math32.Remainder(c.Yaw, 2*math32.Pi)
	c.Update()
}

// LookAt points the camera at target. It is a no-op if target is the
// camera position.
func (c *Camera) LookAt(target math3d.Vec3) {
	d := target.Sub(c.Position)
	if d.LenSq() == 0 {
		return
	}
	dir := d.Normalize()
	c.Yaw = math32.Atan2(dir.X, dir.Z)
	c.Pitch = math32.Asin(dir.Y)
	c.Update()
}
