package component

import (
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/vmath"
)

// KineticComponent is the motion state shared by nodes, the boss and tokens
// Rotation is in degrees, RotationSpeed in degrees per second
type KineticComponent struct {
	Pos           vmath.Vec2
	Vel           vmath.Vec2
	Rotation      float64
	RotationSpeed float64
}

// Integrate advances position and rotation by dt seconds
func (k *KineticComponent) Integrate(dt float64) {
	k.Pos = k.Pos.Add(k.Vel.Scale(dt))
	k.Rotation += k.RotationSpeed * dt
	for k.Rotation >= 360 {
		k.Rotation -= 360
	}
	for k.Rotation < 0 {
		k.Rotation += 360
	}
}
