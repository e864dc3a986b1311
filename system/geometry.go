package system

import (
	"math"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/component"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/engine"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/vmath"
)

// PointerRect is the axis-aligned pointer square centered on the pointer
func PointerRect(res *engine.Resources) vmath.Rect {
	size := math.Max(parameter.MinPointerSize, res.Stats.PointerSize)
	return vmath.RectAt(res.Pointer.Pos, size, size)
}

// NodePolygon is the rotated square of a node centered on its position
func NodePolygon(k component.KineticComponent, n component.NodeComponent) vmath.Polygon {
	return vmath.RotatedRect(k.Pos, n.Size, n.Size, k.Rotation)
}

// BossRect is the boss square; the boss position is its top-left corner
func BossRect(k component.KineticComponent, b component.BossComponent) vmath.Rect {
	return vmath.Rect{Min: k.Pos, W: b.Size, H: b.Size}
}

// outOfBounds reports whether p lies beyond the field by more than margin
func outOfBounds(p vmath.Vec2, field engine.FieldResource, margin float64) bool {
	return p.X < -margin || p.X > field.Width+margin || p.Y < -margin || p.Y > field.Height+margin
}
