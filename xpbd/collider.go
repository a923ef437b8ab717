package xpbd

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ColliderKind identifies the shape of a particle's collider.
type ColliderKind uint8

const (
	ColliderNone ColliderKind = iota
	ColliderCircle
	ColliderBox
)

func (k ColliderKind) String() string {
	switch k {
	case ColliderNone:
		return "none"
	case ColliderCircle:
		return "circle"
	case ColliderBox:
		return "box"
	default:
		return fmt.Sprintf("ColliderKind(%d)", uint8(k))
	}
}

// Collider is either a circle with a radius or an axis-aligned box with half-extents. Only the
// field matching Kind is meaningful.
type Collider struct {
	Kind        ColliderKind
	Radius      float64
	HalfExtents mgl64.Vec2
}

// Circle returns a circle collider with the given radius.
func Circle(radius float64) Collider {
	return Collider{Kind: ColliderCircle, Radius: radius}
}

// Box returns a box collider with the given full size.
func Box(size mgl64.Vec2) Collider {
	return Collider{Kind: ColliderBox, HalfExtents: size.Mul(0.5)}
}
