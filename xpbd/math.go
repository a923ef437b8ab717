package xpbd

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// sign returns -1 for negative values and 1 otherwise, including zero.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// signVec applies sign to both components of a vector.
func signVec(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{sign(v.X()), sign(v.Y())}
}

// absVec returns the given vector with both components switched to their absolute values.
func absVec(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{v.X() * sign(v.X()), v.Y() * sign(v.Y())}
}

// lenSqr returns the squared length of a vector.
func lenSqr(v mgl64.Vec2) float64 {
	return v.Dot(v)
}

// vec64To32 converts a 64-bit vector to a 32-bit one.
func vec64To32(v mgl64.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{float32(v[0]), float32(v[1])}
}
