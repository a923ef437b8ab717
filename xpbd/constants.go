package xpbd

const (
	// DefaultDeltaTime is the fixed tick duration in seconds (60 ticks per second).
	DefaultDeltaTime    = 1.0 / 60.0
	DefaultSubsteps     = 10
	DefaultSafetyMargin = 2.0

	DefaultMass        = 1.0
	DefaultRadius      = 25.0
	DefaultRestitution = 0.3
	DefaultBoxWidth    = 50.0
	DefaultBoxHeight   = 50.0

	DefaultGravityX = 0.0
	DefaultGravityY = -9.81
)
