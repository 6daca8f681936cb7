package math

// Vec2 is a 2D vector. UV coordinates use X as U and Y as V.
type Vec2 struct {
	X, Y float32
}
