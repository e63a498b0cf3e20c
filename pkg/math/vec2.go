// Package math provides the vector, color and matrix value types stored in asset blocks.
package math

// Vec2 is a 2D vector. Texture coordinates use X as u and Y as v.
type Vec2 struct {
	X, Y float32
}

// ApproxEqual reports whether every component differs by at most eps.
func (v Vec2) ApproxEqual(other Vec2, eps float32) bool {
	return within(v.X, other.X, eps) && within(v.Y, other.Y, eps)
}

func within(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
