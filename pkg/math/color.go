package math

// Color is a linear RGBA color with float components.
type Color struct {
	R, G, B, A float32
}

// ApproxEqual reports whether every component differs by at most eps.
func (c Color) ApproxEqual(other Color, eps float32) bool {
	return within(c.R, other.R, eps) && within(c.G, other.G, eps) &&
		within(c.B, other.B, eps) && within(c.A, other.A, eps)
}
