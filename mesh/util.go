package mesh

import "math"

const (
	MeshTolerance = 1e-4
	ToleranceSq   = MeshTolerance * MeshTolerance
	// Smallest double area of an equilateral triangle with sides of
	// MeshTolerance, roughly.
	ElemAreaTolerance = 0.8660254037844386 * ToleranceSq
	// Machine epsilon for float64
	Epsilon = 2.220446049250313e-16
)

// Twice the signed area of the triangle. Positive when a, b, c wind
// counterclockwise.
func SignedArea2(a, b, c Point) float64 {
	return a.X*b.Y - a.Y*b.X + a.Y*c.X - a.X*c.Y + b.X*c.Y - c.X*b.Y
}

// Barycentric point in triangle test. Returns 1 when p is strictly inside, 0
// when it is on an edge (or the triangle is degenerate), and -1 when it is
// outside.
func InTriangle(a, b, c, p Point) int {
	tA := a.X - c.X
	tB := b.X - c.X
	tD := a.Y - c.Y
	tE := b.Y - c.Y
	delta := tA*tE - tB*tD
	if math.Abs(delta) <= Epsilon {
		return 0
	}
	tC := c.X - p.X
	tF := c.Y - p.Y
	alpha := (tB*tF - tC*tE) / delta
	beta := (tC*tD - tA*tF) / delta
	gamma := 1.0 - (alpha + beta)
	if alpha < -Epsilon || beta < -Epsilon || gamma < -Epsilon {
		return -1
	}
	if alpha > Epsilon && beta > Epsilon && gamma > Epsilon {
		return 1
	}
	return 0
}

// Is p strictly inside the circumcircle of the counterclockwise triangle a, b,
// c? Everything is translated to a first to keep the products small.
func InCircumcircle(a, b, c, p Point) bool {
	x1, y1 := b.X-a.X, b.Y-a.Y
	x2, y2 := c.X-a.X, c.Y-a.Y
	xp, yp := p.X-a.X, p.Y-a.Y
	z1 := x1*x1 + y1*y1
	z2 := x2*x2 + y2*y2
	alpha := y1*z2 - z1*y2
	beta := x2*z1 - x1*z2
	gamma := x1*y2 - y1*x2
	return alpha*xp+beta*yp+gamma*(xp*xp+yp*yp) < 0
}

// Centre of the circle through a, b and c. The second return is false when the
// points are (nearly) collinear and the centre is at infinity.
func Circumcentre(a, b, c Point) (Point, bool) {
	x0y1 := a.X * b.Y
	x0y2 := a.X * c.Y
	y0x1 := a.Y * b.X
	y0x2 := a.Y * c.X
	x1y2 := b.X * c.Y
	y1x2 := b.Y * c.X
	x0x1 := a.X * b.X
	x0x2 := a.X * c.X
	x1x2 := b.X * c.X
	y0y1 := a.Y * b.Y
	y0y2 := a.Y * c.Y
	y1y2 := b.Y * c.Y
	det := x0y1 + y0x2 - y1x2 - y0x1 - x0y2 + x1y2
	if det*det <= Epsilon {
		return Point{}, false
	}
	k := 0.5 / det
	return Point{
		X: (a.X*(x0y1-x0y2) + a.Y*(y0y1-y0y2) + b.X*(x1y2-y0x1) +
			b.Y*(y1y2-y0y1) + c.X*(y0x2-y1x2) + c.Y*(y0y2-y1y2)) * k,
		Y: (a.X*(x0x2-x0x1) + a.Y*(y0x2-y0x1) + b.X*(x0x1-x1x2) +
			b.Y*(x0y1-y1x2) + c.X*(x1x2-x0x2) + c.Y*(x1y2-x0y2)) * k,
	}, true
}

// Per axis closeness, which is how the mesh decides a position already has a
// node.
func Coincident(a, b Point, tolSq float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx < tolSq && dy*dy < tolSq
}

func distSq(a, b Point) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}
