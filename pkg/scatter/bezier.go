package scatter

import "math"

// Point is a position in canvas-percentage space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Center is the middle of the canvas.
var Center = Point{X: 50, Y: 50}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// BezierPoint evaluates the Bezier curve defined by the ordered control
// points at t using de Casteljau's recursion. Works for any degree; the
// input slice is never modified.
func BezierPoint(points []Point, t float64) Point {
	switch len(points) {
	case 0:
		return Point{}
	case 1:
		return points[0]
	}
	next := make([]Point, len(points)-1)
	for i := range next {
		next[i] = Point{
			X: points[i].X*(1-t) + points[i+1].X*t,
			Y: points[i].Y*(1-t) + points[i+1].Y*t,
		}
	}
	return BezierPoint(next, t)
}
