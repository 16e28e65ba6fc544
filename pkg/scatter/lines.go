package scatter

import (
	"math"
	"math/rand/v2"
)

const (
	// NumCurves is the number of Bezier curves drawn per card.
	NumCurves = 30
	// CurveSegments is the number of straight segments per curve.
	CurveSegments = 40
	// NumShortLines is the number of loose strokes added after the curves.
	NumShortLines = 20
	// ExclusionRadius keeps curves away from the text in the middle of the card.
	ExclusionRadius = 20.0

	minControlPoints = 2
	maxControlPoints = 4
	pushBand         = 10.0
	shortLineMin     = 5.0
	shortLineMax     = 15.0
)

// LineSegment is one straight stroke of decorative noise.
type LineSegment struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Length float64 `json:"length"`
	Angle  float64 `json:"angle"` // radians
	Color  string  `json:"color"`
	Offset float64 `json:"offset"` // motion phase in [0, 2π)
	Curve  int     `json:"curve"`  // generating curve, -1 for loose strokes
	Step   int     `json:"step"`   // subdivision index within the curve
}

// Start returns the segment origin.
func (s LineSegment) Start() Point { return Point{X: s.X, Y: s.Y} }

// End returns the far endpoint reached by walking Length along Angle.
func (s LineSegment) End() Point {
	return Point{
		X: s.X + s.Length*math.Cos(s.Angle),
		Y: s.Y + s.Length*math.Sin(s.Angle),
	}
}

// Lines generates the decorative noise for one layout pass: NumCurves
// subdivided curves followed by NumShortLines loose strokes, in generation
// order.
func Lines(rng *rand.Rand) []LineSegment {
	lines := make([]LineSegment, 0, NumCurves*CurveSegments+NumShortLines)
	for c := range NumCurves {
		lines = appendCurve(lines, rng, c, controlPoints(rng))
	}
	for range NumShortLines {
		lines = append(lines, LineSegment{
			X:      rng.Float64() * 100,
			Y:      rng.Float64() * 100,
			Length: between(rng, shortLineMin, shortLineMax),
			Angle:  rng.Float64() * 2 * math.Pi,
			Color:  pickColor(rng),
			Offset: rng.Float64() * 2 * math.Pi,
			Curve:  -1,
			Step:   0,
		})
	}
	return lines
}

// controlPoints returns a random start followed by 2–4 control points, each
// pulled out of the exclusion zone.
func controlPoints(rng *rand.Rand) []Point {
	n := minControlPoints + rng.IntN(maxControlPoints-minControlPoints+1)
	pts := make([]Point, 0, n+1)
	pts = append(pts, Point{X: rng.Float64() * 100, Y: rng.Float64() * 100})
	for range n {
		p := Point{X: rng.Float64() * 100, Y: rng.Float64() * 100}
		pts = append(pts, pushOut(rng, p))
	}
	return pts
}

// pushOut moves p radially to a distance in [ExclusionRadius,
// ExclusionRadius+pushBand) from Center when it lies inside the zone.
func pushOut(rng *rand.Rand, p Point) Point {
	d := p.Dist(Center)
	if d >= ExclusionRadius {
		return p
	}
	var theta float64
	if d == 0 {
		theta = rng.Float64() * 2 * math.Pi
	} else {
		theta = math.Atan2(p.Y-Center.Y, p.X-Center.X)
	}
	r := ExclusionRadius + rng.Float64()*pushBand
	return Point{X: Center.X + r*math.Cos(theta), Y: Center.Y + r*math.Sin(theta)}
}

func inExclusion(p Point) bool {
	return p.Dist(Center) < ExclusionRadius
}

// appendCurve subdivides the curve through ctrl and appends the segments
// that stay outside the exclusion zone.
func appendCurve(lines []LineSegment, rng *rand.Rand, curve int, ctrl []Point) []LineSegment {
	for i := range CurveSegments {
		p1 := BezierPoint(ctrl, float64(i)/CurveSegments)
		p2 := BezierPoint(ctrl, float64(i+1)/CurveSegments)
		if inExclusion(p1) || inExclusion(p2) {
			continue
		}
		dx, dy := p2.X-p1.X, p2.Y-p1.Y
		lines = append(lines, LineSegment{
			X:      p1.X,
			Y:      p1.Y,
			Length: math.Hypot(dx, dy),
			Angle:  math.Atan2(dy, dx),
			Color:  pickColor(rng),
			Offset: rng.Float64() * 2 * math.Pi,
			Curve:  curve,
			Step:   i,
		})
	}
	return lines
}
