package scatter

import (
	"math"
	"math/rand/v2"
)

// DefaultTextWidth is the text container width assumed when none is given.
const DefaultTextWidth = 352.0

const (
	charPitchRatio   = 0.9  // pitch per px of font size
	overflowFraction = 0.85 // share of container width text may occupy
	positionJitter   = 2.0

	waveAmplitude     = 3.0
	waveFrequency     = 1.0
	rotationSpread    = 10.0
	overflowAmplitude = 5.0
	overflowFrequency = 2.0
	overflowRotation  = 24.0
	sagDepth          = 6.0
)

// TextGeometry describes the container the characters are laid out in.
type TextGeometry struct {
	Width float64 // px
}

// ScatteredChar is the placement of one rune of the main text.
type ScatteredChar struct {
	Char     string  `json:"char"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"` // degrees
	Scale    float64 `json:"scale"`
	Color    string  `json:"color"`
	Opacity  float64 `json:"opacity"`
	FontSize int     `json:"font_size"`
}

// Substitute normalises ambiguous letterforms: capital I renders as i and
// lowercase l renders as L. Every other rune passes through.
func Substitute(r rune) rune {
	switch r {
	case 'I':
		return 'i'
	case 'l':
		return 'L'
	}
	return r
}

// Overflows reports whether n characters at fontSize exceed the share of the
// container the text may occupy.
func Overflows(n, fontSize int, geom TextGeometry) bool {
	return float64(n)*charPitchRatio*float64(fontSize) > overflowFraction*geom.width()
}

func (g TextGeometry) width() float64 {
	if g.Width <= 0 {
		return DefaultTextWidth
	}
	return g.Width
}

// Text lays out one ScatteredChar per rune of text, in order.
//
// Characters flow left to right around the container centre at a pitch
// derived from fontSize, riding a sine wave with one random phase per call.
// When the text overflows the pitch is compressed to fit, the wave gets
// stronger and faster, a parabolic sag pulls the middle down, and rotation
// varies more.
func Text(text string, fontSize int, geom TextGeometry, rng *rand.Rand) []ScatteredChar {
	runes := []rune(text)
	n := len(runes)
	chars := make([]ScatteredChar, 0, n)
	if n == 0 {
		return chars
	}

	width := geom.width()
	pitch := charPitchRatio * float64(fontSize)
	amp, freq, spread := waveAmplitude, waveFrequency, rotationSpread
	overflow := Overflows(n, fontSize, geom)
	if overflow {
		pitch = overflowFraction * width / float64(n)
		amp, freq, spread = overflowAmplitude, overflowFrequency, overflowRotation
	}

	phase := rng.Float64() * 2 * math.Pi
	mid := float64(n-1) / 2
	for i, r := range runes {
		f := 0.5
		if n > 1 {
			f = float64(i) / float64(n-1)
		}
		y := 50 + amp*math.Sin(2*math.Pi*freq*f+phase)
		if overflow {
			y += sagDepth * (1 - 4*(f-0.5)*(f-0.5))
		}
		chars = append(chars, ScatteredChar{
			Char:     string(Substitute(r)),
			X:        50 + (float64(i)-mid)*pitch/width*100 + jitter(rng, positionJitter),
			Y:        y + jitter(rng, positionJitter),
			Rotation: jitter(rng, spread),
			Scale:    1,
			Color:    pickColor(rng),
			Opacity:  between(rng, OpacityMin, OpacityMax),
			FontSize: fontSize,
		})
	}
	return chars
}
