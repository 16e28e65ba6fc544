package layout

import (
	"math"
	"time"

	"github.com/matzehuels/guidecard/pkg/scatter"
)

// Motion names.
const (
	MotionFloat    = "float"
	MotionLineWave = "lineWave"
)

// Motion is a continuous looping animation attached to an element.
type Motion struct {
	Name   string        `json:"name"`
	Period time.Duration `json:"period"`
	Delay  time.Duration `json:"delay"`
}

// Progress returns the position within the current cycle in [0, 1) at
// elapsed time since mount. Before the delay has passed the element is at
// rest and ok is false.
func (m Motion) Progress(elapsed time.Duration) (p float64, ok bool) {
	if elapsed < m.Delay || m.Period <= 0 {
		return 0, false
	}
	t := (elapsed - m.Delay) % m.Period
	return float64(t) / float64(m.Period), true
}

// Rect is an axis-aligned box in display px.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Canvas is the display geometry of the card, in px.
type Canvas struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding"`
}

// DefaultCanvas matches the card the generator was designed around.
var DefaultCanvas = Canvas{Width: 400, Height: 500, Padding: 24}

const (
	captionLineHeight = 24.0
	textMargin        = 20.0
)

// textRegion is the box the scattered characters are positioned in.
func (c Canvas) textRegion(hasTop, hasBottom bool) Rect {
	top := c.Padding + textMargin
	bottom := c.Padding + textMargin
	if hasTop {
		top += captionLineHeight
	}
	if hasBottom {
		bottom += captionLineHeight
	}
	return Rect{
		X: c.Padding,
		Y: top,
		W: c.Width - 2*c.Padding,
		H: math.Max(0, c.Height-top-bottom),
	}
}

// Caption is a static line of text above or below the main text.
type Caption struct {
	Text    string  `json:"text"`
	Opacity float64 `json:"opacity"`
	Box     Rect    `json:"box"`
}

// Line is a decorative segment with optional motion.
type Line struct {
	scatter.LineSegment
	Motion *Motion `json:"motion,omitempty"`
}

// Emoji is a decorative marker with optional motion.
type Emoji struct {
	scatter.EmojiMarker
	Motion *Motion `json:"motion,omitempty"`
}

// VisualTree is the render-ready description of one card. Lines and Emoji
// positions are percentages of the canvas; character positions are
// percentages of TextRegion.
type VisualTree struct {
	Canvas     Canvas                  `json:"canvas"`
	Font       FontChoice              `json:"font"`
	Styles     StyleSelection          `json:"styles"`
	Lines      []Line                  `json:"lines"`
	Emoji      []Emoji                 `json:"emoji"`
	Chars      []scatter.ScatteredChar `json:"chars"`
	TextRegion Rect                    `json:"text_region"`
	Top        *Caption                `json:"top,omitempty"`
	Bottom     *Caption                `json:"bottom,omitempty"`
}

// Animated reports whether the tree carries motion.
func (t *VisualTree) Animated() bool {
	return t.Styles.Dynamic
}
