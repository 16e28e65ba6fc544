package render

import (
	"hash/fnv"
	"image/color"
	"math"
	"strconv"
	"time"

	"github.com/fogleman/gg"

	"github.com/matzehuels/guidecard/pkg/errors"
	"github.com/matzehuels/guidecard/pkg/fonts"
	"github.com/matzehuels/guidecard/pkg/layout"
	"github.com/matzehuels/guidecard/pkg/scatter"
)

const (
	cornerRadius   = 8.0
	lineWidth      = 1.8
	lineOpacity    = 0.2
	emojiSize      = 24.0
	captionSize    = 16.0
	shadowOpacity  = 0.1
	floatLift      = 8.0
	waveAmplitude  = 3.0
	captionColor   = "#4b5563"
	stickerCenter  = "#ffd66b"
	gradientTop    = "#fff5f5"
	gradientBottom = "#ffffff"
)

// painter draws one frame. All coordinates it receives are display px and
// are multiplied by k before reaching gg.
type painter struct {
	dc      *gg.Context
	tree    *layout.VisualTree
	fonts   *fonts.Set
	elapsed time.Duration
	k       float64
}

func (s *Surface) paint(elapsed time.Duration, opts CaptureOptions) (*gg.Context, error) {
	w, h := s.PixelSize(opts)
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeCapture, "surface has no area (%dx%d)", w, h)
	}
	dc := gg.NewContext(w, h)
	if !opts.Transparent {
		dc.SetColor(color.White)
		dc.Clear()
	}

	p := &painter{dc: dc, tree: &s.tree, fonts: s.fonts, elapsed: elapsed, k: opts.Factor()}
	p.background()
	p.lines()
	p.emoji()
	if err := p.captions(); err != nil {
		return nil, err
	}
	if err := p.chars(); err != nil {
		return nil, err
	}
	dc.ResetClip()
	return dc, nil
}

func (p *painter) background() {
	c := p.tree.Canvas
	w, h := c.Width*p.k, c.Height*p.k

	g := gg.NewLinearGradient(0, 0, w, h)
	g.AddColorStop(0, hexColor(gradientTop, 1))
	g.AddColorStop(1, hexColor(gradientBottom, 1))
	p.dc.SetFillStyle(g)
	p.dc.DrawRoundedRectangle(0, 0, w, h, cornerRadius*p.k)
	p.dc.Fill()

	p.dc.SetColor(color.NRGBA{A: 0x14})
	p.dc.SetLineWidth(p.k)
	p.dc.DrawRoundedRectangle(0.5*p.k, 0.5*p.k, w-p.k, h-p.k, cornerRadius*p.k)
	p.dc.Stroke()

	p.dc.DrawRoundedRectangle(0, 0, w, h, cornerRadius*p.k)
	p.dc.Clip()
}

func (p *painter) lines() {
	c := p.tree.Canvas
	p.dc.SetLineWidth(lineWidth * p.k)
	p.dc.SetLineCap(gg.LineCapRound)
	for _, l := range p.tree.Lines {
		x1 := l.X / 100 * c.Width
		y1 := l.Y / 100 * c.Height
		length := l.Length / 100 * c.Width
		dy := p.lineWave(l)
		x2 := x1 + length*math.Cos(l.Angle)
		y2 := y1 + length*math.Sin(l.Angle)
		p.dc.SetColor(hexColor(l.Color, lineOpacity))
		p.dc.DrawLine(x1*p.k, (y1+dy)*p.k, x2*p.k, (y2+dy)*p.k)
		p.dc.Stroke()
	}
}

// lineWave is the vertical drift of a line at the current motion time.
func (p *painter) lineWave(l layout.Line) float64 {
	if l.Motion == nil {
		return 0
	}
	prog, ok := l.Motion.Progress(p.elapsed)
	if !ok {
		return 0
	}
	return waveAmplitude * math.Sin(2*math.Pi*prog+l.Offset)
}

// floatLiftAt is the upward offset of a floating marker; it eases out and
// back over one period.
func (p *painter) floatLiftAt(m *layout.Motion) float64 {
	if m == nil {
		return 0
	}
	prog, ok := m.Progress(p.elapsed)
	if !ok {
		return 0
	}
	return -floatLift * (1 - math.Cos(2*math.Pi*prog)) / 2
}

func (p *painter) emoji() {
	c := p.tree.Canvas
	for _, e := range p.tree.Emoji {
		size := emojiSize * e.Scale
		x := e.X / 100 * c.Width
		y := e.Y/100*c.Height + p.floatLiftAt(e.Motion)

		p.dc.Push()
		p.dc.Translate(x*p.k, y*p.k)
		p.dc.Rotate(gg.Radians(e.Rotation))
		if face := p.fonts.EmojiFace(size * p.k); face != nil {
			p.dc.SetFontFace(face)
			p.dc.SetColor(color.NRGBA{A: alpha(e.Opacity)})
			p.dc.DrawStringAnchored(e.Glyph, 0, 0, 0.5, 0.5)
		} else {
			p.sticker(e.EmojiMarker, size*p.k)
		}
		p.dc.Pop()
	}
}

// sticker draws a small flower standing in for a glyph the fonts cannot
// render. Petal count and colour are stable per glyph.
func (p *painter) sticker(m scatter.EmojiMarker, size float64) {
	h := fnv.New32a()
	h.Write([]byte(m.Glyph))
	sum := h.Sum32()

	petals := 5 + int(sum%3)
	ring := size * 0.28
	radius := size * 0.2
	p.dc.SetColor(hexColor(scatter.Palette[sum%uint32(len(scatter.Palette))], m.Opacity))
	for i := range petals {
		theta := 2 * math.Pi * float64(i) / float64(petals)
		p.dc.DrawCircle(ring*math.Cos(theta), ring*math.Sin(theta), radius)
		p.dc.Fill()
	}
	p.dc.SetColor(hexColor(stickerCenter, m.Opacity))
	p.dc.DrawCircle(0, 0, radius*0.9)
	p.dc.Fill()
}

func (p *painter) captions() error {
	for _, c := range []*layout.Caption{p.tree.Top, p.tree.Bottom} {
		if c == nil {
			continue
		}
		face, err := p.fonts.Face(fonts.CaptionFamily, captionSize*p.k)
		if err != nil {
			return errors.Wrap(errors.ErrCodeCapture, err, "caption font")
		}
		p.dc.SetFontFace(face)
		p.dc.SetColor(hexColor(captionColor, c.Opacity))
		b := c.Box
		p.dc.DrawStringAnchored(c.Text, (b.X+b.W/2)*p.k, (b.Y+b.H/2)*p.k, 0.5, 0.5)
	}
	return nil
}

func (p *painter) chars() error {
	if len(p.tree.Chars) == 0 {
		return nil
	}
	size := float64(layout.ClampFontSize(p.tree.Font.Size))
	face, err := p.fonts.Face(p.tree.Font.Family, size*p.k)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCapture, err, "text font %q", p.tree.Font.Family)
	}
	p.dc.SetFontFace(face)

	r := p.tree.TextRegion
	for _, ch := range p.tree.Chars {
		x := (r.X + ch.X/100*r.W) * p.k
		y := (r.Y + ch.Y/100*r.H) * p.k

		p.dc.Push()
		p.dc.Translate(x, y)
		p.dc.Rotate(gg.Radians(ch.Rotation))
		if ch.Scale > 0 {
			p.dc.Scale(ch.Scale, ch.Scale)
		}
		p.dc.SetColor(color.NRGBA{A: alpha(shadowOpacity)})
		p.dc.DrawStringAnchored(ch.Char, p.k, p.k, 0.5, 0.5)
		p.dc.SetColor(hexColor(ch.Color, ch.Opacity))
		p.dc.DrawStringAnchored(ch.Char, 0, 0, 0.5, 0.5)
		p.dc.Pop()
	}
	return nil
}

// hexColor parses #rrggbb and applies opacity. Malformed input yields black.
func hexColor(hex string, opacity float64) color.NRGBA {
	c := color.NRGBA{A: alpha(opacity)}
	if len(hex) != 7 || hex[0] != '#' {
		return c
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return c
	}
	c.R, c.G, c.B = uint8(v>>16), uint8(v>>8), uint8(v)
	return c
}

func alpha(opacity float64) uint8 {
	return uint8(math.Round(max(0, min(1, opacity)) * 255))
}
