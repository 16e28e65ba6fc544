package render

import (
	"bytes"
	"context"
	"image"
	"math"
	"sync"
	"time"

	"github.com/matzehuels/guidecard/pkg/errors"
	"github.com/matzehuels/guidecard/pkg/fonts"
	"github.com/matzehuels/guidecard/pkg/layout"
)

// CaptureOptions controls one capture of the surface.
type CaptureOptions struct {
	Scale        float64 // output scale, 0 means 1
	PixelDensity float64 // device pixel ratio, 0 means 1
	Transparent  bool    // leave the area outside the card transparent
}

// Factor is the combined multiplier applied to display px.
func (o CaptureOptions) Factor() float64 {
	s, d := o.Scale, o.PixelDensity
	if s <= 0 {
		s = 1
	}
	if d <= 0 {
		d = 1
	}
	return s * d
}

// Option configures a Surface.
type Option func(*Surface)

// WithFonts sets the font set used for text and emoji.
func WithFonts(set *fonts.Set) Option {
	return func(s *Surface) { s.fonts = set }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Surface) { s.now = now }
}

// Surface is a mounted visual tree that can be captured repeatedly.
// Captures are serialised.
type Surface struct {
	tree    layout.VisualTree
	fonts   *fonts.Set
	now     func() time.Time
	mounted time.Time
	mu      sync.Mutex
}

// Mount binds tree to a new surface and starts its motion clock.
func Mount(tree layout.VisualTree, opts ...Option) *Surface {
	s := &Surface{tree: tree, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.fonts == nil {
		s.fonts = fonts.NewSet()
	}
	s.mounted = s.now()
	return s
}

// Mounted reports whether s is a live surface. It is safe on a nil receiver.
func (s *Surface) Mounted() bool { return s != nil }

// Tree returns the mounted tree.
func (s *Surface) Tree() layout.VisualTree { return s.tree }

// Size returns the display size in px.
func (s *Surface) Size() (w, h float64) {
	return s.tree.Canvas.Width, s.tree.Canvas.Height
}

// Elapsed returns the motion time since mount.
func (s *Surface) Elapsed() time.Duration {
	return s.now().Sub(s.mounted)
}

// Capture paints the surface at the current motion time and encodes PNG.
func (s *Surface) Capture(ctx context.Context, opts CaptureOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dc, err := s.paint(s.Elapsed(), opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCapture, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Frame paints the surface at an explicit motion time.
func (s *Surface) Frame(elapsed time.Duration, opts CaptureOptions) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dc, err := s.paint(elapsed, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// PixelSize returns the output size for opts.
func (s *Surface) PixelSize(opts CaptureOptions) (w, h int) {
	k := opts.Factor()
	return int(math.Round(s.tree.Canvas.Width * k)), int(math.Round(s.tree.Canvas.Height * k))
}
