package export

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"math"
	"sort"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/guidecard/pkg/errors"
)

// maxColors leaves one palette slot for the transparent entry.
const maxColors = 255

// GIFAssembler encodes PNG frames as a looping GIF.
type GIFAssembler struct{}

// Assemble resizes every frame to opts.Width x opts.Height, quantises it to
// its own palette and encodes the sequence with an infinite loop.
func (GIFAssembler) Assemble(ctx context.Context, frames [][]byte, opts AssembleOptions) ([]byte, error) {
	if len(frames) == 0 {
		return nil, errors.New(errors.ErrCodeAssembly, "no frames")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.New(errors.ErrCodeAssembly, "invalid size %dx%d", opts.Width, opts.Height)
	}
	stride := max(1, opts.Quality)
	delay := int(math.Round(opts.FrameInterval * 100))

	anim := &gif.GIF{LoopCount: 0}
	for i, data := range frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAssembly, err, "decode frame %d", i)
		}
		img := imaging.Resize(src, opts.Width, opts.Height, imaging.Lanczos)

		pm := image.NewPaletted(img.Bounds(), popularityPalette(img, stride))
		draw.FloydSteinberg.Draw(pm, pm.Bounds(), img, image.Point{})

		anim.Image = append(anim.Image, pm)
		anim.Delay = append(anim.Delay, delay)
		anim.Disposal = append(anim.Disposal, gif.DisposalBackground)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssembly, err, "encode gif")
	}
	return buf.Bytes(), nil
}

type bucket struct {
	r, g, b uint64
	n       uint64
}

// popularityPalette samples every stride-th pixel, groups opaque samples
// into 15-bit colour cells and keeps the most frequent cells, each
// represented by its mean colour. Index 0 is fully transparent.
func popularityPalette(img *image.NRGBA, stride int) color.Palette {
	cells := make(map[uint16]*bucket)
	pixels := len(img.Pix) / 4
	for p := 0; p < pixels; p += stride {
		px := img.Pix[p*4 : p*4+4]
		if px[3] < 0x80 {
			continue
		}
		key := uint16(px[0]>>3)<<10 | uint16(px[1]>>3)<<5 | uint16(px[2]>>3)
		c := cells[key]
		if c == nil {
			c = &bucket{}
			cells[key] = c
		}
		c.r += uint64(px[0])
		c.g += uint64(px[1])
		c.b += uint64(px[2])
		c.n++
	}

	ranked := make([]*bucket, 0, len(cells))
	for _, c := range cells {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].n != ranked[j].n {
			return ranked[i].n > ranked[j].n
		}
		return meanKey(ranked[i]) < meanKey(ranked[j])
	})
	if len(ranked) > maxColors {
		ranked = ranked[:maxColors]
	}

	pal := color.Palette{color.RGBA{}}
	for _, c := range ranked {
		pal = append(pal, color.RGBA{
			R: uint8(c.r / c.n),
			G: uint8(c.g / c.n),
			B: uint8(c.b / c.n),
			A: 0xff,
		})
	}
	if len(pal) == 1 {
		pal = append(pal, color.RGBA{A: 0xff})
	}
	return pal
}

func meanKey(c *bucket) uint64 {
	return (c.r/c.n)<<16 | (c.g/c.n)<<8 | c.b/c.n
}
