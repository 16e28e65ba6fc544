package layout

import (
	"math/rand/v2"
	"time"

	"github.com/matzehuels/guidecard/pkg/scatter"
)

const (
	floatPeriod    = 3 * time.Second
	floatStagger   = 200 * time.Millisecond
	floatMaxDelay  = time.Second
	wavePeriod     = 4 * time.Second
	waveStagger    = 50 * time.Millisecond
	captionOpacity = 0.2
)

// NewRand returns a PCG source. Seed 0 draws a fresh seed from the
// auto-seeded global generator.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Compose regenerates every element of the card. Lines and emoji are only
// generated when their toggle is on; with dynamic on they carry motion.
func Compose(st *State, rng *rand.Rand, canvas Canvas) VisualTree {
	region := canvas.textRegion(st.TopText != "", st.BottomText != "")
	tree := VisualTree{
		Canvas:     canvas,
		Font:       st.Font,
		Styles:     st.Styles,
		Lines:      []Line{},
		Emoji:      []Emoji{},
		TextRegion: region,
	}

	if st.Styles.Lines {
		for i, seg := range scatter.Lines(rng) {
			l := Line{LineSegment: seg}
			if st.Styles.Dynamic {
				l.Motion = &Motion{Name: MotionLineWave, Period: wavePeriod, Delay: time.Duration(i) * waveStagger}
			}
			tree.Lines = append(tree.Lines, l)
		}
	}

	if st.Styles.Emoji {
		for i, m := range scatter.Emojis(rng) {
			e := Emoji{EmojiMarker: m}
			if st.Styles.Dynamic {
				e.Motion = &Motion{Name: MotionFloat, Period: floatPeriod, Delay: (time.Duration(i) * floatStagger) % floatMaxDelay}
			}
			tree.Emoji = append(tree.Emoji, e)
		}
	}

	tree.Chars = scatter.Text(st.MainText, ClampFontSize(st.Font.Size), scatter.TextGeometry{Width: region.W}, rng)

	if st.TopText != "" {
		tree.Top = &Caption{
			Text:    st.TopText,
			Opacity: captionOpacity + rng.Float64()*captionOpacity,
			Box:     Rect{X: canvas.Padding, Y: canvas.Padding, W: region.W, H: captionLineHeight},
		}
	}
	if st.BottomText != "" {
		tree.Bottom = &Caption{
			Text:    st.BottomText,
			Opacity: captionOpacity + rng.Float64()*captionOpacity,
			Box:     Rect{X: canvas.Padding, Y: canvas.Height - canvas.Padding - captionLineHeight, W: region.W, H: captionLineHeight},
		}
	}
	return tree
}
