package scatter

import "math/rand/v2"

const (
	// EmojiSlots is the target marker count; fewer may be placed.
	EmojiSlots = 50
	// EmojiAttempts bounds the rejection sampling per slot.
	EmojiAttempts = 50
	// MinEmojiDistance is the minimum centre distance between two markers.
	MinEmojiDistance = 10.0
	// EmojiMargin insets candidates from every edge.
	EmojiMargin = 5.0

	emojiScaleMin = 1.1
	emojiScaleMax = 1.4
)

// Glyphs is the curated emoji set. Duplicates weight the draw.
var Glyphs = []string{
	"🌸", "✨", "💫", "🌟", "💝", "🎀", "🍠", "🌺", "🎈", "🪽", "🌷", "🍡",
	"💗", "🎉", "📕", "🔖", "🌢", "🌣", "🎔", "🎕", "🎘", "🎜", "🎝",
	"🌹", "🌻", "🌼", "🌱", "🍀", "🌿", "🎋", "🎍", "🪴", "🌳", "🌴",
	"🌵", "🍦", "🍪", "🎂", "🍰", "🥧", "🍫", "🍯", "🍼", "🧼", "☕",
	"🍵", "🍶", "🍾", "🍷", "🍻", "🥂", "🥃", "🥤", "🥢", "🍽", "🍴",
	"🌍", "🌎", "🌏", "🌐", "🗺", "🗾", "🏔", "⛰", "🌋", "🗻", "🏕",
	"🎠", "🎡", "🎢", "🎪", "🎭", "🎨", "🚂", "🚃", "🚄", "🛩",
	"⌛", "⏳", "⌚", "🕰", "🦖", "🌔", "🌕", "🌖", "🥑", "🍑", "🥝",
	"🎃", "🎄", "🎆", "🎇", "🎈", "🎉", "🎊", "🎋", "🎍", "🎎", "🎏",
}

// EmojiMarker is one decorative glyph on the card.
type EmojiMarker struct {
	Glyph    string  `json:"glyph"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"` // degrees
	Opacity  float64 `json:"opacity"`
	Scale    float64 `json:"scale"`
}

// Point returns the marker position.
func (m EmojiMarker) Point() Point { return Point{X: m.X, Y: m.Y} }

// Emojis places up to EmojiSlots markers. A slot whose EmojiAttempts
// candidates all land too close to an accepted marker is skipped.
func Emojis(rng *rand.Rand) []EmojiMarker {
	markers := make([]EmojiMarker, 0, EmojiSlots)
	for range EmojiSlots {
		p, ok := findSpot(rng, markers)
		if !ok {
			continue
		}
		markers = append(markers, EmojiMarker{
			Glyph:    Glyphs[rng.IntN(len(Glyphs))],
			X:        p.X,
			Y:        p.Y,
			Rotation: rng.Float64() * 360,
			Opacity:  between(rng, OpacityMin, OpacityMax),
			Scale:    between(rng, emojiScaleMin, emojiScaleMax),
		})
	}
	return markers
}

func findSpot(rng *rand.Rand, placed []EmojiMarker) (Point, bool) {
	for range EmojiAttempts {
		p := Point{
			X: between(rng, EmojiMargin, 100-EmojiMargin),
			Y: between(rng, EmojiMargin, 100-EmojiMargin),
		}
		if farFromAll(p, placed) {
			return p, true
		}
	}
	return Point{}, false
}

func farFromAll(p Point, placed []EmojiMarker) bool {
	for _, m := range placed {
		if p.Dist(m.Point()) < MinEmojiDistance {
			return false
		}
	}
	return true
}
