package scatter

import "math/rand/v2"

// Palette is the fixed set of colours shared by lines and characters.
var Palette = [...]string{
	"#d00b57",
	"#eb89a7",
	"#a789eb",
	"#89eba7",
	"#eba789",
}

// Opacity band for characters and emoji.
const (
	OpacityMin = 0.4
	OpacityMax = 0.6
)

func pickColor(rng *rand.Rand) string {
	return Palette[rng.IntN(len(Palette))]
}

// between draws uniformly from [lo, hi).
func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// jitter draws uniformly from [-amount/2, amount/2).
func jitter(rng *rand.Rand, amount float64) float64 {
	return (rng.Float64() - 0.5) * amount
}
