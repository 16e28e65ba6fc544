// Package scatter implements the procedural generators behind a guidance card.
//
// Three generators produce the card's content in canvas-percentage
// coordinates (0–100 on both axes, independent of pixel size):
//
//   - [Lines]: decorative noise made of subdivided cubic Bezier curves plus a
//     handful of short loose strokes
//   - [Emojis]: glyph markers placed by bounded-retry rejection sampling so no
//     two markers are closer than [MinEmojiDistance]
//   - [Text]: one [ScatteredChar] per rune of the main text, laid out left to
//     right on a wavy baseline that sags when the text overflows
//
// Every generator is a pure function of its inputs and the supplied
// *rand.Rand. Pass a seeded source for reproducible output:
//
//	rng := rand.New(rand.NewPCG(42, 42^0xdeadbeef))
//	chars := scatter.Text("wechat_id", 40, scatter.TextGeometry{Width: 352}, rng)
//
// The generators have no failure modes.
package scatter
