// Package render paints a [layout.VisualTree] onto a raster surface.
//
// # Overview
//
// [Mount] binds a tree to a [Surface] and starts its clock. Every
// [Surface.Capture] paints the tree with motion evaluated at the time elapsed
// since mount and returns PNG bytes, so two captures a few hundred
// milliseconds apart show the floating emoji and waving lines at different
// positions.
//
//	s := render.Mount(tree, render.WithFonts(set))
//	png, err := s.Capture(ctx, render.CaptureOptions{Scale: 2, Transparent: true})
//
// # Scale
//
// Output size is the canvas display size multiplied by Scale and
// PixelDensity. Both default to 1. Geometry, line widths and font faces are
// scaled explicitly so text stays crisp at any factor.
//
// # Paint Order
//
//  1. Card background (rounded gradient)
//  2. Decorative lines
//  3. Emoji markers
//  4. Top and bottom captions
//  5. Scattered characters
//
// Emoji are drawn with the emoji font when one is loaded in the font set and
// as procedural stickers otherwise.
//
// [layout.VisualTree]: github.com/matzehuels/guidecard/pkg/layout.VisualTree
package render
