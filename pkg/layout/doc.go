// Package layout composes a guidance card from the application state.
//
// [State] holds everything the user controls (captions, main text, style
// toggles, font) and exposes one mutation method per user action. [Compose]
// turns a State into a [VisualTree] by running the scatter generators afresh:
// two calls with the same State produce different cards unless they share a
// seeded source from [NewRand].
//
//	st := layout.NewState()
//	_ = st.SetMainText("wechat_id")
//	st.SetStyle(layout.StyleLines, true)
//	tree := layout.Compose(st, layout.NewRand(42), layout.DefaultCanvas)
package layout
