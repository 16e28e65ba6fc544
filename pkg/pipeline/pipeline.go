// Package pipeline provides the card pipeline shared by the CLI and the
// HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. State: apply the request to a fresh [layout.State]
//  2. Layout: compose a visual tree with fresh randomness
//  3. Export: mount the tree and capture it as PNG or GIF
//
// Nothing is cached between runs; every Layout call regenerates the card.
//
// # Usage
//
//	runner := pipeline.NewRunner(fontSet, logger)
//	opts := pipeline.Options{
//	    MainText: "wechat_id",
//	    Styles:   layout.StyleSelection{Lines: true, Emoji: true},
//	}
//	result, err := runner.Execute(ctx, opts, export.DirDownloader{Dir: "."})
//
// Run individual stages:
//
//	tree, err := runner.Layout(ctx, opts)
//	res, err := runner.Export(ctx, tree, downloader)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/guidecard/pkg/errors"
	"github.com/matzehuels/guidecard/pkg/export"
	"github.com/matzehuels/guidecard/pkg/fonts"
	"github.com/matzehuels/guidecard/pkg/layout"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains one card request.
// This struct supports JSON serialization for API requests.
type Options struct {
	TopText    string                 `json:"top_text,omitempty"`
	MainText   string                 `json:"main_text"`
	BottomText string                 `json:"bottom_text,omitempty"`
	Font       string                 `json:"font,omitempty"`
	FontSize   int                    `json:"font_size,omitempty"`
	Styles     *layout.StyleSelection `json:"styles,omitempty"` // nil means the initial selection
	Seed       uint64                 `json:"seed,omitempty"`   // 0 draws a random seed

	// Runtime options (not serialized)
	Canvas layout.Canvas `json:"-"`
	Logger *log.Logger   `json:"-"` // nil logs through the runner's logger

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Tree   layout.VisualTree
	Export export.Result
	Stats  Stats
}

// Stats contains pipeline timing.
type Stats struct {
	LayoutTime time.Duration
	ExportTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the text fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.MainText == "" {
		return errors.New(errors.ErrCodeInvalidInput, "main text is required")
	}
	fields := []struct{ name, text string }{
		{"top text", o.TopText},
		{"main text", o.MainText},
		{"bottom text", o.BottomText},
	}
	for _, f := range fields {
		if err := errors.ValidateText(f.name, f.text); err != nil {
			return err
		}
	}
	if o.Font != "" {
		if err := fonts.Validate(o.Font); err != nil {
			return err
		}
	}
	o.SetLayoutDefaults()
	o.validated = true
	return nil
}

// SetLayoutDefaults fills zero values.
func (o *Options) SetLayoutDefaults() {
	if o.Font == "" {
		o.Font = fonts.DefaultFamily
	}
	if o.FontSize == 0 {
		o.FontSize = layout.DefaultFontSize
	}
	if o.Canvas.Width == 0 || o.Canvas.Height == 0 {
		o.Canvas = layout.DefaultCanvas
	}
}

// State builds the layout state the request describes. Font sizes outside
// the supported range are clamped.
func (o *Options) State() (*layout.State, error) {
	if err := o.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	st := layout.NewState()
	if err := st.SetTopText(o.TopText); err != nil {
		return nil, err
	}
	if err := st.SetMainText(o.MainText); err != nil {
		return nil, err
	}
	if err := st.SetBottomText(o.BottomText); err != nil {
		return nil, err
	}
	if err := st.SetFontFamily(o.Font); err != nil {
		return nil, err
	}
	st.SetFontSize(o.FontSize)
	if o.Styles != nil {
		st.SetStyles(*o.Styles)
	}
	return st, nil
}
