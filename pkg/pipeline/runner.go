package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/guidecard/pkg/errors"
	"github.com/matzehuels/guidecard/pkg/export"
	"github.com/matzehuels/guidecard/pkg/fonts"
	"github.com/matzehuels/guidecard/pkg/layout"
	"github.com/matzehuels/guidecard/pkg/observability"
	"github.com/matzehuels/guidecard/pkg/render"
)

// Runner executes card pipelines. It holds no per-card state, so one
// Runner can serve many goroutines; each Export call gets its own
// exporter and surface.
type Runner struct {
	Fonts  *fonts.Set
	Logger *log.Logger

	// ExportOptions are applied to every exporter the runner creates.
	ExportOptions []export.Option
}

// NewRunner creates a runner. A nil font set serves the embedded fonts.
func NewRunner(fontSet *fonts.Set, logger *log.Logger) *Runner {
	if fontSet == nil {
		fontSet = fonts.NewSet()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Fonts: fontSet, Logger: logger}
}

// Execute runs the complete layout → export pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options, d export.Downloader) (*Result, error) {
	result := &Result{}

	layoutStart := time.Now()
	tree, err := r.Layout(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Tree = tree
	result.Stats.LayoutTime = time.Since(layoutStart)

	exportStart := time.Now()
	res, err := r.Export(ctx, tree, d, export.WithLogger(r.logger(opts)))
	result.Export = res
	result.Stats.ExportTime = time.Since(exportStart)
	if err != nil {
		return result, err
	}
	return result, nil
}

// Layout composes a fresh visual tree for opts.
func (r *Runner) Layout(ctx context.Context, opts Options) (layout.VisualTree, error) {
	st, err := opts.State()
	if err != nil {
		return layout.VisualTree{}, err
	}
	if !st.CanGenerate() {
		return layout.VisualTree{}, errors.New(errors.ErrCodeInvalidInput, "main text is required")
	}

	start := time.Now()
	tree := layout.Compose(st, layout.NewRand(opts.Seed), opts.Canvas)
	elapsed := time.Since(start)

	observability.Layout().OnCompose(ctx, len(tree.Lines), len(tree.Emoji), len(tree.Chars), elapsed)
	r.logger(opts).Debug("composed card",
		"styles", tree.Styles.String(),
		"lines", len(tree.Lines),
		"emoji", len(tree.Emoji),
		"chars", len(tree.Chars),
		"duration", elapsed)
	return tree, nil
}

// Mount binds tree to a render surface using the runner's fonts.
func (r *Runner) Mount(tree layout.VisualTree) *render.Surface {
	return render.Mount(tree, render.WithFonts(r.Fonts))
}

// Export mounts tree and exports it to d. extra is applied after the
// runner's ExportOptions.
func (r *Runner) Export(ctx context.Context, tree layout.VisualTree, d export.Downloader, extra ...export.Option) (export.Result, error) {
	opts := append([]export.Option{export.WithLogger(r.Logger)}, r.ExportOptions...)
	ex := export.New(d, append(opts, extra...)...)
	return ex.Export(ctx, r.Mount(tree), tree.Styles)
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
