// Package export captures a mounted card as a PNG or a looping GIF and hands
// the bytes to a Downloader.
//
// An Exporter runs at most one capture sequence at a time. A trigger that
// arrives while a sequence is running is rejected with OutcomeBusy rather
// than queued.
//
// # Usage
//
//	ex := export.New(export.DirDownloader{Dir: "out"}, export.WithLogger(logger))
//	res, err := ex.Export(ctx, surface, tree.Styles)
package export

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/semaphore"

	"github.com/matzehuels/guidecard/pkg/errors"
	"github.com/matzehuels/guidecard/pkg/layout"
	"github.com/matzehuels/guidecard/pkg/observability"
	"github.com/matzehuels/guidecard/pkg/render"
)

// Fixed download names.
const (
	StaticFilename   = "xhs-image.png"
	AnimatedFilename = "xhs-image.gif"
)

// Capture parameters.
const (
	StaticScale    = 2.0
	FrameCount     = 6
	FrameSettle    = 200 * time.Millisecond
	FrameDensity   = 1.5
	FrameInterval  = 0.2 // seconds
	GIFQuality     = 8
	pngContentType = "image/png"
	gifContentType = "image/gif"
	formatPNG      = "png"
	formatGIF      = "gif"
)

// Surface is the capturable handle of a mounted card.
type Surface interface {
	Capture(ctx context.Context, opts render.CaptureOptions) ([]byte, error)
	Size() (w, h float64)
	Mounted() bool
}

// AssembleOptions controls animation assembly.
type AssembleOptions struct {
	Width         int
	Height        int
	FrameInterval float64 // seconds per frame
	Quality       int     // palette sampling stride, 1 is best
}

// Assembler turns captured PNG frames into one animation.
type Assembler interface {
	Assemble(ctx context.Context, frames [][]byte, opts AssembleOptions) ([]byte, error)
}

// Downloader delivers finished bytes under a filename.
type Downloader interface {
	Download(ctx context.Context, name, contentType string, data []byte) error
}

// Outcome is how an Export call ended.
type Outcome int

const (
	OutcomeDownloaded Outcome = iota
	OutcomeBusy
	OutcomeNoSurface
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDownloaded:
		return "downloaded"
	case OutcomeBusy:
		return "busy"
	case OutcomeNoSurface:
		return "no-surface"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Status is the exporter state machine position.
type Status int

const (
	StatusIdle Status = iota
	StatusCapturing
)

func (s Status) String() string {
	if s == StatusCapturing {
		return "capturing"
	}
	return "idle"
}

// Result describes a finished Export call.
type Result struct {
	Outcome  Outcome
	Filename string
	Frames   int
	Size     int
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Option configures an Exporter.
type Option func(*Exporter)

// WithAssembler replaces the default GIF assembler.
func WithAssembler(a Assembler) Option {
	return func(e *Exporter) { e.assembler = a }
}

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(e *Exporter) { e.logger = l }
}

// WithSleeper replaces the settle wait, mainly for tests.
func WithSleeper(s Sleeper) Option {
	return func(e *Exporter) { e.sleep = s }
}

// Exporter runs capture sequences. It is safe for concurrent use; only one
// sequence runs at a time.
type Exporter struct {
	downloader Downloader
	assembler  Assembler
	logger     *log.Logger
	sleep      Sleeper
	guard      *semaphore.Weighted

	mu      sync.Mutex
	status  Status
	lastErr error
}

// New returns an Exporter delivering to d.
func New(d Downloader, opts ...Option) *Exporter {
	e := &Exporter{
		downloader: d,
		assembler:  GIFAssembler{},
		sleep:      sleepContext,
		guard:      semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	return e
}

// Status reports whether a sequence is running.
func (e *Exporter) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// LastError returns the error of the most recent failed sequence, or nil
// when the last sequence succeeded.
func (e *Exporter) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Export captures s and downloads the result. styles decides between the
// static and the animated path. A nil or unmounted surface is a no-op.
func (e *Exporter) Export(ctx context.Context, s Surface, styles layout.StyleSelection) (Result, error) {
	if !e.guard.TryAcquire(1) {
		e.logger.Debug("export already running, ignoring trigger")
		observability.Export().OnExportBusy(ctx)
		return Result{Outcome: OutcomeBusy}, nil
	}
	defer e.guard.Release(1)

	if s == nil || !s.Mounted() {
		e.logger.Debug("export requested before a surface was mounted")
		return Result{Outcome: OutcomeNoSurface}, nil
	}

	e.setStatus(StatusCapturing, nil)
	var (
		res Result
		err error
	)
	defer func() { e.setStatus(StatusIdle, err) }()

	format := formatPNG
	if styles.Dynamic {
		format = formatGIF
	}
	start := time.Now()
	observability.Export().OnExportStart(ctx, format)

	if styles.Dynamic {
		res, err = e.animated(ctx, s)
	} else {
		res, err = e.static(ctx, s)
	}
	if err != nil {
		res.Outcome = OutcomeFailed
	}

	observability.Export().OnExportComplete(ctx, format, res.Frames, res.Size, time.Since(start), err)
	if err != nil {
		e.logger.Error("export failed", "format", format, "err", err)
		return res, err
	}
	e.logger.Info("exported card", "file", res.Filename, "frames", res.Frames, "bytes", res.Size, "duration", time.Since(start).Round(time.Millisecond))
	return res, nil
}

func (e *Exporter) static(ctx context.Context, s Surface) (Result, error) {
	data, err := s.Capture(ctx, render.CaptureOptions{Scale: StaticScale, PixelDensity: 1, Transparent: true})
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeCapture, err, "capture static image")
	}
	observability.Export().OnFrameCaptured(ctx, 0, len(data))
	res := Result{Filename: StaticFilename, Frames: 1, Size: len(data)}
	return e.deliver(ctx, res, pngContentType, data)
}

func (e *Exporter) animated(ctx context.Context, s Surface) (Result, error) {
	frames := make([][]byte, 0, FrameCount)
	for i := range FrameCount {
		if err := ctx.Err(); err != nil {
			return Result{Frames: len(frames)}, errors.Wrap(errors.ErrCodeCapture, err, "capture cancelled after %d frames", len(frames))
		}
		data, err := s.Capture(ctx, render.CaptureOptions{Scale: 1, PixelDensity: FrameDensity, Transparent: true})
		if err != nil {
			return Result{Frames: len(frames)}, errors.Wrap(errors.ErrCodeCapture, err, "capture frame %d", i)
		}
		frames = append(frames, data)
		observability.Export().OnFrameCaptured(ctx, i, len(data))
		e.logger.Debug("captured frame", "index", i, "bytes", len(data))

		if err := e.sleep(ctx, FrameSettle); err != nil {
			return Result{Frames: len(frames)}, errors.Wrap(errors.ErrCodeCapture, err, "settle after frame %d", i)
		}
	}

	w, h := s.Size()
	anim, err := e.assembler.Assemble(ctx, frames, AssembleOptions{
		Width:         int(w * FrameDensity),
		Height:        int(h * FrameDensity),
		FrameInterval: FrameInterval,
		Quality:       GIFQuality,
	})
	if err != nil {
		return Result{Frames: len(frames)}, errors.Wrap(errors.ErrCodeAssembly, err, "assemble %d frames", len(frames))
	}
	res := Result{Filename: AnimatedFilename, Frames: len(frames), Size: len(anim)}
	return e.deliver(ctx, res, gifContentType, anim)
}

func (e *Exporter) deliver(ctx context.Context, res Result, contentType string, data []byte) (Result, error) {
	if err := e.downloader.Download(ctx, res.Filename, contentType, data); err != nil {
		return res, errors.Wrap(errors.ErrCodeDownload, err, "download %s", res.Filename)
	}
	res.Outcome = OutcomeDownloaded
	return res, nil
}

func (e *Exporter) setStatus(s Status, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = s
	if s == StatusIdle {
		e.lastErr = err
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
