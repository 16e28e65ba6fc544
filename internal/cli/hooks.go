package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnCompose(_ context.Context, lines, emoji, chars int, d time.Duration) {
	h.logger.Debug("compose", "lines", lines, "emoji", emoji, "chars", chars, "duration", d)
}

func (h logHooks) OnExportStart(_ context.Context, format string) {
	h.logger.Debug("export start", "format", format)
}

func (h logHooks) OnFrameCaptured(_ context.Context, index, size int) {
	h.logger.Debug("frame", "index", index, "bytes", size)
}

func (h logHooks) OnExportComplete(_ context.Context, format string, frames, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("export failed", "format", format, "frames", frames, "err", err)
		return
	}
	h.logger.Debug("export done", "format", format, "frames", frames, "bytes", size, "duration", d)
}

func (h logHooks) OnExportBusy(context.Context) {
	h.logger.Debug("export busy")
}
