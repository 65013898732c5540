package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mondrian/pkg/observability"
)

// logHooks logs engine and render events at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.EngineHooks = (*logHooks)(nil)
	_ observability.RenderHooks = (*logHooks)(nil)
)

func (h *logHooks) OnSplit(matched, created, tiles int, err error) {
	if err != nil {
		h.logger.Debug("Split rejected", "matched", matched, "tiles", tiles, "err", err)
		return
	}
	h.logger.Debug("Split", "matched", matched, "created", created, "tiles", tiles)
}

func (h *logHooks) OnRecolor(index int, hex string, err error) {
	if err != nil {
		h.logger.Debug("Recolor rejected", "tile", index, "fill", hex, "err", err)
		return
	}
	h.logger.Debug("Recolor", "tile", index, "fill", hex)
}

func (h *logHooks) OnUndo(restored bool, remaining int) {
	if !restored {
		h.logger.Debug("Nothing to undo")
		return
	}
	h.logger.Debug("Undo", "remaining", remaining)
}

func (h *logHooks) OnOutline(enabled, changed bool) {
	if changed {
		h.logger.Debug("Outline", "enabled", enabled)
	}
}

func (h *logHooks) OnRenderStart(_ context.Context, format string, tiles int) {
	h.logger.Debug("Rendering", "format", format, "tiles", tiles)
}

func (h *logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Render failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("Rendered", "format", format, "bytes", size, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnCacheError(_ context.Context, op, format string, err error) {
	h.logger.Warn("Artifact cache unavailable", "op", op, "format", format, "err", err)
}
