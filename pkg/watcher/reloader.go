package watcher

import (
	"context"

	"github.com/ritzau/taskboard/pkg/logging"
	"github.com/ritzau/taskboard/pkg/preset"
)

// PresetSink receives reloaded preset registries
type PresetSink interface {
	ReplacePresets(registry *preset.Registry)
}

// ReloadPresets reloads the preset file for every write event until events is closed
// or ctx is done. A file that was removed or fails to parse leaves the current presets
// in place. It returns the number of successful reloads.
func ReloadPresets(ctx context.Context, events <-chan ChangeEvent, path string, sink PresetSink) int {
	reloads := 0
	for {
		select {
		case <-ctx.Done():
			return reloads

		case event, ok := <-events:
			if !ok {
				return reloads
			}

			if event.Type == ChangeTypeRemove {
				logging.Warn("preset file removed, keeping current presets", "path", path)
				continue
			}

			registry, err := preset.LoadFile(path)
			if err != nil {
				logging.Error("failed to reload presets, keeping current presets", "path", path, "error", err)
				continue
			}

			sink.ReplacePresets(registry)
			reloads++
			logging.Info("reloaded presets", "path", path, "presets", registry.Len())
		}
	}
}
