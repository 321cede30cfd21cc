package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame    int     `json:"frame"`
	TimeMs   float64 `json:"time_ms"`
	Image    string  `json:"image"`
	Feathers int     `json:"feathers"`
	Count    float64 `json:"count"`
	Color    string  `json:"color"`
}

// WriteManifest writes manifest.json for per-frame output. Frames whose
// result failed are left out.
func WriteManifest(path string, frames []Frame, results []Result) error {
	entries := make([]ManifestEntry, 0, len(frames))
	for i, f := range frames {
		if i < len(results) && !results[i].Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Frame:    f.Snapshot.Frame,
			TimeMs:   f.Snapshot.TimeMs,
			Image:    frameName(f.Snapshot.Frame),
			Feathers: len(f.Snapshot.Feathers),
			Count:    f.Params.Count,
			Color:    f.Params.Color.Clamped().Hex(),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func frameName(frame int) string {
	return fmt.Sprintf("frame_%04d.webp", frame)
}
