package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry describes one normalized sheet in the output manifest.
type ManifestEntry struct {
	Prefix  string `json:"prefix"`
	Image   string `json:"image"`
	Index   string `json:"index"`
	Sprites int    `json:"sprites"`
	Side    int    `json:"side"`
}

// WriteManifest writes manifest.json listing every successfully normalized
// sheet. Failed sheets are omitted.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		base := filepath.Base(r.Prefix)
		entries = append(entries, ManifestEntry{
			Prefix:  r.Prefix,
			Image:   base + ".png",
			Index:   base + ".xml",
			Sprites: r.Sprites,
			Side:    r.Side,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
