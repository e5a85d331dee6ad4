package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// ExportFormat is the JSON structure for cache export/import. Exports are
// used to warm-start development environments without re-paying the
// provider for translations that already exist.
type ExportFormat struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []ExportEntry     `json:"entries"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ExportEntry is a single cache entry.
type ExportEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Export writes the contents of a MemoryCache to w in JSON format.
func Export(w io.Writer, c *MemoryCache, metadata map[string]string) error {
	entries := c.Entries()
	out := ExportFormat{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    make([]ExportEntry, 0, len(entries)),
		Metadata:   metadata,
	}
	for key, value := range entries {
		out.Entries = append(out.Entries, ExportEntry{Key: key, Value: value})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// Import loads a previously exported snapshot into any cache.
func Import(r io.Reader, dst TranslationCache) (int, error) {
	var in ExportFormat
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return 0, fmt.Errorf("decoding export: %w", err)
	}

	ctx := context.Background()
	loaded := 0
	for _, entry := range in.Entries {
		if entry.Key == "" {
			continue
		}
		if err := dst.Set(ctx, entry.Key, entry.Value); err != nil {
			return loaded, fmt.Errorf("importing key %q: %w", entry.Key, err)
		}
		loaded++
	}
	return loaded, nil
}
