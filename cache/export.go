package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ExportVersion is written into every export file. Imports accept any 1.x file.
const ExportVersion = "1.0"

// ExportFile is the on-disk form of a cache: resolved chunk translations
// keyed by CacheKey, sorted by key so that two exports diff cleanly.
type ExportFile struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Entries    []Entry           `json:"entries"`
}

// Entry is one cached translation.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ImportResult summarises an import.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int
	Failed   int // blank keys or values, and entries the cache rejected
}

// Exporter writes an EnumerableCache as an ExportFile.
type Exporter struct {
	cache TranslationCache
}

// NewExporter creates a cache exporter.
func NewExporter(cache TranslationCache) *Exporter {
	return &Exporter{cache: cache}
}

func (e *Exporter) snapshot(metadata map[string]string) (*ExportFile, error) {
	src, ok := e.cache.(EnumerableCache)
	if !ok {
		return nil, fmt.Errorf("cache type %T does not support export", e.cache)
	}
	live := src.Entries()
	file := &ExportFile{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC().Truncate(time.Second),
		Metadata:   metadata,
		Entries:    make([]Entry, 0, len(live)),
	}
	for k, v := range live {
		file.Entries = append(file.Entries, Entry{Key: k, Value: v})
	}
	sort.Slice(file.Entries, func(i, j int) bool { return file.Entries[i].Key < file.Entries[j].Key })
	return file, nil
}

// Export writes the cache contents to w. Arabic text and markup stay unescaped.
func (e *Exporter) Export(w io.Writer, metadata map[string]string) error {
	file, err := e.snapshot(metadata)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("encoding cache export: %w", err)
	}
	return nil
}

// ExportToFile writes the export next to path and renames it into place, so an
// interrupted run never leaves a truncated cache file behind.
func (e *Exporter) ExportToFile(path string, metadata map[string]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating cache export: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := e.Export(tmp, metadata); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing cache export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Importer loads an ExportFile into a cache.
type Importer struct {
	cache TranslationCache
}

// NewImporter creates a cache importer.
func NewImporter(cache TranslationCache) *Importer {
	return &Importer{cache: cache}
}

// Import reads an export from r and stores its entries. A file written by an
// incompatible major version is rejected before anything is stored.
func (i *Importer) Import(r io.Reader) (*ImportResult, error) {
	var file ExportFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding cache export: %w", err)
	}
	if major, _, _ := strings.Cut(file.Version, "."); major != "1" {
		return nil, fmt.Errorf("unsupported cache export version %q", file.Version)
	}

	res := &ImportResult{Version: file.Version, Metadata: file.Metadata}
	for _, entry := range file.Entries {
		if strings.TrimSpace(entry.Key) == "" || entry.Value == "" {
			res.Failed++
			continue
		}
		if err := i.cache.Set(entry.Key, entry.Value); err != nil {
			res.Failed++
			continue
		}
		res.Imported++
	}
	return res, nil
}

// ImportFromFile imports the export stored at path.
func (i *Importer) ImportFromFile(path string) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening cache export: %w", err)
	}
	defer f.Close()
	return i.Import(f)
}
