package cache

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExporter_Export(t *testing.T) {
	c := NewInMemoryCache(time.Hour)
	c.Set("key2", "value2")
	c.Set("key1", "value1")

	var buf bytes.Buffer
	if err := NewExporter(c).Export(&buf, map[string]string{"pair": "en:ar"}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var export ExportFile
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("Failed to parse export: %v", err)
	}

	if export.Version != ExportVersion {
		t.Errorf("Expected version %s, got %s", ExportVersion, export.Version)
	}
	if len(export.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(export.Entries))
	}
	if export.Entries[0].Key != "key1" || export.Entries[1].Key != "key2" {
		t.Errorf("Entries should be sorted by key, got %v", export.Entries)
	}
	if export.Metadata["pair"] != "en:ar" {
		t.Errorf("Expected metadata pair=en:ar, got %v", export.Metadata)
	}
}

func TestExporter_ArabicNotEscaped(t *testing.T) {
	c, _ := NewLRUCache(4)
	c.Set("k", "دجاج & أرز")

	var buf bytes.Buffer
	if err := NewExporter(c).Export(&buf, nil); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(buf.String(), "دجاج & أرز") {
		t.Errorf("export should keep text readable, got %s", buf.String())
	}
}

type opaqueCache struct{}

func (opaqueCache) Get(string) (string, bool) { return "", false }
func (opaqueCache) Set(string, string) error  { return nil }

func TestExporter_UnsupportedCache(t *testing.T) {
	var buf bytes.Buffer
	if err := NewExporter(opaqueCache{}).Export(&buf, nil); err == nil {
		t.Error("Expected error for a cache without Entries")
	}
}

func TestImporter_Import(t *testing.T) {
	jsonData := `{
		"version": "1.0",
		"exported_at": "2024-01-01T00:00:00Z",
		"entries": [
			{"key": "key1", "value": "value1"},
			{"key": "key2", "value": "value2"},
			{"key": "", "value": "orphan"}
		],
		"metadata": {"pair": "en:ar"}
	}`

	c := NewInMemoryCache(time.Hour)
	result, err := NewImporter(c).Import(strings.NewReader(jsonData))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}
	if result.Failed != 1 {
		t.Errorf("Expected 1 failed, got %d", result.Failed)
	}
	if result.Metadata["pair"] != "en:ar" {
		t.Errorf("Metadata = %v", result.Metadata)
	}
	if val, ok := c.Get("key1"); !ok || val != "value1" {
		t.Errorf("key1 not found or wrong value: %s", val)
	}
}

func TestExportImport_FileRoundTrip(t *testing.T) {
	src, _ := NewLRUCache(16)
	src.Set("hash1:en:ar", "برجر")
	src.Set("hash2:ar:en", "Tea")

	path := filepath.Join(t.TempDir(), "cache.json")
	if err := NewExporter(src).ExportToFile(path, nil); err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}

	dst := NewInMemoryCache(0)
	result, err := NewImporter(dst).ImportFromFile(path)
	if err != nil {
		t.Fatalf("ImportFromFile failed: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}
	if val, ok := dst.Get("hash1:en:ar"); !ok || val != "برجر" {
		t.Errorf("hash1:en:ar = %q, %v", val, ok)
	}
}

func TestExporter_EmptyCache(t *testing.T) {
	var buf bytes.Buffer
	if err := NewExporter(NewInMemoryCache(time.Hour)).Export(&buf, nil); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var export ExportFile
	json.Unmarshal(buf.Bytes(), &export)
	if len(export.Entries) != 0 {
		t.Errorf("Expected 0 entries for empty cache, got %d", len(export.Entries))
	}
}

func TestImporter_RejectsBlankEntries(t *testing.T) {
	jsonData := `{"version": "1.2", "entries": [{"key": "k", "value": ""}, {"key": "  ", "value": "v"}, {"key": "ok", "value": "شاي"}]}`

	c := NewInMemoryCache(0)
	result, err := NewImporter(c).Import(strings.NewReader(jsonData))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Imported != 1 || result.Failed != 2 {
		t.Errorf("Imported=%d Failed=%d, want 1 and 2", result.Imported, result.Failed)
	}
}

func TestImporter_UnsupportedVersion(t *testing.T) {
	c := NewInMemoryCache(0)
	_, err := NewImporter(c).Import(strings.NewReader(`{"version": "2.0", "entries": [{"key": "k", "value": "v"}]}`))
	if err == nil {
		t.Fatal("Expected error for a 2.x export")
	}
	if _, ok := c.Get("k"); ok {
		t.Error("nothing should be stored from a rejected export")
	}
}

func TestExportToFile_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewInMemoryCache(0)
	c.Set("k", "v")
	if err := NewExporter(c).ExportToFile(path, nil); err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"key": "k"`) {
		t.Errorf("file not replaced: %s", data)
	}
	matches, _ := filepath.Glob(path + ".*.tmp")
	if len(matches) != 0 {
		t.Errorf("temporary files left behind: %v", matches)
	}
}

func TestImporter_InvalidJSON(t *testing.T) {
	if _, err := NewImporter(NewInMemoryCache(time.Hour)).Import(strings.NewReader("invalid json")); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestImporter_MissingFile(t *testing.T) {
	if _, err := NewImporter(NewInMemoryCache(0)).ImportFromFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
