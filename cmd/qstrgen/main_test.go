package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	content := "catalog: cat.txt\ntranslation_header: translations.h\ncompression_header: compress.h\nmax_words: 42\ncache_path: dict.cache\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, err := loadManifest(path)
	if err != nil {
		t.Fatalf("loadManifest error: %v", err)
	}
	if m.Catalog != "cat.txt" || m.Translation != "translations.h" || m.Compression != "compress.h" {
		t.Fatalf("loadManifest = %+v, unexpected paths", m)
	}
	if m.MaxWords != 42 {
		t.Fatalf("MaxWords = %d, want 42", m.MaxWords)
	}
	if m.CachePath != "dict.cache" {
		t.Fatalf("CachePath = %q, want %q", m.CachePath, "dict.cache")
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	if _, err := loadManifest("/nonexistent/path/manifest.yaml"); err == nil {
		t.Fatalf("loadManifest on a missing file did not error")
	}
}

func TestMergeManifestFlagsOverrideManifest(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	catalogFlag := fs.String("catalog", "", "")
	maxWordsFlag := fs.Int("max-words", 0, "")
	if err := fs.Parse([]string{"-catalog", "override.txt", "-max-words", "7"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	base := manifest{Catalog: "base.txt", Translation: "t.h", Compression: "c.h", MaxWords: 1, CachePath: "cache"}
	flags := manifest{Catalog: *catalogFlag, MaxWords: *maxWordsFlag}

	merged := mergeManifest(base, flags, fs)
	if merged.Catalog != "override.txt" {
		t.Fatalf("Catalog = %q, want explicit flag to win", merged.Catalog)
	}
	if merged.MaxWords != 7 {
		t.Fatalf("MaxWords = %d, want explicit flag to win", merged.MaxWords)
	}
	if merged.Translation != "t.h" || merged.Compression != "c.h" || merged.CachePath != "cache" {
		t.Fatalf("unset fields should fall back to the manifest: %+v", merged)
	}
}

func TestBuildEndToEnd(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.txt")
	translationPath := filepath.Join(dir, "translations.h")
	compressionPath := filepath.Join(dir, "compress.h")

	catalogContent := "hello\thello world\ngoodbye\tgoodbye world\n"
	if err := os.WriteFile(catalogPath, []byte(catalogContent), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := manifest{Catalog: catalogPath, Translation: translationPath, Compression: compressionPath}
	if err := build(cfg); err != nil {
		t.Fatalf("build error: %v", err)
	}

	translationBytes, err := os.ReadFile(translationPath)
	if err != nil {
		t.Fatalf("ReadFile translation header: %v", err)
	}
	if !bytes.Contains(translationBytes, []byte("TRANSLATION(")) {
		t.Fatalf("translation header missing TRANSLATION lines:\n%s", translationBytes)
	}

	compressionBytes, err := os.ReadFile(compressionPath)
	if err != nil {
		t.Fatalf("ReadFile compression header: %v", err)
	}
	if !strings.Contains(string(compressionBytes), "lengths[]") {
		t.Fatalf("compression header missing lengths array:\n%s", compressionBytes)
	}
}

func TestRunRequiresAllPaths(t *testing.T) {
	if err := run([]string{"-catalog", "x.txt"}); err == nil {
		t.Fatalf("run with missing output paths did not error")
	}
}
