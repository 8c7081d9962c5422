package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// manifest is the optional YAML build manifest (SPEC_FULL.md DOMAIN STACK
// item 4, grounded on SnellerInc-sneller's use of gopkg.in/yaml.v2),
// giving CI builds a repeatable, file-based alternative to flags.
type manifest struct {
	Catalog     string `yaml:"catalog"`
	Translation string `yaml:"translation_header"`
	Compression string `yaml:"compression_header"`
	MaxWords    int    `yaml:"max_words"`
	CachePath   string `yaml:"cache_path"`
}

// loadManifest reads and parses a YAML manifest file. Fields present in
// the manifest are later overridden by any flag the user passes
// explicitly (see main.go).
func loadManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}
