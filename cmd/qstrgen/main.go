// Command qstrgen builds the compressed-translation companion header and
// main-header TRANSLATION lines of spec.md §6 from a translation catalog.
//
// Grounded on jonjohnsonjr-targz/main.go's run(args)-returns-error shape
// and onpair/analyze_tokens.go's stderr-diagnostic style: neither the
// teacher nor any other full repo in the example pack reaches for a CLI
// framework, so flags are parsed with the standard flag package.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/wuard/qstrgen/catalog"
	"github.com/wuard/qstrgen/generator"
	"github.com/wuard/qstrgen/table"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.New(os.Stderr, "", 0).Fatalf("qstrgen: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("qstrgen", flag.ContinueOnError)
	catalogPath := fs.String("catalog", "", "path to the translation catalog (tab-separated original/translation lines)")
	translationOut := fs.String("translation", "", "path to write the main-header TRANSLATION lines")
	compressionOut := fs.String("compression", "", "path to write the companion compression header")
	maxWords := fs.Int("max-words", 0, "cap the dictionary word count (0 = corpus-derived limit)")
	cachePath := fs.String("cache", "", "path to a dictionary build cache file (optional)")
	manifestPath := fs.String("config", "", "path to an optional YAML build manifest")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := manifest{
		Catalog:     *catalogPath,
		Translation: *translationOut,
		Compression: *compressionOut,
		MaxWords:    *maxWords,
		CachePath:   *cachePath,
	}
	if *manifestPath != "" {
		m, err := loadManifest(*manifestPath)
		if err != nil {
			return err
		}
		cfg = mergeManifest(*m, cfg, fs)
	}

	if cfg.Catalog == "" || cfg.Translation == "" || cfg.Compression == "" {
		return fmt.Errorf("catalog, translation, and compression output paths are all required")
	}

	return build(cfg)
}

// mergeManifest layers manifest fields under explicitly-passed flags: any
// flag the user set on the command line wins over the same field in the
// manifest file.
func mergeManifest(m manifest, flags manifest, fs *flag.FlagSet) manifest {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	out := m
	if set["catalog"] {
		out.Catalog = flags.Catalog
	}
	if set["translation"] {
		out.Translation = flags.Translation
	}
	if set["compression"] {
		out.Compression = flags.Compression
	}
	if set["max-words"] {
		out.MaxWords = flags.MaxWords
	}
	if set["cache"] {
		out.CachePath = flags.CachePath
	}
	return out
}

func build(cfg manifest) error {
	f, err := os.Open(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	// catalog.UnescapeOriginal is deliberately not applied here: per
	// spec.md §6 it collapses escapes only to form a gettext lookup key,
	// and LineLoader pairs translations directly with no lookup step.
	// pairs[i].Original must stay the raw, as-escaped literal so it is
	// emitted verbatim in TRANSLATION("<original>", ...).
	pairs, err := catalog.NewLineLoader(f).Load()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	var opts []generator.Option
	if cfg.MaxWords > 0 {
		opts = append(opts, generator.WithMaxWords(cfg.MaxWords))
	}
	if cfg.CachePath != "" {
		opts = append(opts, generator.WithCache(cfg.CachePath))
	}

	result, err := generator.Build(pairs, opts...)
	if err != nil {
		return fmt.Errorf("building: %w", err)
	}

	if err := writeCompressionHeader(cfg.Compression, result); err != nil {
		return err
	}
	if err := writeTranslationHeader(cfg.Translation, result); err != nil {
		return err
	}

	summarize(result)
	return nil
}

func writeCompressionHeader(path string, result *generator.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := result.Table.Emit(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeTranslationHeader(path string, result *generator.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, "// This file was automatically generated."); err != nil {
		return err
	}
	for _, msg := range result.Messages {
		if err := table.EmitMessage(f, msg.Original, msg.Encoded, msg.Decoded); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

// summarize prints the same kind of byte-accounting diagnostic the
// teacher's analyze_tokens.go prints for OnPair, adapted to this repo's
// dictionary/codec stats.
func summarize(result *generator.Result) {
	var rawTotal, compressedTotal int
	for _, msg := range result.Messages {
		rawTotal += len(msg.Decoded)
		compressedTotal += len(msg.Encoded)
	}
	fmt.Fprintf(os.Stderr, "%d dictionary words, %d translations\n", result.Dictionary.Len(), len(result.Messages))
	fmt.Fprintf(os.Stderr, "%d bytes worth of translations\n", rawTotal)
	fmt.Fprintf(os.Stderr, "%d bytes worth of translations compressed\n", compressedTotal)
	fmt.Fprintf(os.Stderr, "%d bytes saved\n", rawTotal-compressedTotal)
}
