// Package generator orchestrates the full pipeline of spec.md §2:
// dictionary build -> tokenize -> count -> canonical Huffman -> table
// assembly -> encode and self-verify every translation, following the
// teacher's Model.Train/Model.Encode split (onpair/model.go).
package generator

import (
	"fmt"

	"github.com/wuard/qstrgen/atom"
	"github.com/wuard/qstrgen/catalog"
	"github.com/wuard/qstrgen/codec"
	"github.com/wuard/qstrgen/dictionary"
	"github.com/wuard/qstrgen/huffman"
	"github.com/wuard/qstrgen/table"
)

// Config configures a Build run, following the teacher's functional-
// options idiom.
type Config struct {
	// MaxWords, if non-zero, further caps the dictionary beyond the
	// corpus-derived limit of spec.md §3.
	MaxWords int
	// CachePath, if set, enables the dictionary build cache (SPEC_FULL.md
	// DOMAIN STACK item 2).
	CachePath string
}

// Option configures a Build run.
type Option func(*Config)

// WithMaxWords caps the dictionary builder's word count.
func WithMaxWords(n int) Option {
	return func(c *Config) { c.MaxWords = n }
}

// WithCache enables the dictionary build cache at path.
func WithCache(path string) Option {
	return func(c *Config) { c.CachePath = path }
}

// Message is one self-verified, encoded translation, ready for
// table.EmitMessage.
type Message struct {
	Original string
	Encoded  []byte
	Decoded  string
}

// Result is everything a build produces: the chosen dictionary, the
// canonical codebook, the serialized decode table, and every encoded,
// self-verified message.
type Result struct {
	Dictionary *dictionary.Dictionary
	Codebook   *huffman.Codebook
	Table      *table.Table
	Messages   []Message
}

// Build runs the complete pipeline over pairs: translation loader output
// already resolved to (original, translation) strings (spec.md §6).
// original is carried through verbatim (the raw, as-escaped literal, which
// is what catalog.LineLoader yields) and is used only to label messages;
// translation must already have its newlines rewritten to CRLF, which
// catalog.LineLoader does.
func Build(pairs []catalog.Pair, opts ...Option) (*Result, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}

	texts := make([]string, len(pairs))
	for i, p := range pairs {
		texts[i] = p.Translation
	}

	dict, err := buildDictionary(texts, cfg)
	if err != nil {
		return nil, fmt.Errorf("generator: building dictionary: %w", err)
	}

	matcher := dictionary.NewMatcher(dict)

	counts := make(map[atom.Atom]int)
	for _, t := range texts {
		for _, a := range matcher.Iter(t) {
			counts[a]++
		}
	}

	cb, err := huffman.Build(counts)
	if err != nil {
		return nil, fmt.Errorf("generator: building codebook: %w", err)
	}

	limits := dictionary.ComputeLimits(texts)
	encodedLengthBits := codec.EncodedLengthBits(texts)
	tbl := table.Build(dict, cb, limits.Wide, encodedLengthBits)
	tbl.BuildID = Fingerprint(texts)

	messages, err := encodeAndVerify(pairs, matcher, cb, tbl, encodedLengthBits)
	if err != nil {
		return nil, err
	}

	return &Result{
		Dictionary: dict,
		Codebook:   cb,
		Table:      tbl,
		Messages:   messages,
	}, nil
}

// buildDictionary consults the build cache (if configured) before
// running dictionary.Builder.Build.
func buildDictionary(texts []string, cfg Config) (*dictionary.Dictionary, error) {
	// The word cap changes which dictionary is chosen, so it is folded into
	// the cache key alongside the corpus.
	key := texts
	if cfg.MaxWords > 0 {
		key = append(append([]string(nil), texts...), fmt.Sprintf("\x00max-words=%d", cfg.MaxWords))
	}
	var cache *DictionaryCache
	if cfg.CachePath != "" {
		cache = NewDictionaryCache(cfg.CachePath)
		if dict, ok := cache.Load(key); ok {
			return dict, nil
		}
	}

	var builderOpts []dictionary.Option
	if cfg.MaxWords > 0 {
		builderOpts = append(builderOpts, dictionary.WithMaxWords(cfg.MaxWords))
	}
	dict, err := dictionary.NewBuilder(builderOpts...).Build(texts)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		// Best-effort: a cache write failure never fails the build,
		// since the cache only ever affects speed (see cache.go).
		_ = cache.Save(key, dict)
	}
	return dict, nil
}

// encodeAndVerify implements spec.md §7's self-verification policy: every
// translation is decoded immediately after being encoded, and any
// mismatch aborts the whole run with no partial output considered valid.
func encodeAndVerify(pairs []catalog.Pair, matcher *dictionary.Matcher, cb *huffman.Codebook, tbl *table.Table, encodedLengthBits int) ([]Message, error) {
	messages := make([]Message, 0, len(pairs))
	for _, p := range pairs {
		encoded, err := codec.Encode(p.Translation, encodedLengthBits, matcher, cb)
		if err != nil {
			return nil, fmt.Errorf("generator: encoding %q: %w", p.Original, err)
		}
		decoded, err := codec.Decode(encoded, encodedLengthBits, tbl)
		if err != nil {
			return nil, fmt.Errorf("generator: decoding %q: %w", p.Original, err)
		}
		if decoded != p.Translation {
			return nil, fmt.Errorf("generator: self-verification mismatch for %q: got %q, want %q", p.Original, decoded, p.Translation)
		}
		messages = append(messages, Message{Original: p.Original, Encoded: encoded, Decoded: decoded})
	}
	return messages, nil
}
