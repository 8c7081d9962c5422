package dictionary

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
)

// reservedRangeEnd is the exclusive upper bound of the codepoint range
// scanned for the first already-used codepoint (spec.md §3: "the minimum
// codepoint in [0x80, 0xFF) that actually appears").
const reservedRangeEnd = 0xFF

const (
	minWordLen = 2
	maxWordLen = 9
	// minOccurrences and minScore are the admission thresholds of
	// spec.md §4.2 step 4.
	minOccurrences = 5
	minScore       = 5.0
	// scoreCacheSize bounds the (substring, count) -> score memoization
	// cache (SPEC_FULL.md DOMAIN STACK item 1); large enough that
	// realistic translation catalogs never evict a hot entry mid-build,
	// small enough that a pathological corpus cannot grow memory
	// unboundedly.
	scoreCacheSize = 1 << 16
)

// Config configures Builder, following the teacher's functional-options
// idiom (onpair.Config / onpair.Option).
type Config struct {
	// MaxWords caps the dictionary size beyond what spec.md §3 already
	// derives from the corpus; zero means "no additional cap".
	MaxWords int
}

// Option configures a Builder.
type Option func(*Config)

// WithMaxWords caps the number of words the builder may choose, in
// addition to the corpus-derived max_words limit of spec.md §3.
func WithMaxWords(n int) Option {
	return func(c *Config) { c.MaxWords = n }
}

// Builder runs the greedy multi-gram dictionary miner of spec.md §4.2.
type Builder struct {
	config Config
	// scoreCache memoizes the pure function score(s, c): the same
	// (substring, occurrence-count) pair recurs across the per-iteration
	// rescans spec.md §4.2 step 2 performs whenever a candidate's count
	// happens not to change between two growth iterations. Bounded,
	// consulted only to avoid redundant math.Log/math.Pow calls — never
	// for correctness; evicting it changes nothing but speed.
	scoreCache *lru.Cache[string, float64]
}

// NewBuilder creates a Builder with the given options.
func NewBuilder(opts ...Option) *Builder {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	cache, _ := lru.New[string, float64](scoreCacheSize)
	return &Builder{config: cfg, scoreCache: cache}
}

// Limits holds the corpus-derived bounds spec.md §3 defines: max_words
// (reserved-range avoidance) and max_words_len (the Σ(len-2) budget, which
// depends on whether any translation contains a codepoint above 255).
type Limits struct {
	MaxWords    int
	MaxWordsLen int
	Wide        bool // values_type_is_wide: max codepoint > 255
}

// ComputeLimits scans texts once to derive the Limits of spec.md §3.
func ComputeLimits(texts []string) Limits {
	endUnused := rune(reservedRangeEnd)
	maxOrd := rune(0)
	for _, t := range texts {
		for _, r := range t {
			if r > maxOrd {
				maxOrd = r
			}
			if r >= WordStart && r < reservedRangeEnd && r < endUnused {
				endUnused = r
			}
		}
	}
	wide := maxOrd > 255
	maxWordsLen := 255
	if wide {
		maxWordsLen = 160
	}
	return Limits{
		MaxWords:    int(endUnused - WordStart),
		MaxWordsLen: maxWordsLen,
		Wide:        wide,
	}
}

// Build runs the greedy dictionary miner of spec.md §4.2 over texts and
// returns the chosen Dictionary.
func (b *Builder) Build(texts []string) (*Dictionary, error) {
	limits := ComputeLimits(texts)
	maxWords := limits.MaxWords
	if b.config.MaxWords > 0 && b.config.MaxWords < maxWords {
		maxWords = b.config.MaxWords
	}
	if maxWords < 0 {
		maxWords = 0
	}

	dict := &Dictionary{}
	sumLen := 0

	for {
		if len(dict.Words) >= maxWords {
			break
		}

		candidate, ok := b.pickNextWord(dict, texts)
		if !ok {
			break
		}
		candidateLen := len([]rune(candidate))
		if sumLen+candidateLen-minWordLen > limits.MaxWordsLen {
			break
		}

		dict.Words = append(dict.Words, candidate)
		sumLen += candidateLen - minWordLen
	}

	if err := validateDictionary(dict, maxWords, limits.MaxWordsLen); err != nil {
		return nil, err
	}
	return dict, nil
}

// pickNextWord implements spec.md §4.2 steps 1-4: rescan every text with
// the current dictionary's tokenizer, count every uncovered 2..9-rune
// substring, score the candidates, and return the best one clearing both
// admission thresholds.
func (b *Builder) pickNextWord(dict *Dictionary, texts []string) (string, bool) {
	matcher := NewMatcher(dict)
	counts := make(map[string]int)

	for _, t := range texts {
		for _, seg := range matcher.IterWords(t) {
			if seg.IsWord {
				continue
			}
			countSubstrings(seg.Text, counts)
		}
	}

	type candidate struct {
		s     string
		score float64
		occ   int
	}
	candidates := make([]candidate, 0, len(counts))
	for s, occ := range counts {
		candidates = append(candidates, candidate{s: s, score: b.score(s, occ), occ: occ})
	}
	// Deterministic order: score descending, then substring ascending —
	// spec.md §9 notes Go map order makes the Python tie-break
	// unreproducible and under-specified; this just needs to be stable.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].s < candidates[j].s
	})

	for _, c := range candidates {
		if c.occ < minOccurrences {
			continue
		}
		if c.score < minScore {
			break
		}
		return c.s, true
	}
	return "", false
}

// countSubstrings enumerates every substring of seg with rune length in
// [minWordLen, maxWordLen] and increments its occurrence count (spec.md
// §4.2 step 2).
func countSubstrings(seg string, counts map[string]int) {
	runes := []rune(seg)
	n := len(runes)
	maxLen := maxWordLen
	if maxLen > n {
		maxLen = n
	}
	for length := minWordLen; length <= maxLen; length++ {
		for start := 0; start+length <= n; start++ {
			counts[string(runes[start:start+length])]++
		}
	}
}

// score memoizes scoreFunc via b.scoreCache.
func (b *Builder) score(s string, c int) float64 {
	key := s + "\x1f" + strconv.Itoa(c)
	if v, ok := b.scoreCache.Get(key); ok {
		return v
	}
	v := scoreFunc(s, c)
	b.scoreCache.Add(key, v)
	return v
}

// scoreFunc implements spec.md §4.2 step 3 exactly:
// (len(s)-1) ** log(max(c-2, 1)).
func scoreFunc(s string, c int) float64 {
	base := float64(len([]rune(s)) - 1)
	arg := c - 2
	if arg < 1 {
		arg = 1
	}
	return math.Pow(base, math.Log(float64(arg)))
}

func validateDictionary(dict *Dictionary, maxWords, maxWordsLen int) error {
	if len(dict.Words) > maxWords {
		return fmt.Errorf("dictionary: %d words exceeds max_words %d", len(dict.Words), maxWords)
	}
	sum := 0
	for _, w := range dict.Words {
		n := len([]rune(w))
		if n < minWordLen || n > maxWordLen {
			return fmt.Errorf("dictionary: word %q has length %d, want [%d,%d]", w, n, minWordLen, maxWordLen)
		}
		sum += n - minWordLen
	}
	if sum > maxWordsLen {
		return fmt.Errorf("dictionary: Σ(len-2) = %d exceeds max_words_len %d", sum, maxWordsLen)
	}
	return nil
}
