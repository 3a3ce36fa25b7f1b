package menuval

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Lookup score thresholds for token-level fuzzy matching.
const (
	TokenMatchThreshold = 90
	FuzzyThreshold      = 85

	// fuzzyMinRunes is the shortest key that is fuzzy matched; shorter keys only match exactly.
	fuzzyMinRunes = 3
)

// TermRow is one curated source/target pair from the Terminology table.
type TermRow struct {
	Source string
	Target string
}

// MatchKind identifies which lookup step produced a terminology hit.
type MatchKind string

const (
	MatchExact      MatchKind = "Exact"
	MatchStripped   MatchKind = "Stripped"
	MatchSingular   MatchKind = "Singular"
	MatchTokenMatch MatchKind = "TokenMatch"
	MatchFuzzy      MatchKind = "Fuzzy"
)

// Tag returns the source tag reported for a hit of this kind.
func (k MatchKind) Tag() SourceTag {
	return SourceTag(fmt.Sprintf("%s (%s)", TagTerminology, k))
}

// TermMatch is a successful terminology lookup.
type TermMatch struct {
	Translation string
	Kind        MatchKind
	Score       int // similarity for fuzzy kinds, 100 otherwise
}

// ConflictPolicy decides what happens when a row maps an existing key to a different translation.
type ConflictPolicy int

const (
	// ConflictKeepLast lets later rows overwrite earlier ones.
	ConflictKeepLast ConflictPolicy = iota
	// ConflictKeepFirst keeps the first translation registered for a key.
	ConflictKeepFirst
	// ConflictReject skips any row that would change an existing translation.
	ConflictReject
)

// String returns the config spelling of the policy.
func (p ConflictPolicy) String() string {
	switch p {
	case ConflictKeepFirst:
		return "keep-first"
	case ConflictReject:
		return "reject"
	default:
		return "keep-last"
	}
}

// ParseConflictPolicy parses "keep-last", "keep-first" or "reject".
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep-last", "last":
		return ConflictKeepLast, nil
	case "keep-first", "first":
		return ConflictKeepFirst, nil
	case "reject":
		return ConflictReject, nil
	}
	return ConflictKeepLast, fmt.Errorf("unknown conflict policy %q", s)
}

// TermConflict records a key that two rows translate differently.
type TermConflict struct {
	Key      string
	Existing string
	Incoming string
	Row      int // zero-based row index of the incoming row
}

// TerminologyOption configures BuildTerminology.
type TerminologyOption func(*terminologyConfig)

type terminologyConfig struct {
	policy ConflictPolicy
}

// WithConflictPolicy sets how duplicate keys are resolved. Default: ConflictKeepLast.
func WithConflictPolicy(p ConflictPolicy) TerminologyOption {
	return func(c *terminologyConfig) {
		c.policy = p
	}
}

type termEntry struct {
	key    string
	tokens []string
}

// TerminologyIndex is a bidirectional dictionary of curated terms.
// It is immutable after BuildTerminology returns and safe for concurrent use.
type TerminologyIndex struct {
	exact      map[string]string
	stripped   map[string]string
	entries    []termEntry // normalized keys in first-insertion order
	phraseKeys []string

	rows      int
	skipped   int
	conflicts []TermConflict
}

// BuildTerminology registers every complete row in both directions under its
// normalized and stripped keys. Rows missing either side are skipped.
func BuildTerminology(rows []TermRow, opts ...TerminologyOption) *TerminologyIndex {
	cfg := terminologyConfig{policy: ConflictKeepLast}
	for _, opt := range opts {
		opt(&cfg)
	}

	idx := &TerminologyIndex{
		exact:    make(map[string]string),
		stripped: make(map[string]string),
	}

	for i, row := range rows {
		src, tgt := strings.TrimSpace(row.Source), strings.TrimSpace(row.Target)
		if src == "" || tgt == "" {
			idx.skipped++
			continue
		}

		pending := []struct {
			stripped bool
			key      string
			value    string
		}{
			{false, Normalize(src), tgt},
			{false, Normalize(tgt), src},
			{true, Strip(src), tgt},
			{true, Strip(tgt), src},
		}

		var rowConflicts []TermConflict
		for _, p := range pending {
			m := idx.exact
			if p.stripped {
				m = idx.stripped
			}
			if existing, ok := m[p.key]; ok && existing != p.value && p.key != "" {
				rowConflicts = append(rowConflicts, TermConflict{Key: p.key, Existing: existing, Incoming: p.value, Row: i})
			}
		}
		idx.conflicts = append(idx.conflicts, rowConflicts...)

		if len(rowConflicts) > 0 && cfg.policy == ConflictReject {
			idx.skipped++
			continue
		}

		for _, p := range pending {
			if p.key == "" {
				continue
			}
			m := idx.exact
			if p.stripped {
				m = idx.stripped
			}
			existing, ok := m[p.key]
			if ok && existing != p.value && cfg.policy == ConflictKeepFirst && registeredBefore(rowConflicts, p.key) {
				continue
			}
			if !p.stripped && !ok {
				idx.entries = append(idx.entries, termEntry{key: p.key, tokens: strings.Fields(p.key)})
			}
			m[p.key] = p.value
		}
		idx.rows++
	}

	idx.phraseKeys = make([]string, len(idx.entries))
	for i, e := range idx.entries {
		idx.phraseKeys[i] = e.key
	}
	sort.SliceStable(idx.phraseKeys, func(i, j int) bool {
		return utf8.RuneCountInString(idx.phraseKeys[i]) > utf8.RuneCountInString(idx.phraseKeys[j])
	})

	return idx
}

// registeredBefore reports whether key conflicted with a row loaded earlier,
// as opposed to the other direction of the current row.
func registeredBefore(conflicts []TermConflict, key string) bool {
	for _, c := range conflicts {
		if c.Key == key {
			return true
		}
	}
	return false
}

// Len returns the number of rows registered.
func (t *TerminologyIndex) Len() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// Skipped returns the number of rows dropped as malformed or rejected.
func (t *TerminologyIndex) Skipped() int {
	if t == nil {
		return 0
	}
	return t.skipped
}

// Conflicts returns the duplicate-key conflicts seen while building.
func (t *TerminologyIndex) Conflicts() []TermConflict {
	if t == nil {
		return nil
	}
	return t.conflicts
}

// PhraseKeys returns normalized keys ordered longest first, ties in insertion order.
func (t *TerminologyIndex) PhraseKeys() []string {
	if t == nil {
		return nil
	}
	return t.phraseKeys
}

// LookupExact probes the normalized mapping with an already normalized key.
func (t *TerminologyIndex) LookupExact(key string) (string, bool) {
	if t == nil || key == "" {
		return "", false
	}
	v, ok := t.exact[key]
	return v, ok
}

// LookupStripped probes the whitespace-free mapping with an already stripped key.
func (t *TerminologyIndex) LookupStripped(key string) (string, bool) {
	if t == nil || key == "" {
		return "", false
	}
	v, ok := t.stripped[key]
	return v, ok
}

// LookupSingular retries a plural-looking normalized key without its trailing "s".
func (t *TerminologyIndex) LookupSingular(key string) (string, bool) {
	if !strings.HasSuffix(key, "s") || utf8.RuneCountInString(key) <= 3 {
		return "", false
	}
	return t.LookupExact(strings.TrimSuffix(key, "s"))
}

// LookupTokenFuzzy scores key against every token of every entry in insertion
// order and returns the first token scoring at least TokenMatchThreshold.
func (t *TerminologyIndex) LookupTokenFuzzy(key string) (TermMatch, bool) {
	hit, _ := t.scanTokens(key)
	if hit != nil {
		return *hit, true
	}
	return TermMatch{}, false
}

// LookupFuzzy returns the best scoring token match when no token reached
// TokenMatchThreshold but the best one reaches FuzzyThreshold.
func (t *TerminologyIndex) LookupFuzzy(key string) (TermMatch, bool) {
	hit, best := t.scanTokens(key)
	if hit != nil {
		return TermMatch{}, false
	}
	if best.Score >= FuzzyThreshold {
		return best, true
	}
	return TermMatch{}, false
}

func (t *TerminologyIndex) scanTokens(key string) (*TermMatch, TermMatch) {
	var best TermMatch
	if t == nil || utf8.RuneCountInString(key) < fuzzyMinRunes {
		return nil, best
	}

	for _, e := range t.entries {
		for _, tok := range e.tokens {
			score := Ratio(key, tok)
			if score >= TokenMatchThreshold {
				return &TermMatch{Translation: t.exact[e.key], Kind: MatchTokenMatch, Score: score}, best
			}
			if score > best.Score {
				best = TermMatch{Translation: t.exact[e.key], Kind: MatchFuzzy, Score: score}
			}
		}
	}
	return nil, best
}

// Lookup normalizes text and runs the full chain: exact, stripped, singular,
// token-fuzzy, fuzzy. The first step that hits wins.
func (t *TerminologyIndex) Lookup(text string) (TermMatch, bool) {
	key := Normalize(text)
	if t == nil || key == "" {
		return TermMatch{}, false
	}

	if v, ok := t.LookupExact(key); ok {
		return TermMatch{Translation: v, Kind: MatchExact, Score: 100}, true
	}
	if v, ok := t.LookupStripped(strings.ReplaceAll(key, " ", "")); ok {
		return TermMatch{Translation: v, Kind: MatchStripped, Score: 100}, true
	}
	if v, ok := t.LookupSingular(key); ok {
		return TermMatch{Translation: v, Kind: MatchSingular, Score: 100}, true
	}

	hit, best := t.scanTokens(key)
	if hit != nil {
		return *hit, true
	}
	if best.Score >= FuzzyThreshold {
		return best, true
	}
	return TermMatch{}, false
}
