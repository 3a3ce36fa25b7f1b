package menuval

import "fmt"

// SuggestionThreshold is the minimum token-sort score for a library item to be suggested.
const SuggestionThreshold = 90

// DescriptionEntry is one approved bilingual description for an item.
type DescriptionEntry struct {
	ItemName string `json:"item_name"`
	English  string `json:"english"`
	Arabic   string `json:"arabic"`
}

// String formats the entry as a suggestion.
func (e DescriptionEntry) String() string {
	return fmt.Sprintf("EN: %s | AR: %s", e.English, e.Arabic)
}

// DescriptionLibrary groups approved descriptions by normalized item name.
type DescriptionLibrary struct {
	names  []string // normalized item names in load order
	groups map[string][]DescriptionEntry
	size   int
}

// NewDescriptionLibrary indexes entries. Entries with a blank item name are ignored.
func NewDescriptionLibrary(entries []DescriptionEntry) *DescriptionLibrary {
	lib := &DescriptionLibrary{groups: make(map[string][]DescriptionEntry)}
	for _, e := range entries {
		key := Normalize(e.ItemName)
		if key == "" {
			continue
		}
		if _, ok := lib.groups[key]; !ok {
			lib.names = append(lib.names, key)
		}
		lib.groups[key] = append(lib.groups[key], e)
		lib.size++
	}
	return lib
}

// Len returns the number of stored entries.
func (l *DescriptionLibrary) Len() int {
	if l == nil {
		return 0
	}
	return l.size
}

// Nearest returns the library item name closest to name by token-sort score,
// if it reaches SuggestionThreshold. Ties go to the higher Jaro-Winkler score,
// then to the earlier loaded name.
func (l *DescriptionLibrary) Nearest(name string) (string, bool) {
	if l == nil || len(l.names) == 0 {
		return "", false
	}
	query := Normalize(name)
	if query == "" {
		return "", false
	}

	var (
		best      string
		bestScore = -1
		bestJW    float64
	)
	for _, candidate := range l.names {
		score := TokenSortRatio(query, candidate)
		if score < SuggestionThreshold || score < bestScore {
			continue
		}
		jw := JaroWinkler(query, candidate)
		if score > bestScore || jw > bestJW {
			best, bestScore, bestJW = candidate, score, jw
		}
	}
	return best, bestScore >= SuggestionThreshold
}

// Suggest returns every stored description pair for the item nearest to name,
// formatted "EN: <english> | AR: <arabic>".
func (l *DescriptionLibrary) Suggest(name string) []string {
	key, ok := l.Nearest(name)
	if !ok {
		return nil
	}
	entries := l.groups[key]
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.String())
	}
	return out
}
