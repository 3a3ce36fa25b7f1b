package menuval

// WordSet is an ordered, de-duplicated set of normalized words.
// The zero value is an empty set.
type WordSet struct {
	words []string
	index map[string]struct{}
}

// NewWordSet normalizes words, drops empties and duplicates, and keeps first-seen order.
func NewWordSet(words ...string) WordSet {
	ws := WordSet{index: make(map[string]struct{}, len(words))}
	for _, w := range words {
		key := Normalize(w)
		if key == "" {
			continue
		}
		if _, ok := ws.index[key]; ok {
			continue
		}
		ws.index[key] = struct{}{}
		ws.words = append(ws.words, key)
	}
	return ws
}

// Contains reports whether the normalized word is in the set.
func (s WordSet) Contains(word string) bool {
	_, ok := s.index[word]
	return ok
}

// Words returns the members in load order. Callers must not modify the slice.
func (s WordSet) Words() []string {
	return s.words
}

// Len returns the number of members.
func (s WordSet) Len() int {
	return len(s.words)
}

// Default safe-context words used when the sheets are empty.
var (
	DefaultSafeBacon   = []string{"beef", "turkey", "veal", "halal", "chicken", "lamb"}
	DefaultSafeCuracao = []string{"syrup", "flavor", "flavour", "mix", "mocktail", "virgin"}
)

// WordLists holds the configured vocabularies used by validation.
type WordLists struct {
	Generic     WordSet
	Forbidden   WordSet
	Ad          WordSet
	SafeBacon   WordSet
	SafeCuracao WordSet
}

// NewWordLists builds the word lists, falling back to the default safe-context
// words when a safe list is empty.
func NewWordLists(generic, forbidden, ad, safeBacon, safeCuracao []string) WordLists {
	wl := WordLists{
		Generic:     NewWordSet(generic...),
		Forbidden:   NewWordSet(forbidden...),
		Ad:          NewWordSet(ad...),
		SafeBacon:   NewWordSet(safeBacon...),
		SafeCuracao: NewWordSet(safeCuracao...),
	}
	if wl.SafeBacon.Len() == 0 {
		wl.SafeBacon = NewWordSet(DefaultSafeBacon...)
	}
	if wl.SafeCuracao.Len() == 0 {
		wl.SafeCuracao = NewWordSet(DefaultSafeCuracao...)
	}
	return wl
}
