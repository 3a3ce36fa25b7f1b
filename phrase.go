package menuval

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// minPhraseRunes is the shortest terminology key the squeeze pass substitutes.
const minPhraseRunes = 3

// PhraseTranslator translates a whole field, preferring curated terminology
// over per-word machine translation.
type PhraseTranslator struct {
	terms    *TerminologyIndex
	resolver *Resolver
}

// NewPhraseTranslator creates a phrase translator over a terminology index.
// A nil resolver behaves like a provider that never finds anything.
func NewPhraseTranslator(terms *TerminologyIndex, resolver *Resolver) *PhraseTranslator {
	return &PhraseTranslator{terms: terms, resolver: resolver}
}

// token is one word of the input: its surface form, used for machine
// translation, and its normalized key, used for terminology matching.
type token struct {
	surface string
	key     string
	phrase  int // index into placeholders, -1 for a plain word
}

// placeholder renders the marker used for a substituted phrase. The brackets
// are never produced by Normalize, so no key can match inside one.
func placeholder(n int) string {
	return fmt.Sprintf("⟦%d⟧", n)
}

// splitTokens breaks text into words with their normalized keys. Words that
// normalize to nothing (stray diacritics) are dropped.
func splitTokens(text string) []token {
	s := norm.NFKC.String(text)
	s = strings.Map(func(r rune) rune {
		if keepRune(r) || unicode.Is(unicode.Mn, r) {
			return r
		}
		return ' '
	}, s)

	var out []token
	for _, f := range strings.Fields(s) {
		key := Normalize(f)
		if key == "" {
			continue
		}
		out = append(out, token{surface: f, key: key, phrase: -1})
	}
	return out
}

type squeezed struct {
	key         string
	translation string
}

// squeeze replaces every run of tokens that spells a terminology phrase with
// a single placeholder token, longest phrases first. A run is only replaced
// when none of its tokens has been claimed by a longer phrase.
func (p *PhraseTranslator) squeeze(tokens []token) ([]token, []squeezed) {
	var phrases []squeezed

	for _, key := range p.terms.PhraseKeys() {
		if utf8.RuneCountInString(key) < minPhraseRunes {
			continue
		}
		parts := strings.Fields(key)
		if len(parts) > len(tokens) {
			continue
		}

		for i := 0; i+len(parts) <= len(tokens); i++ {
			if !matchesRun(tokens[i:i+len(parts)], parts) {
				continue
			}
			translation, _ := p.terms.LookupExact(key)
			n := len(phrases)
			phrases = append(phrases, squeezed{key: key, translation: translation})

			surfaces := make([]string, len(parts))
			for j := range parts {
				surfaces[j] = tokens[i+j].surface
			}
			merged := token{surface: strings.Join(surfaces, " "), key: placeholder(n), phrase: n}

			tokens = append(tokens[:i], append([]token{merged}, tokens[i+len(parts):]...)...)
		}
	}
	return tokens, phrases
}

func matchesRun(run []token, parts []string) bool {
	for j, part := range parts {
		if run[j].phrase >= 0 || run[j].key != part {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Translate translates one field from source to target.
//
// A field that is itself a terminology key maps directly. Otherwise known
// phrases are substituted first, and each remaining word goes through the
// terminology chain and then the resolver. Single-letter words are dropped.
func (p *PhraseTranslator) Translate(ctx context.Context, text string, source, target Language) FieldTranslation {
	if strings.TrimSpace(text) == "" {
		return FieldTranslation{Text: text, Tag: TagNone}
	}

	if v, ok := p.terms.LookupExact(Normalize(text)); ok {
		return FieldTranslation{Text: v, Tag: TagTerminology}
	}
	if v, ok := p.terms.LookupStripped(Strip(text)); ok {
		return FieldTranslation{Text: v, Tag: TagTerminology}
	}

	tokens, phrases := p.squeeze(splitTokens(text))

	var (
		out            []string
		chunks         []ChunkResult
		usedTerms      bool
		resolverChunks int
		resolverErrors int
	)
	for _, tok := range tokens {
		if tok.phrase >= 0 {
			ph := phrases[tok.phrase]
			out = append(out, ph.translation)
			chunks = append(chunks, ChunkResult{Input: tok.surface, Output: ph.translation, Tag: TagTerminology})
			usedTerms = true
			continue
		}

		if !isNumeric(tok.key) && utf8.RuneCountInString(tok.key) < 2 {
			continue
		}

		if m, ok := p.terms.Lookup(tok.key); ok {
			out = append(out, m.Translation)
			chunks = append(chunks, ChunkResult{Input: tok.surface, Output: m.Translation, Tag: m.Kind.Tag()})
			usedTerms = true
			continue
		}

		res := p.resolver.ResolveWord(ctx, tok.surface, source, target)
		switch res.Tag {
		case TagTerminology:
			usedTerms = true
		case TagError:
			resolverChunks++
			resolverErrors++
		default:
			resolverChunks++
		}
		out = append(out, res.Text)
		chunks = append(chunks, ChunkResult{Input: tok.surface, Output: res.Text, Tag: res.Tag})
	}

	ft := FieldTranslation{
		Text:   strings.Join(strings.Fields(strings.Join(out, " ")), " "),
		Chunks: chunks,
	}
	// None is reserved for blank input; text whose chunks were all dropped is
	// still a terminology result.
	switch {
	case resolverChunks > 0 && resolverErrors == resolverChunks && !usedTerms:
		ft.Tag = TagError
	case resolverChunks > 0:
		ft.Tag = TagTerminologyAndGoogle
	default:
		ft.Tag = TagTerminology
	}
	return ft
}
