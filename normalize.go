package menuval

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	lower = cases.Lower(language.Und)

	// latinFold removes combining accents from non-Arabic letters (curaçao -> curacao).
	// Arabic marks survive here and are handled by the diacritic step.
	latinFold = transform.Chain(
		norm.NFD,
		runes.Remove(runes.Predicate(func(r rune) bool {
			return unicode.Is(unicode.Mn, r) && !isArabic(r)
		})),
		norm.NFC,
	)

	arabicMarks = runes.Predicate(func(r rune) bool {
		switch {
		case r >= 0x0610 && r <= 0x061A,
			r >= 0x064B && r <= 0x065F,
			r == 0x0670,
			r >= 0x06D6 && r <= 0x06ED,
			r == 'ـ':
			return true
		}
		return false
	})

	arabicLetterFold = strings.NewReplacer(
		"أ", "ا",
		"إ", "ا",
		"آ", "ا",
		"ٱ", "ا",
		"ة", "ه",
		"ى", "ي",
	)
)

func isArabic(r rune) bool {
	return r >= 0x0600 && r <= 0x06FF
}

func keepRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || unicode.IsSpace(r) || isArabic(r)
}

// Normalize canonicalizes text into a comparison key. It is total and idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := norm.NFKC.String(text)
	s = lower.String(s)
	if folded, _, err := transform.String(latinFold, s); err == nil {
		s = folded
	}
	s = strings.Map(func(r rune) rune {
		if arabicMarks.Contains(r) {
			return -1
		}
		return r
	}, s)
	s = arabicLetterFold.Replace(s)
	s = strings.Map(func(r rune) rune {
		if keepRune(r) {
			return r
		}
		return ' '
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// NormalizeValue stringifies v and normalizes it. nil and NaN become "".
func NormalizeValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return Normalize(t)
	case float64:
		if math.IsNaN(t) {
			return ""
		}
	case float32:
		if math.IsNaN(float64(t)) {
			return ""
		}
	}
	return Normalize(fmt.Sprint(v))
}

// Strip returns Normalize(text) with all whitespace removed.
func Strip(text string) string {
	return strings.ReplaceAll(Normalize(text), " ", "")
}

// Tokens splits normalized text into words.
func Tokens(text string) []string {
	return strings.Fields(Normalize(text))
}
