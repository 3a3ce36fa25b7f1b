package menuval

import (
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// Ratio scores the similarity of a and b from 0 to 100 using edit distance
// relative to the longer string. Both empty scores 100.
func Ratio(a, b string) int {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 100
	}
	if la == 0 || lb == 0 {
		return 0
	}

	dist := levenshtein.ComputeDistance(a, b)
	maxLen := math.Max(float64(la), float64(lb))
	return int(math.Round(100 * (1 - float64(dist)/maxLen)))
}

// TokenSortRatio compares a and b after sorting their normalized tokens.
func TokenSortRatio(a, b string) int {
	ta, tb := Tokens(a), Tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	sort.Strings(ta)
	sort.Strings(tb)
	return Ratio(strings.Join(ta, " "), strings.Join(tb, " "))
}

// TokenSetRatio compares the shared and differing token sets of a and b,
// returning the best of the three pairwise scores.
func TokenSetRatio(a, b string) int {
	sa, sb := tokenSet(a), tokenSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	var common, onlyA, onlyB []string
	for t := range sa {
		if sb[t] {
			common = append(common, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range sb {
		if !sa[t] {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(common, " ")
	withA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	best := Ratio(withA, withB)
	if base != "" {
		if r := Ratio(base, withA); r > best {
			best = r
		}
		if r := Ratio(base, withB); r > best {
			best = r
		}
	}
	return best
}

// JaroWinkler returns the Jaro-Winkler similarity of a and b in [0, 1].
func JaroWinkler(a, b string) float64 {
	return smetrics.JaroWinkler(a, b, 0.7, 4)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range Tokens(s) {
		set[t] = true
	}
	return set
}
