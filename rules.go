package menuval

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// alwaysForbidden is checked in addition to the configured ForbiddenWords.
var alwaysForbidden = []string{
	"pork", "bacon", "lard", "wine", "whisky", "whiskey", "vodka",
	"liqueur", "curacao", "alcohol", "خنزير", "كحول",
}

var (
	hardSeparators  = []string{"/", `\`}
	softSeparators  = []string{" or ", " او "}
	nameOptionMarks = []string{" or ", "/", " & "}

	choiceIndicators = phraseList(
		"choice of", "choose", "your choice", "select", "selection of",
		"option of", "options", "either", "اختيار", "اختر",
	)

	betweenPattern = regexp.MustCompile(`(?:^|\s)between\s.+\sand(?:\s|$)`)
)

// Thresholds for treating a choice-looking description as already matching the name.
const (
	choiceMatchScore        = 80
	choiceMatchScoreOptions = 60
	duplicateScore          = 90
	duplicateMinRunes       = 5
)

// categoryGroups are keyword groups that must not be mixed between name and description.
var categoryGroups = map[string][][]string{
	"poultry": phraseList("chicken", "turkey", "duck", "quail", "دجاج", "فراخ", "ديك رومي", "بط", "سمان"),
	"redmeat": phraseList("beef", "lamb", "mutton", "veal", "steak", "bacon", "لحم بقري", "بقري", "ضاني", "غنم", "عجل", "ستيك"),
	"fish":    phraseList("fish", "salmon", "tuna", "shrimp", "prawn", "hammour", "seafood", "سمك", "سلمون", "تونة", "روبيان", "جمبري", "هامور"),
	"hot":     phraseList("hot", "warm", "steaming", "ساخن", "دافئ"),
	"cold":    phraseList("ice", "iced", "cold", "chilled", "frozen", "بارد", "مثلج", "ايس"),
	"veg":     phraseList("vegetarian", "vegan", "veggie", "plant based", "نباتي"),
	"meat": phraseList(
		"meat", "chicken", "turkey", "duck", "beef", "lamb", "mutton", "veal", "steak", "bacon",
		"fish", "salmon", "tuna", "shrimp", "prawn", "لحم", "لحوم", "دجاج", "سمك", "روبيان",
	),
	"coffee": phraseList("coffee", "latte", "cappuccino", "espresso", "americano", "mocha", "macchiato", "قهوة", "لاتيه", "كابتشينو", "اسبريسو"),
	"savory": phraseList("burger", "sandwich", "pizza", "pasta", "fries", "shawarma", "wrap", "برجر", "ساندويتش", "بيتزا", "باستا", "شاورما"),
}

// categoryConflicts pairs groups that contradict each other, checked in order and both ways.
var categoryConflicts = [][2]string{
	{"poultry", "redmeat"},
	{"poultry", "fish"},
	{"hot", "cold"},
	{"veg", "meat"},
	{"coffee", "savory"},
}

// fillerWords add nothing when they are all a description says beyond the name.
var fillerWords = NewWordSet(
	"delicious", "tasty", "yummy", "fresh", "freshly", "served", "serve", "serving",
	"with", "and", "the", "a", "an", "of", "our", "in", "on", "style", "special",
	"best", "perfect", "perfectly", "amazing", "classic", "traditional", "homemade",
	"house", "signature", "favorite", "favourite", "enjoy", "made", "prepared",
	"great", "premium", "quality", "original", "famous", "popular", "dish", "plate",
	"portion", "lovely", "nice",
	"لذيذ", "لذيذة", "طازج", "طازجة", "مقدم", "يقدم", "مع", "و", "من", "في",
	"طبق", "خاص", "شهي", "مميز", "اصلي",
)

// phraseList normalizes and tokenizes each phrase.
func phraseList(phrases ...string) [][]string {
	out := make([][]string, 0, len(phrases))
	for _, p := range phrases {
		if tokens := Tokens(p); len(tokens) > 0 {
			out = append(out, tokens)
		}
	}
	return out
}

// containsPhrase reports whether phrase occurs in tokens as a contiguous run of whole words.
func containsPhrase(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
outer:
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		for j, p := range phrase {
			if tokens[i+j] != p {
				continue outer
			}
		}
		return true
	}
	return false
}

// firstPhrase returns the first phrase in list that occurs in tokens.
func firstPhrase(tokens []string, list [][]string) (string, bool) {
	for _, p := range list {
		if containsPhrase(tokens, p) {
			return strings.Join(p, " "), true
		}
	}
	return "", false
}

// itemText holds the precomputed forms of one item.
type itemText struct {
	rawName    string
	rawDesc    string
	name       string
	desc       string
	combined   string
	nameTokens []string
	descTokens []string
	sheet      SheetType
}

func newItemText(item MenuItem, sheet SheetType) *itemText {
	t := &itemText{
		rawName: item.Name,
		rawDesc: item.Description,
		name:    Normalize(item.Name),
		desc:    Normalize(item.Description),
		sheet:   sheet,
	}
	t.combined = strings.TrimSpace(t.name + " " + t.desc)
	t.nameTokens = strings.Fields(t.name)
	t.descTokens = strings.Fields(t.desc)
	return t
}

// rule inspects an item and reports a verdict when it fires.
type rule func(v *Validator, t *itemText) (Verdict, bool)

// rules run in this order; the first that fires decides the verdict.
var rules = []rule{
	forbiddenRule,
	undefinedChoiceRule,
	categoryMismatchRule,
	genericRule,
	noAddedValueRule,
}

func (v *Validator) invalid(t *itemText, reason string, mainMenuAction Action) Verdict {
	action := mainMenuAction
	if t.sheet != SheetMainMenu && action == ActionDeleteItem {
		action = ActionDeleteDescAndReplace
	}
	verdict := Verdict{Valid: false, Reason: reason, Action: action, Suggestions: []string{}}
	if action == ActionDeleteDescAndReplace {
		if s := v.snap.Library.Suggest(t.rawName); s != nil {
			verdict.Suggestions = s
		}
	}
	return verdict
}

// forbiddenTerms returns configured forbidden words followed by the fixed set.
func (v *Validator) forbiddenTerms() []string {
	terms := append([]string{}, v.snap.Words.Forbidden.Words()...)
	for _, w := range alwaysForbidden {
		if key := Normalize(w); !v.snap.Words.Forbidden.Contains(key) {
			terms = append(terms, key)
		}
	}
	return terms
}

// safeContext reports whether a bacon or curacao hit is excused by a companion word.
func (v *Validator) safeContext(term, combined string) bool {
	var safe WordSet
	switch {
	case strings.Contains(term, "bacon"):
		safe = v.snap.Words.SafeBacon
	case strings.Contains(term, "curacao"):
		safe = v.snap.Words.SafeCuracao
	default:
		return false
	}
	for _, w := range safe.Words() {
		if strings.Contains(combined, w) {
			return true
		}
	}
	return false
}

func forbiddenRule(v *Validator, t *itemText) (Verdict, bool) {
	terms := v.forbiddenTerms()
	for _, term := range terms {
		if strings.Contains(t.name, term) && !v.safeContext(term, t.combined) {
			return Verdict{Valid: false, Reason: "Forbidden: " + term, Action: ActionDeleteItem, Suggestions: []string{}}, true
		}
	}
	for _, term := range terms {
		if strings.Contains(t.desc, term) && !v.safeContext(term, t.combined) {
			return v.invalid(t, "Forbidden: "+term, ActionDeleteDescAndReplace), true
		}
	}
	return Verdict{}, false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func undefinedChoiceRule(v *Validator, t *itemText) (Verdict, bool) {
	if t.desc == "" {
		return Verdict{}, false
	}

	hasHard := containsAny(t.rawDesc, hardSeparators)
	hasSoft := containsAny(" "+t.desc+" ", softSeparators)
	_, hasIndicator := firstPhrase(t.descTokens, choiceIndicators)
	hasBetween := betweenPattern.MatchString(t.desc)

	if !hasHard && !hasSoft && !hasIndicator && !hasBetween {
		return Verdict{}, false
	}

	threshold := choiceMatchScore
	if containsAny(strings.ToLower(t.rawName), nameOptionMarks) {
		threshold = choiceMatchScoreOptions
	}
	if TokenSetRatio(t.name, t.desc) >= threshold {
		return Verdict{}, false
	}

	action := ActionDeleteDescription
	if t.sheet == SheetMainMenu && (hasIndicator || hasBetween) && !hasHard {
		action = ActionDeleteItem
	}
	return Verdict{Valid: false, Reason: "Undefined Choice", Action: action, Suggestions: []string{}}, true
}

func categoryMismatchRule(v *Validator, t *itemText) (Verdict, bool) {
	for _, pair := range categoryConflicts {
		for _, dir := range [][2]string{{pair[0], pair[1]}, {pair[1], pair[0]}} {
			a, ok := firstConflictTerm(t, t.nameTokens, dir[0])
			if !ok {
				continue
			}
			for _, p := range categoryGroups[dir[1]] {
				b := strings.Join(p, " ")
				if !containsPhrase(t.descTokens, p) || containsPhrase(t.nameTokens, p) || halalBaconTerm(t, dir[1], b) {
					continue
				}
				return v.invalid(t, fmt.Sprintf("Category Mismatch: %s vs %s", a, b), ActionDeleteItem), true
			}
		}
	}
	return Verdict{}, false
}

// firstConflictTerm is firstPhrase over a category group, minus halal bacon terms.
func firstConflictTerm(t *itemText, tokens []string, group string) (string, bool) {
	for _, p := range categoryGroups[group] {
		term := strings.Join(p, " ")
		if containsPhrase(tokens, p) && !halalBaconTerm(t, group, term) {
			return term, true
		}
	}
	return "", false
}

// halalBaconTerm reports whether term only describes turkey or beef bacon. Such
// bacon is not red meat, and "turkey" in "turkey bacon" is not poultry. Both
// still count as meat against vegetarian items.
func halalBaconTerm(t *itemText, group, term string) bool {
	switch {
	case group == "redmeat" && term == "bacon":
		return t.hasToken("turkey") || t.hasToken("beef")
	case group == "poultry" && term == "turkey":
		return qualifiesBacon(t.nameTokens, "turkey") && qualifiesBacon(t.descTokens, "turkey")
	}
	return false
}

func (t *itemText) hasToken(w string) bool {
	return slices.Contains(t.nameTokens, w) || slices.Contains(t.descTokens, w)
}

// qualifiesBacon reports whether every occurrence of w in tokens is directly
// followed by "bacon". It holds trivially when w does not occur.
func qualifiesBacon(tokens []string, w string) bool {
	for i, tok := range tokens {
		if tok == w && (i+1 == len(tokens) || tokens[i+1] != "bacon") {
			return false
		}
	}
	return true
}

func genericRule(v *Validator, t *itemText) (Verdict, bool) {
	for _, w := range v.snap.Words.Generic.Words() {
		if strings.Contains(t.combined, w) {
			return v.invalid(t, "Generic: "+w, ActionDeleteItem), true
		}
	}
	return Verdict{}, false
}

func noAddedValueRule(v *Validator, t *itemText) (Verdict, bool) {
	if t.desc == "" {
		return Verdict{}, false
	}

	inName := make(map[string]bool, len(t.nameTokens))
	for _, w := range t.nameTokens {
		inName[w] = true
	}
	var extras []string
	for _, w := range t.descTokens {
		if !inName[w] {
			extras = append(extras, w)
		}
	}

	if len(extras) == 0 {
		if Ratio(t.name, t.desc) > duplicateScore && len([]rune(t.desc)) > duplicateMinRunes {
			return v.invalid(t, "Duplicate Description", ActionDeleteDescAndReplace), true
		}
		return Verdict{}, false
	}

	for _, w := range extras {
		if !fillerWords.Contains(w) || v.snap.Words.Ad.Contains(w) {
			return Verdict{}, false
		}
	}
	return v.invalid(t, "No Added Value", ActionDeleteDescAndReplace), true
}
