package menuval

import "strings"

// Validator runs the ordered rule chain against one snapshot.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	snap *Snapshot
}

// NewValidator creates a validator over snap. A nil snapshot validates with
// the built-in rules only.
func NewValidator(snap *Snapshot) *Validator {
	if snap == nil {
		snap = EmptySnapshot()
	}
	return &Validator{snap: snap}
}

// Validate checks item against the rules in priority order: forbidden content,
// undefined choice, category mismatch, generic wording, no added value.
// The first rule that fires decides the verdict. A blank item name is an
// *InputError and yields no verdict.
func (v *Validator) Validate(item MenuItem, sheet SheetType) (Verdict, error) {
	if strings.TrimSpace(item.Name) == "" {
		return Verdict{}, &InputError{Field: "item_name", Message: "item name is required"}
	}

	t := newItemText(item, sheet)
	for _, r := range rules {
		if verdict, fired := r(v, t); fired {
			return verdict, nil
		}
	}
	return Verdict{Valid: true, Action: ActionValid, Suggestions: []string{}}, nil
}
