package menuval

import (
	"strconv"
	"strings"
)

// SheetType selects how strictly invalid items are handled.
type SheetType string

const (
	// SheetMainMenu is the primary menu; most violations remove the whole item.
	SheetMainMenu SheetType = "Main Menu"
	// SheetSep is a secondary sheet; violations usually only replace the description.
	SheetSep SheetType = "Sep Sheet"
)

// Mode selects which pipelines a batch runs.
type Mode string

const (
	ModeValidate  Mode = "validate"
	ModeTranslate Mode = "translate"
	ModeBoth      Mode = "both"
)

// Validates reports whether the mode runs the validation engine.
func (m Mode) Validates() bool { return m == ModeValidate || m == ModeBoth }

// Translates reports whether the mode runs the translation pipeline.
func (m Mode) Translates() bool { return m == ModeTranslate || m == ModeBoth }

// Action is the remediation attached to a verdict.
type Action string

const (
	ActionValid                Action = "Valid"
	ActionDeleteItem           Action = "Delete Item"
	ActionDeleteDescAndReplace Action = "Delete Desc & Replace"
	ActionDeleteDescription    Action = "Delete Description"
)

// SourceTag records where a translation came from.
type SourceTag string

const (
	TagTerminology           SourceTag = "Terminology"
	TagTerminologyExact      SourceTag = "Terminology (Exact)"
	TagTerminologyStripped   SourceTag = "Terminology (Stripped)"
	TagTerminologySingular   SourceTag = "Terminology (Singular)"
	TagTerminologyTokenMatch SourceTag = "Terminology (TokenMatch)"
	TagTerminologyFuzzy      SourceTag = "Terminology (Fuzzy)"
	TagGoogle                SourceTag = "Google"
	TagTerminologyAndGoogle  SourceTag = "Terminology + Google"
	TagNotFound              SourceTag = "NotFound"
	TagNone                  SourceTag = "None"
	TagError                 SourceTag = "Error"
)

// MenuItem is one input row.
type MenuItem struct {
	Name        string `json:"item_name"`
	Description string `json:"description"`
}

// Verdict is the outcome of validating a MenuItem.
type Verdict struct {
	Valid       bool     `json:"valid"`
	Reason      string   `json:"reason"`
	Action      Action   `json:"action"`
	Suggestions []string `json:"suggestions"`
}

// FieldTranslation is the translation of one field (name or description).
type FieldTranslation struct {
	Text   string        `json:"text"`
	Tag    SourceTag     `json:"tag"`
	Chunks []ChunkResult `json:"chunks,omitempty"`
}

// ChunkResult describes how a single chunk of a field was resolved.
type ChunkResult struct {
	Input  string    `json:"input"`
	Output string    `json:"output"`
	Tag    SourceTag `json:"tag"`
}

// ItemTranslation is the translated name and description of a MenuItem.
type ItemTranslation struct {
	Name        FieldTranslation `json:"name"`
	Description FieldTranslation `json:"description"`
}

// ParseSheetType accepts "Main Menu", "main", "Sep Sheet", "sep" and similar spellings.
func ParseSheetType(s string) (SheetType, error) {
	switch foldTableName(s) {
	case "mainmenu", "main", "":
		return SheetMainMenu, nil
	case "sepsheet", "sep", "separate", "separatesheet":
		return SheetSep, nil
	}
	return "", &InputError{Field: "sheet", Message: "unknown sheet type " + strconv.Quote(s)}
}

// ParseMode accepts "validate", "translate" or "both".
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeValidate, ModeTranslate, ModeBoth:
		return m, nil
	case "":
		return ModeValidate, nil
	}
	return "", &InputError{Field: "mode", Message: "unknown mode " + strconv.Quote(s)}
}
