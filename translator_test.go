package menuval

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func translatorSnapshot() *Snapshot {
	return BuildSnapshot(Tables{
		TableTerminology: {
			{"English", "Arabic"},
			{"Om Ali", "أم علي"},
			{"Kunafa", "كنافة"},
			{"with nuts", "بالمكسرات"},
		},
	})
}

func TestTranslator_TranslateItem(t *testing.T) {
	p := newMockProvider(map[string]string{"Food: Warm": "دافئ"})
	tr := NewTranslator(p)

	got, err := tr.TranslateItem(context.Background(), translatorSnapshot(), MenuItem{
		Name:        "Om Ali",
		Description: "Warm Kunafa with nuts",
	}, LangEnglish)
	if err != nil {
		t.Fatalf("TranslateItem failed: %v", err)
	}

	if got.Name.Text != "أم علي" || got.Name.Tag != TagTerminology {
		t.Errorf("Name = %q (%s)", got.Name.Text, got.Name.Tag)
	}
	if got.Description.Text != "دافئ كنافة بالمكسرات" || got.Description.Tag != TagTerminologyAndGoogle {
		t.Errorf("Description = %q (%s)", got.Description.Text, got.Description.Tag)
	}
}

func TestTranslator_ArabicToEnglish(t *testing.T) {
	tr := NewTranslator(newMockProvider(nil))

	got, err := tr.TranslateItem(context.Background(), translatorSnapshot(), MenuItem{Name: "ام علي"}, LangArabic)
	if err != nil {
		t.Fatalf("TranslateItem failed: %v", err)
	}
	if got.Name.Text != "Om Ali" {
		t.Errorf("Name = %q, want Om Ali", got.Name.Text)
	}
	if got.Description.Tag != TagNone {
		t.Errorf("empty description tag = %s, want None", got.Description.Tag)
	}
}

func TestTranslator_RejectsUnknownSource(t *testing.T) {
	tr := NewTranslator(nil)
	_, err := tr.TranslateItem(context.Background(), translatorSnapshot(), MenuItem{Name: "x"}, LangAuto)

	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if _, err := tr.TranslateText(context.Background(), translatorSnapshot(), "x", "fr"); err == nil {
		t.Error("TranslateText should reject unsupported languages")
	}
}

func TestTranslator_Options(t *testing.T) {
	c := newMockCache()
	p := newMockProvider(map[string]string{"Food: Warm": "دافئ"})
	tr := NewTranslator(p,
		WithCache(c),
		WithCallTimeout(time.Second),
		WithLogger(zap.NewNop()),
	)

	for i := 0; i < 3; i++ {
		if _, err := tr.TranslateText(context.Background(), translatorSnapshot(), "Warm", LangEnglish); err != nil {
			t.Fatal(err)
		}
	}
	if p.callCount() != 1 {
		t.Errorf("cache should absorb repeated words, got %d calls", p.callCount())
	}
	if tr.Resolver().Stats().CacheHits != 2 {
		t.Errorf("CacheHits = %d, want 2", tr.Resolver().Stats().CacheHits)
	}
}
