package menuval

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type staticSource struct {
	tables Tables
	err    error
	calls  int
}

func (s *staticSource) FetchTables(ctx context.Context) (Tables, error) {
	s.calls++
	return s.tables, s.err
}

func bulkTables() Tables {
	return Tables{
		TableGenericWords: {{"fresh"}},
		TableTerminology: {
			{"English", "Arabic"},
			{"Chicken Burger", "برجر دجاج"},
			{"Beef", "لحم بقري"},
		},
	}
}

func TestProcessor_PreservesOrder(t *testing.T) {
	items := make([]MenuItem, 50)
	for i := range items {
		items[i] = MenuItem{Name: fmt.Sprintf("Item %d", i), Description: "Slow roasted vegetables"}
	}
	items[7] = MenuItem{Name: "Chicken Burger", Description: "Delicious beef burger"}

	for _, workers := range []int{1, 3, 16} {
		p := NewProcessor(NewSnapshotStore(&staticSource{tables: bulkTables()}), nil, WithWorkers(workers))
		rows, report, err := p.Process(context.Background(), items, BatchOptions{Mode: ModeValidate})
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if len(rows) != len(items) {
			t.Fatalf("workers=%d: got %d rows", workers, len(rows))
		}
		for i, row := range rows {
			if row.Index != i || row.Item != items[i] {
				t.Fatalf("workers=%d: row %d out of order", workers, i)
			}
		}
		if rows[7].Verdict.Valid || report.Invalid != 1 || report.Valid != 49 {
			t.Errorf("workers=%d: report %+v", workers, report)
		}
	}
}

func TestProcessor_Both(t *testing.T) {
	provider := newMockProvider(map[string]string{"Food: Delicious": "لذيذ"})
	p := NewProcessor(NewSnapshotStore(&staticSource{tables: bulkTables()}), provider, WithCache(newMockCache()))

	rows, report, err := p.Process(context.Background(), []MenuItem{
		{Name: "Chicken Burger", Description: "Delicious beef burger"},
		{Name: "", Description: "orphan"},
	}, BatchOptions{Mode: ModeBoth, Sheet: SheetSep, Source: LangEnglish})
	if err != nil {
		t.Fatal(err)
	}

	first := rows[0]
	if first.Verdict == nil || first.Verdict.Action != ActionDeleteDescAndReplace {
		t.Errorf("verdict = %+v", first.Verdict)
	}
	if first.Translation == nil || first.Translation.Name.Text != "برجر دجاج" {
		t.Fatalf("translation = %+v", first.Translation)
	}
	if got := first.Translation.Description.Text; got != "لذيذ لحم بقري برجر دجاج" {
		t.Errorf("description = %q", got)
	}

	if rows[1].Error == "" || rows[1].Verdict != nil {
		t.Errorf("empty name should be reported on the row, got %+v", rows[1])
	}
	if report.InputErrors != 1 || report.Translated != 1 || report.Provider.Calls == 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestProcessor_InvalidOptions(t *testing.T) {
	p := NewProcessor(NewSnapshotStore(&staticSource{tables: bulkTables()}), nil)

	_, _, err := p.Process(context.Background(), nil, BatchOptions{Mode: ModeTranslate})
	if !IsInputError(err) {
		t.Errorf("translate without source should be an input error, got %v", err)
	}
	_, _, err = p.Process(context.Background(), nil, BatchOptions{Sheet: "Other"})
	if !IsInputError(err) {
		t.Errorf("unknown sheet should be an input error, got %v", err)
	}
}

func TestProcessor_DegradedSnapshot(t *testing.T) {
	p := NewProcessor(NewSnapshotStore(&staticSource{err: errors.New("sheet missing")},
		WithFetchRetry(RetryConfig{})), nil)

	rows, report, err := p.Process(context.Background(), []MenuItem{
		{Name: "Pork Ribs"},
		{Name: "Chicken Burger", Description: "Delicious beef burger"},
	}, BatchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !report.Degraded {
		t.Error("report should be degraded")
	}
	if rows[0].Verdict.Reason != "Forbidden: pork" || rows[1].Verdict.Action != ActionDeleteItem {
		t.Errorf("fixed rules should still apply: %+v / %+v", rows[0].Verdict, rows[1].Verdict)
	}
}

func TestProcessor_Cancelled(t *testing.T) {
	slow := newMockProvider(nil)
	slow.delay = 200 * time.Millisecond
	p := NewProcessor(NewSnapshotStore(&staticSource{tables: bulkTables()}), slow, WithWorkers(1))

	items := make([]MenuItem, 20)
	for i := range items {
		items[i] = MenuItem{Name: fmt.Sprintf("dish %d", i)}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, _, err := p.Process(ctx, items, BatchOptions{Mode: ModeTranslate, Source: LangEnglish}); err == nil {
		t.Error("expected cancellation error")
	}
}

func TestProcessor_SingleItemHelpers(t *testing.T) {
	p := NewProcessor(NewSnapshotStore(&staticSource{tables: bulkTables()}), nil)

	verdict, err := p.Validate(context.Background(), MenuItem{Name: "Orange Juice", Description: "Fresh orange juice"}, SheetMainMenu)
	if err != nil || verdict.Reason != "Generic: fresh" {
		t.Errorf("Validate = %+v, %v", verdict, err)
	}

	tr, err := p.TranslateItem(context.Background(), MenuItem{Name: "Chicken Burger"}, LangEnglish)
	if err != nil || tr.Name.Text != "برجر دجاج" {
		t.Errorf("TranslateItem = %+v, %v", tr, err)
	}
	if _, err := p.TranslateItem(context.Background(), MenuItem{}, LangEnglish); !IsInputError(err) {
		t.Errorf("expected input error, got %v", err)
	}
}
