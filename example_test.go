package menuval_test

import (
	"context"
	"fmt"
	"log"

	"github.com/ZaguanLabs/menuval"
	"github.com/ZaguanLabs/menuval/cache"
	"github.com/ZaguanLabs/menuval/processor"
	"github.com/ZaguanLabs/menuval/provider"
	"github.com/ZaguanLabs/menuval/source"
)

// Mirrors the package documentation with an in-memory workbook and the mock provider.
func ExampleProcessor_Process() {
	ctx := context.Background()

	store := menuval.NewSnapshotStore(source.NewStaticSource(menuval.Tables{
		menuval.TableTerminology: {{"English", "Arabic"}, {"Chicken", "دجاج"}},
	}))

	lru, err := cache.NewLRUCache(4096)
	if err != nil {
		log.Fatal(err)
	}
	proc := menuval.NewProcessor(store, provider.NewMockProvider(), menuval.WithCache(lru))

	data := []byte("Item Name,Description\nChicken Burger,Delicious beef burger\n")
	items, err := processor.Extract(data, "csv")
	if err != nil {
		log.Fatal(err)
	}

	rows, report, err := proc.Process(ctx, items, menuval.BatchOptions{
		Sheet:  menuval.SheetMainMenu,
		Mode:   menuval.ModeValidate,
		Source: menuval.LangEnglish,
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(report.Invalid, rows[0].Verdict.Reason)
	// Output: 1 Category Mismatch: chicken vs beef
}
