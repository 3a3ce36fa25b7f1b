// Package menuval validates and translates restaurant menu items.
//
// Menuval checks an item name and description pair against forbidden content,
// ambiguous "choice" offers, category mismatches, generic filler and
// content-free descriptions. It translates items between English and Arabic,
// preferring a curated terminology dictionary over machine translation.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//	    "os"
//
//	    "github.com/ZaguanLabs/menuval"
//	    "github.com/ZaguanLabs/menuval/cache"
//	    "github.com/ZaguanLabs/menuval/processor"
//	    "github.com/ZaguanLabs/menuval/provider"
//	    "github.com/ZaguanLabs/menuval/source"
//	)
//
//	func main() {
//	    ctx := context.Background()
//
//	    // Load the configuration snapshot (word lists, terminology, description library)
//	    store := menuval.NewSnapshotStore(source.NewYAMLSource("settings.yaml"))
//
//	    // Create provider
//	    p, err := provider.NewGoogleProvider(ctx, provider.GoogleConfig{
//	        APIKey: os.Getenv("GOOGLE_TRANSLATE_API_KEY"),
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    lru, _ := cache.NewLRUCache(4096)
//	    proc := menuval.NewProcessor(store, p, menuval.WithCache(lru))
//
//	    data, err := os.ReadFile("menu.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    items, err := processor.Extract(data, "csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    rows, report, err := proc.Process(ctx, items, menuval.BatchOptions{
//	        Sheet:  menuval.SheetMainMenu,
//	        Mode:   menuval.ModeBoth,
//	        Source: menuval.LangEnglish,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(report.Invalid, rows[0].Verdict.Reason)
//	}
package menuval
