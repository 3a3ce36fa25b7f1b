package menuval

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchOptions selects what a batch does.
type BatchOptions struct {
	Sheet  SheetType // default: SheetMainMenu
	Mode   Mode      // default: ModeValidate
	Source Language  // required when the mode translates
}

// RowResult is the outcome for one input row. Index is the row's position in the input.
type RowResult struct {
	Index       int              `json:"index"`
	Item        MenuItem         `json:"item"`
	Verdict     *Verdict         `json:"verdict,omitempty"`
	Translation *ItemTranslation `json:"translation,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// BatchReport summarizes a batch.
type BatchReport struct {
	Total             int           `json:"total"`
	Valid             int           `json:"valid"`
	Invalid           int           `json:"invalid"`
	InputErrors       int           `json:"input_errors"`
	Translated        int           `json:"translated"`
	TranslationErrors int           `json:"translation_errors"`
	Degraded          bool          `json:"degraded"`
	Provider          ResolverStats `json:"provider"`
	Elapsed           time.Duration `json:"elapsed"`
}

// Processor validates and translates batches of menu items with a bounded worker pool.
type Processor struct {
	store      *SnapshotStore
	translator *Translator
	workers    int
	logger     *zap.Logger
}

// NewProcessor creates a processor reading configuration from store.
func NewProcessor(store *SnapshotStore, provider Provider, opts ...Option) *Processor {
	s := newSettings(opts)
	return &Processor{
		store:      store,
		translator: NewTranslator(provider, opts...),
		workers:    s.workers,
		logger:     s.logger,
	}
}

// Snapshot returns the snapshot the next batch will use.
func (p *Processor) Snapshot(ctx context.Context) *Snapshot {
	return p.store.Current(ctx)
}

// Store returns the snapshot store.
func (p *Processor) Store() *SnapshotStore {
	return p.store
}

// Translator returns the item translator.
func (p *Processor) Translator() *Translator {
	return p.translator
}

func (o BatchOptions) withDefaults() (BatchOptions, error) {
	if o.Sheet == "" {
		o.Sheet = SheetMainMenu
	}
	if o.Mode == "" {
		o.Mode = ModeValidate
	}
	if o.Sheet != SheetMainMenu && o.Sheet != SheetSep {
		return o, &InputError{Field: "sheet", Message: "unknown sheet type " + string(o.Sheet)}
	}
	if !o.Mode.Validates() && !o.Mode.Translates() {
		return o, &InputError{Field: "mode", Message: "unknown mode " + string(o.Mode)}
	}
	if o.Mode.Translates() {
		if _, err := TargetFor(o.Source); err != nil {
			return o, &InputError{Field: "source_lang", Message: err.Error()}
		}
	}
	return o, nil
}

// Process runs every item through the selected pipelines. The returned rows
// have the same length and order as items whatever the worker count. Row-level
// problems are reported on the row; only invalid options or a cancelled context
// fail the batch.
func (p *Processor) Process(ctx context.Context, items []MenuItem, opts BatchOptions) ([]RowResult, BatchReport, error) {
	start := time.Now()

	opts, err := opts.withDefaults()
	if err != nil {
		return nil, BatchReport{}, err
	}

	// One snapshot for the whole batch, even if a refresh lands meanwhile.
	snap := p.store.Current(ctx)
	validator := NewValidator(snap)
	before := p.translator.Resolver().Stats()

	results := make([]RowResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.processRow(gctx, snap, validator, i, item, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, BatchReport{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, BatchReport{}, err
	}

	report := summarize(results)
	report.Degraded = !snap.Verified
	after := p.translator.Resolver().Stats()
	report.Provider = ResolverStats{
		Calls:     after.Calls - before.Calls,
		CacheHits: after.CacheHits - before.CacheHits,
		Errors:    after.Errors - before.Errors,
	}
	report.Elapsed = time.Since(start)

	p.logger.Info("batch processed",
		zap.Int("total", report.Total),
		zap.Int("invalid", report.Invalid),
		zap.Int("input_errors", report.InputErrors),
		zap.Int64("provider_calls", report.Provider.Calls),
		zap.Bool("degraded", report.Degraded),
		zap.Duration("elapsed", report.Elapsed),
	)
	return results, report, nil
}

func (p *Processor) processRow(ctx context.Context, snap *Snapshot, v *Validator, i int, item MenuItem, opts BatchOptions) RowResult {
	row := RowResult{Index: i, Item: item}

	if opts.Mode.Validates() {
		verdict, err := v.Validate(item, opts.Sheet)
		if err != nil {
			row.Error = err.Error()
			return row
		}
		row.Verdict = &verdict
	}

	if opts.Mode.Translates() {
		if err := requireName(item); err != nil {
			row.Error = err.Error()
			return row
		}
		tr, err := p.translator.TranslateItem(ctx, snap, item, opts.Source)
		if err != nil {
			row.Error = err.Error()
			return row
		}
		row.Translation = &tr
	}
	return row
}

func requireName(item MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return &InputError{Field: "item_name", Message: "item name is required"}
	}
	return nil
}

func summarize(results []RowResult) BatchReport {
	r := BatchReport{Total: len(results)}
	for _, row := range results {
		if row.Error != "" {
			r.InputErrors++
			continue
		}
		if row.Verdict != nil {
			if row.Verdict.Valid {
				r.Valid++
			} else {
				r.Invalid++
			}
		}
		if row.Translation != nil {
			if row.Translation.Name.Tag == TagError || row.Translation.Description.Tag == TagError {
				r.TranslationErrors++
			} else {
				r.Translated++
			}
		}
	}
	return r
}

// Validate checks a single item against the current snapshot.
func (p *Processor) Validate(ctx context.Context, item MenuItem, sheet SheetType) (Verdict, error) {
	return NewValidator(p.store.Current(ctx)).Validate(item, sheet)
}

// TranslateItem translates a single item with the current snapshot.
func (p *Processor) TranslateItem(ctx context.Context, item MenuItem, source Language) (ItemTranslation, error) {
	if err := requireName(item); err != nil {
		return ItemTranslation{}, err
	}
	return p.translator.TranslateItem(ctx, p.store.Current(ctx), item, source)
}

// IsInputError reports whether err is a per-row input problem.
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}
