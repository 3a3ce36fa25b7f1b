package menuval

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Snapshot defaults.
const (
	DefaultSnapshotTTL  = time.Hour
	DefaultFetchTimeout = 30 * time.Second
)

// SnapshotStats summarizes what a snapshot loaded.
type SnapshotStats struct {
	GenericWords   int `json:"generic_words"`
	ForbiddenWords int `json:"forbidden_words"`
	AdWords        int `json:"ad_words"`
	SafeBacon      int `json:"safe_bacon"`
	SafeCuracao    int `json:"safe_curacao"`
	Terms          int `json:"terms"`
	TermsSkipped   int `json:"terms_skipped"`
	TermConflicts  int `json:"term_conflicts"`
	Descriptions   int `json:"descriptions"`
}

// Snapshot is an immutable view of the configuration tables.
// A snapshot with Verified false was built without a successful fetch.
type Snapshot struct {
	Words    WordLists
	Terms    *TerminologyIndex
	Library  *DescriptionLibrary
	Verified bool
	LoadedAt time.Time
	Stats    SnapshotStats
}

// BuildSnapshot parses fetched tables into a verified snapshot.
func BuildSnapshot(tables Tables, opts ...TerminologyOption) *Snapshot {
	s := &Snapshot{
		Words: NewWordLists(
			tables.Words(TableGenericWords, false),
			tables.Words(TableForbiddenWords, true),
			tables.Words(TableAdWords, false),
			tables.Words(TableSafeBacon, false),
			tables.Words(TableSafeCuracao, false),
		),
		Terms:    BuildTerminology(tables.TermRows(), opts...),
		Library:  NewDescriptionLibrary(tables.DescriptionEntries()),
		Verified: true,
		LoadedAt: time.Now(),
	}
	s.Stats = s.stats()
	return s
}

// EmptySnapshot returns an unverified snapshot with no configured data.
// Rules that do not depend on the tables still apply to it.
func EmptySnapshot() *Snapshot {
	s := &Snapshot{
		Words:    NewWordLists(nil, nil, nil, nil, nil),
		Terms:    BuildTerminology(nil),
		Library:  NewDescriptionLibrary(nil),
		LoadedAt: time.Now(),
	}
	s.Stats = s.stats()
	return s
}

func (s *Snapshot) stats() SnapshotStats {
	return SnapshotStats{
		GenericWords:   s.Words.Generic.Len(),
		ForbiddenWords: s.Words.Forbidden.Len(),
		AdWords:        s.Words.Ad.Len(),
		SafeBacon:      s.Words.SafeBacon.Len(),
		SafeCuracao:    s.Words.SafeCuracao.Len(),
		Terms:          s.Terms.Len(),
		TermsSkipped:   s.Terms.Skipped(),
		TermConflicts:  len(s.Terms.Conflicts()),
		Descriptions:   s.Library.Len(),
	}
}

// SnapshotStore serves the current snapshot and refreshes it from a
// ConfigSource once it is older than the TTL. Readers never block on a refresh
// that another goroutine is performing unless no snapshot exists yet.
type SnapshotStore struct {
	source  ConfigSource
	current atomic.Pointer[Snapshot]
	mu      sync.Mutex

	ttl          time.Duration
	fetchTimeout time.Duration
	retry        RetryConfig
	termOpts     []TerminologyOption
	logger       *zap.Logger
}

// StoreOption configures a SnapshotStore.
type StoreOption func(*SnapshotStore)

// WithSnapshotTTL sets how long a snapshot is served before a refresh.
func WithSnapshotTTL(ttl time.Duration) StoreOption {
	return func(s *SnapshotStore) {
		s.ttl = ttl
	}
}

// WithFetchTimeout bounds each fetch attempt.
func WithFetchTimeout(d time.Duration) StoreOption {
	return func(s *SnapshotStore) {
		s.fetchTimeout = d
	}
}

// WithFetchRetry sets the retry budget for fetches.
func WithFetchRetry(cfg RetryConfig) StoreOption {
	return func(s *SnapshotStore) {
		s.retry = cfg
	}
}

// WithTermOptions passes options to BuildTerminology on every refresh.
func WithTermOptions(opts ...TerminologyOption) StoreOption {
	return func(s *SnapshotStore) {
		s.termOpts = append(s.termOpts, opts...)
	}
}

// WithStoreLogger sets the logger used for refresh reporting.
func WithStoreLogger(l *zap.Logger) StoreOption {
	return func(s *SnapshotStore) {
		s.logger = l
	}
}

// NewSnapshotStore creates a store backed by source. A nil source yields
// unverified empty snapshots.
func NewSnapshotStore(source ConfigSource, opts ...StoreOption) *SnapshotStore {
	s := &SnapshotStore{
		source:       source,
		ttl:          DefaultSnapshotTTL,
		fetchTimeout: DefaultFetchTimeout,
		retry: RetryConfig{
			MaxRetries: 2,
			BaseDelay:  500 * time.Millisecond,
			MaxDelay:   5 * time.Second,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set installs a snapshot directly.
func (s *SnapshotStore) Set(snap *Snapshot) {
	s.current.Store(snap)
}

// Peek returns the current snapshot without refreshing. It may be nil.
func (s *SnapshotStore) Peek() *Snapshot {
	return s.current.Load()
}

// Current returns a fresh-enough snapshot, refreshing if it has expired.
// It never fails: fetch errors leave the previous or an empty snapshot in place.
func (s *SnapshotStore) Current(ctx context.Context) *Snapshot {
	if snap := s.current.Load(); snap != nil && !s.expired(snap) {
		return snap
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have refreshed while we waited.
	if snap := s.current.Load(); snap != nil && !s.expired(snap) {
		return snap
	}
	snap, _ := s.refreshLocked(ctx)
	return snap
}

// Refresh fetches the tables now and swaps in the new snapshot. On failure
// the previous snapshot stays (or an empty one is installed) and the error is returned.
func (s *SnapshotStore) Refresh(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *SnapshotStore) expired(snap *Snapshot) bool {
	return s.ttl > 0 && time.Since(snap.LoadedAt) >= s.ttl
}

func (s *SnapshotStore) refreshLocked(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	tables, err := s.fetch(ctx)
	if err != nil {
		prev := s.current.Load()
		if prev != nil && prev.Verified {
			s.logger.Warn("config refresh failed, keeping previous snapshot",
				zap.Error(err),
				zap.Time("loaded_at", prev.LoadedAt),
			)
			return prev, err
		}
		s.logger.Error("config fetch failed, running unverified", zap.Error(err))
		empty := EmptySnapshot()
		s.current.Store(empty)
		return empty, err
	}

	snap := BuildSnapshot(tables, s.termOpts...)
	for i, c := range snap.Terms.Conflicts() {
		if i == 10 {
			s.logger.Warn("more terminology conflicts omitted", zap.Int("total", len(snap.Terms.Conflicts())))
			break
		}
		s.logger.Warn("terminology conflict",
			zap.String("key", c.Key),
			zap.String("existing", c.Existing),
			zap.String("incoming", c.Incoming),
			zap.Int("row", c.Row),
		)
	}
	s.logger.Info("config snapshot loaded",
		zap.Int("terms", snap.Stats.Terms),
		zap.Int("terms_skipped", snap.Stats.TermsSkipped),
		zap.Int("generic_words", snap.Stats.GenericWords),
		zap.Int("forbidden_words", snap.Stats.ForbiddenWords),
		zap.Int("descriptions", snap.Stats.Descriptions),
		zap.Duration("elapsed", time.Since(start)),
	)

	s.current.Store(snap)
	return snap, nil
}

func (s *SnapshotStore) fetch(ctx context.Context) (Tables, error) {
	if s.source == nil {
		return nil, &ConfigError{Source: "none", Message: "no configuration source"}
	}
	return WithRetry(ctx, s.retry, func() (Tables, error) {
		fctx := ctx
		if s.fetchTimeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
			defer cancel()
		}
		return s.source.FetchTables(fctx)
	})
}
