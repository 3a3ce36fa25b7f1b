package menuval

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Default bulk processing settings.
const DefaultWorkers = 8

type settings struct {
	cache       TranslationCache
	callTimeout time.Duration
	logger      *zap.Logger
	workers     int
}

func newSettings(opts []Option) settings {
	s := settings{
		callTimeout: DefaultCallTimeout,
		logger:      zap.NewNop(),
		workers:     DefaultWorkers,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option is a functional option for configuring a Translator or Processor.
type Option func(*settings)

// WithCache sets the translation cache shared by every provider call.
func WithCache(cache TranslationCache) Option {
	return func(s *settings) {
		s.cache = cache
	}
}

// WithCallTimeout bounds each provider attempt.
func WithCallTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.callTimeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWorkers sets the number of items processed concurrently.
func WithWorkers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.workers = n
		}
	}
}

// Translator translates menu items between English and Arabic.
type Translator struct {
	resolver *Resolver
	logger   *zap.Logger
}

// NewTranslator creates a Translator over a provider. A nil provider leaves
// everything that is not terminology untranslated.
func NewTranslator(provider Provider, opts ...Option) *Translator {
	s := newSettings(opts)
	return &Translator{
		resolver: NewResolver(provider, ResolverConfig{
			Cache:   s.cache,
			Timeout: s.callTimeout,
			Logger:  s.logger,
		}),
		logger: s.logger,
	}
}

// Resolver returns the underlying word resolver.
func (t *Translator) Resolver() *Resolver {
	return t.resolver
}

// TranslateText translates one field with the terminology of snap.
func (t *Translator) TranslateText(ctx context.Context, snap *Snapshot, text string, source Language) (FieldTranslation, error) {
	target, err := TargetFor(source)
	if err != nil {
		return FieldTranslation{}, &InputError{Field: "source_lang", Message: err.Error()}
	}
	return NewPhraseTranslator(snap.Terms, t.resolver).Translate(ctx, text, source, target), nil
}

// TranslateItem translates the name and description of item with the same snapshot.
func (t *Translator) TranslateItem(ctx context.Context, snap *Snapshot, item MenuItem, source Language) (ItemTranslation, error) {
	target, err := TargetFor(source)
	if err != nil {
		return ItemTranslation{}, &InputError{Field: "source_lang", Message: err.Error()}
	}

	pt := NewPhraseTranslator(snap.Terms, t.resolver)
	out := ItemTranslation{
		Name:        pt.Translate(ctx, item.Name, source, target),
		Description: pt.Translate(ctx, item.Description, source, target),
	}
	if out.Name.Tag == TagError || out.Description.Tag == TagError {
		t.logger.Warn("translation fell back to source text",
			zap.String("item", item.Name),
			zap.String("name_tag", string(out.Name.Tag)),
			zap.String("description_tag", string(out.Description.Tag)),
		)
	}
	return out, nil
}
