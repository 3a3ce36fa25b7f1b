// Package cache provides translation caches for the resolver.
package cache

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	// Get retrieves a cached translation. Returns empty string and false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a translation in the cache.
	Set(key string, value string) error
}

// EnumerableCache is a cache whose live entries can be listed, which is what export needs.
type EnumerableCache interface {
	TranslationCache
	Entries() map[string]string
}
