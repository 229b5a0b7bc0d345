// Package cache provides the optional read-through cache sitting in front of
// the translation memory service, so repeated bulk runs over the same strings
// don't re-query it.
package cache

// Cache stores raw translation-memory responses keyed by source text hash and
// locale.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}
