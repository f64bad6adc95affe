// Package cache holds the key discipline for the read-through response
// caches. Entries are immutable snapshots: populated on miss with a TTL,
// returned verbatim on hit, never invalidated by writes. Staleness is
// bounded by the TTLs alone.
package cache

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/unicode/norm"
)

const (
	IndexTTL  = 3 * time.Minute
	SearchTTL = 2 * time.Minute
	DetailTTL = 90 * time.Second
)

// IndexKey keys the index snapshot per target type
func IndexKey(targetType string) string {
	return "indexcache:" + targetType
}

func MiniIndexKey() string {
	return "miniindexcache"
}

// DetailKey keys the per-entity detail snapshot
func DetailKey(targetType, id string) string {
	return targetType + "cache:" + id
}

// NormalizeQuery canonicalizes a search query so trivially different
// spellings share one cache entry
func NormalizeQuery(q string) string {
	q = strings.ToLower(strings.Join(strings.Fields(q), " "))
	return norm.NFC.String(q)
}

// QueryTooShort reports whether a normalized query is under the two rune
// search minimum. Counted in runes so multibyte scripts aren't let through
// on byte length.
func QueryTooShort(q string) bool {
	return utf8.RuneCountInString(q) < 2
}

// SearchKey keys a search snapshot by the hash of its normalized query
func SearchKey(q string) string {
	return "searchcache:" + strconv.FormatUint(xxhash.Sum64String(NormalizeQuery(q)), 16)
}

// Get returns the cached snapshot for key, if any. Lookup failures count
// as misses; the caller recomputes either way.
func Get(ctx context.Context, r *redis.Client, key string) (string, bool) {
	v := r.Get(ctx, key).Val()

	return v, v != ""
}
