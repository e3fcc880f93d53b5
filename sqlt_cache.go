package sqlt

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Capacity of the template cache used by `Preparse`.
const DefaultCacheSize = 1024

var prepCache = NewCache(DefaultCacheSize)

/*
Returns a parsed `Prep` for the given template. Caches successfully parsed
templates, reusing them for future calls; parsing errors are not cached. Used
internally by `Build`. User code shouldn't have to call this, but it's
exported just in case.
*/
func Preparse(src string) (Prep, error) { return prepCache.Get(src) }

// Variant of `Preparse` that panics on error.
func TryPreparse(src string) Prep { return try1(Preparse(src)) }

// Parses a template without caching.
func Parse(src string) (out Prep, err error) {
	defer rec(&err)
	out.Source = src
	out.Parse()
	return out, nil
}

/*
Bounded cache of parsed templates, keyed by source text, evicting the least
recently used entries. Safe for concurrent use. A nil `*Cache` is valid and
parses on every call.
*/
type Cache struct {
	lru *lru.Cache[string, Prep]
}

/*
Makes a cache holding up to `size` templates. Returns nil when `size` is not
positive, which disables caching.
*/
func NewCache(size int) *Cache {
	if size <= 0 {
		return nil
	}
	return &Cache{try1(lru.New[string, Prep](size))}
}

/*
Returns the cached `Prep` for the template, parsing and storing it on a miss.
Susceptible to "thundering herd": concurrent misses for the same template parse
it redundantly, and the last one wins.
*/
func (self *Cache) Get(src string) (Prep, error) {
	if self == nil {
		return Parse(src)
	}

	prep, ok := self.lru.Get(src)
	if ok {
		return prep, nil
	}

	prep, err := Parse(src)
	if err != nil {
		return prep, err
	}
	self.lru.Add(src, prep)
	return prep, nil
}

// True if the template is cached. Doesn't affect recency.
func (self *Cache) Has(src string) bool {
	return self != nil && self.lru.Contains(src)
}

// Number of cached templates.
func (self *Cache) Len() int {
	if self == nil {
		return 0
	}
	return self.lru.Len()
}

// Removes all cached templates.
func (self *Cache) Purge() {
	if self != nil {
		self.lru.Purge()
	}
}
