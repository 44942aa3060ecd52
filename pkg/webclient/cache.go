package webclient

import (
	"sync"
	"time"
)

// cacheEntry holds a cached response body and its expiration time.
type cacheEntry struct {
	body      string
	expiresAt time.Time
}

// ResponseCache is a thread-safe, in-memory TTL cache for response bodies,
// keyed by request (query text or page title). Entries are lazily expired
// on access (checked during Get). A zero TTL disables caching entirely.
type ResponseCache struct {
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	defaultTTL time.Duration
}

// NewResponseCache creates a new cache with the given default TTL.
func NewResponseCache(defaultTTL time.Duration) *ResponseCache {
	return &ResponseCache{
		entries:    make(map[string]cacheEntry),
		defaultTTL: defaultTTL,
	}
}

// Get retrieves a cached body by key. Returns the body and true if found and
// not expired, or an empty string and false otherwise. Expired entries are
// lazily removed on access.
func (responseCache *ResponseCache) Get(key string) (string, bool) {
	if responseCache.defaultTTL <= 0 {
		return "", false
	}

	responseCache.mu.RLock()
	entry, exists := responseCache.entries[key]
	responseCache.mu.RUnlock()

	if !exists {
		return "", false
	}

	if time.Now().After(entry.expiresAt) {
		responseCache.mu.Lock()
		// Re-check in case another goroutine already removed or replaced it.
		if current, stillExists := responseCache.entries[key]; stillExists && time.Now().After(current.expiresAt) {
			delete(responseCache.entries, key)
		}
		responseCache.mu.Unlock()
		return "", false
	}

	return entry.body, true
}

// Set stores a response body in the cache with the default TTL.
func (responseCache *ResponseCache) Set(key, body string) {
	if responseCache.defaultTTL <= 0 {
		return
	}

	responseCache.mu.Lock()
	responseCache.entries[key] = cacheEntry{
		body:      body,
		expiresAt: time.Now().Add(responseCache.defaultTTL),
	}
	responseCache.mu.Unlock()
}

// Len returns the number of entries currently in the cache (including
// potentially expired ones).
func (responseCache *ResponseCache) Len() int {
	responseCache.mu.RLock()
	count := len(responseCache.entries)
	responseCache.mu.RUnlock()
	return count
}
