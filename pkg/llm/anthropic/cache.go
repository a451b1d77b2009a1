package anthropic

// CacheControl represents Anthropic's cache_control block for prompt caching.
// When added to a content block, it marks that block as a cache breakpoint,
// caching everything up to and including that block.
type CacheControl struct {
	Type string `json:"type"`          // "ephemeral" is the only supported value
	TTL  string `json:"ttl,omitempty"` // "5m" (default) or "1h"
}

// NewCacheControl creates a new CacheControl with the default 5-minute TTL.
func NewCacheControl() *CacheControl {
	return &CacheControl{Type: "ephemeral"}
}

// NewCacheControlWithTTL creates a new CacheControl with a specific TTL.
// Valid TTL values are "5m" (default) or "1h".
func NewCacheControlWithTTL(ttl string) *CacheControl {
	if ttl == "" || ttl == "5m" {
		return &CacheControl{Type: "ephemeral"}
	}
	return &CacheControl{Type: "ephemeral", TTL: ttl}
}
