package cache

const (
	// CacheVersion is the API version prefix for cache keys.
	CacheVersion = "v1"

	// CredentialKey maps a credential fingerprint to the internal user id.
	CredentialKey = CacheVersion + ":credential:%s"

	FatSecretTokenKey = CacheVersion + ":fatsecret:token"

	RateLimitKey = CacheVersion + ":ratelimit:%s"

	ExpiryNotifierLock = CacheVersion + ":lock:expiry-notifier"
	CategorySyncLock   = CacheVersion + ":lock:category-sync"
)
