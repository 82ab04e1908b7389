package boundcache

import "github.com/OrlovEvgeny/go-boundcache/internal/policy"

// Policy decides which entry a Cache evicts. The cache calls the hooks after
// it has changed its entry map, so a policy only tracks keys and never values.
//
// Hooks must not call back into the cache that owns the policy.
type Policy[K comparable] interface {
	// Accessed is called after every successful Get.
	Accessed(key K)

	// Inserted is called after Set stored key. replaced is true when the key
	// was already cached and only its value changed.
	Inserted(key K, replaced bool)

	// Removed is called after key left the cache through Delete or eviction.
	// It returns false if the policy did not track key.
	Removed(key K) bool

	// Victim returns the key that should be evicted next without forgetting it.
	// It returns false when no keys are tracked.
	Victim() (K, bool)

	// Len returns the number of tracked keys.
	Len() int

	// Reset forgets all keys.
	Reset()
}

// Compile-time checks to ensure the built-in policies implement Policy
var (
	_ Policy[string] = (*policy.LFU[string])(nil)
	_ Policy[string] = (*policy.LFUDA[string])(nil)
	_ Policy[string] = (*policy.LRU[string])(nil)
	_ Policy[string] = (*policy.Random[string])(nil)
	_ Policy[string] = (*policy.TTL[string])(nil)
)
