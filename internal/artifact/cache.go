package artifact

import (
	"errors"
	"fmt"
	"time"

	"github.com/finlog/expense-ledger/pkg/redis"
	"github.com/google/uuid"
)

// DefaultTTL is how long a stored artifact stays retrievable.
const DefaultTTL = 300 * time.Second

// Cache hands rendered blobs from the generation path to a later retrieval
// request. Entries expire on their own; redis evicts them without any
// process on our side having to run. A missing key is a normal outcome.
type Cache struct {
	redis redis.RedisAdapter
	ttl   time.Duration
}

func NewCache(adapter redis.RedisAdapter, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		redis: adapter,
		ttl:   ttl,
	}
}

// MintKey builds a fresh artifact key from the owner id plus a random
// component, so concurrent generations for the same owner never collide.
func (c *Cache) MintKey(ownerID int64) string {
	return fmt.Sprintf("chart:%d:%s", ownerID, uuid.NewString())
}

// Put stores blob under key, overwriting any prior value. The expiry is
// stamped at write time.
func (c *Cache) Put(key string, blob []byte) error {
	return c.redis.Set(key, blob, c.ttl)
}

// Get returns the blob and true when the key is present and unexpired.
// A miss yields (nil, false, nil): absence is not an error. Only a backing
// service failure produces a non-nil error.
func (c *Cache) Get(key string) ([]byte, bool, error) {
	blob, err := c.redis.Get(key)
	if err != nil {
		if errors.Is(err, redis.NilError) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return blob, true, nil
}

// TTL reports the remaining lifetime of key. Used by tests and diagnostics.
func (c *Cache) TTL(key string) (time.Duration, error) {
	return c.redis.TTL(key)
}
