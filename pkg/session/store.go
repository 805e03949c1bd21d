package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ratehub/adminkit/pkg/cache"
	"github.com/ratehub/adminkit/pkg/common/structs"
	"github.com/ratehub/adminkit/pkg/logger"
)

// sessionKey is the fixed cache key the credential is persisted under.
const sessionKey = "session:current"

// DefaultTTL matches the 7-day expiry of the persisted credential.
const DefaultTTL = 7 * 24 * time.Hour

// Store persists the signed session credential. A corrupted stored credential
// is treated as absent: the bad entry is removed and (nil, nil) is returned,
// never a parse error.
// NOTE: This store does NOT handle locking - callers are responsible for proper synchronization
type Store interface {
	// Current returns the persisted session, or (nil, nil) when absent.
	Current(ctx context.Context) (*structs.Session, error)

	// Save persists the session for the given TTL. A zero TTL uses DefaultTTL.
	Save(ctx context.Context, s *structs.Session, ttl time.Duration) error

	// Clear removes the persisted session. Clearing an absent session is a no-op.
	Clear(ctx context.Context) error
}

// CacheStore keeps the credential in a cache.Cache, JSON-encoded under a
// fixed prefixed key.
type CacheStore struct {
	cache cache.Cache
}

// New creates a credential store on top of the given cache driver.
func New(c cache.Cache) *CacheStore {
	return &CacheStore{cache: c}
}

func (s *CacheStore) Current(ctx context.Context) (*structs.Session, error) {
	val, err := s.cache.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}

	raw, ok := val.(string)
	if !ok {
		return s.discardCorrupted(ctx)
	}

	var sess structs.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return s.discardCorrupted(ctx)
	}
	return &sess, nil
}

// discardCorrupted drops an unparsable credential entry and reports "absent".
func (s *CacheStore) discardCorrupted(ctx context.Context) (*structs.Session, error) {
	logger.Logger(ctx).Warn("discarding corrupted session credential")
	if err := s.cache.Delete(ctx, sessionKey); err != nil {
		logger.Logger(ctx).WithError(err).Error("failed to remove corrupted session credential")
	}
	return nil, nil
}

func (s *CacheStore) Save(ctx context.Context, sess *structs.Session, ttl time.Duration) error {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, sessionKey, string(raw), ttl)
}

func (s *CacheStore) Clear(ctx context.Context) error {
	return s.cache.Delete(ctx, sessionKey)
}

// Compile-time interface compliance checks
var _ Store = (*CacheStore)(nil)
