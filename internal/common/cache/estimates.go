package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	apperrors "sate-calculator/internal/common/errors"

	"github.com/redis/go-redis/v9"
)

// Store memoises JSON-encoded values under a fingerprint of their inputs.
// Entries expire after the configured TTL; a zero TTL keeps them forever.
type Store struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewStore(client redis.Cmdable, prefix string, ttl time.Duration) *Store {
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

// Fingerprint returns the hex sha256 of the JSON encoding of v. Struct field
// order is fixed, so equal inputs always produce equal keys.
func Fingerprint(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func (s *Store) key(fingerprint string) string {
	return s.prefix + fingerprint
}

// Get decodes the entry stored under fingerprint into dst. A miss returns
// false and no error.
func (s *Store) Get(ctx context.Context, fingerprint string, dst interface{}) (bool, error) {
	raw, err := s.client.Get(ctx, s.key(fingerprint)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewCacheUnavailableError("get", err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		// a corrupt entry is treated as a miss and overwritten on the next Set
		return false, nil
	}
	return true, nil
}

// Set stores v under fingerprint.
func (s *Store) Set(ctx context.Context, fingerprint string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return apperrors.NewCacheUnavailableError("encode", err)
	}
	if err := s.client.Set(ctx, s.key(fingerprint), string(data), s.ttl).Err(); err != nil {
		return apperrors.NewCacheUnavailableError("set", err)
	}
	return nil
}
