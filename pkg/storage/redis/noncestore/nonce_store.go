/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package noncestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	redisapi "github.com/redis/go-redis/v9"

	"github.com/trustbloc/vcs-issuance/pkg/service/nonce"
	"github.com/trustbloc/vcs-issuance/pkg/storage/redis"
)

const (
	keyPrefix         = "noncestore"
	consumedKeyPrefix = keyPrefix + "-consumed"
	tenantKeyPrefix   = keyPrefix + "-tenant"
	tenantsKey        = keyPrefix + "-tenants"

	// DefaultRetention keeps expired entries readable so that late use is
	// reported as expired instead of not found.
	DefaultRetention = 10 * time.Minute
)

type redisDocument struct {
	*nonce.Nonce
}

func (d *redisDocument) MarshalBinary() ([]byte, error) {
	return json.Marshal(d.Nonce)
}

func (d *redisDocument) UnmarshalBinary(data []byte) error {
	d.Nonce = &nonce.Nonce{}

	return json.Unmarshal(data, d.Nonce)
}

// Store stores nonces in redis. A value key is scoped to its tenant and
// consumed with GETDEL, so a nonce can be taken at most once.
type Store struct {
	redisClient *redis.Client
	retention   time.Duration
	now         func() time.Time
}

// Opt configures Store.
type Opt func(s *Store)

// WithRetention sets how long an expired nonce stays readable.
func WithRetention(retention time.Duration) Opt {
	return func(s *Store) {
		s.retention = retention
	}
}

// WithNow sets the time source used to compute redis TTLs.
func WithNow(now func() time.Time) Opt {
	return func(s *Store) {
		s.now = now
	}
}

// New creates Store.
func New(redisClient *redis.Client, opts ...Opt) *Store {
	s := &Store{
		redisClient: redisClient,
		retention:   DefaultRetention,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create saves the nonce.
func (s *Store) Create(ctx context.Context, n *nonce.Nonce) error {
	ttl := n.ExpiresAt.Sub(s.now()) + s.retention
	if ttl <= 0 {
		ttl = time.Second
	}

	api := s.redisClient.API()

	ok, err := api.SetNX(ctx, redis.ResolveKey(keyPrefix, n.TenantID, n.Value), &redisDocument{Nonce: n}, ttl).Result()
	if err != nil {
		return fmt.Errorf("nonce create: %w", err)
	}

	if !ok {
		return nonce.ErrDuplicateNonce
	}

	pipeline := api.TxPipeline()
	pipeline.ZAdd(ctx, redis.ResolveKey(tenantKeyPrefix, n.TenantID), redisapi.Z{
		Score:  float64(n.ExpiresAt.UnixMilli()),
		Member: n.Value,
	})
	pipeline.SAdd(ctx, tenantsKey, n.TenantID)

	if _, err = pipeline.Exec(ctx); err != nil {
		return fmt.Errorf("nonce index: %w", err)
	}

	return nil
}

// Consume removes the nonce and leaves a consumed marker until it expires.
func (s *Store) Consume(ctx context.Context, tenantID, value string, now time.Time) (*nonce.Nonce, error) {
	api := s.redisClient.API()
	consumedKey := redis.ResolveKey(consumedKeyPrefix, tenantID, value)

	doc := &redisDocument{}

	err := api.GetDel(ctx, redis.ResolveKey(keyPrefix, tenantID, value)).Scan(doc)
	if err != nil {
		if !errors.Is(err, redisapi.Nil) {
			return nil, fmt.Errorf("nonce consume: %w", err)
		}

		exists, existsErr := api.Exists(ctx, consumedKey).Result()
		if existsErr != nil {
			return nil, fmt.Errorf("nonce consumed marker: %w", existsErr)
		}

		if exists > 0 {
			return nil, nonce.ErrNonceConsumed
		}

		return nil, nonce.ErrNonceNotFound
	}

	if !now.Before(doc.ExpiresAt) {
		return nil, nonce.ErrNonceExpired
	}

	// The index entry stays until the sweep so tenant purge also removes the marker.
	if err = api.Set(ctx, consumedKey, "1", doc.ExpiresAt.Sub(now)+s.retention).Err(); err != nil {
		return nil, fmt.Errorf("nonce consumed marker: %w", err)
	}

	return doc.Nonce, nil
}

// DeleteExpired trims the per-tenant index. The entries themselves expire through redis TTL.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	api := s.redisClient.API()

	tenants, err := api.SMembers(ctx, tenantsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("list nonce tenants: %w", err)
	}

	total := 0
	maxScore := strconv.FormatInt(now.UnixMilli(), 10)

	for _, tenantID := range tenants {
		indexKey := redis.ResolveKey(tenantKeyPrefix, tenantID)

		removed, remErr := api.ZRemRangeByScore(ctx, indexKey, "-inf", maxScore).Result()
		if remErr != nil {
			return total, fmt.Errorf("trim nonce index: %w", remErr)
		}

		total += int(removed)

		left, cardErr := api.ZCard(ctx, indexKey).Result()
		if cardErr != nil {
			return total, fmt.Errorf("nonce index size: %w", cardErr)
		}

		if left == 0 {
			api.SRem(ctx, tenantsKey, tenantID)
		}
	}

	return total, nil
}

// DeleteTenant removes every nonce of the tenant that is still indexed.
func (s *Store) DeleteTenant(ctx context.Context, tenantID string) error {
	api := s.redisClient.API()
	indexKey := redis.ResolveKey(tenantKeyPrefix, tenantID)

	values, err := api.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("list tenant nonces: %w", err)
	}

	keys := make([]string, 0, 2*len(values)+1)
	for _, v := range values {
		keys = append(keys, redis.ResolveKey(keyPrefix, tenantID, v), redis.ResolveKey(consumedKeyPrefix, tenantID, v))
	}

	keys = append(keys, indexKey)

	pipeline := api.TxPipeline()
	pipeline.Del(ctx, keys...)
	pipeline.SRem(ctx, tenantsKey, tenantID)

	if _, err = pipeline.Exec(ctx); err != nil {
		return fmt.Errorf("delete tenant nonces: %w", err)
	}

	return nil
}
