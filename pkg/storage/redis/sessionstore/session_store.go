/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	redisapi "github.com/redis/go-redis/v9"

	"github.com/trustbloc/vcs-issuance/pkg/service/oidc4ci"
	"github.com/trustbloc/vcs-issuance/pkg/storage/redis"
)

const (
	keyPrefix       = "oidc4ci-session"
	tenantKeyPrefix = keyPrefix + "-tenant"
	tenantsKey      = keyPrefix + "-tenants"
)

var ErrDuplicateTransaction = errors.New("transaction already exists")

type redisDocument struct {
	*oidc4ci.Session
}

func (d *redisDocument) MarshalBinary() ([]byte, error) {
	return json.Marshal(d.Session)
}

func (d *redisDocument) UnmarshalBinary(data []byte) error {
	d.Session = &oidc4ci.Session{}

	return json.Unmarshal(data, d.Session)
}

// Store stores deferred issuance sessions in redis. Entries expire through
// redis TTL; a per-tenant sorted set indexes them by expiry for sweep and purge.
type Store struct {
	redisClient *redis.Client
	now         func() time.Time
}

// Opt configures Store.
type Opt func(s *Store)

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
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) ttl(session *oidc4ci.Session) time.Duration {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl < time.Second {
		ttl = time.Second
	}

	return ttl
}

// Create saves a new session.
func (s *Store) Create(ctx context.Context, session *oidc4ci.Session) error {
	api := s.redisClient.API()

	ok, err := api.SetNX(ctx, redis.ResolveKey(keyPrefix, string(session.TransactionID)),
		&redisDocument{Session: session}, s.ttl(session)).Result()
	if err != nil {
		return fmt.Errorf("session create: %w", err)
	}

	if !ok {
		return ErrDuplicateTransaction
	}

	pipeline := api.TxPipeline()
	pipeline.ZAdd(ctx, redis.ResolveKey(tenantKeyPrefix, session.TenantID), redisapi.Z{
		Score:  float64(session.ExpiresAt.UnixMilli()),
		Member: string(session.TransactionID),
	})
	pipeline.SAdd(ctx, tenantsKey, session.TenantID)

	if _, err = pipeline.Exec(ctx); err != nil {
		return fmt.Errorf("session index: %w", err)
	}

	return nil
}

// Get returns the session.
func (s *Store) Get(ctx context.Context, txID oidc4ci.TxID) (*oidc4ci.Session, error) {
	doc := &redisDocument{}

	if err := s.redisClient.API().Get(ctx, redis.ResolveKey(keyPrefix, string(txID))).Scan(doc); err != nil {
		if errors.Is(err, redisapi.Nil) {
			return nil, oidc4ci.ErrDataNotFound
		}

		return nil, fmt.Errorf("session get: %w", err)
	}

	return doc.Session, nil
}

// Update replaces an existing session.
func (s *Store) Update(ctx context.Context, session *oidc4ci.Session) error {
	ok, err := s.redisClient.API().SetXX(ctx, redis.ResolveKey(keyPrefix, string(session.TransactionID)),
		&redisDocument{Session: session}, s.ttl(session)).Result()
	if err != nil {
		return fmt.Errorf("session update: %w", err)
	}

	if !ok {
		return oidc4ci.ErrDataNotFound
	}

	return nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, txID oidc4ci.TxID) error {
	api := s.redisClient.API()
	doc := &redisDocument{}

	if err := api.GetDel(ctx, redis.ResolveKey(keyPrefix, string(txID))).Scan(doc); err != nil {
		if errors.Is(err, redisapi.Nil) {
			return oidc4ci.ErrDataNotFound
		}

		return fmt.Errorf("session delete: %w", err)
	}

	if err := api.ZRem(ctx, redis.ResolveKey(tenantKeyPrefix, doc.TenantID), string(txID)).Err(); err != nil {
		return fmt.Errorf("session index: %w", err)
	}

	return nil
}

// DeleteExpired removes sessions that expired before now and returns their count.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	api := s.redisClient.API()

	tenants, err := api.SMembers(ctx, tenantsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("list session tenants: %w", err)
	}

	total := 0
	maxScore := strconv.FormatInt(now.UnixMilli(), 10)

	for _, tenantID := range tenants {
		indexKey := redis.ResolveKey(tenantKeyPrefix, tenantID)

		expired, rangeErr := api.ZRangeByScore(ctx, indexKey, &redisapi.ZRangeBy{Min: "-inf", Max: maxScore}).Result()
		if rangeErr != nil {
			return total, fmt.Errorf("list expired sessions: %w", rangeErr)
		}

		if len(expired) > 0 {
			keys := make([]string, 0, len(expired))
			members := make([]interface{}, 0, len(expired))

			for _, id := range expired {
				keys = append(keys, redis.ResolveKey(keyPrefix, id))
				members = append(members, id)
			}

			pipeline := api.TxPipeline()
			pipeline.Del(ctx, keys...)
			pipeline.ZRem(ctx, indexKey, members...)

			if _, err = pipeline.Exec(ctx); err != nil {
				return total, fmt.Errorf("delete expired sessions: %w", err)
			}

			total += len(expired)
		}

		left, cardErr := api.ZCard(ctx, indexKey).Result()
		if cardErr != nil {
			return total, fmt.Errorf("session index size: %w", cardErr)
		}

		if left == 0 {
			api.SRem(ctx, tenantsKey, tenantID)
		}
	}

	return total, nil
}

// DeleteTenant removes every session of the tenant.
func (s *Store) DeleteTenant(ctx context.Context, tenantID string) error {
	api := s.redisClient.API()
	indexKey := redis.ResolveKey(tenantKeyPrefix, tenantID)

	ids, err := api.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("list tenant sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, redis.ResolveKey(keyPrefix, id))
	}

	keys = append(keys, indexKey)

	pipeline := api.TxPipeline()
	pipeline.Del(ctx, keys...)
	pipeline.SRem(ctx, tenantsKey, tenantID)

	if _, err = pipeline.Exec(ctx); err != nil {
		return fmt.Errorf("delete tenant sessions: %w", err)
	}

	return nil
}
