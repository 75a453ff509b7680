package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/minauth/auth-api/internal/core/domain"
	"github.com/minauth/auth-api/internal/core/ports"
)

const cacheTTL = time.Hour

// AccountCache is a read-through cache in front of a UserRepository.
// Accounts are immutable once created, so cached entries never go stale;
// the TTL only bounds memory. Cache failures degrade to the inner store and
// are logged, never surfaced.
// Key format: account:<normalized_email>
type AccountCache struct {
	inner  ports.UserRepository
	client *redis.Client
	log    zerolog.Logger
}

// cachedAccount carries the hash explicitly; domain.Account hides it from
// JSON on purpose, but the cache is server-side only.
type cachedAccount struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewAccountCache wraps inner with a Redis read-through cache.
func NewAccountCache(inner ports.UserRepository, client *redis.Client, log zerolog.Logger) *AccountCache {
	return &AccountCache{inner: inner, client: client, log: log}
}

func (c *AccountCache) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	data, err := c.client.Get(ctx, c.key(email)).Bytes()
	if err == nil {
		var rec cachedAccount
		if err := json.Unmarshal(data, &rec); err == nil {
			return &domain.Account{
				ID:           rec.ID,
				Email:        rec.Email,
				DisplayName:  rec.DisplayName,
				PasswordHash: rec.PasswordHash,
				CreatedAt:    rec.CreatedAt,
			}, nil
		}
		c.log.Warn().Str("email", email).Msg("corrupt cache entry, falling through")
	} else if err != redis.Nil {
		c.log.Warn().Err(err).Msg("account cache read failed")
	}

	account, err := c.inner.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	c.store(ctx, account)
	return account, nil
}

func (c *AccountCache) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	created, err := c.inner.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	c.store(ctx, created)
	return created, nil
}

// Ping checks both the cache and the inner store.
func (c *AccountCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	if p, ok := c.inner.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (c *AccountCache) store(ctx context.Context, account *domain.Account) {
	data, err := json.Marshal(cachedAccount{
		ID:           account.ID,
		Email:        account.Email,
		DisplayName:  account.DisplayName,
		PasswordHash: account.PasswordHash,
		CreatedAt:    account.CreatedAt,
	})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(account.Email), data, cacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("account cache write failed")
	}
}

func (c *AccountCache) key(email string) string {
	return fmt.Sprintf("account:%s", email)
}
