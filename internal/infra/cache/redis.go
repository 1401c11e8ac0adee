package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/autoimport-crm/internal/config"
	domain "github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
)

const (
	filtersTTL = 30 * 24 * time.Hour

	filtersPrefix   = "crm:filters:"
	revokedPrefix   = "crm:revoked:"
	rateLimitPrefix = "crm:ratelimit:"
)

func filtersKey(userID string) string { return filtersPrefix + userID }
func revokedKey(jti string) string    { return revokedPrefix + jti }
func rateKey(key string) string       { return rateLimitPrefix + key }

func NewRedisClient(cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}

	log.Info("redis connected", zap.String("addr", cfg.RedisAddr), zap.Int("db", cfg.RedisDB))
	return client, nil
}

// Redis guarda filtros por usuário, tokens revogados e contadores de rate limit.
type Redis struct {
	client *redis.Client
	loc    *time.Location
}

// loc é o fuso em que as datas dos filtros são reconstruídas ao ler.
func NewRedis(client *redis.Client, loc *time.Location) *Redis {
	if loc == nil {
		loc = time.UTC
	}
	return &Redis{client: client, loc: loc}
}

// ======================================================
// Filtros
// ======================================================

func (r *Redis) LoadFilters(ctx context.Context, userID string) (domain.Filters, error) {
	var f domain.Filters

	b, err := r.client.Get(ctx, filtersKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return f, nil
		}
		return f, err
	}

	return decodeFilters(b, r.loc)
}

func decodeFilters(b []byte, loc *time.Location) (domain.Filters, error) {
	var f domain.Filters
	if err := json.Unmarshal(b, &f); err != nil {
		return domain.Filters{}, fmt.Errorf("decode filters: %w", err)
	}
	return f.In(loc), nil
}

func (r *Redis) SaveFilters(ctx context.Context, userID string, f domain.Filters) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, filtersKey(userID), b, filtersTTL).Err()
}

func (r *Redis) DeleteFilters(ctx context.Context, userID string) error {
	return r.client.Del(ctx, filtersKey(userID)).Err()
}

// ======================================================
// Revogação de tokens
// ======================================================

// Revoke marca o jti até o token expirar; depois disso a chave some sozinha.
func (r *Redis) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKey(jti), 1, ttl).Err()
}

func (r *Redis) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ======================================================
// Rate limit (janela fixa)
// ======================================================

// Allow cria a chave já com TTL (SET NX EX) e incrementa na mesma transação,
// então o contador nunca fica sem expiração.
func (r *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	k := rateKey(key)

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, window)
		incr = pipe.Incr(ctx, k)
		return nil
	})
	if err != nil {
		return false, err
	}

	return incr.Val() <= int64(limit), nil
}

var _ domain.FilterStore = (*Redis)(nil)
