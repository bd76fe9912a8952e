package ratelimit

import (
	"errors"
	"strings"
	"time"

	"github.com/invoicely/invoicely/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Admission groups the two limiters consulted before any state-changing
// work: creation and mutation meter independently per caller.
type Admission struct {
	Create Limiter
	Mutate Limiter
}

// NewAdmission builds admission control from config.
func NewAdmission(cfg config.Config) (*Admission, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return &Admission{Create: NewAllowAll(), Mutate: NewAllowAll()}, nil
	}

	window := time.Duration(limitCfg.WindowSeconds) * time.Second
	if window <= 0 {
		return nil, errors.New("rate limit window must be positive")
	}
	if limitCfg.CreateLimit <= 0 || limitCfg.MutateLimit <= 0 {
		return nil, errors.New("rate limits must be positive")
	}

	if limitCfg.Backend == config.RateLimitBackendRedis {
		addr := strings.TrimSpace(limitCfg.RedisAddr)
		if addr == "" {
			return nil, errors.New("rate limit redis addr is required")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: limitCfg.RedisPassword,
			DB:       limitCfg.RedisDB,
		})

		create, err := NewTokenBucket(client, float64(limitCfg.CreateLimit)/window.Seconds(), limitCfg.CreateLimit)
		if err != nil {
			return nil, err
		}
		mutate, err := NewTokenBucket(client, float64(limitCfg.MutateLimit)/window.Seconds(), limitCfg.MutateLimit)
		if err != nil {
			return nil, err
		}
		return &Admission{Create: create, Mutate: mutate}, nil
	}

	return &Admission{
		Create: NewFixedWindow(limitCfg.CreateLimit, window),
		Mutate: NewFixedWindow(limitCfg.MutateLimit, window),
	}, nil
}

var Module = fx.Module("rate.limit",
	fx.Provide(NewAdmission),
)
