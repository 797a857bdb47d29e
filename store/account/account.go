package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lever/core"

	"github.com/go-redis/redis"
	"github.com/shopspring/decimal"
)

type accountStore struct {
	redis *redis.Client
}

// New new account store backed by redis
func New(redis *redis.Client) core.IAccountStore {
	return &accountStore{redis: redis}
}

func (s *accountStore) SaveLiquidity(ctx context.Context, userID string, at int64, collateralValue, borrowValue decimal.Decimal) error {
	k := s.liquidityCacheKey(userID, at)

	if s.redis.Exists(k).Val() == 0 {
		s.redis.Set(k, []byte(collateralValue.String()+"|"+borrowValue.String()), time.Hour)
	}
	return nil
}

func (s *accountStore) FindLiquidity(ctx context.Context, userID string, at int64) (decimal.Decimal, decimal.Decimal, error) {
	k := s.liquidityCacheKey(userID, at)

	bs, err := s.redis.Get(k).Bytes()
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	parts := strings.SplitN(string(bs), "|", 2)
	if len(parts) != 2 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("malformed liquidity cache entry %q", bs)
	}

	collateralValue, err := decimal.NewFromString(parts[0])
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	borrowValue, err := decimal.NewFromString(parts[1])
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return collateralValue, borrowValue, nil
}

func (s *accountStore) liquidityCacheKey(userID string, at int64) string {
	return fmt.Sprintf("lever:liquidity:%s:%d", userID, at)
}
