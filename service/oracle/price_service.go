package oracle

import (
	"context"
	"fmt"
	"time"

	"lever/core"

	"github.com/bluele/gcache"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Config price feed endpoint config
type Config struct {
	URL      string        `json:"url"`
	CacheTTL time.Duration `json:"cache_ttl"`
}

type priceService struct {
	client *resty.Client
	cache  gcache.Cache
	sf     *singleflight.Group
	ttl    time.Duration
}

// New new price oracle service reading the external price feed over http,
// with a short TTL cache in front of it
func New(cfg Config) core.IPriceOracleService {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Second
	}

	return &priceService{
		client: resty.New().SetBaseURL(cfg.URL).SetTimeout(10 * time.Second),
		cache:  gcache.New(256).LRU().Build(),
		sf:     &singleflight.Group{},
		ttl:    ttl,
	}
}

func (s *priceService) GetPrice(ctx context.Context, assetID string) (decimal.Decimal, error) {
	if v, err := s.cache.Get(assetID); err == nil {
		return v.(decimal.Decimal), nil
	}

	v, err, _ := s.sf.Do(assetID, func() (interface{}, error) {
		return s.fetchPrice(ctx, assetID)
	})
	if err != nil {
		return decimal.Zero, err
	}

	return v.(decimal.Decimal), nil
}

func (s *priceService) fetchPrice(ctx context.Context, assetID string) (decimal.Decimal, error) {
	var body struct {
		Price decimal.Decimal `json:"price"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("asset", assetID).
		SetResult(&body).
		Get("/prices")
	if err != nil {
		return decimal.Zero, fmt.Errorf("price feed: %w", err)
	}

	if !resp.IsSuccess() || !body.Price.IsPositive() {
		return decimal.Zero, core.ErrInvalidPrice
	}

	price := body.Price.Truncate(core.PriceDecimals)
	_ = s.cache.SetWithExpire(assetID, price, s.ttl)

	return price, nil
}
