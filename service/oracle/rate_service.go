package oracle

import (
	"context"
	"fmt"
	"time"

	"lever/core"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

type rateService struct {
	client *resty.Client
}

// NewRateOracle reads the external reference rate consumed by the
// oracle-driven curve. Reads are live on every query; caching here would
// decouple pool rates from the benchmark.
func NewRateOracle(cfg Config) core.IRateOracleService {
	return &rateService{
		client: resty.New().SetBaseURL(cfg.URL).SetTimeout(10 * time.Second),
	}
}

func (s *rateService) ReferenceRate(ctx context.Context) (decimal.Decimal, error) {
	var body struct {
		Rate decimal.Decimal `json:"rate"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/reference-rate")
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate feed: %w", err)
	}

	if !resp.IsSuccess() {
		return decimal.Zero, fmt.Errorf("rate feed: status %d", resp.StatusCode())
	}

	return body.Rate, nil
}
