package ledger

import (
	"context"
	"fmt"
	"time"

	"lever/core"
	"lever/pkg/id"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// Config token ledger endpoint config
type Config struct {
	URL string `json:"url"`
}

type ledgerService struct {
	client *resty.Client
}

// New new token ledger client. Transfers are atomic on the remote side;
// anything but an explicit success aborts the caller's operation.
func New(cfg Config) core.TokenLedger {
	return &ledgerService{
		client: resty.New().SetBaseURL(cfg.URL).SetTimeout(30 * time.Second),
	}
}

func (s *ledgerService) Pull(ctx context.Context, traceID, userID, assetID string, amount decimal.Decimal) error {
	return s.transfer(ctx, "pull", traceID, userID, assetID, amount)
}

func (s *ledgerService) Push(ctx context.Context, traceID, userID, assetID string, amount decimal.Decimal) error {
	return s.transfer(ctx, "push", traceID, userID, assetID, amount)
}

func (s *ledgerService) transfer(ctx context.Context, direction, traceID, userID, assetID string, amount decimal.Decimal) error {
	var body struct {
		OK bool `json:"ok"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"trace_id":  id.Modify(traceID, direction),
			"direction": direction,
			"user_id":   userID,
			"asset_id":  assetID,
			"amount":    amount,
		}).
		SetResult(&body).
		Post("/transfers")
	if err != nil {
		return fmt.Errorf("token ledger: %w", err)
	}

	if !resp.IsSuccess() || !body.OK {
		return core.ErrTransferFailed
	}

	return nil
}
