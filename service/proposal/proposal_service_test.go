package proposal

import (
	"context"
	"testing"
	"time"

	"lever/core"
	"lever/pkg/number"

	"github.com/fox-one/msgpack"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProposalStore struct {
	proposals []*core.Proposal
}

func (s *fakeProposalStore) Create(ctx context.Context, proposal *core.Proposal) error {
	proposal.ID = uint64(len(s.proposals) + 1)
	s.proposals = append(s.proposals, proposal)
	return nil
}

func (s *fakeProposalStore) Find(ctx context.Context, traceID string) (*core.Proposal, error) {
	for _, p := range s.proposals {
		if p.TraceID == traceID {
			return p, nil
		}
	}
	return &core.Proposal{}, nil
}

func (s *fakeProposalStore) Pending(ctx context.Context) ([]*core.Proposal, error) {
	var out []*core.Proposal
	for _, p := range s.proposals {
		if p.Status == core.ProposalStatusPending {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeProposalStore) Update(ctx context.Context, tx *db.DB, proposal *core.Proposal) error {
	return nil
}

func TestScheduleRequiresAdmin(t *testing.T) {
	system := &core.System{Admins: []string{"admin"}}
	store := &fakeProposalStore{}
	service := New(nil, system, store, nil)

	_, err := service.Schedule(context.Background(), "mallory", "btc", ActionCloseMarket, struct{}{}, time.Now())
	assert.Equal(t, core.ErrOperationForbidden, err)
	assert.Len(t, store.proposals, 0)
}

func TestScheduleEncodesCall(t *testing.T) {
	system := &core.System{Admins: []string{"admin"}}
	store := &fakeProposalStore{}
	service := New(nil, system, store, nil)

	market := &core.Market{Symbol: "BTC", CollateralFactor: number.Decimal("0.75")}
	notBefore := time.Now().Add(24 * time.Hour)

	proposal, err := service.Schedule(context.Background(), "admin", "btc", ActionUpdateMarket, market, notBefore)
	require.Nil(t, err)

	assert.NotEmpty(t, proposal.TraceID)
	assert.Equal(t, core.ProposalStatusPending, proposal.Status)
	assert.Equal(t, "btc", proposal.Target)

	var decoded core.Market
	require.Nil(t, msgpack.Unmarshal(proposal.Call, &decoded))
	assert.Equal(t, "BTC", decoded.Symbol)
	assert.True(t, decoded.CollateralFactor.Equal(market.CollateralFactor))
}

type recordingMarketService struct {
	listed  []*core.Market
	updated []*core.Market
	closed  []string
	opened  []string
}

func (s *recordingMarketService) Accrue(ctx context.Context, assetID string, at time.Time) error {
	return nil
}

func (s *recordingMarketService) ListMarket(ctx context.Context, operator string, market *core.Market) error {
	s.listed = append(s.listed, market)
	return nil
}

func (s *recordingMarketService) UpdateMarket(ctx context.Context, operator string, market *core.Market) error {
	s.updated = append(s.updated, market)
	return nil
}

func (s *recordingMarketService) CloseMarket(ctx context.Context, operator string, assetID string) error {
	s.closed = append(s.closed, assetID)
	return nil
}

func (s *recordingMarketService) OpenMarket(ctx context.Context, operator string, assetID string) error {
	s.opened = append(s.opened, assetID)
	return nil
}

func TestExecuteGating(t *testing.T) {
	ctx := context.Background()
	database := db.MustOpen(db.SqliteInMemory())
	defer database.Close()

	system := &core.System{Admins: []string{"admin"}}
	store := &fakeProposalStore{}

	var executed int
	service := New(database, system, store, func(ctx context.Context, target, action string, call []byte) error {
		executed++
		return nil
	})

	notBefore := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	proposal, err := service.Schedule(ctx, "admin", "btc", ActionCloseMarket, struct{}{}, notBefore)
	require.Nil(t, err)

	assert.Equal(t, core.ErrOperationForbidden, service.Execute(ctx, "mallory", proposal.TraceID, notBefore.Add(time.Hour)))
	assert.Equal(t, core.ErrProposalNotFound, service.Execute(ctx, "admin", "no-such-trace", notBefore.Add(time.Hour)))

	// the timelock delay has not elapsed yet
	assert.Equal(t, core.ErrProposalNotReady, service.Execute(ctx, "admin", proposal.TraceID, notBefore.Add(-time.Second)))
	assert.Equal(t, 0, executed)

	require.Nil(t, service.Execute(ctx, "admin", proposal.TraceID, notBefore))
	assert.Equal(t, 1, executed)
	assert.Equal(t, core.ProposalStatusExecuted, proposal.Status)

	// executed proposals are finished for both verbs
	assert.Equal(t, core.ErrProposalFinished, service.Execute(ctx, "admin", proposal.TraceID, notBefore.Add(time.Hour)))
	assert.Equal(t, core.ErrProposalFinished, service.Cancel(ctx, "admin", proposal.TraceID))
	assert.Equal(t, 1, executed)
}

func TestCancelGating(t *testing.T) {
	ctx := context.Background()
	database := db.MustOpen(db.SqliteInMemory())
	defer database.Close()

	system := &core.System{Admins: []string{"admin"}}
	store := &fakeProposalStore{}

	var executed int
	service := New(database, system, store, func(ctx context.Context, target, action string, call []byte) error {
		executed++
		return nil
	})

	notBefore := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	proposal, err := service.Schedule(ctx, "admin", "btc", ActionOpenMarket, struct{}{}, notBefore)
	require.Nil(t, err)

	assert.Equal(t, core.ErrOperationForbidden, service.Cancel(ctx, "mallory", proposal.TraceID))
	assert.Equal(t, core.ErrProposalNotFound, service.Cancel(ctx, "admin", "no-such-trace"))

	require.Nil(t, service.Cancel(ctx, "admin", proposal.TraceID))
	assert.Equal(t, core.ProposalStatusCancelled, proposal.Status)

	// a cancelled proposal can never run, even after its delay
	assert.Equal(t, core.ErrProposalFinished, service.Execute(ctx, "admin", proposal.TraceID, notBefore.Add(time.Hour)))
	assert.Equal(t, core.ErrProposalFinished, service.Cancel(ctx, "admin", proposal.TraceID))
	assert.Equal(t, 0, executed)
}

type recordingPoolService struct {
	core.IPoolService

	withdrawals []string
}

func (s *recordingPoolService) WithdrawReserves(ctx context.Context, operator, assetID, receiverID string, amount decimal.Decimal) error {
	s.withdrawals = append(s.withdrawals, assetID+"/"+receiverID+"/"+amount.String())
	return nil
}

func TestMarketExecutor(t *testing.T) {
	ctx := context.Background()
	system := &core.System{Admins: []string{"admin"}}
	markets := &recordingMarketService{}
	pool := &recordingPoolService{}
	execute := MarketExecutor(system, markets, pool)

	call, err := msgpack.Marshal(&core.Market{Symbol: "BTC"})
	require.Nil(t, err)

	require.Nil(t, execute(ctx, "btc", ActionUpdateMarket, call))
	require.Len(t, markets.updated, 1)
	// the proposal target wins over whatever the payload carries
	assert.Equal(t, "btc", markets.updated[0].AssetID)
	assert.Equal(t, "BTC", markets.updated[0].Symbol)

	require.Nil(t, execute(ctx, "btc", ActionCloseMarket, nil))
	assert.Equal(t, []string{"btc"}, markets.closed)

	require.Nil(t, execute(ctx, "btc", ActionOpenMarket, nil))
	assert.Equal(t, []string{"btc"}, markets.opened)

	call, err = msgpack.Marshal(WithdrawReq{Opponent: "treasury", Amount: number.Decimal("12.5")})
	require.Nil(t, err)
	require.Nil(t, execute(ctx, "btc", ActionWithdrawReserves, call))
	assert.Equal(t, []string{"btc/treasury/12.5"}, pool.withdrawals)

	assert.Equal(t, core.ErrInvalidParams, execute(ctx, "btc", "whatever", nil))
}
