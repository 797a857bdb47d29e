package proposal

import (
	"context"
	"time"

	"lever/core"
	"lever/pkg/id"

	"github.com/fox-one/msgpack"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// Executor applies an executed proposal's encoded call to its target.
//
// The timelock itself knows nothing about targets; wiring happens at
// startup.
type Executor func(ctx context.Context, target, action string, call []byte) error

type proposalService struct {
	db        *db.DB
	system    *core.System
	proposals core.IProposalStore
	execute   Executor
}

// New new proposal service
func New(db *db.DB, system *core.System, proposals core.IProposalStore, execute Executor) core.IProposalService {
	return &proposalService{
		db:        db,
		system:    system,
		proposals: proposals,
		execute:   execute,
	}
}

func (s *proposalService) Schedule(ctx context.Context, creator, target, action string, args interface{}, notBefore time.Time) (*core.Proposal, error) {
	if !s.system.IsAdmin(creator) {
		return nil, core.ErrOperationForbidden
	}

	call, err := msgpack.Marshal(args)
	if err != nil {
		return nil, err
	}

	proposal := &core.Proposal{
		TraceID:   id.GenTraceID(),
		Creator:   creator,
		Target:    target,
		Action:    action,
		Call:      call,
		NotBefore: notBefore,
		Status:    core.ProposalStatusPending,
	}

	if err := s.proposals.Create(ctx, proposal); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).
		WithField("proposal", proposal.TraceID).
		Infoln("proposal scheduled")

	return proposal, nil
}

func (s *proposalService) Execute(ctx context.Context, operator, traceID string, at time.Time) error {
	if !s.system.IsAdmin(operator) {
		return core.ErrOperationForbidden
	}

	proposal, err := s.proposals.Find(ctx, traceID)
	if err != nil {
		return err
	}

	if proposal.ID == 0 {
		return core.ErrProposalNotFound
	}

	if proposal.Status != core.ProposalStatusPending {
		return core.ErrProposalFinished
	}

	if at.Before(proposal.NotBefore) {
		return core.ErrProposalNotReady
	}

	return s.db.Tx(func(tx *db.DB) error {
		if err := s.execute(ctx, proposal.Target, proposal.Action, proposal.Call); err != nil {
			return err
		}

		proposal.Status = core.ProposalStatusExecuted
		proposal.ExecutedAt = &at
		return s.proposals.Update(ctx, tx, proposal)
	})
}

func (s *proposalService) Cancel(ctx context.Context, operator, traceID string) error {
	if !s.system.IsAdmin(operator) {
		return core.ErrOperationForbidden
	}

	proposal, err := s.proposals.Find(ctx, traceID)
	if err != nil {
		return err
	}

	if proposal.ID == 0 {
		return core.ErrProposalNotFound
	}

	if proposal.Status != core.ProposalStatusPending {
		return core.ErrProposalFinished
	}

	proposal.Status = core.ProposalStatusCancelled

	return s.db.Tx(func(tx *db.DB) error {
		return s.proposals.Update(ctx, tx, proposal)
	})
}
