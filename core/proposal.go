package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// ProposalStatus proposal status
type ProposalStatus int

const (
	// ProposalStatusPending scheduled, waiting for its delay
	ProposalStatusPending ProposalStatus = iota + 1
	// ProposalStatusExecuted executed exactly once
	ProposalStatusExecuted
	// ProposalStatusCancelled cancelled before execution
	ProposalStatusCancelled
)

// Proposal is a timelocked admin call: stored encoded, executable only
// after NotBefore and only once, cancellable while pending.
type Proposal struct {
	ID         uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID    string         `sql:"size:36;unique_index:proposal_trace_idx" json:"trace_id"`
	Creator    string         `sql:"size:36" json:"creator"`
	Target     string         `sql:"size:64" json:"target"`
	Action     string         `sql:"size:64" json:"action"`
	Call       []byte         `sql:"type:blob" json:"call"`
	NotBefore  time.Time      `json:"not_before"`
	Status     ProposalStatus `sql:"default:1" json:"status"`
	ExecutedAt *time.Time     `json:"executed_at,omitempty"`
	CreatedAt  time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IProposalStore proposal store interface
type IProposalStore interface {
	Create(ctx context.Context, proposal *Proposal) error
	Find(ctx context.Context, traceID string) (*Proposal, error)
	Pending(ctx context.Context) ([]*Proposal, error)
	Update(ctx context.Context, tx *db.DB, proposal *Proposal) error
}

// IProposalService governance timelock interface
type IProposalService interface {
	Schedule(ctx context.Context, creator, target, action string, args interface{}, notBefore time.Time) (*Proposal, error)
	Execute(ctx context.Context, operator, traceID string, at time.Time) error
	Cancel(ctx context.Context, operator, traceID string) error
}
