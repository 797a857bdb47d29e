package proposal

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type proposalStore struct {
	db *db.DB
}

// New new proposal store
func New(db *db.DB) core.IProposalStore {
	return &proposalStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Proposal{})
		if err := tx.AutoMigrate(core.Proposal{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *proposalStore) Create(ctx context.Context, proposal *core.Proposal) error {
	return s.db.Update().Create(proposal).Error
}

func (s *proposalStore) Find(ctx context.Context, traceID string) (*core.Proposal, error) {
	var proposal core.Proposal
	if err := s.db.View().Where("trace_id=?", traceID).First(&proposal).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Proposal{}, nil
		}
		return nil, err
	}

	return &proposal, nil
}

func (s *proposalStore) Pending(ctx context.Context) ([]*core.Proposal, error) {
	var proposals []*core.Proposal
	if err := s.db.View().Where("status=?", core.ProposalStatusPending).Find(&proposals).Error; err != nil {
		return nil, err
	}

	return proposals, nil
}

func (s *proposalStore) Update(ctx context.Context, tx *db.DB, proposal *core.Proposal) error {
	return tx.Update().Model(core.Proposal{}).
		Where("trace_id=? and status=?", proposal.TraceID, core.ProposalStatusPending).
		Update(proposal).Error
}
