package operation

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type operationStore struct {
	db *db.DB
}

// New new operation store
func New(db *db.DB) core.IOperationStore {
	return &operationStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Operation{})
		if err := tx.AutoMigrate(core.Operation{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *operationStore) Create(ctx context.Context, tx *db.DB, operation *core.Operation) error {
	return tx.Update().Create(operation).Error
}

func (s *operationStore) FindByTrace(ctx context.Context, traceID string) (*core.Operation, error) {
	var operation core.Operation
	if err := s.db.View().Where("trace_id=?", traceID).First(&operation).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Operation{}, nil
		}
		return nil, err
	}

	return &operation, nil
}

func (s *operationStore) List(ctx context.Context, userID string, limit int) ([]*core.Operation, error) {
	query := s.db.View()
	if userID != "" {
		query = query.Where("user_id=?", userID)
	}

	var operations []*core.Operation
	if err := query.Order("id desc").Limit(limit).Find(&operations).Error; err != nil {
		return nil, err
	}

	return operations, nil
}
