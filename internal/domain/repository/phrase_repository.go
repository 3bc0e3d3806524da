package repository

import (
	"context"

	"holo-api/internal/domain/entity"

	"gorm.io/gorm"
)

type PhraseRepository interface {
	FindRandomByType(ctx context.Context, db *gorm.DB, tcaType string) (*entity.Phrase, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	CreateBatch(ctx context.Context, db *gorm.DB, phrases []entity.Phrase) error
}
