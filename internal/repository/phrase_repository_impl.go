package repository

import (
	"context"
	"errors"

	"holo-api/internal/domain/entity"
	domainRepo "holo-api/internal/domain/repository"

	"gorm.io/gorm"
)

type phraseRepository struct{}

func NewPhraseRepository() domainRepo.PhraseRepository {
	return &phraseRepository{}
}

// FindRandomByType returns nil when no phrase carries tcaType.
func (r *phraseRepository) FindRandomByType(ctx context.Context, db *gorm.DB, tcaType string) (*entity.Phrase, error) {
	var phrase entity.Phrase
	err := db.WithContext(ctx).
		Where("tca_type = ?", tcaType).
		Order("RANDOM()").
		Take(&phrase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &phrase, nil
}

func (r *phraseRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Phrase{}).Count(&count).Error
	return count, err
}

func (r *phraseRepository) CreateBatch(ctx context.Context, db *gorm.DB, phrases []entity.Phrase) error {
	if len(phrases) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(phrases, 100).Error
}
