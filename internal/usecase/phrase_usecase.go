package usecase

import (
	"context"
	"strings"

	"holo-api/internal/converter"
	"holo-api/internal/delivery/dto"
	"holo-api/internal/domain/entity"
	"holo-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PhraseUsecase interface {
	RandomPhrase(ctx context.Context, tcaType string) (*dto.PhraseResponse, error)
	SeedDefaults(ctx context.Context, phrases []entity.Phrase) (int, error)
}

type phraseUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	phraseRepo repository.PhraseRepository
}

func NewPhraseUsecase(db *gorm.DB, log *logrus.Logger, phraseRepo repository.PhraseRepository) PhraseUsecase {
	return &phraseUsecase{
		db:         db,
		log:        log,
		phraseRepo: phraseRepo,
	}
}

// RandomPhrase picks a phrase of tcaType, falling back to the general set.
func (u *phraseUsecase) RandomPhrase(ctx context.Context, tcaType string) (*dto.PhraseResponse, error) {
	tcaType = strings.ToLower(strings.TrimSpace(tcaType))

	phrase, err := u.phraseRepo.FindRandomByType(ctx, u.db, tcaType)
	if err != nil {
		u.log.Warnf("Failed to find phrase: %+v", err)
		return nil, err
	}

	if phrase == nil && tcaType != entity.TcaTypeGeneral {
		phrase, err = u.phraseRepo.FindRandomByType(ctx, u.db, entity.TcaTypeGeneral)
		if err != nil {
			u.log.Warnf("Failed to find general phrase: %+v", err)
			return nil, err
		}
	}

	if phrase == nil {
		return nil, ErrNotFound
	}

	return converter.PhraseToResponse(phrase), nil
}

// SeedDefaults inserts phrases only when the table is empty and reports how
// many rows were written.
func (u *phraseUsecase) SeedDefaults(ctx context.Context, phrases []entity.Phrase) (int, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	count, err := u.phraseRepo.Count(ctx, tx)
	if err != nil {
		u.log.Warnf("Failed to count phrases: %+v", err)
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	if err := u.phraseRepo.CreateBatch(ctx, tx, phrases); err != nil {
		u.log.Warnf("Failed to seed phrases: %+v", err)
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return 0, err
	}

	return len(phrases), nil
}
