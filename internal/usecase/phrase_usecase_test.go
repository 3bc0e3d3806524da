package usecase

import (
	"context"
	"testing"

	"holo-api/internal/domain/entity"
	"holo-api/internal/infrastructure/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhraseUsecase_EmptyTable(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.phrase.RandomPhrase(context.Background(), entity.TcaTypeAnorexia)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPhraseUsecase_SeedAndPick(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seeded, err := env.phrase.SeedDefaults(ctx, database.DefaultPhrases())
	require.NoError(t, err)
	assert.Equal(t, len(database.DefaultPhrases()), seeded)

	again, err := env.phrase.SeedDefaults(ctx, database.DefaultPhrases())
	require.NoError(t, err)
	assert.Zero(t, again, "seeding a populated table is a no-op")

	phrase, err := env.phrase.RandomPhrase(ctx, "Bulimia")
	require.NoError(t, err)
	assert.Equal(t, entity.TcaTypeBulimia, phrase.TcaType)
	assert.NotEmpty(t, phrase.Phrase)
}

func TestPhraseUsecase_FallsBackToGeneral(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.phrase.SeedDefaults(ctx, []entity.Phrase{
		{TcaType: entity.TcaTypeGeneral, Phrase: "You are not alone."},
	})
	require.NoError(t, err)

	phrase, err := env.phrase.RandomPhrase(ctx, "binge")
	require.NoError(t, err)
	assert.Equal(t, entity.TcaTypeGeneral, phrase.TcaType)
	assert.Equal(t, "You are not alone.", phrase.Phrase)
}
