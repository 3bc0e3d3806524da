package service

import (
	"context"
	"testing"

	"holo-api/internal/domain/entity"
	"holo-api/internal/repository"
	"holo-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_WritesInsideTransaction(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewAuditLogRepository()
	svc := NewAuditService(testutil.NewLogger(), repo)

	userID := uint(42)

	tx := db.Begin()
	require.NoError(t, svc.LogCreate(ctx, tx, &userID, entity.AuditActionRelationshipAssign, "therapist_patient", 7, map[string]uint{"patient_id": 7}))
	require.NoError(t, svc.LogEvent(ctx, tx, &userID, entity.AuditActionUserLogin, entity.JSON{"email": "a@x.com"}))
	require.NoError(t, tx.Commit().Error)

	logs, err := repo.FindByUserID(ctx, db, userID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	actions := []string{logs[0].Action, logs[1].Action}
	assert.ElementsMatch(t, []string{entity.AuditActionRelationshipAssign, entity.AuditActionUserLogin}, actions)
}

func TestAuditService_RollbackDiscardsEntry(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewAuditLogRepository()
	svc := NewAuditService(testutil.NewLogger(), repo)

	userID := uint(1)

	tx := db.Begin()
	require.NoError(t, svc.LogDelete(ctx, tx, &userID, entity.AuditActionUserDelete, "user", userID, nil))
	require.NoError(t, tx.Rollback().Error)

	logs, err := repo.FindByUserID(ctx, db, userID, 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
