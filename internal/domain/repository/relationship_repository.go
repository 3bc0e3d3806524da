package repository

import (
	"context"

	"holo-api/internal/domain/entity"

	"gorm.io/gorm"
)

// RelationshipRepository stores therapist to patient edges.
type RelationshipRepository interface {
	// Create inserts the edge and does nothing if it already exists.
	Create(ctx context.Context, db *gorm.DB, edge *entity.TherapistPatient) error
	Delete(ctx context.Context, db *gorm.DB, therapistID, patientID uint) (int64, error)
	Exists(ctx context.Context, db *gorm.DB, therapistID, patientID uint) (bool, error)
	FindPatientsByTherapist(ctx context.Context, db *gorm.DB, therapistID uint) ([]entity.User, error)
	FindTherapistsByPatient(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.User, error)
	DeleteByUser(ctx context.Context, db *gorm.DB, userID uint) error
}
