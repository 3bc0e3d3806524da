package repository

import (
	"context"

	"holo-api/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
	FindByEmailWithProfile(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
	FindByIDAndRole(ctx context.Context, db *gorm.DB, id uint, role entity.Role) (*entity.User, error)
	// UpdateIdentity writes only name, surname, center and phone.
	UpdateIdentity(ctx context.Context, db *gorm.DB, user *entity.User) error
	// UpdatePassword stores the hash and bumps the token version in one statement.
	UpdatePassword(ctx context.Context, db *gorm.DB, id uint, hashedPassword string) error
	IncrementTokenVersion(ctx context.Context, db *gorm.DB, id uint) error
	Delete(ctx context.Context, db *gorm.DB, id uint) error
}
