package repository

import (
	"context"
	"errors"

	"holo-api/internal/domain/entity"
	domainRepo "holo-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return userOrNil(&user, err)
}

func (r *userRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return userOrNil(&user, err)
}

func (r *userRepository) FindByEmailWithProfile(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).
		Preload("PatientProfile").
		Preload("PsychologistProfile").
		Where("email = ?", email).
		First(&user).Error
	return userOrNil(&user, err)
}

// FindByIDAndRole returns nil when the id is unknown or belongs to another role.
func (r *userRepository) FindByIDAndRole(ctx context.Context, db *gorm.DB, id uint, role entity.Role) (*entity.User, error) {
	var user entity.User
	query := db.WithContext(ctx).Where("id = ? AND role = ?", id, role)
	switch role {
	case entity.RolePatient:
		query = query.Preload("PatientProfile")
	case entity.RolePsychologist:
		query = query.Preload("PsychologistProfile")
	}
	err := query.First(&user).Error
	return userOrNil(&user, err)
}

// UpdateIdentity never touches hashed_password or token_version, so a row
// read before a concurrent password change cannot write them back.
func (r *userRepository) UpdateIdentity(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).
		Model(user).
		Select("name", "surname", "center", "phone").
		Updates(user).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, db *gorm.DB, id uint, hashedPassword string) error {
	return db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"hashed_password": hashedPassword,
			"token_version":   gorm.Expr("token_version + ?", 1),
		}).Error
}

func (r *userRepository) IncrementTokenVersion(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + ?", 1)).Error
}

func (r *userRepository) Delete(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.User{}).Error
}

func userOrNil(user *entity.User, err error) (*entity.User, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
