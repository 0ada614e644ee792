package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"workspace/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx).Preload("Organization").First(&u, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &u, nil
}

// FindByID reads a user on the caller's transaction handle.
func (r *UserRepository) FindByID(tx *gorm.DB, id int64) (*domain.User, error) {
	var u domain.User
	if err := tx.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx).
		Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &u, nil
}

func (r *UserRepository) GetOrganization(ctx context.Context, id int64) (*domain.Organization, error) {
	var o domain.Organization
	tx := r.db.WithContext(ctx).First(&o, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &o, nil
}
