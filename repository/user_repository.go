package repository

import (
	"context"

	"bookstore-service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CreateIfMissing(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, email, name, address, department string) error
}

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// FindByEmail looks a user up by email, ignoring case and surrounding space.
// Every write stores the normalized form, so the primary key lookup matches.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", models.NormalizeEmail(email)).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) CreateIfMissing(ctx context.Context, user *models.User) error {
	user.Email = models.NormalizeEmail(user.Email)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(user).Error
}

// UpdateProfile changes name, address and department. Email and role are
// never written here.
func (r *GormUserRepository) UpdateProfile(ctx context.Context, email, name, address, department string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", models.NormalizeEmail(email)).
		Updates(map[string]interface{}{
			"name":       name,
			"address":    address,
			"department": department,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
