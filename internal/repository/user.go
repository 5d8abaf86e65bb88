package repository

import (
	"context"
	"errors"

	"kalem/internal/cache"
	"kalem/internal/models"
	"kalem/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user, profile and role data operations
type UserRepository interface {
	CreateWithProfile(ctx context.Context, user *models.User, username, displayName string) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile *models.Profile) error
	GetRole(ctx context.Context, userID uint) (models.Role, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithProfile persists the user together with their profile and the
// default reader role in one transaction, so signup never leaves a user
// without a profile or role row.
func (r *userRepository) CreateWithProfile(ctx context.Context, user *models.User, username, displayName string) error {
	defer observability.TrackQuery("create", "users")()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.Profile{
			UserID:      user.ID,
			Username:    username,
			DisplayName: displayName,
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		role := &models.UserRole{UserID: user.ID, Role: models.RoleReader}
		if err := tx.Create(role).Error; err != nil {
			return err
		}
		user.Profile = profile
		user.Role = role
		return nil
	})
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	defer observability.TrackQuery("get", "users")()
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Profile").
			Preload("Role").
			First(&user, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	defer observability.TrackQuery("get", "users")()
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Role").
		Where("email = ?", email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	defer observability.TrackQuery("get", "profiles")()
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	defer observability.TrackQuery("update", "profiles")()
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return err
	}
	cache.InvalidateUser(ctx, profile.UserID)
	return nil
}

func (r *userRepository) GetRole(ctx context.Context, userID uint) (models.Role, error) {
	defer observability.TrackQuery("get", "user_roles")()
	var role models.UserRole
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RoleReader, nil
	}
	if err != nil {
		return "", err
	}
	return role.Role, nil
}
