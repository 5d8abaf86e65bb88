package service

import (
	"context"
	"testing"

	"kalem/internal/models"
	"kalem/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createWithProfileFn    func(context.Context, *models.User, string, string) error
	getByIDFn              func(context.Context, uint) (*models.User, error)
	getByEmailFn           func(context.Context, string) (*models.User, error)
	getProfileByUsernameFn func(context.Context, string) (*models.Profile, error)
	updateProfileFn        func(context.Context, *models.Profile) error
	getRoleFn              func(context.Context, uint) (models.Role, error)
}

func (s *userRepoStub) CreateWithProfile(ctx context.Context, user *models.User, username, displayName string) error {
	return s.createWithProfileFn(ctx, user, username, displayName)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return s.getProfileByUsernameFn(ctx, username)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	return s.updateProfileFn(ctx, profile)
}
func (s *userRepoStub) GetRole(ctx context.Context, userID uint) (models.Role, error) {
	return s.getRoleFn(ctx, userID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createWithProfileFn:    func(_ context.Context, _ *models.User, _, _ string) error { return nil },
		getByIDFn:              func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:           func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getProfileByUsernameFn: func(_ context.Context, _ string) (*models.Profile, error) { return &models.Profile{}, nil },
		updateProfileFn:        func(_ context.Context, _ *models.Profile) error { return nil },
		getRoleFn:              func(_ context.Context, _ uint) (models.Role, error) { return models.RoleReader, nil },
	}
}

func TestActorFor(t *testing.T) {
	t.Run("zero id yields anonymous actor", func(t *testing.T) {
		svc := NewUserService(noopUserRepo())
		actor, err := svc.ActorFor(context.Background(), 0)
		require.NoError(t, err)
		assert.False(t, actor.Authenticated())
	})

	t.Run("role and profile come from the user row", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{
				ID:      id,
				Profile: &models.Profile{ID: 33, UserID: id, Username: "elif-eco"},
				Role:    &models.UserRole{UserID: id, Role: models.RoleAuthor},
			}, nil
		}
		svc := NewUserService(repo)

		actor, err := svc.ActorFor(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, uint(7), actor.UserID)
		assert.Equal(t, uint(33), actor.ProfileID)
		assert.Equal(t, models.RoleAuthor, actor.Role)
	})

	t.Run("missing role row defaults to reader", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Profile: &models.Profile{ID: 4, UserID: id}}, nil
		}
		svc := NewUserService(repo)

		actor, err := svc.ActorFor(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, models.RoleReader, actor.Role)
	})

	t.Run("unknown user is unauthorized", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewUserService(repo)

		_, err := svc.ActorFor(context.Background(), 7)
		assert.Equal(t, models.CodeUnauthorized, models.ErrorCode(err))
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("owner updates display name and avatar", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{
				ID:      id,
				Profile: &models.Profile{ID: 4, UserID: id, Username: "ahmet_dev", DisplayName: "Eski Ad"},
			}, nil
		}
		var saved *models.Profile
		repo.updateProfileFn = func(_ context.Context, p *models.Profile) error {
			saved = p
			return nil
		}
		svc := NewUserService(repo)

		profile, err := svc.UpdateProfile(context.Background(), policy.Actor{UserID: 7, ProfileID: 4, Role: models.RoleReader}, UpdateProfileInput{
			DisplayName: "Yeni Ad",
			AvatarURL:   "https://cdn.kalem.dev/yeni.png",
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "Yeni Ad", profile.DisplayName)
		assert.Equal(t, "ahmet_dev", profile.Username, "username is fixed at signup")
	})

	t.Run("anonymous cannot update", func(t *testing.T) {
		svc := NewUserService(noopUserRepo())
		_, err := svc.UpdateProfile(context.Background(), policy.Actor{}, UpdateProfileInput{DisplayName: "X"})
		assert.Equal(t, models.CodeUnauthorized, models.ErrorCode(err))
	})
}
