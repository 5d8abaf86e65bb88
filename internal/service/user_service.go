package service

import (
	"context"
	"strings"

	"kalem/internal/models"
	"kalem/internal/policy"
	"kalem/internal/repository"
)

// UserService resolves the session actor for a request and manages
// profile updates.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ActorFor builds the policy actor for the authenticated user ID. A zero
// userID yields the anonymous actor. The role defaults to reader when no
// role row exists, mirroring the signup default.
func (s *UserService) ActorFor(ctx context.Context, userID uint) (policy.Actor, error) {
	if userID == 0 {
		return policy.Actor{}, nil
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return policy.Actor{}, models.NewUnauthorizedError("unknown user")
		}
		return policy.Actor{}, models.NewStoreError(err)
	}

	actor := policy.Actor{UserID: user.ID, Role: models.RoleReader}
	if user.Profile != nil {
		actor.ProfileID = user.Profile.ID
	}
	if user.Role != nil && user.Role.Role.Valid() {
		actor.Role = user.Role.Role
	}
	return actor, nil
}

// UpdateProfileInput carries the owner-editable profile fields.
type UpdateProfileInput struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// UpdateProfile updates the actor's own profile. Usernames are fixed at
// signup and cannot be changed here.
func (s *UserService) UpdateProfile(ctx context.Context, actor policy.Actor, in UpdateProfileInput) (*models.Profile, error) {
	if !actor.Authenticated() {
		return nil, models.NewUnauthorizedError("sign in to update your profile")
	}
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	if user.Profile == nil {
		return nil, models.NewNotFoundError("profile", actor.UserID)
	}

	profile := user.Profile
	if name := strings.TrimSpace(in.DisplayName); name != "" {
		profile.DisplayName = name
	}
	if avatar := strings.TrimSpace(in.AvatarURL); avatar != "" {
		profile.AvatarURL = avatar
	}

	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, models.NewStoreError(err)
	}
	return profile, nil
}
