package policy

import (
	"testing"

	"kalem/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actor(id uint, role models.Role) Actor {
	return Actor{UserID: id, ProfileID: id, Role: role}
}

func articleBy(profileID uint, status models.ArticleStatus) *models.Article {
	return &models.Article{AuthorID: profileID, Status: status}
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, models.CodeUnauthorized, models.ErrorCode(err))
}

func TestCanCreate(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		allowed bool
	}{
		{"author", actor(1, models.RoleAuthor), true},
		{"admin", actor(2, models.RoleAdmin), true},
		{"reader", actor(3, models.RoleReader), false},
		{"anonymous", Actor{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanCreate(tt.actor)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assertUnauthorized(t, err)
			}
		})
	}
}

func TestAuthorize_SubmitForReview(t *testing.T) {
	draft := articleBy(1, models.StatusDraft)

	// A reader can never submit, ownership is irrelevant.
	assertUnauthorized(t, Authorize(actor(1, models.RoleReader), ActionSubmitForReview, draft))

	// The owning author can submit, a different author cannot.
	assert.NoError(t, Authorize(actor(1, models.RoleAuthor), ActionSubmitForReview, draft))
	assertUnauthorized(t, Authorize(actor(2, models.RoleAuthor), ActionSubmitForReview, draft))

	// Admins bypass ownership.
	assert.NoError(t, Authorize(actor(9, models.RoleAdmin), ActionSubmitForReview, draft))
}

func TestAuthorize_PublishAndReject(t *testing.T) {
	pending := articleBy(1, models.StatusPending)

	for _, action := range []Action{ActionPublish, ActionReject} {
		assert.NoError(t, Authorize(actor(9, models.RoleAdmin), action, pending))
		assertUnauthorized(t, Authorize(actor(1, models.RoleAuthor), action, pending))
		assertUnauthorized(t, Authorize(actor(2, models.RoleReader), action, pending))
		assertUnauthorized(t, Authorize(Actor{}, action, pending))
	}
}

func TestAuthorize_View(t *testing.T) {
	published := articleBy(1, models.StatusPublished)
	draft := articleBy(1, models.StatusDraft)

	// Published articles are visible to everyone, signed in or not.
	assert.NoError(t, Authorize(Actor{}, ActionView, published))
	assert.NoError(t, Authorize(actor(5, models.RoleReader), ActionView, published))

	// Drafts are visible only to the owner or an admin.
	assert.NoError(t, Authorize(actor(1, models.RoleAuthor), ActionView, draft))
	assert.NoError(t, Authorize(actor(9, models.RoleAdmin), ActionView, draft))
	assertUnauthorized(t, Authorize(actor(5, models.RoleReader), ActionView, draft))
	assertUnauthorized(t, Authorize(Actor{}, ActionView, draft))
}

func TestAuthorize_Like(t *testing.T) {
	published := articleBy(1, models.StatusPublished)
	pending := articleBy(1, models.StatusPending)

	// Any authenticated user may like published articles, readers included.
	assert.NoError(t, Authorize(actor(5, models.RoleReader), ActionLike, published))
	assert.NoError(t, Authorize(actor(1, models.RoleAuthor), ActionLike, published))

	assertUnauthorized(t, Authorize(Actor{}, ActionLike, published))
	assertUnauthorized(t, Authorize(actor(5, models.RoleReader), ActionLike, pending))
}
