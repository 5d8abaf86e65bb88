// Package policy decides which editorial actions a user may perform,
// given their role and the article's lifecycle status. Every check is
// made before any mutation, so a denied action never changes state.
package policy

import (
	"kalem/internal/models"
)

// Action is an operation a user can attempt on an article.
type Action string

const (
	ActionCreate          Action = "create"
	ActionSaveDraft       Action = "saveDraft"
	ActionSubmitForReview Action = "submitForReview"
	ActionPublish         Action = "publish"
	ActionReject          Action = "reject"
	ActionView            Action = "view"
	ActionLike            Action = "like"
)

// Actor is the authenticated subject of a request. A zero Actor
// (UserID == 0) is an unauthenticated visitor.
type Actor struct {
	UserID    uint
	ProfileID uint
	Role      models.Role
}

// Authenticated reports whether the actor is a signed-in user.
func (a Actor) Authenticated() bool {
	return a.UserID != 0
}

func (a Actor) isStaff() bool {
	return a.Role == models.RoleAuthor || a.Role == models.RoleAdmin
}

// CanCreate reports whether the actor may create articles at all.
// Only authors and admins write.
func CanCreate(a Actor) error {
	if !a.Authenticated() || !a.isStaff() {
		return models.NewUnauthorizedError("only authors can create articles")
	}
	return nil
}

// Authorize checks whether the actor may perform action on the article.
// Ownership is compared against the article's author profile; admins
// bypass ownership on every action they are allowed at all.
func Authorize(a Actor, action Action, article *models.Article) error {
	switch action {
	case ActionCreate:
		return CanCreate(a)

	case ActionSaveDraft, ActionSubmitForReview:
		if !a.Authenticated() || !a.isStaff() {
			return models.NewUnauthorizedError("only authors can edit articles")
		}
		if article.AuthorID != a.ProfileID && a.Role != models.RoleAdmin {
			return models.NewUnauthorizedError("you can only edit your own articles")
		}
		return nil

	case ActionPublish, ActionReject:
		if a.Role != models.RoleAdmin {
			return models.NewUnauthorizedError("only admins can decide on pending articles")
		}
		return nil

	case ActionView:
		if article.Status == models.StatusPublished {
			return nil
		}
		if a.Role == models.RoleAdmin || (a.Authenticated() && article.AuthorID == a.ProfileID) {
			return nil
		}
		return models.NewUnauthorizedError("article is not published")

	case ActionLike:
		if !a.Authenticated() {
			return models.NewUnauthorizedError("sign in to like articles")
		}
		if article.Status != models.StatusPublished {
			return models.NewUnauthorizedError("only published articles can be liked")
		}
		return nil
	}

	return models.NewUnauthorizedError("unknown action")
}
