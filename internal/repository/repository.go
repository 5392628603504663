package repository

import (
	"context"

	"github.com/yukikurage/idea-tracker-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by exact email
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// IdeaRepository defines the interface for idea data access.
// Every method takes the owner explicitly; ideas of other owners behave as absent.
type IdeaRepository interface {
	// Create persists a new idea
	Create(ctx context.Context, idea *models.Idea) error

	// FindByID finds an idea owned by ownerID
	FindByID(ctx context.Context, ownerID, id string) (*models.Idea, error)

	// List returns the owner's ideas, newest first
	List(ctx context.Context, ownerID string, filter IdeaFilter) ([]models.Idea, error)

	// Count counts the owner's ideas matching filter, ignoring Limit and Offset
	Count(ctx context.Context, ownerID string, filter IdeaFilter) (int64, error)

	// Update writes every mutable field of an idea owned by idea.UserID
	Update(ctx context.Context, idea *models.Idea) error

	// Delete permanently removes an idea owned by ownerID
	Delete(ctx context.Context, ownerID, id string) error

	// CountByStatus counts the owner's ideas per status
	CountByStatus(ctx context.Context, ownerID string) (map[models.IdeaStatus]int64, error)
}

// IdeaFilter holds optional listing filters. The zero value matches everything.
// A zero Limit returns all matching ideas.
type IdeaFilter struct {
	Status   *models.IdeaStatus
	Category *models.Category
	Search   string
	Limit    int
	Offset   int
}
