package repository

import (
	"context"

	"github.com/yukikurage/idea-tracker-api/internal/database"
	"github.com/yukikurage/idea-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormIdeaRepository is a GORM implementation of IdeaRepository
type GormIdeaRepository struct {
	db *gorm.DB
}

// NewIdeaRepository creates a new IdeaRepository
func NewIdeaRepository(db *gorm.DB) IdeaRepository {
	return &GormIdeaRepository{db: db}
}

// Create creates a new idea
func (r *GormIdeaRepository) Create(ctx context.Context, idea *models.Idea) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(idea).Error
}

// FindByID finds an idea by ID within the owner's ideas
func (r *GormIdeaRepository) FindByID(ctx context.Context, ownerID, id string) (*models.Idea, error) {
	var idea models.Idea
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(ownerID)).
		Where("ideas.id = ?", id).
		First(&idea).Error
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

// List retrieves the owner's ideas with optional filtering
func (r *GormIdeaRepository) List(ctx context.Context, ownerID string, filter IdeaFilter) ([]models.Idea, error) {
	ideas := make([]models.Idea, 0)

	err := r.db.WithContext(ctx).
		Scopes(filterScopes(ownerID, filter)...).
		Scopes(database.NewestFirst, database.Paginate(filter.Limit, filter.Offset)).
		Find(&ideas).Error
	if err != nil {
		return nil, err
	}

	return ideas, nil
}

// Count counts the owner's ideas matching filter
func (r *GormIdeaRepository) Count(ctx context.Context, ownerID string, filter IdeaFilter) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Idea{}).
		Scopes(filterScopes(ownerID, filter)...).
		Count(&total).Error
	return total, err
}

func filterScopes(ownerID string, filter IdeaFilter) []func(db *gorm.DB) *gorm.DB {
	return []func(db *gorm.DB) *gorm.DB{
		database.OwnedBy(ownerID),
		database.WithStatus(filter.Status),
		database.WithCategory(filter.Category),
		database.Search(filter.Search),
	}
}

// Update overwrites the mutable fields of an idea. Owner, ID and creation time are never written.
func (r *GormIdeaRepository) Update(ctx context.Context, idea *models.Idea) error {
	return r.db.WithContext(ctx).
		Model(idea).
		Scopes(database.OwnedBy(idea.UserID)).
		Select("*").
		Omit("id", "user_id", "created_at", clause.Associations).
		Updates(idea).Error
}

// Delete permanently deletes an idea
func (r *GormIdeaRepository) Delete(ctx context.Context, ownerID, id string) error {
	result := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(ownerID)).
		Where("ideas.id = ?", id).
		Delete(&models.Idea{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByStatus groups the owner's ideas by status
func (r *GormIdeaRepository) CountByStatus(ctx context.Context, ownerID string) (map[models.IdeaStatus]int64, error) {
	var rows []struct {
		Status models.IdeaStatus
		Count  int64
	}

	err := r.db.WithContext(ctx).
		Model(&models.Idea{}).
		Scopes(database.OwnedBy(ownerID)).
		Select("ideas.status AS status, COUNT(*) AS count").
		Group("ideas.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.IdeaStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
