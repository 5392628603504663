package database

import (
	"strings"

	"github.com/yukikurage/idea-tracker-api/internal/models"
	"gorm.io/gorm"
)

// OwnedBy restricts an ideas query to a single owner.
func OwnedBy(ownerID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("ideas.user_id = ?", ownerID)
	}
}

// WithStatus filters by status when one is given.
func WithStatus(status *models.IdeaStatus) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == nil {
			return db
		}
		return db.Where("ideas.status = ?", *status)
	}
}

// WithCategory filters by category when one is given.
func WithCategory(category *models.Category) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if category == nil {
			return db
		}
		return db.Where("ideas.category = ?", *category)
	}
}

// Search matches q case-insensitively against name, audience and category.
// LIKE wildcards in q are matched literally.
func Search(q string) func(db *gorm.DB) *gorm.DB {
	term := strings.ToLower(strings.TrimSpace(q))
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		pattern := "%" + escapeLike(term) + "%"
		return db.Where(
			"(LOWER(ideas.idea_name) LIKE ? ESCAPE '!' OR LOWER(ideas.target_audience) LIKE ? ESCAPE '!' OR LOWER(ideas.category) LIKE ? ESCAPE '!')",
			pattern, pattern, pattern,
		)
	}
}

// Paginate applies LIMIT/OFFSET. A non-positive limit leaves the query unbounded.
func Paginate(limit, offset int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Offset(offset).Limit(limit)
	}
}

// NewestFirst orders by creation time descending.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("ideas.created_at DESC").Order("ideas.id")
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
