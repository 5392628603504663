package dto

import (
	"time"

	"github.com/yukikurage/idea-tracker-api/internal/models"
	"github.com/yukikurage/idea-tracker-api/internal/services"
)

// IdeaDTO represents an idea in API responses.
// "_id" and "user" keep the field names the web client already reads.
type IdeaDTO struct {
	ID               string                  `json:"_id"`
	User             string                  `json:"user"`
	IdeaName         string                  `json:"ideaName"`
	TargetAudience   string                  `json:"targetAudience"`
	ProblemSolved    string                  `json:"problemSolved"`
	Description      string                  `json:"description"`
	Category         models.Category         `json:"category"`
	MarketSize       models.MarketSize       `json:"marketSize"`
	CompetitionLevel models.CompetitionLevel `json:"competitionLevel"`
	EstimatedBudget  string                  `json:"estimatedBudget"`
	TimeToMarket     string                  `json:"timeToMarket"`
	Notes            string                  `json:"notes"`
	Status           models.IdeaStatus       `json:"status"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
}

// IdeaStatsDTO represents dashboard counters
type IdeaStatsDTO struct {
	Total      int64                       `json:"total"`
	EarlyStage int64                       `json:"earlyStage"`
	InProgress int64                       `json:"inProgress"`
	Launched   int64                       `json:"launched"`
	Abandoned  int64                       `json:"abandoned"`
	ByStatus   map[models.IdeaStatus]int64 `json:"byStatus"`
}

// MessageResponse is a plain confirmation body
type MessageResponse struct {
	Message string `json:"message"`
}

// ToIdeaDTO converts an Idea model to IdeaDTO
func ToIdeaDTO(idea models.Idea) IdeaDTO {
	return IdeaDTO{
		ID:               idea.ID,
		User:             idea.UserID,
		IdeaName:         idea.IdeaName,
		TargetAudience:   idea.TargetAudience,
		ProblemSolved:    idea.ProblemSolved,
		Description:      idea.Description,
		Category:         idea.Category,
		MarketSize:       idea.MarketSize,
		CompetitionLevel: idea.CompetitionLevel,
		EstimatedBudget:  idea.EstimatedBudget,
		TimeToMarket:     idea.TimeToMarket,
		Notes:            idea.Notes,
		Status:           idea.Status,
		CreatedAt:        idea.CreatedAt,
		UpdatedAt:        idea.UpdatedAt,
	}
}

// ToIdeaDTOs converts a slice of ideas, never returning nil
func ToIdeaDTOs(ideas []models.Idea) []IdeaDTO {
	items := make([]IdeaDTO, len(ideas))
	for i, idea := range ideas {
		items[i] = ToIdeaDTO(idea)
	}
	return items
}

// ToIdeaStatsDTO converts service stats
func ToIdeaStatsDTO(stats services.IdeaStats) IdeaStatsDTO {
	return IdeaStatsDTO{
		Total:      stats.Total,
		EarlyStage: stats.EarlyStage,
		InProgress: stats.InProgress,
		Launched:   stats.Launched,
		Abandoned:  stats.Abandoned,
		ByStatus:   stats.ByStatus,
	}
}
