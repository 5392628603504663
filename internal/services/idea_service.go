package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/idea-tracker-api/internal/constants"
	"github.com/yukikurage/idea-tracker-api/internal/models"
	"github.com/yukikurage/idea-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// Column limits for the varchar fields.
const (
	maxIdeaNameLength  = 255
	maxShortTextLength = 255
)

// IdeaService handles idea business logic. Every operation is scoped to ownerID.
type IdeaService struct {
	ideaRepo repository.IdeaRepository
	userRepo repository.UserRepository
}

// NewIdeaService creates a new IdeaService
func NewIdeaService(ideaRepo repository.IdeaRepository, userRepo repository.UserRepository) *IdeaService {
	return &IdeaService{
		ideaRepo: ideaRepo,
		userRepo: userRepo,
	}
}

// ListIdeasInput holds raw listing filters as received from the client.
// Limit 0 disables pagination; Page starts at 1.
type ListIdeasInput struct {
	Status   string
	Category string
	Search   string
	Page     int
	Limit    int
}

// CreateIdeaInput represents input for creating an idea
type CreateIdeaInput struct {
	IdeaName         string
	TargetAudience   string
	ProblemSolved    string
	Description      string
	Category         models.Category
	MarketSize       *models.MarketSize
	CompetitionLevel *models.CompetitionLevel
	EstimatedBudget  string
	TimeToMarket     string
	Notes            string
	Status           *models.IdeaStatus
}

// UpdateIdeaInput represents a partial update. Nil fields are left unchanged.
type UpdateIdeaInput struct {
	IdeaName         *string
	TargetAudience   *string
	ProblemSolved    *string
	Description      *string
	Category         *models.Category
	MarketSize       *models.MarketSize
	CompetitionLevel *models.CompetitionLevel
	EstimatedBudget  *string
	TimeToMarket     *string
	Notes            *string
	Status           *models.IdeaStatus
}

// IdeaStats summarises an owner's ideas by lifecycle stage
type IdeaStats struct {
	Total      int64
	EarlyStage int64
	InProgress int64
	Launched   int64
	Abandoned  int64
	ByStatus   map[models.IdeaStatus]int64
}

// ListIdeas returns the owner's ideas, newest first, and the number of ideas matching the filters
func (s *IdeaService) ListIdeas(ctx context.Context, ownerID string, input ListIdeasInput) ([]models.Idea, int64, error) {
	var v ValidationError
	filter := repository.IdeaFilter{Search: strings.TrimSpace(input.Search)}

	if input.Status != "" {
		status := models.IdeaStatus(input.Status)
		if !status.IsValid() {
			v.add("status", enumMessage(models.IdeaStatuses()))
		}
		filter.Status = &status
	}
	if input.Category != "" {
		category := models.Category(input.Category)
		if !category.IsValid() {
			v.add("category", enumMessage(models.Categories()))
		}
		filter.Category = &category
	}
	if utf8.RuneCountInString(filter.Search) > constants.MaxSearchLength {
		v.add("q", fmt.Sprintf("must be at most %d characters", constants.MaxSearchLength))
	}
	switch {
	case input.Limit < 0 || input.Limit > constants.MaxPageSize:
		v.add("limit", fmt.Sprintf("must be between %d and %d", constants.MinPageSize, constants.MaxPageSize))
	case input.Limit > 0:
		page := max(input.Page, constants.MinPageSize)
		filter.Limit = input.Limit
		filter.Offset = (page - 1) * input.Limit
	}
	if err := v.err(); err != nil {
		return nil, 0, err
	}

	ideas, err := s.ideaRepo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ideas: %w", err)
	}

	if filter.Limit == 0 {
		return ideas, int64(len(ideas)), nil
	}

	total, err := s.ideaRepo.Count(ctx, ownerID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count ideas: %w", err)
	}

	return ideas, total, nil
}

// GetIdea returns one of the owner's ideas
func (s *IdeaService) GetIdea(ctx context.Context, ownerID, ideaID string) (*models.Idea, error) {
	idea, err := s.ideaRepo.FindByID(ctx, ownerID, ideaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdeaNotFound
		}
		return nil, fmt.Errorf("failed to find idea: %w", err)
	}

	return idea, nil
}

// CreateIdea validates input, applies defaults and persists a new idea owned by ownerID
func (s *IdeaService) CreateIdea(ctx context.Context, ownerID string, input CreateIdeaInput) (*models.Idea, error) {
	idea := &models.Idea{
		UserID:           ownerID,
		IdeaName:         strings.TrimSpace(input.IdeaName),
		TargetAudience:   strings.TrimSpace(input.TargetAudience),
		ProblemSolved:    strings.TrimSpace(input.ProblemSolved),
		Description:      strings.TrimSpace(input.Description),
		Category:         input.Category,
		MarketSize:       models.MarketSizeUnknown,
		CompetitionLevel: models.CompetitionUnknown,
		EstimatedBudget:  strings.TrimSpace(input.EstimatedBudget),
		TimeToMarket:     strings.TrimSpace(input.TimeToMarket),
		Notes:            strings.TrimSpace(input.Notes),
		Status:           models.IdeaStatusIdea,
	}

	// Defaults cover absent fields only; an explicit empty value fails validation.
	if input.MarketSize != nil {
		idea.MarketSize = *input.MarketSize
	}
	if input.CompetitionLevel != nil {
		idea.CompetitionLevel = *input.CompetitionLevel
	}
	if input.Status != nil {
		idea.Status = *input.Status
	}

	if err := validateIdea(idea); err != nil {
		return nil, err
	}

	if err := s.ensureOwnerExists(ctx, ownerID); err != nil {
		return nil, err
	}

	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("failed to create idea: %w", err)
	}

	return idea, nil
}

// UpdateIdea applies a partial update to one of the owner's ideas
func (s *IdeaService) UpdateIdea(ctx context.Context, ownerID, ideaID string, input UpdateIdeaInput) (*models.Idea, error) {
	// Validate the patch on its own first so a rejected update never touches the store.
	patch := &models.Idea{}
	applyUpdate(patch, input)
	if err := validatePatch(patch, input); err != nil {
		return nil, err
	}

	idea, err := s.GetIdea(ctx, ownerID, ideaID)
	if err != nil {
		return nil, err
	}

	applyUpdate(idea, input)

	if err := s.ideaRepo.Update(ctx, idea); err != nil {
		return nil, fmt.Errorf("failed to update idea: %w", err)
	}

	return s.GetIdea(ctx, ownerID, ideaID)
}

// DeleteIdea permanently removes one of the owner's ideas
func (s *IdeaService) DeleteIdea(ctx context.Context, ownerID, ideaID string) error {
	if err := s.ideaRepo.Delete(ctx, ownerID, ideaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIdeaNotFound
		}
		return fmt.Errorf("failed to delete idea: %w", err)
	}

	return nil
}

// Stats counts the owner's ideas per status and per dashboard group
func (s *IdeaService) Stats(ctx context.Context, ownerID string) (*IdeaStats, error) {
	counts, err := s.ideaRepo.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count ideas: %w", err)
	}

	stats := &IdeaStats{ByStatus: make(map[models.IdeaStatus]int64, len(models.IdeaStatuses()))}
	for _, status := range models.IdeaStatuses() {
		n := counts[status]
		stats.ByStatus[status] = n
		stats.Total += n

		switch status {
		case models.IdeaStatusIdea, models.IdeaStatusResearch, models.IdeaStatusPlanning:
			stats.EarlyStage += n
		case models.IdeaStatusDevelopment, models.IdeaStatusTesting:
			stats.InProgress += n
		case models.IdeaStatusLaunch:
			stats.Launched += n
		case models.IdeaStatusAbandoned:
			stats.Abandoned += n
		}
	}

	return stats, nil
}

// ensureOwnerExists rejects tokens that outlived their user
func (s *IdeaService) ensureOwnerExists(ctx context.Context, ownerID string) error {
	if _, err := s.userRepo.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnauthorized
		}
		return fmt.Errorf("failed to verify owner: %w", err)
	}
	return nil
}

func applyUpdate(idea *models.Idea, input UpdateIdeaInput) {
	if input.IdeaName != nil {
		idea.IdeaName = strings.TrimSpace(*input.IdeaName)
	}
	if input.TargetAudience != nil {
		idea.TargetAudience = strings.TrimSpace(*input.TargetAudience)
	}
	if input.ProblemSolved != nil {
		idea.ProblemSolved = strings.TrimSpace(*input.ProblemSolved)
	}
	if input.Description != nil {
		idea.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		idea.Category = *input.Category
	}
	if input.MarketSize != nil {
		idea.MarketSize = *input.MarketSize
	}
	if input.CompetitionLevel != nil {
		idea.CompetitionLevel = *input.CompetitionLevel
	}
	if input.EstimatedBudget != nil {
		idea.EstimatedBudget = strings.TrimSpace(*input.EstimatedBudget)
	}
	if input.TimeToMarket != nil {
		idea.TimeToMarket = strings.TrimSpace(*input.TimeToMarket)
	}
	if input.Notes != nil {
		idea.Notes = strings.TrimSpace(*input.Notes)
	}
	if input.Status != nil {
		idea.Status = *input.Status
	}
}

// validateIdea checks a complete idea
func validateIdea(idea *models.Idea) error {
	var v ValidationError
	checkRequired(&v, "ideaName", idea.IdeaName)
	checkRequired(&v, "targetAudience", idea.TargetAudience)
	checkRequired(&v, "problemSolved", idea.ProblemSolved)
	checkRequired(&v, "description", idea.Description)
	checkEnums(&v, idea)
	checkLengths(&v, idea)
	return v.err()
}

// validatePatch checks only the fields present in input
func validatePatch(patch *models.Idea, input UpdateIdeaInput) error {
	var v ValidationError
	if input.IdeaName != nil {
		checkRequired(&v, "ideaName", patch.IdeaName)
	}
	if input.TargetAudience != nil {
		checkRequired(&v, "targetAudience", patch.TargetAudience)
	}
	if input.ProblemSolved != nil {
		checkRequired(&v, "problemSolved", patch.ProblemSolved)
	}
	if input.Description != nil {
		checkRequired(&v, "description", patch.Description)
	}
	if input.Category != nil && !patch.Category.IsValid() {
		v.add("category", enumMessage(models.Categories()))
	}
	if input.MarketSize != nil && !patch.MarketSize.IsValid() {
		v.add("marketSize", enumMessage(models.MarketSizes()))
	}
	if input.CompetitionLevel != nil && !patch.CompetitionLevel.IsValid() {
		v.add("competitionLevel", enumMessage(models.CompetitionLevels()))
	}
	if input.Status != nil && !patch.Status.IsValid() {
		v.add("status", enumMessage(models.IdeaStatuses()))
	}
	checkLengths(&v, patch)
	return v.err()
}

func checkRequired(v *ValidationError, field, value string) {
	if value == "" {
		v.add(field, field+" is required")
	}
}

func checkEnums(v *ValidationError, idea *models.Idea) {
	if idea.Category == "" {
		v.add("category", "category is required")
	} else if !idea.Category.IsValid() {
		v.add("category", enumMessage(models.Categories()))
	}
	if !idea.MarketSize.IsValid() {
		v.add("marketSize", enumMessage(models.MarketSizes()))
	}
	if !idea.CompetitionLevel.IsValid() {
		v.add("competitionLevel", enumMessage(models.CompetitionLevels()))
	}
	if !idea.Status.IsValid() {
		v.add("status", enumMessage(models.IdeaStatuses()))
	}
}

func checkLengths(v *ValidationError, idea *models.Idea) {
	if utf8.RuneCountInString(idea.IdeaName) > maxIdeaNameLength {
		v.add("ideaName", fmt.Sprintf("must be at most %d characters", maxIdeaNameLength))
	}
	if utf8.RuneCountInString(idea.EstimatedBudget) > maxShortTextLength {
		v.add("estimatedBudget", fmt.Sprintf("must be at most %d characters", maxShortTextLength))
	}
	if utf8.RuneCountInString(idea.TimeToMarket) > maxShortTextLength {
		v.add("timeToMarket", fmt.Sprintf("must be at most %d characters", maxShortTextLength))
	}
}

func enumMessage[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, value := range values {
		names[i] = string(value)
	}
	return "must be one of " + strings.Join(names, ", ")
}
