package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/idea-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/idea-tracker-api/internal/errors"
	"github.com/yukikurage/idea-tracker-api/internal/middleware"
	"github.com/yukikurage/idea-tracker-api/internal/models"
	"github.com/yukikurage/idea-tracker-api/internal/services"
	"github.com/yukikurage/idea-tracker-api/internal/utils"
)

// IdeaHandler serves the /api/ideas routes. Every route requires RequireAuth.
type IdeaHandler struct {
	ideaService *services.IdeaService
}

// NewIdeaHandler creates a new IdeaHandler.
func NewIdeaHandler(ideaService *services.IdeaService) *IdeaHandler {
	return &IdeaHandler{
		ideaService: ideaService,
	}
}

type createIdeaRequest struct {
	IdeaName         string                   `json:"ideaName"`
	TargetAudience   string                   `json:"targetAudience"`
	ProblemSolved    string                   `json:"problemSolved"`
	Description      string                   `json:"description"`
	Category         models.Category          `json:"category"`
	MarketSize       *models.MarketSize       `json:"marketSize"`
	CompetitionLevel *models.CompetitionLevel `json:"competitionLevel"`
	EstimatedBudget  string                   `json:"estimatedBudget"`
	TimeToMarket     string                   `json:"timeToMarket"`
	Notes            string                   `json:"notes"`
	Status           *models.IdeaStatus       `json:"status"`
}

// Absent fields stay nil and are left untouched.
type updateIdeaRequest struct {
	IdeaName         *string                  `json:"ideaName"`
	TargetAudience   *string                  `json:"targetAudience"`
	ProblemSolved    *string                  `json:"problemSolved"`
	Description      *string                  `json:"description"`
	Category         *models.Category         `json:"category"`
	MarketSize       *models.MarketSize       `json:"marketSize"`
	CompetitionLevel *models.CompetitionLevel `json:"competitionLevel"`
	EstimatedBudget  *string                  `json:"estimatedBudget"`
	TimeToMarket     *string                  `json:"timeToMarket"`
	Notes            *string                  `json:"notes"`
	Status           *models.IdeaStatus       `json:"status"`
}

// ListIdeas returns the caller's ideas, newest first.
// Optional query parameters: status, category, q (free-text search), page and limit.
func (h *IdeaHandler) ListIdeas(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	params, err := utils.GetPaginationParams(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	ideas, total, err := h.ideaService.ListIdeas(c.Request.Context(), userID, services.ListIdeasInput{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("q"),
		Page:     params.Page,
		Limit:    params.Limit,
	})
	if err != nil {
		respondIdeaError(c, err)
		return
	}

	c.Header(utils.TotalCountHeader, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, dto.ToIdeaDTOs(ideas))
}

// GetStats returns per-status counters for the dashboard.
func (h *IdeaHandler) GetStats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := h.ideaService.Stats(c.Request.Context(), userID)
	if err != nil {
		respondIdeaError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIdeaStatsDTO(*stats))
}

// GetIdea returns a single idea.
func (h *IdeaHandler) GetIdea(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	idea, err := h.ideaService.GetIdea(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondIdeaError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIdeaDTO(*idea))
}

// CreateIdea stores a new idea owned by the caller.
func (h *IdeaHandler) CreateIdea(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req createIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	idea, err := h.ideaService.CreateIdea(c.Request.Context(), userID, services.CreateIdeaInput{
		IdeaName:         req.IdeaName,
		TargetAudience:   req.TargetAudience,
		ProblemSolved:    req.ProblemSolved,
		Description:      req.Description,
		Category:         req.Category,
		MarketSize:       req.MarketSize,
		CompetitionLevel: req.CompetitionLevel,
		EstimatedBudget:  req.EstimatedBudget,
		TimeToMarket:     req.TimeToMarket,
		Notes:            req.Notes,
		Status:           req.Status,
	})
	if err != nil {
		respondIdeaError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToIdeaDTO(*idea))
}

// UpdateIdea applies the fields present in the body.
func (h *IdeaHandler) UpdateIdea(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req updateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	idea, err := h.ideaService.UpdateIdea(c.Request.Context(), userID, c.Param("id"), services.UpdateIdeaInput{
		IdeaName:         req.IdeaName,
		TargetAudience:   req.TargetAudience,
		ProblemSolved:    req.ProblemSolved,
		Description:      req.Description,
		Category:         req.Category,
		MarketSize:       req.MarketSize,
		CompetitionLevel: req.CompetitionLevel,
		EstimatedBudget:  req.EstimatedBudget,
		TimeToMarket:     req.TimeToMarket,
		Notes:            req.Notes,
		Status:           req.Status,
	})
	if err != nil {
		respondIdeaError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIdeaDTO(*idea))
}

// DeleteIdea permanently removes an idea.
func (h *IdeaHandler) DeleteIdea(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.ideaService.DeleteIdea(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondIdeaError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Idea deleted successfully"})
}

func requireUserID(c *gin.Context) (string, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
	}
	return userID, exists
}

func respondIdeaError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apierrors.BadRequestWithDetails(c, "Validation failed", validationErr.Fields)
	case errors.Is(err, services.ErrIdeaNotFound):
		apierrors.NotFound(c, "Idea not found")
	case errors.Is(err, services.ErrUnauthorized):
		apierrors.Unauthorized(c, "")
	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}
