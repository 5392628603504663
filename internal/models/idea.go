package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category classifies an idea by industry.
type Category string

const (
	CategoryTechnology    Category = "Technology"
	CategoryHealthcare    Category = "Healthcare"
	CategoryEducation     Category = "Education"
	CategoryFinance       Category = "Finance"
	CategoryECommerce     Category = "E-commerce"
	CategorySocial        Category = "Social"
	CategoryEntertainment Category = "Entertainment"
	CategoryOther         Category = "Other"
)

var categories = []Category{
	CategoryTechnology,
	CategoryHealthcare,
	CategoryEducation,
	CategoryFinance,
	CategoryECommerce,
	CategorySocial,
	CategoryEntertainment,
	CategoryOther,
}

// Categories returns every accepted category in display order.
func Categories() []Category { return slices.Clone(categories) }

// IsValid reports whether c is one of the accepted categories.
func (c Category) IsValid() bool { return slices.Contains(categories, c) }

// MarketSize is the estimated size of an idea's market.
type MarketSize string

const (
	MarketSizeSmall   MarketSize = "Small"
	MarketSizeMedium  MarketSize = "Medium"
	MarketSizeLarge   MarketSize = "Large"
	MarketSizeUnknown MarketSize = "Unknown"
)

var marketSizes = []MarketSize{MarketSizeSmall, MarketSizeMedium, MarketSizeLarge, MarketSizeUnknown}

// MarketSizes returns every accepted market size.
func MarketSizes() []MarketSize { return slices.Clone(marketSizes) }

// IsValid reports whether m is one of the accepted market sizes.
func (m MarketSize) IsValid() bool { return slices.Contains(marketSizes, m) }

// CompetitionLevel is the expected competition for an idea.
type CompetitionLevel string

const (
	CompetitionLow     CompetitionLevel = "Low"
	CompetitionMedium  CompetitionLevel = "Medium"
	CompetitionHigh    CompetitionLevel = "High"
	CompetitionUnknown CompetitionLevel = "Unknown"
)

var competitionLevels = []CompetitionLevel{CompetitionLow, CompetitionMedium, CompetitionHigh, CompetitionUnknown}

// CompetitionLevels returns every accepted competition level.
func CompetitionLevels() []CompetitionLevel { return slices.Clone(competitionLevels) }

// IsValid reports whether c is one of the accepted competition levels.
func (c CompetitionLevel) IsValid() bool { return slices.Contains(competitionLevels, c) }

// IdeaStatus is the lifecycle stage of an idea.
type IdeaStatus string

const (
	IdeaStatusIdea        IdeaStatus = "Idea"
	IdeaStatusResearch    IdeaStatus = "Research"
	IdeaStatusPlanning    IdeaStatus = "Planning"
	IdeaStatusDevelopment IdeaStatus = "Development"
	IdeaStatusTesting     IdeaStatus = "Testing"
	IdeaStatusLaunch      IdeaStatus = "Launch"
	IdeaStatusAbandoned   IdeaStatus = "Abandoned"
)

var ideaStatuses = []IdeaStatus{
	IdeaStatusIdea,
	IdeaStatusResearch,
	IdeaStatusPlanning,
	IdeaStatusDevelopment,
	IdeaStatusTesting,
	IdeaStatusLaunch,
	IdeaStatusAbandoned,
}

// IdeaStatuses returns every status in lifecycle order.
func IdeaStatuses() []IdeaStatus { return slices.Clone(ideaStatuses) }

// IsValid reports whether s is one of the known statuses.
func (s IdeaStatus) IsValid() bool { return slices.Contains(ideaStatuses, s) }

// Idea is a startup idea owned by exactly one user.
type Idea struct {
	ID               string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID           string           `gorm:"type:varchar(36);not null;index:idx_ideas_user_created,priority:1" json:"userId"`
	IdeaName         string           `gorm:"type:varchar(255);not null" json:"ideaName"`
	TargetAudience   string           `gorm:"type:text;not null" json:"targetAudience"`
	ProblemSolved    string           `gorm:"type:text;not null" json:"problemSolved"`
	Description      string           `gorm:"type:text;not null" json:"description"`
	Category         Category         `gorm:"type:varchar(32);not null" json:"category"`
	MarketSize       MarketSize       `gorm:"type:varchar(16);not null" json:"marketSize"`
	CompetitionLevel CompetitionLevel `gorm:"type:varchar(16);not null" json:"competitionLevel"`
	EstimatedBudget  string           `gorm:"type:varchar(255)" json:"estimatedBudget"`
	TimeToMarket     string           `gorm:"type:varchar(255)" json:"timeToMarket"`
	Notes            string           `gorm:"type:text" json:"notes"`
	Status           IdeaStatus       `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt        time.Time        `gorm:"index:idx_ideas_user_created,priority:2" json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (i *Idea) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
