package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/idea-tracker-api/internal/models"
)

// IdeaServiceTestSuite defines the test suite for IdeaService
type IdeaServiceTestSuite struct {
	suite.Suite
	env testEnv
	ctx context.Context
	ann *models.User
	bob *models.User
}

// SetupTest runs before each test
func (suite *IdeaServiceTestSuite) SetupTest() {
	suite.env = setupTestEnv(suite.T())
	suite.ctx = context.Background()
	suite.ann = suite.createTestUser("Ann", "ann@x.com")
	suite.bob = suite.createTestUser("Bob", "bob@x.com")
}

func (suite *IdeaServiceTestSuite) createTestUser(name, email string) *models.User {
	user := &models.User{Name: name, Email: email, PasswordHash: "hashedpassword"}
	suite.Require().NoError(suite.env.userRepo.Create(suite.ctx, user))
	return user
}

func validInput() CreateIdeaInput {
	return CreateIdeaInput{
		IdeaName:       "X",
		TargetAudience: "Y",
		ProblemSolved:  "Z",
		Description:    "W",
		Category:       models.CategoryTechnology,
	}
}

func ptr[T any](v T) *T { return &v }

func (suite *IdeaServiceTestSuite) countIdeas() int64 {
	var n int64
	suite.Require().NoError(suite.env.db.Model(&models.Idea{}).Count(&n).Error)
	return n
}

func (suite *IdeaServiceTestSuite) TestCreateIdea_AppliesDefaults() {
	idea, err := suite.env.ideaService.CreateIdea(suite.ctx, suite.ann.ID, validInput())
	suite.Require().NoError(err)

	suite.NotEmpty(idea.ID)
	suite.Equal(suite.ann.ID, idea.UserID)
	suite.Equal(models.IdeaStatusIdea, idea.Status)
	suite.Equal(models.MarketSizeUnknown, idea.MarketSize)
	suite.Equal(models.CompetitionUnknown, idea.CompetitionLevel)
	suite.False(idea.CreatedAt.IsZero())
	suite.False(idea.UpdatedAt.IsZero())
}

func (suite *IdeaServiceTestSuite) TestCreateIdea_TrimsFields() {
	input := validInput()
	input.IdeaName = "  Padded  "
	input.Notes = " note "

	idea, err := suite.env.ideaService.CreateIdea(suite.ctx, suite.ann.ID, input)
	suite.Require().NoError(err)
	suite.Equal("Padded", idea.IdeaName)
	suite.Equal("note", idea.Notes)
}

func (suite *IdeaServiceTestSuite) TestCreateIdea_InvalidCategoryPersistsNothing() {
	input := validInput()
	input.Category = "Space"

	_, err := suite.env.ideaService.CreateIdea(suite.ctx, suite.ann.ID, input)

	var verr *ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Contains(verr.Fields, "category")
	suite.Equal(int64(0), suite.countIdeas())
}

func (suite *IdeaServiceTestSuite) TestCreateIdea_ValidationErrors() {
	tests := []struct {
		name   string
		mutate func(*CreateIdeaInput)
		field  string
	}{
		{"blank name", func(in *CreateIdeaInput) { in.IdeaName = "   " }, "ideaName"},
		{"missing audience", func(in *CreateIdeaInput) { in.TargetAudience = "" }, "targetAudience"},
		{"missing problem", func(in *CreateIdeaInput) { in.ProblemSolved = "" }, "problemSolved"},
		{"missing description", func(in *CreateIdeaInput) { in.Description = "" }, "description"},
		{"missing category", func(in *CreateIdeaInput) { in.Category = "" }, "category"},
		{"lowercase category", func(in *CreateIdeaInput) { in.Category = "technology" }, "category"},
		{"bad market size", func(in *CreateIdeaInput) { in.MarketSize = ptr[models.MarketSize]("Huge") }, "marketSize"},
		{"bad competition", func(in *CreateIdeaInput) { in.CompetitionLevel = ptr[models.CompetitionLevel]("None") }, "competitionLevel"},
		{"bad status", func(in *CreateIdeaInput) { in.Status = ptr[models.IdeaStatus]("Done") }, "status"},
		{"explicit empty market size", func(in *CreateIdeaInput) { in.MarketSize = ptr[models.MarketSize]("") }, "marketSize"},
		{"explicit empty competition", func(in *CreateIdeaInput) { in.CompetitionLevel = ptr[models.CompetitionLevel]("") }, "competitionLevel"},
		{"explicit empty status", func(in *CreateIdeaInput) { in.Status = ptr[models.IdeaStatus]("") }, "status"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			input := validInput()
			tt.mutate(&input)

			_, err := suite.env.ideaService.CreateIdea(suite.ctx, suite.ann.ID, input)

			var verr *ValidationError
			suite.Require().ErrorAs(err, &verr)
			suite.Contains(verr.Fields, tt.field)
		})
	}
	suite.Equal(int64(0), suite.countIdeas())
}

func (suite *IdeaServiceTestSuite) TestCreateIdea_UnknownOwner() {
	_, err := suite.env.ideaService.CreateIdea(suite.ctx, "deleted-user", validInput())
	suite.ErrorIs(err, ErrUnauthorized)
	suite.Equal(int64(0), suite.countIdeas())
}

func (suite *IdeaServiceTestSuite) TestCreateThenGet_RoundTrip() {
	input := CreateIdeaInput{
		IdeaName:         "Meal kits",
		TargetAudience:   "Students",
		ProblemSolved:    "Cooking takes time",
		Description:      "Weekly boxes",
		Category:         models.CategoryECommerce,
		MarketSize:       ptr(models.MarketSizeLarge),
		CompetitionLevel: ptr(models.CompetitionHigh),
		EstimatedBudget:  "$10k",
		TimeToMarket:     "6 months",
		Notes:            "Talk to campus",
		Status:           ptr(models.IdeaStatusResearch),
	}

	created, err := suite.env.ideaService.CreateIdea(suite.ctx, suite.ann.ID, input)
	suite.Require().NoError(err)

	got, err := suite.env.ideaService.GetIdea(suite.ctx, suite.ann.ID, created.ID)
	suite.Require().NoError(err)

	suite.Equal(created.ID, got.ID)
	suite.Equal(input.IdeaName, got.IdeaName)
	suite.Equal(input.TargetAudience, got.TargetAudience)
	suite.Equal(input.ProblemSolved, got.ProblemSolved)
	suite.Equal(input.Description, got.Description)
	suite.Equal(input.Category, got.Category)
	suite.Equal(input.MarketSize, got.MarketSize)
	suite.Equal(input.CompetitionLevel, got.CompetitionLevel)
	suite.Equal(input.EstimatedBudget, got.EstimatedBudget)
	suite.Equal(input.TimeToMarket, got.TimeToMarket)
	suite.Equal(input.Notes, got.Notes)
	suite.Equal(input.Status, got.Status)
	suite.WithinDuration(created.CreatedAt, got.CreatedAt, time.Second)
	suite.WithinDuration(created.UpdatedAt, got.UpdatedAt, time.Second)

	suite.Require().NoError(suite.env.ideaService.DeleteIdea(suite.ctx, suite.ann.ID, created.ID))

	_, err = suite.env.ideaService.GetIdea(suite.ctx, suite.ann.ID, created.ID)
	suite.ErrorIs(err, ErrIdeaNotFound)
}

func (suite *IdeaServiceTestSuite) TestOwnerScoping() {
	idea, err := suite.env.ideaService.CreateIdea(suite.ctx, suite.ann.ID, validInput())
	suite.Require().NoError(err)

	ideas, _, err := suite.env.ideaService.ListIdeas(suite.ctx, suite.bob.ID, ListIdeasInput{})
	suite.Require().NoError(err)
	suite.Empty(ideas)

	_, err = suite.env.ideaService.GetIdea(suite.ctx, suite.bob.ID, idea.ID)
	suite.ErrorIs(err, ErrIdeaNotFound)

	name := "Hijacked"
	_, err = suite.env.ideaService.UpdateIdea(suite.ctx, suite.bob.ID, idea.ID, UpdateIdeaInput{IdeaName: &name})
	suite.ErrorIs(err, ErrIdeaNotFound)

	err = suite.env.ideaService.DeleteIdea(suite.ctx, suite.bob.ID, idea.ID)
	suite.ErrorIs(err, ErrIdeaNotFound)

	got, err := suite.env.ideaService.GetIdea(suite.ctx, suite.ann.ID, idea.ID)
	suite.Require().NoError(err)
	suite.Equal("X", got.IdeaName)
}

func (suite *IdeaServiceTestSuite) TestGetIdea_UnknownID() {
	_, err := suite.env.ideaService.GetIdea(suite.ctx, suite.ann.ID, "does-not-exist")
	suite.ErrorIs(err, ErrIdeaNotFound)
}

// seedTimeline stores ideas for ann with strictly increasing creation times.
func (suite *IdeaServiceTestSuite) seedTimeline(names ...string) {
	base := time.Now().Add(-time.Hour)
	for i, name := range names {
		idea := &models.Idea{
			UserID:           suite.ann.ID,
			IdeaName:         name,
			TargetAudience:   "a",
			ProblemSolved:    "p",
			Description:      "d",
			Category:         models.CategoryOther,
			MarketSize:       models.MarketSizeUnknown,
			CompetitionLevel: models.CompetitionUnknown,
			Status:           models.IdeaStatusIdea,
			CreatedAt:        base.Add(time.Duration(i) * time.Minute),
		}
		suite.Require().NoError(suite.env.ideaRepo.Create(suite.ctx, idea))
	}
}

func (suite *IdeaServiceTestSuite) TestListIdeas_NewestFirst() {
	suite.seedTimeline("oldest", "middle", "newest")

	ideas, _, err := suite.env.ideaService.ListIdeas(suite.ctx, suite.ann.ID, ListIdeasInput{})
	suite.Require().NoError(err)
	suite.Require().Len(ideas, 3)
	suite.Equal("newest", ideas[0].IdeaName)
	suite.Equal("middle", ideas[1].IdeaName)
	suite.Equal("oldest", ideas[2].IdeaName)
}

func (suite *IdeaServiceTestSuite) TestListIdeas_Paginated() {
	suite.seedTimeline("first", "second", "third", "fourth", "fifth")

	page, total, err := suite.env.ideaService.ListIdeas(suite.ctx, suite.ann.ID, ListIdeasInput{Page: 2, Limit: 2})
	suite.Require().NoError(err)
	suite.EqualValues(5, total)
	suite.Require().Len(page, 2)
	suite.Equal("third", page[0].IdeaName)
	suite.Equal("second", page[1].IdeaName)

	last, total, err := suite.env.ideaService.ListIdeas(suite.ctx, suite.ann.ID, ListIdeasInput{Page: 3, Limit: 2})
	suite.Require().NoError(err)
	suite.EqualValues(5, total)
	suite.Require().Len(last, 1)
	suite.Equal("first", last[0].IdeaName)

	all, total, err := suite.env.ideaService.ListIdeas(suite.ctx, suite.ann.ID, ListIdeasInput{})
	suite.Require().NoError(err)
	suite.EqualValues(5, total)
	suite.Len(all, 5)

	_, _, err = suite.env.ideaService.ListIdeas(suite.ctx, suite.ann.ID, ListIdeasInput{Limit: 1000})
	var verr *ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Contains(verr.Fields, "limit")
}

func (suite *IdeaServiceTestSuite) TestListIdeas_EmptyIsNotNil() {
	ideas, _, err := suite.env.ideaService.ListIdeas(suite.ctx, suite.ann.ID, ListIdeasInput{})
	suite.Require().NoError(err)
	suite.NotNil(ideas)
	suite.Empty(ideas)
}

func (suite *IdeaServiceTestSuite) TestListIdeas_Filters() {
	fintech := validInput()
	fintech.IdeaName = "Budget App"
	fintech.Category = models.CategoryFinance
	fintech.Status = ptr(models.IdeaStatusPlanning)
	_, err := suite.env.ideaService.CreateIdea(suite.ctx, suite.ann.ID, fintech)
	suite.Require().NoError(err)

	tutor := validInput()
	tutor.IdeaName = "Tutor 100% match"
	tutor.TargetAudience = "Parents"
	tutor.Category = models.CategoryEducation
	_, err = suite.env.ideaService.CreateIdea(suite.ctx, suite.ann.ID, tutor)
	suite.Require().NoError(err)

	byStatus, _, err := suite.env.ideaService.ListIdeas(suite.ctx, suite.ann.ID, ListIdeasInput{Status: "Planning"})
	suite.Require().NoError(err)
	suite.Require().Len(byStatus, 1)
	suite.Equal("Budget App", byStatus[0].IdeaName)

	byCategory, _, err := suite.env.ideaService.ListIdeas(suite.ctx, suite.ann.ID, ListIdeasInput{Category: "Education"})
	suite.Require().NoError(err)
	suite.Require().Len(byCategory, 1)
	suite.Equal("Tutor 100% match", byCategory[0].IdeaName)

	bySearch, _, err := suite.env.ideaService.ListIdeas(suite.ctx, suite.ann.ID, ListIdeasInput{Search: "PARENTS"})
	suite.Require().NoError(err)
	suite.Require().Len(bySearch, 1)

	byCategorySearch, _, err := suite.env.ideaService.ListIdeas(suite.ctx, suite.ann.ID, ListIdeasInput{Search: "financ"})
	suite.Require().NoError(err)
	suite.Require().Len(byCategorySearch, 1)

	literalPercent, _, err := suite.env.ideaService.ListIdeas(suite.ctx, suite.ann.ID, ListIdeasInput{Search: "100%"})
	suite.Require().NoError(err)
	suite.Require().Len(literalPercent, 1)

	percentOnly, _, err := suite.env.ideaService.ListIdeas(suite.ctx, suite.ann.ID, ListIdeasInput{Search: "%"})
	suite.Require().NoError(err)
	suite.Len(percentOnly, 1)

	_, _, err = suite.env.ideaService.ListIdeas(suite.ctx, suite.ann.ID, ListIdeasInput{Status: "Shipped"})
	var verr *ValidationError
	suite.ErrorAs(err, &verr)
}

func (suite *IdeaServiceTestSuite) TestUpdateIdea_Partial() {
	idea, err := suite.env.ideaService.CreateIdea(suite.ctx, suite.ann.ID, validInput())
	suite.Require().NoError(err)

	notes := "  validated with 5 users "
	status := models.IdeaStatusResearch
	updated, err := suite.env.ideaService.UpdateIdea(suite.ctx, suite.ann.ID, idea.ID, UpdateIdeaInput{
		Notes:  &notes,
		Status: &status,
	})
	suite.Require().NoError(err)

	suite.Equal("validated with 5 users", updated.Notes)
	suite.Equal(models.IdeaStatusResearch, updated.Status)
	suite.Equal("X", updated.IdeaName)
	suite.Equal(models.CategoryTechnology, updated.Category)
	suite.Equal(suite.ann.ID, updated.UserID)
	suite.WithinDuration(idea.CreatedAt, updated.CreatedAt, time.Second)
	suite.False(updated.UpdatedAt.Before(idea.UpdatedAt))
}

func (suite *IdeaServiceTestSuite) TestUpdateIdea_NoEnumFieldsNeverFailsEnumValidation() {
	idea, err := suite.env.ideaService.CreateIdea(suite.ctx, suite.ann.ID, validInput())
	suite.Require().NoError(err)

	name := "Renamed"
	budget := ""
	updated, err := suite.env.ideaService.UpdateIdea(suite.ctx, suite.ann.ID, idea.ID, UpdateIdeaInput{
		IdeaName:        &name,
		EstimatedBudget: &budget,
	})
	suite.Require().NoError(err)
	suite.Equal("Renamed", updated.IdeaName)
}

func (suite *IdeaServiceTestSuite) TestUpdateIdea_InvalidEnumLeavesRecordUnchanged() {
	idea, err := suite.env.ideaService.CreateIdea(suite.ctx, suite.ann.ID, validInput())
	suite.Require().NoError(err)

	name := "Should not persist"
	category := models.Category("Space")
	_, err = suite.env.ideaService.UpdateIdea(suite.ctx, suite.ann.ID, idea.ID, UpdateIdeaInput{
		IdeaName: &name,
		Category: &category,
	})

	var verr *ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Contains(verr.Fields, "category")

	got, err := suite.env.ideaService.GetIdea(suite.ctx, suite.ann.ID, idea.ID)
	suite.Require().NoError(err)
	suite.Equal("X", got.IdeaName)
	suite.Equal(models.CategoryTechnology, got.Category)
}

func (suite *IdeaServiceTestSuite) TestUpdateIdea_BlankRequiredField() {
	idea, err := suite.env.ideaService.CreateIdea(suite.ctx, suite.ann.ID, validInput())
	suite.Require().NoError(err)

	blank := "   "
	_, err = suite.env.ideaService.UpdateIdea(suite.ctx, suite.ann.ID, idea.ID, UpdateIdeaInput{Description: &blank})

	var verr *ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Contains(verr.Fields, "description")
}

func (suite *IdeaServiceTestSuite) TestDeleteIdea_Twice() {
	idea, err := suite.env.ideaService.CreateIdea(suite.ctx, suite.ann.ID, validInput())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.env.ideaService.DeleteIdea(suite.ctx, suite.ann.ID, idea.ID))
	suite.ErrorIs(suite.env.ideaService.DeleteIdea(suite.ctx, suite.ann.ID, idea.ID), ErrIdeaNotFound)
}

func (suite *IdeaServiceTestSuite) TestStats() {
	for _, status := range []models.IdeaStatus{
		models.IdeaStatusIdea,
		models.IdeaStatusResearch,
		models.IdeaStatusDevelopment,
		models.IdeaStatusTesting,
		models.IdeaStatusLaunch,
		models.IdeaStatusAbandoned,
	} {
		input := validInput()
		input.Status = &status
		_, err := suite.env.ideaService.CreateIdea(suite.ctx, suite.ann.ID, input)
		suite.Require().NoError(err)
	}
	_, err := suite.env.ideaService.CreateIdea(suite.ctx, suite.bob.ID, validInput())
	suite.Require().NoError(err)

	stats, err := suite.env.ideaService.Stats(suite.ctx, suite.ann.ID)
	suite.Require().NoError(err)

	suite.Equal(int64(6), stats.Total)
	suite.Equal(int64(2), stats.EarlyStage)
	suite.Equal(int64(2), stats.InProgress)
	suite.Equal(int64(1), stats.Launched)
	suite.Equal(int64(1), stats.Abandoned)
	suite.Equal(int64(0), stats.ByStatus[models.IdeaStatusPlanning])
	suite.Len(stats.ByStatus, len(models.IdeaStatuses()))
}

func TestIdeaServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IdeaServiceTestSuite))
}
