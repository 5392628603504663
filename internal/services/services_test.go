package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/idea-tracker-api/internal/config"
	"github.com/yukikurage/idea-tracker-api/internal/database"
	"github.com/yukikurage/idea-tracker-api/internal/logger"
	"github.com/yukikurage/idea-tracker-api/internal/repository"
	"github.com/yukikurage/idea-tracker-api/internal/token"
	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	ideaRepo    repository.IdeaRepository
	authService *AuthService
	ideaService *IdeaService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	log := logger.Nop()
	db, err := database.Connect(config.Database{
		Driver:   config.DriverSQLite,
		DSN:      ":memory:",
		LogLevel: "silent",
	}, log)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, log))
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	userRepo := repository.NewUserRepository(db)
	ideaRepo := repository.NewIdeaRepository(db)

	return testEnv{
		db:          db,
		userRepo:    userRepo,
		ideaRepo:    ideaRepo,
		authService: NewAuthService(userRepo, token.NewManager("test-secret", time.Hour)),
		ideaService: NewIdeaService(ideaRepo, userRepo),
	}
}
