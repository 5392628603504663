package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/idea-tracker-api/internal/config"
	"github.com/yukikurage/idea-tracker-api/internal/database"
	"github.com/yukikurage/idea-tracker-api/internal/logger"
	"github.com/yukikurage/idea-tracker-api/internal/middleware"
	"github.com/yukikurage/idea-tracker-api/internal/repository"
	"github.com/yukikurage/idea-tracker-api/internal/services"
	"github.com/yukikurage/idea-tracker-api/internal/token"
	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	ideaService *services.IdeaService
}

// setupTestEnv mounts the handlers on a fresh in-memory SQLite database.
func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
	authService := services.NewAuthService(userRepo, token.NewManager("test-secret", time.Hour))
	ideaService := services.NewIdeaService(repository.NewIdeaRepository(db), userRepo)

	authHandler := NewAuthHandler(authService)
	ideaHandler := NewIdeaHandler(ideaService)
	healthHandler := NewHealthHandler(db)

	r := gin.New()
	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)
	r.GET("/api/auth/me", middleware.RequireAuth(authService), authHandler.GetCurrentUser)

	ideas := r.Group("/api/ideas", middleware.RequireAuth(authService))
	ideas.GET("", ideaHandler.ListIdeas)
	ideas.GET("/stats", ideaHandler.GetStats)
	ideas.GET("/:id", ideaHandler.GetIdea)
	ideas.POST("", ideaHandler.CreateIdea)
	ideas.PUT("/:id", ideaHandler.UpdateIdea)
	ideas.DELETE("/:id", ideaHandler.DeleteIdea)

	return testEnv{
		db:          db,
		router:      r,
		authService: authService,
		ideaService: ideaService,
	}
}

// do sends body (marshalled to JSON unless it is a string) with an optional bearer token.
func (env testEnv) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// signIn registers a user and returns a bearer token for it.
func (env testEnv) signIn(t *testing.T, name, email string) string {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
