package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/trackr-io/trackr/internal/infrastructure/config"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
	sharedConfig "github.com/trackr-io/trackr/internal/shared/config"
	"github.com/trackr-io/trackr/internal/shared/constants"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
}

func (a *apiClient) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (a *apiClient) decode(env envelope, target any) {
	a.t.Helper()
	require.NoError(a.t, json.Unmarshal(env.Data, target))
}

func testConfig() *config.Config {
	return &config.Config{
		Server: sharedConfig.ServerConfig{
			Mode:    gin.TestMode,
			BaseURL: "http://localhost:8080",
		},
		Database: sharedConfig.DatabaseConfig{Driver: "sqlite"},
		Auth: sharedConfig.AuthConfig{
			Password: sharedConfig.PasswordConfig{BcryptCost: 4},
			JWT: sharedConfig.JWTConfig{
				Secret:           "router-test-secret-with-enough-length",
				AccessExpMinutes: 15,
				RefreshExpDays:   7,
			},
		},
		Ticket: sharedConfig.TicketConfig{
			Numbering: sharedConfig.NumberingConfig{
				Scheme:       constants.NumberingSchemeGlobal,
				Backend:      constants.NumberingBackendDB,
				GlobalPrefix: constants.DefaultTicketPrefix,
			},
		},
	}
}

func newTestAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	c, err := NewContainer(gdb, testConfig(), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(c.Shutdown)

	r := NewRouter(c)
	r.SetupRoutes()
	return &apiClient{t: t, engine: r.GetEngine()}
}

type account struct {
	ID    uint
	Token string
}

func (a *apiClient) signUp(name, email string) account {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/api/users", "", map[string]string{
		"name": name, "email": email, "password": "s3cretpass",
	})
	require.Equal(a.t, http.StatusCreated, code)

	code, env = a.do(http.MethodPost, "/api/users/login", "", map[string]string{
		"email": email, "password": "s3cretpass",
	})
	require.Equal(a.t, http.StatusOK, code)
	var login struct {
		User struct {
			ID uint `json:"id"`
		} `json:"user"`
		AccessToken string `json:"access_token"`
	}
	a.decode(env, &login)
	require.NotEmpty(a.t, login.AccessToken)
	return account{ID: login.User.ID, Token: login.AccessToken}
}

func TestRouter_Health(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestRouter_Unauthenticated(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)

	code, _ = api.do(http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouter_TicketFlow(t *testing.T) {
	api := newTestAPI(t)
	alice := api.signUp("Alice", "alice@example.com")
	bob := api.signUp("Bob", "bob@example.com")

	code, env := api.do(http.MethodPost, "/api/projects", alice.Token, map[string]string{
		"name": "Customer Portal",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	var proj struct {
		ID  uint   `json:"id"`
		Key string `json:"key"`
	}
	api.decode(env, &proj)
	assert.Equal(t, "CP", proj.Key)

	code, _ = api.do(http.MethodPost, fmt.Sprintf("/api/projects/%d/members", proj.ID), alice.Token, map[string]any{
		"user_id": bob.ID, "role": "developer",
	})
	require.Equal(t, http.StatusOK, code)

	code, _ = api.do(http.MethodPost, "/api/tickets", alice.Token, map[string]any{
		"project_id":  proj.ID,
		"title":       "Login page is blank",
		"type":        "Bug",
		"status":      "Blocked",
		"priority":    "High",
		"assignee_id": bob.ID,
	})
	assert.Equal(t, http.StatusBadRequest, code, "unknown status is rejected")

	code, _ = api.do(http.MethodPost, "/api/tickets", alice.Token, map[string]any{
		"project_id":  proj.ID,
		"title":       "Login page is blank",
		"type":        "Bug",
		"priority":    "High",
		"assignee_id": bob.ID,
	})
	assert.Equal(t, http.StatusBadRequest, code, "status is required")

	code, env = api.do(http.MethodPost, "/api/tickets", alice.Token, map[string]any{
		"project_id":  proj.ID,
		"title":       "Login page is blank",
		"type":        "Bug",
		"status":      "To Do",
		"priority":    "High",
		"assignee_id": bob.ID,
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	var tk struct {
		ID           uint   `json:"id"`
		TicketNumber string `json:"ticket_number"`
	}
	api.decode(env, &tk)
	assert.True(t, strings.HasPrefix(tk.TicketNumber, constants.DefaultTicketPrefix), tk.TicketNumber)

	code, _ = api.do(http.MethodPost, fmt.Sprintf("/api/tickets/%d/comments", tk.ID), bob.Token, map[string]string{
		"content": "Reproduced on **staging**",
	})
	require.Equal(t, http.StatusCreated, code)

	code, env = api.do(http.MethodGet, "/api/notifications/unread/count", alice.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var unread struct {
		Count int64 `json:"count"`
	}
	api.decode(env, &unread)
	assert.EqualValues(t, 1, unread.Count, "reporter hears about the comment")

	code, env = api.do(http.MethodGet, "/api/notifications/unread/count", bob.Token, nil)
	require.Equal(t, http.StatusOK, code)
	api.decode(env, &unread)
	assert.EqualValues(t, 2, unread.Count, "invite and assignment, not the own comment")

	code, env = api.do(http.MethodGet, fmt.Sprintf("/api/tickets/%d/history", tk.ID), alice.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var history []json.RawMessage
	api.decode(env, &history)
	assert.Len(t, history, 1)

	outsider := api.signUp("Eve", "eve@example.com")
	code, _ = api.do(http.MethodPut, fmt.Sprintf("/api/tickets/%d/status", tk.ID), outsider.Token, map[string]string{
		"status": "Closed",
	})
	assert.Equal(t, http.StatusForbidden, code)
}
