package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/pageza/nutriai/backend/internal/middleware"
	"github.com/pageza/nutriai/backend/internal/mocks"
	"github.com/pageza/nutriai/backend/internal/service"
	"github.com/pageza/nutriai/backend/internal/testhelpers"
	"github.com/pageza/nutriai/backend/internal/types"
)

type testEnv struct {
	router    *gin.Engine
	clock     *testhelpers.Clock
	generator *mocks.MockGenerator
	chat      *mocks.MockChatModel
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := testhelpers.NewClock(t, "2024-05-10")
	store := testhelpers.NewTestStore(t, clock)
	log := zaptest.NewLogger(t)

	library := service.NewLibraryService(store)
	generator := &mocks.MockGenerator{}
	chat := &mocks.MockChatModel{}
	t.Cleanup(func() {
		generator.AssertExpectations(t)
		chat.AssertExpectations(t)
	})

	svc := Services{
		Accounts:  service.NewAccountService(store, "test-secret"),
		Profiles:  service.NewProfileService(store),
		Theme:     service.NewThemeService(store),
		Hydration: service.NewHydrationService(store),
		CheckIns:  service.NewCheckInService(store, library),
		Library:   library,
		Planner:   service.NewPlannerService(generator, library, store, log),
		Coach:     service.NewCoachService(chat, store, log),
		Limiter:   middleware.NewGenerationRateLimiter(nil, 3, zap.NewNop()),
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler(log))
	RegisterRoutes(router, svc, log)

	return &testEnv{
		router:    router,
		clock:     clock,
		generator: generator,
		chat:      chat,
	}
}

// PerformRequestWithToken performs an HTTP request with a JWT token
func PerformRequestWithToken(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	router.ServeHTTP(w, req)
	return w
}

// registerUser creates an account and returns its token.
func (e *testEnv) registerUser(t *testing.T, name, email string) string {
	t.Helper()
	w := PerformRequestWithToken(e.router, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

// completeProfile fills in the measurements required by the planner routes.
func (e *testEnv) completeProfile(t *testing.T, token string) {
	t.Helper()
	w := PerformRequestWithToken(e.router, http.MethodPut, "/api/v1/profile", map[string]interface{}{
		"name":   "Ana",
		"age":    30,
		"weight": 60,
		"height": 165,
		"goal":   "lose_weight",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
