package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travelhub/constants"
	"travelhub/response"
	"travelhub/services"
	"travelhub/services/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authRouter(tokens *services.TokenService, roles ...constants.Role) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens, roles...), func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok {
			response.ServerError(c)
			return
		}
		response.Success(c, gin.H{"id": id, "role": CurrentRole(c)})
	})
	return r
}

func doGet(r http.Handler, path, token string) (*httptest.ResponseRecorder, response.Response) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestAuthMiddleware(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour)
	userID := uuid.New()
	ownerToken, err := tokens.Issue(services.UserInfo{UserId: userID, Role: constants.RoleOwner})
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		w, body := doGet(authRouter(tokens), "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "MISSING_TOKEN", string(body.ErrorCode))
	})

	t.Run("invalid token", func(t *testing.T) {
		w, body := doGet(authRouter(tokens), "/me", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_TOKEN", string(body.ErrorCode))
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		forged, err := services.NewTokenService("other", time.Hour).Issue(services.UserInfo{UserId: userID, Role: constants.RoleAdmin})
		require.NoError(t, err)
		w, _ := doGet(authRouter(tokens), "/me", forged)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		w, body := doGet(authRouter(tokens, constants.RoleAdmin), "/me", ownerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", string(body.ErrorCode))
	})

	t.Run("allowed", func(t *testing.T) {
		w, body := doGet(authRouter(tokens, constants.RoleOwner, constants.RoleAdmin), "/me", ownerToken)
		assert.Equal(t, http.StatusOK, w.Code)
		data := body.Data.(map[string]interface{})
		assert.Equal(t, userID.String(), data["id"])
		assert.Equal(t, "owner", data["role"])
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("requestId")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestLoggerLevelsByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(RequestID(), Logger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/bad", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "/boom", entries[2].ContextMap()["path"])
	assert.NotEmpty(t, entries[2].ContextMap()["request_id"])
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/2", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2, promtest.CollectAndCount(m.RequestDuration))
	families, err := reg.Gather()
	require.NoError(t, err)
	var routes []string
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "route" {
					routes = append(routes, l.GetValue())
				}
			}
		}
	}
	assert.ElementsMatch(t, []string{"/items/:id", "unmatched"}, routes)
}
