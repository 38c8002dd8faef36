package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-api/internal/handler"
	"github.com/noah-isme/afterschool-api/internal/models"
	"github.com/noah-isme/afterschool-api/internal/service"
	"github.com/noah-isme/afterschool-api/pkg/config"
	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
)

type staticTokens map[string]*models.JWTClaims

func (s staticTokens) ValidateToken(_ context.Context, token string) (*models.JWTClaims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, appErrors.ErrUnauthorized
}

func newEngine(env string) http.Handler {
	cfg := &config.Config{Env: env, APIPrefix: "/api"}
	tokens := staticTokens{
		"student": {UserID: 3, Role: models.RoleStudent},
		"teacher": {UserID: 2, Role: models.RoleTeacher},
	}
	metrics := service.NewMetricsService()
	// Service-backed handlers are never reached: every request below stops in middleware.
	return Setup(cfg, zap.NewNop(), tokens, metrics, Handlers{
		Auth:    handler.NewAuthHandler(nil),
		Student: handler.NewStudentHandler(nil, nil),
		Teacher: handler.NewTeacherHandler(nil, nil, nil, nil),
		Admin:   handler.NewAdminHandler(nil, nil, nil),
		Metrics: handler.NewMetricsHandler(metrics, nil),
	})
}

func request(engine http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRoleGroups(t *testing.T) {
	engine := newEngine(config.EnvDevelopment)

	assert.Equal(t, http.StatusUnauthorized, request(engine, http.MethodGet, "/api/students/my-courses", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(engine, http.MethodGet, "/api/auth/me", "forged").Code)
	assert.Equal(t, http.StatusForbidden, request(engine, http.MethodGet, "/api/students/my-courses", "teacher").Code)
	assert.Equal(t, http.StatusForbidden, request(engine, http.MethodPost, "/api/teachers/courses", "student").Code)
	assert.Equal(t, http.StatusForbidden, request(engine, http.MethodGet, "/api/admin/users", "teacher").Code)
	assert.Equal(t, http.StatusNotFound, request(engine, http.MethodGet, "/api/unknown", "student").Code)
}

func TestOperationalRoutes(t *testing.T) {
	engine := newEngine(config.EnvDevelopment)

	assert.Equal(t, http.StatusOK, request(engine, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, request(engine, http.MethodGet, "/ready", "").Code)

	rec := request(engine, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestDocsHiddenInProduction(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, request(newEngine(config.EnvProduction), http.MethodGet, "/docs/index.html", "").Code)
}
