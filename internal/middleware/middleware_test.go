package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/afterschool-api/internal/models"
	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
)

type stubValidator struct {
	claims map[string]*models.JWTClaims
}

func (s stubValidator) ValidateToken(ctx context.Context, token string) (*models.JWTClaims, error) {
	if claims, ok := s.claims[token]; ok {
		return claims, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
}

type observation struct {
	method, path string
	status       int
}

type stubObserver struct {
	seen []observation
}

func (s *stubObserver) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	s.seen = append(s.seen, observation{method, path, status})
}

func newRouter(observer HTTPObserver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator := stubValidator{claims: map[string]*models.JWTClaims{
		"student-token": {UserID: 3, Role: models.RoleStudent},
		"admin-token":   {UserID: 1, Role: models.RoleAdmin},
	}}
	r := gin.New()
	r.Use(Metrics(observer))
	admin := r.Group("/admin", JWT(validator), RequireRoles(models.RoleAdmin))
	admin.GET("/users/:userId", func(c *gin.Context) {
		claims, _ := Claims(c)
		c.JSON(http.StatusOK, gin.H{"caller": claims.UserID})
	})
	return r
}

func serve(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/users/9", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAndRoles(t *testing.T) {
	r := newRouter(nil)

	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Token admin-token").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Bearer forged").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, "Bearer student-token").Code)

	w := serve(r, "Bearer admin-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"caller":1}`, w.Body.String())
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	observer := &stubObserver{}
	r := newRouter(observer)

	serve(r, "Bearer admin-token")
	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, observer.seen, 2)
	assert.Equal(t, observation{http.MethodGet, "/admin/users/:userId", http.StatusOK}, observer.seen[0])
	assert.Equal(t, "unmatched", observer.seen[1].path)
	assert.Equal(t, http.StatusNotFound, observer.seen[1].status)
}

func TestRequireRolesWithoutJWT(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", RequireRoles(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
