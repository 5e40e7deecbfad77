package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"climatework_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubVerifier struct {
	identity *shared.Identity
	err      error
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*shared.Identity, error) {
	return s.identity, s.err
}

func authTestRouter(verifier shared.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/protected", AuthMiddleware(verifier, zap.NewNop()), func(c *gin.Context) {
		identity := GetIdentityFromContext(c)
		c.JSON(http.StatusOK, gin.H{"uid": identity.SubjectUID})
	})
	return router
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	router := authTestRouter(&stubVerifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	router := authTestRouter(&stubVerifier{err: errors.New("token expired")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set(AuthorizationHeader, "Bearer bad-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

func TestAuthMiddlewarePlacesIdentityInContext(t *testing.T) {
	router := authTestRouter(&stubVerifier{identity: &shared.Identity{SubjectUID: "uid-ok"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set(AuthorizationHeader, "Bearer good-token")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":"uid-ok"}`, w.Body.String())
}
