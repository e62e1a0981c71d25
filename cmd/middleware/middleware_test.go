package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func userToken(t *testing.T, id int64, role string) string {
	return signToken(t, jwt.MapClaims{
		"user_id": id,
		"email":   "user@example.com",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}, testSecret)
}

func identityRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "authed": ok, "role": c.GetString(ContextKeyRole)})
	})
	r.GET("/probe", chain...)
	return r
}

func probe(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingToken(t *testing.T) {
	w := probe(identityRouter(Auth(testSecret)), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsBadSignature(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"user_id": 1, "exp": time.Now().Add(time.Hour).Unix()}, "other-secret")
	w := probe(identityRouter(Auth(testSecret)), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}, testSecret)
	w := probe(identityRouter(Auth(testSecret)), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthSetsIdentity(t *testing.T) {
	w := probe(identityRouter(Auth(testSecret)), userToken(t, 42, "participant"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42,"authed":true,"role":"participant"}`, w.Body.String())
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	w := probe(identityRouter(OptionalAuth(testSecret)), "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":0,"authed":false,"role":""}`, w.Body.String())
}

func TestOptionalAuthIgnoresInvalidToken(t *testing.T) {
	w := probe(identityRouter(OptionalAuth(testSecret)), "not-a-token")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":0,"authed":false,"role":""}`, w.Body.String())
}

func TestOptionalAuthSetsIdentityWhenPresent(t *testing.T) {
	w := probe(identityRouter(OptionalAuth(testSecret)), userToken(t, 7, "speaker"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"authed":true,"role":"speaker"}`, w.Body.String())
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	r := identityRouter(Auth(testSecret), RequireRole("admin"))
	w := probe(r, userToken(t, 7, "participant"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleAllowsAnyListedRole(t *testing.T) {
	r := identityRouter(Auth(testSecret), RequireRole("admin", "speaker"))
	w := probe(r, userToken(t, 7, "speaker"))
	assert.Equal(t, http.StatusOK, w.Code)
}
