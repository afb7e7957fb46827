package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token-for-tests"

func signToken(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func userToken(t *testing.T, userID uuid.UUID) string {
	return signToken(t, testSecret, jwt.RegisteredClaims{
		Subject:   userID.String(),
		Audience:  jwt.ClaimStrings{"authenticated"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
}

func TestNewJWTVerifier_RequiresSecret(t *testing.T) {
	_, err := NewJWTVerifier("", "authenticated")
	assert.Error(t, err)
}

func TestJWTVerifier_Verify(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, "authenticated")
	require.NoError(t, err)
	userID := uuid.New()

	got, err := v.Verify(userToken(t, userID))
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", signToken(t, "other", jwt.RegisteredClaims{
			Subject: userID.String(), Audience: jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})},
		{"expired", signToken(t, testSecret, jwt.RegisteredClaims{
			Subject: userID.String(), Audience: jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})},
		{"no expiry", signToken(t, testSecret, jwt.RegisteredClaims{
			Subject: userID.String(), Audience: jwt.ClaimStrings{"authenticated"},
		})},
		{"wrong audience", signToken(t, testSecret, jwt.RegisteredClaims{
			Subject: userID.String(), Audience: jwt.ClaimStrings{"anon"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})},
		{"subject not a uuid", signToken(t, testSecret, jwt.RegisteredClaims{
			Subject: "alice", Audience: jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})},
		{"garbage", "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, "")
	require.NoError(t, err)
	userID := uuid.New()

	r := gin.New()
	r.GET("/me", AuthMiddleware(v), func(c *gin.Context) {
		id, ok := UserID(c)
		require.True(t, ok)
		c.String(http.StatusOK, id.String())
	})

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+userToken(t, userID))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())
}
