package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	middleware := newAuthMiddleware(testSecret)
	userID := uuid.New()

	// The protected handler echoes the user ID it was given, so each case
	// can assert both the status and the identity that reached it.
	var gotUserID uuid.UUID
	handler := middleware.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := ctxGetUserID(r.Context())
		require.NoError(t, err)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	}))

	do := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/projects", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid token resolves the subject into the user ID", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		rec := do("Bearer " + token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotUserID)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		rec := do("")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("header without bearer prefix is rejected", func(t *testing.T) {
		rec := do("Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		rec := do("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		rec := do("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "expired")
	})

	t.Run("token without a subject is rejected", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		rec := do("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token whose subject is not a UUID is rejected", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "not-a-uuid",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		rec := do("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
