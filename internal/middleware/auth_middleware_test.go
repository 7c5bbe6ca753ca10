package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/JannatulNex/Ticketing-System/internal/token"
)

const testSecret = "middleware-test-secret-123"

func performRequest(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware(testSecret))
	r.GET("/", func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		assert.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": identity.ID, "role": identity.Role})
	})

	t.Run("ValidToken", func(t *testing.T) {
		tokenString, err := token.Issue(testSecret, 7, "CUSTOMER")
		assert.NoError(t, err)

		rec := performRequest(r, "Bearer "+tokenString)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":7,"role":"CUSTOMER"}`, rec.Body.String())
	})

	t.Run("MissingHeader", func(t *testing.T) {
		rec := performRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("NotBearer", func(t *testing.T) {
		rec := performRequest(r, "Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("BadToken", func(t *testing.T) {
		rec := performRequest(r, "Bearer garbage")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		tokenString, err := token.Issue("some-other-secret-456789", 7, "CUSTOMER")
		assert.NoError(t, err)

		rec := performRequest(r, "Bearer "+tokenString)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware(testSecret))
	r.GET("/", RequireRole("ADMIN"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		tokenString, _ := token.Issue(testSecret, 1, "ADMIN")
		rec := performRequest(r, "Bearer "+tokenString)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("CustomerForbidden", func(t *testing.T) {
		tokenString, _ := token.Issue(testSecret, 2, "CUSTOMER")
		rec := performRequest(r, "Bearer "+tokenString)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
