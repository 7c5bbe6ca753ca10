package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JannatulNex/Ticketing-System/internal/models"
	"github.com/JannatulNex/Ticketing-System/internal/token"
)

func postJSON(r http.Handler, path string, body any, bearer string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	r, db, _ := setupTest(t)

	t.Run("Success", func(t *testing.T) {
		rec := postJSON(r, "/api/auth/register", map[string]string{
			"username": "alice",
			"email":    "alice@example.com",
			"password": "password123",
		}, "")
		assert.Equal(t, http.StatusCreated, rec.Code)

		var body map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		identity, err := token.Verify(testSecret, body["token"])
		assert.NoError(t, err)
		assert.Equal(t, models.RoleCustomer, identity.Role)

		var user models.User
		assert.NoError(t, db.Where("email = ?", "alice@example.com").First(&user).Error)
		assert.Equal(t, "alice", user.Username)
		assert.NotEqual(t, "password123", user.Password)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		rec := postJSON(r, "/api/auth/register", map[string]string{
			"username": "alice2",
			"email":    "alice@example.com",
			"password": "password123",
		}, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("FieldErrors", func(t *testing.T) {
		rec := postJSON(r, "/api/auth/register", map[string]string{
			"username": "a",
			"email":    "not-an-email",
			"password": "short",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body struct {
			FieldErrors map[string][]string `json:"fieldErrors"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.FieldErrors, "username")
		assert.Contains(t, body.FieldErrors, "email")
		assert.Contains(t, body.FieldErrors, "password")
	})
}

func TestLogin(t *testing.T) {
	r, db, _ := setupTest(t)
	createUser(t, db, "bob", "bob@example.com", models.RoleCustomer)

	t.Run("Success", func(t *testing.T) {
		rec := postJSON(r, "/api/auth/login", map[string]string{
			"email":    "bob@example.com",
			"password": "password123",
		}, "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["token"])
	})

	t.Run("WrongPassword", func(t *testing.T) {
		rec := postJSON(r, "/api/auth/login", map[string]string{
			"email":    "bob@example.com",
			"password": "wrongpassword",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		rec := postJSON(r, "/api/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "password123",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
