package handlers_test

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/JannatulNex/Ticketing-System/config"
	"github.com/JannatulNex/Ticketing-System/internal/models"
	"github.com/JannatulNex/Ticketing-System/internal/server"
	"github.com/JannatulNex/Ticketing-System/internal/token"
)

const testSecret = "test-secret-at-least-16-chars"

func setupTest(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Ticket{}, &models.Comment{}, &models.ChatMessage{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		Port:        "0",
		JWTSecret:   testSecret,
		CORSOrigins: []string{"*"},
		UploadDir:   t.TempDir(),
		Env:         "test",
	}

	r := gin.New()
	server.SetupRoutes(r, db, cfg)
	return r, db, cfg
}

func createUser(t *testing.T, db *gorm.DB, username, email, role string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{Username: username, Email: email, Password: string(hashed), Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func authToken(t *testing.T, user *models.User) string {
	t.Helper()
	tokenString, err := token.Issue(testSecret, user.ID, user.Role)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return tokenString
}

func createTicket(t *testing.T, db *gorm.DB, owner *models.User, subject string) *models.Ticket {
	t.Helper()
	ticket := &models.Ticket{
		Subject:     subject,
		Description: "something is wrong",
		Category:    "Technical",
		Priority:    "Low",
		Status:      models.StatusOpen,
		UserID:      owner.ID,
	}
	if err := db.Create(ticket).Error; err != nil {
		t.Fatalf("failed to create ticket: %v", err)
	}
	return ticket
}
