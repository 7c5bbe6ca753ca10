package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/JannatulNex/Ticketing-System/internal/helpers"
	"github.com/JannatulNex/Ticketing-System/internal/middleware"
	"github.com/JannatulNex/Ticketing-System/internal/models"
	"github.com/JannatulNex/Ticketing-System/internal/token"
	"github.com/JannatulNex/Ticketing-System/internal/validation"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if errs := validation.Register(req.Username, req.Email, req.Password); !errs.Empty() {
		helpers.RespondWithFieldErrors(c, errs)
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var existing models.User
	if result := db.Where("email = ?", req.Email).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "Email already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     models.RoleCustomer,
	}
	if err := db.Create(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create user.")
		return
	}

	tokenString, err := token.Issue(middleware.GetConfig(c).JWTSecret, user.ID, user.Role)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": tokenString})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if errs := validation.Login(req.Email, req.Password); !errs.Empty() {
		helpers.RespondWithFieldErrors(c, errs)
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	tokenString, err := token.Issue(middleware.GetConfig(c).JWTSecret, user.ID, user.Role)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}
