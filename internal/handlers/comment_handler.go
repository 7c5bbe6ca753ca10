package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JannatulNex/Ticketing-System/internal/helpers"
	"github.com/JannatulNex/Ticketing-System/internal/middleware"
	"github.com/JannatulNex/Ticketing-System/internal/models"
	"github.com/JannatulNex/Ticketing-System/internal/validation"
)

func ListComments(c *gin.Context) {
	ticket, _, ok := loadTicketForCaller(c)
	if !ok {
		return
	}
	db := middleware.GetDB(c)

	var comments []models.Comment
	if err := db.Where("ticket_id = ?", ticket.ID).Order("created_at ASC").Find(&comments).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving comments.")
		return
	}

	c.JSON(http.StatusOK, comments)
}

func AddComment(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if errs := validation.Comment(req.Text); !errs.Empty() {
		helpers.RespondWithFieldErrors(c, errs)
		return
	}

	ticket, identity, ok := loadTicketForCaller(c)
	if !ok {
		return
	}
	db := middleware.GetDB(c)

	comment := models.Comment{
		Text:     req.Text,
		TicketID: ticket.ID,
		UserID:   identity.ID,
	}
	if err := db.Create(&comment).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create comment.")
		return
	}

	c.JSON(http.StatusCreated, comment)
}
