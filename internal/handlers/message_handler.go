package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JannatulNex/Ticketing-System/internal/helpers"
	"github.com/JannatulNex/Ticketing-System/internal/middleware"
	"github.com/JannatulNex/Ticketing-System/internal/models"
)

// GetMessages returns a ticket's chat history with each sender's public
// profile, oldest first.
func GetMessages(c *gin.Context) {
	ticket, _, ok := loadTicketForCaller(c)
	if !ok {
		return
	}
	db := middleware.GetDB(c)

	var messages []models.ChatMessage
	if err := db.Preload("Sender").Where("ticket_id = ?", ticket.ID).Order("created_at ASC").Find(&messages).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving messages.")
		return
	}

	views := make([]models.ChatMessageView, 0, len(messages))
	for i := range messages {
		views = append(views, messages[i].View())
	}

	c.JSON(http.StatusOK, views)
}
