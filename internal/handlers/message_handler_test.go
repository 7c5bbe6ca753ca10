package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JannatulNex/Ticketing-System/internal/models"
)

func TestGetMessages(t *testing.T) {
	r, db, _ := setupTest(t)
	owner := createUser(t, db, "alice", "alice@example.com", models.RoleCustomer)
	admin := createUser(t, db, "carol", "carol@example.com", models.RoleAdmin)
	stranger := createUser(t, db, "bob", "bob@example.com", models.RoleCustomer)
	ticket := createTicket(t, db, owner, "Printer broken")

	base := time.Now().Add(-time.Hour)
	db.Create(&models.ChatMessage{Message: "hello", TicketID: ticket.ID, SenderID: owner.ID, CreatedAt: base})
	db.Create(&models.ChatMessage{Message: "looking into it", TicketID: ticket.ID, SenderID: admin.ID, CreatedAt: base.Add(time.Minute)})

	path := fmt.Sprintf("/api/tickets/%d/messages", ticket.ID)

	t.Run("HistoryWithSenderProfile", func(t *testing.T) {
		rec := getPath(r, path, authToken(t, owner))
		assert.Equal(t, http.StatusOK, rec.Code)

		var messages []models.ChatMessageView
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
		assert.Len(t, messages, 2)
		assert.Equal(t, "hello", messages[0].Message)
		assert.Equal(t, "alice", messages[0].Sender.Username)
		assert.Equal(t, models.RoleCustomer, messages[0].Sender.Role)
		assert.Equal(t, "looking into it", messages[1].Message)
		assert.Equal(t, models.RoleAdmin, messages[1].Sender.Role)
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		rec := getPath(r, path, authToken(t, stranger))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
