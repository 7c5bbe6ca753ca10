package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JannatulNex/Ticketing-System/internal/helpers"
	"github.com/JannatulNex/Ticketing-System/internal/middleware"
	"github.com/JannatulNex/Ticketing-System/internal/models"
	"github.com/JannatulNex/Ticketing-System/internal/token"
	"github.com/JannatulNex/Ticketing-System/internal/validation"
)

// loadTicketForCaller fetches the ticket behind :id and enforces the
// owner-or-admin visibility rule. On failure it writes the response and
// returns false.
func loadTicketForCaller(c *gin.Context) (*models.Ticket, *token.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Unauthorized.")
		return nil, nil, false
	}

	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket id.")
		return nil, nil, false
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return nil, nil, false
	}

	var ticket models.Ticket
	if err := db.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Not found.")
		} else {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ticket.")
		}
		return nil, nil, false
	}

	if identity.Role != models.RoleAdmin && ticket.UserID != identity.ID {
		helpers.RespondWithError(c, http.StatusForbidden, "Forbidden.")
		return nil, nil, false
	}

	return &ticket, &identity, true
}

func ListTickets(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	query := db.Model(&models.Ticket{})
	if identity.Role != models.RoleAdmin {
		query = query.Where("user_id = ?", identity.ID)
	}

	var tickets []models.Ticket
	if err := query.Order("created_at DESC").Find(&tickets).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving tickets.")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

func CreateTicket(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	subject := c.PostForm("subject")
	description := c.PostForm("description")
	category := c.PostForm("category")
	priority := c.PostForm("priority")

	if errs := validation.CreateTicket(subject, description, category, priority); !errs.Empty() {
		helpers.RespondWithFieldErrors(c, errs)
		return
	}
	if priority == "" {
		priority = "Low"
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	ticket := models.Ticket{
		Subject:     subject,
		Description: description,
		Category:    category,
		Priority:    priority,
		Status:      models.StatusOpen,
		UserID:      identity.ID,
	}

	uploadDir := middleware.GetConfig(c).UploadDir
	if fileHeader, err := c.FormFile("attachment"); err == nil {
		path, err := helpers.StoreAttachment(c, fileHeader, uploadDir)
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to store attachment.")
			return
		}
		ticket.Attachment = &path
	}

	if err := db.Create(&ticket).Error; err != nil {
		helpers.RemoveAttachment(uploadDir, ticket.Attachment)
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create ticket.")
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

func GetTicket(c *gin.Context) {
	ticket, _, ok := loadTicketForCaller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func UpdateTicket(c *gin.Context) {
	subject := postFormPtr(c, "subject")
	description := postFormPtr(c, "description")
	category := postFormPtr(c, "category")
	priority := postFormPtr(c, "priority")

	if errs := validation.UpdateTicket(subject, description, category, priority); !errs.Empty() {
		helpers.RespondWithFieldErrors(c, errs)
		return
	}

	ticket, _, ok := loadTicketForCaller(c)
	if !ok {
		return
	}
	db := middleware.GetDB(c)

	if subject != nil {
		ticket.Subject = *subject
	}
	if description != nil {
		ticket.Description = *description
	}
	if category != nil {
		ticket.Category = *category
	}
	if priority != nil {
		ticket.Priority = *priority
	}

	uploadDir := middleware.GetConfig(c).UploadDir
	previous := ticket.Attachment
	replaced := false

	if fileHeader, err := c.FormFile("attachment"); err == nil {
		path, err := helpers.StoreAttachment(c, fileHeader, uploadDir)
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to store attachment.")
			return
		}
		ticket.Attachment = &path
		replaced = true
	} else if c.PostForm("removeAttachment") == "true" {
		ticket.Attachment = nil
		replaced = true
	}

	if err := db.Save(ticket).Error; err != nil {
		if replaced {
			helpers.RemoveAttachment(uploadDir, ticket.Attachment)
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update ticket.")
		return
	}

	// Old file goes away only once the row update has committed.
	if replaced {
		helpers.RemoveAttachment(uploadDir, previous)
	}

	c.JSON(http.StatusOK, ticket)
}

func UpdateTicketStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if errs := validation.TicketStatus(req.Status); !errs.Empty() {
		helpers.RespondWithFieldErrors(c, errs)
		return
	}

	// Role gate runs before this handler; any remaining caller may touch
	// any ticket, so only existence is checked here.
	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket id.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var ticket models.Ticket
	if err := db.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Not found.")
		} else {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ticket.")
		}
		return
	}

	ticket.Status = req.Status
	if err := db.Save(&ticket).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update status.")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func DeleteTicket(c *gin.Context) {
	ticket, _, ok := loadTicketForCaller(c)
	if !ok {
		return
	}
	db := middleware.GetDB(c)

	// Children first, so stores without cascade support stay consistent.
	if err := db.Where("ticket_id = ?", ticket.ID).Delete(&models.Comment{}).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete ticket.")
		return
	}
	if err := db.Where("ticket_id = ?", ticket.ID).Delete(&models.ChatMessage{}).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete ticket.")
		return
	}
	if err := db.Delete(&models.Ticket{}, ticket.ID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete ticket.")
		return
	}

	helpers.RemoveAttachment(middleware.GetConfig(c).UploadDir, ticket.Attachment)

	c.Status(http.StatusNoContent)
}

func UploadTicketAttachment(c *gin.Context) {
	ticket, _, ok := loadTicketForCaller(c)
	if !ok {
		return
	}
	db := middleware.GetDB(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "No file uploaded.")
		return
	}

	uploadDir := middleware.GetConfig(c).UploadDir
	path, err := helpers.StoreAttachment(c, fileHeader, uploadDir)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to store attachment.")
		return
	}

	previous := ticket.Attachment
	ticket.Attachment = &path
	if err := db.Save(ticket).Error; err != nil {
		helpers.RemoveAttachment(uploadDir, &path)
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update ticket.")
		return
	}

	helpers.RemoveAttachment(uploadDir, previous)

	c.JSON(http.StatusOK, ticket)
}

func postFormPtr(c *gin.Context, field string) *string {
	if value, ok := c.GetPostForm(field); ok {
		return &value
	}
	return nil
}
