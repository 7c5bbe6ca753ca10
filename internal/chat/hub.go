package chat

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/JannatulNex/Ticketing-System/internal/helpers"
	"github.com/JannatulNex/Ticketing-System/internal/models"
	"github.com/JannatulNex/Ticketing-System/internal/token"
)

var (
	errTicketNotFound = errors.New("ticket not found")
	errForbidden      = errors.New("not allowed to view this ticket")
)

// Hub is the process-wide broadcast-group registry: which connections are
// listening to which ticket. Its lifetime is the server's; fan-out across
// multiple server instances would need an external bus and is out of scope.
type Hub struct {
	db       *gorm.DB
	secret   string
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	rooms map[uint]map[*Client]bool
}

func NewHub(db *gorm.DB, secret string, allowedOrigins []string) *Hub {
	return &Hub{
		db:     db,
		secret: secret,
		rooms:  make(map[uint]map[*Client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(allowedOrigins))
	wildcard := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			wildcard = true
		}
		allowed[origin] = true
	}
	return func(r *http.Request) bool {
		if wildcard {
			return true
		}
		return allowed[r.Header.Get("Origin")]
	}
}

// ServeWS authenticates the handshake and upgrades it to a chat connection.
// Browsers cannot set headers on a websocket handshake, so the bearer token
// travels as a query parameter.
func (h *Hub) ServeWS(c *gin.Context) {
	identity, err := token.Verify(h.secret, c.Query("token"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid token.")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := newClient(h, conn, *identity)
	go client.writePump()
	go client.readPump()
}

// join adds a client to a ticket's room after the same owner-or-admin check
// the REST surface applies. Joining twice is a no-op.
func (h *Hub) join(client *Client, ticketID uint) error {
	var ticket models.Ticket
	if err := h.db.First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errTicketNotFound
		}
		return err
	}
	if client.identity.Role != models.RoleAdmin && ticket.UserID != client.identity.ID {
		return errForbidden
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[ticketID]
	if room == nil {
		room = make(map[*Client]bool)
		h.rooms[ticketID] = room
	}
	room[client] = true
	client.joined[ticketID] = true
	return nil
}

func (h *Hub) leaveAll(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ticketID := range client.joined {
		room := h.rooms[ticketID]
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, ticketID)
		}
	}
	client.joined = make(map[uint]bool)
}

// handleMessage persists a chat message and, only on success, fans it out to
// every connection in the ticket's room, the sender included. The sender is
// always the connection's authenticated identity.
func (h *Hub) handleMessage(client *Client, ticketID uint, text string) error {
	h.mu.RLock()
	member := client.joined[ticketID]
	h.mu.RUnlock()
	if !member {
		return errForbidden
	}

	message := models.ChatMessage{
		Message:  text,
		TicketID: ticketID,
		SenderID: client.identity.ID,
	}
	if err := h.db.Create(&message).Error; err != nil {
		return err
	}
	if err := h.db.First(&message.Sender, client.identity.ID).Error; err != nil {
		return err
	}

	h.broadcast(ticketID, message.View())
	return nil
}

func (h *Hub) broadcast(ticketID uint, view models.ChatMessageView) {
	frame := outboundMessage{Event: EventMessage, ChatMessageView: view}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[ticketID] {
		client.enqueue(frame)
	}
}
