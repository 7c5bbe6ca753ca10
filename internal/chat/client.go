package chat

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/JannatulNex/Ticketing-System/internal/models"
	"github.com/JannatulNex/Ticketing-System/internal/token"
)

const (
	EventJoinRoom = "join-room"
	EventMessage  = "message"
	EventError    = "error"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

type inboundEvent struct {
	Event    string `json:"event"`
	TicketID uint   `json:"ticketId"`
	Message  string `json:"message"`
}

type outboundMessage struct {
	Event string `json:"event"`
	models.ChatMessageView
}

type outboundError struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

// Client is one websocket connection. All reads happen on its readPump
// goroutine and all writes on its writePump goroutine, per the gorilla
// single-reader/single-writer requirement.
type Client struct {
	id       uuid.UUID
	hub      *Hub
	conn     *websocket.Conn
	identity token.Identity
	send     chan []byte

	// joined is guarded by the hub mutex.
	joined map[uint]bool
}

func newClient(hub *Hub, conn *websocket.Conn, identity token.Identity) *Client {
	return &Client{
		id:       uuid.New(),
		hub:      hub,
		conn:     conn,
		identity: identity,
		send:     make(chan []byte, sendBufferSize),
		joined:   make(map[uint]bool),
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.leaveAll(c)
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Chat connection %s closed unexpectedly: %v", c.id, err)
			}
			return
		}

		var event inboundEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			c.sendError("Malformed event.")
			continue
		}

		switch event.Event {
		case EventJoinRoom:
			if err := c.hub.join(c, event.TicketID); err != nil {
				c.sendError(joinErrorMessage(err))
			}
		case EventMessage:
			if event.Message == "" {
				c.sendError("Message text is required.")
				continue
			}
			if err := c.hub.handleMessage(c, event.TicketID, event.Message); err != nil {
				c.sendError(messageErrorMessage(err))
			}
		default:
			c.sendError("Unknown event.")
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// enqueue hands a frame to the write pump. A client that cannot keep up has
// its frame dropped rather than stalling the whole room.
func (c *Client) enqueue(frame outboundMessage) {
	raw, err := json.Marshal(frame)
	if err != nil {
		return
	}
	select {
	case c.send <- raw:
	default:
		log.Printf("Chat connection %s is lagging, dropping frame", c.id)
	}
}

func (c *Client) sendError(message string) {
	raw, err := json.Marshal(outboundError{Event: EventError, Message: message})
	if err != nil {
		return
	}
	select {
	case c.send <- raw:
	default:
	}
}

func joinErrorMessage(err error) string {
	switch err {
	case errTicketNotFound:
		return "Not found."
	case errForbidden:
		return "Forbidden."
	default:
		return "Failed to join room."
	}
}

func messageErrorMessage(err error) string {
	if err == errForbidden {
		return "Join the room before sending messages."
	}
	return "Failed to send message."
}
