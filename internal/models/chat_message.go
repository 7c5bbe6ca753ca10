package models

import "time"

type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Message   string    `gorm:"not null" json:"message"`
	TicketID  uint      `gorm:"index;not null" json:"ticketId"`
	SenderID  uint      `gorm:"not null" json:"senderId"`
	Sender    User      `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatMessageView is the REST and socket representation of a message,
// carrying the sender's public profile alongside the row.
type ChatMessageView struct {
	ID        uint          `json:"id"`
	Message   string        `json:"message"`
	TicketID  uint          `json:"ticketId"`
	SenderID  uint          `json:"senderId"`
	CreatedAt time.Time     `json:"createdAt"`
	Sender    PublicProfile `json:"sender"`
}

func (m *ChatMessage) View() ChatMessageView {
	return ChatMessageView{
		ID:        m.ID,
		Message:   m.Message,
		TicketID:  m.TicketID,
		SenderID:  m.SenderID,
		CreatedAt: m.CreatedAt,
		Sender:    m.Sender.Public(),
	}
}
