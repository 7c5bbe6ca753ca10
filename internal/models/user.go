package models

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:50;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"size:16;not null;default:CUSTOMER" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicProfile is the shape of a user embedded in chat messages.
type PublicProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{ID: u.ID, Username: u.Username, Role: u.Role}
}
