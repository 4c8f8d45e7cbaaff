package dbmysql

import (
	"time"

	"gorm.io/gorm"
)

// User mirrors the identity store's user table. The chat core reads it
// for credential verification and summary identity resolution; the only
// write path is registration.
type User struct {
	UserID       uint64         `gorm:"primaryKey;column:user_id;autoIncrement" json:"id"`
	Username     string         `gorm:"column:username;uniqueIndex;size:50;not null" json:"username"`
	Email        string         `gorm:"column:email;size:255" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;size:255;not null" json:"-"`
	RoleType     string         `gorm:"column:role_type;size:50;default:'authenticated'" json:"-"`
	RoleName     string         `gorm:"column:role_name;size:50;default:'Authenticated'" json:"-"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// View returns the projection embedded in message payloads.
func (u *User) View() *UserView {
	return &UserView{ID: u.UserID, Username: u.Username, Email: u.Email}
}
