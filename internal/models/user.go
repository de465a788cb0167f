package models

import "time"

// User is a registered account. Email is stored as given and is not unique
// at the storage level.
type User struct {
	Base
	CreatedAt time.Time `gorm:"not null"`
	Email     string    `gorm:"not null;index"`
	Password  string    `gorm:"not null"`
}

// UserView is the outward form of a user. It never carries the password hash.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ToView projects u for callers outside the store.
func (u *User) ToView() *UserView {
	return &UserView{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
