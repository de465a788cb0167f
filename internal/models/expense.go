package models

import "time"

// Expense is a single spending record. Category holds the category's name,
// not its ID: renaming or deleting a category leaves existing expenses as
// they are.
type Expense struct {
	Base
	CreatedAt time.Time `gorm:"not null"`
	Amount    float64   `gorm:"not null"`
	Date      time.Time `gorm:"not null;index"`
	Category  string    `gorm:"not null"`
	Comment   *string
	UserID    string `gorm:"type:uuid;not null;index"`
}

// ExpenseView is the outward form of an expense.
type ExpenseView struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	Category  string    `json:"category"`
	Comment   *string   `json:"comment,omitempty"`
	UserID    string    `json:"user_id"`
}

// ToView projects e for callers outside the store.
func (e *Expense) ToView() *ExpenseView {
	return &ExpenseView{
		ID:        e.ID,
		CreatedAt: e.CreatedAt,
		Amount:    e.Amount,
		Date:      e.Date,
		Category:  e.Category,
		Comment:   e.Comment,
		UserID:    e.UserID,
	}
}
