package services

import (
	"context"
	"time"

	"expensebook/internal/models"
)

// UserServicer defines the contract for user storage and credential checks.
// Lookups return a nil view, not an error, when nothing matches.
type UserServicer interface {
	CreateUser(ctx context.Context, email, password string) (*models.UserView, error)
	GetUserByID(ctx context.Context, id string) (*models.UserView, error)
	GetUserByEmail(ctx context.Context, email string) (*models.UserView, error)
	VerifyLogin(ctx context.Context, email, password string) (*models.UserView, error)
	DeleteUserByEmail(ctx context.Context, email string) (bool, error)
}

// CategoryInput holds the fields of a new category.
type CategoryInput struct {
	Name            string
	Description     *string
	CreatedByUserID *string
}

// CategoryServicer defines the contract for category storage.
type CategoryServicer interface {
	CreateCategory(ctx context.Context, input CategoryInput) (*models.CategoryView, error)
	GetCategoryByID(ctx context.Context, id string) (*models.CategoryView, error)
	GetAllCategories(ctx context.Context, userID string) ([]models.CategoryView, error)
	DeleteCategoryByID(ctx context.Context, id string) (bool, error)
	SeedGlobalCategories(ctx context.Context, defs []CategoryInput) (int, error)
}

// ExpenseInput holds the fields of a new expense. A nil Date means now.
type ExpenseInput struct {
	UserID   string
	Amount   float64
	Category string
	Date     *time.Time
	Comment  *string
}

// ExpenseUpdate lists the fields to replace; nil fields are left untouched.
type ExpenseUpdate struct {
	Amount   *float64
	Date     *time.Time
	Category *string
	Comment  *string
}

// ExpenseServicer defines the contract for expense storage. Every list is
// ordered by transaction date, newest first.
type ExpenseServicer interface {
	CreateExpense(ctx context.Context, input ExpenseInput) (*models.ExpenseView, error)
	GetExpenseByID(ctx context.Context, id string) (*models.ExpenseView, error)
	GetAllExpenses(ctx context.Context, userID string) ([]models.ExpenseView, error)
	GetExpensesByCategory(ctx context.Context, userID, category string) ([]models.ExpenseView, error)
	GetUserExpensesForMonth(ctx context.Context, userID, month string, year int) ([]models.ExpenseView, error)
	UpdateExpenseByID(ctx context.Context, id string, update ExpenseUpdate) (bool, error)
	DeleteExpenseByID(ctx context.Context, id string) (bool, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
