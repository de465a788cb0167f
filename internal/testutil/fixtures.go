package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"expensebook/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@example.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		CreatedAt: time.Now(),
		Email:     email,
		Password:  string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category owned by userID.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string) *models.Category {
	t.Helper()
	return createCategory(t, db, &userID)
}

// CreateTestGlobalCategory creates a category visible to every user.
func CreateTestGlobalCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	return createCategory(t, db, nil)
}

func createCategory(t *testing.T, db *gorm.DB, owner *string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:            fmt.Sprintf("Test Category %d", nextID()),
		CreatedByUserID: owner,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestExpense creates an expense for userID dated at date.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, category string, amount float64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		CreatedAt: time.Now().UTC(),
		Amount:    amount,
		Date:      date.UTC(),
		Category:  category,
		UserID:    userID,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
