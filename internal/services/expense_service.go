package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"expensebook/internal/calendar"
	apperrors "expensebook/internal/errors"
	"expensebook/internal/models"
	"expensebook/internal/uuid"
)

// expenseService handles expense storage and monthly queries.
type expenseService struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

// NewExpenseService creates a new ExpenseServicer. Monthly windows are
// resolved in the server's local time zone.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db, loc: time.Local, now: time.Now}
}

// CreateExpense stores a new expense. A nil Date defaults to now.
func (s *expenseService) CreateExpense(ctx context.Context, input ExpenseInput) (*models.ExpenseView, error) {
	if input.UserID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if input.Category == "" {
		return nil, apperrors.WithFields(apperrors.ErrInvalidInput, map[string]string{"category": "Required"})
	}

	now := s.now()
	date := now
	if input.Date != nil {
		date = *input.Date
	}

	// Times are stored in UTC: SQLite compares them as text.
	expense := &models.Expense{
		CreatedAt: now.UTC(),
		Amount:    input.Amount,
		Date:      date.UTC(),
		Category:  input.Category,
		Comment:   input.Comment,
		UserID:    input.UserID,
	}
	if err := s.db.WithContext(ctx).Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense.ToView(), nil
}

// GetExpenseByID retrieves an expense by ID
func (s *expenseService) GetExpenseByID(ctx context.Context, id string) (*models.ExpenseView, error) {
	if !uuid.IsValid(id) {
		return nil, nil
	}

	var expense models.Expense
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense.ToView(), nil
}

func (s *expenseService) GetAllExpenses(ctx context.Context, userID string) ([]models.ExpenseView, error) {
	return s.list(ctx, s.db.WithContext(ctx).Where("user_id = ?", userID))
}

// GetExpensesByCategory matches category by exact name.
func (s *expenseService) GetExpensesByCategory(ctx context.Context, userID, category string) ([]models.ExpenseView, error) {
	return s.list(ctx, s.db.WithContext(ctx).Where("user_id = ? AND category = ?", userID, category))
}

// GetUserExpensesForMonth returns the user's expenses dated within the
// month's window, resolved in the service's location. See calendar.MonthRange
// for the window bounds.
func (s *expenseService) GetUserExpensesForMonth(ctx context.Context, userID, month string, year int) ([]models.ExpenseView, error) {
	start, end, err := calendar.MonthRange(month, year, s.loc)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidMonth, err)
	}

	query := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", start.UTC(), end.UTC())
	return s.list(ctx, query)
}

// UpdateExpenseByID replaces the supplied fields and reports whether an
// expense with id exists.
func (s *expenseService) UpdateExpenseByID(ctx context.Context, id string, update ExpenseUpdate) (bool, error) {
	if !uuid.IsValid(id) {
		return false, nil
	}

	updates := map[string]interface{}{}
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.Date != nil {
		updates["date"] = update.Date.UTC()
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Comment != nil {
		updates["comment"] = *update.Comment
	}

	if len(updates) == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Expense{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return count > 0, nil
	}

	result := s.db.WithContext(ctx).Model(&models.Expense{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteExpenseByID removes an expense by ID. Ownership is not checked.
func (s *expenseService) DeleteExpenseByID(ctx context.Context, id string) (bool, error) {
	if !uuid.IsValid(id) {
		return false, nil
	}

	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Expense{})
	if result.Error != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *expenseService) list(_ context.Context, query *gorm.DB) ([]models.ExpenseView, error) {
	var expenses []models.Expense
	if err := query.Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]models.ExpenseView, 0, len(expenses))
	for i := range expenses {
		views = append(views, *expenses[i].ToView())
	}
	return views, nil
}
