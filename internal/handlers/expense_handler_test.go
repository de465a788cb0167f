package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "expensebook/internal/errors"
	"expensebook/internal/models"
	"expensebook/internal/services"
)

const testExpenseID = "0190d1a2-0000-7000-8000-0000000000e1"

// --- mock expense service ---

type mockExpenseService struct {
	createExpenseFn           func(input services.ExpenseInput) (*models.ExpenseView, error)
	getExpenseByIDFn          func(id string) (*models.ExpenseView, error)
	getAllExpensesFn          func(userID string) ([]models.ExpenseView, error)
	getExpensesByCategoryFn   func(userID, category string) ([]models.ExpenseView, error)
	getUserExpensesForMonthFn func(userID, month string, year int) ([]models.ExpenseView, error)
	updateExpenseByIDFn       func(id string, update services.ExpenseUpdate) (bool, error)
	deleteExpenseByIDFn       func(id string) (bool, error)
}

func (m *mockExpenseService) CreateExpense(_ context.Context, input services.ExpenseInput) (*models.ExpenseView, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(input)
	}
	return &models.ExpenseView{ID: testExpenseID, Amount: input.Amount, Category: input.Category, UserID: input.UserID}, nil
}

func (m *mockExpenseService) GetExpenseByID(_ context.Context, id string) (*models.ExpenseView, error) {
	if m.getExpenseByIDFn != nil {
		return m.getExpenseByIDFn(id)
	}
	return nil, nil
}

func (m *mockExpenseService) GetAllExpenses(_ context.Context, userID string) ([]models.ExpenseView, error) {
	if m.getAllExpensesFn != nil {
		return m.getAllExpensesFn(userID)
	}
	return []models.ExpenseView{}, nil
}

func (m *mockExpenseService) GetExpensesByCategory(_ context.Context, userID, category string) ([]models.ExpenseView, error) {
	if m.getExpensesByCategoryFn != nil {
		return m.getExpensesByCategoryFn(userID, category)
	}
	return []models.ExpenseView{}, nil
}

func (m *mockExpenseService) GetUserExpensesForMonth(_ context.Context, userID, month string, year int) ([]models.ExpenseView, error) {
	if m.getUserExpensesForMonthFn != nil {
		return m.getUserExpensesForMonthFn(userID, month, year)
	}
	return []models.ExpenseView{}, nil
}

func (m *mockExpenseService) UpdateExpenseByID(_ context.Context, id string, update services.ExpenseUpdate) (bool, error) {
	if m.updateExpenseByIDFn != nil {
		return m.updateExpenseByIDFn(id, update)
	}
	return false, nil
}

func (m *mockExpenseService) DeleteExpenseByID(_ context.Context, id string) (bool, error) {
	if m.deleteExpenseByIDFn != nil {
		return m.deleteExpenseByIDFn(id)
	}
	return false, nil
}

var _ services.ExpenseServicer = (*mockExpenseService)(nil)

var handlerNow = time.Date(2024, time.March, 20, 15, 0, 0, 0, time.UTC)

func newTestExpenseHandler(expSvc *mockExpenseService, catSvc *mockCategoryService, audit *mockAuditService) *ExpenseHandler {
	h := NewExpenseHandler(expSvc, catSvc, audit)
	h.now = func() time.Time { return handlerNow }
	return h
}

func setupExpenseRouter(handler *ExpenseHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/expenses", handler.GetMonthlyExpenses)
	auth.GET("/expenses/all", handler.GetAllExpenses)
	auth.GET("/expenses/form", handler.GetExpenseForm)
	auth.POST("/expenses", handler.CreateExpense)
	auth.GET("/expenses/:id", handler.GetExpenseByID)
	auth.PATCH("/expenses/:id", handler.UpdateExpense)
	auth.DELETE("/expenses/:id", handler.DeleteExpense)
	return r
}

func TestExpenseHandler_GetMonthlyExpenses(t *testing.T) {
	t.Run("defaults to the current month", func(t *testing.T) {
		var gotMonth string
		var gotYear int
		expSvc := &mockExpenseService{
			getUserExpensesForMonthFn: func(_ string, month string, year int) ([]models.ExpenseView, error) {
				gotMonth, gotYear = month, year
				return []models.ExpenseView{{Amount: 10.001}, {Amount: 5}}, nil
			},
		}
		r := setupExpenseRouter(newTestExpenseHandler(expSvc, &mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/expenses", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotMonth != "Mar" || gotYear != 2024 {
			t.Errorf("expected Mar 2024, got %s %d", gotMonth, gotYear)
		}
		result := parseJSON(t, rec)
		if result["total_expense_amount"].(float64) != 15.01 {
			t.Errorf("expected total 15.01, got %v", result["total_expense_amount"])
		}
		if result["currency"] != "EUR" {
			t.Errorf("expected EUR, got %v", result["currency"])
		}
		if result["next"] != nil {
			t.Errorf("expected no next link for the current month, got %v", result["next"])
		}
		previous := result["previous"].(map[string]interface{})
		if previous["query"] != "?month=Feb&year=2024" {
			t.Errorf("unexpected previous link %v", previous)
		}
	})

	t.Run("first browsable month has no previous", func(t *testing.T) {
		r := setupExpenseRouter(newTestExpenseHandler(&mockExpenseService{}, &mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/expenses?month=Jan&year=2024", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["previous"] != nil {
			t.Errorf("expected no previous link, got %v", result["previous"])
		}
		next := result["next"].(map[string]interface{})
		if next["month"] != "Feb" {
			t.Errorf("unexpected next link %v", next)
		}
	})

	t.Run("returns 400 on invalid month", func(t *testing.T) {
		r := setupExpenseRouter(newTestExpenseHandler(&mockExpenseService{}, &mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/expenses?month=March&year=2023", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		fields := errorFields(t, parseJSON(t, rec))
		if fields["month"] != "Invalid month" || fields["year"] == nil {
			t.Errorf("unexpected field messages %v", fields)
		}
	})
}

func TestExpenseHandler_GetAllExpenses(t *testing.T) {
	var byCategory string
	expSvc := &mockExpenseService{
		getExpensesByCategoryFn: func(_, category string) ([]models.ExpenseView, error) {
			byCategory = category
			return []models.ExpenseView{{ID: "x"}}, nil
		},
	}
	r := setupExpenseRouter(newTestExpenseHandler(expSvc, &mockCategoryService{}, &mockAuditService{}))

	rec := doRequest(r, "GET", "/expenses/all?category=Food", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if byCategory != "Food" {
		t.Errorf("expected category filter Food, got %q", byCategory)
	}
}

func TestExpenseHandler_GetExpenseForm(t *testing.T) {
	r := setupExpenseRouter(newTestExpenseHandler(&mockExpenseService{}, &mockCategoryService{}, &mockAuditService{}))

	rec := doRequest(r, "GET", "/expenses/form?redirect_to=%2Fexpenses%3Fmonth%3DFeb%26year%3D2024", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["default_date"] != "2024-02-20" {
		t.Errorf("expected default date 2024-02-20, got %v", result["default_date"])
	}
	if result["max_date"] != "2024-03-20" {
		t.Errorf("expected max date 2024-03-20, got %v", result["max_date"])
	}
	if years := result["year_options"].([]interface{}); len(years) != 31 {
		t.Errorf("expected 31 year options, got %d", len(years))
	}
}

func TestExpenseHandler_CreateExpense(t *testing.T) {
	t.Run("returns 201", func(t *testing.T) {
		var got services.ExpenseInput
		expSvc := &mockExpenseService{
			createExpenseFn: func(input services.ExpenseInput) (*models.ExpenseView, error) {
				got = input
				return &models.ExpenseView{ID: testExpenseID, Amount: input.Amount}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupExpenseRouter(newTestExpenseHandler(expSvc, &mockCategoryService{}, audit))

		rec := doRequest(r, "POST", "/expenses", `{"amount":"12.50","date":"2024-02-14","category":"Food"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Amount != 12.5 || got.UserID != testUserID || got.Category != "Food" {
			t.Errorf("unexpected input %+v", got)
		}
		if got.Date == nil || !got.Date.Equal(time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected date %v", got.Date)
		}
		if parseJSON(t, rec)["redirect_to"] != "/expenses" {
			t.Error("expected default redirect")
		}
		if len(audit.calls) != 1 {
			t.Errorf("expected one audit entry, got %+v", audit.calls)
		}
	})

	t.Run("blank date is left to the store", func(t *testing.T) {
		var got services.ExpenseInput
		expSvc := &mockExpenseService{
			createExpenseFn: func(input services.ExpenseInput) (*models.ExpenseView, error) {
				got = input
				return &models.ExpenseView{ID: testExpenseID}, nil
			},
		}
		r := setupExpenseRouter(newTestExpenseHandler(expSvc, &mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/expenses", `{"amount":3,"date":"","category":"Food","redirect_to":"/expenses?month=Feb&year=2024"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Date != nil {
			t.Errorf("expected nil date, got %v", got.Date)
		}
		if parseJSON(t, rec)["redirect_to"] != "/expenses?month=Feb&year=2024" {
			t.Error("expected redirect to be echoed")
		}
	})

	t.Run("returns 400 with field messages", func(t *testing.T) {
		r := setupExpenseRouter(newTestExpenseHandler(&mockExpenseService{}, &mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/expenses", `{"amount":"abc","date":"tomorrow","category":"Food"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		fields := errorFields(t, parseJSON(t, rec))
		if fields["amount"] == nil || fields["date"] == nil {
			t.Errorf("expected amount and date messages, got %v", fields)
		}
	})

	t.Run("returns 400 on missing category", func(t *testing.T) {
		r := setupExpenseRouter(newTestExpenseHandler(&mockExpenseService{}, &mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/expenses", `{"amount":"1"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if errorFields(t, parseJSON(t, rec))["category"] != "Required" {
			t.Error("expected category Required")
		}
	})
}

func TestExpenseHandler_GetExpenseByID(t *testing.T) {
	t.Run("returns 404 when absent", func(t *testing.T) {
		r := setupExpenseRouter(newTestExpenseHandler(&mockExpenseService{}, &mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/expenses/"+testExpenseID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "EXPENSE_NOT_FOUND")
	})

	t.Run("returns 500 on store error", func(t *testing.T) {
		expSvc := &mockExpenseService{
			getExpenseByIDFn: func(string) (*models.ExpenseView, error) {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, errors.New("timeout"))
			},
		}
		r := setupExpenseRouter(newTestExpenseHandler(expSvc, &mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/expenses/"+testExpenseID, "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_UpdateExpense(t *testing.T) {
	t.Run("returns 200 with the updated expense", func(t *testing.T) {
		var got services.ExpenseUpdate
		expSvc := &mockExpenseService{
			updateExpenseByIDFn: func(_ string, update services.ExpenseUpdate) (bool, error) {
				got = update
				return true, nil
			},
			getExpenseByIDFn: func(id string) (*models.ExpenseView, error) {
				return &models.ExpenseView{ID: id, Amount: 20}, nil
			},
		}
		r := setupExpenseRouter(newTestExpenseHandler(expSvc, &mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "PATCH", "/expenses/"+testExpenseID, `{"amount":20}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Amount == nil || *got.Amount != 20 || got.Category != nil || got.Date != nil {
			t.Errorf("unexpected update %+v", got)
		}
	})

	t.Run("returns 404 when absent", func(t *testing.T) {
		r := setupExpenseRouter(newTestExpenseHandler(&mockExpenseService{}, &mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "PATCH", "/expenses/"+testExpenseID, `{"category":"Food"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad date", func(t *testing.T) {
		r := setupExpenseRouter(newTestExpenseHandler(&mockExpenseService{}, &mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "PATCH", "/expenses/"+testExpenseID, `{"date":""}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_DeleteExpense(t *testing.T) {
	t.Run("missing is still a success", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupExpenseRouter(newTestExpenseHandler(&mockExpenseService{}, &mockCategoryService{}, audit))

		rec := doRequest(r, "DELETE", "/expenses/"+testExpenseID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["deleted"] != false {
			t.Error("expected deleted=false")
		}
		if len(audit.calls) != 0 {
			t.Errorf("expected no audit entry, got %+v", audit.calls)
		}
	})

	t.Run("deleted", func(t *testing.T) {
		expSvc := &mockExpenseService{
			deleteExpenseByIDFn: func(string) (bool, error) { return true, nil },
		}
		audit := &mockAuditService{}
		r := setupExpenseRouter(newTestExpenseHandler(expSvc, &mockCategoryService{}, audit))

		rec := doRequest(r, "DELETE", "/expenses/"+testExpenseID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["deleted"] != true {
			t.Error("expected deleted=true")
		}
		if len(audit.calls) != 1 {
			t.Errorf("expected one audit entry, got %+v", audit.calls)
		}
	})
}
