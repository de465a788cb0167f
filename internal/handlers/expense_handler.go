package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"expensebook/internal/calendar"
	apperrors "expensebook/internal/errors"
	"expensebook/internal/models"
	"expensebook/internal/pagination"
	"expensebook/internal/services"
	"expensebook/internal/validator"
)

// Currency is the currency every amount is reported in.
const Currency = "EUR"

const defaultRedirect = "/expenses"

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService  services.ExpenseServicer
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
	now             func() time.Time
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, categoryService services.CategoryServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService:  expenseService,
		categoryService: categoryService,
		auditService:    auditService,
		now:             time.Now,
	}
}

// MonthQuery selects the month to summarize. Missing values default to the
// current month and year.
type MonthQuery struct {
	Month string `form:"month" binding:"omitempty,month_short"`
	Year  int    `form:"year" binding:"omitempty,gte=2024,lt=2050"`
}

// CreateExpenseRequest represents the request payload for creating an expense
type CreateExpenseRequest struct {
	Amount     validator.Amount `json:"amount" binding:"required" swaggertype:"string" example:"12.50"`
	Date       string           `json:"date" example:"2024-02-14"`
	Category   string           `json:"category" binding:"required"`
	Comment    *string          `json:"comment"`
	RedirectTo string           `json:"redirect_to"`
}

// UpdateExpenseRequest represents the request payload for updating an
// expense. Omitted fields keep their value.
type UpdateExpenseRequest struct {
	Amount   *validator.Amount `json:"amount" swaggertype:"string"`
	Date     *string           `json:"date"`
	Category *string           `json:"category" binding:"omitempty,min=1"`
	Comment  *string           `json:"comment"`
}

// MonthlyExpensesResponse is the monthly summary of a user's expenses.
type MonthlyExpensesResponse struct {
	Expenses           []models.ExpenseView `json:"expenses"`
	TotalExpenseAmount float64              `json:"total_expense_amount"`
	Currency           string               `json:"currency"`
	Month              string               `json:"month"`
	Year               int                  `json:"year"`
	Previous           *pagination.MonthRef `json:"previous"`
	Next               *pagination.MonthRef `json:"next"`
}

// ExpenseFormResponse holds what a new-expense form is rendered with.
type ExpenseFormResponse struct {
	Categories  []models.CategoryView `json:"categories"`
	DefaultDate string                `json:"default_date"`
	MaxDate     string                `json:"max_date"`
	YearOptions []int                 `json:"year_options"`
	RedirectTo  string                `json:"redirect_to"`
}

// GetMonthlyExpenses returns one month of the user's expenses with its total
// and the neighbouring months.
// @Summary     Monthly expenses
// @Description Get the user's expenses for a month, newest first, with the total and navigation
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month abbreviation (Jan-Dec)"
// @Param       year  query int    false "Year (2024-2049)"
// @Success     200 {object} MonthlyExpensesResponse "Monthly summary"
// @Failure     400 {object} ErrorResponse "Invalid month or year"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetMonthlyExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	now := h.now()
	month, year := q.Month, q.Year
	if month == "" {
		month = calendar.MonthNameOf(now)
	}
	if year == 0 {
		year = now.Year()
	}

	expenses, err := h.expenseService.GetUserExpensesForMonth(c.Request.Context(), userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	window, err := pagination.NewWindow(month, year, now, pagination.DefaultFloor(now.Location()))
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidMonth, err))
		return
	}

	c.JSON(http.StatusOK, MonthlyExpensesResponse{
		Expenses:           expenses,
		TotalExpenseAmount: services.TotalAmount(expenses),
		Currency:           Currency,
		Month:              month,
		Year:               year,
		Previous:           window.Previous,
		Next:               window.Next,
	})
}

// GetAllExpenses returns every expense of the user
// @Summary     List expenses
// @Description Get all of the user's expenses, newest first, optionally for one category name
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Exact category name"
// @Success     200 {object} map[string][]models.ExpenseView "Expenses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/all [get]
func (h *ExpenseHandler) GetAllExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var expenses []models.ExpenseView
	if category := c.Query("category"); category != "" {
		expenses, err = h.expenseService.GetExpensesByCategory(c.Request.Context(), userID, category)
	} else {
		expenses, err = h.expenseService.GetAllExpenses(c.Request.Context(), userID)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// GetExpenseForm returns the data a new-expense form needs
// @Summary     New expense form
// @Description Categories and date defaults for the new-expense form. redirect_to is the page the form returns to; its month and year pick the default date.
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       redirect_to query string false "Return location, e.g. /expenses?month=Feb&year=2024"
// @Success     200 {object} ExpenseFormResponse "Form data"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/form [get]
func (h *ExpenseHandler) GetExpenseForm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.GetAllCategories(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	redirectTo := c.Query("redirect_to")
	var month, year string
	if _, rawQuery, found := strings.Cut(redirectTo, "?"); found {
		if values, err := url.ParseQuery(rawQuery); err == nil {
			month, year = values.Get("month"), values.Get("year")
		}
	}

	now := h.now()
	c.JSON(http.StatusOK, ExpenseFormResponse{
		Categories:  categories,
		DefaultDate: calendar.DefaultFormDate(month, year, now),
		MaxDate:     now.UTC().Format(calendar.DateLayout),
		YearOptions: calendar.YearOptions(),
		RedirectTo:  redirectTo,
	})
}

// CreateExpense handles the creation of a new expense
// @Summary     Create an expense
// @Description Record an expense for the authenticated user. A blank date means now.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} map[string]interface{} "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	fields := map[string]string{}
	amount, err := req.Amount.Float64()
	if err != nil {
		fields["amount"] = "Expected number"
	}
	date, err := validator.ParseDate(req.Date)
	if err != nil {
		fields["date"] = "Invalid date"
	}
	if len(fields) > 0 {
		respondWithError(c, apperrors.WithFields(apperrors.ErrInvalidInput, fields))
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), services.ExpenseInput{
		UserID:   userID,
		Amount:   amount,
		Category: req.Category,
		Date:     date,
		Comment:  req.Comment,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditActionCreate, services.AuditResourceExpense, expense.ID, c.ClientIP(),
		map[string]interface{}{"amount": expense.Amount, "category": expense.Category})

	redirectTo := req.RedirectTo
	if redirectTo == "" {
		redirectTo = defaultRedirect
	}
	c.JSON(http.StatusCreated, gin.H{"expense": expense, "redirect_to": redirectTo})
}

// GetExpenseByID returns a specific expense
// @Summary     Get expense by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.ExpenseView "Expense details"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if expense == nil {
		respondWithError(c, apperrors.ErrExpenseNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense updates an expense
// @Summary     Update an expense
// @Description Replace the supplied fields of an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to change"
// @Success     200 {object} models.ExpenseView "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [patch]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	update, fields := req.toUpdate()
	if len(fields) > 0 {
		respondWithError(c, apperrors.WithFields(apperrors.ErrInvalidInput, fields))
		return
	}

	matched, err := h.expenseService.UpdateExpenseByID(c.Request.Context(), id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !matched {
		respondWithError(c, apperrors.ErrExpenseNotFound)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if expense == nil {
		respondWithError(c, apperrors.ErrExpenseNotFound)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditActionUpdate, services.AuditResourceExpense, id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

func (r UpdateExpenseRequest) toUpdate() (services.ExpenseUpdate, map[string]string) {
	update := services.ExpenseUpdate{Category: r.Category, Comment: r.Comment}
	fields := map[string]string{}

	if r.Amount != nil {
		amount, err := r.Amount.Float64()
		if err != nil {
			fields["amount"] = "Expected number"
		} else {
			update.Amount = &amount
		}
	}
	if r.Date != nil {
		date, err := validator.ParseDate(*r.Date)
		if err != nil || date == nil {
			fields["date"] = "Invalid date"
		} else {
			update.Date = date
		}
	}
	return update, fields
}

// DeleteExpense deletes an expense
// @Summary     Delete an expense
// @Description Delete an expense by ID. Deleting a missing expense succeeds with deleted=false.
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} map[string]bool "Deletion result"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	deleted, err := h.expenseService.DeleteExpenseByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if deleted {
		h.auditService.Log(c.Request.Context(), userID, services.AuditActionDelete, services.AuditResourceExpense, id, c.ClientIP(), nil)
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
