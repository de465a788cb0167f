package services

import (
	"math"

	"expensebook/internal/models"
)

// TotalAmount sums the amounts of expenses and rounds the result up to the
// next cent. An empty list totals 0.
func TotalAmount(expenses []models.ExpenseView) float64 {
	var sum float64
	for _, e := range expenses {
		sum += e.Amount
	}
	return math.Ceil(sum*100) / 100
}
