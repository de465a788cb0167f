package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "expensebook/internal/errors"
	"expensebook/internal/models"
	"expensebook/internal/uuid"
)

// categoryService handles category storage.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory stores a new category. A nil CreatedByUserID makes it global.
func (s *categoryService) CreateCategory(ctx context.Context, input CategoryInput) (*models.CategoryView, error) {
	if input.Name == "" {
		return nil, apperrors.WithFields(apperrors.ErrInvalidInput, map[string]string{"name": "Required"})
	}

	category := &models.Category{
		Name:            input.Name,
		Description:     input.Description,
		CreatedByUserID: input.CreatedByUserID,
	}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category.ToView(), nil
}

// GetCategoryByID retrieves a category by ID regardless of its owner
func (s *categoryService) GetCategoryByID(ctx context.Context, id string) (*models.CategoryView, error) {
	if !uuid.IsValid(id) {
		return nil, nil
	}

	var category models.Category
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category.ToView(), nil
}

// GetAllCategories returns the global categories plus the ones userID
// created, in store order.
func (s *categoryService) GetAllCategories(ctx context.Context, userID string) ([]models.CategoryView, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).
		Where("created_by_user_id IS NULL OR created_by_user_id = ?", userID).
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]models.CategoryView, 0, len(categories))
	for i := range categories {
		views = append(views, *categories[i].ToView())
	}
	return views, nil
}

// DeleteCategoryByID removes a category by ID. Ownership is not checked, and
// expenses filed under the category's name are left untouched.
func (s *categoryService) DeleteCategoryByID(ctx context.Context, id string) (bool, error) {
	if !uuid.IsValid(id) {
		return false, nil
	}

	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	if result.Error != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SeedGlobalCategories inserts defs as global categories unless at least one
// global category already exists. It returns how many were inserted.
func (s *categoryService) SeedGlobalCategories(ctx context.Context, defs []CategoryInput) (int, error) {
	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("created_by_user_id IS NULL").
		Count(&existing).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if existing > 0 || len(defs) == 0 {
		return 0, nil
	}

	categories := make([]models.Category, 0, len(defs))
	for _, def := range defs {
		categories = append(categories, models.Category{
			Name:        def.Name,
			Description: def.Description,
		})
	}

	if err := s.db.WithContext(ctx).Create(&categories).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return len(categories), nil
}

// PredefinedCategories are the global categories a fresh installation starts with.
func PredefinedCategories() []CategoryInput {
	describe := func(s string) *string { return &s }
	return []CategoryInput{
		{Name: "Housing", Description: describe("Expenses related to rent and utilities for your residence.")},
		{Name: "Food", Description: describe("Expenses related to groceries and dining out.")},
		{Name: "Healthcare", Description: describe("Medical expenses including insurance, prescriptions, and doctor visits.")},
		{Name: "Transportation", Description: describe("Costs associated with commuting and travel.")},
		{Name: "Family Support", Description: describe("Financial assistance provided to family members.")},
		{Name: "Education", Description: describe("Tuition fees, books, and other educational expenses.")},
		{Name: "Personal", Description: describe("Spending on entertainment, hobbies, and personal items like clothing.")},
	}
}
