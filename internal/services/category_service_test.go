package services

import (
	"context"
	"testing"
	"time"

	"expensebook/internal/models"
	"expensebook/internal/testutil"
	"expensebook/internal/uuid"
)

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("owned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		desc := "Food shopping"
		cat, err := svc.CreateCategory(ctx, CategoryInput{Name: "Groceries", Description: &desc, CreatedByUserID: &user.ID})
		testutil.AssertNoError(t, err)

		if !uuid.IsValid(cat.ID) {
			t.Fatalf("expected UUID category ID, got %q", cat.ID)
		}
		if cat.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %s", cat.Name)
		}
		if cat.Description == nil || *cat.Description != "Food shopping" {
			t.Errorf("expected description 'Food shopping', got %v", cat.Description)
		}
		if cat.CreatedByUserID == nil || *cat.CreatedByUserID != user.ID {
			t.Errorf("expected owner %s, got %v", user.ID, cat.CreatedByUserID)
		}
	})

	t.Run("global", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cat, err := svc.CreateCategory(ctx, CategoryInput{Name: "Housing"})
		testutil.AssertNoError(t, err)
		if cat.CreatedByUserID != nil {
			t.Errorf("expected global category, got owner %v", *cat.CreatedByUserID)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory(ctx, CategoryInput{})
		testutil.AssertFieldError(t, err, "name", "Required")
	})

	t.Run("duplicate_names_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(ctx, CategoryInput{Name: "Food", CreatedByUserID: &user.ID})
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory(ctx, CategoryInput{Name: "Food", CreatedByUserID: &user.ID})
		testutil.AssertNoError(t, err)
	})
}

func TestGetAllCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("global_plus_own", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		global := testutil.CreateTestGlobalCategory(t, db)
		own := testutil.CreateTestCategory(t, db, user1.ID)
		other := testutil.CreateTestCategory(t, db, user2.ID)

		result, err := svc.GetAllCategories(ctx, user1.ID)
		testutil.AssertNoError(t, err)

		ids := map[string]bool{}
		for _, c := range result {
			ids[c.ID] = true
		}
		if len(result) != 2 || !ids[global.ID] || !ids[own.ID] {
			t.Errorf("expected global and own categories, got %+v", result)
		}
		if ids[other.ID] {
			t.Error("category of another user should not be visible")
		}
	})

	t.Run("empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		result, err := svc.GetAllCategories(ctx, user.ID)
		testutil.AssertNoError(t, err)
		if result == nil || len(result) != 0 {
			t.Errorf("expected empty non-nil list, got %v", result)
		}
	})
}

func TestGetCategoryByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found_regardless_of_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		owner := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, owner.ID)

		result, err := svc.GetCategoryByID(ctx, cat.ID)
		testutil.AssertNoError(t, err)
		if result == nil || result.Name != cat.Name {
			t.Fatalf("expected %s, got %+v", cat.Name, result)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		result, err := svc.GetCategoryByID(ctx, uuid.New())
		testutil.AssertNoError(t, err)
		if result != nil {
			t.Errorf("expected nil, got %+v", result)
		}
	})
}

func TestDeleteCategoryByID(t *testing.T) {
	ctx := context.Background()

	t.Run("existing_leaves_expenses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)
		expense := testutil.CreateTestExpense(t, db, user.ID, cat.Name, 5, time.Now())

		deleted, err := svc.DeleteCategoryByID(ctx, cat.ID)
		testutil.AssertNoError(t, err)
		if !deleted {
			t.Fatal("expected category to be deleted")
		}

		result, err := svc.GetCategoryByID(ctx, cat.ID)
		testutil.AssertNoError(t, err)
		if result != nil {
			t.Errorf("expected category to be gone, got %+v", result)
		}

		var count int64
		db.Model(&models.Expense{}).Where("id = ?", expense.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected expense to survive category deletion, got count %d", count)
		}
	})

	t.Run("missing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		deleted, err := svc.DeleteCategoryByID(ctx, uuid.New())
		testutil.AssertNoError(t, err)
		if deleted {
			t.Error("expected nothing to be deleted")
		}
	})
}

func TestSeedGlobalCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("empty_store", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		inserted, err := svc.SeedGlobalCategories(ctx, PredefinedCategories())
		testutil.AssertNoError(t, err)
		if inserted != 7 {
			t.Errorf("expected 7 seeded categories, got %d", inserted)
		}

		user := testutil.CreateTestUser(t, db)
		all, err := svc.GetAllCategories(ctx, user.ID)
		testutil.AssertNoError(t, err)
		if len(all) != 7 {
			t.Errorf("expected 7 visible categories, got %d", len(all))
		}
	})

	t.Run("second_run_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.SeedGlobalCategories(ctx, PredefinedCategories())
		testutil.AssertNoError(t, err)
		inserted, err := svc.SeedGlobalCategories(ctx, PredefinedCategories())
		testutil.AssertNoError(t, err)
		if inserted != 0 {
			t.Errorf("expected no inserts on second run, got %d", inserted)
		}
	})

	t.Run("owned_categories_do_not_block", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestCategory(t, db, user.ID)

		inserted, err := svc.SeedGlobalCategories(ctx, PredefinedCategories())
		testutil.AssertNoError(t, err)
		if inserted != 7 {
			t.Errorf("expected 7 seeded categories, got %d", inserted)
		}
	})
}
