package services

import (
	"path/filepath"
	"testing"

	"github.com/foodlens-project/backend/internal/kroger"
	"github.com/foodlens-project/backend/internal/models"
	"github.com/foodlens-project/backend/internal/spoonacular"
	"github.com/foodlens-project/backend/internal/store"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Item{}, &models.PriceHistory{}, &models.Meal{}); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return store.New(db)
}

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func groceryRecord(upc, desc string, price float64, size string) kroger.CleanProduct {
	return kroger.CleanProduct{
		UPC:          upc,
		Description:  desc,
		RegularPrice: fptr(price),
		Size:         sptr(size),
	}
}

func TestIngestProductsDeduplicatesProducts(t *testing.T) {
	st := setupTestStore(t)
	svc := NewIngestService(st)

	records := []kroger.CleanProduct{
		groceryRecord("0001", "Sugar", 2.50, "16 oz"),
		groceryRecord("0001", "Sugar", 2.50, "16 oz"),
	}

	inserted := svc.IngestProducts(records, "store-1", 25)
	if inserted != 2 {
		t.Errorf("both records insert an item, expected count 2, got %d", inserted)
	}

	var productCount, itemCount int64
	st.DB.Model(&models.Product{}).Count(&productCount)
	st.DB.Model(&models.Item{}).Count(&itemCount)

	if productCount != 1 {
		t.Errorf("same UPC twice must yield exactly one product row, got %d", productCount)
	}
	if itemCount != 2 {
		t.Errorf("items accumulate, expected 2 rows, got %d", itemCount)
	}
}

func TestIngestProductsHonorsCap(t *testing.T) {
	st := setupTestStore(t)
	svc := NewIngestService(st)

	var records []kroger.CleanProduct
	for i := 0; i < 10; i++ {
		records = append(records, groceryRecord(string(rune('a'+i)), "Product", 1.00, "1 oz"))
	}

	inserted := svc.IngestProducts(records, "store-1", 3)
	if inserted != 3 {
		t.Errorf("cap of 3 must insert exactly 3, got %d", inserted)
	}

	var itemCount int64
	st.DB.Model(&models.Item{}).Count(&itemCount)
	if itemCount != 3 {
		t.Errorf("expected 3 item rows, got %d", itemCount)
	}
}

func TestIngestProductsSkipsMissingPrice(t *testing.T) {
	st := setupTestStore(t)
	svc := NewIngestService(st)

	records := []kroger.CleanProduct{
		{UPC: "0001", Description: "No Price"},
		groceryRecord("0002", "Priced", 1.99, "8 oz"),
	}

	inserted := svc.IngestProducts(records, "store-1", 25)
	if inserted != 1 {
		t.Errorf("priceless records are skipped and do not count, got %d", inserted)
	}

	var productCount int64
	st.DB.Model(&models.Product{}).Count(&productCount)
	if productCount != 1 {
		t.Errorf("skipped record must not create a product, got %d rows", productCount)
	}
}

func mealRecord(id int64, name string, calories, protein float64) spoonacular.CleanMeal {
	return spoonacular.CleanMeal{
		MealID:      id,
		MealName:    name,
		Calories:    fptr(calories),
		ProteinG:    fptr(protein),
		CuisineType: "Unknown",
		DietLabels:  "None",
	}
}

func TestIngestMealsSkipsMissingNutrition(t *testing.T) {
	st := setupTestStore(t)
	svc := NewIngestService(st)

	records := []spoonacular.CleanMeal{
		{MealID: 1, MealName: "No Calories", ProteinG: fptr(10)},
		{MealID: 2, MealName: "No Protein", Calories: fptr(300)},
		mealRecord(3, "Complete", 500, 25),
	}

	inserted := svc.IngestMeals(records, 25)
	if inserted != 1 {
		t.Errorf("meals missing calories or protein are skipped, got %d", inserted)
	}
}

func TestIngestMealsCapAndDuplicates(t *testing.T) {
	st := setupTestStore(t)
	svc := NewIngestService(st)

	records := []spoonacular.CleanMeal{
		mealRecord(1, "Pasta", 500, 20),
		mealRecord(1, "Pasta", 500, 20), // same upstream id: ignored by the store but still handled
		mealRecord(2, "Salad", 200, 8),
		mealRecord(3, "Soup", 300, 12),
	}

	inserted := svc.IngestMeals(records, 3)
	if inserted != 3 {
		t.Errorf("cap of 3 stops before the fourth record, got %d", inserted)
	}

	var mealCount int64
	st.DB.Model(&models.Meal{}).Count(&mealCount)
	if mealCount != 2 {
		t.Errorf("duplicate meal_id must not create a second row, got %d", mealCount)
	}
}

func TestSnapshotPricesStampsToday(t *testing.T) {
	st := setupTestStore(t)
	svc := NewIngestService(st)

	svc.IngestProducts([]kroger.CleanProduct{groceryRecord("0001", "Milk", 3.49, "1 gal")}, "store-1", 25)

	written, err := svc.SnapshotPrices()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if written != 1 {
		t.Errorf("expected 1 snapshot row, got %d", written)
	}

	var history []models.PriceHistory
	if err := st.DB.Find(&history).Error; err != nil {
		t.Fatalf("fetch history failed: %v", err)
	}
	if len(history) != 1 || history[0].Price != 3.49 || len(history[0].Date) != 10 {
		t.Errorf("unexpected history rows: %+v", history)
	}
}
