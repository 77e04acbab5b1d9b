package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/foodlens-project/backend/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) *Store {
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

	return New(db)
}

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func TestInsertProductDeduplicatesOnUPC(t *testing.T) {
	s := setupTestStore(t)

	for i := 0; i < 2; i++ {
		p := models.Product{UPC: "0001", Description: "Sugar", Brand: sptr("Kroger")}
		if err := s.InsertProduct(&p); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}

	var count int64
	if err := s.DB.Model(&models.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one product row per UPC, got %d", count)
	}

	id, err := s.ProductIDByUPC("0001")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if id == 0 {
		t.Errorf("expected nonzero product id")
	}
}

func TestProductIDByUPCNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.ProductIDByUPC("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertItemAllowsDuplicates(t *testing.T) {
	s := setupTestStore(t)

	p := models.Product{UPC: "0002", Description: "Milk"}
	if err := s.InsertProduct(&p); err != nil {
		t.Fatalf("insert product failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		item := models.Item{ProductID: p.ID, LocationID: "store-1", RegularPrice: fptr(3.49)}
		if err := s.InsertItem(&item); err != nil {
			t.Fatalf("insert item %d failed: %v", i, err)
		}
	}

	var count int64
	if err := s.DB.Model(&models.Item{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("items carry no uniqueness constraint; expected 2 rows, got %d", count)
	}
}

func TestInsertMealIgnoresKnownMealID(t *testing.T) {
	s := setupTestStore(t)

	first := models.Meal{MealID: 42, MealName: "Pasta", Calories: fptr(500), ProteinG: fptr(20)}
	written, err := s.InsertMeal(&first)
	if err != nil || !written {
		t.Fatalf("first insert: written=%v err=%v", written, err)
	}

	second := models.Meal{MealID: 42, MealName: "Pasta Again"}
	written, err = s.InsertMeal(&second)
	if err != nil {
		t.Fatalf("second insert errored: %v", err)
	}
	if written {
		t.Errorf("second insert for the same meal_id must be ignored")
	}

	var meal models.Meal
	if err := s.DB.Where("meal_id = ?", 42).First(&meal).Error; err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if meal.MealName != "Pasta" {
		t.Errorf("original row must survive, got name %q", meal.MealName)
	}
}

func TestSnapshotPrices(t *testing.T) {
	s := setupTestStore(t)

	p := models.Product{UPC: "0003", Description: "Eggs"}
	if err := s.InsertProduct(&p); err != nil {
		t.Fatalf("insert product failed: %v", err)
	}
	if err := s.InsertItem(&models.Item{ProductID: p.ID, LocationID: "store-1", RegularPrice: fptr(2.99)}); err != nil {
		t.Fatalf("insert priced item failed: %v", err)
	}
	if err := s.InsertItem(&models.Item{ProductID: p.ID, LocationID: "store-1"}); err != nil {
		t.Fatalf("insert unpriced item failed: %v", err)
	}

	written, err := s.SnapshotPrices("2025-11-20")
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if written != 1 {
		t.Errorf("only priced items are snapshotted; expected 1, got %d", written)
	}

	var history []models.PriceHistory
	if err := s.DB.Find(&history).Error; err != nil {
		t.Fatalf("fetch history failed: %v", err)
	}
	if len(history) != 1 || history[0].Price != 2.99 || history[0].Date != "2025-11-20" {
		t.Errorf("unexpected history rows: %+v", history)
	}

	// Snapshots are append-only: the next call adds rows, never mutates.
	if _, err := s.SnapshotPrices("2025-11-21"); err != nil {
		t.Fatalf("second snapshot failed: %v", err)
	}
	if err := s.DB.Find(&history).Error; err != nil {
		t.Fatalf("fetch history failed: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("expected 2 history rows after two snapshots, got %d", len(history))
	}
}

func TestAveragePriceAndBrandAverages(t *testing.T) {
	s := setupTestStore(t)

	brands := []*string{sptr("BrandA"), sptr("BrandA"), nil}
	prices := []float64{1.00, 2.00, 3.00}
	for i := range brands {
		p := models.Product{UPC: string(rune('a' + i)), Description: "P", Brand: brands[i]}
		if err := s.InsertProduct(&p); err != nil {
			t.Fatalf("insert product failed: %v", err)
		}
		if err := s.InsertItem(&models.Item{ProductID: p.ID, LocationID: "x", RegularPrice: fptr(prices[i])}); err != nil {
			t.Fatalf("insert item failed: %v", err)
		}
	}

	avg, err := s.AveragePrice()
	if err != nil {
		t.Fatalf("average failed: %v", err)
	}
	if avg != 2.0 {
		t.Errorf("expected average 2.0, got %v", avg)
	}

	rows, err := s.BrandAverages()
	if err != nil {
		t.Fatalf("brand averages failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 brand buckets, got %d", len(rows))
	}
	// Ordered cheapest first: BrandA (1.50) then Unknown (3.00)
	if rows[0].Brand != "BrandA" || rows[0].AvgPrice != 1.5 {
		t.Errorf("unexpected first bucket: %+v", rows[0])
	}
	if rows[1].Brand != "Unknown" || rows[1].AvgPrice != 3.0 {
		t.Errorf("nil brands must bucket as Unknown: %+v", rows[1])
	}
}

func TestAveragePriceEmpty(t *testing.T) {
	s := setupTestStore(t)
	if _, err := s.AveragePrice(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on empty store, got %v", err)
	}
}

func TestCuisineAveragesOrdering(t *testing.T) {
	s := setupTestStore(t)

	meals := []models.Meal{
		{MealID: 1, MealName: "A", CuisineType: "Italian", Calories: fptr(600), ProteinG: fptr(20), HealthScore: fptr(30)},
		{MealID: 2, MealName: "B", CuisineType: "Italian", Calories: fptr(400), ProteinG: fptr(30), HealthScore: fptr(50)},
		{MealID: 3, MealName: "C", CuisineType: "Thai", Calories: fptr(350), ProteinG: fptr(25), HealthScore: fptr(70)},
		{MealID: 4, MealName: "D", CuisineType: "Mystery"}, // no calories: excluded
	}
	for i := range meals {
		if _, err := s.InsertMeal(&meals[i]); err != nil {
			t.Fatalf("insert meal failed: %v", err)
		}
	}

	rows, err := s.CuisineAverages()
	if err != nil {
		t.Fatalf("cuisine averages failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 cuisines, got %d", len(rows))
	}
	if rows[0].CuisineType != "Thai" {
		t.Errorf("expected healthiest cuisine first, got %q", rows[0].CuisineType)
	}
	if rows[1].CuisineType != "Italian" || rows[1].AvgCalories != 500 || rows[1].Count != 2 {
		t.Errorf("unexpected Italian aggregate: %+v", rows[1])
	}
}
