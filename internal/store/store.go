/**
 * @description
 * Persistence layer over the SQLite database.
 * Owns the deduplicating inserts, the price snapshot routine, and the read
 * queries the aggregator is built on.
 *
 * @dependencies
 * - gorm.io/gorm
 * - gorm.io/gorm/clause: ON CONFLICT DO NOTHING upserts
 * - backend/internal/models
 */

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/foodlens-project/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("not found")
	// ErrInconsistent is returned when a lookup fails right after a
	// supposedly successful insert. Fatal for that record, not the batch.
	ErrInconsistent = errors.New("store inconsistency")
)

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// InsertProduct inserts a product row, silently doing nothing when the UPC
// already exists.
func (s *Store) InsertProduct(p *models.Product) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "upc"}},
		DoNothing: true,
	}).Create(p).Error
}

// ProductIDByUPC resolves a UPC to its product id
func (s *Store) ProductIDByUPC(upc string) (uint, error) {
	var product models.Product
	err := s.DB.Select("id").Where("upc = ?", upc).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: upc %s", ErrNotFound, upc)
	}
	if err != nil {
		return 0, err
	}
	return product.ID, nil
}

// InsertItem appends an item row. Items carry no uniqueness constraint:
// repeated ingestion runs against the same location keep appending rows
// rather than updating them (intentionally preserved behavior).
func (s *Store) InsertItem(item *models.Item) error {
	return s.DB.Create(item).Error
}

// InsertMeal inserts a meal row, silently doing nothing when the upstream
// meal id already exists. The bool reports whether a row was actually written.
func (s *Store) InsertMeal(m *models.Meal) (bool, error) {
	result := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "meal_id"}},
		DoNothing: true,
	}).Create(m)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SnapshotPrices appends one price_history row per item with a known regular
// price, stamped with the given date. Returns the number of rows written.
func (s *Store) SnapshotPrices(date string) (int, error) {
	var items []models.Item
	if err := s.DB.Where("regular_price IS NOT NULL").Find(&items).Error; err != nil {
		return 0, err
	}

	written := 0
	for _, item := range items {
		entry := models.PriceHistory{
			ProductID: item.ProductID,
			Price:     *item.RegularPrice,
			Date:      date,
		}
		if err := s.DB.Create(&entry).Error; err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// PricedItem is one product+item join row used for price-per-unit input
type PricedItem struct {
	Description  string   `json:"description"`
	Size         *string  `json:"size"`
	RegularPrice *float64 `json:"regular_price"`
}

// PricedItems joins products and items in insertion order
func (s *Store) PricedItems() ([]PricedItem, error) {
	var rows []PricedItem
	err := s.DB.Model(&models.Item{}).
		Select("products.description, items.size, items.regular_price").
		Joins("JOIN products ON products.id = items.product_id").
		Order("items.id").
		Scan(&rows).Error
	return rows, err
}

// AveragePrice returns the mean of all known regular prices.
// ErrNotFound when no item has a price yet.
func (s *Store) AveragePrice() (float64, error) {
	var avg sql.NullFloat64
	err := s.DB.Model(&models.Item{}).
		Select("AVG(regular_price)").
		Where("regular_price IS NOT NULL").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, fmt.Errorf("%w: no priced items", ErrNotFound)
	}
	return avg.Float64, nil
}

// BrandAverage is the mean regular price for one brand bucket
type BrandAverage struct {
	Brand    string  `json:"brand"`
	AvgPrice float64 `json:"avg_price"`
}

// BrandAverages groups mean regular price by brand, cheapest brand first.
// Products without a brand land in the "Unknown" bucket.
func (s *Store) BrandAverages() ([]BrandAverage, error) {
	var rows []BrandAverage
	err := s.DB.Model(&models.Item{}).
		Select("COALESCE(products.brand, 'Unknown') AS brand, AVG(items.regular_price) AS avg_price").
		Joins("JOIN products ON products.id = items.product_id").
		Where("items.regular_price IS NOT NULL").
		Group("COALESCE(products.brand, 'Unknown')").
		Order("avg_price ASC").
		Scan(&rows).Error
	return rows, err
}

// StockCount is the number of items at one availability level
type StockCount struct {
	StockLevel string `json:"stock_level"`
	Count      int64  `json:"count"`
}

// StockLevelCounts groups items by availability
func (s *Store) StockLevelCounts() ([]StockCount, error) {
	var rows []StockCount
	err := s.DB.Model(&models.Item{}).
		Select("stock_level, COUNT(*) AS count").
		Where("stock_level IS NOT NULL").
		Group("stock_level").
		Scan(&rows).Error
	return rows, err
}

// MealsWithNutrition returns meals that carry the mandatory macro fields
func (s *Store) MealsWithNutrition() ([]models.Meal, error) {
	var meals []models.Meal
	err := s.DB.
		Where("calories IS NOT NULL AND protein_g IS NOT NULL").
		Order("id").
		Find(&meals).Error
	return meals, err
}

// CuisineAverage is the mean nutrition profile of one cuisine
type CuisineAverage struct {
	CuisineType    string  `json:"cuisine_type"`
	AvgCalories    float64 `json:"avg_calories"`
	AvgProtein     float64 `json:"avg_protein"`
	AvgHealthScore float64 `json:"avg_health_score"`
	Count          int64   `json:"count"`
}

// CuisineAverages groups mean calories/protein/health score by cuisine,
// healthiest cuisine first. Restricted to meals with known calories.
func (s *Store) CuisineAverages() ([]CuisineAverage, error) {
	var rows []CuisineAverage
	err := s.DB.Model(&models.Meal{}).
		Select("cuisine_type, AVG(calories) AS avg_calories, AVG(protein_g) AS avg_protein, AVG(health_score) AS avg_health_score, COUNT(*) AS count").
		Where("calories IS NOT NULL").
		Group("cuisine_type").
		Order("avg_health_score DESC").
		Scan(&rows).Error
	return rows, err
}
