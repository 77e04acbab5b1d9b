/**
 * @description
 * Ingestion pipeline service.
 * Takes cleaned records, upserts them into the store under an insertion cap,
 * and reports how many rows actually landed. Every per-record failure is an
 * explicit skip, never a batch abort.
 *
 * @dependencies
 * - backend/internal/store
 * - backend/internal/models
 * - backend/internal/kroger, backend/internal/spoonacular (cleaned row types)
 * - github.com/google/uuid: run identifiers
 */

package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/foodlens-project/backend/internal/kroger"
	"github.com/foodlens-project/backend/internal/logger"
	"github.com/foodlens-project/backend/internal/models"
	"github.com/foodlens-project/backend/internal/spoonacular"
	"github.com/foodlens-project/backend/internal/store"
	"github.com/google/uuid"
)

// SkipReason classifies why a record was not inserted
type SkipReason string

const (
	SkipMissingPrice     SkipReason = "missing_price"
	SkipMissingNutrition SkipReason = "missing_nutrition"
	SkipStoreError       SkipReason = "store_error"
)

// RecordResult is the per-record outcome of an ingestion attempt.
// Skip-and-log is an explicit branch here, not an exception path.
type RecordResult struct {
	Label    string
	Inserted bool
	Reason   SkipReason
	Err      error
}

type IngestService struct {
	Store *store.Store
	RunID uuid.UUID
}

func NewIngestService(st *store.Store) *IngestService {
	return &IngestService{
		Store: st,
		RunID: uuid.New(),
	}
}

// IngestProducts inserts cleaned grocery records until `cap` insertions are
// reached or the input is exhausted. The cap is checked before each record,
// so a batch may stop mid-list; callers loop across search terms accumulating
// toward the overall target. Returns the count actually inserted.
func (s *IngestService) IngestProducts(cleaned []kroger.CleanProduct, locationID string, cap int) int {
	inserted := 0

	for _, record := range cleaned {
		if inserted >= cap {
			break
		}

		result := s.ingestProduct(record, locationID)
		if result.Inserted {
			inserted++
			continue
		}
		logger.Info("[%s] skipping %q (%s): %v", s.RunID, result.Label, result.Reason, result.Err)
	}

	return inserted
}

func (s *IngestService) ingestProduct(record kroger.CleanProduct, locationID string) RecordResult {
	result := RecordResult{Label: record.Description}

	// Price is the one mandatory field for grocery rows
	if record.RegularPrice == nil {
		result.Reason = SkipMissingPrice
		result.Err = fmt.Errorf("no regular price")
		return result
	}

	product := models.Product{
		UPC:         record.UPC,
		Description: record.Description,
		Brand:       record.Brand,
	}
	if err := s.Store.InsertProduct(&product); err != nil {
		result.Reason = SkipStoreError
		result.Err = err
		return result
	}

	productID, err := s.Store.ProductIDByUPC(record.UPC)
	if err != nil {
		// A lookup miss right after a successful insert is a consistency
		// violation; surface it as such, still scoped to this record.
		if errors.Is(err, store.ErrNotFound) {
			err = fmt.Errorf("%w: upc %s vanished after insert", store.ErrInconsistent, record.UPC)
		}
		result.Reason = SkipStoreError
		result.Err = err
		return result
	}

	item := models.Item{
		ProductID:    productID,
		LocationID:   locationID,
		RegularPrice: record.RegularPrice,
		PromoPrice:   record.PromoPrice,
		StockLevel:   record.StockLevel,
		Size:         record.Size,
	}
	if err := s.Store.InsertItem(&item); err != nil {
		result.Reason = SkipStoreError
		result.Err = err
		return result
	}

	result.Inserted = true
	return result
}

// IngestMeals inserts cleaned meal records under the same cap semantics as
// IngestProducts. Meals without both calories and protein are skipped.
// A meal whose upstream id is already stored still counts as handled.
func (s *IngestService) IngestMeals(cleaned []spoonacular.CleanMeal, cap int) int {
	inserted := 0

	for _, record := range cleaned {
		if inserted >= cap {
			break
		}

		if record.Calories == nil || record.ProteinG == nil {
			logger.Info("[%s] skipping %q (%s): missing nutrition data", s.RunID, record.MealName, SkipMissingNutrition)
			continue
		}

		meal := models.Meal{
			MealID:          record.MealID,
			MealName:        record.MealName,
			ServingSize:     record.ServingSize,
			Calories:        record.Calories,
			ProteinG:        record.ProteinG,
			FatG:            record.FatG,
			CarbsG:          record.CarbsG,
			CuisineType:     record.CuisineType,
			HealthScore:     record.HealthScore,
			DietLabels:      record.DietLabels,
			IngredientsList: record.IngredientsList,
			MealURL:         record.MealURL,
		}

		written, err := s.Store.InsertMeal(&meal)
		if err != nil {
			logger.Info("[%s] skipping %q (%s): %v", s.RunID, record.MealName, SkipStoreError, err)
			continue
		}
		if !written {
			logger.Info("[%s] meal %q already stored", s.RunID, record.MealName)
		}

		inserted++
	}

	return inserted
}

// SnapshotPrices stamps every currently priced item into price_history with
// today's date.
func (s *IngestService) SnapshotPrices() (int, error) {
	today := time.Now().Format("2006-01-02")
	return s.Store.SnapshotPrices(today)
}
