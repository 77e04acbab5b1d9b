/**
 * @description
 * Read-side aggregation service.
 * Derives descriptive statistics from the store's current contents: price
 * per unit, brand averages, nutrition indexes, cuisine aggregates. The API
 * path serves these through a short-lived redis cache.
 *
 * @dependencies
 * - backend/internal/store
 * - backend/internal/units
 * - github.com/redis/go-redis/v9
 */

package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/foodlens-project/backend/internal/store"
	"github.com/foodlens-project/backend/internal/units"
	"github.com/redis/go-redis/v9"
)

const (
	CacheKeyGroceryStats   = "stats:grocery"
	CacheKeyNutritionStats = "stats:nutrition"
	CacheTTL               = 5 * time.Minute
)

// Health category labels, evaluated in this order, first match wins
const (
	CategoryHealthy     = "healthy"
	CategoryModerate    = "moderately healthy"
	CategoryLessHealthy = "less healthy"
)

type StatsService struct {
	Store *store.Store
	Redis *redis.Client
}

func NewStatsService(st *store.Store, rdb *redis.Client) *StatsService {
	return &StatsService{Store: st, Redis: rdb}
}

// PPUEntry is one product's price per normalized ounce
type PPUEntry struct {
	Description   string  `json:"description"`
	PricePerOunce float64 `json:"price_per_ounce"`
}

// GroceryStats bundles every derived grocery metric
type GroceryStats struct {
	PricePerUnit  []PPUEntry           `json:"price_per_unit"`
	Cheapest      *PPUEntry            `json:"cheapest"`
	MedianPPU     float64              `json:"median_ppu"`
	AveragePrice  float64              `json:"average_price"`
	BrandAverages []store.BrandAverage `json:"brand_averages"`
	StockLevels   []store.StockCount   `json:"stock_levels"`
}

// GroceryStats computes the grocery metrics fresh from the store
func (s *StatsService) GroceryStats(ctx context.Context) (*GroceryStats, error) {
	rows, err := s.Store.PricedItems()
	if err != nil {
		return nil, err
	}

	stats := &GroceryStats{PricePerUnit: []PPUEntry{}}

	for _, row := range rows {
		if row.Size == nil || row.RegularPrice == nil {
			continue
		}
		ppu, err := units.PricePerUnit(*row.RegularPrice, *row.Size)
		if err != nil {
			// Unparseable sizes are excluded from the set, never zeroed
			continue
		}
		stats.PricePerUnit = append(stats.PricePerUnit, PPUEntry{
			Description:   row.Description,
			PricePerOunce: ppu,
		})
	}

	// Minimum with strict comparison: the first-encountered entry wins ties
	for i := range stats.PricePerUnit {
		if stats.Cheapest == nil || stats.PricePerUnit[i].PricePerOunce < stats.Cheapest.PricePerOunce {
			stats.Cheapest = &stats.PricePerUnit[i]
		}
	}

	if len(stats.PricePerUnit) > 0 {
		values := make([]float64, len(stats.PricePerUnit))
		for i, e := range stats.PricePerUnit {
			values[i] = e.PricePerOunce
		}
		sort.Float64s(values)
		stats.MedianPPU = values[len(values)/2]
	}

	avg, err := s.Store.AveragePrice()
	if err == nil {
		stats.AveragePrice = units.Round(avg, 2)
	} else if !isNotFound(err) {
		return nil, err
	}

	if stats.BrandAverages, err = s.Store.BrandAverages(); err != nil {
		return nil, err
	}
	if stats.StockLevels, err = s.Store.StockLevelCounts(); err != nil {
		return nil, err
	}

	return stats, nil
}

// MealNutrition is the per-meal derived nutrition profile
type MealNutrition struct {
	MealName       string  `json:"meal_name"`
	CuisineType    string  `json:"cuisine_type"`
	Calories       float64 `json:"calories"`
	HealthScore    float64 `json:"health_score"`
	ProteinPct     float64 `json:"protein_pct"`
	FatPct         float64 `json:"fat_pct"`
	CarbsPct       float64 `json:"carbs_pct"`
	ProteinDensity float64 `json:"protein_density"`
	HealthCategory string  `json:"health_category"`
	NutritionIndex float64 `json:"nutrition_index"`
}

// NutritionStats bundles every derived meal metric
type NutritionStats struct {
	MealCount        int                    `json:"meal_count"`
	Meals            []MealNutrition        `json:"meals"`
	CuisineAverages  []store.CuisineAverage `json:"cuisine_averages"`
	HealthCategories map[string]int         `json:"health_categories"`
	TopMeals         []MealNutrition        `json:"top_meals"`
	AvgProteinPct    float64                `json:"avg_protein_pct"`
	AvgFatPct        float64                `json:"avg_fat_pct"`
	AvgCarbsPct      float64                `json:"avg_carbs_pct"`
}

// NutritionStats computes the meal metrics fresh from the store
func (s *StatsService) NutritionStats(ctx context.Context) (*NutritionStats, error) {
	meals, err := s.Store.MealsWithNutrition()
	if err != nil {
		return nil, err
	}

	stats := &NutritionStats{
		MealCount:        len(meals),
		Meals:            make([]MealNutrition, 0, len(meals)),
		HealthCategories: map[string]int{},
	}

	for _, meal := range meals {
		calories := deref(meal.Calories)
		protein := deref(meal.ProteinG)
		score := deref(meal.HealthScore)

		proteinPct, fatPct, carbsPct := MacroPercentages(protein, deref(meal.FatG), deref(meal.CarbsG))

		density := 0.0
		if calories > 0 {
			density = protein / calories
		}

		mn := MealNutrition{
			MealName:       meal.MealName,
			CuisineType:    meal.CuisineType,
			Calories:       calories,
			HealthScore:    score,
			ProteinPct:     proteinPct,
			FatPct:         fatPct,
			CarbsPct:       carbsPct,
			ProteinDensity: density,
			HealthCategory: HealthCategory(calories, score),
			NutritionIndex: score*0.6 + density*100*0.4,
		}

		stats.Meals = append(stats.Meals, mn)
		stats.HealthCategories[mn.HealthCategory]++
		stats.AvgProteinPct += proteinPct
		stats.AvgFatPct += fatPct
		stats.AvgCarbsPct += carbsPct
	}

	if len(stats.Meals) > 0 {
		n := float64(len(stats.Meals))
		stats.AvgProteinPct /= n
		stats.AvgFatPct /= n
		stats.AvgCarbsPct /= n
	}

	ranked := make([]MealNutrition, len(stats.Meals))
	copy(ranked, stats.Meals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NutritionIndex > ranked[j].NutritionIndex
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	stats.TopMeals = ranked

	if stats.CuisineAverages, err = s.Store.CuisineAverages(); err != nil {
		return nil, err
	}

	return stats, nil
}

// CachedGroceryStats serves GroceryStats through the redis cache
func (s *StatsService) CachedGroceryStats(ctx context.Context) (*GroceryStats, error) {
	var stats GroceryStats
	if ok := s.cacheGet(ctx, CacheKeyGroceryStats, &stats); ok {
		return &stats, nil
	}

	fresh, err := s.GroceryStats(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, CacheKeyGroceryStats, fresh)
	return fresh, nil
}

// CachedNutritionStats serves NutritionStats through the redis cache
func (s *StatsService) CachedNutritionStats(ctx context.Context) (*NutritionStats, error) {
	var stats NutritionStats
	if ok := s.cacheGet(ctx, CacheKeyNutritionStats, &stats); ok {
		return &stats, nil
	}

	fresh, err := s.NutritionStats(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, CacheKeyNutritionStats, fresh)
	return fresh, nil
}

func (s *StatsService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.Redis == nil {
		return false
	}
	payload, err := s.Redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(payload), dest) == nil
}

func (s *StatsService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.Redis == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	// Cache misses are served from the DB anyway; a failed set is not an error
	_ = s.Redis.Set(ctx, key, payload, CacheTTL).Err()
}

// HealthCategory classifies a meal. Thresholds are evaluated in this exact
// order, first match wins.
func HealthCategory(calories, healthScore float64) string {
	if calories < 400 && healthScore >= 50 {
		return CategoryHealthy
	}
	if calories < 600 && healthScore >= 30 {
		return CategoryModerate
	}
	return CategoryLessHealthy
}

// MacroPercentages converts gram amounts into each macronutrient's share of
// total caloric contribution (protein 4 cal/g, fat 9, carbs 4). All three are
// 0 when the total contribution is 0.
func MacroPercentages(proteinG, fatG, carbsG float64) (proteinPct, fatPct, carbsPct float64) {
	proteinCal := proteinG * 4
	fatCal := fatG * 9
	carbsCal := carbsG * 4
	total := proteinCal + fatCal + carbsCal
	if total == 0 {
		return 0, 0, 0
	}
	return proteinCal / total * 100, fatCal / total * 100, carbsCal / total * 100
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
