package main

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/foodlens-project/backend/internal/charts"
	"github.com/foodlens-project/backend/internal/config"
	"github.com/foodlens-project/backend/internal/db"
	"github.com/foodlens-project/backend/internal/kroger"
	"github.com/foodlens-project/backend/internal/report"
	"github.com/foodlens-project/backend/internal/services"
	"github.com/foodlens-project/backend/internal/spoonacular"
	"github.com/foodlens-project/backend/internal/store"
)

func main() {
	log.Println("🚀 Starting grocery & recipe data pipeline...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.ValidatePipeline(); err != nil {
		log.Fatalf("invalid pipeline config: %v", err)
	}

	gdb, err := db.ConnectSQLite(cfg)
	if err != nil {
		log.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		// Schema creation failures are the one run-fatal store error
		log.Fatalf("failed to create schema: %v", err)
	}

	st := store.New(gdb)
	ingest := services.NewIngestService(st)
	stats := services.NewStatsService(st, nil)

	ctx := context.Background()

	groceryTotal, err := runGrocery(ctx, cfg, ingest)
	if err != nil {
		log.Fatalf("grocery ingestion failed: %v", err)
	}
	log.Printf("✅ Grocery ingestion complete: %d items", groceryTotal)

	snapshotted, err := ingest.SnapshotPrices()
	if err != nil {
		log.Fatalf("price snapshot failed: %v", err)
	}
	log.Printf("✅ Price history saved: %d rows", snapshotted)

	mealTotal, err := runMeals(ctx, cfg, ingest)
	if err != nil {
		log.Fatalf("meal ingestion failed: %v", err)
	}
	log.Printf("✅ Meal ingestion complete: %d meals", mealTotal)

	if err := emitReports(ctx, cfg, stats, ingest.RunID.String()); err != nil {
		log.Fatalf("report generation failed: %v", err)
	}

	log.Println("✅ Pipeline completed successfully.")
}

// runGrocery fetches products per search term and ingests them until the
// overall insert cap is reached. A failed fetch for one term is logged and
// the remaining terms still run; only fetching nothing at all is fatal.
func runGrocery(ctx context.Context, cfg *config.Config, ingest *services.IngestService) (int, error) {
	client := kroger.NewClient(cfg)

	token, err := client.Token(ctx)
	if err != nil {
		return 0, err
	}

	location, err := client.NearestLocation(ctx, token, cfg.Kroger.Zipcode)
	if err != nil {
		return 0, err
	}
	log.Printf("store found: %s (ID: %s)", location.Name, location.LocationID)

	total := 0
	fetchedAny := false
	for _, term := range cfg.Pipeline.SearchTerms {
		if total >= cfg.Pipeline.InsertCap {
			log.Printf("target reached for %d items", cfg.Pipeline.InsertCap)
			break
		}

		raw, err := client.SearchProducts(ctx, token, location.LocationID, term, cfg.Pipeline.FetchLimit)
		if err != nil {
			log.Printf("⚠️ fetch failed for %q: %v", term, err)
			continue
		}
		if len(raw) == 0 {
			log.Printf("no products found for %q", term)
			continue
		}
		fetchedAny = true

		cleaned := kroger.CleanProducts(raw)
		count := ingest.IngestProducts(cleaned, location.LocationID, cfg.Pipeline.InsertCap-total)
		total += count
		log.Printf("added %d items for %q, total in DB: %d", count, term, total)
	}

	if !fetchedAny {
		return 0, errors.New("no grocery data fetched for any search term")
	}
	return total, nil
}

// runMeals fetches recipes per search term under the same cap semantics
func runMeals(ctx context.Context, cfg *config.Config, ingest *services.IngestService) (int, error) {
	client := spoonacular.NewClient(cfg)

	total := 0
	fetchedAny := false
	for _, term := range cfg.Pipeline.MealSearchTerms {
		if total >= cfg.Pipeline.InsertCap {
			log.Printf("target reached for %d meals", cfg.Pipeline.InsertCap)
			break
		}

		raw, err := client.SearchRecipes(ctx, term, cfg.Pipeline.MealFetchLimit)
		if err != nil {
			log.Printf("⚠️ fetch failed for %q: %v", term, err)
			continue
		}
		if len(raw) == 0 {
			log.Printf("no recipes found for %q", term)
			continue
		}
		fetchedAny = true

		cleaned := spoonacular.CleanRecipes(raw)
		count := ingest.IngestMeals(cleaned, cfg.Pipeline.InsertCap-total)
		total += count
		log.Printf("added %d meals for %q, total in DB: %d", count, term, total)
	}

	if !fetchedAny {
		return 0, errors.New("no recipe data fetched for any search term")
	}
	return total, nil
}

func emitReports(ctx context.Context, cfg *config.Config, stats *services.StatsService, runID string) error {
	dir := cfg.Pipeline.OutputDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	grocery, err := stats.GroceryStats(ctx)
	if err != nil {
		return err
	}
	if err := report.WriteGrocery(filepath.Join(dir, "kroger_results.txt"), grocery, runID); err != nil {
		return err
	}
	if err := charts.RenderGrocery(dir, grocery); err != nil {
		return err
	}

	nutrition, err := stats.NutritionStats(ctx)
	if err != nil {
		return err
	}
	if err := report.WriteNutrition(filepath.Join(dir, "spoonacular_results.txt"), nutrition, runID); err != nil {
		return err
	}
	return charts.RenderNutrition(dir, nutrition)
}
