package kroger

import "testing"

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func TestCleanProductsFlattensNestedItem(t *testing.T) {
	raw := []ProductData{
		{
			UPC:         "0001111041700",
			Description: "Whole Milk",
			Brand:       sptr("Kroger"),
			Items: []ItemData{
				{
					Price:     &Price{Regular: fptr(3.49), Promo: fptr(2.99)},
					Inventory: &Inventory{StockLevel: sptr("HIGH")},
					Size:      sptr("1 gal"),
				},
			},
		},
	}

	cleaned := CleanProducts(raw)
	if len(cleaned) != 1 {
		t.Fatalf("expected 1 cleaned row, got %d", len(cleaned))
	}

	row := cleaned[0]
	if row.UPC != "0001111041700" || row.Description != "Whole Milk" {
		t.Errorf("unexpected identity fields: %+v", row)
	}
	if row.RegularPrice == nil || *row.RegularPrice != 3.49 {
		t.Errorf("expected regular price 3.49, got %v", row.RegularPrice)
	}
	if row.PromoPrice == nil || *row.PromoPrice != 2.99 {
		t.Errorf("expected promo price 2.99, got %v", row.PromoPrice)
	}
	if row.StockLevel == nil || *row.StockLevel != "HIGH" {
		t.Errorf("expected stock level HIGH, got %v", row.StockLevel)
	}
	if row.Size == nil || *row.Size != "1 gal" {
		t.Errorf("expected size '1 gal', got %v", row.Size)
	}
}

func TestCleanProductsNationalPriceFallback(t *testing.T) {
	raw := []ProductData{
		{
			UPC: "0002",
			Items: []ItemData{
				{NationalPrice: &Price{Regular: fptr(1.99)}},
			},
		},
	}

	cleaned := CleanProducts(raw)
	if cleaned[0].RegularPrice == nil || *cleaned[0].RegularPrice != 1.99 {
		t.Errorf("expected nationalPrice fallback 1.99, got %v", cleaned[0].RegularPrice)
	}
}

func TestCleanProductsMissingNestedStructures(t *testing.T) {
	raw := []ProductData{
		{UPC: "0003", Description: "No Items At All"},
		{UPC: "0004", Items: []ItemData{{}}},
	}

	cleaned := CleanProducts(raw)
	if len(cleaned) != 2 {
		t.Fatalf("expected 2 cleaned rows, got %d", len(cleaned))
	}
	for _, row := range cleaned {
		if row.RegularPrice != nil || row.PromoPrice != nil || row.StockLevel != nil || row.Size != nil {
			t.Errorf("missing nested structures must degrade to nil fields, got %+v", row)
		}
	}
}

func TestCleanProductsIdempotent(t *testing.T) {
	raw := []ProductData{
		{
			UPC:         "0005",
			Description: "Sugar",
			Items: []ItemData{
				{Price: &Price{Regular: fptr(2.50)}, Size: sptr("16 oz")},
			},
		},
	}

	first := CleanProducts(raw)
	second := CleanProducts(raw)

	if len(first) != len(second) {
		t.Fatalf("cleaning twice changed row count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].UPC != second[i].UPC ||
			*first[i].RegularPrice != *second[i].RegularPrice ||
			*first[i].Size != *second[i].Size {
			t.Errorf("cleaning is not idempotent at row %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}
