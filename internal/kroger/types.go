/**
 * @description
 * Kroger API response types and the mapping from raw product payloads to the
 * flat rows the ingestion pipeline consumes.
 *
 * @dependencies
 * - encoding/json (via client)
 */

package kroger

// TokenResponse is the OAuth2 client-credentials grant response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// LocationsResponse wraps the /locations payload
type LocationsResponse struct {
	Data []Location `json:"data"`
}

// Location is a single store returned by the location search
type Location struct {
	LocationID string `json:"locationId"`
	Name       string `json:"name"`
}

// ProductsResponse wraps the /products payload
type ProductsResponse struct {
	Data []ProductData `json:"data"`
}

// ProductData is a raw catalog entry. Each product carries a nested items
// array with at most one location-specific entry when the search is filtered
// by locationId.
type ProductData struct {
	UPC         string     `json:"upc"`
	Description string     `json:"description"`
	Brand       *string    `json:"brand"`
	Items       []ItemData `json:"items"`
}

// ItemData is the location-specific slice of a ProductData
type ItemData struct {
	Price         *Price     `json:"price"`
	NationalPrice *Price     `json:"nationalPrice"`
	Inventory     *Inventory `json:"inventory"`
	Size          *string    `json:"size"`
}

// Price holds the regular and promotional price of an item
type Price struct {
	Regular *float64 `json:"regular"`
	Promo   *float64 `json:"promo"`
}

// Inventory holds the availability status of an item
type Inventory struct {
	StockLevel *string `json:"stockLevel"`
}

// CleanProduct is one flattened, validated grocery row ready for ingestion
type CleanProduct struct {
	UPC          string
	Description  string
	Brand        *string
	RegularPrice *float64
	PromoPrice   *float64
	StockLevel   *string
	Size         *string
}

// CleanProducts flattens raw catalog entries into CleanProduct rows.
// Pure mapping, no I/O. The first element of the nested items array is used;
// a missing items array just degrades to nil item fields and never errors.
// Price is read from `price` with `nationalPrice` as the fallback source.
func CleanProducts(raw []ProductData) []CleanProduct {
	cleaned := make([]CleanProduct, 0, len(raw))

	for _, product := range raw {
		var item ItemData
		if len(product.Items) > 0 {
			item = product.Items[0]
		}

		price := item.Price
		if price == nil {
			price = item.NationalPrice
		}

		cp := CleanProduct{
			UPC:         product.UPC,
			Description: product.Description,
			Brand:       product.Brand,
			Size:        item.Size,
		}
		if price != nil {
			cp.RegularPrice = price.Regular
			cp.PromoPrice = price.Promo
		}
		if item.Inventory != nil {
			cp.StockLevel = item.Inventory.StockLevel
		}

		cleaned = append(cleaned, cp)
	}

	return cleaned
}
