/**
 * @description
 * Item database model.
 * Maps to the 'items' table: a location-specific pricing/availability snapshot for a Product.
 *
 * @dependencies
 * - gorm.io/gorm
 */

package models

// Item is a point-in-time pricing row tied to a Product at one store location.
// There is deliberately no uniqueness constraint: repeated ingestion runs append
// new rows rather than updating old ones, and superseded rows accumulate.
type Item struct {
	ID           uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    uint     `gorm:"column:product_id;index" json:"product_id"`
	LocationID   string   `gorm:"column:location_id" json:"location_id"`
	RegularPrice *float64 `gorm:"column:regular_price" json:"regular_price"`
	PromoPrice   *float64 `gorm:"column:promo_price" json:"promo_price"`
	StockLevel   *string  `gorm:"column:stock_level" json:"stock_level"` // e.g. HIGH / LOW / TEMPORARILY_OUT_OF_STOCK
	Size         *string  `gorm:"column:size" json:"size"`               // free text, e.g. "16 oz"
}

// TableName overrides the table name used by Item to `items`
func (Item) TableName() string {
	return "items"
}
