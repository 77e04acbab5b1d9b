/**
 * @description
 * Price History database model.
 * Maps to the 'price_history' table: an append-only time series of product prices.
 *
 * @dependencies
 * - gorm.io/gorm
 */

package models

// PriceHistory represents one historical price point for a product.
// Rows are written by the snapshot routine and never mutated afterwards.
type PriceHistory struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint    `gorm:"column:product_id;index:idx_price_history_product_date" json:"product_id"`
	Price     float64 `gorm:"column:price" json:"price"`
	Date      string  `gorm:"column:date;index:idx_price_history_product_date" json:"date"` // YYYY-MM-DD
}

// TableName overrides the table name used by PriceHistory to `price_history`
func (PriceHistory) TableName() string {
	return "price_history"
}
