/**
 * @description
 * Product database model.
 * Maps to the 'products' table: one row per distinct UPC seen during ingestion.
 *
 * @dependencies
 * - gorm.io/gorm
 */

package models

// Product represents a catalog entity identified by its UPC barcode.
// Rows are created on first sighting of a UPC and never updated or deleted.
type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UPC         string  `gorm:"column:upc;uniqueIndex" json:"upc"`
	Description string  `gorm:"column:description" json:"description"`
	Brand       *string `gorm:"column:brand" json:"brand"`
}

// TableName overrides the table name used by Product to `products`
func (Product) TableName() string {
	return "products"
}
