// internal/models/product.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/lib/pq"
)

// Color is a declared product variant (name plus hex swatch).
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// ColorList is stored as a JSONB array.
type ColorList []Color

func (c ColorList) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

func (c *ColorList) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, c)
}

// Contains reports whether name matches one of the declared colors.
// Matching is case-insensitive; an empty name means no color selected.
func (c ColorList) Contains(name string) bool {
	for _, color := range c {
		if strings.EqualFold(color.Name, name) {
			return true
		}
	}
	return false
}

type Product struct {
	BaseModel
	Name         string         `json:"name" gorm:"size:255;not null"`
	Slug         string         `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	SKU          string         `json:"sku" gorm:"uniqueIndex;size:40;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Category     string         `json:"category" gorm:"size:100;index"`
	Price        float64        `json:"price" gorm:"type:decimal(12,2);not null"`
	SalePrice    *float64       `json:"sale_price,omitempty" gorm:"type:decimal(12,2)"`
	StockStatus  StockStatus    `json:"stock_status" gorm:"type:varchar(20);default:'in_stock';index"`
	Customizable bool           `json:"customizable" gorm:"default:false"`
	Colors       ColorList      `json:"colors" gorm:"type:jsonb"`
	Images       pq.StringArray `json:"images" gorm:"type:text[]"`
	Featured     bool           `json:"featured" gorm:"default:false"`
}

// EffectivePrice is the list price, or the sale price when one is set
// and actually lower. This is the single source of truth for money
// calculations; cart snapshots are display-only.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil && *p.SalePrice < p.Price {
		return *p.SalePrice
	}
	return p.Price
}

// PrimaryImage returns the first image, the one shown on order lines.
func (p *Product) PrimaryImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
