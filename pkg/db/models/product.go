package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stocked item. Organic is stored as 0/1, derived from a
// checkbox-style form input.
type Product struct {
	ID               int             `gorm:"column:id;primaryKey"`
	Name             string          `gorm:"column:name;not null"`
	PricePerCostUnit decimal.Decimal `gorm:"column:price_per_cost_unit;type:numeric(12,2);not null"`
	CostUnit         string          `gorm:"column:cost_unit;not null"`
	DepartmentID     int             `gorm:"column:department_id;not null"`
	QuantityInStock  int             `gorm:"column:quantity_in_stock"`
	Brand            *string         `gorm:"column:brand"`
	ProductionDate   *time.Time      `gorm:"column:production_date;type:date"`
	BestBeforeDate   *time.Time      `gorm:"column:best_before_date;type:date"`
	PLU              *int            `gorm:"column:plu"`
	UPC              *int64          `gorm:"column:upc"`
	Organic          int             `gorm:"column:organic"`
	Cut              *string         `gorm:"column:cut"`
	Animal           *string         `gorm:"column:animal"`
}

func (Product) TableName() string { return "products" }
