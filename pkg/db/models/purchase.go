package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Purchase struct {
	ID           int             `gorm:"column:id;primaryKey"`
	ProductID    int             `gorm:"column:product_id;not null"`
	Quantity     int             `gorm:"column:quantity"`
	CustomerID   int             `gorm:"column:customer_id"`
	PurchaseDate *time.Time      `gorm:"column:purchase_date;type:date"`
	Total        decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	IsCancelled  bool            `gorm:"column:is_cancelled;not null;default:false"`
}

func (Purchase) TableName() string { return "purchases" }
