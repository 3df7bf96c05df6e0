package models

// AisleContains places a product in an aisle. Rows must be removed before
// their aisle is deleted; the database does not cascade this.
type AisleContains struct {
	AisleNumber int `gorm:"column:aisle_number;primaryKey"`
	ProductID   int `gorm:"column:product_id;primaryKey"`
}

func (AisleContains) TableName() string { return "aislecontains" }
