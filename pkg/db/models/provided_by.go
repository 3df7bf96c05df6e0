package models

// ProvidedBy associates a product with one of its suppliers.
type ProvidedBy struct {
	ProductID  int `gorm:"column:product_id;primaryKey"`
	SupplierID int `gorm:"column:supplier_id;primaryKey"`
}

func (ProvidedBy) TableName() string { return "providedby" }
