package models

// Aisle is a physical aisle on the shop floor. Aisle numbers are assigned by
// the store, not by a sequence.
type Aisle struct {
	AisleNumber int    `gorm:"column:aisle_number;primaryKey"`
	Name        string `gorm:"column:name;not null"`
}

func (Aisle) TableName() string { return "aisles" }
