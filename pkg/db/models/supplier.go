package models

type Supplier struct {
	ID      int    `gorm:"column:id;primaryKey"`
	Name    string `gorm:"column:name;not null"`
	Address string `gorm:"column:address"`
	Phone   string `gorm:"column:phone;not null"`
}

func (Supplier) TableName() string { return "suppliers" }
