package models

type Customer struct {
	ID    int    `gorm:"column:id;primaryKey"`
	Name  string `gorm:"column:name"`
	Phone string `gorm:"column:phone"`
	Email string `gorm:"column:email"`
}

func (Customer) TableName() string { return "customers" }
