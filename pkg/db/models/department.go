package models

type Department struct {
	ID   int    `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name"`
}

func (Department) TableName() string { return "departments" }
