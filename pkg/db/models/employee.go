package models

// Employee is a staff record tied to a department.
type Employee struct {
	ID           int    `gorm:"column:id;primaryKey"`
	Name         string `gorm:"column:name;not null"`
	DepartmentID int    `gorm:"column:department_id"`
	Title        string `gorm:"column:title"`
	EmpNumber    int64  `gorm:"column:emp_number;not null"`
	Address      string `gorm:"column:address"`
	Phone        string `gorm:"column:phone"`
	Wage         int    `gorm:"column:wage"`
	IsActive     bool   `gorm:"column:is_active;not null;default:true"`
}

func (Employee) TableName() string { return "employees" }
