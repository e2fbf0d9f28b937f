package models

type Role struct {
	ID           uint   `gorm:"primaryKey"`
	Title        string `gorm:"type:varchar(30);not null"`
	Salary       string `gorm:"type:decimal(10,2);not null"`
	DepartmentID uint   `gorm:"not null;index"`
}

func (Role) TableName() string {
	return "role"
}
