package models

type Employee struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"type:varchar(30);not null"`
	LastName  string `gorm:"type:varchar(30);not null"`
	RoleID    *uint  `gorm:"index"`
	ManagerID *uint  `gorm:"index"`
}

func (Employee) TableName() string {
	return "employee"
}

// FullName is the label employees are listed and resolved by.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
