package model

// Category groups products. Name uniqueness is intentionally not enforced.
type Category struct {
	BaseModel
	Name  string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Icon  string `gorm:"type:varchar(255)" json:"icon"`
	Color string `gorm:"type:varchar(50)" json:"color"`
}
