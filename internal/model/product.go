package model

import "github.com/google/uuid"

// Product is a catalog entry. Image holds the primary image URL under the
// static upload path; Images is the gallery and is always replaced
// wholesale, never merged. CategoryID must reference an existing category
// at write time, but a later category delete may leave it dangling.
type Product struct {
	BaseModel
	Name            string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description     string    `gorm:"type:text" json:"description"`
	RichDescription string    `gorm:"type:text" json:"richDescription"`
	Image           string    `gorm:"type:varchar(512)" json:"image"`
	Images          []string  `gorm:"serializer:json" json:"images"`
	Brand           string    `gorm:"type:varchar(255)" json:"brand"`
	Price           float64   `gorm:"default:0" json:"price"`
	CategoryID      uuid.UUID `gorm:"type:uuid;not null;index" json:"category" validate:"uuid_required"`
	Category        *Category `gorm:"foreignKey:CategoryID" json:"categoryDetail,omitempty"`
	CountInStock    int       `gorm:"default:0" json:"countInStock"`
	Rating          float64   `gorm:"default:0" json:"rating"`
	NumReviews      int       `gorm:"default:0" json:"numReviews"`
	IsFeatured      bool      `gorm:"default:false" json:"isFeatured"`
}
