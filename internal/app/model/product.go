package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryCleanser    ProductCategory = "cleanser"
	CategoryToner       ProductCategory = "toner"
	CategorySerum       ProductCategory = "serum"
	CategoryMoisturizer ProductCategory = "moisturizer"
	CategorySunscreen   ProductCategory = "sunscreen"
	CategoryMask        ProductCategory = "mask"
)

type Product struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	Brand           string          `json:"brand"`
	Category        ProductCategory `gorm:"type:varchar(50)" json:"category"`
	Price           float64         `gorm:"not null" json:"price"`
	DiscountedPrice float64         `gorm:"not null" json:"discounted_price"`
	Quantity        int             `gorm:"default:0" json:"quantity"` // stock on hand
	SkinTypes       pq.StringArray  `gorm:"type:text" json:"skin_types"`
	ImageURL        string          `json:"image_url"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	OrderItems []OrderItem `gorm:"foreignKey:ProductID" json:"-"`
	CartItems  []CartItem  `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
