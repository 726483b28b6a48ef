package domain

import "time"

// Category is the closed set of product categories the catalog knows about.
type Category string

const (
	CategoryRings     Category = "rings"
	CategoryNecklaces Category = "necklaces"
	CategoryEarrings  Category = "earrings"
	CategoryBracelets Category = "bracelets"
	CategoryAnklets   Category = "anklets"
	CategoryPendants  Category = "pendants"
	CategoryStones    Category = "stones"

	// CategoryAll is the sentinel used by filters, it is not a valid
	// category for a product record.
	CategoryAll Category = "all"
)

// Categories lists every valid product category in display order.
var Categories = []Category{
	CategoryRings,
	CategoryNecklaces,
	CategoryEarrings,
	CategoryBracelets,
	CategoryAnklets,
	CategoryPendants,
	CategoryStones,
}

// ValidCategory reports whether c is one of the seven catalog categories.
func ValidCategory(c Category) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Product defines the structure for a catalog item
type Product struct {
	// the id for this product, stable and unique within the active set,
	// used as routing key and as the storage path prefix for its images
	ID string `json:"id"`

	// the display name for this product
	//
	// required: true
	Name string `json:"name" validate:"required"`

	// the description for this product
	Description string `json:"description"`

	// the selling price in minor-unit-free currency amount
	//
	// min: 0
	Price int `json:"price" validate:"gte=0"`

	// the reference price shown struck through next to Price.
	// Despite the name this is the pre-discount price, not a sale price.
	DiscountPrice *int `json:"discountPrice,omitempty" validate:"omitempty,gte=0"`

	// the category for this product, one of the seven catalog categories
	//
	// required: true
	Category Category `json:"category" validate:"required,category"`

	// ordered image URLs, element 0 is the canonical thumbnail.
	// May be empty, consumers fall back to a placeholder.
	Images []string `json:"images"`

	// free-text material description, e.g. "925 silver"
	Material string `json:"material"`

	InStock    bool `json:"inStock"`
	IsNew      bool `json:"isNew"`
	IsFeatured bool `json:"isFeatured"`

	Weight     string `json:"weight,omitempty"`
	Dimensions string `json:"dimensions,omitempty"`

	// free-text tags, order carries no meaning
	Tags []string `json:"tags"`

	// average rating, absent when the product has no reviews yet
	Rating *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`

	ReviewCount int `json:"reviewCount" validate:"gte=0"`

	CreatedAt time.Time `json:"createdAt"`
}

// Products is a collection of Product
type Products []*Product
