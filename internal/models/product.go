package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Gender is the audience a product is cut for.
type Gender string

const (
	GenderMen    Gender = "men"
	GenderWomen  Gender = "women"
	GenderKid    Gender = "kid"
	GenderUnisex Gender = "unisex"
)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMen, GenderWomen, GenderKid, GenderUnisex:
		return true
	}
	return false
}

// Product represents a catalog entry together with its owned images.
type Product struct {
	ID          string                     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string                     `json:"title" gorm:"type:text;not null;uniqueIndex"`
	Price       float64                    `json:"price" gorm:"not null;default:0"`
	Description *string                    `json:"description,omitempty" gorm:"type:text"`
	Slug        string                     `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	Stock       int                        `json:"stock" gorm:"not null;default:0"`
	Sizes       datatypes.JSONSlice[string] `json:"sizes"`
	Gender      Gender                     `json:"gender" gorm:"type:varchar(10);not null"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Images      []ProductImage             `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	UserID      string                     `json:"-" gorm:"type:varchar(36);index"`
	User        *User                      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt   time.Time                  `json:"createdAt"`
	UpdatedAt   time.Time                  `json:"updatedAt"`
}

// ProductImage is a reference to a stored asset. It only exists under its product.
type ProductImage struct {
	ID        string `json:"-" gorm:"primaryKey;type:varchar(36)"`
	URL       string `json:"url" gorm:"type:text;not null"`
	Position  int    `json:"-" gorm:"not null;default:0"`
	ProductID string `json:"-" gorm:"type:varchar(36);not null;index"`
}

// ProductFields carries the caller-supplied values for a new product.
type ProductFields struct {
	Title       string   `json:"title" validate:"required,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description" validate:"omitempty"`
	Slug        *string  `json:"slug" validate:"omitempty"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Sizes       []string `json:"sizes" validate:"required,dive,min=1"`
	Gender      Gender   `json:"gender" validate:"required,gender"`
	Tags        []string `json:"tags" validate:"omitempty,dive,min=1"`
	Images      []string `json:"images" validate:"omitempty,dive,min=1"`
}

// ProductPatch is a partial update. Nil fields are left untouched; a non-nil
// Images replaces the whole image list, an empty one clears it.
type ProductPatch struct {
	Title       *string   `json:"title" validate:"omitempty,min=1"`
	Price       *float64  `json:"price" validate:"omitempty,gte=0"`
	Description *string   `json:"description"`
	Slug        *string   `json:"slug"`
	Stock       *int      `json:"stock" validate:"omitempty,gte=0"`
	Sizes       *[]string `json:"sizes" validate:"omitempty,dive,min=1"`
	Gender      *Gender   `json:"gender" validate:"omitempty,gender"`
	Tags        *[]string `json:"tags" validate:"omitempty,dive,min=1"`
	Images      *[]string `json:"images" validate:"omitempty,dive,min=1"`
}

// DeriveSlug returns the normalized slug for a product. The explicit slug wins
// over the title when it is non-empty.
func DeriveSlug(title, explicit string) string {
	source := explicit
	if source == "" {
		source = title
	}
	source = strings.ToLower(source)
	source = strings.ReplaceAll(source, " ", "_")
	return strings.ReplaceAll(source, "'", "")
}

// NormalizeSlug re-derives the slug from the current title and slug.
func (p *Product) NormalizeSlug() {
	p.Slug = DeriveSlug(p.Title, p.Slug)
}

// BeforeSave keeps the slug in sync with the title on every insert and update.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.NormalizeSlug()
	return nil
}

// NewProduct builds an unsaved aggregate from fields. IDs are left for the store.
func NewProduct(fields ProductFields) *Product {
	p := &Product{
		Title:       fields.Title,
		Description: fields.Description,
		Sizes:       datatypes.JSONSlice[string](append([]string{}, fields.Sizes...)),
		Gender:      fields.Gender,
		Tags:        datatypes.JSONSlice[string](append([]string{}, fields.Tags...)),
	}
	if fields.Price != nil {
		p.Price = *fields.Price
	}
	if fields.Stock != nil {
		p.Stock = *fields.Stock
	}
	if fields.Slug != nil {
		p.Slug = *fields.Slug
	}
	p.NormalizeSlug()
	return p
}

// Apply merges a patch onto p. Touching the title without an explicit slug
// makes the slug follow the new title.
func (p *Product) Apply(patch ProductPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
		if patch.Slug == nil {
			p.Slug = ""
		}
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Sizes != nil {
		p.Sizes = datatypes.JSONSlice[string](append([]string{}, (*patch.Sizes)...))
	}
	if patch.Gender != nil {
		p.Gender = *patch.Gender
	}
	if patch.Tags != nil {
		p.Tags = datatypes.JSONSlice[string](append([]string{}, (*patch.Tags)...))
	}
	p.NormalizeSlug()
}

// BuildImages turns a URL list into an ordered image collection for productID.
func BuildImages(productID string, urls []string, newID func() string) []ProductImage {
	images := make([]ProductImage, 0, len(urls))
	for i, url := range urls {
		images = append(images, ProductImage{
			ID:        newID(),
			URL:       url,
			Position:  i,
			ProductID: productID,
		})
	}
	return images
}

// ImageURLs returns the URLs of p's images in order.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}
