package models_test

import (
	"fmt"
	"testing"

	"catalog/internal/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		title, explicit, want string
	}{
		{"Men's Classic Tee", "", "mens_classic_tee"},
		{"Men's Classic Tee V2", "", "mens_classic_tee_v2"},
		{"Kids Scribble T Logo Tee", "", "kids_scribble_t_logo_tee"},
		{"Ignored Title", "Custom Slug", "custom_slug"},
		{"Plain", "", "plain"},
		{"", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, models.DeriveSlug(tt.title, tt.explicit), "title=%q explicit=%q", tt.title, tt.explicit)
	}
}

func TestDeriveSlugIsIdempotent(t *testing.T) {
	for _, title := range []string{"Men's Classic Tee", "  Two  Spaces ", "ALL CAPS 'QUOTED'", "already_a_slug"} {
		once := models.DeriveSlug(title, "")
		assert.Equal(t, once, models.DeriveSlug(once, ""), "title=%q", title)
		assert.Equal(t, once, models.DeriveSlug("something else", once), "title=%q", title)
	}
}

func TestGenderValid(t *testing.T) {
	for _, g := range []models.Gender{models.GenderMen, models.GenderWomen, models.GenderKid, models.GenderUnisex} {
		assert.True(t, g.Valid())
	}
	assert.False(t, models.Gender("alien").Valid())
}

func TestNewProductDefaults(t *testing.T) {
	p := models.NewProduct(models.ProductFields{
		Title:  "Men's Classic Tee",
		Sizes:  []string{"S", "M"},
		Gender: models.GenderMen,
	})

	assert.Equal(t, "mens_classic_tee", p.Slug)
	assert.Zero(t, p.Price)
	assert.Zero(t, p.Stock)
	assert.Nil(t, p.Description)
	assert.Equal(t, []string{"S", "M"}, []string(p.Sizes))
	assert.NotNil(t, p.Tags)
	assert.Empty(t, p.Tags)
}

func TestApplyRederivesSlug(t *testing.T) {
	p := models.NewProduct(models.ProductFields{Title: "Men's Classic Tee", Gender: models.GenderMen})

	p.Apply(models.ProductPatch{Title: strPtr("Men's Classic Tee V2")})
	assert.Equal(t, "mens_classic_tee_v2", p.Slug)

	p.Apply(models.ProductPatch{Slug: strPtr("Limited Edition")})
	assert.Equal(t, "Men's Classic Tee V2", p.Title)
	assert.Equal(t, "limited_edition", p.Slug)

	p.Apply(models.ProductPatch{Title: strPtr("Other"), Slug: strPtr("Kept Slug")})
	assert.Equal(t, "kept_slug", p.Slug)

	stock := 7
	p.Apply(models.ProductPatch{Stock: &stock})
	assert.Equal(t, 7, p.Stock)
	assert.Equal(t, "kept_slug", p.Slug)
}

func TestBuildImagesKeepsOrder(t *testing.T) {
	n := 0
	newID := func() string { n++; return fmt.Sprintf("img-%d", n) }

	images := models.BuildImages("prod-1", []string{"a.jpg", "b.jpg"}, newID)

	assert.Len(t, images, 2)
	assert.Equal(t, "img-1", images[0].ID)
	assert.Equal(t, 0, images[0].Position)
	assert.Equal(t, 1, images[1].Position)
	assert.Equal(t, "prod-1", images[1].ProductID)

	p := models.Product{Images: images}
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.ImageURLs())
}
