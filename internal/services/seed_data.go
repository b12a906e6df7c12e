package services

import "catalog/internal/models"

func descr(s string) *string { return &s }

func price(p float64) *float64 { return &p }

func stock(n int) *int { return &n }

// DefaultSeedData is the data set loaded by SEED_ON_START.
func DefaultSeedData() SeedData {
	return SeedData{
		Users: []SeedUser{
			{Email: "test1@google.com", FullName: "Test One", Password: "Abc123", Roles: []string{"admin"}},
			{Email: "test2@google.com", FullName: "Test Two", Password: "Abc123", Roles: []string{"user", "super-user"}},
		},
		Products: []models.ProductFields{
			{
				Title:       "Men's Chill Crew Neck Sweatshirt",
				Description: descr("Introducing the Tesla Chill collection. The Men's Chill Crew Neck Sweatshirt has a premium, heavyweight exterior and soft fleece interior for comfort in any season."),
				Price:       price(75),
				Stock:       stock(7),
				Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
				Gender:      models.GenderMen,
				Tags:        []string{"sweatshirt"},
				Images:      []string{"1740176-00-A_0_2000.jpg", "1740176-00-A_1.jpg"},
			},
			{
				Title:       "Men's Quilted Shirt Jacket",
				Description: descr("The Men's Quilted Shirt Jacket features a uniquely fit, quilted design for warmth and mobility in cold weather seasons."),
				Price:       price(200),
				Stock:       stock(5),
				Sizes:       []string{"XS", "S", "M", "XL", "XXL"},
				Gender:      models.GenderMen,
				Tags:        []string{"jacket"},
				Images:      []string{"1740507-00-A_0_2000.jpg", "1740507-00-A_1.jpg"},
			},
			{
				Title:       "Men's Raven Lightweight Zip Up Bomber Jacket",
				Description: descr("Introducing the Tesla Raven Collection. The Men's Raven Lightweight Zip Up Bomber has a premium, modern silhouette made from a sustainable bamboo cotton blend."),
				Price:       price(130),
				Stock:       stock(10),
				Sizes:       []string{"S", "M", "L", "XL", "XXL"},
				Gender:      models.GenderMen,
				Tags:        []string{"shirt"},
				Images:      []string{"1740250-00-A_0_2000.jpg", "1740250-00-A_1.jpg"},
			},
			{
				Title:       "Women's Cropped Puffer Jacket",
				Description: descr("The Women's Cropped Puffer Jacket features a uniquely cropped silhouette for the perfect, modern style while on the go during the cozy season ahead."),
				Price:       price(225),
				Stock:       stock(85),
				Sizes:       []string{"XS", "S", "M"},
				Gender:      models.GenderWomen,
				Tags:        []string{"hoodie"},
				Images:      []string{"1740535-00-A_0_2000.jpg", "1740535-00-A_1.jpg"},
			},
			{
				Title:       "Kids Cybertruck Long Sleeve Tee",
				Description: descr("The Kids Cybertruck Long Sleeve Tee features a water-based Cybertruck graffiti wordmark across the chest."),
				Price:       price(30),
				Stock:       stock(10),
				Sizes:       []string{"XS", "S", "M"},
				Gender:      models.GenderKid,
				Tags:        []string{"shirt"},
				Images:      []string{"1742693-00-A_1_2000.jpg", "1742693-00-A_0.jpg"},
			},
			{
				Title:       "Unisex Logo Cap",
				Description: descr("A six-panel cap with an embroidered wordmark and an adjustable strap."),
				Price:       price(25),
				Stock:       stock(40),
				Sizes:       []string{"M", "L"},
				Gender:      models.GenderUnisex,
				Tags:        []string{"hat"},
				Images:      []string{"1657916-00-A_0_2000.jpg"},
			},
		},
	}
}
