package mockapi

import "github.com/qkart/storefront/internal/storefront/model"

// SeedProducts is the catalog a fresh Server starts with.
var SeedProducts = []model.Product{
	{
		ID:       "KCRwjF7lN97HnEaY",
		Name:     "iPhone XR",
		Category: "Phones",
		Cost:     100,
		Rating:   4,
		Image:    "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/iphone-xr.png",
	},
	{
		ID:       "BW0jAAeDJmlZCF8i",
		Name:     "Basketball",
		Category: "Sports",
		Cost:     48,
		Rating:   5,
		Image:    "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/basketball.png",
	},
	{
		ID:       "upLK9JbQ4rMhTwt4",
		Name:     "YONEX Smash Badminton Racquet",
		Category: "Sports",
		Cost:     100,
		Rating:   5,
		Image:    "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/racquet.png",
	},
	{
		ID:       "v4sLtEcMpzabRyfx",
		Name:     "Tan Leatherette Weekender Duffle",
		Category: "Fashion",
		Cost:     150,
		Rating:   4,
		Image:    "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/duffle.png",
	},
	{
		ID:       "a4sLtEcMpzabRyfx",
		Name:     "The Minimalist Slim Leather Watch",
		Category: "Electronics",
		Cost:     60,
		Rating:   5,
		Image:    "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/watch.png",
	},
	{
		ID:       "ZBZ8QGrUNqgDFe3t",
		Name:     "Atomberg 1200mm BLDC Fan",
		Category: "Home & Kitchen",
		Cost:     120,
		Rating:   4.5,
		Image:    "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/fan.png",
	},
	{
		ID:       "2eNdRzYmnWAiZCy2",
		Name:     "Sony WH-1000XM5 Wireless Headphones",
		Category: "Electronics",
		Cost:     300,
		Rating:   4.5,
		Image:    "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/headphones.png",
	},
	{
		ID:       "9PiWl6XchEoQ4f6B",
		Name:     "Acer Aspire 5 Laptop",
		Category: "Computers",
		Cost:     650,
		Rating:   4,
		Image:    "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/laptop.png",
	},
}
