package domain

// DefaultSettings is the configuration used until the admin saves their own.
func DefaultSettings() Settings {
	return Settings{
		StoreName:     "AuraCommerce",
		AdminPassword: "admin",
		GpayID:        "yourname@okaxis",
	}
}

// SeedProducts is the catalog shipped with a fresh store.
func SeedProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Minimalist Quartz Watch",
			Description: "A timeless piece with a sleek stainless steel finish and premium leather strap.",
			Price:       129.99,
			Category:    "Accessories",
			Image:       "https://picsum.photos/seed/watch/600/600",
			Stock:       15,
		},
		{
			ID:          "2",
			Name:        "Premium Wireless Headphones",
			Description: "Noise-canceling technology with 40 hours of battery life and studio-quality sound.",
			Price:       249.50,
			Category:    "Electronics",
			Image:       "https://picsum.photos/seed/audio/600/600",
			Stock:       8,
		},
		{
			ID:          "3",
			Name:        "Organic Cotton Tee",
			Description: "Breathable, sustainable, and incredibly soft. Perfect for everyday comfort.",
			Price:       35.00,
			Category:    "Apparel",
			Image:       "https://picsum.photos/seed/shirt/600/600",
			Stock:       50,
		},
	}
}
