package repository

import (
	"time"

	"github.com/aurelia-jewels/catalog-api/internal/domain"
)

func ref[T any](v T) *T { return &v }

// seedProducts returns the bundled catalog used both as initial data and
// as the static fallback when an upstream store is unreachable.
func seedProducts() []*domain.Product {
	at := func(value string) time.Time {
		t, _ := time.Parse(time.RFC3339, value)
		return t
	}

	return []*domain.Product{
		{
			ID:            "moonlight-silver-ring-1a2b",
			Name:          "Moonlight Silver Ring",
			Description:   "A slim 925 silver band with a crescent moon cutout.",
			Price:         1299,
			DiscountPrice: ref(1799),
			Category:      domain.CategoryRings,
			Images:        []string{},
			Material:      "925 Sterling Silver",
			InStock:       true,
			IsNew:         true,
			IsFeatured:    true,
			Weight:        "2.1 g",
			Tags:          []string{"silver", "moon", "minimal"},
			Rating:        ref(4.6),
			ReviewCount:   41,
			CreatedAt:     at("2024-03-18T10:00:00Z"),
		},
		{
			ID:          "rose-quartz-pendant-3c4d",
			Name:        "Rose Quartz Pendant",
			Description: "Polished rose quartz teardrop on a gold-plated chain.",
			Price:       1899,
			Category:    domain.CategoryPendants,
			Images:      []string{},
			Material:    "Rose Quartz, Gold-plated brass",
			InStock:     true,
			IsFeatured:  true,
			Dimensions:  "18 x 12 mm",
			Tags:        []string{"quartz", "pink", "gift"},
			Rating:      ref(4.8),
			ReviewCount: 27,
			CreatedAt:   at("2024-02-02T09:30:00Z"),
		},
		{
			ID:          "ocean-pearl-necklace-5e6f",
			Name:        "Ocean Pearl Necklace",
			Description: "Freshwater pearls strung on silk with a silver clasp.",
			Price:       3499,
			Category:    domain.CategoryNecklaces,
			Images:      []string{},
			Material:    "Freshwater Pearl, 925 Silver",
			InStock:     true,
			Tags:        []string{"pearl", "classic"},
			Rating:      ref(4.9),
			ReviewCount: 63,
			CreatedAt:   at("2023-11-12T15:45:00Z"),
		},
		{
			ID:            "twilight-hoop-earrings-7g8h",
			Name:          "Twilight Hoop Earrings",
			Description:   "Oxidised silver hoops with tiny zircon studs.",
			Price:         999,
			DiscountPrice: ref(1399),
			Category:      domain.CategoryEarrings,
			Images:        []string{},
			Material:      "Oxidised 925 Silver",
			InStock:       false,
			Tags:          []string{"silver", "hoops", "evening"},
			Rating:        ref(4.3),
			ReviewCount:   18,
			CreatedAt:     at("2024-01-20T12:00:00Z"),
		},
		{
			ID:          "sunbeam-anklet-9i0j",
			Name:        "Sunbeam Anklet",
			Description: "Delicate gold-tone anklet with sun charms.",
			Price:       749,
			Category:    domain.CategoryAnklets,
			Images:      []string{},
			Material:    "Gold-plated brass",
			InStock:     true,
			IsNew:       true,
			Tags:        []string{"gold", "summer", "charm"},
			ReviewCount: 0,
			CreatedAt:   at("2024-04-05T08:15:00Z"),
		},
		{
			ID:          "raw-amethyst-stone-1k2l",
			Name:        "Raw Amethyst Stone",
			Description: "Unpolished amethyst cluster, each piece unique.",
			Price:       599,
			Category:    domain.CategoryStones,
			Images:      []string{},
			Material:    "Amethyst",
			InStock:     true,
			Tags:        []string{"amethyst", "raw", "healing"},
			Rating:      ref(4.1),
			ReviewCount: 9,
			CreatedAt:   at("2023-12-01T17:20:00Z"),
		},
		{
			ID:          "braided-leather-bracelet-3m4n",
			Name:        "Braided Leather Bracelet",
			Description: "Hand-braided leather with a magnetic silver clasp.",
			Price:       849,
			Category:    domain.CategoryBracelets,
			Images:      []string{},
			Material:    "Leather, 925 Silver",
			InStock:     true,
			Tags:        []string{"leather", "unisex"},
			Rating:      ref(4.0),
			ReviewCount: 12,
			CreatedAt:   at("2024-03-01T11:05:00Z"),
		},
	}
}
