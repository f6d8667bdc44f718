package catalog

func discount(v float64) *float64 {
	return &v
}

func seedProducts() []Product {
	return []Product{
		{
			ProductID:   1,
			SupplierID:  1,
			Name:        "SmartFeeder One",
			Description: "Wi-Fi feeder with portion control and a schedule your cat cannot argue with.",
			Price:       129.99,
			SKU:         "FEED-SMART-001",
			Unit:        "piece",
			ImgName:     "smart-feeder.png",
			Discount:    discount(0.25),
		},
		{
			ProductID:   2,
			SupplierID:  1,
			Name:        "AutoClean Litter Box",
			Description: "Self-cleaning litter box with odor sealing.",
			Price:       249.99,
			SKU:         "LITTER-AUTO-001",
			Unit:        "piece",
			ImgName:     "autoclean-litter.png",
		},
		{
			ProductID:   3,
			SupplierID:  2,
			Name:        "Laser Chase Toy",
			Description: "Motion-activated laser toy with randomised patterns.",
			Price:       39.99,
			SKU:         "TOY-LASER-001",
			Unit:        "piece",
			ImgName:     "laser-toy.png",
			Discount:    discount(0.1),
		},
		{
			ProductID:   4,
			SupplierID:  2,
			Name:        "Purr Fountain",
			Description: "Filtered water fountain with a quiet pump.",
			Price:       49.99,
			SKU:         "WATER-FOUNT-001",
			Unit:        "piece",
			ImgName:     "purr-fountain.png",
		},
		{
			ProductID:   5,
			SupplierID:  3,
			Name:        "Catnip Refill Pack",
			Description: "Organic catnip, three pouches per pack.",
			Price:       12.5,
			SKU:         "NIP-REFILL-003",
			Unit:        "pack",
			ImgName:     "catnip-pack.png",
		},
		{
			ProductID:   6,
			SupplierID:  3,
			Name:        "Cozy Heated Bed",
			Description: "Low-voltage heated bed with a washable cover.",
			Price:       89,
			SKU:         "BED-HEAT-001",
			Unit:        "piece",
			ImgName:     "heated-bed.png",
			Discount:    discount(0.15),
		},
	}
}
