package bestbuy

import "strings"

// The sample pool keeps discovery available when the catalog source is not.
// It is a process-wide read-only table: selected by naive substring match of
// the search term against a category keyword, else served head-first from the
// default pool. Order within a category is the catalog-defined order.

type sampleCategory struct {
	keyword  string
	products []Product
}

var sampleCatalog = []sampleCategory{
	{
		keyword: "coffee",
		products: []Product{
			{
				SKU:                   6446101,
				Name:                  "Keurig K-Elite Single-Serve K-Cup Pod Coffee Maker",
				SalePrice:             169.99,
				RegularPrice:          ptr(189.99),
				Manufacturer:          ptr("Keurig"),
				ModelNumber:           ptr("K90"),
				ShortDescription:      ptr("Brew your favorite coffee, tea, hot cocoa and more with this Keurig K-Elite coffee maker."),
				Image:                 ptr("https://pisces.bbystatic.com/image2/BestBuy_US/images/products/6446/6446101_sd.jpg"),
				URL:                   ptr("https://www.bestbuy.com/site/6446101.p"),
				CustomerReviewAverage: ptr(4.5),
				InStoreAvailability:   ptr(true),
				OnlineAvailability:    ptr(true),
			},
			{
				SKU:                   6120833,
				Name:                  "Ninja 12-Cup Programmable Coffee Maker",
				SalePrice:             89.99,
				RegularPrice:          ptr(99.99),
				Manufacturer:          ptr("Ninja"),
				ModelNumber:           ptr("CE251"),
				ShortDescription:      ptr("Classic coffee maker with advanced features for a perfect cup every time."),
				Image:                 ptr("https://pisces.bbystatic.com/image2/BestBuy_US/images/products/6120/6120833_sd.jpg"),
				URL:                   ptr("https://www.bestbuy.com/site/6120833.p"),
				CustomerReviewAverage: ptr(4.7),
				InStoreAvailability:   ptr(true),
				OnlineAvailability:    ptr(true),
			},
			{
				SKU:                   6372886,
				Name:                  "Mr. Coffee 5-Cup Mini Brew Coffee Maker",
				SalePrice:             24.99,
				RegularPrice:          ptr(29.99),
				Manufacturer:          ptr("Mr. Coffee"),
				ModelNumber:           ptr("BVMC-PSTX"),
				ShortDescription:      ptr("Compact coffee maker perfect for small spaces."),
				Image:                 ptr("https://pisces.bbystatic.com/image2/BestBuy_US/images/products/6372/6372886_sd.jpg"),
				URL:                   ptr("https://www.bestbuy.com/site/6372886.p"),
				CustomerReviewAverage: ptr(4.2),
				InStoreAvailability:   ptr(true),
				OnlineAvailability:    ptr(true),
			},
		},
	},
	{
		keyword: "laptop",
		products: []Product{
			{
				SKU:                   6534616,
				Name:                  "MacBook Air 13.6\" Laptop - Apple M2 chip - 8GB Memory - 256GB SSD",
				SalePrice:             999.99,
				RegularPrice:          ptr(1199.99),
				Manufacturer:          ptr("Apple"),
				ModelNumber:           ptr("MLY33LL/A"),
				ShortDescription:      ptr("Supercharged by M2 chip for incredible performance."),
				Image:                 ptr("https://pisces.bbystatic.com/image2/BestBuy_US/images/products/6534/6534616_sd.jpg"),
				URL:                   ptr("https://www.bestbuy.com/site/6534616.p"),
				CustomerReviewAverage: ptr(4.8),
				InStoreAvailability:   ptr(true),
				OnlineAvailability:    ptr(true),
			},
			{
				SKU:                   6515649,
				Name:                  "HP 15.6\" Touch-Screen Laptop - Intel Core i5 - 8GB Memory - 256GB SSD",
				SalePrice:             499.99,
				RegularPrice:          ptr(599.99),
				Manufacturer:          ptr("HP"),
				ModelNumber:           ptr("15-dy2795wm"),
				ShortDescription:      ptr("Reliable performance for everyday computing."),
				Image:                 ptr("https://pisces.bbystatic.com/image2/BestBuy_US/images/products/6515/6515649_sd.jpg"),
				URL:                   ptr("https://www.bestbuy.com/site/6515649.p"),
				CustomerReviewAverage: ptr(4.3),
				InStoreAvailability:   ptr(true),
				OnlineAvailability:    ptr(true),
			},
			{
				SKU:                   6542175,
				Name:                  "Dell Inspiron 2-in-1 14\" Touch-Screen Laptop - Intel Core i7 - 16GB Memory",
				SalePrice:             799.99,
				RegularPrice:          ptr(999.99),
				Manufacturer:          ptr("Dell"),
				ModelNumber:           ptr("I7420-7683BLU-PUS"),
				ShortDescription:      ptr("Versatile 2-in-1 design for work and entertainment."),
				Image:                 ptr("https://pisces.bbystatic.com/image2/BestBuy_US/images/products/6542/6542175_sd.jpg"),
				URL:                   ptr("https://www.bestbuy.com/site/6542175.p"),
				CustomerReviewAverage: ptr(4.6),
				InStoreAvailability:   ptr(false),
				OnlineAvailability:    ptr(true),
			},
		},
	},
	{
		keyword: "headphones",
		products: []Product{
			{
				SKU:                   6505727,
				Name:                  "Sony WH-1000XM5 Wireless Noise-Cancelling Over-the-Ear Headphones",
				SalePrice:             349.99,
				RegularPrice:          ptr(399.99),
				Manufacturer:          ptr("Sony"),
				ModelNumber:           ptr("WH1000XM5/B"),
				ShortDescription:      ptr("Industry-leading noise cancellation with premium sound quality."),
				Image:                 ptr("https://pisces.bbystatic.com/image2/BestBuy_US/images/products/6505/6505727_sd.jpg"),
				URL:                   ptr("https://www.bestbuy.com/site/6505727.p"),
				CustomerReviewAverage: ptr(4.9),
				InStoreAvailability:   ptr(true),
				OnlineAvailability:    ptr(true),
			},
			{
				SKU:                   6447909,
				Name:                  "Apple AirPods Pro (2nd generation) with MagSafe Case",
				SalePrice:             199.99,
				RegularPrice:          ptr(249.99),
				Manufacturer:          ptr("Apple"),
				ModelNumber:           ptr("MTJV3AM/A"),
				ShortDescription:      ptr("Active Noise Cancellation and Transparency mode."),
				Image:                 ptr("https://pisces.bbystatic.com/image2/BestBuy_US/images/products/6447/6447909_sd.jpg"),
				URL:                   ptr("https://www.bestbuy.com/site/6447909.p"),
				CustomerReviewAverage: ptr(4.8),
				InStoreAvailability:   ptr(true),
				OnlineAvailability:    ptr(true),
			},
			{
				SKU:                   6428457,
				Name:                  "Beats Studio3 Wireless Noise Cancelling Over-Ear Headphones",
				SalePrice:             199.99,
				RegularPrice:          ptr(349.99),
				Manufacturer:          ptr("Beats by Dr. Dre"),
				ModelNumber:           ptr("MX3X2LL/A"),
				ShortDescription:      ptr("Pure adaptive noise canceling with premium sound."),
				Image:                 ptr("https://pisces.bbystatic.com/image2/BestBuy_US/images/products/6428/6428457_sd.jpg"),
				URL:                   ptr("https://www.bestbuy.com/site/6428457.p"),
				CustomerReviewAverage: ptr(4.5),
				InStoreAvailability:   ptr(true),
				OnlineAvailability:    ptr(true),
			},
		},
	},
	{
		keyword: "tv",
		products: []Product{
			{
				SKU:                   6536735,
				Name:                  "Samsung 65\" Class QLED 4K UHD Smart Tizen TV",
				SalePrice:             897.99,
				RegularPrice:          ptr(1299.99),
				Manufacturer:          ptr("Samsung"),
				ModelNumber:           ptr("QN65Q60CAFXZA"),
				ShortDescription:      ptr("Quantum Dot technology for brilliant colors."),
				Image:                 ptr("https://pisces.bbystatic.com/image2/BestBuy_US/images/products/6536/6536735_sd.jpg"),
				URL:                   ptr("https://www.bestbuy.com/site/6536735.p"),
				CustomerReviewAverage: ptr(4.6),
				InStoreAvailability:   ptr(true),
				OnlineAvailability:    ptr(true),
			},
			{
				SKU:                   6522019,
				Name:                  "LG 55\" Class OLED evo C3 Series Smart TV",
				SalePrice:             1299.99,
				RegularPrice:          ptr(1799.99),
				Manufacturer:          ptr("LG"),
				ModelNumber:           ptr("OLED55C3PUA"),
				ShortDescription:      ptr("Self-lit OLED pixels for perfect black and infinite contrast."),
				Image:                 ptr("https://pisces.bbystatic.com/image2/BestBuy_US/images/products/6522/6522019_sd.jpg"),
				URL:                   ptr("https://www.bestbuy.com/site/6522019.p"),
				CustomerReviewAverage: ptr(4.8),
				InStoreAvailability:   ptr(false),
				OnlineAvailability:    ptr(true),
			},
			{
				SKU:                   6501901,
				Name:                  "TCL 50\" Class S4 4K UHD HDR LED Smart TV with Google TV",
				SalePrice:             249.99,
				RegularPrice:          ptr(329.99),
				Manufacturer:          ptr("TCL"),
				ModelNumber:           ptr("50S450G"),
				ShortDescription:      ptr("Stunning 4K picture quality at an incredible value."),
				Image:                 ptr("https://pisces.bbystatic.com/image2/BestBuy_US/images/products/6501/6501901_sd.jpg"),
				URL:                   ptr("https://www.bestbuy.com/site/6501901.p"),
				CustomerReviewAverage: ptr(4.4),
				InStoreAvailability:   ptr(true),
				OnlineAvailability:    ptr(true),
			},
		},
	},
}

// SampleProducts returns up to count items from the sample pool for the given
// term. A category whose keyword occurs in the term wins; otherwise the pool
// is served from the top in its defined order.
func SampleProducts(term string, count int) []Product {
	if count < 1 {
		return nil
	}

	lower := strings.ToLower(term)
	for _, category := range sampleCatalog {
		if strings.Contains(lower, category.keyword) {
			return clip(category.products, count)
		}
	}

	pool := make([]Product, 0, count)
	for _, category := range sampleCatalog {
		pool = append(pool, category.products...)
		if len(pool) >= count {
			break
		}
	}
	return clip(pool, count)
}

func clip(products []Product, count int) []Product {
	if len(products) > count {
		products = products[:count]
	}
	out := make([]Product, len(products))
	copy(out, products)
	return out
}
