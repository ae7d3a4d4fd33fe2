package seed

import "github.com/Divyeshhhh/steamy-sips/internal/domain"

func item(name, category, description string, price int64, calories int, image string) domain.Product {
	return domain.Product{
		Name:         name,
		Category:     category,
		Description:  description,
		Price:        price,
		Calories:     calories,
		ImageURL:     "/images/products/" + image,
		ImageAltText: name,
	}
}

// Menu is the sample catalog used for local development.
func Menu() []Product {
	return []Product{
		{
			Product: item("Caramel Latte", domain.CategoryCoffee, "Espresso, steamed milk and caramel syrup.", 450, 240, "caramel-latte.jpg"),
			Reviews: []Review{
				{
					ClientID: 1, Rating: 5, Text: "Sweet without being too much. My daily order.",
					Comments: []Comment{
						{UserID: 2, Text: "Do you get it with oat milk?", Replies: []Comment{
							{UserID: 1, Text: "Whole milk, but oat works too.", Replies: []Comment{
								{UserID: 2, Text: "Trying it tomorrow, thanks!"},
							}},
						}},
						{UserID: 3, Text: "Agreed, best latte in town."},
					},
				},
				{ClientID: 4, Rating: 4, Text: "Great taste, a bit pricey."},
				{ClientID: 5, Rating: 3, Text: "Fine, but I prefer the mocha."},
			},
		},
		{
			Product: item("Cold Brew", domain.CategoryCoffee, "Steeped for 18 hours and served over ice.", 500, 5, "cold-brew.jpg"),
			Reviews: []Review{
				{ClientID: 2, Rating: 5, Text: "Smooth and strong."},
				{ClientID: 6, Rating: 2, Text: "Too bitter for me.", Comments: []Comment{
					{UserID: 7, Text: "Add a splash of cream next time."},
				}},
			},
		},
		{Product: item("Flat White", domain.CategoryCoffee, "Ristretto shots with velvety microfoam.", 420, 120, "flat-white.jpg")},
		{
			Product: item("Earl Grey Tea", domain.CategoryTea, "Black tea scented with bergamot.", 300, 0, "earl-grey.jpg"),
			Reviews: []Review{
				{ClientID: 3, Rating: 4, Text: "Classic and fragrant."},
			},
		},
		{Product: item("Matcha Latte", domain.CategoryTea, "Ceremonial matcha whisked with steamed milk.", 480, 190, "matcha-latte.jpg")},
		{Product: item("Green Tea", domain.CategoryTea, "Sencha brewed at 80°C.", 280, 0, "green-tea.jpg")},
		{
			Product: item("Orange Juice", domain.CategoryJuice, "Freshly squeezed Valencia oranges.", 380, 110, "orange-juice.jpg"),
			Reviews: []Review{
				{ClientID: 8, Rating: 5, Text: "Tastes like summer."},
				{ClientID: 9, Rating: 5, Text: "Really fresh."},
			},
		},
		{Product: item("Green Detox", domain.CategoryJuice, "Apple, celery, cucumber, spinach and lemon.", 520, 95, "green-detox.jpg")},
		{
			Product: item("Butter Croissant", domain.CategoryPastry, "Laminated all-butter croissant, baked every morning.", 320, 270, "croissant.jpg"),
			Reviews: []Review{
				{ClientID: 1, Rating: 4, Text: "Flaky and buttery."},
			},
		},
		{Product: item("Blueberry Muffin", domain.CategoryPastry, "Muffin packed with wild blueberries.", 340, 420, "blueberry-muffin.jpg")},
		{Product: item("Turkey Club", domain.CategorySandwich, "Turkey, bacon, lettuce and tomato on sourdough.", 850, 560, "turkey-club.jpg")},
		{Product: item("Caprese Panini", domain.CategorySandwich, "Mozzarella, tomato and basil pesto on ciabatta.", 780, 480, "caprese-panini.jpg")},
	}
}
