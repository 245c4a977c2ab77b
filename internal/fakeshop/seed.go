package fakeshop

import (
	"github.com/shopspring/decimal"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// SeedProducts is the demo catalog, oldest first.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{ID: "p-1001", Title: "Paper Lantern", Description: "Warm light for small rooms", Price: decimal.RequireFromString("24.00"), Category: "Home", Images: []string{"https://img.example.com/lantern.jpg"}, Rating: 4.1},
		{ID: "p-1002", Title: "Field Notes", Description: "Pocket notebooks, pack of three", Price: decimal.RequireFromString("12.50"), Category: "Books", Images: []string{"https://img.example.com/notes.jpg"}, Rating: 4.7},
		{ID: "p-1003", Title: "Trail Mug", Description: "Enamel mug that survives campfires", Price: decimal.RequireFromString("18.00"), Category: "Outdoors", Images: []string{"https://img.example.com/mug.jpg", "https://img.example.com/mug-side.jpg"}, Rating: 3.9},
		{ID: "p-1004", Title: "The Long Road", Description: "A novel about maps and the people who draw them", Price: decimal.RequireFromString("15.99"), Category: "Books", Images: []string{"https://img.example.com/road.jpg"}, Rating: 4.3},
		{ID: "p-1005", Title: "Wool Throw", Description: "Heavy blanket for cold evenings", Price: decimal.RequireFromString("59.00"), Category: "Home", Images: nil, Rating: 4.8},
		{ID: "p-1006", Title: "Headlamp", Description: "Rechargeable, 400 lumens", Price: decimal.RequireFromString("32.75"), Category: "Outdoors", Images: []string{"https://img.example.com/headlamp.jpg"}, Rating: 4.5},
	}
}
