package ui

type Tip struct {
	Icon  string
	Title string
	Text  string
}

func Tips() []Tip {
	return []Tip{
		{"🥗", "Plan Your Meals", "Create a weekly meal plan and shopping list to buy only what you need."},
		{"🧊", "Store Properly", "Learn proper storage techniques for different foods to extend shelf life."},
		{"👁️", "First In, First Out", "Use older items before newer ones. Check expiration dates regularly."},
		{"🍲", "Get Creative", "Transform leftovers into new meals. Soup, smoothies, and stir-fries work great!"},
		{"📏", "Portion Control", "Start with smaller portions. You can always get more if needed."},
		{"🌱", "Compost", "Turn unavoidable waste into nutrient-rich compost for plants."},
	}
}
