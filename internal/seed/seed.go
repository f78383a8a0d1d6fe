// Package seed generates plausible demo entries for wastectl seed.
package seed

import (
	"math/rand"

	"github.com/jaswdr/faker"

	"foodwaste/internal/core"
)

var foods = map[core.Category][]string{
	core.CategoryGrainsBakery: {"Bread", "Rice", "Pasta", "Bagels", "Croissants", "Tortillas"},
	core.CategoryDairy:        {"Milk", "Yogurt", "Cheese", "Butter", "Cream"},
	core.CategoryMeatFish:     {"Chicken", "Ground beef", "Salmon", "Ham", "Tuna"},
	core.CategoryPreparedFood: {"Leftover curry", "Soup", "Lasagna", "Stir fry", "Pizza"},
	core.CategoryOther:        {"Sauce", "Juice", "Snacks", "Cereal"},
}

// Generator produces random valid drafts.
type Generator struct {
	fake faker.Faker
}

func New() *Generator {
	return &Generator{fake: faker.New()}
}

// NewWithSeed returns a generator whose output is fixed by seed.
func NewWithSeed(seed int64) *Generator {
	return &Generator{fake: faker.NewWithSeed(rand.NewSource(seed))}
}

// Draft returns one random entry draft. Quantities fall between 0.1 and
// 3 kg in 10 g steps.
func (g *Generator) Draft() core.EntryDraft {
	categories := core.Categories()
	category := categories[g.fake.IntBetween(0, len(categories)-1)]

	reasons := core.Reasons()
	d := core.EntryDraft{
		FoodItem: g.foodItem(category),
		Category: category,
		Quantity: core.Mass{Grams: int64(g.fake.IntBetween(10, 300)) * 10},
		Reason:   reasons[g.fake.IntBetween(0, len(reasons)-1)],
	}
	if g.fake.Bool() {
		d.Notes = g.fake.Lorem().Sentence(6)
	}
	return d
}

// Drafts returns n drafts.
func (g *Generator) Drafts(n int) []core.EntryDraft {
	out := make([]core.EntryDraft, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Draft())
	}
	return out
}

func (g *Generator) foodItem(c core.Category) string {
	if c == core.CategoryFruitsVegetables {
		if g.fake.Bool() {
			return g.fake.Food().Fruit()
		}
		return g.fake.Food().Vegetable()
	}
	return g.fake.RandomStringElement(foods[c])
}
