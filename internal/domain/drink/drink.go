package drink

import (
	"encoding/json"

	"coffeebar-server-go/internal/platform/errors"
)

// Ingredient is a single entry of a drink recipe. Order within the recipe
// is significant and preserved through storage.
type Ingredient struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// Drink is the catalog entity. ID is assigned by storage on creation and
// Title is unique across the catalog.
type Drink struct {
	ID     int
	Title  string
	Recipe []Ingredient
}

// ShortIngredient is the anonymous-facing ingredient shape: name omitted.
type ShortIngredient struct {
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// ShortView is the projection served to unauthenticated clients.
type ShortView struct {
	ID     int               `json:"id"`
	Title  string            `json:"title"`
	Recipe []ShortIngredient `json:"recipe"`
}

// LongView is the full-detail projection for scoped tokens.
type LongView struct {
	ID     int          `json:"id"`
	Title  string       `json:"title"`
	Recipe []Ingredient `json:"recipe"`
}

func (d *Drink) Short() ShortView {
	recipe := make([]ShortIngredient, len(d.Recipe))
	for i, ing := range d.Recipe {
		recipe[i] = ShortIngredient{Color: ing.Color, Parts: ing.Parts}
	}
	return ShortView{ID: d.ID, Title: d.Title, Recipe: recipe}
}

func (d *Drink) Long() LongView {
	recipe := make([]Ingredient, len(d.Recipe))
	copy(recipe, d.Recipe)
	return LongView{ID: d.ID, Title: d.Title, Recipe: recipe}
}

// EncodeRecipe serializes a recipe for storage. A nil recipe is rejected
// here so a row can never be written with a null recipe column.
func EncodeRecipe(recipe []Ingredient) ([]byte, error) {
	if recipe == nil {
		return nil, errors.New(errors.KindStorage, "drink.encode_recipe", "recipe must not be null")
	}
	data, err := json.Marshal(recipe)
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "drink.encode_recipe", "failed to serialize recipe", err)
	}
	return data, nil
}

// DecodeRecipe deserializes a stored recipe column.
func DecodeRecipe(data []byte) ([]Ingredient, error) {
	var recipe []Ingredient
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil, errors.Wrap(errors.KindStorage, "drink.decode_recipe", "failed to deserialize recipe", err)
	}
	return recipe, nil
}
