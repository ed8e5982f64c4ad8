package drink

import "context"

// Update carries the fields of a partial update. A nil Title or nil Recipe
// means "not supplied"; the stored value is left untouched.
type Update struct {
	Title  *string
	Recipe []Ingredient
}

// Repository is the storage contract for the drink catalog.
type Repository interface {
	// ListAll returns every drink in a stable order. An empty catalog is
	// an empty slice, not an error.
	ListAll(ctx context.Context) ([]*Drink, error)

	// FindByID returns (nil, nil) when no drink has the given id.
	FindByID(ctx context.Context, id int) (*Drink, error)

	// Create persists a new drink and fills in its assigned ID.
	Create(ctx context.Context, d *Drink) error

	// Update applies the supplied fields to an existing drink and returns
	// the updated entity. Missing id yields a not-found kind error.
	Update(ctx context.Context, id int, upd Update) (*Drink, error)

	// Delete removes a drink permanently. Missing id yields a not-found
	// kind error.
	Delete(ctx context.Context, id int) error
}
