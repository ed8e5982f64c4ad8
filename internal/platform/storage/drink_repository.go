package storage

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"coffeebar-server-go/internal/domain/drink"
	"coffeebar-server-go/internal/platform/errors"
)

type drinkRepository struct {
	db *gorm.DB
}

// NewDrinkRepository creates the gorm-backed drink repository.
func NewDrinkRepository(db *gorm.DB) drink.Repository {
	return &drinkRepository{db: db}
}

func (r *drinkRepository) ListAll(ctx context.Context) ([]*drink.Drink, error) {
	var models []DrinkRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, errors.Wrap(errors.KindStorage, "drink.list_all", "failed to list drinks", err)
	}

	drinks := make([]*drink.Drink, len(models))
	for i, model := range models {
		d, err := r.fromModel(&model)
		if err != nil {
			return nil, err
		}
		drinks[i] = d
	}
	return drinks, nil
}

func (r *drinkRepository) FindByID(ctx context.Context, id int) (*drink.Drink, error) {
	var model DrinkRecord
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // drink does not exist
		}
		return nil, errors.Wrap(errors.KindStorage, "drink.find_by_id", "failed to find drink", err)
	}
	return r.fromModel(&model)
}

func (r *drinkRepository) Create(ctx context.Context, d *drink.Drink) error {
	recipe, err := drink.EncodeRecipe(d.Recipe)
	if err != nil {
		return err
	}

	model := &DrinkRecord{
		Title:  d.Title,
		Recipe: datatypes.JSON(recipe),
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
	if err != nil {
		return errors.Wrap(errors.KindStorage, "drink.create", "failed to create drink", err)
	}

	d.ID = int(model.ID)
	return nil
}

func (r *drinkRepository) Update(ctx context.Context, id int, upd drink.Update) (*drink.Drink, error) {
	var model DrinkRecord

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.KindNotFound, "drink.update", "drink does not exist")
			}
			return errors.Wrap(errors.KindStorage, "drink.update", "failed to find drink", err)
		}

		if upd.Title != nil {
			model.Title = *upd.Title
		}
		if upd.Recipe != nil {
			recipe, err := drink.EncodeRecipe(upd.Recipe)
			if err != nil {
				return err
			}
			model.Recipe = datatypes.JSON(recipe)
		}

		if err := tx.Save(&model).Error; err != nil {
			return errors.Wrap(errors.KindStorage, "drink.update", "failed to save drink", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.fromModel(&model)
}

func (r *drinkRepository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&DrinkRecord{}, id)
		if result.Error != nil {
			return errors.Wrap(errors.KindStorage, "drink.delete", "failed to delete drink", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.New(errors.KindNotFound, "drink.delete", "drink does not exist")
		}
		return nil
	})
}

func (r *drinkRepository) fromModel(model *DrinkRecord) (*drink.Drink, error) {
	recipe, err := drink.DecodeRecipe(model.Recipe)
	if err != nil {
		return nil, err
	}
	return &drink.Drink{
		ID:     int(model.ID),
		Title:  model.Title,
		Recipe: recipe,
	}, nil
}
