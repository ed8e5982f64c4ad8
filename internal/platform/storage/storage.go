package storage

import (
	"context"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"coffeebar-server-go/internal/domain/drink"
	"coffeebar-server-go/internal/platform/errors"
)

// Open connects to the database named by the DSN and migrates the drink
// table. The gorm logger stays silent; query failures surface through the
// repository's typed errors instead.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "storage.open", "failed to open database", err)
	}

	if err := db.AutoMigrate(&DrinkRecord{}); err != nil {
		return nil, errors.Wrap(errors.KindStorage, "storage.open", "failed to migrate database", err)
	}

	return db, nil
}

// Seed inserts a starter drink into an empty catalog. Existing rows are
// never touched.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&DrinkRecord{}).Count(&count).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "storage.seed", "failed to count drinks", err)
	}
	if count > 0 {
		return nil
	}

	repo := NewDrinkRepository(db)
	return repo.Create(context.Background(), &drink.Drink{
		Title: "Water",
		Recipe: []drink.Ingredient{
			{Name: "Water", Color: "blue", Parts: 1},
		},
	})
}
