package storage

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"coffeebar-server-go/internal/domain/drink"
	"coffeebar-server-go/internal/platform/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:drinks-%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&DrinkRecord{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func espresso() *drink.Drink {
	return &drink.Drink{
		Title: "Espresso",
		Recipe: []drink.Ingredient{
			{Name: "Espresso", Color: "brown", Parts: 1},
		},
	}
}

func TestDrinkRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewDrinkRepository(newTestDB(t))

	d := espresso()
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if d.ID == 0 {
		t.Fatal("Create must assign an id")
	}

	got, err := repo.FindByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got == nil || got.Title != "Espresso" {
		t.Fatalf("unexpected drink: %+v", got)
	}
	if !reflect.DeepEqual(got.Recipe, d.Recipe) {
		t.Fatalf("recipe did not round-trip: %+v", got.Recipe)
	}

	list, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(list) != 1 || list[0].ID != d.ID {
		t.Fatalf("unexpected list: %+v", list)
	}

	if err := repo.Delete(ctx, d.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if got, err := repo.FindByID(ctx, d.ID); err != nil || got != nil {
		t.Fatalf("expected missing after delete, got %+v (err %v)", got, err)
	}
}

func TestDrinkRepositoryListOrderIsStable(t *testing.T) {
	ctx := context.Background()
	repo := NewDrinkRepository(newTestDB(t))

	titles := []string{"Cortado", "Americano", "Flat White"}
	for _, title := range titles {
		d := espresso()
		d.Title = title
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("Create %q error: %v", title, err)
		}
	}

	first, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	second, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated listing must return the same order")
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].ID >= first[i].ID {
			t.Fatalf("list not ordered by id: %+v", first)
		}
	}
}

func TestDrinkRepositoryDuplicateTitle(t *testing.T) {
	ctx := context.Background()
	repo := NewDrinkRepository(newTestDB(t))

	if err := repo.Create(ctx, espresso()); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	err := repo.Create(ctx, espresso())
	if err == nil {
		t.Fatal("expected duplicate title to fail")
	}
	if !errors.IsKind(err, errors.KindStorage) {
		t.Errorf("expected storage kind, got %v", err)
	}
}

func TestDrinkRepositoryNullRecipe(t *testing.T) {
	ctx := context.Background()
	repo := NewDrinkRepository(newTestDB(t))

	err := repo.Create(ctx, &drink.Drink{Title: "Mystery"})
	if err == nil {
		t.Fatal("expected null recipe to fail")
	}
	if !errors.IsKind(err, errors.KindStorage) {
		t.Errorf("expected storage kind, got %v", err)
	}

	list, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("failed create must not leave a row behind: %+v", list)
	}
}

func TestDrinkRepositoryPartialUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewDrinkRepository(newTestDB(t))

	d := espresso()
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	t.Run("title only", func(t *testing.T) {
		title := "Doppio"
		got, err := repo.Update(ctx, d.ID, drink.Update{Title: &title})
		if err != nil {
			t.Fatalf("Update error: %v", err)
		}
		if got.Title != "Doppio" {
			t.Errorf("title not updated: %q", got.Title)
		}
		if !reflect.DeepEqual(got.Recipe, d.Recipe) {
			t.Errorf("recipe must stay untouched: %+v", got.Recipe)
		}
	})

	t.Run("recipe only", func(t *testing.T) {
		recipe := []drink.Ingredient{
			{Name: "Espresso", Color: "brown", Parts: 2},
			{Name: "Water", Color: "blue", Parts: 1},
		}
		got, err := repo.Update(ctx, d.ID, drink.Update{Recipe: recipe})
		if err != nil {
			t.Fatalf("Update error: %v", err)
		}
		if got.Title != "Doppio" {
			t.Errorf("title must stay untouched: %q", got.Title)
		}
		if !reflect.DeepEqual(got.Recipe, recipe) {
			t.Errorf("recipe not updated: %+v", got.Recipe)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		title := "Ghost"
		_, err := repo.Update(ctx, 999999, drink.Update{Title: &title})
		if !errors.IsKind(err, errors.KindNotFound) {
			t.Errorf("expected not-found kind, got %v", err)
		}
	})
}

func TestDrinkRepositoryDeleteMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewDrinkRepository(newTestDB(t))

	err := repo.Delete(ctx, 999999)
	if !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("expected not-found kind, got %v", err)
	}
}

func TestSeed(t *testing.T) {
	db := newTestDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("Seed error: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed error: %v", err)
	}

	repo := NewDrinkRepository(db)
	list, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Water" {
		t.Fatalf("unexpected seeded catalog: %+v", list)
	}
}
