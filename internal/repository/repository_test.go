package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/lunchlego/internal/config"
	"github.com/vladimiradmaev/lunchlego/internal/database"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
)

var timeEqual = cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(config.DBConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	return NewStore(db)
}

func stamp(day int) time.Time {
	return time.Date(2024, 5, day, 8, 30, 0, 0, time.UTC)
}

func sampleKid(id string) domain.Kid {
	return domain.Kid{
		ID:          id,
		Name:        "Mia",
		Age:         7,
		Allergies:   []string{"peanuts"},
		Preferences: []string{"apples", "cheese"},
		Dislikes:    []string{},
		CreatedAt:   stamp(1),
		UpdatedAt:   stamp(1),
	}
}

func sampleIngredient(id string, cat domain.Category, expires *time.Time) domain.Ingredient {
	return domain.Ingredient{
		ID:       id,
		Name:     "Item " + id,
		Category: cat,
		NutritionInfo: domain.NutritionInfo{
			Calories: 52, Protein: 0.3, Carbs: 14, Fiber: 2.4, Sugar: 10,
			Vitamins: []string{"C"},
		},
		ExpirationDate: expires,
		Quantity:       6,
		Unit:           "pieces",
		Tags:           []string{"sweet"},
		CreatedAt:      stamp(2),
		UpdatedAt:      stamp(2),
	}
}

func sampleLunchBox(id, kidID string, day int) domain.LunchBox {
	return domain.LunchBox{
		ID:    id,
		KidID: kidID,
		Date:  time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC),
		Ingredients: []domain.LunchBoxIngredient{
			{IngredientID: "apple", Quantity: 2, Compartment: 3},
			{IngredientID: "ham", Quantity: 1, Compartment: 1},
		},
		Notes: "no crusts",
		NutritionBalance: domain.NutritionBalance{
			Protein: domain.LevelLow, Carbs: domain.LevelGood,
			Vegetables: domain.LevelLow, Fruits: domain.LevelGood,
			Overall: domain.ScoreGood,
		},
		CreatedAt: stamp(3),
		UpdatedAt: stamp(3),
	}
}

func TestKidRepository(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	kid := sampleKid("k1")
	require.NoError(t, store.Kids.Save(ctx, &kid))

	got, err := store.Kids.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(kid, *got, timeEqual))

	kid.Name = "Mia R."
	kid.UpdatedAt = stamp(5)
	require.NoError(t, store.Kids.Save(ctx, &kid))

	kids, err := store.Kids.List(ctx)
	require.NoError(t, err)
	require.Len(t, kids, 1)
	assert.Equal(t, "Mia R.", kids[0].Name)

	require.NoError(t, store.Kids.Delete(ctx, "k1"))
	_, err = store.Kids.Get(ctx, "k1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Kids.Delete(ctx, "k1"), ErrNotFound)
}

func TestKidNilSlicesComeBackEmpty(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.Kids.Save(ctx, &domain.Kid{ID: "k2", Name: "Leo"}))
	got, err := store.Kids.Get(ctx, "k2")
	require.NoError(t, err)
	assert.NotNil(t, got.Allergies)
	assert.Empty(t, got.Allergies)
}

func TestIngredientRepository(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	expires := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	apple := sampleIngredient("apple", domain.CategoryFruit, &expires)
	bread := sampleIngredient("bread", domain.CategoryGrain, nil)
	require.NoError(t, store.Ingredients.Save(ctx, &apple))
	require.NoError(t, store.Ingredients.Save(ctx, &bread))

	got, err := store.Ingredients.Get(ctx, "apple")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(apple, *got, timeEqual))

	got, err = store.Ingredients.Get(ctx, "bread")
	require.NoError(t, err)
	assert.Nil(t, got.ExpirationDate)

	all, err := store.Ingredients.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	expiring, err := store.Ingredients.ListExpiring(ctx, "2024-05-10")
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "apple", expiring[0].ID)

	expiring, err = store.Ingredients.ListExpiring(ctx, "2024-05-09")
	require.NoError(t, err)
	assert.Empty(t, expiring)

	require.NoError(t, store.Ingredients.Delete(ctx, "apple"))
	assert.ErrorIs(t, store.Ingredients.Delete(ctx, "apple"), ErrNotFound)
}

func TestLunchBoxRepository(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	lb := sampleLunchBox("lb1", "k1", 6)
	require.NoError(t, store.LunchBoxes.Save(ctx, &lb))

	got, err := store.LunchBoxes.FindByKidAndDate(ctx, "k1", "2024-05-06")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(lb, *got, timeEqual))

	_, err = store.LunchBoxes.FindByKidAndDate(ctx, "k1", "2024-05-07")
	assert.ErrorIs(t, err, ErrNotFound)

	// items are replaced, not appended
	lb.Ingredients = []domain.LunchBoxIngredient{{IngredientID: "carrot", Quantity: 1, Compartment: 2}}
	require.NoError(t, store.LunchBoxes.Save(ctx, &lb))
	got, err = store.LunchBoxes.Get(ctx, "lb1")
	require.NoError(t, err)
	assert.Equal(t, lb.Ingredients, got.Ingredients)

	other := sampleLunchBox("lb2", "k2", 5)
	require.NoError(t, store.LunchBoxes.Save(ctx, &other))

	all, err := store.LunchBoxes.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "lb2", all[0].ID)

	mine, err := store.LunchBoxes.ListByKid(ctx, "k1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "lb1", mine[0].ID)

	require.NoError(t, store.LunchBoxes.Delete(ctx, "lb1"))
	assert.ErrorIs(t, store.LunchBoxes.Delete(ctx, "lb1"), ErrNotFound)
}

func TestLunchBoxRejectsSecondBoxForSameDay(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	first := sampleLunchBox("lb1", "k1", 6)
	second := sampleLunchBox("lb2", "k1", 6)
	require.NoError(t, store.LunchBoxes.Save(ctx, &first))
	assert.Error(t, store.LunchBoxes.Save(ctx, &second))

	got, err := store.LunchBoxes.FindByKidAndDate(ctx, "k1", "2024-05-06")
	require.NoError(t, err)
	assert.Equal(t, "lb1", got.ID)
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	value, err := store.Settings.Get(ctx, domain.SettingNotifications)
	require.NoError(t, err)
	assert.Equal(t, "false", value)

	require.NoError(t, store.Settings.Set(ctx, domain.SettingNotifications, "true"))
	require.NoError(t, store.Settings.Set(ctx, "custom", `{"a":1}`))

	all, err := store.Settings.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "true", all[domain.SettingNotifications])
	assert.Equal(t, `{"a":1}`, all["custom"])
	assert.Equal(t, `"light"`, all[domain.SettingTheme])

	_, err = store.Settings.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotReplaceAll(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	old := sampleKid("old")
	require.NoError(t, store.Kids.Save(ctx, &old))
	oldBox := sampleLunchBox("old-box", "old", 1)
	require.NoError(t, store.LunchBoxes.Save(ctx, &oldBox))

	expires := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ds := &Dataset{
		Kids:        []domain.Kid{sampleKid("k1"), sampleKid("k2")},
		Ingredients: []domain.Ingredient{sampleIngredient("apple", domain.CategoryFruit, &expires)},
		LunchBoxes:  []domain.LunchBox{sampleLunchBox("lb1", "k1", 6), sampleLunchBox("lb2", "k2", 6)},
	}
	require.NoError(t, store.Snapshots.ReplaceAll(ctx, ds))

	loaded, err := store.Snapshots.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(ds, loaded, timeEqual,
		cmpopts.SortSlices(func(a, b domain.Kid) bool { return a.ID < b.ID }),
		cmpopts.SortSlices(func(a, b domain.LunchBox) bool { return a.ID < b.ID }),
	))
}

func TestSnapshotReplaceAllIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	kid := sampleKid("keep")
	require.NoError(t, store.Kids.Save(ctx, &kid))

	ds := &Dataset{
		Kids: []domain.Kid{sampleKid("k1")},
		LunchBoxes: []domain.LunchBox{
			sampleLunchBox("lb1", "k1", 6),
			sampleLunchBox("lb2", "k1", 6),
		},
	}
	assert.Error(t, store.Snapshots.ReplaceAll(ctx, ds))

	kids, err := store.Kids.List(ctx)
	require.NoError(t, err)
	require.Len(t, kids, 1)
	assert.Equal(t, "keep", kids[0].ID)
}

func TestSnapshotReplaceWithEmptyDataset(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	kid := sampleKid("k1")
	require.NoError(t, store.Kids.Save(ctx, &kid))
	require.NoError(t, store.Snapshots.ReplaceAll(ctx, &Dataset{}))

	loaded, err := store.Snapshots.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Kids)
	assert.Empty(t, loaded.Ingredients)
	assert.Empty(t, loaded.LunchBoxes)
}
