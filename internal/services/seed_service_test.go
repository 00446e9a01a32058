package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
)

func TestSeedIfEmpty(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	seed := NewSeedService(env.kids, env.pantry)

	seeded, err := seed.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	kids, err := env.kids.ListKids(ctx)
	require.NoError(t, err)
	assert.Len(t, kids, len(sampleKids()))

	ingredients, err := env.pantry.ListIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, ingredients, len(sampleIngredients()))

	categories := map[domain.Category]bool{}
	for _, ing := range ingredients {
		categories[ing.Category] = true
	}
	assert.Len(t, categories, len(domain.Categories()))

	seeded, err = seed.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestSeedSkipsWhenPantryHasItems(t *testing.T) {
	env := newEnv(t)
	env.addIngredient(t, "Apple", domain.CategoryFruit, domain.NutritionInfo{})

	seeded, err := NewSeedService(env.kids, env.pantry).SeedIfEmpty(context.Background())
	require.NoError(t, err)
	assert.False(t, seeded)
}
