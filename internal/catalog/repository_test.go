package catalog_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fjod/storefront/internal/catalog"
	"github.com/fjod/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seededProducts = 9

func setupTestDB(t *testing.T) *catalog.Repository {
	repo, err := catalog.NewRepository(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)

	require.NoError(t, repo.RunMigrations("./migrations"))
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestGetAllProducts_ReturnsSeededCatalog(t *testing.T) {
	repo := setupTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	products, err := repo.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, seededProducts)
}

func TestGetAllProducts_SortedByName(t *testing.T) {
	repo := setupTestDB(t)

	products, err := repo.GetAllProducts(context.Background())
	require.NoError(t, err)

	for i := 1; i < len(products); i++ {
		assert.LessOrEqual(t, products[i-1].Name, products[i].Name)
	}
}

func TestGetProduct_Found(t *testing.T) {
	repo := setupTestDB(t)

	all, err := repo.GetAllProducts(context.Background())
	require.NoError(t, err)
	want := all[0]

	p, err := repo.GetProduct(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Name, p.Name)
	assert.True(t, want.Price.Equal(p.Price))
	assert.False(t, p.CreatedAt.IsZero())
}

func TestGetProduct_KeepsDecimalPrice(t *testing.T) {
	repo := setupTestDB(t)

	all, err := repo.GetAllProducts(context.Background())
	require.NoError(t, err)

	var mirror *domain.Product
	for _, p := range all {
		if p.Name == "Mirror" {
			mirror = p
		}
	}
	require.NotNil(t, mirror)
	assert.True(t, mirror.Price.Equal(decimal.RequireFromString("89.90")))
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	p, err := repo.GetProduct(context.Background(), 999999)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Nil(t, p)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	repo := setupTestDB(t)
	assert.NoError(t, repo.RunMigrations("./migrations"))
}

func TestGetCategoryConditions(t *testing.T) {
	repo := setupTestDB(t)

	filters, err := repo.GetCategoryConditions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"Decor":     {"New", "Used - good"},
		"Furniture": {"Used - fair", "Used - good"},
		"Lighting":  {"New", "Used - good"},
	}, filters)
}
