package services_test

import (
	"context"
	"testing"

	"catalog/internal/auth"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedService_Run(t *testing.T) {
	ctx := context.Background()
	products := repositories.NewMockProductRepository()
	users := repositories.NewMockUserRepository()

	stale := &models.User{Email: "stale@example.com", FullName: "Stale", Roles: []string{auth.RoleAdmin}}
	require.NoError(t, users.Create(ctx, stale))
	_, err := products.Create(ctx, models.ProductFields{Title: "Stale Product", Sizes: []string{"M"}, Gender: models.GenderMen}, stale)
	require.NoError(t, err)

	data := services.DefaultSeedData()
	seed := services.NewSeedService(products, users, data, zap.NewNop())

	// twice, to show a run starts from a clean slate
	require.NoError(t, seed.Run(ctx))
	require.NoError(t, seed.Run(ctx))

	_, err = users.GetByEmail(ctx, "stale@example.com")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	_, err = products.FindOne(ctx, "Stale Product")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	seededAdmin, err := users.GetByEmail(ctx, data.Users[0].Email)
	require.NoError(t, err)
	assert.True(t, seededAdmin.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(seededAdmin.Password), []byte(data.Users[0].Password)))

	all, err := products.FindMany(ctx, repositories.Pagination{Limit: 100})
	require.NoError(t, err)
	require.Len(t, all, len(data.Products))
	for _, p := range all {
		require.NotNil(t, p.User, p.Title)
		assert.Equal(t, seededAdmin.ID, p.User.ID, p.Title)
		assert.NotEmpty(t, p.Images, p.Title)
	}

	sweatshirt, err := products.FindOne(ctx, "mens_chill_crew_neck_sweatshirt")
	require.NoError(t, err)
	assert.Equal(t, []string{"1740176-00-A_0_2000.jpg", "1740176-00-A_1.jpg"}, sweatshirt.ImageURLs())
}

func TestSeedService_RequiresAdminOwner(t *testing.T) {
	data := services.SeedData{
		Users:    []services.SeedUser{{Email: "u@example.com", FullName: "U", Password: "x", Roles: []string{auth.RoleUser}}},
		Products: []models.ProductFields{{Title: "Orphan", Sizes: []string{"M"}, Gender: models.GenderKid}},
	}
	seed := services.NewSeedService(repositories.NewMockProductRepository(), repositories.NewMockUserRepository(), data, zap.NewNop())

	assert.ErrorContains(t, seed.Run(context.Background()), "no admin user")
}

func TestSeedService_ReportsFailedInsert(t *testing.T) {
	data := services.SeedData{
		Users: []services.SeedUser{{Email: "a@example.com", FullName: "A", Password: "x", Roles: []string{auth.RoleAdmin}}},
		Products: []models.ProductFields{
			{Title: "Men's Tee", Sizes: []string{"M"}, Gender: models.GenderMen},
			{Title: "Mens Tee", Sizes: []string{"M"}, Gender: models.GenderMen},
		},
	}
	seed := services.NewSeedService(repositories.NewMockProductRepository(), repositories.NewMockUserRepository(), data, zap.NewNop())

	assert.ErrorIs(t, seed.Run(context.Background()), repositories.ErrDuplicateProduct)
}
