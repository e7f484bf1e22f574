package ingredient

import (
	"context"
	"sync"
	"testing"

	"kitchen-planner/domain"
	"kitchen-planner/entities"
	"kitchen-planner/internal/testdb"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (c *countingInvalidator) Invalidate(context.Context) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

var admin = domain.Principal{UserID: "admin-1", Role: domain.RoleSuperAdmin}

func setup(t *testing.T) (IngredientService, IngredientRepository, *countingInvalidator) {
	db := testdb.New(t)
	repo := NewIngredientRepository(db)
	plans := &countingInvalidator{}
	return NewIngredientService(repo, plans), repo, plans
}

func TestAddIngredient(t *testing.T) {
	svc, repo, _ := setup(t)
	ctx := context.Background()

	res, err := svc.AddIngredient(ctx, admin, domain.AddIngredientRequest{Name: "  Rice ", Quantity: decimal.RequireFromString("10.5")})
	require.NoError(t, err)
	assert.Equal(t, "Rice", res.Name)
	assert.Equal(t, domain.DefaultUnit, res.Unit)

	movements, err := repo.GetMovements(ctx, uuid.MustParse(res.ID))
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entities.MovementInitial, movements[0].Reason)
	assert.Equal(t, "admin-1", movements[0].PerformedBy)
	assert.True(t, movements[0].NewQuantity.Equal(decimal.RequireFromString("10.5")))
}

func TestAddIngredientValidation(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	_, err := svc.AddIngredient(ctx, admin, domain.AddIngredientRequest{Name: "Salt", Quantity: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.AddIngredient(ctx, admin, domain.AddIngredientRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestUpdateIngredientSetsAbsoluteQuantity(t *testing.T) {
	svc, repo, plans := setup(t)
	ctx := context.Background()

	created, err := svc.AddIngredient(ctx, admin, domain.AddIngredientRequest{Name: "Chicken", Quantity: decimal.NewFromInt(5), Unit: "kg"})
	require.NoError(t, err)

	quantity := decimal.RequireFromString("2.5")
	updated, err := svc.UpdateIngredient(ctx, admin, created.ID, domain.UpdateIngredientRequest{Quantity: &quantity})
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(quantity))
	assert.Equal(t, "Chicken", updated.Name)
	assert.Equal(t, 1, plans.calls)

	movements, err := repo.GetMovements(ctx, uuid.MustParse(created.ID))
	require.NoError(t, err)
	require.Len(t, movements, 2)
	var adjustment entities.StockMovement
	for _, m := range movements {
		if m.Reason == entities.MovementAdjustment {
			adjustment = m
		}
	}
	assert.True(t, adjustment.PreviousQuantity.Equal(decimal.NewFromInt(5)))
	assert.True(t, adjustment.Quantity.Equal(decimal.RequireFromString("-2.5")))
}

func TestUpdateIngredientErrors(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	_, err := svc.UpdateIngredient(ctx, admin, "not-a-uuid", domain.UpdateIngredientRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.UpdateIngredient(ctx, admin, uuid.NewString(), domain.UpdateIngredientRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created, err := svc.AddIngredient(ctx, admin, domain.AddIngredientRequest{Name: "Oil"})
	require.NoError(t, err)
	negative := decimal.NewFromInt(-3)
	_, err = svc.UpdateIngredient(ctx, admin, created.ID, domain.UpdateIngredientRequest{Quantity: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestUpsertIngredientMatchesNameCaseInsensitively(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	first, err := svc.UpsertIngredient(ctx, admin, domain.AddIngredientRequest{Name: "Tomato", Quantity: decimal.NewFromInt(3), Unit: "kg"})
	require.NoError(t, err)

	second, err := svc.UpsertIngredient(ctx, admin, domain.AddIngredientRequest{Name: "tomato", Quantity: decimal.NewFromInt(7)})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Quantity.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, "kg", second.Unit)

	all, err := svc.GetIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestIngredientNamesAreUniqueIgnoringCase(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	rice, err := svc.AddIngredient(ctx, admin, domain.AddIngredientRequest{Name: "Rice", Quantity: decimal.NewFromInt(4)})
	require.NoError(t, err)

	_, err = svc.AddIngredient(ctx, admin, domain.AddIngredientRequest{Name: " rice ", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	beans, err := svc.AddIngredient(ctx, admin, domain.AddIngredientRequest{Name: "Beans"})
	require.NoError(t, err)
	_, err = svc.UpdateIngredient(ctx, admin, beans.ID, domain.UpdateIngredientRequest{Name: "RICE"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	renamed, err := svc.UpdateIngredient(ctx, admin, rice.ID, domain.UpdateIngredientRequest{Name: "rice"})
	require.NoError(t, err)
	assert.Equal(t, "rice", renamed.Name)

	all, err := svc.GetIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteIngredient(t *testing.T) {
	db := testdb.New(t)
	repo := NewIngredientRepository(db)
	svc := NewIngredientService(repo, nil)
	ctx := context.Background()

	used, err := svc.AddIngredient(ctx, admin, domain.AddIngredientRequest{Name: "Flour", Quantity: decimal.NewFromInt(1)})
	require.NoError(t, err)
	spare, err := svc.AddIngredient(ctx, admin, domain.AddIngredientRequest{Name: "Yeast", Quantity: decimal.NewFromInt(1)})
	require.NoError(t, err)

	item := entities.MenuItem{Name: "Bread"}
	require.NoError(t, db.Create(&item).Error)
	require.NoError(t, db.Create(&entities.RecipeIngredient{
		MenuItemID:       item.ID,
		IngredientID:     uuid.MustParse(used.ID),
		QuantityRequired: decimal.RequireFromString("0.2"),
	}).Error)

	assert.ErrorIs(t, svc.DeleteIngredient(ctx, admin, used.ID), domain.ErrConflict)
	assert.ErrorIs(t, svc.DeleteIngredient(ctx, admin, uuid.NewString()), domain.ErrNotFound)
	require.NoError(t, svc.DeleteIngredient(ctx, admin, spare.ID))

	all, err := svc.GetIngredients(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Flour", all[0].Name)

	movements, err := repo.GetMovements(ctx, uuid.MustParse(spare.ID))
	require.NoError(t, err)
	assert.Len(t, movements, 1)

	_, err = svc.GetMovements(ctx, spare.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecrementGuardsAvailableStock(t *testing.T) {
	_, repo, _ := setup(t)
	ctx := context.Background()

	ingredient := entities.Ingredient{Name: "Sugar", Quantity: decimal.NewFromInt(2), Unit: "kg"}
	require.NoError(t, repo.Create(ctx, &ingredient))

	ok, err := repo.Decrement(ctx, ingredient.ID, decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Decrement(ctx, ingredient.ID, decimal.RequireFromString("1.5"))
	require.NoError(t, err)
	assert.True(t, ok)

	reloaded, err := repo.GetByID(ctx, ingredient.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Quantity.Equal(decimal.RequireFromString("0.5")))
}
