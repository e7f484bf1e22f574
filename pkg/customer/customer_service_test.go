package customer

import (
	"context"
	"testing"

	"kitchen-planner/domain"
	"kitchen-planner/entities"
	"kitchen-planner/internal/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = domain.Principal{UserID: "admin-1", Role: domain.RoleMiddleAdmin}

func TestAddCustomerDefaults(t *testing.T) {
	svc := NewCustomerService(NewCustomerRepository(testdb.New(t)), nil)

	res, err := svc.AddCustomer(context.Background(), admin, domain.AddCustomerRequest{Name: "Ana", Phone: "+628111"})
	require.NoError(t, err)

	assert.Equal(t, entities.PatternDaily, res.OrderPattern)
	assert.True(t, res.IsActive)
	assert.Equal(t, domain.Band1400To1600, res.CalorieGroup)
}

func TestAddCustomerRejections(t *testing.T) {
	svc := NewCustomerService(NewCustomerRepository(testdb.New(t)), nil)
	ctx := context.Background()

	_, err := svc.AddCustomer(ctx, admin, domain.AddCustomerRequest{Name: "Ana", Phone: "+1"})
	require.NoError(t, err)

	_, err = svc.AddCustomer(ctx, admin, domain.AddCustomerRequest{Name: "Bo", Phone: "+1"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.AddCustomer(ctx, admin, domain.AddCustomerRequest{Name: "Cy", Phone: "+2", OrderPattern: "weekly"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.AddCustomer(ctx, admin, domain.AddCustomerRequest{Name: "", Phone: "+3"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestUpdateCustomer(t *testing.T) {
	svc := NewCustomerService(NewCustomerRepository(testdb.New(t)), nil)
	ctx := context.Background()

	created, err := svc.AddCustomer(ctx, admin, domain.AddCustomerRequest{Name: "Ana", Phone: "+1", Calories: 1200})
	require.NoError(t, err)
	assert.Equal(t, domain.Band1000To1200, created.CalorieGroup)

	calories := 2200
	inactive := false
	updated, err := svc.UpdateCustomer(ctx, admin, created.ID, domain.UpdateCustomerRequest{
		Calories:     &calories,
		OrderPattern: entities.PatternEveryOtherDayOdd,
		IsActive:     &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, 2200, updated.Calories)
	assert.Equal(t, domain.Band2200To2500, updated.CalorieGroup)
	assert.Equal(t, entities.PatternEveryOtherDayOdd, updated.OrderPattern)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Ana", updated.Name)

	_, err = svc.UpdateCustomer(ctx, admin, uuid.NewString(), domain.UpdateCustomerRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := svc.GetCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
