package migration_test

import (
	"testing"
	"time"

	migration "kitchen-planner/cmd/database/migrate"
	"kitchen-planner/entities"
	"kitchen-planner/internal/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateSeedsCounter(t *testing.T) {
	db := testdb.New(t)

	var counter entities.OrderCounter
	require.NoError(t, db.First(&counter, "name = ?", entities.OrderCounterName).Error)
	assert.EqualValues(t, 0, counter.CurrentValue)
}

func TestMigrateCatchesCounterUpWithExistingOrders(t *testing.T) {
	db := testdb.New(t)

	customer := entities.Customer{Name: "Ana", Phone: "+100", OrderPattern: entities.PatternDaily, IsActive: true}
	require.NoError(t, db.Create(&customer).Error)
	require.NoError(t, db.Create(&entities.Order{
		OrderNumber:   41,
		CustomerID:    customer.ID,
		DeliveryDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Quantity:      1,
		Status:        entities.OrderStatusPending,
		PaymentStatus: entities.PaymentStatusUnpaid,
	}).Error)

	require.NoError(t, migration.Migrate(db))

	var counter entities.OrderCounter
	require.NoError(t, db.First(&counter, "name = ?", entities.OrderCounterName).Error)
	assert.EqualValues(t, 41, counter.CurrentValue)

	// running again keeps the value
	require.NoError(t, migration.Migrate(db))
	require.NoError(t, db.First(&counter, "name = ?", entities.OrderCounterName).Error)
	assert.EqualValues(t, 41, counter.CurrentValue)
	assert.NotEqual(t, uuid.Nil, customer.ID)
}
