package dailymenu

import (
	"context"
	"fmt"
	"testing"
	"time"

	"kitchen-planner/domain"
	"kitchen-planner/entities"
	"kitchen-planner/internal/testdb"
	"kitchen-planner/pkg/customer"
	"kitchen-planner/pkg/menu"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var admin = domain.Principal{UserID: "admin-1", Role: domain.RoleSuperAdmin}

type fixture struct {
	db  *gorm.DB
	svc *dailyMenuService
}

func newFixture(t *testing.T) fixture {
	db := testdb.New(t)
	loc := time.FixedZone("WIB", 7*60*60)
	svc := NewDailyMenuService(
		NewDailyMenuRepository(db),
		menu.NewMenuRepository(db),
		customer.NewCustomerRepository(db),
		nil,
		loc,
	).(*dailyMenuService)
	return fixture{db: db, svc: svc}
}

func (f fixture) items(t *testing.T, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		item := entities.MenuItem{Name: fmt.Sprintf("Dish %d", i), Calories: 300 + i}
		require.NoError(t, f.db.Create(&item).Error)
		ids = append(ids, item.ID.String())
	}
	return ids
}

func TestItemCountBoundaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.items(t, 6)

	_, err := f.svc.SetDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10", MenuItemIDs: nil})
	assert.ErrorIs(t, err, domain.ErrDailyMenuNoItems)

	one, err := f.svc.SetDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10", MenuItemIDs: ids[:1]})
	require.NoError(t, err)
	assert.Len(t, one.MenuItems, 1)

	five, err := f.svc.SetDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10", MenuItemIDs: ids[:5]})
	require.NoError(t, err)
	assert.Len(t, five.MenuItems, 5)
	assert.Equal(t, one.ID, five.ID)

	_, err = f.svc.SetDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10", MenuItemIDs: ids})
	assert.ErrorIs(t, err, domain.ErrDailyMenuTooManyItems)

	// six ids with a duplicate collapse to five
	dup := append(append([]string{}, ids[:5]...), ids[0])
	_, err = f.svc.SetDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10", MenuItemIDs: dup})
	assert.NoError(t, err)
}

func TestSetDailyMenuReplacesItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.items(t, 3)

	_, err := f.svc.SetDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10", CalorieGroup: domain.Band1000To1200, MenuItemIDs: ids[:2]})
	require.NoError(t, err)
	res, err := f.svc.SetDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10", CalorieGroup: domain.Band1000To1200, MenuItemIDs: ids[2:]})
	require.NoError(t, err)

	require.Len(t, res.MenuItems, 1)
	assert.Equal(t, ids[2], res.MenuItems[0].ID)

	var menus, links int64
	require.NoError(t, f.db.Model(&entities.DailyMenu{}).Count(&menus).Error)
	require.NoError(t, f.db.Model(&entities.DailyMenuItem{}).Count(&links).Error)
	assert.EqualValues(t, 1, menus)
	assert.EqualValues(t, 1, links)
}

func TestCreateDailyMenuConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.items(t, 2)

	_, err := f.svc.CreateDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10", MenuItemIDs: ids[:1]})
	require.NoError(t, err)

	_, err = f.svc.CreateDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10T20:00:00+07:00", MenuItemIDs: ids[1:]})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// another band on the same day is a different menu
	_, err = f.svc.CreateDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10", CalorieGroup: domain.Band1800To2000, MenuItemIDs: ids[1:]})
	require.NoError(t, err)

	all, err := f.svc.ListDailyMenus(ctx, "2024-01-10")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// missingMenuRepository never sees an existing menu, like a writer that lost
// the race between lookup and insert.
type missingMenuRepository struct {
	DailyMenuRepository
}

func (r missingMenuRepository) WithTx(tx *gorm.DB) DailyMenuRepository {
	return missingMenuRepository{r.DailyMenuRepository.WithTx(tx)}
}

func (missingMenuRepository) GetByDay(context.Context, time.Time, time.Time, string) (*entities.DailyMenu, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestSaveDailyMenuMapsDuplicateKeyToConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.items(t, 2)

	_, err := f.svc.CreateDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10", MenuItemIDs: ids[:1]})
	require.NoError(t, err)

	late := *f.svc
	late.dailyMenuRepository = missingMenuRepository{f.svc.dailyMenuRepository}

	_, err = late.SetDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10", MenuItemIDs: ids[1:]})
	assert.ErrorIs(t, err, domain.ErrDailyMenuExists)
	assert.ErrorIs(t, err, domain.ErrConflict)

	saved, err := f.svc.GetDailyMenu(ctx, "2024-01-10", "")
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Len(t, saved.MenuItems, 1)
	assert.Equal(t, ids[0], saved.MenuItems[0].ID)
}

func TestDailyMenuValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.items(t, 1)

	_, err := f.svc.SetDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10", MenuItemIDs: []string{uuid.NewString()}})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.svc.SetDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10", CalorieGroup: "900-1000", MenuItemIDs: ids})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.svc.SetDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "10/01/2024", MenuItemIDs: ids})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	var menus int64
	require.NoError(t, f.db.Model(&entities.DailyMenu{}).Count(&menus).Error)
	assert.Zero(t, menus)
}

func TestGetDailyMenuNormalizesDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.items(t, 1)

	missing, err := f.svc.GetDailyMenu(ctx, "2024-01-10", "")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = f.svc.SetDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10T06:30:00+07:00", MenuItemIDs: ids})
	require.NoError(t, err)

	found, err := f.svc.GetDailyMenu(ctx, "2024-01-10", "")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "2024-01-10", found.Date)

	nextDay, err := f.svc.GetDailyMenu(ctx, "2024-01-11", "")
	require.NoError(t, err)
	assert.Nil(t, nextDay)
}

func TestDeleteDailyMenu(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.items(t, 2)

	_, err := f.svc.SetDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10", MenuItemIDs: ids})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteDailyMenu(ctx, admin, "2024-01-10", ""))
	assert.ErrorIs(t, f.svc.DeleteDailyMenu(ctx, admin, "2024-01-10", ""), domain.ErrNotFound)

	var links int64
	require.NoError(t, f.db.Model(&entities.DailyMenuItem{}).Count(&links).Error)
	assert.Zero(t, links)
}

func TestTodayMenuForCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.items(t, 2)
	f.svc.now = func() time.Time { return time.Date(2024, 1, 10, 2, 0, 0, 0, time.UTC) }

	c := entities.Customer{Name: "Ana", Phone: "+1", Calories: 1900, OrderPattern: entities.PatternDaily, IsActive: true}
	require.NoError(t, f.db.Create(&c).Error)

	empty, err := f.svc.TodayMenuForCustomer(ctx, c.ID.String())
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Equal(t, "2024-01-10", empty.Date)

	_, err = f.svc.SetDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10", MenuItemIDs: ids[:1]})
	require.NoError(t, err)
	fallback, err := f.svc.TodayMenuForCustomer(ctx, c.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "", fallback.CalorieGroup)
	assert.Len(t, fallback.Items, 1)

	_, err = f.svc.SetDailyMenu(ctx, admin, domain.DailyMenuRequest{Date: "2024-01-10", CalorieGroup: domain.Band1800To2000, MenuItemIDs: ids})
	require.NoError(t, err)
	banded, err := f.svc.TodayMenuForCustomer(ctx, c.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.Band1800To2000, banded.CalorieGroup)
	assert.Len(t, banded.Items, 2)

	_, err = f.svc.TodayMenuForCustomer(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
