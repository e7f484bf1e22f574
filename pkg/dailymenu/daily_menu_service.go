package dailymenu

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"kitchen-planner/domain"
	"kitchen-planner/entities"
	"kitchen-planner/pkg/customer"
	"kitchen-planner/pkg/menu"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	DailyMenuService interface {
		GetDailyMenu(ctx context.Context, date string, calorieGroup string) (*domain.DailyMenuResponse, error)
		ListDailyMenus(ctx context.Context, date string) ([]domain.DailyMenuResponse, error)
		CreateDailyMenu(ctx context.Context, principal domain.Principal, req domain.DailyMenuRequest) (domain.DailyMenuResponse, error)
		SetDailyMenu(ctx context.Context, principal domain.Principal, req domain.DailyMenuRequest) (domain.DailyMenuResponse, error)
		DeleteDailyMenu(ctx context.Context, principal domain.Principal, date string, calorieGroup string) error
		TodayMenuForCustomer(ctx context.Context, customerID string) (domain.ClientDailyMenuResponse, error)
	}

	dailyMenuService struct {
		dailyMenuRepository DailyMenuRepository
		menuRepository      menu.MenuRepository
		customerRepository  customer.CustomerRepository
		plans               domain.PlanInvalidator
		loc                 *time.Location
		now                 func() time.Time
	}
)

func NewDailyMenuService(
	dailyMenuRepository DailyMenuRepository,
	menuRepository menu.MenuRepository,
	customerRepository customer.CustomerRepository,
	plans domain.PlanInvalidator,
	loc *time.Location,
) DailyMenuService {
	if loc == nil {
		loc = time.UTC
	}
	return &dailyMenuService{
		dailyMenuRepository: dailyMenuRepository,
		menuRepository:      menuRepository,
		customerRepository:  customerRepository,
		plans:               plans,
		loc:                 loc,
		now:                 time.Now,
	}
}

func (s *dailyMenuService) toResponse(m entities.DailyMenu) domain.DailyMenuResponse {
	return domain.DailyMenuResponse{
		ID:           m.ID.String(),
		Date:         m.Date.In(s.loc).Format(domain.DateLayout),
		CalorieGroup: m.CalorieGroup,
		MenuItems:    toItems(m.MenuItems),
		CreatedAt:    m.CreatedAt,
	}
}

func toItems(items []entities.MenuItem) []domain.DailyMenuItemResponse {
	res := make([]domain.DailyMenuItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, domain.DailyMenuItemResponse{
			ID:          item.ID.String(),
			Name:        item.Name,
			Description: item.Description,
			Calories:    item.Calories,
			Image:       item.ImageURL,
		})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Name != res[j].Name {
			return res[i].Name < res[j].Name
		}
		return res[i].ID < res[j].ID
	})
	return res
}

func normalizeGroup(group string) (string, error) {
	group = strings.TrimSpace(group)
	if group != "" && !domain.IsCalorieBand(group) {
		return "", domain.ErrInvalidCalorieGroup
	}
	return group, nil
}

// normalizeItemIDs parses and de-duplicates ids, keeping first occurrences.
func normalizeItemIDs(ids []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := domain.ParseID(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, domain.ErrDailyMenuNoItems
	}
	if len(out) > domain.MaxDailyMenuItems {
		return nil, domain.ErrDailyMenuTooManyItems
	}
	return out, nil
}

func ensureItemsExist(ctx context.Context, menus menu.MenuRepository, ids []uuid.UUID) error {
	found, err := menus.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	known := make(map[uuid.UUID]struct{}, len(found))
	for _, item := range found {
		known[item.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return domain.InvalidArgument("menu item %s does not exist", id)
		}
	}
	return nil
}

func (s *dailyMenuService) invalidate(ctx context.Context) {
	if s.plans != nil {
		s.plans.Invalidate(ctx)
	}
}

func (s *dailyMenuService) GetDailyMenu(ctx context.Context, date string, calorieGroup string) (*domain.DailyMenuResponse, error) {
	day, err := domain.ParseDay(date, s.loc)
	if err != nil {
		return nil, err
	}
	group, err := normalizeGroup(calorieGroup)
	if err != nil {
		return nil, err
	}

	start, end := domain.DayRange(day)
	m, err := s.dailyMenuRepository.GetByDay(ctx, start, end, group)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	res := s.toResponse(*m)
	return &res, nil
}

func (s *dailyMenuService) ListDailyMenus(ctx context.Context, date string) ([]domain.DailyMenuResponse, error) {
	day, err := domain.ParseDay(date, s.loc)
	if err != nil {
		return nil, err
	}
	start, end := domain.DayRange(day)
	menus, err := s.dailyMenuRepository.GetAllByDay(ctx, start, end)
	if err != nil {
		return nil, err
	}
	res := make([]domain.DailyMenuResponse, 0, len(menus))
	for _, m := range menus {
		res = append(res, s.toResponse(m))
	}
	return res, nil
}

func (s *dailyMenuService) prepare(req domain.DailyMenuRequest) (time.Time, string, []uuid.UUID, error) {
	day, err := domain.ParseDay(req.Date, s.loc)
	if err != nil {
		return time.Time{}, "", nil, err
	}
	group, err := normalizeGroup(req.CalorieGroup)
	if err != nil {
		return time.Time{}, "", nil, err
	}
	ids, err := normalizeItemIDs(req.MenuItemIDs)
	if err != nil {
		return time.Time{}, "", nil, err
	}
	return day, group, ids, nil
}

// CreateDailyMenu refuses to touch an existing (date, group) menu.
func (s *dailyMenuService) CreateDailyMenu(ctx context.Context, principal domain.Principal, req domain.DailyMenuRequest) (domain.DailyMenuResponse, error) {
	return s.save(ctx, principal, req, false)
}

// SetDailyMenu creates the menu or replaces the item set of the existing one.
func (s *dailyMenuService) SetDailyMenu(ctx context.Context, principal domain.Principal, req domain.DailyMenuRequest) (domain.DailyMenuResponse, error) {
	return s.save(ctx, principal, req, true)
}

func (s *dailyMenuService) save(ctx context.Context, principal domain.Principal, req domain.DailyMenuRequest, replace bool) (domain.DailyMenuResponse, error) {
	day, group, ids, err := s.prepare(req)
	if err != nil {
		return domain.DailyMenuResponse{}, err
	}
	start, end := domain.DayRange(day)

	var saved *entities.DailyMenu
	err = s.dailyMenuRepository.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.dailyMenuRepository.WithTx(tx)
		if err := ensureItemsExist(ctx, s.menuRepository.WithTx(tx), ids); err != nil {
			return err
		}

		existing, err := repo.GetByDay(ctx, start, end, group)
		switch {
		case err == nil && !replace:
			return domain.ErrDailyMenuExists
		case err == nil:
			if err := repo.Touch(ctx, existing.ID); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			existing = &entities.DailyMenu{Date: start, CalorieGroup: group}
			if err := repo.Create(ctx, existing); err != nil {
				return err
			}
		default:
			return err
		}

		if err := repo.ReplaceItems(ctx, existing.ID, ids); err != nil {
			return err
		}
		saved, err = repo.GetByDay(ctx, start, end, group)
		return err
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.DailyMenuResponse{}, domain.ErrDailyMenuExists
	}
	if err != nil {
		return domain.DailyMenuResponse{}, err
	}

	log.Infof("daily menu %s [%s] saved by %s", day.Format(domain.DateLayout), group, principal.UserID)
	s.invalidate(ctx)
	return s.toResponse(*saved), nil
}

func (s *dailyMenuService) DeleteDailyMenu(ctx context.Context, principal domain.Principal, date string, calorieGroup string) error {
	day, err := domain.ParseDay(date, s.loc)
	if err != nil {
		return err
	}
	group, err := normalizeGroup(calorieGroup)
	if err != nil {
		return err
	}
	start, end := domain.DayRange(day)

	err = s.dailyMenuRepository.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.dailyMenuRepository.WithTx(tx)
		existing, err := repo.GetByDay(ctx, start, end, group)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDailyMenuNotFound
			}
			return err
		}
		return repo.Delete(ctx, existing.ID)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// TodayMenuForCustomer serves the menu of the customer's band, falling back to
// the band-less menu of the day.
func (s *dailyMenuService) TodayMenuForCustomer(ctx context.Context, customerID string) (domain.ClientDailyMenuResponse, error) {
	id, err := domain.ParseID(customerID)
	if err != nil {
		return domain.ClientDailyMenuResponse{}, err
	}
	c, err := s.customerRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ClientDailyMenuResponse{}, domain.ErrCustomerNotFound
		}
		return domain.ClientDailyMenuResponse{}, err
	}

	today := domain.StartOfDay(s.now(), s.loc)
	start, end := domain.DayRange(today)
	res := domain.ClientDailyMenuResponse{
		Date:  today.Format(domain.DateLayout),
		Items: []domain.DailyMenuItemResponse{},
	}

	for _, group := range []string{domain.CalorieBand(domain.EffectiveCalories(0, c.Calories)), ""} {
		m, err := s.dailyMenuRepository.GetByDay(ctx, start, end, group)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return domain.ClientDailyMenuResponse{}, err
		}
		res.CalorieGroup = m.CalorieGroup
		res.Items = toItems(m.MenuItems)
		break
	}
	return res, nil
}
