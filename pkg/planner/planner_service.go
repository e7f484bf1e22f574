package planner

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"kitchen-planner/domain"
	"kitchen-planner/entities"
	"kitchen-planner/internal/utils/mailing"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type (
	PlannerService interface {
		GetProductionPlan(ctx context.Context, date string) (domain.ProductionPlan, error)
		SendProductionPlan(ctx context.Context, principal domain.Principal, req domain.SendProductionPlanRequest) error
	}

	plannerService struct {
		plannerRepository PlannerRepository
		cache             PlanCache
		mailer            mailing.Mailer
		recipient         string
		loc               *time.Location
	}
)

func NewPlannerService(
	plannerRepository PlannerRepository,
	cache PlanCache,
	mailer mailing.Mailer,
	recipient string,
	loc *time.Location,
) PlannerService {
	if cache == nil {
		cache = NewNoopPlanCache()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &plannerService{
		plannerRepository: plannerRepository,
		cache:             cache,
		mailer:            mailer,
		recipient:         recipient,
		loc:               loc,
	}
}

func (s *plannerService) GetProductionPlan(ctx context.Context, date string) (domain.ProductionPlan, error) {
	day, err := domain.ParseDay(date, s.loc)
	if err != nil {
		return domain.ProductionPlan{}, err
	}
	label := day.Format(domain.DateLayout)

	key, cacheable := s.cache.Key(ctx, label)
	if cacheable {
		if plan, ok := s.cache.Get(ctx, key); ok {
			return *plan, nil
		}
	}

	plan, err := s.buildPlan(ctx, day)
	if err != nil {
		return domain.ProductionPlan{}, err
	}
	if cacheable {
		s.cache.Set(ctx, key, plan)
	}
	return plan, nil
}

type planTotal struct {
	name     string
	unit     string
	quantity decimal.Decimal
}

// buildPlan counts the day's orders per calorie band and multiplies each
// band's menu recipes by that count.
func (s *plannerService) buildPlan(ctx context.Context, day time.Time) (domain.ProductionPlan, error) {
	start, end := domain.DayRange(day)

	orders, err := s.plannerRepository.GetOrdersForDay(ctx, start, end)
	if err != nil {
		return domain.ProductionPlan{}, err
	}
	counts := make(map[string]int, len(domain.CalorieBands))
	for _, o := range orders {
		customerCalories := 0
		if o.Customer != nil {
			customerCalories = o.Customer.Calories
		}
		counts[domain.CalorieBand(domain.EffectiveCalories(o.Calories, customerCalories))]++
	}

	menus, err := s.plannerRepository.GetMenusForDay(ctx, start, end)
	if err != nil {
		return domain.ProductionPlan{}, err
	}
	byBand := make(map[string]entities.DailyMenu, len(menus))
	for _, m := range menus {
		byBand[m.CalorieGroup] = m
	}

	plan := domain.ProductionPlan{
		Date:        day.Format(domain.DateLayout),
		TotalOrders: len(orders),
		Bands:       []domain.BandDemand{},
		Ingredients: []domain.PlanLine{},
	}
	totals := map[uuid.UUID]*planTotal{}

	for _, band := range domain.CalorieBands {
		n := counts[band]
		if n == 0 {
			continue
		}
		m, ok := byBand[band]
		plan.Bands = append(plan.Bands, domain.BandDemand{CalorieGroup: band, Orders: n, HasMenu: ok})
		if !ok {
			plan.Warnings = append(plan.Warnings, fmt.Sprintf("no daily menu for band %s (%d orders)", band, n))
			continue
		}

		multiplier := decimal.NewFromInt(int64(n))
		for _, item := range m.MenuItems {
			for _, line := range item.Ingredients {
				total, seen := totals[line.IngredientID]
				if !seen {
					total = &planTotal{quantity: decimal.Zero}
					if line.Ingredient != nil {
						total.name = line.Ingredient.Name
						total.unit = line.Ingredient.Unit
					}
					totals[line.IngredientID] = total
				}
				total.quantity = total.quantity.Add(line.QuantityRequired.Mul(multiplier))
			}
		}
	}

	for id, total := range totals {
		plan.Ingredients = append(plan.Ingredients, domain.PlanLine{
			IngredientID:  id.String(),
			Name:          total.name,
			TotalQuantity: total.quantity,
			Unit:          total.unit,
		})
	}
	sort.Slice(plan.Ingredients, func(i, j int) bool {
		a, b := plan.Ingredients[i], plan.Ingredients[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.IngredientID < b.IngredientID
	})
	return plan, nil
}

var planTemplate = template.Must(template.New("plan").Parse(`<h2>Production plan for {{.Date}}</h2>
<p>Total orders: {{.TotalOrders}}</p>
<table border="1" cellpadding="4">
<tr><th>Calorie band</th><th>Orders</th><th>Menu</th></tr>
{{range .Bands}}<tr><td>{{.CalorieGroup}}</td><td>{{.Orders}}</td><td>{{if .HasMenu}}yes{{else}}missing{{end}}</td></tr>
{{end}}</table>
<table border="1" cellpadding="4">
<tr><th>Ingredient</th><th>Quantity</th><th>Unit</th></tr>
{{range .Ingredients}}<tr><td>{{.Name}}</td><td>{{.TotalQuantity.String}}</td><td>{{.Unit}}</td></tr>
{{end}}</table>
{{if .Warnings}}<ul>{{range .Warnings}}<li>{{.}}</li>{{end}}</ul>{{end}}`))

func RenderPlan(plan domain.ProductionPlan) (string, error) {
	var buf bytes.Buffer
	if err := planTemplate.Execute(&buf, plan); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *plannerService) SendProductionPlan(ctx context.Context, principal domain.Principal, req domain.SendProductionPlanRequest) error {
	to := strings.TrimSpace(req.Email)
	if to == "" {
		to = s.recipient
	}
	if to == "" {
		return domain.ErrRecipientRequired
	}

	plan, err := s.GetProductionPlan(ctx, req.Date)
	if err != nil {
		return err
	}
	body, err := RenderPlan(plan)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(to, fmt.Sprintf("Production plan %s", plan.Date), body); err != nil {
		return fmt.Errorf("sending production plan: %w", err)
	}

	log.Infof("production plan %s sent to %s by %s", plan.Date, to, principal.UserID)
	return nil
}
