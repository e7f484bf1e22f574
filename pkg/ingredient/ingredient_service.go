package ingredient

import (
	"context"
	"errors"
	"strings"

	"kitchen-planner/domain"
	"kitchen-planner/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context) ([]domain.IngredientResponse, error)
		AddIngredient(ctx context.Context, principal domain.Principal, req domain.AddIngredientRequest) (domain.IngredientResponse, error)
		UpdateIngredient(ctx context.Context, principal domain.Principal, id string, req domain.UpdateIngredientRequest) (domain.IngredientResponse, error)
		UpsertIngredient(ctx context.Context, principal domain.Principal, req domain.AddIngredientRequest) (domain.IngredientResponse, error)
		DeleteIngredient(ctx context.Context, principal domain.Principal, id string) error
		GetMovements(ctx context.Context, id string) ([]domain.StockMovementResponse, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
		plans                domain.PlanInvalidator
	}
)

func NewIngredientService(ingredientRepository IngredientRepository, plans domain.PlanInvalidator) IngredientService {
	return &ingredientService{
		ingredientRepository: ingredientRepository,
		plans:                plans,
	}
}

func ToIngredientResponse(i entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:        i.ID.String(),
		Name:      i.Name,
		Quantity:  i.Quantity,
		Unit:      i.Unit,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func (s *ingredientService) invalidate(ctx context.Context) {
	if s.plans != nil {
		s.plans.Invalidate(ctx)
	}
}

func (s *ingredientService) GetIngredients(ctx context.Context) ([]domain.IngredientResponse, error) {
	ingredients, err := s.ingredientRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		res = append(res, ToIngredientResponse(i))
	}
	return res, nil
}

func (s *ingredientService) AddIngredient(ctx context.Context, principal domain.Principal, req domain.AddIngredientRequest) (domain.IngredientResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.IngredientResponse{}, domain.ErrIngredientNameNeeded
	}
	if req.Quantity.IsNegative() {
		return domain.IngredientResponse{}, domain.ErrNegativeQuantity
	}
	unit := strings.TrimSpace(req.Unit)
	if unit == "" {
		unit = domain.DefaultUnit
	}

	ingredient := entities.Ingredient{Name: name, Quantity: req.Quantity, Unit: unit}
	err := s.ingredientRepository.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.ingredientRepository.WithTx(tx)
		if err := ensureNameFree(ctx, repo, name, uuid.Nil); err != nil {
			return err
		}
		if err := repo.Create(ctx, &ingredient); err != nil {
			return err
		}
		return repo.AddMovements(ctx, []entities.StockMovement{{
			IngredientID:     ingredient.ID,
			Quantity:         ingredient.Quantity,
			PreviousQuantity: decimal.Zero,
			NewQuantity:      ingredient.Quantity,
			Reason:           entities.MovementInitial,
			PerformedBy:      principal.UserID,
		}})
	})
	if err != nil {
		return domain.IngredientResponse{}, err
	}
	return ToIngredientResponse(ingredient), nil
}

func (s *ingredientService) UpdateIngredient(ctx context.Context, principal domain.Principal, id string, req domain.UpdateIngredientRequest) (domain.IngredientResponse, error) {
	ingredientID, err := domain.ParseID(id)
	if err != nil {
		return domain.IngredientResponse{}, err
	}
	if req.Quantity != nil && req.Quantity.IsNegative() {
		return domain.IngredientResponse{}, domain.ErrNegativeQuantity
	}

	var updated *entities.Ingredient
	err = s.ingredientRepository.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.ingredientRepository.WithTx(tx)
		locked, err := repo.LockByIDs(ctx, []uuid.UUID{ingredientID})
		if err != nil {
			return err
		}
		if len(locked) == 0 {
			return domain.ErrIngredientNotFound
		}
		current := locked[0]

		fields := map[string]any{}
		if name := strings.TrimSpace(req.Name); name != "" {
			if err := ensureNameFree(ctx, repo, name, current.ID); err != nil {
				return err
			}
			fields["name"] = name
		}
		if unit := strings.TrimSpace(req.Unit); unit != "" {
			fields["unit"] = unit
		}
		if req.Quantity != nil && !req.Quantity.Equal(current.Quantity) {
			fields["quantity"] = *req.Quantity
			err := repo.AddMovements(ctx, []entities.StockMovement{{
				IngredientID:     current.ID,
				Quantity:         req.Quantity.Sub(current.Quantity),
				PreviousQuantity: current.Quantity,
				NewQuantity:      *req.Quantity,
				Reason:           entities.MovementAdjustment,
				PerformedBy:      principal.UserID,
			}})
			if err != nil {
				return err
			}
		}
		if len(fields) > 0 {
			if err := repo.Update(ctx, current.ID, fields); err != nil {
				return err
			}
		}

		updated, err = repo.GetByID(ctx, current.ID)
		return err
	})
	if err != nil {
		return domain.IngredientResponse{}, err
	}

	s.invalidate(ctx)
	return ToIngredientResponse(*updated), nil
}

// ensureNameFree rejects a name already held by another ingredient,
// ignoring case.
func ensureNameFree(ctx context.Context, repo IngredientRepository, name string, self uuid.UUID) error {
	existing, err := repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return domain.ErrIngredientExists
	}
	return nil
}

// UpsertIngredient matches on the case-insensitive name.
func (s *ingredientService) UpsertIngredient(ctx context.Context, principal domain.Principal, req domain.AddIngredientRequest) (domain.IngredientResponse, error) {
	existing, err := s.ingredientRepository.GetByName(ctx, strings.TrimSpace(req.Name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.AddIngredient(ctx, principal, req)
		}
		return domain.IngredientResponse{}, err
	}

	quantity := req.Quantity
	return s.UpdateIngredient(ctx, principal, existing.ID.String(), domain.UpdateIngredientRequest{
		Quantity: &quantity,
		Unit:     req.Unit,
	})
}

func (s *ingredientService) DeleteIngredient(ctx context.Context, principal domain.Principal, id string) error {
	ingredientID, err := domain.ParseID(id)
	if err != nil {
		return err
	}

	err = s.ingredientRepository.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.ingredientRepository.WithTx(tx)
		if _, err := repo.GetByID(ctx, ingredientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrIngredientNotFound
			}
			return err
		}
		used, err := repo.CountRecipeUsage(ctx, ingredientID)
		if err != nil {
			return err
		}
		if used > 0 {
			return domain.ErrIngredientInUse
		}
		return repo.Delete(ctx, ingredientID)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *ingredientService) GetMovements(ctx context.Context, id string) ([]domain.StockMovementResponse, error) {
	ingredientID, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ingredientRepository.GetByID(ctx, ingredientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIngredientNotFound
		}
		return nil, err
	}

	movements, err := s.ingredientRepository.GetMovements(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	res := make([]domain.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		item := domain.StockMovementResponse{
			ID:               m.ID.String(),
			IngredientID:     m.IngredientID.String(),
			Quantity:         m.Quantity,
			PreviousQuantity: m.PreviousQuantity,
			NewQuantity:      m.NewQuantity,
			Reason:           m.Reason,
			PerformedBy:      m.PerformedBy,
			CreatedAt:        m.CreatedAt,
		}
		if m.MenuItemID != nil {
			item.MenuItemID = m.MenuItemID.String()
		}
		res = append(res, item)
	}
	return res, nil
}
