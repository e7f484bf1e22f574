package menu

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"

	"kitchen-planner/domain"
	"kitchen-planner/entities"
	"kitchen-planner/internal/utils/storage"
	"kitchen-planner/pkg/ingredient"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	MenuService interface {
		GetMenuItems(ctx context.Context) ([]domain.MenuItemResponse, error)
		GetMenuItem(ctx context.Context, id string) (domain.MenuItemResponse, error)
		CreateMenuItem(ctx context.Context, principal domain.Principal, req domain.MenuItemRequest) (domain.MenuItemResponse, error)
		UpdateMenuItem(ctx context.Context, principal domain.Principal, id string, req domain.UpdateMenuItemRequest) (domain.MenuItemResponse, error)
		UpsertMenuItem(ctx context.Context, principal domain.Principal, id string, req domain.MenuItemRequest) (domain.MenuItemResponse, error)
		DeleteMenuItem(ctx context.Context, principal domain.Principal, id string) error
		ProduceMenuItem(ctx context.Context, principal domain.Principal, id string, quantity int) (domain.ProduceResponse, error)
		UploadMenuItemImage(ctx context.Context, principal domain.Principal, id string, image *multipart.FileHeader) (domain.MenuItemResponse, error)
	}

	menuService struct {
		menuRepository       MenuRepository
		ingredientRepository ingredient.IngredientRepository
		s3                   storage.AwsS3
		plans                domain.PlanInvalidator
	}
)

func NewMenuService(
	menuRepository MenuRepository,
	ingredientRepository ingredient.IngredientRepository,
	s3 storage.AwsS3,
	plans domain.PlanInvalidator,
) MenuService {
	return &menuService{
		menuRepository:       menuRepository,
		ingredientRepository: ingredientRepository,
		s3:                   s3,
		plans:                plans,
	}
}

func ToMenuItemResponse(item entities.MenuItem) domain.MenuItemResponse {
	lines := make([]domain.RecipeLineResponse, 0, len(item.Ingredients))
	for _, line := range item.Ingredients {
		res := domain.RecipeLineResponse{
			IngredientID:     line.IngredientID.String(),
			QuantityRequired: line.QuantityRequired,
		}
		if line.Ingredient != nil {
			res.IngredientName = line.Ingredient.Name
			res.Unit = line.Ingredient.Unit
		}
		lines = append(lines, res)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].IngredientName != lines[j].IngredientName {
			return lines[i].IngredientName < lines[j].IngredientName
		}
		return lines[i].IngredientID < lines[j].IngredientID
	})

	return domain.MenuItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Description: item.Description,
		Calories:    item.Calories,
		Stock:       item.Stock,
		Image:       item.ImageURL,
		Ingredients: lines,
	}
}

func (s *menuService) invalidate(ctx context.Context) {
	if s.plans != nil {
		s.plans.Invalidate(ctx)
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrMenuItemNotFound
	}
	return err
}

func validateItem(req domain.MenuItemRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return domain.InvalidArgument("name is required")
	}
	if req.Calories < 0 {
		return domain.ErrInvalidCalories
	}
	if req.Stock < 0 {
		return domain.ErrInvalidStock
	}
	return nil
}

func updateFields(req domain.UpdateMenuItemRequest) (map[string]any, error) {
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.InvalidArgument("name is required")
		}
		fields["name"] = name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Calories != nil {
		if *req.Calories < 0 {
			return nil, domain.ErrInvalidCalories
		}
		fields["calories"] = *req.Calories
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, domain.ErrInvalidStock
		}
		fields["stock"] = *req.Stock
	}
	if req.Image != nil && *req.Image != "" {
		fields["image_url"] = *req.Image
	}
	return fields, nil
}

// buildRecipe checks the lines against the ledger: each ingredient must exist,
// appear once, and need a strictly positive quantity.
func buildRecipe(ctx context.Context, stock ingredient.IngredientRepository, lines []domain.RecipeLineRequest) ([]entities.RecipeIngredient, error) {
	recipe := make([]entities.RecipeIngredient, 0, len(lines))
	seen := make(map[uuid.UUID]struct{}, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))

	for _, line := range lines {
		id, err := domain.ParseID(line.IngredientID)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			return nil, domain.InvalidArgument("ingredient %s appears more than once", id)
		}
		if !line.QuantityRequired.IsPositive() {
			return nil, domain.InvalidArgument("quantity required for ingredient %s must be positive", id)
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		recipe = append(recipe, entities.RecipeIngredient{IngredientID: id, QuantityRequired: line.QuantityRequired})
	}

	found, err := stock.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		known := make(map[uuid.UUID]struct{}, len(found))
		for _, f := range found {
			known[f.ID] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := known[id]; !ok {
				return nil, domain.InvalidArgument("ingredient %s does not exist", id)
			}
		}
	}
	return recipe, nil
}

func (s *menuService) GetMenuItems(ctx context.Context) ([]domain.MenuItemResponse, error) {
	items, err := s.menuRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.MenuItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, ToMenuItemResponse(item))
	}
	return res, nil
}

func (s *menuService) GetMenuItem(ctx context.Context, id string) (domain.MenuItemResponse, error) {
	itemID, err := domain.ParseID(id)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	item, err := s.menuRepository.GetByID(ctx, itemID)
	if err != nil {
		return domain.MenuItemResponse{}, notFound(err)
	}
	return ToMenuItemResponse(*item), nil
}

func (s *menuService) CreateMenuItem(ctx context.Context, principal domain.Principal, req domain.MenuItemRequest) (domain.MenuItemResponse, error) {
	if err := validateItem(req); err != nil {
		return domain.MenuItemResponse{}, err
	}

	var created *entities.MenuItem
	err := s.menuRepository.Transaction(ctx, func(tx *gorm.DB) error {
		menus := s.menuRepository.WithTx(tx)
		recipe, err := buildRecipe(ctx, s.ingredientRepository.WithTx(tx), req.Ingredients)
		if err != nil {
			return err
		}

		item := entities.MenuItem{
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			Calories:    req.Calories,
			Stock:       req.Stock,
			ImageURL:    req.Image,
		}
		if err := menus.Create(ctx, &item); err != nil {
			return err
		}
		if err := menus.ReplaceRecipe(ctx, item.ID, recipe); err != nil {
			return err
		}
		created, err = menus.GetByID(ctx, item.ID)
		return err
	})
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	log.Infof("menu item %s created by %s", created.ID, principal.UserID)
	s.invalidate(ctx)
	return ToMenuItemResponse(*created), nil
}

// UpdateMenuItem writes only the fields present in req.
func (s *menuService) UpdateMenuItem(ctx context.Context, principal domain.Principal, id string, req domain.UpdateMenuItemRequest) (domain.MenuItemResponse, error) {
	itemID, err := domain.ParseID(id)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	fields, err := updateFields(req)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	var updated *entities.MenuItem
	err = s.menuRepository.Transaction(ctx, func(tx *gorm.DB) error {
		menus := s.menuRepository.WithTx(tx)
		if _, err := menus.GetByID(ctx, itemID); err != nil {
			return notFound(err)
		}

		if len(fields) > 0 {
			if err := menus.Update(ctx, itemID, fields); err != nil {
				return err
			}
		}

		if req.Ingredients != nil {
			recipe, err := buildRecipe(ctx, s.ingredientRepository.WithTx(tx), req.Ingredients)
			if err != nil {
				return err
			}
			if err := menus.ReplaceRecipe(ctx, itemID, recipe); err != nil {
				return err
			}
		}

		updated, err = menus.GetByID(ctx, itemID)
		return err
	})
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	log.Infof("menu item %s updated by %s", itemID, principal.UserID)
	s.invalidate(ctx)
	return ToMenuItemResponse(*updated), nil
}

// UpsertMenuItem creates when id is empty and updates otherwise. On update a
// zero stock keeps the produced stock.
func (s *menuService) UpsertMenuItem(ctx context.Context, principal domain.Principal, id string, req domain.MenuItemRequest) (domain.MenuItemResponse, error) {
	if strings.TrimSpace(id) == "" {
		return s.CreateMenuItem(ctx, principal, req)
	}
	if err := validateItem(req); err != nil {
		return domain.MenuItemResponse{}, err
	}
	update := domain.UpdateMenuItemRequest{
		Name:        &req.Name,
		Description: &req.Description,
		Calories:    &req.Calories,
		Ingredients: req.Ingredients,
	}
	if req.Stock != 0 {
		update.Stock = &req.Stock
	}
	if req.Image != "" {
		update.Image = &req.Image
	}
	return s.UpdateMenuItem(ctx, principal, id, update)
}

func (s *menuService) DeleteMenuItem(ctx context.Context, principal domain.Principal, id string) error {
	itemID, err := domain.ParseID(id)
	if err != nil {
		return err
	}

	var imageURL string
	err = s.menuRepository.Transaction(ctx, func(tx *gorm.DB) error {
		menus := s.menuRepository.WithTx(tx)
		item, err := menus.GetByID(ctx, itemID)
		if err != nil {
			return notFound(err)
		}
		imageURL = item.ImageURL
		return menus.Delete(ctx, itemID)
	})
	if err != nil {
		return err
	}

	if imageURL != "" && s.s3 != nil {
		if key := s.s3.GetObjectKeyFromLink(imageURL); key != "" {
			if err := s.s3.DeleteFile(ctx, key); err != nil {
				log.Warnf("menu item %s: removing image %s: %v", itemID, key, err)
			}
		}
	}

	log.Infof("menu item %s deleted by %s", itemID, principal.UserID)
	s.invalidate(ctx)
	return nil
}

// ProduceMenuItem turns ingredients into finished portions. Every recipe line
// is checked before anything is deducted; the whole run commits or nothing does.
func (s *menuService) ProduceMenuItem(ctx context.Context, principal domain.Principal, id string, quantity int) (domain.ProduceResponse, error) {
	itemID, err := domain.ParseID(id)
	if err != nil {
		return domain.ProduceResponse{}, err
	}
	if quantity <= 0 {
		return domain.ProduceResponse{}, domain.ErrInvalidProduceQuantity
	}

	var res domain.ProduceResponse
	err = s.menuRepository.Transaction(ctx, func(tx *gorm.DB) error {
		menus := s.menuRepository.WithTx(tx)
		stock := s.ingredientRepository.WithTx(tx)

		item, err := menus.GetByID(ctx, itemID)
		if err != nil {
			return notFound(err)
		}

		ids := make([]uuid.UUID, 0, len(item.Ingredients))
		for _, line := range item.Ingredients {
			ids = append(ids, line.IngredientID)
		}
		locked, err := stock.LockByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]entities.Ingredient, len(locked))
		for _, ing := range locked {
			byID[ing.ID] = ing
		}

		lines := item.Ingredients
		sort.Slice(lines, func(i, j int) bool {
			return lines[i].IngredientID.String() < lines[j].IngredientID.String()
		})

		multiplier := decimal.NewFromInt(int64(quantity))
		for _, line := range lines {
			ing, ok := byID[line.IngredientID]
			if !ok {
				return fmt.Errorf("%w: recipe line references %s", domain.ErrIngredientNotFound, line.IngredientID)
			}
			required := line.QuantityRequired.Mul(multiplier)
			if ing.Quantity.LessThan(required) {
				return &domain.InsufficientStockError{
					IngredientID:   ing.ID,
					IngredientName: ing.Name,
					Required:       required,
					Available:      ing.Quantity,
					Unit:           ing.Unit,
				}
			}
		}

		movements := make([]entities.StockMovement, 0, len(lines))
		deductions := make([]domain.Deduction, 0, len(lines))
		for _, line := range lines {
			ing := byID[line.IngredientID]
			required := line.QuantityRequired.Mul(multiplier)
			ok, err := stock.Decrement(ctx, ing.ID, required)
			if err != nil {
				return err
			}
			if !ok {
				return &domain.InsufficientStockError{
					IngredientID:   ing.ID,
					IngredientName: ing.Name,
					Required:       required,
					Available:      ing.Quantity,
					Unit:           ing.Unit,
				}
			}

			remaining := ing.Quantity.Sub(required)
			movements = append(movements, entities.StockMovement{
				IngredientID:     ing.ID,
				MenuItemID:       &item.ID,
				Quantity:         required.Neg(),
				PreviousQuantity: ing.Quantity,
				NewQuantity:      remaining,
				Reason:           entities.MovementProduction,
				PerformedBy:      principal.UserID,
			})
			deductions = append(deductions, domain.Deduction{
				IngredientID:   ing.ID.String(),
				IngredientName: ing.Name,
				Amount:         required,
				Remaining:      remaining,
				Unit:           ing.Unit,
			})
		}

		if err := menus.IncrementStock(ctx, item.ID, quantity); err != nil {
			return err
		}
		if err := stock.AddMovements(ctx, movements); err != nil {
			return err
		}

		reloaded, err := menus.GetByID(ctx, item.ID)
		if err != nil {
			return err
		}
		res = domain.ProduceResponse{
			MenuItemID:       item.ID.String(),
			ProducedQuantity: quantity,
			NewStock:         reloaded.Stock,
			Deductions:       deductions,
		}
		return nil
	})
	if err != nil {
		return domain.ProduceResponse{}, err
	}

	log.Infof("produced %d x %s by %s", quantity, itemID, principal.UserID)
	return res, nil
}

func (s *menuService) UploadMenuItemImage(ctx context.Context, principal domain.Principal, id string, image *multipart.FileHeader) (domain.MenuItemResponse, error) {
	itemID, err := domain.ParseID(id)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	if s.s3 == nil {
		return domain.MenuItemResponse{}, storage.ErrStorageDisabled
	}
	item, err := s.menuRepository.GetByID(ctx, itemID)
	if err != nil {
		return domain.MenuItemResponse{}, notFound(err)
	}

	var objectKey string
	if existing := s.s3.GetObjectKeyFromLink(item.ImageURL); existing != "" {
		objectKey, err = s.s3.UpdateFile(ctx, existing, image, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(ctx, fmt.Sprintf("menu-item-%s", item.ID), image, "menu-items", storage.AllowImage...)
	}
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	link := s.s3.GetPublicLinkKey(objectKey)
	if err := s.menuRepository.Update(ctx, item.ID, map[string]any{"image_url": link}); err != nil {
		return domain.MenuItemResponse{}, err
	}
	item.ImageURL = link

	log.Infof("menu item %s image set by %s", item.ID, principal.UserID)
	return ToMenuItemResponse(*item), nil
}
