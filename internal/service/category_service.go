package service

import (
	"context"
	"strings"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/storage/category"
)

// CategoryCreate is the input for creating a category.
type CategoryCreate struct {
	Name     string
	Kind     string
	IconCode string
}

// CategoryUpdate is a partial update; nil fields are left unchanged.
type CategoryUpdate struct {
	Name     *string
	Kind     *string
	IconCode *string
}

// CategoryService handles category business logic.
type CategoryService struct {
	store     Store
	processor Processor
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store Store, processor Processor) *CategoryService {
	return &CategoryService{store: store, processor: processor}
}

// List returns the user's categories plus the shared defaults, deleted
// ones excluded, ordered by name.
func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	reader, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	rows, err := reader.Categories.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	converted := make([]Category, len(rows))
	for i, row := range rows {
		converted[i] = categoryFromStorage(row)
	}
	return converted, nil
}

// Create validates and stores a new category owned by the user.
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, create CategoryCreate) (*Category, error) {
	name := strings.TrimSpace(create.Name)
	if name == "" {
		return nil, apperr.New(apperr.KindInvalidArgument, "Category name cannot be blank")
	}
	iconCode := strings.TrimSpace(create.IconCode)
	if iconCode == "" {
		return nil, apperr.New(apperr.KindInvalidArgument, "Icon code cannot be blank")
	}
	kind, err := parseKind(create.Kind)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateCategory{
		Create: &category.CategoryCreate{
			UserID:   &userID,
			Name:     name,
			Kind:     kind,
			IconCode: iconCode,
		},
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}

	converted := categoryFromStorage(action.Created)
	return &converted, nil
}

// Update applies a partial update to a category the user owns. Shared
// defaults cannot be updated.
func (s *CategoryService) Update(ctx context.Context, id, userID uuid.UUID, update CategoryUpdate) (*Category, error) {
	patch := &category.CategoryPatch{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, apperr.New(apperr.KindInvalidArgument, "Category name cannot be blank")
		}
		patch.Name = omit.From(name)
	}
	if update.Kind != nil {
		kind, err := parseKind(*update.Kind)
		if err != nil {
			return nil, err
		}
		patch.Kind = omit.From(kind)
	}
	if update.IconCode != nil {
		iconCode := strings.TrimSpace(*update.IconCode)
		if iconCode == "" {
			return nil, apperr.New(apperr.KindInvalidArgument, "Icon code cannot be blank")
		}
		patch.IconCode = omit.From(iconCode)
	}

	action := &actions.UpdateCategory{
		ID:     id,
		UserID: userID,
		Patch:  patch,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}

	converted := categoryFromStorage(action.Updated)
	return &converted, nil
}

// Delete soft-deletes a category the user owns. Shared defaults cannot
// be deleted.
func (s *CategoryService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteCategory{ID: id, UserID: userID})
}

func parseKind(value string) (category.Kind, error) {
	kind, ok := category.KindFromString(value)
	if !ok {
		return "", apperr.New(apperr.KindInvalidArgument, "Invalid type. Must be INCOME or EXPENSE")
	}
	return kind, nil
}
