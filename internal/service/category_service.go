package service

import (
	"context"
	"fmt"
	"time"

	"deccan-store/internal/model"
	"deccan-store/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// categoryService implements CategoryService.
type categoryService struct {
	repo   repository.CategoryRepository
	logger zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		repo:   repo,
		logger: logger.With().Str("service", "category").Logger(),
	}
}

// GetAll retrieves all categories.
func (s *categoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get categories")
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single category by ID.
func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to get category")
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}
	return category, nil
}

// Create creates a new category; a duplicate name is rejected with a
// conflict.
func (s *categoryService) Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error) {
	if err := validate.Struct(req); err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, err.Error())
	}

	existing, err := s.repo.GetByName(ctx, req.Name)
	if err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to check category name")
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if existing != nil {
		s.logger.Warn().Str("name", req.Name).Msg("duplicate category name")
		return nil, model.ErrCategoryExists
	}

	now := time.Now()
	category := &model.Category{
		ID:            uuid.New(),
		Name:          req.Name,
		Subcategories: req.Subcategories,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if category.Subcategories == nil {
		category.Subcategories = []string{}
	}

	if err := s.repo.Create(ctx, category); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create category")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().
		Str("category_id", category.ID.String()).
		Str("name", category.Name).
		Msg("category created successfully")

	return category, nil
}

// Update updates an existing category.
func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error) {
	if err := validate.Struct(req); err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, err.Error())
	}

	existing, err := s.repo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if existing != nil && existing.ID != id {
		return nil, model.ErrCategoryExists
	}

	category := &model.Category{
		ID:            id,
		Name:          req.Name,
		Subcategories: req.Subcategories,
		UpdatedAt:     time.Now(),
	}
	if category.Subcategories == nil {
		category.Subcategories = []string{}
	}

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		s.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to update category")
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	if !updated {
		return nil, model.ErrCategoryNotFound
	}

	return s.GetByID(ctx, id)
}

// Delete removes a category by ID.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to delete category")
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if !deleted {
		return model.ErrCategoryNotFound
	}

	s.logger.Info().Str("category_id", id.String()).Msg("category deleted successfully")

	return nil
}
