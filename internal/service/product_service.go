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

// productService implements ProductService.
type productService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		repo:         repo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves products matching the filter.
func (s *productService) GetAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	products, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by ID with its reviews.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// Create creates a new product. The referenced category must exist.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := validate.Struct(req); err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, err.Error())
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, "invalid category ID")
	}

	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if category == nil {
		s.logger.Warn().Str("category_id", req.CategoryID).Msg("product references unknown category")
		return nil, model.ErrCategoryNotFound
	}

	now := time.Now()
	product := &model.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Images:      req.Images,
		CategoryID:  categoryID,
		Subcategory: req.Subcategory,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		Features:    req.Features,
		Rating:      4.5,
		NumReviews:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.Features == nil {
		product.Features = []string{}
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("name", product.Name).
		Msg("product created successfully")

	return product, nil
}

// Update applies a partial update: only fields present in the request
// change; everything else keeps its stored value.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req *model.ProductUpdateRequest) (*model.Product, error) {
	if err := validate.Struct(req); err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, err.Error())
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, model.NewDomainError(model.ErrCodeValidation, "invalid category ID")
		}
		category, err := s.categoryRepo.GetByID(ctx, categoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		if category == nil {
			return nil, model.ErrCategoryNotFound
		}
		product.CategoryID = categoryID
	}
	if req.Subcategory != nil {
		product.Subcategory = *req.Subcategory
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Discount != nil {
		product.Discount = *req.Discount
	}
	if req.Features != nil {
		product.Features = req.Features
	}
	product.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if !updated {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Delete removes a product by ID.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted successfully")

	return nil
}

// AddReview adds a review and returns the product with its recomputed
// aggregate rating and review count.
func (s *productService) AddReview(ctx context.Context, id uuid.UUID, req *model.ReviewRequest) (*model.Product, error) {
	if err := validate.Struct(req); err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, err.Error())
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	review := &model.Review{
		ID:        uuid.New(),
		ProductID: id,
		Name:      req.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		UserID:    req.UserID,
		CreatedAt: time.Now(),
	}

	added, err := s.repo.AddReview(ctx, review)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to add review")
		return nil, fmt.Errorf("failed to add review: %w", err)
	}
	if !added {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().
		Str("product_id", id.String()).
		Int("rating", req.Rating).
		Msg("review added successfully")

	return s.GetByID(ctx, id)
}
