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

// cartService implements CartService.
type cartService struct {
	repo   repository.CartRepository
	logger zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, logger zerolog.Logger) CartService {
	return &cartService{
		repo:   repo,
		logger: logger.With().Str("service", "cart").Logger(),
	}
}

// GetCart retrieves a user's cart.
func (s *cartService) GetCart(ctx context.Context, userID string) (*model.Cart, error) {
	items, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if items == nil {
		items = []model.CartItem{}
	}
	return &model.Cart{UserID: userID, Items: items}, nil
}

// ReplaceCart replaces a user's cart contents.
func (s *cartService) ReplaceCart(ctx context.Context, userID string, req *model.CartRequest) (*model.Cart, error) {
	if err := validate.Struct(req); err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, err.Error())
	}

	items := make([]model.CartItem, len(req.Items))
	for i, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, model.NewDomainError(model.ErrCodeValidation, "invalid product ID")
		}
		if item.Quantity < 1 {
			return nil, model.ErrInvalidQuantity
		}
		items[i] = model.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  item.Quantity,
		}
	}

	if err := s.repo.ReplaceCart(ctx, userID, items); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to replace cart")
		return nil, fmt.Errorf("failed to replace cart: %w", err)
	}

	return s.GetCart(ctx, userID)
}

// RemoveCartItem removes one product from a user's cart.
func (s *cartService) RemoveCartItem(ctx context.Context, userID string, productID uuid.UUID) error {
	removed, err := s.repo.RemoveCartItem(ctx, userID, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to remove cart item")
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if !removed {
		return model.ErrProductNotFound
	}
	return nil
}

// GetWishlist retrieves a user's wishlist.
func (s *cartService) GetWishlist(ctx context.Context, userID string) (*model.Wishlist, error) {
	items, err := s.repo.GetWishlist(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get wishlist")
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	if items == nil {
		items = []model.WishlistItem{}
	}
	return &model.Wishlist{UserID: userID, Items: items}, nil
}

// AddWishlistItem adds a product to a user's wishlist.
func (s *cartService) AddWishlistItem(ctx context.Context, userID string, req *model.WishlistRequest) (*model.Wishlist, error) {
	if err := validate.Struct(req); err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, err.Error())
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, "invalid product ID")
	}

	item := &model.WishlistItem{
		UserID:    userID,
		ProductID: productID,
		AddedAt:   time.Now(),
	}

	if err := s.repo.AddWishlistItem(ctx, item); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to add wishlist item")
		return nil, fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return s.GetWishlist(ctx, userID)
}

// RemoveWishlistItem removes one product from a user's wishlist.
func (s *cartService) RemoveWishlistItem(ctx context.Context, userID string, productID uuid.UUID) error {
	removed, err := s.repo.RemoveWishlistItem(ctx, userID, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to remove wishlist item")
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	if !removed {
		return model.ErrProductNotFound
	}
	return nil
}
