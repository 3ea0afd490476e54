package repository

import (
	"context"
	"fmt"

	"deccan-store/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetCart retrieves all cart items for a user.
func (r *cartRepository) GetCart(ctx context.Context, userID string) ([]model.CartItem, error) {
	query := `
		SELECT user_id, product_id, quantity
		FROM cart_items
		WHERE user_id = $1
		ORDER BY product_id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.UserID, &item.ProductID, &item.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// ReplaceCart replaces the user's cart contents atomically.
func (r *cartRepository) ReplaceCart(ctx context.Context, userID string, items []model.CartItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if len(items) > 0 {
		query := `
			INSERT INTO cart_items (user_id, product_id, quantity)
			VALUES ($1, $2, $3)
		`

		batch := &pgx.Batch{}
		for _, item := range items {
			batch.Queue(query, userID, item.ProductID, item.Quantity)
		}

		results := tx.SendBatch(ctx, batch)
		for i := 0; i < len(items); i++ {
			if _, err := results.Exec(); err != nil {
				results.Close()
				r.logger.Error().
					Err(err).
					Str("user_id", userID).
					Str("product_id", items[i].ProductID.String()).
					Msg("failed to insert cart item")
				return fmt.Errorf("failed to insert cart item: %w", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to insert cart items: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to commit cart transaction")
		return fmt.Errorf("failed to commit cart transaction: %w", err)
	}

	r.logger.Debug().Str("user_id", userID).Int("count", len(items)).Msg("cart replaced successfully")

	return nil
}

// RemoveCartItem removes one product from the user's cart.
func (r *cartRepository) RemoveCartItem(ctx context.Context, userID string, productID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to remove cart item")
		return false, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// GetWishlist retrieves all wishlist items for a user.
func (r *cartRepository) GetWishlist(ctx context.Context, userID string) ([]model.WishlistItem, error) {
	query := `
		SELECT user_id, product_id, added_at
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY added_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query wishlist items")
		return nil, fmt.Errorf("failed to query wishlist items: %w", err)
	}
	defer rows.Close()

	var items []model.WishlistItem
	for rows.Next() {
		var item model.WishlistItem
		if err := rows.Scan(&item.UserID, &item.ProductID, &item.AddedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan wishlist item row")
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating wishlist item rows")
		return nil, fmt.Errorf("error iterating wishlist items: %w", err)
	}

	return items, nil
}

// AddWishlistItem adds one product to the user's wishlist; duplicates are
// ignored.
func (r *cartRepository) AddWishlistItem(ctx context.Context, item *model.WishlistItem) error {
	query := `
		INSERT INTO wishlist_items (user_id, product_id, added_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query, item.UserID, item.ProductID, item.AddedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", item.UserID).
			Str("product_id", item.ProductID.String()).
			Msg("failed to add wishlist item")
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return nil
}

// RemoveWishlistItem removes one product from the user's wishlist.
func (r *cartRepository) RemoveWishlistItem(ctx context.Context, userID string, productID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to remove wishlist item")
		return false, fmt.Errorf("failed to remove wishlist item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
