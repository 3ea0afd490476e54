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

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, name, images, category_id, subcategory, description,
	price, discount, features, rating, num_reviews, created_at, updated_at`

// sortColumns maps client sort keys to table columns. Anything not listed
// falls back to name.
var sortColumns = map[string]string{
	"name":   "name",
	"price":  "price",
	"rating": "rating",
}

// GetAll retrieves products matching the filter.
func (r *productRepository) GetAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}

	if filter.Subcategory != "" {
		args = append(args, filter.Subcategory)
		query += fmt.Sprintf(" AND subcategory = $%d", len(args))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	sortBy, ok := sortColumns[filter.SortBy]
	if !ok {
		sortBy = "name"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Images, &p.CategoryID, &p.Subcategory,
			&p.Description, &p.Price, &p.Discount, &p.Features, &p.Rating,
			&p.NumReviews, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product with its reviews.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Images,
		&p.CategoryID, &p.Subcategory, &p.Description, &p.Price, &p.Discount,
		&p.Features, &p.Rating, &p.NumReviews, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	reviews, err := r.getReviews(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Reviews = reviews

	return &p, nil
}

func (r *productRepository) getReviews(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	query := `
		SELECT id, product_id, name, rating, comment, user_id, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		err := rows.Scan(&rv.ID, &rv.ProductID, &rv.Name, &rv.Rating, &rv.Comment, &rv.UserID, &rv.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan review row")
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating review rows")
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, name, images, category_id, subcategory, description,
			price, discount, features, rating, num_reviews, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Images, product.CategoryID,
		product.Subcategory, product.Description, product.Price, product.Discount,
		product.Features, product.Rating, product.NumReviews,
		product.CreatedAt, product.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", product.ID.String()).Msg("product created successfully")

	return nil
}

// Update persists the full product record.
func (r *productRepository) Update(ctx context.Context, product *model.Product) (bool, error) {
	query := `
		UPDATE products
		SET name = $2, images = $3, category_id = $4, subcategory = $5,
			description = $6, price = $7, discount = $8, features = $9,
			updated_at = $10
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Images, product.CategoryID,
		product.Subcategory, product.Description, product.Price, product.Discount,
		product.Features, product.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to update product")
		return false, fmt.Errorf("failed to update product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a product by ID.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// AddReview inserts a review and recomputes the product's aggregate rating
// and review count in the same transaction, so the stored mean is always
// consistent with the review rows regardless of insertion order.
func (r *productRepository) AddReview(ctx context.Context, review *model.Review) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO reviews (id, product_id, name, rating, comment, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.Exec(ctx, insert,
		review.ID, review.ProductID, review.Name, review.Rating, review.Comment,
		review.UserID, review.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", review.ProductID.String()).Msg("failed to insert review")
		return false, fmt.Errorf("failed to insert review: %w", err)
	}

	recompute := `
		UPDATE products
		SET rating = sub.avg_rating,
			num_reviews = sub.review_count,
			updated_at = $2
		FROM (
			SELECT AVG(rating)::NUMERIC(3, 2) AS avg_rating, COUNT(*) AS review_count
			FROM reviews
			WHERE product_id = $1
		) AS sub
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, recompute, review.ProductID, review.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", review.ProductID.String()).Msg("failed to recompute product rating")
		return false, fmt.Errorf("failed to recompute product rating: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Review row references a missing product; the FK would normally
		// have rejected the insert already.
		return false, nil
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit review transaction")
		return false, fmt.Errorf("failed to commit review transaction: %w", err)
	}

	r.logger.Debug().
		Str("product_id", review.ProductID.String()).
		Int("rating", review.Rating).
		Msg("review added successfully")

	return true, nil
}
