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

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

// GetAll retrieves all categories ordered by name.
func (r *categoryRepository) GetAll(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, name, subcategories, created_at, updated_at
		FROM categories
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		err := rows.Scan(&c.ID, &c.Name, &c.Subcategories, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a single category by its ID.
func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	query := `
		SELECT id, name, subcategories, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Subcategories, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("category_id", id.String()).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

// GetByName retrieves a single category by its unique name.
func (r *categoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	query := `
		SELECT id, name, subcategories, created_at, updated_at
		FROM categories
		WHERE name = $1
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name, &c.Subcategories, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("name", name).Msg("failed to query category by name")
		return nil, fmt.Errorf("failed to query category by name: %w", err)
	}

	return &c, nil
}

// Create inserts a new category.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (id, name, subcategories, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		category.ID, category.Name, category.Subcategories, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", category.Name).Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", err)
	}

	r.logger.Debug().Str("category_id", category.ID.String()).Msg("category created successfully")

	return nil
}

// Update updates an existing category.
func (r *categoryRepository) Update(ctx context.Context, category *model.Category) (bool, error) {
	query := `
		UPDATE categories
		SET name = $2, subcategories = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		category.ID, category.Name, category.Subcategories, category.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", category.ID.String()).Msg("failed to update category")
		return false, fmt.Errorf("failed to update category: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a category by ID.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to delete category")
		return false, fmt.Errorf("failed to delete category: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
