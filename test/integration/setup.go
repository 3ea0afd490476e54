package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"deccan-store/internal/database"
	"deccan-store/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Same DDL the server applies on startup
	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedCategory inserts one category and returns its ID.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, name string, subcategories []string) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()

	_, err := pool.Exec(ctx,
		"INSERT INTO categories (id, name, subcategories) VALUES ($1, $2, $3)",
		id, name, subcategories,
	)
	if err != nil {
		t.Fatalf("failed to seed category %s: %v", name, err)
	}
	return id
}

// SeedProduct inserts one product and returns its ID.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, categoryID uuid.UUID, name, subcategory string, price float64) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()

	_, err := pool.Exec(ctx, `
		INSERT INTO products (id, name, images, category_id, subcategory, description, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, name, []string{"https://example.com/" + name + ".jpg"}, categoryID, subcategory, "seeded product", price,
	)
	if err != nil {
		t.Fatalf("failed to seed product %s: %v", name, err)
	}
	return id
}

// SeedOrder inserts one pending order and returns its ID.
func SeedOrder(t *testing.T, pool *pgxpool.Pool, gatewayOrderID string, total float64) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()

	_, err := pool.Exec(ctx, `
		INSERT INTO orders (id, customer_name, email, phone, address, total_amount, amount_due, gateway_order_id, payment_status, status)
		VALUES ($1, $2, $3, $4, $5, $6, $6, $7, $8, $9)`,
		id, "Test Customer", "test@example.com", "+919876500000", "1 Test Lane",
		total, gatewayOrderID, model.PaymentPending, model.OrderCreated,
	)
	if err != nil {
		t.Fatalf("failed to seed order %s: %v", gatewayOrderID, err)
	}
	return id
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "cart_items", "wishlist_items", "reviews", "products", "categories"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
