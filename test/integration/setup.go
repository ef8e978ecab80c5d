package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"marketplace/internal/auth"
	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/events"
	"marketplace/internal/handler"
	"marketplace/internal/middleware"
	"marketplace/internal/repository"
	"marketplace/internal/router"
	"marketplace/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "integration-secret-0123456789abcdef"

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool with the schema applied.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
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

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPoolFromURL(ctx, connStr, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
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

// SetupTestRedis starts a Redis container and returns a connected client.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	ctx := context.Background()

	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}

	connStr, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get redis connection string: %v", err)
	}

	opts, err := redis.ParseURL(connStr)
	if err != nil {
		t.Fatalf("failed to parse redis connection string: %v", err)
	}

	client, err := auth.NewRedisClient(ctx, opts.Addr, opts.Password, opts.DB, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}

	t.Cleanup(func() {
		client.Close()
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return client
}

// NewTestServer wires the full application stack against the given stores.
// A nil redis client falls back to the in-memory token denylist.
func NewTestServer(t *testing.T, testDB *TestDB, redisClient *redis.Client) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	var denylist auth.Denylist = auth.NewMemoryDenylist()
	if redisClient != nil {
		denylist = auth.NewRedisDenylist(redisClient, logger)
	}
	tokens := auth.NewTokenManager(testJWTSecret, time.Hour, "marketplace", denylist)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	publisher := events.NopPublisher{}

	// Initialize repositories
	userRepo := repository.NewUserRepository(testDB.Pool, logger)
	catalogRepo := repository.NewCatalogRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	coordinateRepo := repository.NewCoordinateRepository(testDB.Pool, logger)

	// Initialize services
	userService := service.NewUserService(userRepo, hasher, tokens, logger)
	catalogService := service.NewCatalogService(catalogRepo, publisher, logger)
	orderService := service.NewOrderService(orderRepo, catalogRepo, publisher, logger)
	coordinateService := service.NewCoordinateService(coordinateRepo, logger)

	return router.New(router.Handlers{
		User:       handler.NewUserHandler(userService, logger),
		Catalog:    handler.NewCatalogHandler(catalogService, logger),
		Order:      handler.NewOrderHandler(orderService, logger),
		Coordinate: handler.NewCoordinateHandler(coordinateService, logger),
	}, middleware.NewGate(tokens, logger), logger)
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), "TRUNCATE users, catalogs, orders, coordinates")
	if err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}
