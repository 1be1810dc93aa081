package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/auracommerce/storefront/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Repository is the SQLite implementation of Store. Each entity lives in one
// row of the slots table as a JSON blob, mirroring the original three-slot
// local storage layout.
type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Slot writes are read-modify-write; a single connection keeps them
	// serialized without busy-timeout churn.
	db.SetMaxOpenConns(1)

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations() error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *Repository) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	ok, err := r.loadSlot(ctx, slotProducts, &products)
	if err != nil {
		return nil, err
	}
	if !ok {
		return domain.SeedProducts(), nil
	}
	return products, nil
}

func (r *Repository) SaveProducts(ctx context.Context, products []domain.Product) error {
	return r.saveSlot(ctx, slotProducts, products)
}

func (r *Repository) Orders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	ok, err := r.loadSlot(ctx, slotOrders, &orders)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Order{}, nil
	}
	return orders, nil
}

func (r *Repository) AppendOrder(ctx context.Context, order domain.Order) error {
	orders, err := r.Orders(ctx)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}

	// Newest first.
	orders = append([]domain.Order{order}, orders...)
	return r.saveSlot(ctx, slotOrders, orders)
}

func (r *Repository) Settings(ctx context.Context) (domain.Settings, error) {
	var settings domain.Settings
	ok, err := r.loadSlot(ctx, slotSettings, &settings)
	if err != nil {
		return domain.Settings{}, err
	}
	if !ok {
		return domain.DefaultSettings(), nil
	}
	return settings, nil
}

func (r *Repository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	return r.saveSlot(ctx, slotSettings, settings)
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// loadSlot reads one slot into dest. It returns false when the slot is absent
// or its contents fail to parse; both cases fall back to the entity default.
func (r *Repository) loadSlot(ctx context.Context, key string, dest interface{}) (bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query slot %s: %w", key, err)
	}

	if e2 := json.Unmarshal([]byte(value), dest); e2 != nil {
		log.Printf("slot %s holds malformed data, using default: %v", key, e2)
		return false, nil
	}

	return true, nil
}

func (r *Repository) saveSlot(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal slot %s: %w", key, err)
	}

	query := `INSERT INTO slots (key, value, updated_at) VALUES ($1, $2, CURRENT_TIMESTAMP)
	          ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	if _, e2 := r.db.ExecContext(ctx, query, key, string(data)); e2 != nil {
		return fmt.Errorf("write slot %s: %w", key, e2)
	}
	return nil
}
