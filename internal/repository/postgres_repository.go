package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
)

const orderColumns = `id, items, subtotal, shipping_fee, total,
	shipping_name, shipping_email, shipping_phone, shipping_address, shipping_city,
	shipping_district, shipping_postal_code, payment_method, status, version, created_at, updated_at`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(cred *Credentials) (*PostgresRepository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(10)
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "orders_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	if order.Version == 0 {
		order.Version = 1
	}

	query := `INSERT INTO orders (id, items, subtotal, shipping_fee, total,
	            shipping_name, shipping_email, shipping_phone, shipping_address, shipping_city,
	            shipping_district, shipping_postal_code, payment_method, status, version, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
	          RETURNING created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query,
		order.ID,
		itemsJSON,
		order.Subtotal,
		order.ShippingFee,
		order.Total,
		order.ShippingInfo.Name,
		order.ShippingInfo.Email,
		order.ShippingInfo.Phone,
		order.ShippingInfo.Address,
		order.ShippingInfo.City,
		order.ShippingInfo.District,
		order.ShippingInfo.PostalCode,
		order.PaymentMethod,
		order.Status,
		order.Version,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}
	return order, nil
}

func (r *PostgresRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	var (
		conds []string
		args  []any
	)
	if filter.ShippingEmail != "" {
		args = append(args, strings.TrimSpace(filter.ShippingEmail))
		conds = append(conds, fmt.Sprintf("lower(shipping_email) = lower($%d)", len(args)))
	}
	if filter.ShippingPhone != "" {
		args = append(args, strings.TrimSpace(filter.ShippingPhone))
		conds = append(conds, fmt.Sprintf("shipping_phone = $%d", len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return orders, nil
}

func (r *PostgresRepository) UpdateOrder(ctx context.Context, order *domain.Order, expectedVersion int) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `UPDATE orders SET items = $1, status = $2, version = version + 1, updated_at = NOW()
	          WHERE id = $3 AND version = $4
	          RETURNING version, updated_at`

	err = r.db.QueryRowContext(ctx, query, itemsJSON, order.Status, order.ID, expectedVersion).
		Scan(&order.Version, &order.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if e2 := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, order.ID).Scan(&exists); e2 != nil {
			return fmt.Errorf("check order existence: %w", e2)
		}
		if !exists {
			return ErrOrderNotFound
		}
		return ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `DELETE FROM orders WHERE id = $1 RETURNING ` + orderColumns

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete order: %w", err)
	}
	return order, nil
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var itemsJSON []byte
	err := row.Scan(
		&order.ID,
		&itemsJSON,
		&order.Subtotal,
		&order.ShippingFee,
		&order.Total,
		&order.ShippingInfo.Name,
		&order.ShippingInfo.Email,
		&order.ShippingInfo.Phone,
		&order.ShippingInfo.Address,
		&order.ShippingInfo.City,
		&order.ShippingInfo.District,
		&order.ShippingInfo.PostalCode,
		&order.PaymentMethod,
		&order.Status,
		&order.Version,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &order, nil
}
