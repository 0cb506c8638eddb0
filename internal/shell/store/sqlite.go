package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/artpar/storefront/internal/core/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	gosqlite3 "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// driverName is go-sqlite3 with a casefold(text) SQL function, which lowers
// Unicode text. The built-in lower() and LIKE only fold ASCII.
const driverName = "sqlite3_storefront"

func init() {
	sql.Register(driverName, &gosqlite3.SQLiteDriver{
		ConnectHook: func(conn *gosqlite3.SQLiteConn) error {
			return conn.RegisterFunc("casefold", strings.ToLower, true)
		},
	})
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// timeLayout is fixed-width so that stored timestamps sort lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// =============================================================================
// Executor Interface - Shared by DB and Transaction
// =============================================================================

// executor abstracts database operations that can be performed on both
// a database connection and a transaction.
type executor interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// =============================================================================
// SQLiteStore
// =============================================================================

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore creates a new SQLite store and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	// Open database connection
	db, err := sqlx.Open(driverName, withForeignKeys(dsn))
	if err != nil {
		return nil, NewStoreError("NewSQLiteStore", "", "", "failed to open database", ErrConnectionFailed)
	}

	// SQLite allows a single writer; one connection also keeps ":memory:"
	// databases from splitting across the pool.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "", "failed to ping database", ErrConnectionFailed)
	}

	// Run migrations
	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "", err.Error(), ErrMigrationFailed)
	}

	return &SQLiteStore{db: db}, nil
}

// withForeignKeys enables foreign key enforcement on the DSN, keeping any
// query parameters it already carries.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// runMigrations runs database migrations using embedded SQL files.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// Row Types
// =============================================================================

type categoryRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	Slug string `db:"slug"`
}

type productRow struct {
	ID           string  `db:"id"`
	Title        string  `db:"title"`
	Description  string  `db:"description"`
	Price        string  `db:"price"`
	Currency     string  `db:"currency"`
	CategorySlug string  `db:"category_slug"`
	ImageURL     *string `db:"image_url"`
	CreatedAt    string  `db:"created_at"`
}

type orderRow struct {
	ID             string  `db:"id"`
	Email          string  `db:"email"`
	Name           string  `db:"name"`
	Notes          string  `db:"notes"`
	DeliveryMethod string  `db:"delivery_method"`
	Address        *string `db:"address"`
	Items          string  `db:"items"`
	Subtotal       string  `db:"subtotal"`
	DeliveryFee    string  `db:"delivery_fee"`
	Total          string  `db:"total"`
	Currency       string  `db:"currency"`
	Status         string  `db:"status"`
	CreatedAt      string  `db:"created_at"`
	UpdatedAt      string  `db:"updated_at"`
}

type checkoutSessionRow struct {
	ID              string `db:"id"`
	OrderID         string `db:"order_id"`
	PaymentProvider string `db:"payment_provider"`
	CheckoutURL     string `db:"checkout_url"`
	Status          string `db:"status"`
	CreatedAt       string `db:"created_at"`
	UpdatedAt       string `db:"updated_at"`
}

// =============================================================================
// Catalog Operations
// =============================================================================

func (s *SQLiteStore) CreateCategory(ctx context.Context, category *domain.Category) error {
	return createCategory(ctx, s.db, category)
}

func (s *SQLiteStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return listCategories(ctx, s.db)
}

func (s *SQLiteStore) CountCategories(ctx context.Context) (int, error) {
	return countRows(ctx, s.db, "CountCategories", "categories")
}

func (s *SQLiteStore) CreateProduct(ctx context.Context, product *domain.Product) error {
	return createProduct(ctx, s.db, product)
}

func (s *SQLiteStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return getProduct(ctx, s.db, id)
}

func (s *SQLiteStore) ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	return listProducts(ctx, s.db, filter)
}

func (s *SQLiteStore) CountProducts(ctx context.Context) (int, error) {
	return countRows(ctx, s.db, "CountProducts", "products")
}

func (s *SQLiteStore) FindProductsByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	return findProductsByIDs(ctx, s.db, ids)
}

// =============================================================================
// Order Operations
// =============================================================================

func (s *SQLiteStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	return createOrder(ctx, s.db, order)
}

func (s *SQLiteStore) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return getOrder(ctx, s.db, id)
}

func (s *SQLiteStore) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) error {
	return updateOrderStatus(ctx, s.db, id, status, updatedAt)
}

// =============================================================================
// Checkout Session Operations
// =============================================================================

func (s *SQLiteStore) CreateCheckoutSession(ctx context.Context, session *domain.CheckoutSession) error {
	return createCheckoutSession(ctx, s.db, session)
}

func (s *SQLiteStore) GetCheckoutSession(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	return getCheckoutSession(ctx, s.db, id)
}

func (s *SQLiteStore) GetOpenCheckoutSession(ctx context.Context, orderID string) (*domain.CheckoutSession, error) {
	return getOpenCheckoutSession(ctx, s.db, orderID)
}

func (s *SQLiteStore) UpdateCheckoutSessionStatus(ctx context.Context, id string, status domain.SessionStatus, updatedAt time.Time) error {
	return updateCheckoutSessionStatus(ctx, s.db, id, status, updatedAt)
}

// =============================================================================
// Transaction Support
// =============================================================================

func (s *SQLiteStore) WithTx(ctx context.Context, fn func(Store) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return NewStoreError("WithTx", "", "", "failed to begin transaction", ErrTxFailed)
	}

	txS := &txSQLiteStore{tx: tx}

	if err := fn(txS); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return NewStoreError("WithTx", "", "", fmt.Sprintf("rollback failed after error: %v", err), ErrTxFailed)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return NewStoreError("WithTx", "", "", "failed to commit transaction", ErrTxFailed)
	}

	return nil
}

// =============================================================================
// Transaction Store
// =============================================================================

// txSQLiteStore implements Store within a transaction.
type txSQLiteStore struct {
	tx *sqlx.Tx
}

func (s *txSQLiteStore) CreateCategory(ctx context.Context, category *domain.Category) error {
	return createCategory(ctx, s.tx, category)
}

func (s *txSQLiteStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return listCategories(ctx, s.tx)
}

func (s *txSQLiteStore) CountCategories(ctx context.Context) (int, error) {
	return countRows(ctx, s.tx, "CountCategories", "categories")
}

func (s *txSQLiteStore) CreateProduct(ctx context.Context, product *domain.Product) error {
	return createProduct(ctx, s.tx, product)
}

func (s *txSQLiteStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return getProduct(ctx, s.tx, id)
}

func (s *txSQLiteStore) ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	return listProducts(ctx, s.tx, filter)
}

func (s *txSQLiteStore) CountProducts(ctx context.Context) (int, error) {
	return countRows(ctx, s.tx, "CountProducts", "products")
}

func (s *txSQLiteStore) FindProductsByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	return findProductsByIDs(ctx, s.tx, ids)
}

func (s *txSQLiteStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	return createOrder(ctx, s.tx, order)
}

func (s *txSQLiteStore) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return getOrder(ctx, s.tx, id)
}

func (s *txSQLiteStore) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) error {
	return updateOrderStatus(ctx, s.tx, id, status, updatedAt)
}

func (s *txSQLiteStore) CreateCheckoutSession(ctx context.Context, session *domain.CheckoutSession) error {
	return createCheckoutSession(ctx, s.tx, session)
}

func (s *txSQLiteStore) GetCheckoutSession(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	return getCheckoutSession(ctx, s.tx, id)
}

func (s *txSQLiteStore) GetOpenCheckoutSession(ctx context.Context, orderID string) (*domain.CheckoutSession, error) {
	return getOpenCheckoutSession(ctx, s.tx, orderID)
}

func (s *txSQLiteStore) UpdateCheckoutSessionStatus(ctx context.Context, id string, status domain.SessionStatus, updatedAt time.Time) error {
	return updateCheckoutSessionStatus(ctx, s.tx, id, status, updatedAt)
}

func (s *txSQLiteStore) WithTx(ctx context.Context, fn func(Store) error) error {
	// Already in a transaction, just run the function
	return fn(s)
}

func (s *txSQLiteStore) Ping(ctx context.Context) error {
	return nil
}

func (s *txSQLiteStore) Close() error {
	// No-op for tx store
	return nil
}

// =============================================================================
// Shared Implementation Functions - Catalog
// =============================================================================

func createCategory(ctx context.Context, exec executor, category *domain.Category) error {
	query := `INSERT INTO categories (id, name, slug) VALUES (:id, :name, :slug)`

	row := map[string]any{
		"id":   category.ID,
		"name": category.Name,
		"slug": string(category.Slug),
	}

	if _, err := exec.NamedExecContext(ctx, query, row); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: categories.id") {
			return NewStoreError("CreateCategory", "category", category.ID, "category with this ID already exists", ErrDuplicateID)
		}
		if strings.Contains(err.Error(), "UNIQUE constraint failed: categories.slug") {
			return NewStoreError("CreateCategory", "category", category.ID, "category with this slug already exists", ErrDuplicateSlug)
		}
		return NewStoreError("CreateCategory", "category", category.ID, err.Error(), err)
	}
	return nil
}

func listCategories(ctx context.Context, exec executor) ([]domain.Category, error) {
	query := `SELECT * FROM categories ORDER BY rowid`

	var rows []categoryRow
	if err := exec.SelectContext(ctx, &rows, query); err != nil {
		return nil, NewStoreError("ListCategories", "category", "", err.Error(), err)
	}

	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, domain.Category{
			ID:   row.ID,
			Name: row.Name,
			Slug: domain.CategorySlug(row.Slug),
		})
	}
	return categories, nil
}

func countRows(ctx context.Context, exec executor, op, table string) (int, error) {
	var count int
	if err := exec.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, NewStoreError(op, table, "", err.Error(), err)
	}
	return count, nil
}

func createProduct(ctx context.Context, exec executor, product *domain.Product) error {
	var imageURL *string
	if product.ImageURL != "" {
		imageURL = &product.ImageURL
	}

	query := `
		INSERT INTO products (
			id, title, description, price, currency, category_slug, image_url, created_at
		) VALUES (
			:id, :title, :description, :price, :currency, :category_slug, :image_url, :created_at
		)`

	row := map[string]any{
		"id":            product.ID,
		"title":         product.Title,
		"description":   product.Description,
		"price":         product.Price.String(),
		"currency":      product.Currency,
		"category_slug": string(product.Category),
		"image_url":     imageURL,
		"created_at":    product.CreatedAt.UTC().Format(timeLayout),
	}

	if _, err := exec.NamedExecContext(ctx, query, row); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: products.id") {
			return NewStoreError("CreateProduct", "product", product.ID, "product with this ID already exists", ErrDuplicateID)
		}
		return NewStoreError("CreateProduct", "product", product.ID, err.Error(), err)
	}
	return nil
}

func getProduct(ctx context.Context, exec executor, id string) (*domain.Product, error) {
	query := `SELECT * FROM products WHERE id = ?`

	var row productRow
	if err := exec.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetProduct", "product", id, "product not found", ErrNotFound)
		}
		return nil, NewStoreError("GetProduct", "product", id, err.Error(), err)
	}

	return rowToProduct(&row)
}

func listProducts(ctx context.Context, exec executor, filter ProductFilter) ([]domain.Product, error) {
	filter = filter.Normalize()

	var (
		conditions []string
		args       []any
	)
	if filter.Category != "" {
		conditions = append(conditions, "category_slug = ?")
		args = append(args, string(filter.Category))
	}
	if filter.Query != "" {
		conditions = append(conditions, `casefold(title) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(filter.Query))+"%")
	}

	query := `SELECT * FROM products`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, filter.Limit)

	var rows []productRow
	if err := exec.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, NewStoreError("ListProducts", "product", "", err.Error(), err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		product, err := rowToProduct(&row)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, nil
}

func findProductsByIDs(ctx context.Context, exec executor, ids []string) (map[string]domain.Product, error) {
	products := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, NewStoreError("FindProductsByIDs", "product", "", err.Error(), err)
	}

	var rows []productRow
	if err := exec.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, NewStoreError("FindProductsByIDs", "product", "", err.Error(), err)
	}

	for _, row := range rows {
		product, err := rowToProduct(&row)
		if err != nil {
			return nil, err
		}
		products[product.ID] = *product
	}
	return products, nil
}

// escapeLike escapes LIKE wildcards so the query matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// =============================================================================
// Shared Implementation Functions - Orders
// =============================================================================

func createOrder(ctx context.Context, exec executor, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return NewStoreError("CreateOrder", "order", order.ID, "failed to serialize items", ErrInvalidData)
	}

	var addressJSON *string
	if order.Address != nil {
		b, err := json.Marshal(order.Address)
		if err != nil {
			return NewStoreError("CreateOrder", "order", order.ID, "failed to serialize address", ErrInvalidData)
		}
		s := string(b)
		addressJSON = &s
	}

	query := `
		INSERT INTO orders (
			id, email, name, notes, delivery_method, address, items,
			subtotal, delivery_fee, total, currency, status,
			created_at, updated_at
		) VALUES (
			:id, :email, :name, :notes, :delivery_method, :address, :items,
			:subtotal, :delivery_fee, :total, :currency, :status,
			:created_at, :updated_at
		)`

	row := map[string]any{
		"id":              order.ID,
		"email":           order.Email,
		"name":            order.Name,
		"notes":           order.Notes,
		"delivery_method": string(order.DeliveryMethod),
		"address":         addressJSON,
		"items":           string(itemsJSON),
		"subtotal":        order.Subtotal.StringFixed(2),
		"delivery_fee":    order.DeliveryFee.StringFixed(2),
		"total":           order.Total.StringFixed(2),
		"currency":        order.Currency,
		"status":          string(order.Status),
		"created_at":      order.CreatedAt.UTC().Format(timeLayout),
		"updated_at":      order.UpdatedAt.UTC().Format(timeLayout),
	}

	if _, err := exec.NamedExecContext(ctx, query, row); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: orders.id") {
			return NewStoreError("CreateOrder", "order", order.ID, "order with this ID already exists", ErrDuplicateID)
		}
		return NewStoreError("CreateOrder", "order", order.ID, err.Error(), err)
	}
	return nil
}

func getOrder(ctx context.Context, exec executor, id string) (*domain.Order, error) {
	query := `SELECT * FROM orders WHERE id = ?`

	var row orderRow
	if err := exec.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetOrder", "order", id, "order not found", ErrNotFound)
		}
		return nil, NewStoreError("GetOrder", "order", id, err.Error(), err)
	}

	return rowToOrder(&row)
}

func updateOrderStatus(ctx context.Context, exec executor, id string, status domain.OrderStatus, updatedAt time.Time) error {
	query := `UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`

	result, err := exec.ExecContext(ctx, query, string(status), updatedAt.UTC().Format(timeLayout), id)
	if err != nil {
		return NewStoreError("UpdateOrderStatus", "order", id, err.Error(), err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return NewStoreError("UpdateOrderStatus", "order", id, "order not found", ErrNotFound)
	}
	return nil
}

// =============================================================================
// Shared Implementation Functions - Checkout Sessions
// =============================================================================

func createCheckoutSession(ctx context.Context, exec executor, session *domain.CheckoutSession) error {
	query := `
		INSERT INTO checkout_sessions (
			id, order_id, payment_provider, checkout_url, status, created_at, updated_at
		) VALUES (
			:id, :order_id, :payment_provider, :checkout_url, :status, :created_at, :updated_at
		)`

	row := map[string]any{
		"id":               session.ID,
		"order_id":         session.OrderID,
		"payment_provider": session.PaymentProvider,
		"checkout_url":     session.CheckoutURL,
		"status":           string(session.Status),
		"created_at":       session.CreatedAt.UTC().Format(timeLayout),
		"updated_at":       session.UpdatedAt.UTC().Format(timeLayout),
	}

	if _, err := exec.NamedExecContext(ctx, query, row); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: checkout_sessions.id") {
			return NewStoreError("CreateCheckoutSession", "checkout_session", session.ID, "session with this ID already exists", ErrDuplicateID)
		}
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return NewStoreError("CreateCheckoutSession", "checkout_session", session.ID, "order not found", ErrForeignKey)
		}
		return NewStoreError("CreateCheckoutSession", "checkout_session", session.ID, err.Error(), err)
	}
	return nil
}

func getCheckoutSession(ctx context.Context, exec executor, id string) (*domain.CheckoutSession, error) {
	query := `SELECT * FROM checkout_sessions WHERE id = ?`

	var row checkoutSessionRow
	if err := exec.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetCheckoutSession", "checkout_session", id, "checkout session not found", ErrNotFound)
		}
		return nil, NewStoreError("GetCheckoutSession", "checkout_session", id, err.Error(), err)
	}

	return rowToCheckoutSession(&row), nil
}

func getOpenCheckoutSession(ctx context.Context, exec executor, orderID string) (*domain.CheckoutSession, error) {
	query := `
		SELECT * FROM checkout_sessions
		WHERE order_id = ? AND status = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1`

	var row checkoutSessionRow
	if err := exec.GetContext(ctx, &row, query, orderID, string(domain.SessionCreated)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetOpenCheckoutSession", "checkout_session", orderID, "no open checkout session", ErrNotFound)
		}
		return nil, NewStoreError("GetOpenCheckoutSession", "checkout_session", orderID, err.Error(), err)
	}

	return rowToCheckoutSession(&row), nil
}

func updateCheckoutSessionStatus(ctx context.Context, exec executor, id string, status domain.SessionStatus, updatedAt time.Time) error {
	query := `UPDATE checkout_sessions SET status = ?, updated_at = ? WHERE id = ?`

	result, err := exec.ExecContext(ctx, query, string(status), updatedAt.UTC().Format(timeLayout), id)
	if err != nil {
		return NewStoreError("UpdateCheckoutSessionStatus", "checkout_session", id, err.Error(), err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return NewStoreError("UpdateCheckoutSessionStatus", "checkout_session", id, "checkout session not found", ErrNotFound)
	}
	return nil
}

// =============================================================================
// Row Conversion Functions
// =============================================================================

// rowToProduct converts a database row to a domain.Product.
func rowToProduct(row *productRow) (*domain.Product, error) {
	createdAt, _ := time.Parse(timeLayout, row.CreatedAt)

	price, err := decimal.NewFromString(row.Price)
	if err != nil {
		return nil, NewStoreError("rowToProduct", "product", row.ID, "failed to parse price", ErrInvalidData)
	}

	product := &domain.Product{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Price:       price,
		Currency:    row.Currency,
		Category:    domain.CategorySlug(row.CategorySlug),
		CreatedAt:   createdAt,
	}
	if row.ImageURL != nil {
		product.ImageURL = *row.ImageURL
	}
	return product, nil
}

// rowToOrder converts a database row to a domain.Order.
func rowToOrder(row *orderRow) (*domain.Order, error) {
	createdAt, _ := time.Parse(timeLayout, row.CreatedAt)
	updatedAt, _ := time.Parse(timeLayout, row.UpdatedAt)

	var items []domain.CartItem
	if err := json.Unmarshal([]byte(row.Items), &items); err != nil {
		return nil, NewStoreError("rowToOrder", "order", row.ID, "failed to parse items", ErrInvalidData)
	}

	var address *domain.Address
	if row.Address != nil && *row.Address != "" && *row.Address != "null" {
		address = &domain.Address{}
		if err := json.Unmarshal([]byte(*row.Address), address); err != nil {
			return nil, NewStoreError("rowToOrder", "order", row.ID, "failed to parse address", ErrInvalidData)
		}
	}

	amounts := make([]decimal.Decimal, 3)
	for i, raw := range []string{row.Subtotal, row.DeliveryFee, row.Total} {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, NewStoreError("rowToOrder", "order", row.ID, "failed to parse amount", ErrInvalidData)
		}
		amounts[i] = d
	}

	return &domain.Order{
		ID:             row.ID,
		Email:          row.Email,
		Name:           row.Name,
		Notes:          row.Notes,
		DeliveryMethod: domain.DeliveryMethod(row.DeliveryMethod),
		Address:        address,
		Items:          items,
		Subtotal:       amounts[0],
		DeliveryFee:    amounts[1],
		Total:          amounts[2],
		Currency:       row.Currency,
		Status:         domain.OrderStatus(row.Status),
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}

// rowToCheckoutSession converts a database row to a domain.CheckoutSession.
func rowToCheckoutSession(row *checkoutSessionRow) *domain.CheckoutSession {
	createdAt, _ := time.Parse(timeLayout, row.CreatedAt)
	updatedAt, _ := time.Parse(timeLayout, row.UpdatedAt)

	return &domain.CheckoutSession{
		ID:              row.ID,
		OrderID:         row.OrderID,
		PaymentProvider: row.PaymentProvider,
		CheckoutURL:     row.CheckoutURL,
		Status:          domain.SessionStatus(row.Status),
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}
