package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the MySQL test database, skipping the test when it is
// not reachable. Expects a database named 'vincula_test' on localhost:3306.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/vincula_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"orders", "customers", "products", "tenants"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repository tests need.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createTenantsTable := `
	CREATE TABLE IF NOT EXISTS tenants (
		id CHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS products (
		id CHAR(36) NOT NULL PRIMARY KEY,
		tenant_id CHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		price DECIMAL(12,2) NOT NULL,
		stock_quantity INT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		INDEX idx_products_tenant (tenant_id),
		CONSTRAINT chk_stock_non_negative CHECK (stock_quantity >= 0)
	)`

	createCustomersTable := `
	CREATE TABLE IF NOT EXISTS customers (
		id CHAR(36) NOT NULL PRIMARY KEY,
		tenant_id CHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone VARCHAR(50),
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		INDEX idx_customers_tenant (tenant_id)
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id CHAR(36) NOT NULL PRIMARY KEY,
		tenant_id CHAR(36) NOT NULL,
		product_id CHAR(36) NOT NULL,
		customer_id CHAR(36) NOT NULL,
		quantity INT NOT NULL,
		total_price DECIMAL(12,2) NOT NULL,
		status VARCHAR(20) NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		INDEX idx_orders_tenant (tenant_id),
		INDEX idx_orders_product (product_id)
	)`

	for _, stmt := range []string{createTenantsTable, createProductsTable, createCustomersTable, createOrdersTable} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("creating test tables: %v", err)
		}
	}
}
