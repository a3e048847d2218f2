package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LilDoor/Northwind-order-system-WebApi/internal/platform/migrations"
	platformpostgres "github.com/LilDoor/Northwind-order-system-WebApi/internal/platform/postgres"
)

// Reference rows mirrored from the classic Northwind data set. Orders
// reference these by identifier, so a fresh database needs them before the
// API can accept writes with detail lines.

type customerRow struct {
	CustomerID  string `gorm:"primaryKey;column:customer_id;type:varchar(5)"`
	CompanyName string `gorm:"column:company_name"`
}

func (customerRow) TableName() string { return "customers" }

type employeeRow struct {
	EmployeeID int64  `gorm:"primaryKey;column:employee_id"`
	FirstName  string `gorm:"column:first_name"`
	LastName   string `gorm:"column:last_name"`
	Country    string `gorm:"column:country"`
}

func (employeeRow) TableName() string { return "employees" }

type shipperRow struct {
	ShipperID   int64  `gorm:"primaryKey;column:shipper_id"`
	CompanyName string `gorm:"column:company_name"`
}

func (shipperRow) TableName() string { return "shippers" }

type categoryRow struct {
	CategoryID   int64  `gorm:"primaryKey;column:category_id"`
	CategoryName string `gorm:"column:category_name"`
}

func (categoryRow) TableName() string { return "categories" }

type supplierRow struct {
	SupplierID  int64  `gorm:"primaryKey;column:supplier_id"`
	CompanyName string `gorm:"column:company_name"`
}

func (supplierRow) TableName() string { return "suppliers" }

type productRow struct {
	ProductID   int64  `gorm:"primaryKey;column:product_id"`
	ProductName string `gorm:"column:product_name"`
	CategoryID  int64  `gorm:"column:category_id"`
	SupplierID  int64  `gorm:"column:supplier_id"`
}

func (productRow) TableName() string { return "products" }

func main() {
	var dsn string
	flag.StringVar(&dsn, "database-url", "", "PostgreSQL connection DSN (or POSTGRES_DSN env)")
	flag.Parse()

	if dsn == "" {
		dsn = os.Getenv("POSTGRES_DSN")
	}
	if dsn == "" {
		slog.Error("database DSN is required: set --database-url or POSTGRES_DSN")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, dsn); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("seed completed successfully")
}

func run(ctx context.Context, dsn string) error {
	slog.Info("connecting to database")
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("unwrap database connection: %w", err)
	}
	defer sqlDB.Close()

	slog.Info("running migrations")
	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return seedReferenceData(db.WithContext(ctx))
}

func seedReferenceData(db *gorm.DB) error {
	customers := []customerRow{
		{CustomerID: "ALFKI", CompanyName: "Alfreds Futterkiste"},
		{CustomerID: "ANATR", CompanyName: "Ana Trujillo Emparedados y helados"},
		{CustomerID: "VINET", CompanyName: "Vins et alcools Chevalier"},
	}
	employees := []employeeRow{
		{EmployeeID: 1, FirstName: "Nancy", LastName: "Davolio", Country: "USA"},
		{EmployeeID: 5, FirstName: "Steven", LastName: "Buchanan", Country: "UK"},
		{EmployeeID: 6, FirstName: "Michael", LastName: "Suyama", Country: "UK"},
	}
	shippers := []shipperRow{
		{ShipperID: 1, CompanyName: "Speedy Express"},
		{ShipperID: 2, CompanyName: "United Package"},
		{ShipperID: 3, CompanyName: "Federal Shipping"},
	}
	categories := []categoryRow{
		{CategoryID: 1, CategoryName: "Beverages"},
		{CategoryID: 4, CategoryName: "Dairy Products"},
		{CategoryID: 8, CategoryName: "Seafood"},
	}
	suppliers := []supplierRow{
		{SupplierID: 1, CompanyName: "Exotic Liquids"},
		{SupplierID: 5, CompanyName: "Cooperativa de Quesos 'Las Cabras'"},
		{SupplierID: 13, CompanyName: "Nord-Ost-Fisch Handelsgesellschaft mbH"},
	}
	products := []productRow{
		{ProductID: 1, ProductName: "Chai", CategoryID: 1, SupplierID: 1},
		{ProductID: 11, ProductName: "Queso Cabrales", CategoryID: 4, SupplierID: 5},
		{ProductID: 30, ProductName: "Nord-Ost Matjeshering", CategoryID: 8, SupplierID: 13},
	}

	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&customers).Error; err != nil {
		return fmt.Errorf("seed customers: %w", err)
	}
	slog.Info("upserted customers", slog.Int("count", len(customers)))
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&employees).Error; err != nil {
		return fmt.Errorf("seed employees: %w", err)
	}
	slog.Info("upserted employees", slog.Int("count", len(employees)))
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&shippers).Error; err != nil {
		return fmt.Errorf("seed shippers: %w", err)
	}
	slog.Info("upserted shippers", slog.Int("count", len(shippers)))
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&categories).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	slog.Info("upserted categories", slog.Int("count", len(categories)))
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&suppliers).Error; err != nil {
		return fmt.Errorf("seed suppliers: %w", err)
	}
	slog.Info("upserted suppliers", slog.Int("count", len(suppliers)))
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&products).Error; err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	slog.Info("upserted products", slog.Int("count", len(products)))
	return nil
}
