//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
	"github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/ports"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("northwind_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(Models()...))

	seedReferenceRows(t, db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedReferenceRows(t *testing.T, db *gorm.DB) {
	t.Helper()
	shipperName := "United Package"
	require.NoError(t, db.Create(&shipperRecord{ShipperID: 2, CompanyName: &shipperName}).Error)
	categoryName := "Dairy Products"
	require.NoError(t, db.Create(&categoryRecord{CategoryID: 4, CategoryName: &categoryName}).Error)
	supplierName := "Cooperativa de Quesos 'Las Cabras'"
	require.NoError(t, db.Create(&supplierRecord{SupplierID: 5, CompanyName: &supplierName}).Error)
	productName := "Queso Cabrales"
	categoryID, supplierID := int64(4), int64(5)
	require.NoError(t, db.Create(&productRecord{
		ProductID:   11,
		ProductName: &productName,
		CategoryID:  &categoryID,
		SupplierID:  &supplierID,
	}).Error)
}

func berlinOrder(t *testing.T) *domain.Order {
	t.Helper()
	code, err := domain.NewCustomerCode("ALFKI")
	require.NoError(t, err)
	orderDate := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	order, err := domain.NewOrder(0,
		domain.Customer{Code: code, CompanyName: "Alfreds Futterkiste"},
		domain.Employee{ID: 5, FirstName: "Steven", LastName: "Buchanan", Country: "UK"},
		domain.Shipper{ID: 2},
		orderDate, orderDate.AddDate(0, 0, 14), nil,
		12.50, "Alfreds Futterkiste",
		domain.NewShippingAddress("Obere Str. 57", "Berlin", "", "12209", "Germany"))
	require.NoError(t, err)
	return order
}

func TestRepository_AddAndGetRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	original := berlinOrder(t)

	id, err := repo.AddOrder(ctx, original)
	require.NoError(t, err)
	require.Positive(t, id)

	fetched, err := repo.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, fetched.ID)
	assert.Equal(t, "ALFKI", fetched.Customer.Code.String())
	assert.Equal(t, "Alfreds Futterkiste", fetched.Customer.CompanyName)
	assert.Equal(t, "Steven", fetched.Employee.FirstName)
	assert.Equal(t, "United Package", fetched.Shipper.CompanyName)
	assert.True(t, original.OrderDate.Equal(fetched.OrderDate))
	assert.True(t, original.RequiredDate.Equal(fetched.RequiredDate))
	assert.Nil(t, fetched.ShippedDate)
	assert.Equal(t, 12.50, fetched.Freight)
	assert.Equal(t, original.ShippingAddress, fetched.ShippingAddress)
	assert.Empty(t, fetched.Details)

	again, err := repo.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, fetched, again)
}

func TestRepository_GetOrder_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	_, err := repo.GetOrder(context.Background(), 99999)
	assert.ErrorIs(t, err, ports.ErrOrderNotFound)
}

func TestRepository_GetOrder_ResolvesDetailSnapshots(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	id, err := repo.AddOrder(ctx, berlinOrder(t))
	require.NoError(t, err)

	require.NoError(t, db.Create(&orderDetailRecord{
		OrderID:   id,
		ProductID: 11,
		UnitPrice: decimal.RequireFromString("21.0000"),
		Quantity:  12,
		Discount:  0.05,
	}).Error)

	fetched, err := repo.GetOrder(ctx, id)
	require.NoError(t, err)
	require.Len(t, fetched.Details, 1)
	detail := fetched.Details[0]
	assert.Equal(t, id, detail.OrderID)
	assert.Equal(t, int64(11), detail.ProductID)
	assert.Equal(t, "Queso Cabrales", detail.Product.Name)
	assert.Equal(t, int64(4), detail.Product.CategoryID)
	assert.Equal(t, "Dairy Products", detail.Product.CategoryName)
	assert.Equal(t, int64(5), detail.Product.SupplierID)
	assert.Equal(t, "Cooperativa de Quesos 'Las Cabras'", detail.Product.SupplierCompanyName)
	assert.True(t, decimal.RequireFromString("21").Equal(detail.UnitPrice))
	assert.Equal(t, int16(12), detail.Quantity)
	assert.InDelta(t, 0.05, float64(detail.Discount), 1e-6)
}

func TestRepository_ListOrders_PaginatesAscendingWithoutDetails(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 5; i++ {
		id, err := repo.AddOrder(ctx, berlinOrder(t))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.NoError(t, db.Create(&orderDetailRecord{
		OrderID:   ids[0],
		ProductID: 11,
		UnitPrice: decimal.NewFromInt(21),
		Quantity:  1,
	}).Error)

	page, err := repo.ListOrders(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[0], page[0].ID)
	assert.Equal(t, ids[1], page[1].ID)
	assert.Equal(t, "Alfreds Futterkiste", page[0].Customer.CompanyName)
	assert.Empty(t, page[0].Details)

	past, err := repo.ListOrders(ctx, 100, 2)
	require.NoError(t, err)
	assert.Empty(t, past)

	_, err = repo.ListOrders(ctx, -1, 2)
	assert.ErrorIs(t, err, ports.ErrInvalidRange)
	_, err = repo.ListOrders(ctx, 0, 0)
	assert.ErrorIs(t, err, ports.ErrInvalidRange)
}

func TestRepository_UpdateOrder_ReplacesHeaderAndSnapshots(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	id, err := repo.AddOrder(ctx, berlinOrder(t))
	require.NoError(t, err)

	require.NoError(t, db.Create(&orderDetailRecord{
		OrderID:   id,
		ProductID: 11,
		UnitPrice: decimal.NewFromInt(21),
		Quantity:  2,
	}).Error)

	updated := berlinOrder(t)
	updated.ID = id
	updated.Customer.CompanyName = "Alfreds Futterkiste GmbH"
	updated.Employee.Country = "United Kingdom"
	updated.Freight = 99.25
	updated.ShipName = "Alfreds Warehouse"
	shipped := updated.OrderDate.AddDate(0, 0, 3)
	updated.ShippedDate = &shipped

	require.NoError(t, repo.UpdateOrder(ctx, updated))

	fetched, err := repo.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Alfreds Futterkiste GmbH", fetched.Customer.CompanyName)
	assert.Equal(t, "United Kingdom", fetched.Employee.Country)
	assert.Equal(t, 99.25, fetched.Freight)
	assert.Equal(t, "Alfreds Warehouse", fetched.ShipName)
	require.NotNil(t, fetched.ShippedDate)
	assert.True(t, shipped.Equal(*fetched.ShippedDate))
	// Line items survive a header update untouched.
	require.Len(t, fetched.Details, 1)
}

func TestRepository_UpdateOrder_NotFoundWritesNothing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	ghost := berlinOrder(t)
	ghost.ID = 4242
	assert.ErrorIs(t, repo.UpdateOrder(ctx, ghost), ports.ErrOrderNotFound)

	var headerCount int64
	require.NoError(t, db.Model(&orderRecord{}).Count(&headerCount).Error)
	assert.Zero(t, headerCount)
	var customerCount int64
	require.NoError(t, db.Model(&customerRecord{}).Count(&customerCount).Error)
	assert.Zero(t, customerCount)
}

func TestRepository_RemoveOrder_CascadesDetails(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	id, err := repo.AddOrder(ctx, berlinOrder(t))
	require.NoError(t, err)
	require.NoError(t, db.Create(&orderDetailRecord{
		OrderID:   id,
		ProductID: 11,
		UnitPrice: decimal.NewFromInt(21),
		Quantity:  3,
	}).Error)

	require.NoError(t, repo.RemoveOrder(ctx, id))

	_, err = repo.GetOrder(ctx, id)
	assert.ErrorIs(t, err, ports.ErrOrderNotFound)
	var detailCount int64
	require.NoError(t, db.Model(&orderDetailRecord{}).Count(&detailCount).Error)
	assert.Zero(t, detailCount)

	assert.ErrorIs(t, repo.RemoveOrder(ctx, id), ports.ErrOrderNotFound)
}

func TestRepository_AddOrder_MissingShipperFailsAsRepositoryError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	order := berlinOrder(t)
	order.Shipper = domain.Shipper{ID: 77}

	_, err := repo.AddOrder(ctx, order)
	require.Error(t, err)
	var repoErr *ports.RepositoryError
	assert.ErrorAs(t, err, &repoErr)
}
